package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados do cadastro acadêmico
type Repository interface {
	ListProfessores(ctx context.Context, nome string) ([]Professor, error)
	CreateProfessor(ctx context.Context, professor *Professor) error
	UpdateProfessor(ctx context.Context, id int, patch ProfessorPatch) error

	ListSalas(ctx context.Context, nome string) ([]Sala, error)
	CreateSala(ctx context.Context, sala *Sala) error
	UpdateSala(ctx context.Context, id int, patch SalaPatch) error

	ListDisciplinas(ctx context.Context, nome string) ([]Disciplina, error)
	CreateDisciplina(ctx context.Context, disciplina *Disciplina) error
	UpdateDisciplina(ctx context.Context, id int, patch DisciplinaPatch) error

	// ListTurmas devolve as turmas com professor, sala e disciplina resolvidos
	ListTurmas(ctx context.Context, nome string) ([]Turma, error)
	// CreateTurma grava a turma e devolve o id gerado
	CreateTurma(ctx context.Context, input TurmaInput) (int, error)
	// GetTurma busca uma turma pelo ID já com as relações
	GetTurma(ctx context.Context, id int) (*Turma, error)
	UpdateTurma(ctx context.Context, id int, patch TurmaPatch) error
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository cria uma nova instância de PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{
		db: db,
	}
}

// nomeFilter casa qualquer registro quando o termo é vazio; $1 vem de containsPattern
const nomeFilter = `($1 = '' OR nome ILIKE $1 ESCAPE '\')`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern transforma o termo de busca em um padrão ILIKE literal
func containsPattern(nome string) string {
	if nome == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(nome) + "%"
}

func (r *PostgresRepository) ListProfessores(ctx context.Context, nome string) ([]Professor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nome, cpf, titulacao, status
		FROM professores
		WHERE `+nomeFilter+`
		ORDER BY id
	`, containsPattern(nome))
	if err != nil {
		return nil, fmt.Errorf("failed to query professores: %w", err)
	}
	defer rows.Close()

	professores := []Professor{}
	for rows.Next() {
		var p Professor
		if err := rows.Scan(&p.ID, &p.Nome, &p.Cpf.Value, &p.Titulacao, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan professor: %w", err)
		}
		professores = append(professores, p)
	}
	return professores, rows.Err()
}

func (r *PostgresRepository) CreateProfessor(ctx context.Context, professor *Professor) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO professores (nome, cpf, titulacao, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, professor.Nome, professor.Cpf.Value, professor.Titulacao, professor.Status).Scan(&professor.ID)
	return translatePgError(err)
}

func (r *PostgresRepository) UpdateProfessor(ctx context.Context, id int, patch ProfessorPatch) error {
	var cpf *string
	if patch.Cpf != nil {
		cpf = &patch.Cpf.Value
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE professores
		SET nome = COALESCE($1, nome),
			cpf = COALESCE($2, cpf),
			titulacao = COALESCE($3, titulacao),
			status = COALESCE($4, status)
		WHERE id = $5
	`, patch.Nome, cpf, patch.Titulacao, patch.Status, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListSalas(ctx context.Context, nome string) ([]Sala, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nome, capacidade, local, status
		FROM salas
		WHERE `+nomeFilter+`
		ORDER BY id
	`, containsPattern(nome))
	if err != nil {
		return nil, fmt.Errorf("failed to query salas: %w", err)
	}
	defer rows.Close()

	salas := []Sala{}
	for rows.Next() {
		var (
			s          Sala
			capacidade pgtype.Int4
		)
		if err := rows.Scan(&s.ID, &s.Nome, &capacidade, &s.Local, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan sala: %w", err)
		}
		s.Capacidade = int4Ptr(capacidade)
		salas = append(salas, s)
	}
	return salas, rows.Err()
}

func (r *PostgresRepository) CreateSala(ctx context.Context, sala *Sala) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO salas (nome, capacidade, local, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sala.Nome, sala.Capacidade, sala.Local, sala.Status).Scan(&sala.ID)
	return translatePgError(err)
}

func (r *PostgresRepository) UpdateSala(ctx context.Context, id int, patch SalaPatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE salas
		SET nome = COALESCE($1, nome),
			capacidade = COALESCE($2, capacidade),
			local = COALESCE($3, local),
			status = COALESCE($4, status)
		WHERE id = $5
	`, patch.Nome, patch.Capacidade, patch.Local, patch.Status, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListDisciplinas(ctx context.Context, nome string) ([]Disciplina, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, nome, codigo, periodo, status
		FROM disciplinas
		WHERE `+nomeFilter+`
		ORDER BY id
	`, containsPattern(nome))
	if err != nil {
		return nil, fmt.Errorf("failed to query disciplinas: %w", err)
	}
	defer rows.Close()

	disciplinas := []Disciplina{}
	for rows.Next() {
		var (
			d       Disciplina
			periodo pgtype.Int4
		)
		if err := rows.Scan(&d.ID, &d.Nome, &d.Codigo, &periodo, &d.Status); err != nil {
			return nil, fmt.Errorf("failed to scan disciplina: %w", err)
		}
		d.Periodo = int4Ptr(periodo)
		disciplinas = append(disciplinas, d)
	}
	return disciplinas, rows.Err()
}

func (r *PostgresRepository) CreateDisciplina(ctx context.Context, disciplina *Disciplina) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO disciplinas (nome, codigo, periodo, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, disciplina.Nome, disciplina.Codigo, disciplina.Periodo, disciplina.Status).Scan(&disciplina.ID)
	return translatePgError(err)
}

func (r *PostgresRepository) UpdateDisciplina(ctx context.Context, id int, patch DisciplinaPatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE disciplinas
		SET nome = COALESCE($1, nome),
			codigo = COALESCE($2, codigo),
			periodo = COALESCE($3, periodo),
			status = COALESCE($4, status)
		WHERE id = $5
	`, patch.Nome, patch.Codigo, patch.Periodo, patch.Status, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const turmaSelect = `
	SELECT t.id, t.nome, t.horario_inicio, t.horario_termino, t.dia_semana, t.status,
		p.id, p.nome, p.cpf, p.titulacao, p.status,
		s.id, s.nome, s.capacidade, s.local, s.status,
		d.id, d.nome, d.codigo, d.periodo, d.status
	FROM turmas t
	LEFT JOIN professores p ON p.id = t.id_professor
	LEFT JOIN salas s ON s.id = t.id_sala
	LEFT JOIN disciplinas d ON d.id = t.id_disciplina
`

func (r *PostgresRepository) ListTurmas(ctx context.Context, nome string) ([]Turma, error) {
	rows, err := r.db.Query(ctx, turmaSelect+`
		WHERE ($1 = '' OR t.nome ILIKE $1 ESCAPE '\')
		ORDER BY t.id
	`, containsPattern(nome))
	if err != nil {
		return nil, fmt.Errorf("failed to query turmas: %w", err)
	}
	defer rows.Close()

	turmas := []Turma{}
	for rows.Next() {
		turma, err := scanTurma(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turma: %w", err)
		}
		turmas = append(turmas, *turma)
	}
	return turmas, rows.Err()
}

func (r *PostgresRepository) GetTurma(ctx context.Context, id int) (*Turma, error) {
	turma, err := scanTurma(r.db.QueryRow(ctx, turmaSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return turma, nil
}

func (r *PostgresRepository) CreateTurma(ctx context.Context, input TurmaInput) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO turmas (nome, horario_inicio, horario_termino, dia_semana, id_professor, id_sala, id_disciplina, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, input.Nome, input.HorarioInicio, input.HorarioTermino, input.DiaSemana,
		input.IDProfessor, input.IDSala, input.IDDisciplina, statusOrDefault(input.Status)).Scan(&id)
	if err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *PostgresRepository) UpdateTurma(ctx context.Context, id int, patch TurmaPatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE turmas
		SET nome = COALESCE($1, nome),
			horario_inicio = COALESCE($2, horario_inicio),
			horario_termino = COALESCE($3, horario_termino),
			dia_semana = COALESCE($4, dia_semana),
			id_professor = CASE WHEN $5::boolean THEN $6::int ELSE id_professor END,
			id_sala = CASE WHEN $7::boolean THEN $8::int ELSE id_sala END,
			id_disciplina = CASE WHEN $9::boolean THEN $10::int ELSE id_disciplina END,
			status = COALESCE($11, status)
		WHERE id = $12
	`, turmaUpdateArgs(id, patch)...)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanTurma monta a turma a partir de uma linha do LEFT JOIN
func scanTurma(row pgx.Row) (*Turma, error) {
	var (
		t Turma

		profID, salaID, discID                    pgtype.Int4
		profNome, profCpf, profTitulacao          pgtype.Text
		salaNome, salaLocal, discNome, discCodigo pgtype.Text
		salaCapacidade, discPeriodo               pgtype.Int4
		profStatus, salaStatus, discStatus        pgtype.Bool
	)

	err := row.Scan(
		&t.ID, &t.Nome, &t.HorarioInicio, &t.HorarioTermino, &t.DiaSemana, &t.Status,
		&profID, &profNome, &profCpf, &profTitulacao, &profStatus,
		&salaID, &salaNome, &salaCapacidade, &salaLocal, &salaStatus,
		&discID, &discNome, &discCodigo, &discPeriodo, &discStatus,
	)
	if err != nil {
		return nil, err
	}

	if profID.Valid {
		t.Professor = &Professor{
			ID:        int(profID.Int32),
			Nome:      profNome.String,
			Cpf:       Cpf{Value: profCpf.String},
			Titulacao: profTitulacao.String,
			Status:    profStatus.Bool,
		}
	}
	if salaID.Valid {
		t.Sala = &Sala{
			ID:         int(salaID.Int32),
			Nome:       salaNome.String,
			Capacidade: int4Ptr(salaCapacidade),
			Local:      salaLocal.String,
			Status:     salaStatus.Bool,
		}
	}
	if discID.Valid {
		t.Disciplina = &Disciplina{
			ID:      int(discID.Int32),
			Nome:    discNome.String,
			Codigo:  discCodigo.String,
			Periodo: int4Ptr(discPeriodo),
			Status:  discStatus.Bool,
		}
	}
	return &t, nil
}

func int4Ptr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

// turmaUpdateArgs ordena os parâmetros de UpdateTurma; cada referência ocupa
// dois: se veio no corpo e o novo valor
func turmaUpdateArgs(id int, patch TurmaPatch) []any {
	return []any{
		patch.Nome, patch.HorarioInicio, patch.HorarioTermino, patch.DiaSemana,
		patch.IDProfessor.Set, patch.IDProfessor.ID,
		patch.IDSala.Set, patch.IDSala.ID,
		patch.IDDisciplina.Set, patch.IDDisciplina.ID,
		patch.Status, id,
	}
}
