package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// AcademicUseCase contém a lógica de negócio do cadastro acadêmico
type AcademicUseCase struct {
	repository    Repository
	tracer        trace.Tracer
	statusChanges metric.Int64Counter
}

// NewAcademicUseCase cria uma nova instância de AcademicUseCase
func NewAcademicUseCase(repository Repository, tracer trace.Tracer, meter metric.Meter) (*AcademicUseCase, error) {
	statusChanges, err := meter.Int64Counter(
		"status_changes",
		metric.WithDescription("Number of activate/deactivate operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create status_changes counter: %w", err)
	}

	return &AcademicUseCase{
		repository:    repository,
		tracer:        tracer,
		statusChanges: statusChanges,
	}, nil
}

// ListProfessores lista os professores, filtrando por nome quando informado
func (uc *AcademicUseCase) ListProfessores(ctx context.Context, nome string) ([]Professor, error) {
	ctx, span := uc.tracer.Start(ctx, "list_professores")
	defer span.End()

	professores, err := uc.repository.ListProfessores(ctx, strings.TrimSpace(nome))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to list professores: %w", err))
	}
	return professores, nil
}

// CreateProfessor cadastra um professor
func (uc *AcademicUseCase) CreateProfessor(ctx context.Context, input ProfessorInput) (*Professor, error) {
	ctx, span := uc.tracer.Start(ctx, "create_professor")
	defer span.End()

	if err := requireText(map[string]string{"nome": input.Nome, "cpf": input.Cpf.Value, "titulacao": input.Titulacao}); err != nil {
		return nil, fail(span, err)
	}

	professor := &Professor{
		Nome:      strings.TrimSpace(input.Nome),
		Cpf:       Cpf{Value: strings.TrimSpace(input.Cpf.Value)},
		Titulacao: strings.TrimSpace(input.Titulacao),
		Status:    statusOrDefault(input.Status),
	}
	if err := uc.repository.CreateProfessor(ctx, professor); err != nil {
		log.Printf("❌ Failed to create professor: %v", err)
		return nil, fail(span, fmt.Errorf("failed to create professor: %w", err))
	}

	span.SetAttributes(attribute.Int("professor_id", professor.ID))
	log.Printf("✅ Professor created: %d", professor.ID)
	return professor, nil
}

// UpdateProfessor aplica uma atualização parcial ao professor
func (uc *AcademicUseCase) UpdateProfessor(ctx context.Context, id int, patch ProfessorPatch) error {
	ctx, span := uc.tracer.Start(ctx, "update_professor")
	defer span.End()
	span.SetAttributes(attribute.Int("professor_id", id))

	if err := uc.repository.UpdateProfessor(ctx, id, patch); err != nil {
		log.Printf("❌ Failed to update professor %d: %v", id, err)
		return fail(span, fmt.Errorf("failed to update professor: %w", err))
	}

	uc.recordStatusChange(ctx, "professores", patch.Status)
	return nil
}

// ListSalas lista as salas, filtrando por nome quando informado
func (uc *AcademicUseCase) ListSalas(ctx context.Context, nome string) ([]Sala, error) {
	ctx, span := uc.tracer.Start(ctx, "list_salas")
	defer span.End()

	salas, err := uc.repository.ListSalas(ctx, strings.TrimSpace(nome))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to list salas: %w", err))
	}
	return salas, nil
}

// CreateSala cadastra uma sala
func (uc *AcademicUseCase) CreateSala(ctx context.Context, input SalaInput) (*Sala, error) {
	ctx, span := uc.tracer.Start(ctx, "create_sala")
	defer span.End()

	if err := requireText(map[string]string{"nome": input.Nome, "local": input.Local}); err != nil {
		return nil, fail(span, err)
	}

	sala := &Sala{
		Nome:       strings.TrimSpace(input.Nome),
		Capacidade: input.Capacidade,
		Local:      strings.TrimSpace(input.Local),
		Status:     statusOrDefault(input.Status),
	}
	if err := uc.repository.CreateSala(ctx, sala); err != nil {
		log.Printf("❌ Failed to create sala: %v", err)
		return nil, fail(span, fmt.Errorf("failed to create sala: %w", err))
	}

	span.SetAttributes(attribute.Int("sala_id", sala.ID))
	log.Printf("✅ Sala created: %d", sala.ID)
	return sala, nil
}

// UpdateSala aplica uma atualização parcial à sala
func (uc *AcademicUseCase) UpdateSala(ctx context.Context, id int, patch SalaPatch) error {
	ctx, span := uc.tracer.Start(ctx, "update_sala")
	defer span.End()
	span.SetAttributes(attribute.Int("sala_id", id))

	if err := uc.repository.UpdateSala(ctx, id, patch); err != nil {
		log.Printf("❌ Failed to update sala %d: %v", id, err)
		return fail(span, fmt.Errorf("failed to update sala: %w", err))
	}

	uc.recordStatusChange(ctx, "salas", patch.Status)
	return nil
}

// ListDisciplinas lista as disciplinas, filtrando por nome quando informado
func (uc *AcademicUseCase) ListDisciplinas(ctx context.Context, nome string) ([]Disciplina, error) {
	ctx, span := uc.tracer.Start(ctx, "list_disciplinas")
	defer span.End()

	disciplinas, err := uc.repository.ListDisciplinas(ctx, strings.TrimSpace(nome))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to list disciplinas: %w", err))
	}
	return disciplinas, nil
}

// CreateDisciplina cadastra uma disciplina
func (uc *AcademicUseCase) CreateDisciplina(ctx context.Context, input DisciplinaInput) (*Disciplina, error) {
	ctx, span := uc.tracer.Start(ctx, "create_disciplina")
	defer span.End()

	if err := requireText(map[string]string{"nome": input.Nome, "codigo": input.Codigo}); err != nil {
		return nil, fail(span, err)
	}

	disciplina := &Disciplina{
		Nome:    strings.TrimSpace(input.Nome),
		Codigo:  strings.TrimSpace(input.Codigo),
		Periodo: input.Periodo,
		Status:  statusOrDefault(input.Status),
	}
	if err := uc.repository.CreateDisciplina(ctx, disciplina); err != nil {
		log.Printf("❌ Failed to create disciplina: %v", err)
		return nil, fail(span, fmt.Errorf("failed to create disciplina: %w", err))
	}

	span.SetAttributes(attribute.Int("disciplina_id", disciplina.ID))
	log.Printf("✅ Disciplina created: %d", disciplina.ID)
	return disciplina, nil
}

// UpdateDisciplina aplica uma atualização parcial à disciplina
func (uc *AcademicUseCase) UpdateDisciplina(ctx context.Context, id int, patch DisciplinaPatch) error {
	ctx, span := uc.tracer.Start(ctx, "update_disciplina")
	defer span.End()
	span.SetAttributes(attribute.Int("disciplina_id", id))

	if err := uc.repository.UpdateDisciplina(ctx, id, patch); err != nil {
		log.Printf("❌ Failed to update disciplina %d: %v", id, err)
		return fail(span, fmt.Errorf("failed to update disciplina: %w", err))
	}

	uc.recordStatusChange(ctx, "disciplinas", patch.Status)
	return nil
}

// ListTurmas lista as turmas com as relações resolvidas
func (uc *AcademicUseCase) ListTurmas(ctx context.Context, nome string) ([]Turma, error) {
	ctx, span := uc.tracer.Start(ctx, "list_turmas")
	defer span.End()

	turmas, err := uc.repository.ListTurmas(ctx, strings.TrimSpace(nome))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to list turmas: %w", err))
	}
	return turmas, nil
}

// CreateTurma cadastra uma turma e devolve o registro com as relações
func (uc *AcademicUseCase) CreateTurma(ctx context.Context, input TurmaInput) (*Turma, error) {
	ctx, span := uc.tracer.Start(ctx, "create_turma")
	defer span.End()

	if err := requireText(map[string]string{"nome": input.Nome}); err != nil {
		return nil, fail(span, err)
	}
	if err := validateTurmaFields(&input.HorarioInicio, &input.HorarioTermino, &input.DiaSemana); err != nil {
		return nil, fail(span, err)
	}
	input.Nome = strings.TrimSpace(input.Nome)

	id, err := uc.repository.CreateTurma(ctx, input)
	if err != nil {
		log.Printf("❌ Failed to create turma: %v", err)
		return nil, fail(span, fmt.Errorf("failed to create turma: %w", err))
	}
	span.SetAttributes(attribute.Int("turma_id", id))

	turma, err := uc.repository.GetTurma(ctx, id)
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to load created turma: %w", err))
	}

	log.Printf("✅ Turma created: %d", id)
	return turma, nil
}

// UpdateTurma aplica uma atualização parcial à turma
func (uc *AcademicUseCase) UpdateTurma(ctx context.Context, id int, patch TurmaPatch) error {
	ctx, span := uc.tracer.Start(ctx, "update_turma")
	defer span.End()
	span.SetAttributes(attribute.Int("turma_id", id))

	if err := validateTurmaFields(patch.HorarioInicio, patch.HorarioTermino, patch.DiaSemana); err != nil {
		return fail(span, err)
	}

	if err := uc.repository.UpdateTurma(ctx, id, patch); err != nil {
		log.Printf("❌ Failed to update turma %d: %v", id, err)
		return fail(span, fmt.Errorf("failed to update turma: %w", err))
	}

	uc.recordStatusChange(ctx, "turmas", patch.Status)
	return nil
}

// recordStatusChange conta ativações e desativações por recurso
func (uc *AcademicUseCase) recordStatusChange(ctx context.Context, resource string, status *bool) {
	if status == nil {
		return
	}
	uc.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.Bool("status", *status),
	))
	log.Printf("🔁 %s status set to %t", resource, *status)
}

// validateTurmaFields valida horários e dia da semana quando presentes.
// Não há verificação de início antes do término.
func validateTurmaFields(inicio, termino, dia *string) error {
	if inicio != nil {
		if err := validateHorario("horarioInicio", *inicio); err != nil {
			return err
		}
	}
	if termino != nil {
		if err := validateHorario("horarioTermino", *termino); err != nil {
			return err
		}
	}
	if dia != nil {
		if err := validateDiaSemana(*dia); err != nil {
			return err
		}
	}
	return nil
}

func requireText(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
		}
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
