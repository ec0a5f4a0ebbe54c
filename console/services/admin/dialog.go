package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrValidation agrupa as falhas de preenchimento do formulário
	ErrValidation = errors.New("validation failed")
	// ErrStaleDialog indica uma resposta ou envio que chegou depois do diálogo ser fechado ou reaberto
	ErrStaleDialog = errors.New("dialog closed before lookups finished")
)

// Lister busca uma coleção completa
type Lister[T Record] interface {
	List(ctx context.Context) ([]T, error)
}

// Saver recebe o rascunho pronto para ser criado ou atualizado
type Saver interface {
	Save(ctx context.Context, draft interface{ EntityID() int }) error
}

// TurmaForm guarda os valores do formulário exatamente como digitados
type TurmaForm struct {
	Nome           string `validate:"required"`
	HorarioInicio  string `validate:"required,datetime=15:04"`
	HorarioTermino string `validate:"required,datetime=15:04"`
	DiaSemana      string `validate:"required,oneof=SEGUNDA TERCA QUARTA QUINTA SEXTA SABADO"`
	IDDisciplina   string `validate:"required"`
	IDProfessor    string `validate:"required"`
	IDSala         string `validate:"required"`
}

var requiredMessages = map[string]string{
	"Nome":           "Nome é obrigatório",
	"HorarioInicio":  "Horário de início é obrigatório",
	"HorarioTermino": "Horário de término é obrigatório",
	"DiaSemana":      "Dia da semana é obrigatório",
	"IDDisciplina":   "Disciplina é obrigatória",
	"IDProfessor":    "Professor é obrigatório",
	"IDSala":         "Sala é obrigatória",
}

// ValidationError mapeia campo do formulário para a mensagem exibida ao lado dele
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TurmaOptions são as opções dos seletores de chave estrangeira
type TurmaOptions struct {
	Professores []Professor
	Salas       []Sala
	Disciplinas []Disciplina
}

// TurmaDialog é o formulário de criação/edição de turma. Ao abrir busca
// professores, salas e disciplinas para montar os seletores
type TurmaDialog struct {
	professores Lister[Professor]
	salas       Lister[Sala]
	disciplinas Lister[Disciplina]
	saver       Saver
	notifier    Notifier
	validate    *validator.Validate

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	open       bool
	ready      bool
	editing    *TurmaDto
	form       TurmaForm
	options    TurmaOptions
}

// NewTurmaDialog cria uma nova instância de TurmaDialog
func NewTurmaDialog(
	professores Lister[Professor],
	salas Lister[Sala],
	disciplinas Lister[Disciplina],
	saver Saver,
	notifier Notifier,
) *TurmaDialog {
	return &TurmaDialog{
		professores: professores,
		salas:       salas,
		disciplinas: disciplinas,
		saver:       saver,
		notifier:    notifier,
		validate:    validator.New(),
	}
}

// Open abre o diálogo. Com editing nil o formulário começa vazio; caso
// contrário é preenchido com a turma, inclusive relações com registros inativos
func (d *TurmaDialog) Open(ctx context.Context, editing *Turma) error {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.generation++
	gen := d.generation
	scope, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.open = true
	d.ready = false
	d.options = TurmaOptions{}
	if editing != nil {
		dto := editing.Draft()
		d.editing = &dto
		d.form = formFromDto(dto)
	} else {
		d.editing = nil
		d.form = TurmaForm{}
	}
	d.mu.Unlock()

	var (
		professores []Professor
		salas       []Sala
		disciplinas []Disciplina
	)

	g, gctx := errgroup.WithContext(scope)
	g.Go(func() error {
		items, err := d.disciplinas.List(gctx)
		if err != nil {
			return fmt.Errorf("disciplinas: %w", err)
		}
		disciplinas = items
		return nil
	})
	g.Go(func() error {
		items, err := d.salas.List(gctx)
		if err != nil {
			return fmt.Errorf("salas: %w", err)
		}
		salas = items
		return nil
	})
	g.Go(func() error {
		items, err := d.professores.List(gctx)
		if err != nil {
			return fmt.Errorf("professores: %w", err)
		}
		professores = items
		return nil
	})
	err := g.Wait()

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		log.Printf("ℹ️  Discarding stale turma dialog lookups (generation %d)", gen)
		return ErrStaleDialog
	}
	if err != nil {
		d.mu.Unlock()
		log.Printf("❌ Failed to load turma dialog options: %v", err)
		if d.notifier != nil {
			d.notifier.Notify("Erro ao carregar dados para o formulário. Tente novamente.")
		}
		return err
	}
	d.options = TurmaOptions{
		Professores: FilterActive(professores, ""),
		Salas:       FilterActive(salas, ""),
		Disciplinas: FilterActive(disciplinas, ""),
	}
	d.ready = true
	d.mu.Unlock()

	return nil
}

// Close fecha o diálogo e descarta buscas ainda em andamento
func (d *TurmaDialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
	d.open = false
	d.ready = false
}

// IsOpen informa se o diálogo está aberto
func (d *TurmaDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Ready informa se as três buscas terminaram com sucesso
func (d *TurmaDialog) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Options devolve as opções ativas de cada seletor
func (d *TurmaDialog) Options() TurmaOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.options
}

// Form devolve os valores atuais do formulário
func (d *TurmaDialog) Form() TurmaForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Submit valida o formulário, converte as chaves estrangeiras e entrega o
// TurmaDto ao Saver. Se a validação falhar nada é enviado ao backend.
// Com o diálogo fechado devolve ErrStaleDialog sem salvar
func (d *TurmaDialog) Submit(ctx context.Context, form TurmaForm) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrStaleDialog
	}
	d.form = form
	editing := d.editing
	d.mu.Unlock()

	dto, err := d.Build(form, editing)
	if err != nil {
		return err
	}

	if err := d.saver.Save(ctx, dto); err != nil {
		return err
	}

	d.Close()
	return nil
}

// Build transforma o formulário em TurmaDto sem efeitos colaterais
func (d *TurmaDialog) Build(form TurmaForm, editing *TurmaDto) (TurmaDto, error) {
	if err := d.validate.Struct(form); err != nil {
		return TurmaDto{}, toValidationError(err)
	}

	fieldErrs := ValidationError{}
	disciplina, err := ParseRef(KindDisciplina, form.IDDisciplina)
	if err != nil {
		fieldErrs["IDDisciplina"] = "Disciplina inválida"
	}
	professor, err := ParseRef(KindProfessor, form.IDProfessor)
	if err != nil {
		fieldErrs["IDProfessor"] = "Professor inválido"
	}
	sala, err := ParseRef(KindSala, form.IDSala)
	if err != nil {
		fieldErrs["IDSala"] = "Sala inválida"
	}
	if len(fieldErrs) > 0 {
		return TurmaDto{}, fieldErrs
	}

	dto := TurmaDto{
		Nome:           form.Nome,
		HorarioInicio:  form.HorarioInicio,
		HorarioTermino: form.HorarioTermino,
		DiaSemana:      form.DiaSemana,
		IDProfessor:    professor.Ptr(),
		IDSala:         sala.Ptr(),
		IDDisciplina:   disciplina.Ptr(),
		Status:         true,
	}
	if editing != nil {
		dto.ID = editing.ID
		dto.Status = editing.Status
	}
	return dto, nil
}

func toValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fieldErrs := ValidationError{}
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			fieldErrs[fe.Field()] = requiredMessages[fe.Field()]
			continue
		}
		fieldErrs[fe.Field()] = "Valor inválido"
	}
	return fieldErrs
}

func formFromDto(dto TurmaDto) TurmaForm {
	return TurmaForm{
		Nome:           dto.Nome,
		HorarioInicio:  dto.HorarioInicio,
		HorarioTermino: dto.HorarioTermino,
		DiaSemana:      dto.DiaSemana,
		IDDisciplina:   formatRef(dto.IDDisciplina),
		IDProfessor:    formatRef(dto.IDProfessor),
		IDSala:         formatRef(dto.IDSala),
	}
}
