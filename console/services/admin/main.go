package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

const usage = `uso: admin <comando> [argumentos]

comandos:
  listar <recurso> [termo]     lista registros ativos filtrando pelo nome
  inativos <recurso>           lista registros desativados
  buscar <recurso> <nome>      busca no servidor por nome
  desativar <recurso> <id>     desativa um registro
  reativar <recurso> <id>      reativa um registro desativado
  turma nova                   cadastra uma turma
  turma editar <id>            edita uma turma

recursos: professores, salas, disciplinas, turmas`

// App agrupa os controladores de cada coleção
type App struct {
	screens map[string]screen
	turmas  *EntityList[Turma]
	dialog  *TurmaDialog
	prompt  *ConsolePrompt
	out     io.Writer
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(cfg, os.Stdin, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatalf("❌ %v", err)
	}
}

// NewApp monta recursos, controladores e o diálogo de turma
func NewApp(cfg *Config, in io.Reader, out io.Writer) *App {
	client := NewAPIClient(cfg)
	prompt := NewConsolePrompt(in, out)

	professores := NewRestResource[Professor](client, "professores")
	salas := NewRestResource[Sala](client, "salas")
	disciplinas := NewRestResource[Disciplina](client, "disciplinas")
	turmas := NewRestResource[Turma](client, "turmas")

	professorList := NewEntityList[Professor](professores, Noun{Singular: "professor", Plural: "professores"}, prompt, prompt)
	salaList := NewEntityList[Sala](salas, Noun{Singular: "sala", Plural: "salas", Feminine: true}, prompt, prompt)
	disciplinaList := NewEntityList[Disciplina](disciplinas, Noun{Singular: "disciplina", Plural: "disciplinas", Feminine: true}, prompt, prompt)
	turmaList := NewEntityList[Turma](turmas, Noun{Singular: "turma", Plural: "turmas", Feminine: true}, prompt, prompt)

	return &App{
		screens: map[string]screen{
			"professores": newEntityScreen[Professor](professorList, professores, "ID\tNOME\tCPF\tTITULAÇÃO", professorRow),
			"salas":       newEntityScreen[Sala](salaList, salas, "ID\tNOME\tCAPACIDADE\tLOCAL", salaRow),
			"disciplinas": newEntityScreen[Disciplina](disciplinaList, disciplinas, "ID\tNOME\tCÓDIGO\tPERÍODO", disciplinaRow),
			"turmas":      newEntityScreen[Turma](turmaList, turmas, "ID\tNOME\tDISCIPLINA\tPROFESSOR\tDIA\tHORÁRIO\tSALA", turmaRow),
		},
		turmas: turmaList,
		dialog: NewTurmaDialog(professores, salas, disciplinas, turmaList, prompt),
		prompt: prompt,
		out:    out,
	}
}

var errUsage = errors.New("usage")

// Run executa um comando
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	if args[0] == "turma" {
		return a.runTurma(ctx, args[1:])
	}
	if len(args) < 2 {
		return errUsage
	}

	s, ok := a.screens[args[1]]
	if !ok {
		return fmt.Errorf("recurso desconhecido %q", args[1])
	}

	switch args[0] {
	case "listar":
		if err := s.Load(ctx); err != nil {
			return err
		}
		s.PrintActive(a.out, strings.Join(args[2:], " "))
	case "inativos":
		if err := s.Load(ctx); err != nil {
			return err
		}
		s.PrintInactive(a.out)
	case "buscar":
		return s.PrintSearch(ctx, a.out, strings.Join(args[2:], " "))
	case "desativar", "reativar":
		if len(args) < 3 {
			return errUsage
		}
		id, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("id inválido %q", args[2])
		}
		if err := s.Load(ctx); err != nil {
			return err
		}
		if args[0] == "desativar" {
			return s.Deactivate(ctx, id)
		}
		return s.Reactivate(ctx, id)
	default:
		return errUsage
	}
	return nil
}

func (a *App) runTurma(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	var editing *Turma
	switch args[0] {
	case "nova":
		a.turmas.OpenCreate()
	case "editar":
		if len(args) < 2 {
			return errUsage
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("id inválido %q", args[1])
		}
		if err := a.turmas.Load(ctx); err != nil {
			return err
		}
		if !a.turmas.OpenEdit(id) {
			return fmt.Errorf("turma %d não encontrada", id)
		}
		turma, _ := a.turmas.Selected()
		editing = &turma
	default:
		return errUsage
	}

	if err := a.dialog.Open(ctx, editing); err != nil {
		return err
	}
	defer a.dialog.Close()

	a.printOptions()
	for a.turmas.DialogOpen() {
		form := a.askTurma(a.dialog.Form())
		err := a.dialog.Submit(ctx, form)
		if err == nil {
			return nil
		}

		var fieldErrs ValidationError
		if errors.As(err, &fieldErrs) {
			for field, msg := range fieldErrs {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		}
		if !a.prompt.Confirm("Tentar novamente?") {
			a.turmas.CloseDialog()
			return err
		}
	}
	return nil
}

func (a *App) printOptions() {
	opts := a.dialog.Options()
	fmt.Fprintln(a.out, "Disciplinas:")
	for _, d := range opts.Disciplinas {
		fmt.Fprintf(a.out, "  %d  %s\n", d.ID, d.Nome)
	}
	fmt.Fprintln(a.out, "Professores:")
	for _, p := range opts.Professores {
		fmt.Fprintf(a.out, "  %d  %s\n", p.ID, p.Nome)
	}
	fmt.Fprintln(a.out, "Salas:")
	for _, s := range opts.Salas {
		fmt.Fprintf(a.out, "  %d  %s (Cap: %s)\n", s.ID, s.Nome, optionalInt(s.Capacidade))
	}
	fmt.Fprintf(a.out, "Dias: %s\n", strings.Join(DiasSemana, ", "))
}

func (a *App) askTurma(current TurmaForm) TurmaForm {
	return TurmaForm{
		Nome:           a.prompt.Ask("Nome da Turma", current.Nome),
		HorarioInicio:  a.prompt.Ask("Horário de Início (HH:MM)", current.HorarioInicio),
		HorarioTermino: a.prompt.Ask("Horário de Término (HH:MM)", current.HorarioTermino),
		DiaSemana:      strings.ToUpper(a.prompt.Ask("Dia da Semana", current.DiaSemana)),
		IDDisciplina:   a.prompt.Ask("Disciplina (id)", current.IDDisciplina),
		IDProfessor:    a.prompt.Ask("Professor (id)", current.IDProfessor),
		IDSala:         a.prompt.Ask("Sala (id)", current.IDSala),
	}
}
