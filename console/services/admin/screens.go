package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// screen é a visão de linha de comando de uma coleção
type screen interface {
	Load(ctx context.Context) error
	PrintActive(w io.Writer, term string)
	PrintInactive(w io.Writer)
	PrintSearch(ctx context.Context, w io.Writer, nome string) error
	Deactivate(ctx context.Context, id int) error
	Reactivate(ctx context.Context, id int) error
}

type entityScreen[T Record] struct {
	list     *EntityList[T]
	resource Resource[T]
	header   string
	row      func(T) string
}

func newEntityScreen[T Record](list *EntityList[T], resource Resource[T], header string, row func(T) string) *entityScreen[T] {
	return &entityScreen[T]{
		list:     list,
		resource: resource,
		header:   header,
		row:      row,
	}
}

func (s *entityScreen[T]) Load(ctx context.Context) error {
	return s.list.Load(ctx)
}

func (s *entityScreen[T]) PrintActive(w io.Writer, term string) {
	s.list.SetSearch(term)
	s.print(w, s.list.Visible())
}

func (s *entityScreen[T]) PrintInactive(w io.Writer) {
	s.list.OpenInactive()
	defer s.list.CloseInactive()
	s.print(w, s.list.InactiveView().Items)
}

func (s *entityScreen[T]) PrintSearch(ctx context.Context, w io.Writer, nome string) error {
	items, err := s.resource.Search(ctx, nome)
	if err != nil {
		return err
	}
	s.print(w, items)
	return nil
}

func (s *entityScreen[T]) Deactivate(ctx context.Context, id int) error {
	item, ok := s.list.Find(id)
	if !ok {
		return fmt.Errorf("registro %d não encontrado", id)
	}
	_, err := s.list.Deactivate(ctx, item)
	return err
}

func (s *entityScreen[T]) Reactivate(ctx context.Context, id int) error {
	view := s.list.InactiveView()
	for _, item := range view.Items {
		if item.EntityID() == id {
			return view.Reactivate(ctx, item)
		}
	}
	return fmt.Errorf("registro inativo %d não encontrado", id)
}

func (s *entityScreen[T]) print(w io.Writer, items []T) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, s.header)
	for _, item := range items {
		fmt.Fprintln(tw, s.row(item))
	}
	tw.Flush()
}

func professorRow(p Professor) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s", p.ID, p.Nome, p.Cpf.Value, p.Titulacao)
}

func salaRow(s Sala) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s", s.ID, s.Nome, optionalInt(s.Capacidade), s.Local)
}

func disciplinaRow(d Disciplina) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s", d.ID, d.Nome, d.Codigo, optionalInt(d.Periodo))
}

func turmaRow(t Turma) string {
	disciplina, professor, sala := "N/A", "N/A", "N/A"
	if t.Disciplina != nil {
		disciplina = t.Disciplina.Nome
	}
	if t.Professor != nil {
		professor = t.Professor.Nome
	}
	if t.Sala != nil {
		sala = t.Sala.Nome
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s - %s\t%s",
		t.ID, t.Nome, disciplina, professor, t.DiaSemana, t.HorarioInicio, t.HorarioTermino, sala)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
