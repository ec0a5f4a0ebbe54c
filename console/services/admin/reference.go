package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifica a entidade apontada por uma chave estrangeira
type Kind string

const (
	KindProfessor  Kind = "professor"
	KindSala       Kind = "sala"
	KindDisciplina Kind = "disciplina"
)

// ErrInvalidReference indica um valor de seleção que não é um id válido
var ErrInvalidReference = errors.New("invalid reference")

// Ref é uma chave estrangeira tipada
type Ref struct {
	Kind Kind
	ID   int
}

// ParseRef converte o valor textual de um seletor em Ref. Qualquer valor que
// não seja um inteiro positivo é rejeitado
func ParseRef(kind Kind, raw string) (Ref, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Ref{}, fmt.Errorf("%w: %s not selected", ErrInvalidReference, kind)
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidReference, kind, raw)
	}
	if id <= 0 {
		return Ref{}, fmt.Errorf("%w: %s id must be positive, got %d", ErrInvalidReference, kind, id)
	}

	return Ref{Kind: kind, ID: id}, nil
}

// Ptr devolve o id no formato aceito pelo TurmaDto
func (r Ref) Ptr() *int {
	return intPtr(r.ID)
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// formatRef é o inverso de ParseRef para preencher o formulário
func formatRef(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}
