package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// Cpf representa o documento do professor
type Cpf struct {
	Value string `json:"value" binding:"required"`
}

// Professor representa um professor cadastrado
type Professor struct {
	ID        int    `json:"id" db:"id"`
	Nome      string `json:"nome" db:"nome"`
	Cpf       Cpf    `json:"cpf" db:"cpf"`
	Titulacao string `json:"titulacao" db:"titulacao"`
	Status    bool   `json:"status" db:"status"`
}

// Sala representa uma sala de aula
type Sala struct {
	ID         int    `json:"id" db:"id"`
	Nome       string `json:"nome" db:"nome"`
	Capacidade *int   `json:"capacidade" db:"capacidade"`
	Local      string `json:"local" db:"local"`
	Status     bool   `json:"status" db:"status"`
}

// Disciplina representa uma disciplina da grade
type Disciplina struct {
	ID      int    `json:"id" db:"id"`
	Nome    string `json:"nome" db:"nome"`
	Codigo  string `json:"codigo" db:"codigo"`
	Periodo *int   `json:"periodo" db:"periodo"`
	Status  bool   `json:"status" db:"status"`
}

// Turma representa uma turma com as relações resolvidas
type Turma struct {
	ID             int         `json:"id" db:"id"`
	Nome           string      `json:"nome" db:"nome"`
	HorarioInicio  string      `json:"horarioInicio" db:"horario_inicio"`
	HorarioTermino string      `json:"horarioTermino" db:"horario_termino"`
	DiaSemana      string      `json:"diaSemana" db:"dia_semana"`
	Professor      *Professor  `json:"professor"`
	Sala           *Sala       `json:"sala"`
	Disciplina     *Disciplina `json:"disciplina"`
	Status         bool        `json:"status" db:"status"`
}

// ProfessorInput é o corpo de POST /professores
type ProfessorInput struct {
	Nome      string `json:"nome" binding:"required"`
	Cpf       Cpf    `json:"cpf" binding:"required"`
	Titulacao string `json:"titulacao" binding:"required"`
	Status    *bool  `json:"status"`
}

// ProfessorPatch é o corpo de PUT /professores/:id; campos ausentes não mudam
type ProfessorPatch struct {
	Nome      *string `json:"nome"`
	Cpf       *Cpf    `json:"cpf"`
	Titulacao *string `json:"titulacao"`
	Status    *bool   `json:"status"`
}

// SalaInput é o corpo de POST /salas
type SalaInput struct {
	Nome       string `json:"nome" binding:"required"`
	Capacidade *int   `json:"capacidade" binding:"omitempty,gt=0"`
	Local      string `json:"local" binding:"required"`
	Status     *bool  `json:"status"`
}

// SalaPatch é o corpo de PUT /salas/:id
type SalaPatch struct {
	Nome       *string `json:"nome"`
	Capacidade *int    `json:"capacidade" binding:"omitempty,gt=0"`
	Local      *string `json:"local"`
	Status     *bool   `json:"status"`
}

// DisciplinaInput é o corpo de POST /disciplinas
type DisciplinaInput struct {
	Nome    string `json:"nome" binding:"required"`
	Codigo  string `json:"codigo" binding:"required"`
	Periodo *int   `json:"periodo" binding:"omitempty,gt=0"`
	Status  *bool  `json:"status"`
}

// DisciplinaPatch é o corpo de PUT /disciplinas/:id
type DisciplinaPatch struct {
	Nome    *string `json:"nome"`
	Codigo  *string `json:"codigo"`
	Periodo *int    `json:"periodo" binding:"omitempty,gt=0"`
	Status  *bool   `json:"status"`
}

// TurmaInput é o corpo de POST /turmas, com as chaves estrangeiras como ids
type TurmaInput struct {
	Nome           string `json:"nome" binding:"required"`
	HorarioInicio  string `json:"horarioInicio" binding:"required"`
	HorarioTermino string `json:"horarioTermino" binding:"required"`
	DiaSemana      string `json:"diaSemana" binding:"required"`
	IDProfessor    *int   `json:"idProfessor"`
	IDSala         *int   `json:"idSala"`
	IDDisciplina   *int   `json:"idDisciplina"`
	Status         *bool  `json:"status"`
}

// TurmaPatch é o corpo de PUT /turmas/:id
type TurmaPatch struct {
	Nome           *string     `json:"nome"`
	HorarioInicio  *string     `json:"horarioInicio"`
	HorarioTermino *string     `json:"horarioTermino"`
	DiaSemana      *string     `json:"diaSemana"`
	IDProfessor    NullableRef `json:"idProfessor"`
	IDSala         NullableRef `json:"idSala"`
	IDDisciplina   NullableRef `json:"idDisciplina"`
	Status         *bool       `json:"status"`
}

// NullableRef é uma chave estrangeira opcional em um PUT: ausente mantém o
// valor atual, null limpa a referência e um inteiro a troca
type NullableRef struct {
	Set bool
	ID  *int
}

// RefTo monta uma referência presente apontando para id
func RefTo(id int) NullableRef {
	return NullableRef{Set: true, ID: &id}
}

// ClearRef monta uma referência presente e nula
func ClearRef() NullableRef {
	return NullableRef{Set: true}
}

// UnmarshalJSON só é chamado quando a chave aparece no corpo, inclusive com null
func (r *NullableRef) UnmarshalJSON(data []byte) error {
	r.Set = true
	if string(data) == "null" {
		r.ID = nil
		return nil
	}

	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("%w: referência deve ser um inteiro ou null", ErrInvalidInput)
	}
	if id <= 0 {
		return fmt.Errorf("%w: referência deve ser positiva", ErrInvalidInput)
	}
	r.ID = &id
	return nil
}

// DiaSemana lista os dias aceitos para uma turma
const (
	DiaSegunda = "SEGUNDA"
	DiaTerca   = "TERCA"
	DiaQuarta  = "QUARTA"
	DiaQuinta  = "QUINTA"
	DiaSexta   = "SEXTA"
	DiaSabado  = "SABADO"
)

var diasSemana = map[string]bool{
	DiaSegunda: true,
	DiaTerca:   true,
	DiaQuarta:  true,
	DiaQuinta:  true,
	DiaSexta:   true,
	DiaSabado:  true,
}

// validateHorario aceita somente HH:MM
func validateHorario(field, value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, field)
	}
	return nil
}

// validateDiaSemana aceita somente os dias de SEGUNDA a SABADO
func validateDiaSemana(value string) error {
	if !diasSemana[value] {
		return fmt.Errorf("%w: invalid diaSemana '%s'", ErrInvalidInput, value)
	}
	return nil
}

func statusOrDefault(status *bool) bool {
	if status == nil {
		return true
	}
	return *status
}
