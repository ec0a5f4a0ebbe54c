package main

// Record é o contrato mínimo que uma entidade precisa cumprir para ser
// gerenciada por um EntityList
type Record interface {
	EntityID() int
	DisplayName() string
	Active() bool
}

// Cpf representa o documento do professor no formato enviado pela API
type Cpf struct {
	Value string `json:"value"`
}

// Professor representa um professor cadastrado
type Professor struct {
	ID        int    `json:"id,omitempty"`
	Nome      string `json:"nome"`
	Cpf       Cpf    `json:"cpf"`
	Titulacao string `json:"titulacao"`
	Status    bool   `json:"status"`
}

func (p Professor) EntityID() int       { return p.ID }
func (p Professor) DisplayName() string { return p.Nome }
func (p Professor) Active() bool        { return p.Status }

// Sala representa uma sala de aula
type Sala struct {
	ID         int    `json:"id,omitempty"`
	Nome       string `json:"nome"`
	Capacidade *int   `json:"capacidade"`
	Local      string `json:"local"`
	Status     bool   `json:"status"`
}

func (s Sala) EntityID() int       { return s.ID }
func (s Sala) DisplayName() string { return s.Nome }
func (s Sala) Active() bool        { return s.Status }

// Disciplina representa uma disciplina da grade
type Disciplina struct {
	ID      int    `json:"id,omitempty"`
	Nome    string `json:"nome"`
	Codigo  string `json:"codigo"`
	Periodo *int   `json:"periodo"`
	Status  bool   `json:"status"`
}

func (d Disciplina) EntityID() int       { return d.ID }
func (d Disciplina) DisplayName() string { return d.Nome }
func (d Disciplina) Active() bool        { return d.Status }

// Turma é o modelo de leitura devolvido por GET /turmas, com as relações
// já resolvidas pelo backend
type Turma struct {
	ID             int         `json:"id,omitempty"`
	Nome           string      `json:"nome"`
	HorarioInicio  string      `json:"horarioInicio"`
	HorarioTermino string      `json:"horarioTermino"`
	DiaSemana      string      `json:"diaSemana"`
	Professor      *Professor  `json:"professor"`
	Sala           *Sala       `json:"sala"`
	Disciplina     *Disciplina `json:"disciplina"`
	Status         bool        `json:"status"`
}

func (t Turma) EntityID() int       { return t.ID }
func (t Turma) DisplayName() string { return t.Nome }
func (t Turma) Active() bool        { return t.Status }

// Draft converte a turma lida no modelo de escrita usado pelo formulário
func (t Turma) Draft() TurmaDto {
	dto := TurmaDto{
		ID:             t.ID,
		Nome:           t.Nome,
		HorarioInicio:  t.HorarioInicio,
		HorarioTermino: t.HorarioTermino,
		DiaSemana:      t.DiaSemana,
		Status:         t.Status,
	}
	if t.Professor != nil {
		dto.IDProfessor = intPtr(t.Professor.ID)
	}
	if t.Sala != nil {
		dto.IDSala = intPtr(t.Sala.ID)
	}
	if t.Disciplina != nil {
		dto.IDDisciplina = intPtr(t.Disciplina.ID)
	}
	return dto
}

// TurmaDto é o modelo de escrita de turma, com as chaves estrangeiras como inteiros
type TurmaDto struct {
	ID             int    `json:"id,omitempty"`
	Nome           string `json:"nome"`
	HorarioInicio  string `json:"horarioInicio"`
	HorarioTermino string `json:"horarioTermino"`
	DiaSemana      string `json:"diaSemana"`
	IDProfessor    *int   `json:"idProfessor"`
	IDSala         *int   `json:"idSala"`
	IDDisciplina   *int   `json:"idDisciplina"`
	Status         bool   `json:"status"`
}

func (t TurmaDto) EntityID() int { return t.ID }

// StatusPatch é o corpo parcial usado para desativar e reativar registros
type StatusPatch struct {
	Status bool `json:"status"`
}

// DiasSemana lista os dias aceitos pelo backend
var DiasSemana = []string{"SEGUNDA", "TERCA", "QUARTA", "QUINTA", "SEXTA", "SABADO"}

func intPtr(v int) *int {
	return &v
}
