package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AcademicUseCaseInterface define a interface para o use case
type AcademicUseCaseInterface interface {
	ListProfessores(ctx context.Context, nome string) ([]Professor, error)
	CreateProfessor(ctx context.Context, input ProfessorInput) (*Professor, error)
	UpdateProfessor(ctx context.Context, id int, patch ProfessorPatch) error

	ListSalas(ctx context.Context, nome string) ([]Sala, error)
	CreateSala(ctx context.Context, input SalaInput) (*Sala, error)
	UpdateSala(ctx context.Context, id int, patch SalaPatch) error

	ListDisciplinas(ctx context.Context, nome string) ([]Disciplina, error)
	CreateDisciplina(ctx context.Context, input DisciplinaInput) (*Disciplina, error)
	UpdateDisciplina(ctx context.Context, id int, patch DisciplinaPatch) error

	ListTurmas(ctx context.Context, nome string) ([]Turma, error)
	CreateTurma(ctx context.Context, input TurmaInput) (*Turma, error)
	UpdateTurma(ctx context.Context, id int, patch TurmaPatch) error
}

// AcademicHandler contém os handlers HTTP
type AcademicHandler struct {
	useCase AcademicUseCaseInterface
}

// NewAcademicHandler cria uma nova instância de AcademicHandler
func NewAcademicHandler(useCase AcademicUseCaseInterface) *AcademicHandler {
	return &AcademicHandler{
		useCase: useCase,
	}
}

// RegisterRoutes monta as rotas dos quatro recursos
func (h *AcademicHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	r.GET("/professores", handleList(h.useCase.ListProfessores))
	r.POST("/professores", handleCreate(h.useCase.CreateProfessor))
	r.PUT("/professores/:id", handleUpdate(h.useCase.UpdateProfessor))

	r.GET("/salas", handleList(h.useCase.ListSalas))
	r.POST("/salas", handleCreate(h.useCase.CreateSala))
	r.PUT("/salas/:id", handleUpdate(h.useCase.UpdateSala))

	r.GET("/disciplinas", handleList(h.useCase.ListDisciplinas))
	r.POST("/disciplinas", handleCreate(h.useCase.CreateDisciplina))
	r.PUT("/disciplinas/:id", handleUpdate(h.useCase.UpdateDisciplina))

	r.GET("/turmas", handleList(h.useCase.ListTurmas))
	r.POST("/turmas", handleCreate(h.useCase.CreateTurma))
	r.PUT("/turmas/:id", handleUpdate(h.useCase.UpdateTurma))
}

// HealthCheck verifica a saúde do serviço
func (h *AcademicHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "academic-service",
	})
}

// handleList responde GET /{recurso}?nome=termo
func handleList[T any](list func(context.Context, string) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context(), c.Query("nome"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// handleCreate responde POST /{recurso} com 201 e o registro criado
func handleCreate[In any, Out any](create func(context.Context, In) (*Out, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input In
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		created, err := create(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// handleUpdate responde PUT /{recurso}/:id com 204 e corpo vazio
func handleUpdate[P any](update func(context.Context, int, P) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		var patch P
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := update(c.Request.Context(), id, patch); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Registro não encontrado"})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor"})
	}
}
