package main

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockResource simula o recurso remoto de uma coleção
type MockResource[T Record] struct {
	mock.Mock
}

func (m *MockResource[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockResource[T]) Search(ctx context.Context, nome string) ([]T, error) {
	args := m.Called(ctx, nome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockResource[T]) Create(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

func (m *MockResource[T]) Update(ctx context.Context, id int, patch any) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// recordingNotifier guarda as notificações exibidas
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

// professorBackend é um recurso em memória que aplica os patches de status
type professorBackend struct {
	mu    sync.Mutex
	items []Professor
}

func (b *professorBackend) List(context.Context) ([]Professor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Professor(nil), b.items...), nil
}

func (b *professorBackend) Search(ctx context.Context, nome string) ([]Professor, error) {
	return b.List(ctx)
}

func (b *professorBackend) Create(_ context.Context, body any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := body.(Professor)
	p.ID = len(b.items) + 1
	b.items = append(b.items, p)
	return nil
}

func (b *professorBackend) Update(_ context.Context, id int, patch any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		switch p := patch.(type) {
		case StatusPatch:
			b.items[i].Status = p.Status
		case Professor:
			b.items[i] = p
		}
		return nil
	}
	return &RemoteError{StatusCode: 404, Message: "Professor não encontrado"}
}

var professorNoun = Noun{Singular: "professor", Plural: "professores"}
var turmaNoun = Noun{Singular: "turma", Plural: "turmas", Feminine: true}

func TestFilterActive_ExcludesInactiveEvenWhenNameMatches(t *testing.T) {
	// Arrange
	items := []Professor{
		{ID: 1, Nome: "Ana", Status: true},
		{ID: 2, Nome: "Bia", Status: false},
	}

	// Act
	result := FilterActive(items, "a")

	// Assert
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ID)
}

func TestFilterActive_EmptyTermReturnsAllActiveInOrder(t *testing.T) {
	items := []Sala{
		{ID: 3, Nome: "Lab 3", Status: true},
		{ID: 1, Nome: "Auditório", Status: false},
		{ID: 2, Nome: "Sala 12", Status: true},
	}

	result := FilterActive(items, "")

	assert.Equal(t, []Sala{items[0], items[2]}, result)
}

func TestFilterActive_IsCaseInsensitive(t *testing.T) {
	items := []Disciplina{
		{ID: 1, Nome: "Cálculo I", Status: true},
		{ID: 2, Nome: "Banco de Dados", Status: true},
		{ID: 3, Nome: "Estrutura de DADOS", Status: true},
	}

	result := FilterActive(items, "dados")

	require.Len(t, result, 2)
	assert.Equal(t, 2, result[0].ID)
	assert.Equal(t, 3, result[1].ID)
}

func TestEntityList_LoadReplacesState(t *testing.T) {
	// Arrange
	resource := new(MockResource[Professor])
	items := []Professor{{ID: 1, Nome: "Ana", Status: true}}
	resource.On("List", mock.Anything).Return(items, nil)
	list := NewEntityList[Professor](resource, professorNoun, &recordingNotifier{}, fixedConfirmer(true))

	// Act
	err := list.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, items, list.Items())
	resource.AssertExpectations(t)
}

func TestEntityList_LoadFailureKeepsPreviousState(t *testing.T) {
	// Arrange
	resource := new(MockResource[Professor])
	items := []Professor{{ID: 1, Nome: "Ana", Status: true}}
	resource.On("List", mock.Anything).Return(items, nil).Once()
	resource.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	notifier := &recordingNotifier{}
	list := NewEntityList[Professor](resource, professorNoun, notifier, fixedConfirmer(true))
	require.NoError(t, list.Load(context.Background()))

	// Act
	err := list.Load(context.Background())

	// Assert
	assert.Error(t, err)
	assert.Equal(t, items, list.Items())
	assert.Equal(t, "Erro: Erro inesperado ao buscar os professores.", notifier.last())
}

func TestEntityList_LoadFailureUsesServerMessage(t *testing.T) {
	resource := new(MockResource[Turma])
	resource.On("List", mock.Anything).Return(nil, &RemoteError{StatusCode: 500, Message: "Banco indisponível"})
	notifier := &recordingNotifier{}
	list := NewEntityList[Turma](resource, turmaNoun, notifier, fixedConfirmer(true))

	err := list.Load(context.Background())

	assert.Error(t, err)
	assert.Empty(t, list.Items())
	assert.Equal(t, "Erro: Banco indisponível", notifier.last())
}

func TestEntityList_SaveWithoutIDCreates(t *testing.T) {
	// Arrange
	resource := new(MockResource[Professor])
	draft := Professor{Nome: "Carlos", Cpf: Cpf{Value: "123.456.789-01"}, Titulacao: "Mestre", Status: true}
	resource.On("Create", mock.Anything, draft).Return(nil).Once()
	resource.On("List", mock.Anything).Return([]Professor{{ID: 1, Nome: "Carlos", Status: true}}, nil)
	notifier := &recordingNotifier{}
	list := NewEntityList[Professor](resource, professorNoun, notifier, fixedConfirmer(true))
	list.OpenCreate()

	// Act
	err := list.Save(context.Background(), draft)

	// Assert
	require.NoError(t, err)
	resource.AssertNumberOfCalls(t, "Create", 1)
	resource.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, list.DialogOpen())
	assert.Len(t, list.Items(), 1)
	assert.Equal(t, "Professor salvo com sucesso!", notifier.last())
}

func TestEntityList_SaveWithIDUpdates(t *testing.T) {
	// Arrange
	resource := new(MockResource[Turma])
	draft := TurmaDto{ID: 7, Nome: "TADS2025-1", Status: true}
	resource.On("Update", mock.Anything, 7, draft).Return(nil).Once()
	resource.On("List", mock.Anything).Return([]Turma{{ID: 7, Nome: "TADS2025-1", Status: true}}, nil)
	notifier := &recordingNotifier{}
	list := NewEntityList[Turma](resource, turmaNoun, notifier, fixedConfirmer(true))

	// Act
	err := list.Save(context.Background(), draft)

	// Assert
	require.NoError(t, err)
	resource.AssertNumberOfCalls(t, "Update", 1)
	resource.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, "Turma alterada com sucesso!", notifier.last())
}

func TestEntityList_SaveFailureKeepsDialogOpen(t *testing.T) {
	// Arrange
	resource := new(MockResource[Turma])
	existing := []Turma{{ID: 7, Nome: "TADS2025-1", Status: true}}
	resource.On("List", mock.Anything).Return(existing, nil).Once()
	resource.On("Update", mock.Anything, 7, mock.Anything).Return(&RemoteError{StatusCode: 200})
	notifier := &recordingNotifier{}
	list := NewEntityList[Turma](resource, turmaNoun, notifier, fixedConfirmer(true))
	require.NoError(t, list.Load(context.Background()))
	require.True(t, list.OpenEdit(7))
	list.CloseDialog()

	// Act
	err := list.Save(context.Background(), TurmaDto{ID: 7, Nome: "Outra"})

	// Assert
	assert.Error(t, err)
	assert.True(t, list.DialogOpen())
	assert.Equal(t, existing, list.Items())
	assert.Equal(t, "Erro: Erro inesperado ao alterar a turma.", notifier.last())
	selected, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, 7, selected.ID)
	resource.AssertNumberOfCalls(t, "List", 1)
}

func TestEntityList_SaveFailureShowsServerMessage(t *testing.T) {
	resource := new(MockResource[Sala])
	resource.On("Create", mock.Anything, mock.Anything).Return(&RemoteError{StatusCode: 400, Message: "Nome já cadastrado"})
	notifier := &recordingNotifier{}
	list := NewEntityList[Sala](resource, Noun{Singular: "sala", Plural: "salas", Feminine: true}, notifier, fixedConfirmer(true))

	err := list.Save(context.Background(), Sala{Nome: "Lab 1", Status: true})

	assert.Error(t, err)
	assert.True(t, list.DialogOpen())
	assert.Equal(t, "Erro: Nome já cadastrado", notifier.last())
}

func TestEntityList_DeactivateRequiresConfirmation(t *testing.T) {
	// Arrange
	resource := new(MockResource[Professor])
	list := NewEntityList[Professor](resource, professorNoun, &recordingNotifier{}, fixedConfirmer(false))

	// Act
	done, err := list.Deactivate(context.Background(), Professor{ID: 1, Nome: "Ana", Status: true})

	// Assert
	require.NoError(t, err)
	assert.False(t, done)
	resource.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntityList_DeactivateWithoutIDIsIgnored(t *testing.T) {
	resource := new(MockResource[Professor])
	list := NewEntityList[Professor](resource, professorNoun, &recordingNotifier{}, fixedConfirmer(true))

	done, err := list.Deactivate(context.Background(), Professor{Nome: "Sem id", Status: true})

	require.NoError(t, err)
	assert.False(t, done)
	resource.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntityList_DeactivateSendsStatusFalseAndReloads(t *testing.T) {
	// Arrange
	resource := new(MockResource[Professor])
	resource.On("Update", mock.Anything, 1, StatusPatch{Status: false}).Return(nil).Once()
	resource.On("List", mock.Anything).Return([]Professor{{ID: 1, Nome: "Ana", Status: false}}, nil).Once()
	notifier := &recordingNotifier{}
	list := NewEntityList[Professor](resource, professorNoun, notifier, fixedConfirmer(true))

	// Act
	done, err := list.Deactivate(context.Background(), Professor{ID: 1, Nome: "Ana", Status: true})

	// Assert
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, list.FilteredActive(""))
	assert.Len(t, list.InactiveView().Items, 1)
	assert.Equal(t, "Professor desativado com sucesso!", notifier.last())
	resource.AssertExpectations(t)
}

func TestEntityList_DeactivateFailureDoesNotReload(t *testing.T) {
	resource := new(MockResource[Professor])
	resource.On("Update", mock.Anything, 1, StatusPatch{Status: false}).Return(errors.New("timeout"))
	notifier := &recordingNotifier{}
	list := NewEntityList[Professor](resource, professorNoun, notifier, fixedConfirmer(true))

	done, err := list.Deactivate(context.Background(), Professor{ID: 1, Nome: "Ana", Status: true})

	assert.Error(t, err)
	assert.False(t, done)
	resource.AssertNotCalled(t, "List", mock.Anything)
	assert.Equal(t, "Erro: Erro inesperado ao desativar o professor.", notifier.last())
}

func TestEntityList_DeactivateThenReactivateRoundTrip(t *testing.T) {
	// Arrange
	original := Professor{ID: 1, Nome: "Ana", Cpf: Cpf{Value: "111.222.333-44"}, Titulacao: "Doutora", Status: true}
	backend := &professorBackend{items: []Professor{original, {ID: 2, Nome: "Bruno", Status: true}}}
	list := NewEntityList[Professor](backend, professorNoun, &recordingNotifier{}, fixedConfirmer(true))
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))

	// Act
	done, err := list.Deactivate(ctx, original)
	require.NoError(t, err)
	require.True(t, done)
	inactive := list.InactiveView()

	// Assert
	require.Len(t, inactive.Items, 1)
	assert.Equal(t, 1, inactive.Items[0].ID)
	assert.Len(t, list.FilteredActive(""), 1)

	require.NoError(t, inactive.Reactivate(ctx, inactive.Items[0]))
	restored, ok := list.Find(1)
	require.True(t, ok)
	assert.Equal(t, original, restored)
	assert.Empty(t, list.InactiveView().Items)
}

func TestEntityList_VisibleUsesSearchTerm(t *testing.T) {
	backend := &professorBackend{items: []Professor{
		{ID: 1, Nome: "Ana", Status: true},
		{ID: 2, Nome: "Bruno", Status: true},
	}}
	list := NewEntityList[Professor](backend, professorNoun, &recordingNotifier{}, fixedConfirmer(true))
	require.NoError(t, list.Load(context.Background()))

	list.SetSearch("BRU")

	visible := list.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bruno", visible[0].Nome)
}

func TestEntityList_InactiveDialogFlags(t *testing.T) {
	list := NewEntityList[Professor](&professorBackend{}, professorNoun, nil, fixedConfirmer(true))

	list.OpenInactive()
	assert.True(t, list.InactiveOpen())

	list.CloseInactive()
	assert.False(t, list.InactiveOpen())
}

func TestEntityList_OpenEditUnknownID(t *testing.T) {
	list := NewEntityList[Professor](&professorBackend{}, professorNoun, nil, fixedConfirmer(true))

	assert.False(t, list.OpenEdit(42))
	assert.False(t, list.DialogOpen())
}
