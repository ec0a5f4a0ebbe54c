package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// Notifier exibe uma notificação bloqueante para o operador
type Notifier interface {
	Notify(message string)
}

// Confirmer pede confirmação explícita ao operador
type Confirmer interface {
	Confirm(prompt string) bool
}

// Noun descreve como uma entidade aparece nas mensagens ao operador
type Noun struct {
	Singular string
	Plural   string
	Feminine bool
}

func (n Noun) agree(masculine string) string {
	if n.Feminine {
		return strings.TrimSuffix(masculine, "o") + "a"
	}
	return masculine
}

func (n Noun) article() string {
	if n.Feminine {
		return "a"
	}
	return "o"
}

func (n Noun) title() string {
	if n.Singular == "" {
		return ""
	}
	return strings.ToUpper(n.Singular[:1]) + n.Singular[1:]
}

// EntityList mantém a cópia local de uma coleção e media todas as
// mutações através do Resource remoto
type EntityList[T Record] struct {
	resource  Resource[T]
	noun      Noun
	notifier  Notifier
	confirmer Confirmer

	mu           sync.Mutex
	items        []T
	selected     *T
	search       string
	dialogOpen   bool
	inactiveOpen bool
}

// NewEntityList cria uma nova instância de EntityList
func NewEntityList[T Record](resource Resource[T], noun Noun, notifier Notifier, confirmer Confirmer) *EntityList[T] {
	return &EntityList[T]{
		resource:  resource,
		noun:      noun,
		notifier:  notifier,
		confirmer: confirmer,
	}
}

// Load busca a coleção completa. Em caso de falha o estado anterior é mantido
func (l *EntityList[T]) Load(ctx context.Context) error {
	items, err := l.resource.List(ctx)
	if err != nil {
		log.Printf("❌ Failed to load %s: %v", l.noun.Plural, err)
		l.notifyError(err, fmt.Sprintf("Erro inesperado ao buscar %ss %s.", l.noun.article(), l.noun.Plural))
		return err
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items devolve uma cópia da coleção carregada, na ordem do servidor
func (l *EntityList[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// SetSearch altera o termo de busca usado por Visible
func (l *EntityList[T]) SetSearch(term string) {
	l.mu.Lock()
	l.search = term
	l.mu.Unlock()
}

// Visible aplica o termo de busca atual sobre os registros ativos
func (l *EntityList[T]) Visible() []T {
	l.mu.Lock()
	term := l.search
	l.mu.Unlock()
	return l.FilteredActive(term)
}

// FilteredActive devolve os registros ativos cujo nome contém term
func (l *EntityList[T]) FilteredActive(term string) []T {
	return FilterActive(l.Items(), term)
}

// FilterActive mantém a ordem original e ignora maiúsculas/minúsculas
func FilterActive[T Record](items []T, term string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !item.Active() {
			continue
		}
		if strings.Contains(strings.ToLower(item.DisplayName()), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Find busca um registro carregado pelo id
func (l *EntityList[T]) Find(id int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// OpenCreate abre o diálogo de edição vazio
func (l *EntityList[T]) OpenCreate() {
	l.mu.Lock()
	l.selected = nil
	l.dialogOpen = true
	l.mu.Unlock()
}

// OpenEdit abre o diálogo de edição com o registro selecionado
func (l *EntityList[T]) OpenEdit(id int) bool {
	item, ok := l.Find(id)
	if !ok {
		return false
	}

	l.mu.Lock()
	l.selected = &item
	l.dialogOpen = true
	l.mu.Unlock()
	return true
}

// Selected devolve o registro em edição, se houver
func (l *EntityList[T]) Selected() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		var zero T
		return zero, false
	}
	return *l.selected, true
}

// CloseDialog fecha o diálogo de edição
func (l *EntityList[T]) CloseDialog() {
	l.mu.Lock()
	l.dialogOpen = false
	l.mu.Unlock()
}

// DialogOpen informa se o diálogo de edição está aberto
func (l *EntityList[T]) DialogOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dialogOpen
}

// Save cria o registro quando não há id, ou atualiza quando há.
// Em caso de falha o diálogo continua aberto para não perder o que foi digitado
func (l *EntityList[T]) Save(ctx context.Context, draft interface{ EntityID() int }) error {
	id := draft.EntityID()
	action, done := "salvar", "salvo"
	var err error
	if id == 0 {
		err = l.resource.Create(ctx, draft)
	} else {
		action, done = "alterar", "alterado"
		err = l.resource.Update(ctx, id, draft)
	}

	if err != nil {
		log.Printf("❌ Failed to save %s (id=%d): %v", l.noun.Singular, id, err)
		l.notifyError(err, fmt.Sprintf("Erro inesperado ao %s %s %s.", action, l.noun.article(), l.noun.Singular))
		l.mu.Lock()
		l.dialogOpen = true
		l.mu.Unlock()
		return err
	}

	l.notify(fmt.Sprintf("%s %s com sucesso!", l.noun.title(), l.noun.agree(done)))
	l.CloseDialog()
	return l.Load(ctx)
}

// Deactivate marca o registro como inativo após confirmação do operador.
// Devolve false quando o operador desistiu ou o registro não tem id
func (l *EntityList[T]) Deactivate(ctx context.Context, item T) (bool, error) {
	if item.EntityID() == 0 {
		return false, nil
	}

	prompt := fmt.Sprintf("Tem certeza que deseja desativar %s %s \"%s\"?", l.noun.article(), l.noun.Singular, item.DisplayName())
	if !l.confirmer.Confirm(prompt) {
		return false, nil
	}

	if err := l.setStatus(ctx, item, false); err != nil {
		return false, err
	}
	return true, nil
}

// Reactivate marca o registro como ativo novamente
func (l *EntityList[T]) Reactivate(ctx context.Context, item T) error {
	if item.EntityID() == 0 {
		return nil
	}
	return l.setStatus(ctx, item, true)
}

func (l *EntityList[T]) setStatus(ctx context.Context, item T, status bool) error {
	verb, done := "desativar", "desativado"
	if status {
		verb, done = "reativar", "reativado"
	}

	if err := l.resource.Update(ctx, item.EntityID(), StatusPatch{Status: status}); err != nil {
		log.Printf("❌ Failed to %s %s %d: %v", verb, l.noun.Singular, item.EntityID(), err)
		l.notifyError(err, fmt.Sprintf("Erro inesperado ao %s %s %s.", verb, l.noun.article(), l.noun.Singular))
		return err
	}

	l.notify(fmt.Sprintf("%s %s com sucesso!", l.noun.title(), l.noun.agree(done)))
	return l.Load(ctx)
}

// OpenInactive abre a lista de inativos
func (l *EntityList[T]) OpenInactive() {
	l.mu.Lock()
	l.inactiveOpen = true
	l.mu.Unlock()
}

// CloseInactive fecha a lista de inativos
func (l *EntityList[T]) CloseInactive() {
	l.mu.Lock()
	l.inactiveOpen = false
	l.mu.Unlock()
}

// InactiveOpen informa se a lista de inativos está aberta
func (l *EntityList[T]) InactiveOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inactiveOpen
}

// InactiveView monta a lixeira a partir do estado atual
func (l *EntityList[T]) InactiveView() InactiveView[T] {
	return NewInactiveView(l.Items(), l.Reactivate)
}

func (l *EntityList[T]) notify(message string) {
	if l.notifier != nil {
		l.notifier.Notify(message)
	}
}

func (l *EntityList[T]) notifyError(err error, fallback string) {
	l.notify("Erro: " + messageOr(err, fallback))
}
