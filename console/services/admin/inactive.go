package main

import "context"

// InactiveView é a "lixeira" de uma entidade: lista somente leitura dos
// registros desativados, com a ação de reativar delegada ao dono da coleção
type InactiveView[T Record] struct {
	Items        []T
	onReactivate func(ctx context.Context, item T) error
}

// NewInactiveView deriva a lista de inativos da coleção completa
func NewInactiveView[T Record](collection []T, onReactivate func(ctx context.Context, item T) error) InactiveView[T] {
	return InactiveView[T]{
		Items:        Inactive(collection),
		onReactivate: onReactivate,
	}
}

// Reactivate repassa a ação para o EntityList dono da coleção
func (v InactiveView[T]) Reactivate(ctx context.Context, item T) error {
	return v.onReactivate(ctx, item)
}

// Inactive devolve os registros com status false, na ordem original
func Inactive[T Record](items []T) []T {
	out := make([]T, 0)
	for _, item := range items {
		if !item.Active() {
			out = append(out, item)
		}
	}
	return out
}
