package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNewPedido_ComputesTotalFromItems(t *testing.T) {
	// Arrange
	itens := []ItemPedido{
		{ProdutoID: 1, Quantidade: 1, PrecoUnitario: 750.90},
		{ProdutoID: 4, Quantidade: 2, PrecoUnitario: 620.75},
	}

	// Act
	pedido := NewPedido("CLI001", itens, PagamentoCartao, enderecoMaria, testNow)

	// Assert
	assert.InDelta(t, 1992.40, pedido.Total, 0.001)
	assert.Equal(t, PedidoPendente, pedido.Status)
	assert.Equal(t, testNow, pedido.DataPedido)
	assert.Nil(t, pedido.DataEntrega)
}

func TestPedido_AdvanceFollowsStateMachine(t *testing.T) {
	pedido := NewPedido("CLI001", []ItemPedido{{ProdutoID: 2, Quantidade: 1, PrecoUnitario: 550}}, PagamentoPix, Endereco{}, testNow)

	for _, next := range []string{PedidoAprovado, PedidoEmPreparo, PedidoEnviado, PedidoEntregue} {
		require.NoError(t, pedido.Advance(next, testNow), next)
		assert.Equal(t, next, pedido.Status)
	}

	require.NotNil(t, pedido.DataEntrega)
	assert.Equal(t, testNow, *pedido.DataEntrega)
	assert.InDelta(t, 550.0, pedido.Total, 0.001)
}

func TestPedido_AdvanceRejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "skip approval", from: PedidoPendente, to: PedidoEnviado},
		{name: "cancel shipped", from: PedidoEnviado, to: PedidoCancelado},
		{name: "reopen delivered", from: PedidoEntregue, to: PedidoPendente},
		{name: "revive cancelled", from: PedidoCancelado, to: PedidoAprovado},
		{name: "go back", from: PedidoEmPreparo, to: PedidoAprovado},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pedido := &Pedido{Status: tt.from}

			err := pedido.Advance(tt.to, testNow)

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, pedido.Status)
		})
	}
}

func TestPedido_CancelFromOpenStates(t *testing.T) {
	for _, from := range []string{PedidoPendente, PedidoAprovado, PedidoEmPreparo} {
		pedido := &Pedido{Status: from}
		assert.True(t, pedido.CanTransition(PedidoCancelado), from)
	}
}

func TestPedido_AdvanceToSameStatusIsNoop(t *testing.T) {
	pedido := &Pedido{Status: PedidoEnviado}

	assert.NoError(t, pedido.Advance(PedidoEnviado, testNow))
	assert.Nil(t, pedido.DataEntrega)
}

func TestProdutoPatch_ApplyOnlyPresentFields(t *testing.T) {
	produto := Produto{ID: 1, Nome: "Chanel No. 5", Preco: 750.90, Estoque: 50}
	estoque := 12

	ProdutoPatch{Estoque: &estoque}.Apply(&produto)

	assert.Equal(t, 12, produto.Estoque)
	assert.Equal(t, "Chanel No. 5", produto.Nome)
	assert.InDelta(t, 750.90, produto.Preco, 0.001)
}
