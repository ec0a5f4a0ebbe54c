package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newTestStore() (*StoreUseCase, *MemoryRepository) {
	repo := newSeededRepository()
	uc := NewStoreUseCase(repo, tracenoop.NewTracerProvider().Tracer("test"), fixedClock(testNow))
	return uc, repo
}

func TestStoreUseCase_LoginSuccessSetsSession(t *testing.T) {
	// Arrange
	uc, repo := newTestStore()
	session := NewSession()

	// Act
	result := uc.Login(context.Background(), session, "gerente@universys.com", "123456")

	// Assert
	require.True(t, result.Success)
	require.NotNil(t, session.User())
	assert.Equal(t, "USR002", session.User().ID)
	stored, _ := repo.GetUsuario("USR002")
	assert.Equal(t, testNow, stored.UltimoAcesso)
}

func TestStoreUseCase_LoginFailureLeavesSessionUnchanged(t *testing.T) {
	// Arrange
	uc, _ := newTestStore()
	session := NewSession()
	require.True(t, uc.Login(context.Background(), session, "admin@gmail.com", "123456").Success)

	// Act
	result := uc.Login(context.Background(), session, "gerente@universys.com", "errada")

	// Assert
	assert.False(t, result.Success)
	assert.Equal(t, "Email ou senha inválidos", result.Message)
	assert.Nil(t, result.Usuario)
	assert.Equal(t, "USR001", session.User().ID)
}

func TestStoreUseCase_LogoutClearsSession(t *testing.T) {
	uc, _ := newTestStore()
	session := NewSession()
	uc.Login(context.Background(), session, "admin@gmail.com", "123456")

	uc.Logout(context.Background(), session)

	assert.Nil(t, session.User())
	_, err := uc.CurrentUser(session)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUseCase_DashboardIsIdempotent(t *testing.T) {
	uc, _ := newTestStore()

	first := uc.DashboardStats(context.Background())
	second := uc.DashboardStats(context.Background())

	assert.Equal(t, first, second)
}

func TestStoreUseCase_DeliveredOrderIncreasesTotalVendas(t *testing.T) {
	// Arrange
	uc, _ := newTestStore()
	before := uc.DashboardStats(context.Background())
	pedido := NewPedido("CLI002", []ItemPedido{
		{ProdutoID: 6, Quantidade: 3, PrecoUnitario: 480.00},
	}, PagamentoPix, enderecoJoao, testNow)
	pedido.Status = PedidoEntregue

	// Act
	created, err := uc.AddPedido(context.Background(), *pedido)
	after := uc.DashboardStats(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.InDelta(t, before.TotalVendas+1440.00, after.TotalVendas, 0.001)
	assert.Equal(t, before.TotalPedidos+1, after.TotalPedidos)
}

func TestStoreUseCase_CreatePedidoUsesCatalogPrice(t *testing.T) {
	// Arrange
	uc, _ := newTestStore()

	// Act
	pedido, err := uc.CreatePedido(context.Background(), NovoPedidoRequest{
		ClienteID:      "CLI003",
		Itens:          []ItemPedido{{ProdutoID: 8, Quantidade: 2}},
		FormaPagamento: PagamentoCartao,
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 1780.00, pedido.Total, 0.001)
	assert.Equal(t, PedidoPendente, pedido.Status)
	assert.Equal(t, enderecoAna, pedido.EnderecoEntrega)
	assert.Equal(t, testNow, pedido.DataPedido)
}

func TestStoreUseCase_CreatePedidoRejectsUnknownReferences(t *testing.T) {
	uc, _ := newTestStore()

	_, err := uc.CreatePedido(context.Background(), NovoPedidoRequest{
		ClienteID:      "CLI999",
		Itens:          []ItemPedido{{ProdutoID: 1, Quantidade: 1}},
		FormaPagamento: PagamentoPix,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.CreatePedido(context.Background(), NovoPedidoRequest{
		ClienteID:      "CLI001",
		Itens:          []ItemPedido{{ProdutoID: 77, Quantidade: 1}},
		FormaPagamento: PagamentoPix,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStoreUseCase_AdvancePedidoKeepsTotal(t *testing.T) {
	// Arrange
	uc, _ := newTestStore()

	// Act
	pedido, err := uc.AdvancePedido(context.Background(), 2, PedidoEntregue)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, PedidoEntregue, pedido.Status)
	assert.InDelta(t, 550.00, pedido.Total, 0.001)
	require.NotNil(t, pedido.DataEntrega)
	assert.InDelta(t, 1992.40+550.00, uc.DashboardStats(context.Background()).TotalVendas, 0.001)
}

func TestStoreUseCase_UpdatePedidoInvalidTransitionWritesNothing(t *testing.T) {
	uc, repo := newTestStore()
	obs := "urgente"
	status := PedidoPendente

	_, err := uc.UpdatePedido(context.Background(), 2, PedidoPatch{Status: &status, Observacoes: &obs})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	stored, _ := repo.GetPedido(2)
	assert.Equal(t, PedidoEnviado, stored.Status)
	assert.Empty(t, stored.Observacoes)
}

func TestStoreUseCase_UpdateProdutoStampsUpdatedAt(t *testing.T) {
	uc, _ := newTestStore()
	preco := 799.90

	produto, err := uc.UpdateProduto(context.Background(), 1, ProdutoPatch{Preco: &preco})

	require.NoError(t, err)
	assert.InDelta(t, 799.90, produto.Preco, 0.001)
	assert.Equal(t, testNow, produto.UpdatedAt)
}

func TestStoreUseCase_AddProdutoAlwaysGetsNextID(t *testing.T) {
	uc, repo := newTestStore()

	created, err := uc.AddProduto(context.Background(), NovoProduto{Nome: "Clone", Preco: 10, Estoque: 1})

	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, testNow, created.CreatedAt)
	stored, _ := repo.GetProduto(1)
	assert.Equal(t, "Chanel No. 5", stored.Nome)
}

func TestStoreUseCase_UpdatePerfilRejectsEmailOfAnotherUser(t *testing.T) {
	// Arrange
	uc, repo := newTestStore()

	// Act
	_, err := uc.UpdatePerfil(context.Background(), "USR003", PerfilUpdate{
		Nome:           "João Vendedor",
		Email:          "admin@gmail.com",
		Telefone:       "(11) 97777-7777",
		SenhaAtual:     "123456",
		NovaSenha:      "trocada",
		ConfirmarSenha: "trocada",
	})

	// Assert
	assert.ErrorIs(t, err, ErrConflict)
	_, ok := repo.Authenticate("admin@gmail.com", "trocada")
	assert.False(t, ok)
	usuario, ok := repo.Authenticate("admin@gmail.com", "123456")
	require.True(t, ok)
	assert.Equal(t, "USR001", usuario.ID)
}

func TestStoreUseCase_UpdatePerfilPasswordRules(t *testing.T) {
	base := PerfilUpdate{Nome: "Admin", Email: "admin@gmail.com", Telefone: "(11) 99999-9999"}

	tests := []struct {
		name    string
		mutate  func(*PerfilUpdate)
		wantErr bool
	}{
		{name: "no password change", mutate: func(*PerfilUpdate) {}},
		{name: "new password without current", mutate: func(p *PerfilUpdate) {
			p.NovaSenha, p.ConfirmarSenha = "abcdef", "abcdef"
		}, wantErr: true},
		{name: "confirmation mismatch", mutate: func(p *PerfilUpdate) {
			p.SenhaAtual, p.NovaSenha, p.ConfirmarSenha = "123456", "abcdef", "abcdeg"
		}, wantErr: true},
		{name: "wrong current password", mutate: func(p *PerfilUpdate) {
			p.SenhaAtual, p.NovaSenha, p.ConfirmarSenha = "000000", "abcdef", "abcdef"
		}, wantErr: true},
		{name: "valid change", mutate: func(p *PerfilUpdate) {
			p.SenhaAtual, p.NovaSenha, p.ConfirmarSenha = "123456", "abcdef", "abcdef"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newTestStore()
			update := base
			tt.mutate(&update)

			_, err := uc.UpdatePerfil(context.Background(), "USR001", update)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				stored, _ := repo.GetUsuario("USR001")
				assert.Equal(t, "123456", stored.Senha)
				return
			}
			require.NoError(t, err)
			_, ok := repo.Authenticate("admin@gmail.com", "123456")
			assert.Equal(t, update.NovaSenha == "", ok)
		})
	}
}
