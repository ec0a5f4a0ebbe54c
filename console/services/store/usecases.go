package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const loginFailedMessage = "Email ou senha inválidos"

// Session guarda o usuário logado de um cliente da loja
type Session struct {
	ID string

	mu      sync.RWMutex
	usuario *Usuario
}

// NewSession cria uma sessão anônima com id aleatório
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// User devolve uma cópia do usuário logado, ou nil
func (s *Session) User() *Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.usuario == nil {
		return nil
	}
	u := *s.usuario
	return &u
}

func (s *Session) setUser(u *Usuario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usuario = u
}

// StoreUseCase contém a lógica de negócio da loja
type StoreUseCase struct {
	repository Repository
	tracer     trace.Tracer
	now        func() time.Time
}

// NewStoreUseCase cria uma nova instância de StoreUseCase
func NewStoreUseCase(repository Repository, tracer trace.Tracer, now func() time.Time) *StoreUseCase {
	if now == nil {
		now = time.Now
	}

	return &StoreUseCase{
		repository: repository,
		tracer:     tracer,
		now:        now,
	}
}

// Login autentica o usuário e, no acerto, o coloca na sessão.
// Na falha a sessão fica como estava.
func (uc *StoreUseCase) Login(ctx context.Context, session *Session, email, senha string) LoginResult {
	_, span := uc.tracer.Start(ctx, "login")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", session.ID))

	usuario, ok := uc.repository.Authenticate(email, senha)
	if !ok {
		log.Printf("❌ Login failed for %s", email)
		span.SetStatus(codes.Error, "invalid credentials")
		return LoginResult{Success: false, Message: loginFailedMessage}
	}

	session.setUser(&usuario)
	span.SetAttributes(attribute.String("usuario_id", usuario.ID))
	log.Printf("✅ Login: %s (%s)", usuario.Email, usuario.Cargo)
	return LoginResult{Success: true, Usuario: &usuario}
}

// Logout limpa o usuário da sessão
func (uc *StoreUseCase) Logout(ctx context.Context, session *Session) {
	_, span := uc.tracer.Start(ctx, "logout")
	defer span.End()

	if u := session.User(); u != nil {
		log.Printf("👋 Logout: %s", u.Email)
	}
	session.setUser(nil)
}

// CurrentUser relê o usuário da sessão para refletir alterações de perfil
func (uc *StoreUseCase) CurrentUser(session *Session) (*Usuario, error) {
	u := session.User()
	if u == nil {
		return nil, ErrNotFound
	}

	usuario, err := uc.repository.GetUsuario(u.ID)
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// UpdatePerfil altera nome, email, telefone, avatar e opcionalmente a senha
func (uc *StoreUseCase) UpdatePerfil(ctx context.Context, usuarioID string, update PerfilUpdate) (*Usuario, error) {
	_, span := uc.tracer.Start(ctx, "update_perfil")
	defer span.End()
	span.SetAttributes(attribute.String("usuario_id", usuarioID))

	if update.NovaSenha != "" {
		if update.SenhaAtual == "" {
			return nil, fail(span, fmt.Errorf("%w: Senha atual é obrigatória para alterar a senha", ErrInvalidInput))
		}
		if update.NovaSenha != update.ConfirmarSenha {
			return nil, fail(span, fmt.Errorf("%w: As senhas não conferem", ErrInvalidInput))
		}
	}

	usuario, err := uc.repository.UpdateUsuario(usuarioID, func(u *Usuario) error {
		if update.NovaSenha != "" {
			if u.Senha != update.SenhaAtual {
				return fmt.Errorf("%w: Senha atual incorreta", ErrInvalidInput)
			}
			u.Senha = update.NovaSenha
		}
		u.Nome = update.Nome
		u.Email = update.Email
		u.Telefone = update.Telefone
		if update.Avatar != "" {
			u.Avatar = update.Avatar
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	log.Printf("✅ Perfil updated: %s", usuarioID)
	return &usuario, nil
}

// ListProdutos lista o catálogo
func (uc *StoreUseCase) ListProdutos(ctx context.Context) []Produto {
	_, span := uc.tracer.Start(ctx, "list_produtos")
	defer span.End()
	return uc.repository.ListProdutos()
}

// AddProduto inclui um produto com o próximo id sequencial
func (uc *StoreUseCase) AddProduto(ctx context.Context, novo NovoProduto) (Produto, error) {
	_, span := uc.tracer.Start(ctx, "add_produto")
	defer span.End()

	created, err := uc.repository.AddProduto(novo.Produto())
	if err != nil {
		return Produto{}, fail(span, err)
	}
	span.SetAttributes(attribute.Int("produto_id", created.ID))
	log.Printf("✅ Produto created: %d", created.ID)
	return created, nil
}

// UpdateProduto aplica uma atualização parcial e carimba UpdatedAt
func (uc *StoreUseCase) UpdateProduto(ctx context.Context, id int, patch ProdutoPatch) (Produto, error) {
	_, span := uc.tracer.Start(ctx, "update_produto")
	defer span.End()
	span.SetAttributes(attribute.Int("produto_id", id))

	updated, err := uc.repository.UpdateProduto(id, patch.Apply)
	if err != nil {
		return Produto{}, fail(span, err)
	}
	return updated, nil
}

// DeleteProduto remove o produto do catálogo
func (uc *StoreUseCase) DeleteProduto(ctx context.Context, id int) error {
	_, span := uc.tracer.Start(ctx, "delete_produto")
	defer span.End()
	span.SetAttributes(attribute.Int("produto_id", id))

	if err := uc.repository.DeleteProduto(id); err != nil {
		return fail(span, err)
	}
	log.Printf("🗑️ Produto deleted: %d", id)
	return nil
}

// ListPedidos lista os pedidos
func (uc *StoreUseCase) ListPedidos(ctx context.Context) []Pedido {
	_, span := uc.tracer.Start(ctx, "list_pedidos")
	defer span.End()
	return uc.repository.ListPedidos()
}

// AddPedido inclui um pedido pronto; sem id recebe o próximo sequencial, id repetido é ErrConflict
func (uc *StoreUseCase) AddPedido(ctx context.Context, pedido Pedido) (Pedido, error) {
	_, span := uc.tracer.Start(ctx, "add_pedido")
	defer span.End()

	created, err := uc.repository.AddPedido(pedido)
	if err != nil {
		return Pedido{}, fail(span, err)
	}
	span.SetAttributes(attribute.Int("pedido_id", created.ID))
	log.Printf("✅ Pedido created: %d (%s, %.2f)", created.ID, created.Status, created.Total)
	return created, nil
}

// CreatePedido valida cliente e produtos, calcula o total e inclui o pedido
func (uc *StoreUseCase) CreatePedido(ctx context.Context, req NovoPedidoRequest) (Pedido, error) {
	ctx, span := uc.tracer.Start(ctx, "create_pedido")
	defer span.End()

	cliente, err := uc.repository.GetCliente(req.ClienteID)
	if err != nil {
		return Pedido{}, fail(span, fmt.Errorf("%w: cliente %s não encontrado", ErrInvalidInput, req.ClienteID))
	}

	itens := make([]ItemPedido, len(req.Itens))
	for i, item := range req.Itens {
		produto, err := uc.repository.GetProduto(item.ProdutoID)
		if err != nil {
			return Pedido{}, fail(span, fmt.Errorf("%w: produto %d não encontrado", ErrInvalidInput, item.ProdutoID))
		}
		if item.PrecoUnitario == 0 {
			item.PrecoUnitario = produto.Preco
		}
		itens[i] = item
	}

	endereco := req.EnderecoEntrega
	if endereco == (Endereco{}) {
		endereco = cliente.Endereco
	}

	now := uc.now()
	pedido := NewPedido(cliente.ID, itens, req.FormaPagamento, endereco, now)
	pedido.Observacoes = req.Observacoes
	if req.Status != "" {
		pedido.Status = req.Status
		if req.Status == PedidoEntregue {
			pedido.DataEntrega = &now
		}
	}

	return uc.AddPedido(ctx, *pedido)
}

// UpdatePedido aplica uma atualização parcial; mudança de status segue a máquina de estados
func (uc *StoreUseCase) UpdatePedido(ctx context.Context, id int, patch PedidoPatch) (Pedido, error) {
	_, span := uc.tracer.Start(ctx, "update_pedido")
	defer span.End()
	span.SetAttributes(attribute.Int("pedido_id", id))

	updated, err := uc.repository.UpdatePedido(id, func(p *Pedido) error {
		if patch.Status != nil {
			if err := p.Advance(*patch.Status, uc.now()); err != nil {
				return err
			}
		}
		if patch.EnderecoEntrega != nil {
			p.EnderecoEntrega = *patch.EnderecoEntrega
		}
		if patch.FormaPagamento != nil {
			p.FormaPagamento = *patch.FormaPagamento
		}
		if patch.Observacoes != nil {
			p.Observacoes = *patch.Observacoes
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to update pedido %d: %v", id, err)
		return Pedido{}, fail(span, err)
	}
	return updated, nil
}

// AdvancePedido muda apenas o status do pedido
func (uc *StoreUseCase) AdvancePedido(ctx context.Context, id int, status string) (Pedido, error) {
	return uc.UpdatePedido(ctx, id, PedidoPatch{Status: &status})
}

// DeletePedido remove o pedido
func (uc *StoreUseCase) DeletePedido(ctx context.Context, id int) error {
	_, span := uc.tracer.Start(ctx, "delete_pedido")
	defer span.End()
	span.SetAttributes(attribute.Int("pedido_id", id))

	if err := uc.repository.DeletePedido(id); err != nil {
		return fail(span, err)
	}
	log.Printf("🗑️ Pedido deleted: %d", id)
	return nil
}

// ListClientes lista os clientes
func (uc *StoreUseCase) ListClientes(ctx context.Context) []Cliente {
	_, span := uc.tracer.Start(ctx, "list_clientes")
	defer span.End()
	return uc.repository.ListClientes()
}

// DashboardStats recalcula os indicadores sobre o estado atual
func (uc *StoreUseCase) DashboardStats(ctx context.Context) DashboardStats {
	_, span := uc.tracer.Start(ctx, "dashboard_stats")
	defer span.End()

	data := uc.repository.Snapshot()
	return ComputeDashboardStats(data.Produtos, data.Pedidos, data.Clientes)
}

// RecentOrders devolve os últimos n pedidos com o nome do cliente
func (uc *StoreUseCase) RecentOrders(ctx context.Context, n int) []RecentOrder {
	_, span := uc.tracer.Start(ctx, "recent_orders")
	defer span.End()

	data := uc.repository.Snapshot()
	return RecentOrders(data.Pedidos, data.Clientes, n)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
