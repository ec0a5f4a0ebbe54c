package main

import (
	"fmt"
	"sync"
	"time"
)

// Dataset agrupa as coleções mantidas pela loja
type Dataset struct {
	Produtos []Produto
	Pedidos  []Pedido
	Clientes []Cliente
	Usuarios []Usuario
}

// Repository define as operações sobre as coleções em memória da loja
type Repository interface {
	// Snapshot devolve uma cópia consistente de todas as coleções
	Snapshot() Dataset

	ListProdutos() []Produto
	GetProduto(id int) (Produto, error)
	// AddProduto inclui o produto; sem id recebe o próximo sequencial, id repetido é ErrConflict
	AddProduto(produto Produto) (Produto, error)
	// UpdateProduto aplica fn ao produto e carimba UpdatedAt
	UpdateProduto(id int, fn func(*Produto)) (Produto, error)
	DeleteProduto(id int) error

	ListPedidos() []Pedido
	GetPedido(id int) (Pedido, error)
	AddPedido(pedido Pedido) (Pedido, error)
	// UpdatePedido aplica fn ao pedido; se fn falhar nada é gravado
	UpdatePedido(id int, fn func(*Pedido) error) (Pedido, error)
	DeletePedido(id int) error

	ListClientes() []Cliente
	GetCliente(id string) (Cliente, error)

	GetUsuario(id string) (Usuario, error)
	// Authenticate procura email, senha e status ativo; no acerto carimba UltimoAcesso
	Authenticate(email, senha string) (Usuario, bool)
	// UpdateUsuario aplica fn ao usuário; email de outro usuário é ErrConflict
	UpdateUsuario(id string, fn func(*Usuario) error) (Usuario, error)
}

// MemoryRepository implementa Repository com slices protegidos por mutex
type MemoryRepository struct {
	mu       sync.RWMutex
	now      func() time.Time
	produtos []Produto
	pedidos  []Pedido
	clientes []Cliente
	usuarios []Usuario
}

// NewMemoryRepository cria uma nova instância de MemoryRepository a partir de um dataset
func NewMemoryRepository(data Dataset, now func() time.Time) *MemoryRepository {
	if now == nil {
		now = time.Now
	}

	return &MemoryRepository{
		now:      now,
		produtos: append([]Produto(nil), data.Produtos...),
		pedidos:  copyPedidos(data.Pedidos),
		clientes: append([]Cliente(nil), data.Clientes...),
		usuarios: append([]Usuario(nil), data.Usuarios...),
	}
}

func (r *MemoryRepository) Snapshot() Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Dataset{
		Produtos: append([]Produto(nil), r.produtos...),
		Pedidos:  copyPedidos(r.pedidos),
		Clientes: append([]Cliente(nil), r.clientes...),
		Usuarios: append([]Usuario(nil), r.usuarios...),
	}
}

func (r *MemoryRepository) ListProdutos() []Produto {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Produto{}, r.produtos...)
}

func (r *MemoryRepository) GetProduto(id int) (Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.produtoIndex(id)
	if i < 0 {
		return Produto{}, ErrNotFound
	}
	return r.produtos[i], nil
}

func (r *MemoryRepository) AddProduto(produto Produto) (Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case produto.ID == 0:
		produto.ID = r.nextProdutoID()
	case r.produtoIndex(produto.ID) >= 0:
		return Produto{}, fmt.Errorf("%w: produto %d já existe", ErrConflict, produto.ID)
	}
	now := r.now()
	if produto.CreatedAt.IsZero() {
		produto.CreatedAt = now
	}
	if produto.UpdatedAt.IsZero() {
		produto.UpdatedAt = now
	}
	r.produtos = append(r.produtos, produto)
	return produto, nil
}

func (r *MemoryRepository) UpdateProduto(id int, fn func(*Produto)) (Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.produtoIndex(id)
	if i < 0 {
		return Produto{}, ErrNotFound
	}

	updated := r.produtos[i]
	fn(&updated)
	updated.ID = id
	updated.UpdatedAt = r.now()
	r.produtos[i] = updated
	return updated, nil
}

func (r *MemoryRepository) DeleteProduto(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.produtoIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	r.produtos = append(r.produtos[:i:i], r.produtos[i+1:]...)
	return nil
}

func (r *MemoryRepository) ListPedidos() []Pedido {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyPedidos(r.pedidos)
}

func (r *MemoryRepository) GetPedido(id int) (Pedido, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.pedidoIndex(id)
	if i < 0 {
		return Pedido{}, ErrNotFound
	}
	return copyPedido(r.pedidos[i]), nil
}

func (r *MemoryRepository) AddPedido(pedido Pedido) (Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case pedido.ID == 0:
		pedido.ID = r.nextPedidoID()
	case r.pedidoIndex(pedido.ID) >= 0:
		return Pedido{}, fmt.Errorf("%w: pedido %d já existe", ErrConflict, pedido.ID)
	}
	pedido = copyPedido(pedido)
	r.pedidos = append(r.pedidos, pedido)
	return copyPedido(pedido), nil
}

func (r *MemoryRepository) UpdatePedido(id int, fn func(*Pedido) error) (Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.pedidoIndex(id)
	if i < 0 {
		return Pedido{}, ErrNotFound
	}

	updated := copyPedido(r.pedidos[i])
	if err := fn(&updated); err != nil {
		return Pedido{}, err
	}
	updated.ID = id
	r.pedidos[i] = updated
	return copyPedido(updated), nil
}

func (r *MemoryRepository) DeletePedido(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.pedidoIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	r.pedidos = append(r.pedidos[:i:i], r.pedidos[i+1:]...)
	return nil
}

func (r *MemoryRepository) ListClientes() []Cliente {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Cliente{}, r.clientes...)
}

func (r *MemoryRepository) GetCliente(id string) (Cliente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clientes {
		if c.ID == id {
			return c, nil
		}
	}
	return Cliente{}, ErrNotFound
}

func (r *MemoryRepository) GetUsuario(id string) (Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return Usuario{}, ErrNotFound
}

func (r *MemoryRepository) Authenticate(email, senha string) (Usuario, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.usuarios {
		u := &r.usuarios[i]
		if u.Email == email && u.Senha == senha && u.Status == StatusAtivo {
			u.UltimoAcesso = r.now()
			return *u, true
		}
	}
	return Usuario{}, false
}

func (r *MemoryRepository) UpdateUsuario(id string, fn func(*Usuario) error) (Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.usuarios {
		if r.usuarios[i].ID != id {
			continue
		}
		updated := r.usuarios[i]
		if err := fn(&updated); err != nil {
			return Usuario{}, err
		}
		updated.ID = id
		if r.emailTaken(updated.Email, id) {
			return Usuario{}, fmt.Errorf("%w: email %s já está em uso", ErrConflict, updated.Email)
		}
		r.usuarios[i] = updated
		return updated, nil
	}
	return Usuario{}, ErrNotFound
}

func (r *MemoryRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.usuarios {
		if u.ID != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) produtoIndex(id int) int {
	for i, p := range r.produtos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) pedidoIndex(id int) int {
	for i, p := range r.pedidos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) nextProdutoID() int {
	highest := 0
	for _, p := range r.produtos {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

func (r *MemoryRepository) nextPedidoID() int {
	highest := 0
	for _, p := range r.pedidos {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

func copyPedido(p Pedido) Pedido {
	p.Itens = append([]ItemPedido(nil), p.Itens...)
	if p.DataEntrega != nil {
		entrega := *p.DataEntrega
		p.DataEntrega = &entrega
	}
	return p
}

func copyPedidos(pedidos []Pedido) []Pedido {
	out := make([]Pedido, len(pedidos))
	for i, p := range pedidos {
		out[i] = copyPedido(p)
	}
	return out
}
