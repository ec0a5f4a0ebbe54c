package main

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrInvalidInput      = errors.New("dados inválidos")
	ErrConflict          = errors.New("registro em conflito")
)

// Status possíveis de um pedido
const (
	PedidoPendente  = "pendente"
	PedidoAprovado  = "aprovado"
	PedidoEmPreparo = "em_preparo"
	PedidoEnviado   = "enviado"
	PedidoEntregue  = "entregue"
	PedidoCancelado = "cancelado"
)

// Formas de pagamento aceitas
const (
	PagamentoCartao = "cartao"
	PagamentoPix    = "pix"
	PagamentoBoleto = "boleto"
)

// Cargos de usuário
const (
	CargoAdmin    = "admin"
	CargoGerente  = "gerente"
	CargoVendedor = "vendedor"
	CargoEstoque  = "estoque"
)

const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// pedidoTransitions lista os próximos status permitidos a partir de cada status
var pedidoTransitions = map[string][]string{
	PedidoPendente:  {PedidoAprovado, PedidoCancelado},
	PedidoAprovado:  {PedidoEmPreparo, PedidoCancelado},
	PedidoEmPreparo: {PedidoEnviado, PedidoCancelado},
	PedidoEnviado:   {PedidoEntregue},
	PedidoEntregue:  {},
	PedidoCancelado: {},
}

// Produto representa um item do catálogo
type Produto struct {
	ID        int       `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Preco     float64   `json:"preco"`
	Estoque   int       `json:"estoque"`
	Imagem    string    `json:"imagem,omitempty"`
	Categoria string    `json:"categoria"`
	Marca     string    `json:"marca"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NovoProduto é o corpo de POST /api/produtos; id e datas ficam com a loja
type NovoProduto struct {
	Nome      string  `json:"nome" binding:"required"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco" binding:"gte=0"`
	Estoque   int     `json:"estoque" binding:"gte=0"`
	Imagem    string  `json:"imagem"`
	Categoria string  `json:"categoria"`
	Marca     string  `json:"marca"`
}

// Produto converte o corpo em um produto ainda sem id
func (n NovoProduto) Produto() Produto {
	return Produto{
		Nome:      n.Nome,
		Descricao: n.Descricao,
		Preco:     n.Preco,
		Estoque:   n.Estoque,
		Imagem:    n.Imagem,
		Categoria: n.Categoria,
		Marca:     n.Marca,
	}
}

// ProdutoPatch carrega uma atualização parcial de produto
type ProdutoPatch struct {
	Nome      *string  `json:"nome"`
	Descricao *string  `json:"descricao"`
	Preco     *float64 `json:"preco" binding:"omitempty,gte=0"`
	Estoque   *int     `json:"estoque" binding:"omitempty,gte=0"`
	Imagem    *string  `json:"imagem"`
	Categoria *string  `json:"categoria"`
	Marca     *string  `json:"marca"`
}

// Apply copia os campos presentes do patch para o produto
func (p ProdutoPatch) Apply(produto *Produto) {
	if p.Nome != nil {
		produto.Nome = *p.Nome
	}
	if p.Descricao != nil {
		produto.Descricao = *p.Descricao
	}
	if p.Preco != nil {
		produto.Preco = *p.Preco
	}
	if p.Estoque != nil {
		produto.Estoque = *p.Estoque
	}
	if p.Imagem != nil {
		produto.Imagem = *p.Imagem
	}
	if p.Categoria != nil {
		produto.Categoria = *p.Categoria
	}
	if p.Marca != nil {
		produto.Marca = *p.Marca
	}
}

// Endereco é usado tanto pelo cliente quanto pela entrega do pedido
type Endereco struct {
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Cep         string `json:"cep"`
}

// Cliente representa um comprador da loja
type Cliente struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	Telefone       string    `json:"telefone"`
	Cpf            string    `json:"cpf"`
	DataNascimento string    `json:"dataNascimento"`
	Endereco       Endereco  `json:"endereco"`
	DataCadastro   time.Time `json:"dataCadastro"`
	Status         string    `json:"status"`
}

// Usuario representa um operador do painel
type Usuario struct {
	ID           string    `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	Telefone     string    `json:"telefone"`
	Senha        string    `json:"-"`
	Cargo        string    `json:"cargo"`
	Avatar       string    `json:"avatar,omitempty"`
	DataCadastro time.Time `json:"dataCadastro"`
	UltimoAcesso time.Time `json:"ultimoAcesso"`
	Status       string    `json:"status"`
}

// ItemPedido é uma linha do pedido
type ItemPedido struct {
	ProdutoID     int     `json:"produtoId" binding:"required"`
	Quantidade    int     `json:"quantidade" binding:"required,gt=0"`
	PrecoUnitario float64 `json:"precoUnitario" binding:"gte=0"`
}

// Pedido representa uma venda
type Pedido struct {
	ID              int          `json:"id"`
	ClienteID       string       `json:"clienteId"`
	Itens           []ItemPedido `json:"produtos"`
	Status          string       `json:"status"`
	Total           float64      `json:"total"`
	DataPedido      time.Time    `json:"dataPedido"`
	DataEntrega     *time.Time   `json:"dataEntrega,omitempty"`
	EnderecoEntrega Endereco     `json:"enderecoEntrega"`
	FormaPagamento  string       `json:"formaPagamento"`
	Observacoes     string       `json:"observacoes,omitempty"`
}

// NovoPedidoRequest é o corpo de POST /api/pedidos
type NovoPedidoRequest struct {
	ClienteID       string       `json:"clienteId" binding:"required"`
	Itens           []ItemPedido `json:"produtos" binding:"required,min=1,dive"`
	Status          string       `json:"status" binding:"omitempty,oneof=pendente aprovado em_preparo enviado entregue cancelado"`
	EnderecoEntrega Endereco     `json:"enderecoEntrega"`
	FormaPagamento  string       `json:"formaPagamento" binding:"required,oneof=cartao pix boleto"`
	Observacoes     string       `json:"observacoes"`
}

// PedidoPatch carrega uma atualização parcial de pedido; o total nunca muda
type PedidoPatch struct {
	Status          *string   `json:"status" binding:"omitempty,oneof=pendente aprovado em_preparo enviado entregue cancelado"`
	EnderecoEntrega *Endereco `json:"enderecoEntrega"`
	FormaPagamento  *string   `json:"formaPagamento" binding:"omitempty,oneof=cartao pix boleto"`
	Observacoes     *string   `json:"observacoes"`
}

// NewPedido monta um pedido calculando o total a partir dos itens
func NewPedido(clienteID string, itens []ItemPedido, formaPagamento string, endereco Endereco, now time.Time) *Pedido {
	total := 0.0
	for _, item := range itens {
		total += float64(item.Quantidade) * item.PrecoUnitario
	}

	return &Pedido{
		ClienteID:       clienteID,
		Itens:           itens,
		Status:          PedidoPendente,
		Total:           math.Round(total*100) / 100,
		DataPedido:      now,
		EnderecoEntrega: endereco,
		FormaPagamento:  formaPagamento,
	}
}

// CanTransition informa se o pedido pode ir do status atual para next
func (p *Pedido) CanTransition(next string) bool {
	for _, allowed := range pedidoTransitions[p.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Advance muda o status do pedido respeitando a máquina de estados.
// A entrega registra DataEntrega.
func (p *Pedido) Advance(next string, now time.Time) error {
	if p.Status == next {
		return nil
	}
	if !p.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, next)
	}

	p.Status = next
	if next == PedidoEntregue {
		entrega := now
		p.DataEntrega = &entrega
	}
	return nil
}

// LoginResult é a resposta do login
type LoginResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Usuario *Usuario `json:"usuario,omitempty"`
}

// PerfilUpdate é o corpo de PUT /api/perfil
type PerfilUpdate struct {
	Nome           string `json:"nome" binding:"required,min=3"`
	Email          string `json:"email" binding:"required,email"`
	Telefone       string `json:"telefone" binding:"required,min=10"`
	Avatar         string `json:"avatar"`
	SenhaAtual     string `json:"senhaAtual" binding:"omitempty,min=6"`
	NovaSenha      string `json:"novaSenha" binding:"omitempty,min=6"`
	ConfirmarSenha string `json:"confirmarSenha"`
}
