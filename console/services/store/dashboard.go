package main

import "time"

// LowStockThreshold é o estoque abaixo do qual o produto conta como baixo
const LowStockThreshold = 20

// DashboardStats resume as coleções da loja
type DashboardStats struct {
	TotalVendas          float64 `json:"totalVendas"`
	PedidosPendentes     int     `json:"pedidosPendentes"`
	ProdutosBaixoEstoque int     `json:"produtosBaixoEstoque"`
	ClientesAtivos       int     `json:"clientesAtivos"`
	TotalProdutos        int     `json:"totalProdutos"`
	TotalPedidos         int     `json:"totalPedidos"`
}

// RecentOrder é a linha da tabela de pedidos recentes
type RecentOrder struct {
	ID         int       `json:"id"`
	Cliente    string    `json:"cliente"`
	DataPedido time.Time `json:"dataPedido"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
}

// ComputeDashboardStats é recalculado a cada chamada, sem cache
func ComputeDashboardStats(produtos []Produto, pedidos []Pedido, clientes []Cliente) DashboardStats {
	stats := DashboardStats{
		TotalProdutos: len(produtos),
		TotalPedidos:  len(pedidos),
	}

	for _, p := range pedidos {
		switch p.Status {
		case PedidoEntregue:
			stats.TotalVendas += p.Total
		case PedidoPendente, PedidoAprovado, PedidoEmPreparo:
			stats.PedidosPendentes++
		}
	}
	for _, p := range produtos {
		if p.Estoque < LowStockThreshold {
			stats.ProdutosBaixoEstoque++
		}
	}
	for _, c := range clientes {
		if c.Status == StatusAtivo {
			stats.ClientesAtivos++
		}
	}
	return stats
}

// RecentOrders projeta os últimos n pedidos da coleção, na ordem da coleção,
// com o nome do cliente resolvido. Cliente desconhecido mantém o id.
func RecentOrders(pedidos []Pedido, clientes []Cliente, n int) []RecentOrder {
	if n <= 0 {
		return []RecentOrder{}
	}

	nomes := make(map[string]string, len(clientes))
	for _, c := range clientes {
		nomes[c.ID] = c.Nome
	}

	start := 0
	if len(pedidos) > n {
		start = len(pedidos) - n
	}

	recent := make([]RecentOrder, 0, len(pedidos)-start)
	for _, p := range pedidos[start:] {
		cliente, ok := nomes[p.ClienteID]
		if !ok {
			cliente = p.ClienteID
		}
		recent = append(recent, RecentOrder{
			ID:         p.ID,
			Cliente:    cliente,
			DataPedido: p.DataPedido,
			Total:      p.Total,
			Status:     p.Status,
		})
	}
	return recent
}
