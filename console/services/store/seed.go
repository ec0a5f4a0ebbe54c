package main

import "time"

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedTimePtr(value string) *time.Time {
	t := seedTime(value)
	return &t
}

var (
	enderecoMaria = Endereco{
		Rua:         "Rua das Flores",
		Numero:      "123",
		Complemento: "Apto 45",
		Bairro:      "Centro",
		Cidade:      "São Paulo",
		Estado:      "SP",
		Cep:         "01234-567",
	}
	enderecoJoao = Endereco{
		Rua:    "Avenida Brasil",
		Numero: "456",
		Bairro: "Copacabana",
		Cidade: "Rio de Janeiro",
		Estado: "RJ",
		Cep:    "22070-001",
	}
	enderecoAna = Endereco{
		Rua:         "Rua da Liberdade",
		Numero:      "789",
		Complemento: "Casa",
		Bairro:      "Savassi",
		Cidade:      "Belo Horizonte",
		Estado:      "MG",
		Cep:         "30112-000",
	}
)

// MockDataset devolve o catálogo, clientes, pedidos e usuários de demonstração
func MockDataset() Dataset {
	return Dataset{
		Produtos: mockProdutos(),
		Pedidos:  mockPedidos(),
		Clientes: mockClientes(),
		Usuarios: mockUsuarios(),
	}
}

func mockProdutos() []Produto {
	produto := func(id int, nome, descricao string, preco float64, estoque int, marca, imagem, criado string) Produto {
		return Produto{
			ID:        id,
			Nome:      nome,
			Descricao: descricao,
			Preco:     preco,
			Estoque:   estoque,
			Categoria: "perfumes",
			Marca:     marca,
			Imagem:    imagem,
			CreatedAt: seedTime(criado),
			UpdatedAt: seedTime(criado),
		}
	}

	return []Produto{
		produto(1, "Chanel No. 5",
			"Perfume floral aldeídico icônico com notas de rosa, jasmim e baunilha. Uma fragrância atemporal que define elegância.",
			750.90, 50, "Chanel", "https://images.unsplash.com/photo-1541643600914-78b084683601?w=400&h=400&fit=crop", "2024-01-15T10:30:00Z"),
		produto(2, "Dior Sauvage",
			"Fragrância masculina fresca e amadeirada com notas de bergamota, pimenta e ambroxan. Ideal para o homem moderno.",
			550.00, 35, "Dior", "https://images.unsplash.com/photo-1592945403244-b3faa74b2c98?w=400&h=400&fit=crop", "2024-01-16T14:20:00Z"),
		produto(3, "Creed Aventus",
			"Perfume chipre frutado luxuoso com notas de abacaxi, maçã e musgo de carvalho. Sinônimo de sofisticação.",
			1800.50, 20, "Creed", "https://images.unsplash.com/photo-1587017539504-67cfbddac569?w=400&h=400&fit=crop", "2024-01-17T09:15:00Z"),
		produto(4, "Yves Saint Laurent Black Opium",
			"Fragrância oriental baunilha viciante com notas de café, baunilha e flores brancas. Para mulheres ousadas.",
			620.75, 42, "Yves Saint Laurent", "https://images.unsplash.com/photo-1590736969955-71cc94901354?w=400&h=400&fit=crop", "2024-01-18T16:45:00Z"),
		produto(5, "Tom Ford Oud Wood",
			"Perfume amadeirado exótico e raro com notas de oud, sândalo e baunilha. Uma experiência olfativa única.",
			1200.00, 15, "Tom Ford", "https://images.unsplash.com/photo-1585386959984-a4155224a1ad?w=400&h=400&fit=crop", "2024-01-19T11:30:00Z"),
		produto(6, "Jo Malone London Wood Sage & Sea Salt",
			"Fragrância fresca e mineral com notas de sal marinho, sálvia e ambrette. Perfeita para o dia a dia.",
			480.00, 28, "Jo Malone London", "https://images.unsplash.com/photo-1590736969955-71cc94901354?w=400&h=400&fit=crop", "2024-01-20T13:20:00Z"),
		produto(7, "Maison Margiela Replica Jazz Club",
			"Fragrância amadeirada com notas de rum, tabaco e baunilha. Inspirada na atmosfera de um jazz club.",
			680.00, 22, "Maison Margiela", "https://images.unsplash.com/photo-1587017539504-67cfbddac569?w=400&h=400&fit=crop", "2024-01-21T15:10:00Z"),
		produto(8, "Byredo Gypsy Water",
			"Fragrância nômade com notas de bergamota, limão e sândalo. Uma viagem olfativa pela liberdade.",
			890.00, 18, "Byredo", "https://images.unsplash.com/photo-1592945403244-b3faa74b2c98?w=400&h=400&fit=crop", "2024-01-22T10:45:00Z"),
	}
}

func mockClientes() []Cliente {
	return []Cliente{
		{
			ID:             "CLI001",
			Nome:           "Maria Silva Santos",
			Email:          "maria.silva@email.com",
			Telefone:       "(11) 99999-1111",
			Cpf:            "123.456.789-01",
			DataNascimento: "1985-03-15",
			Endereco:       enderecoMaria,
			DataCadastro:   seedTime("2024-01-10T08:00:00Z"),
			Status:         StatusAtivo,
		},
		{
			ID:             "CLI002",
			Nome:           "João Pedro Oliveira",
			Email:          "joao.oliveira@email.com",
			Telefone:       "(21) 98888-2222",
			Cpf:            "987.654.321-09",
			DataNascimento: "1990-07-22",
			Endereco:       enderecoJoao,
			DataCadastro:   seedTime("2024-01-12T14:30:00Z"),
			Status:         StatusAtivo,
		},
		{
			ID:             "CLI003",
			Nome:           "Ana Costa Ferreira",
			Email:          "ana.costa@email.com",
			Telefone:       "(31) 97777-3333",
			Cpf:            "456.789.123-45",
			DataNascimento: "1988-11-08",
			Endereco:       enderecoAna,
			DataCadastro:   seedTime("2024-01-14T16:45:00Z"),
			Status:         StatusAtivo,
		},
	}
}

func mockPedidos() []Pedido {
	return []Pedido{
		{
			ID:        1,
			ClienteID: "CLI001",
			Itens: []ItemPedido{
				{ProdutoID: 1, Quantidade: 1, PrecoUnitario: 750.90},
				{ProdutoID: 4, Quantidade: 2, PrecoUnitario: 620.75},
			},
			Status:          PedidoEntregue,
			Total:           1992.40,
			DataPedido:      seedTime("2024-01-20T10:00:00Z"),
			DataEntrega:     seedTimePtr("2024-01-22T14:30:00Z"),
			EnderecoEntrega: enderecoMaria,
			FormaPagamento:  PagamentoCartao,
			Observacoes:     "Entregar após 18h",
		},
		{
			ID:        2,
			ClienteID: "CLI002",
			Itens: []ItemPedido{
				{ProdutoID: 2, Quantidade: 1, PrecoUnitario: 550.00},
			},
			Status:          PedidoEnviado,
			Total:           550.00,
			DataPedido:      seedTime("2024-01-21T15:30:00Z"),
			EnderecoEntrega: enderecoJoao,
			FormaPagamento:  PagamentoPix,
		},
		{
			ID:        3,
			ClienteID: "CLI003",
			Itens: []ItemPedido{
				{ProdutoID: 3, Quantidade: 1, PrecoUnitario: 1800.50},
				{ProdutoID: 5, Quantidade: 1, PrecoUnitario: 1200.00},
			},
			Status:          PedidoAprovado,
			Total:           3000.50,
			DataPedido:      seedTime("2024-01-22T09:15:00Z"),
			EnderecoEntrega: enderecoAna,
			FormaPagamento:  PagamentoBoleto,
		},
	}
}

func mockUsuarios() []Usuario {
	return []Usuario{
		{
			ID:           "USR001",
			Nome:         "Admin Sistema",
			Email:        "admin@gmail.com",
			Telefone:     "(11) 99999-9999",
			Senha:        "123456",
			Cargo:        CargoAdmin,
			Avatar:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			DataCadastro: seedTime("2024-01-01T00:00:00Z"),
			UltimoAcesso: seedTime("2024-01-22T16:30:00Z"),
			Status:       StatusAtivo,
		},
		{
			ID:           "USR002",
			Nome:         "Gerente Vendas",
			Email:        "gerente@universys.com",
			Telefone:     "(11) 88888-8888",
			Senha:        "123456",
			Cargo:        CargoGerente,
			Avatar:       "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
			DataCadastro: seedTime("2024-01-02T00:00:00Z"),
			UltimoAcesso: seedTime("2024-01-22T15:45:00Z"),
			Status:       StatusAtivo,
		},
		{
			ID:           "USR003",
			Nome:         "Vendedor João",
			Email:        "joao.vendedor@universys.com",
			Telefone:     "(11) 77777-7777",
			Senha:        "123456",
			Cargo:        CargoVendedor,
			DataCadastro: seedTime("2024-01-03T00:00:00Z"),
			UltimoAcesso: seedTime("2024-01-22T14:20:00Z"),
			Status:       StatusAtivo,
		},
	}
}
