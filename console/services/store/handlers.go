package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "gestao-session"
	sessionIDKey      = "sid"
	usuarioContextKey = "usuario"
	sessionContextKey = "session"
)

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// StatusRequest representa a requisição de troca de status do pedido
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pendente aprovado em_preparo enviado entregue cancelado"`
}

// StoreHandler contém os handlers HTTP da loja
type StoreHandler struct {
	useCase *StoreUseCase
	cookies *sessions.CookieStore

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStoreHandler cria uma nova instância de StoreHandler
func NewStoreHandler(useCase *StoreUseCase, cookies *sessions.CookieStore) *StoreHandler {
	return &StoreHandler{
		useCase:  useCase,
		cookies:  cookies,
		sessions: make(map[string]*Session),
	}
}

// RegisterRoutes monta as rotas da loja com as restrições de cargo
func (h *StoreHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	auth := api.Group("", h.RequireLogin())
	auth.GET("/auth/me", h.Me)
	auth.GET("/perfil", h.Me)
	auth.PUT("/perfil", h.UpdatePerfil)

	auth.GET("/dashboard", h.RequireCargo(CargoAdmin, CargoGerente), h.Dashboard)

	auth.GET("/produtos", h.ListProdutos)
	auth.POST("/produtos", h.RequireCargo(CargoAdmin, CargoGerente, CargoEstoque), h.CreateProduto)
	auth.PUT("/produtos/:id", h.RequireCargo(CargoAdmin, CargoGerente, CargoEstoque), h.UpdateProduto)
	auth.DELETE("/produtos/:id", h.RequireCargo(CargoAdmin, CargoGerente), h.DeleteProduto)

	auth.GET("/pedidos", h.ListPedidos)
	auth.POST("/pedidos", h.RequireCargo(CargoAdmin, CargoGerente, CargoVendedor), h.CreatePedido)
	auth.PUT("/pedidos/:id", h.RequireCargo(CargoAdmin, CargoGerente, CargoVendedor), h.UpdatePedido)
	auth.PATCH("/pedidos/:id/status", h.RequireCargo(CargoAdmin, CargoGerente, CargoVendedor), h.AdvancePedido)
	auth.DELETE("/pedidos/:id", h.RequireCargo(CargoAdmin), h.DeletePedido)

	auth.GET("/clientes", h.RequireCargo(CargoAdmin, CargoGerente, CargoVendedor), h.ListClientes)
}

// HealthCheck verifica a saúde do serviço
func (h *StoreHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "store-service",
	})
}

// Login autentica e grava o id da sessão no cookie
func (h *StoreHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	cookie, _ := h.cookies.Get(c.Request, sessionCookieName)
	session := h.lookup(cookie)
	if session == nil {
		session = NewSession()
	}

	result := h.useCase.Login(c.Request.Context(), session, req.Email, req.Senha)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	cookie.Values[sessionIDKey] = session.ID
	if err := cookie.Save(c.Request, c.Writer); err != nil {
		log.Printf("❌ Failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar sessão"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout limpa a sessão e expira o cookie
func (h *StoreHandler) Logout(c *gin.Context) {
	cookie, _ := h.cookies.Get(c.Request, sessionCookieName)
	if session := h.lookup(cookie); session != nil {
		h.useCase.Logout(c.Request.Context(), session)
		h.mu.Lock()
		delete(h.sessions, session.ID)
		h.mu.Unlock()
	}

	delete(cookie.Values, sessionIDKey)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(c.Request, c.Writer); err != nil {
		log.Printf("❌ Failed to expire session: %v", err)
	}
	c.Status(http.StatusNoContent)
}

// RequireLogin barra requisições sem usuário logado e ativo
func (h *StoreHandler) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := h.cookies.Get(c.Request, sessionCookieName)
		session := h.lookup(cookie)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Sessão expirada. Faça login novamente."})
			return
		}

		usuario, err := h.useCase.CurrentUser(session)
		if err != nil || usuario.Status != StatusAtivo {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Sessão expirada. Faça login novamente."})
			return
		}

		c.Set(sessionContextKey, session)
		c.Set(usuarioContextKey, usuario)
		c.Next()
	}
}

// RequireCargo libera a rota apenas para os cargos informados
func (h *StoreHandler) RequireCargo(cargos ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cargos))
	for _, cargo := range cargos {
		allowed[cargo] = true
	}

	return func(c *gin.Context) {
		usuario := currentUsuario(c)
		if usuario == nil || !allowed[usuario.Cargo] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Acesso negado para o seu cargo"})
			return
		}
		c.Next()
	}
}

// Me devolve o usuário logado
func (h *StoreHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUsuario(c))
}

// UpdatePerfil altera os dados do usuário logado
func (h *StoreHandler) UpdatePerfil(c *gin.Context) {
	var req PerfilUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	usuario, err := h.useCase.UpdatePerfil(c.Request.Context(), currentUsuario(c).ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// Dashboard devolve os indicadores e os pedidos recentes
func (h *StoreHandler) Dashboard(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("recentes", "5"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "recentes deve ser um número não negativo"})
		return
	}

	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"stats":           h.useCase.DashboardStats(ctx),
		"pedidosRecentes": h.useCase.RecentOrders(ctx, n),
	})
}

func (h *StoreHandler) ListProdutos(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.ListProdutos(c.Request.Context()))
}

func (h *StoreHandler) CreateProduto(c *gin.Context) {
	var req NovoProduto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	produto, err := h.useCase.AddProduto(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, produto)
}

func (h *StoreHandler) UpdateProduto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch ProdutoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	produto, err := h.useCase.UpdateProduto(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, produto)
}

func (h *StoreHandler) DeleteProduto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.useCase.DeleteProduto(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) ListPedidos(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.ListPedidos(c.Request.Context()))
}

func (h *StoreHandler) CreatePedido(c *gin.Context) {
	var req NovoPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pedido, err := h.useCase.CreatePedido(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

func (h *StoreHandler) UpdatePedido(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch PedidoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pedido, err := h.useCase.UpdatePedido(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

func (h *StoreHandler) AdvancePedido(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pedido, err := h.useCase.AdvancePedido(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

func (h *StoreHandler) DeletePedido(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.useCase.DeletePedido(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) ListClientes(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCase.ListClientes(c.Request.Context()))
}

// lookup resolve a sessão do servidor a partir do cookie
func (h *StoreHandler) lookup(cookie *sessions.Session) *Session {
	sid, ok := cookie.Values[sessionIDKey].(string)
	if !ok || sid == "" {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[sid]
}

func currentUsuario(c *gin.Context) *Usuario {
	value, ok := c.Get(usuarioContextKey)
	if !ok {
		return nil
	}
	usuario, _ := value.(*Usuario)
	return usuario
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor"})
	}
}
