package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := newSeededRepository()
	uc := NewStoreUseCase(repo, tracenoop.NewTracerProvider().Tracer("test"), fixedClock(testNow))
	r := gin.New()
	NewStoreHandler(uc, newCookieStore("test-secret")).RegisterRoutes(r)
	return r
}

func call(r http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email string) []*http.Cookie {
	t.Helper()
	w := call(r, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","senha":"123456"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestStoreHandler_LoginFailure(t *testing.T) {
	r := newTestServer()

	w := call(r, http.MethodPost, "/api/auth/login", `{"email":"admin@gmail.com","senha":"errada"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var result LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "Email ou senha inválidos", result.Message)
	assert.Empty(t, w.Result().Cookies())
}

func TestStoreHandler_MeRequiresLogin(t *testing.T) {
	r := newTestServer()

	w := call(r, http.MethodGet, "/api/auth/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStoreHandler_LoginThenMe(t *testing.T) {
	// Arrange
	r := newTestServer()
	cookies := login(t, r, "admin@gmail.com")

	// Act
	w := call(r, http.MethodGet, "/api/auth/me", "", cookies)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var usuario map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usuario))
	assert.Equal(t, "USR001", usuario["id"])
	assert.NotContains(t, usuario, "senha")
}

func TestStoreHandler_LogoutInvalidatesSession(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "admin@gmail.com")

	w := call(r, http.MethodPost, "/api/auth/logout", "", cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodGet, "/api/auth/me", "", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStoreHandler_DashboardRoleGate(t *testing.T) {
	r := newTestServer()

	vendedor := login(t, r, "joao.vendedor@universys.com")
	w := call(r, http.MethodGet, "/api/dashboard", "", vendedor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	gerente := login(t, r, "gerente@universys.com")
	w = call(r, http.MethodGet, "/api/dashboard?recentes=2", "", gerente)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stats           DashboardStats `json:"stats"`
		PedidosRecentes []RecentOrder  `json:"pedidosRecentes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 1992.40, body.Stats.TotalVendas, 0.001)
	assert.Len(t, body.PedidosRecentes, 2)
}

func TestStoreHandler_CreatePedidoAndAdvance(t *testing.T) {
	// Arrange
	r := newTestServer()
	cookies := login(t, r, "joao.vendedor@universys.com")

	// Act
	w := call(r, http.MethodPost, "/api/pedidos",
		`{"clienteId":"CLI001","produtos":[{"produtoId":2,"quantidade":2}],"formaPagamento":"pix"}`, cookies)

	// Assert
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Pedido
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.ID)
	assert.InDelta(t, 1100.00, created.Total, 0.001)

	w = call(r, http.MethodPatch, "/api/pedidos/4/status", `{"status":"enviado"}`, cookies)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPatch, "/api/pedidos/4/status", `{"status":"aprovado"}`, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreHandler_CreatePedidoValidation(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "admin@gmail.com")

	w := call(r, http.MethodPost, "/api/pedidos", `{"clienteId":"CLI001","produtos":[],"formaPagamento":"cheque"}`, cookies)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreHandler_ProdutoLifecycle(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "gerente@universys.com")

	w := call(r, http.MethodPost, "/api/produtos", `{"nome":"Acqua di Gio","preco":420.5,"estoque":12,"marca":"Armani"}`, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Produto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 9, created.ID)

	w = call(r, http.MethodPut, "/api/produtos/9", `{"estoque":30}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var updated Produto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 30, updated.Estoque)
	assert.True(t, updated.UpdatedAt.Equal(testNow))

	w = call(r, http.MethodDelete, "/api/produtos/9", "", cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodDelete, "/api/produtos/9", "", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreHandler_CreateProdutoIgnoresClientIdentity(t *testing.T) {
	// Arrange
	r := newTestServer()
	cookies := login(t, r, "admin@gmail.com")

	// Act
	w := call(r, http.MethodPost, "/api/produtos",
		`{"id":1,"nome":"Clone","preco":10,"estoque":1,"createdAt":"1999-01-01T00:00:00Z"}`, cookies)

	// Assert
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Produto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 9, created.ID)
	assert.True(t, created.CreatedAt.Equal(testNow))

	w = call(r, http.MethodGet, "/api/produtos", "", cookies)
	var produtos []Produto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &produtos))
	ids := 0
	for _, p := range produtos {
		if p.ID == 1 {
			ids++
		}
	}
	assert.Equal(t, 1, ids)
}

func TestStoreHandler_UpdatePerfilEmailConflict(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "joao.vendedor@universys.com")

	w := call(r, http.MethodPut, "/api/perfil",
		`{"nome":"João Vendedor","email":"admin@gmail.com","telefone":"(11) 97777-7777"}`, cookies)

	assert.Equal(t, http.StatusConflict, w.Code)
	w = call(r, http.MethodGet, "/api/auth/me", "", cookies)
	assert.Contains(t, w.Body.String(), "joao.vendedor@universys.com")
}

func TestStoreHandler_VendedorCannotEditCatalog(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "joao.vendedor@universys.com")

	w := call(r, http.MethodPut, "/api/produtos/1", `{"estoque":1}`, cookies)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStoreHandler_UpdatePerfil(t *testing.T) {
	r := newTestServer()
	cookies := login(t, r, "admin@gmail.com")

	w := call(r, http.MethodPut, "/api/perfil",
		`{"nome":"Administrador","email":"admin@gmail.com","telefone":"(11) 91234-5678"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/perfil", "", cookies)
	assert.Contains(t, w.Body.String(), "Administrador")

	w = call(r, http.MethodPut, "/api/perfil", `{"nome":"Ad","email":"x","telefone":"1"}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
