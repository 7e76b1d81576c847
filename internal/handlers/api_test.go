package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/auth"
	"github.com/balaio-dev/balaio/internal/models"
	"github.com/balaio-dev/balaio/internal/router"
)

func setupAPITest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	os.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	require.NoError(t, db.ConnectTestDatabase())
	require.NoError(t, db.MigrateDatabase())

	tables := []interface{}{
		&models.Item{},
		&models.ListCollaborator{},
		&models.List{},
		&models.User{},
	}

	for _, table := range tables {
		require.NoError(t, db.DB.Unscoped().Where("1 = 1").Delete(table).Error)
	}

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method string, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, r *gin.Engine, name string, email string) string {
	t.Helper()

	resp := doJSON(t, r, http.MethodPost, "/api/usuarios/cadastro", gin.H{
		"nomeCompleto":   name,
		"email":          email,
		"senha":          "senha123",
		"confirmarSenha": "senha123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": email,
		"senha": "senha123",
	}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie.Value
		}
	}

	t.Fatal("login response did not set the session cookie")
	return ""
}

func TestAuthFlow(t *testing.T) {
	r := setupAPITest(t)

	t.Run("register and login", func(t *testing.T) {
		token := registerAndLogin(t, r, "Alice Silva", "alice@example.com")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate registration is 409", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, "/api/usuarios/cadastro", gin.H{
			"nomeCompleto":   "Alice de Novo",
			"email":          "alice@example.com",
			"senha":          "senha123",
			"confirmarSenha": "senha123",
		}, "")
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, "E-mail já cadastrado", decodeBody(t, resp)["erro"])
	})

	t.Run("bad credentials are 401 with a generic message", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
			"email": "alice@example.com",
			"senha": "errada",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Email ou senha inválidos", decodeBody(t, resp)["erro"])

		resp = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
			"email": "ninguem@example.com",
			"senha": "senha123",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Email ou senha inválidos", decodeBody(t, resp)["erro"])
	})

	t.Run("verificar-sessao", func(t *testing.T) {
		token := registerAndLogin(t, r, "Bob Souza", "bob@example.com")

		resp := doJSON(t, r, http.MethodPost, "/api/auth/verificar-sessao", nil, token)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, decodeBody(t, resp)["autenticado"])

		resp = doJSON(t, r, http.MethodPost, "/api/auth/verificar-sessao", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, false, decodeBody(t, resp)["autenticado"])
	})

	t.Run("protected routes reject anonymous callers", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, "/api/listas", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestListAndItemFlow(t *testing.T) {
	r := setupAPITest(t)

	aliceToken := registerAndLogin(t, r, "Alice Silva", "alice@example.com")
	bobToken := registerAndLogin(t, r, "Bob Souza", "bob@example.com")

	// Alice creates a list
	resp := doJSON(t, r, http.MethodPost, "/api/listas", gin.H{
		"titulo":    "Feira da semana",
		"descricao": "Compras de sábado",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decodeBody(t, resp)
	listData := body["lista"].(map[string]interface{})
	listID := uint(listData["id"].(float64))
	listPath := fmt.Sprintf("/api/listas/%d", listID)

	t.Run("bob cannot see the list before sharing", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, listPath, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("share with bob, then conflict on repeat", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, listPath+"/compartilhar", gin.H{
			"emailColaborador": "bob@example.com",
		}, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		resp = doJSON(t, r, http.MethodPost, listPath+"/compartilhar", gin.H{
			"emailColaborador": "bob@example.com",
		}, aliceToken)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("sharing with the owner is 400", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, listPath+"/compartilhar", gin.H{
			"emailColaborador": "ALICE@example.com",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("bob cannot share or delete", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, listPath+"/compartilhar", gin.H{
			"emailColaborador": "carol@example.com",
		}, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.Code)

		resp = doJSON(t, r, http.MethodDelete, listPath, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	var itemID uint

	t.Run("bob adds an item", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, listPath+"/itens", gin.H{
			"nomeProduto": "Arroz",
			"quantidade":  2,
			"valor":       "5.00",
			"unidade":     "kg",
		}, bobToken)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		item := decodeBody(t, resp)["item"].(map[string]interface{})
		assert.Equal(t, "PENDENTE", item["status"])
		itemID = uint(item["id"].(float64))
	})

	t.Run("bob marks the item purchased", func(t *testing.T) {
		path := fmt.Sprintf("%s/itens/%d/marcar-comprado", listPath, itemID)
		resp := doJSON(t, r, http.MethodPut, path, nil, bobToken)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		item := decodeBody(t, resp)["item"].(map[string]interface{})
		assert.Equal(t, "COMPRADO", item["status"])
	})

	t.Run("stats reflect the purchase", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, listPath+"/itens/estatisticas", nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code)

		stats := decodeBody(t, resp)
		assert.EqualValues(t, 1, stats["total"])
		assert.EqualValues(t, 1, stats["comprados"])
		assert.EqualValues(t, 0, stats["pendentes"])
	})

	t.Run("dashboard totals Rice at 10.00", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, "/api/dashboard", nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code)

		dashboard := decodeBody(t, resp)
		assert.EqualValues(t, 1, dashboard["quantidadeListas"])

		total, err := decimal.NewFromString(dashboard["totalGastoGeral"].(string))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("10")), "total spent = %s", total)
	})

	t.Run("alice removes bob, bob loses access, item stays", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, "/api/usuarios/buscar?email=bob@example.com", nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code)
		bobID := uint(decodeBody(t, resp)["id"].(float64))

		path := fmt.Sprintf("%s/colaboradores/%d", listPath, bobID)
		resp = doJSON(t, r, http.MethodDelete, path, nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		resp = doJSON(t, r, http.MethodGet, listPath+"/itens", nil, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.Code)

		resp = doJSON(t, r, http.MethodGet, listPath+"/itens", nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code)

		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
		assert.Len(t, items, 1)
	})

	t.Run("item mutations resolve the item's own list", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodPost, "/api/listas", gin.H{
			"titulo": "Outra lista",
		}, aliceToken)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		otherID := uint(decodeBody(t, resp)["lista"].(map[string]interface{})["id"].(float64))

		// The path names the wrong list; the response must still carry
		// the list the item belongs to.
		path := fmt.Sprintf("/api/listas/%d/itens/%d/marcar-pendente", otherID, itemID)
		resp = doJSON(t, r, http.MethodPut, path, nil, aliceToken)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		item := decodeBody(t, resp)["item"].(map[string]interface{})
		lista := item["lista"].(map[string]interface{})
		assert.EqualValues(t, listID, lista["id"])
	})

	t.Run("unknown list is 404", func(t *testing.T) {
		resp := doJSON(t, r, http.MethodGet, "/api/listas/999999", nil, aliceToken)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
