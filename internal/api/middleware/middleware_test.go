package middleware

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/logger"
	"Keystone/internal/pkg/security"
	"Keystone/internal/repository"
	"Keystone/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), AuditMiddleware(), CORSMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "data": c.GetString(consts.PrincipalKey)})
	})
	r.GET("/t", handlers...)
	return r
}

func call(t *testing.T, r *gin.Engine, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	var body struct {
		Code int    `json:"code"`
		Data string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code, body.Data
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(AuthMiddleware())

	code, _ := call(t, r, "")
	assert.Equal(t, service.Unauthorized, code)

	code, _ = call(t, r, "not.a.jwt")
	assert.Equal(t, service.Unauthorized, code)

	token, err := security.GenerateToken("p-alice")
	require.NoError(t, err)
	code, principal := call(t, r, token)
	assert.Equal(t, service.Ok, code)
	assert.Equal(t, "p-alice", principal)
}

func TestAdminOnly(t *testing.T) {
	ledger := repository.NewLedger(model.Settings{FeeCollector: "deployer", Escrow: "escrow"})
	r := newEngine(AuthMiddleware(), AdminOnly(service.NewAdminService(ledger)))

	token, err := security.GenerateToken("p-alice")
	require.NoError(t, err)
	code, _ := call(t, r, token)
	assert.Equal(t, service.Unauthorized, code)

	token, err = security.GenerateToken("deployer")
	require.NoError(t, err)
	code, principal := call(t, r, token)
	assert.Equal(t, service.Ok, code)
	assert.Equal(t, "deployer", principal)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.OPTIONS("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/t", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestTraceMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/t", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.TraceIDKey))
	})

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		if header != "" {
			req.Header.Set(traceHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	upstream := "6f1c2a9e-3b4d-4c5e-8f90-1a2b3c4d5e6f"
	w := serve(upstream)
	assert.Equal(t, upstream, w.Header().Get(traceHeader))
	assert.Equal(t, upstream, w.Body.String())

	w = serve("forged\nlog line")
	id := w.Header().Get(traceHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}
