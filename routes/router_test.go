package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"civiclens/config"
	"civiclens/middlewares"
	"civiclens/services"
	"civiclens/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := NewRouter(cfg, services.NewIssueService(store.NewMemoryStore()), nil, zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestNewRouter_Ping(t *testing.T) {
	r := newTestRouter(t, config.Default())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))
}

func TestNewRouter_IssueFlow(t *testing.T) {
	r := newTestRouter(t, config.Default())

	body := `{"description":"Streetlight out on Oak Ave","location":{"latitude":1,"longitude":2,"address":"Oak Ave","district":"North Side District"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/issues", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"category":"streetlight"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/issues/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestNewRouter_CORS(t *testing.T) {
	cfg := config.Default()
	cfg.CORSOrigins = []string{"http://citizen.test"}
	r := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/issues", nil)
	req.Header.Set("Origin", "http://citizen.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://citizen.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://elsewhere.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig_Wildcard(t *testing.T) {
	c := corsConfig([]string{"*"})
	assert.True(t, c.AllowAllOrigins)
	assert.Empty(t, c.AllowOrigins)
	assert.NoError(t, c.Validate())
}
