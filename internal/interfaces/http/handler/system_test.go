package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error { return p.err }

func newSystemRouter(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewSystemHandler(db, "1.2.3").RegisterRoutes(engine)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	engine := newSystemRouter(nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Ready(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, "ready", data["status"])
}

func TestSystemHandler_Ready_DatabaseDown(t *testing.T) {
	engine := newSystemRouter(&stubPinger{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
