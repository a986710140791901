package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/travelcard-api/internal/config"
	"github.com/deppfellow/travelcard-api/internal/server"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"

	s, err := server.New(cfg, nil, nil)
	require.NoError(t, err)
	return s
}

func serve(h echo.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = h(c)
	return rec
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name     string
		upstream Pinger
		code     int
		status   string
	}{
		{name: "no upstream check", upstream: nil, code: http.StatusOK, status: "healthy"},
		{name: "upstream reachable", upstream: fakePinger{}, code: http.StatusOK, status: "healthy"},
		{name: "upstream down", upstream: fakePinger{err: errors.New("connection refused")}, code: http.StatusServiceUnavailable, status: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer(t), tt.upstream)

			rec := serve(h.CheckHealth)
			require.Equal(t, tt.code, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, "test", body["environment"])

			checks := body["checks"].(map[string]interface{})
			if tt.upstream == nil {
				assert.Empty(t, checks)
			} else {
				assert.Contains(t, checks, "upstream")
			}
		})
	}
}

func TestCheckHealth_CheckDisabled(t *testing.T) {
	s := newTestServer(t)
	s.Config.Observability.HealthChecks.Enabled = false

	h := NewHealthHandler(s, fakePinger{err: errors.New("down")})

	rec := serve(h.CheckHealth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	h := NewOpenAPIHandler(newTestServer(t), dir)

	rec := serve(h.ServeOpenAPIUI)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")
}

func TestServeOpenAPIUI_MissingFile(t *testing.T) {
	h := NewOpenAPIHandler(newTestServer(t), t.TempDir())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

	assert.Error(t, h.ServeOpenAPIUI(c))
}
