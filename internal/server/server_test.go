package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/travelcard-api/internal/config"
)

func TestSetupHTTPServer_Timeouts(t *testing.T) {
	tests := []struct {
		name  string
		write int
		want  time.Duration
	}{
		{name: "default has no write timeout", write: config.DefaultConfig().Server.WriteTimeout, want: 0},
		{name: "configured write timeout", write: 45, want: 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Server.WriteTimeout = tt.write

			s := &Server{Config: cfg}
			s.SetupHTTPServer(http.NotFoundHandler())

			require.NotNil(t, s.httpServer)
			assert.Equal(t, ":8080", s.httpServer.Addr)
			assert.Equal(t, 10*time.Second, s.httpServer.ReadTimeout)
			assert.Equal(t, tt.want, s.httpServer.WriteTimeout)
			assert.Equal(t, 60*time.Second, s.httpServer.IdleTimeout)
		})
	}
}
