package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/travelcard-api/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "test"

	var buf bytes.Buffer
	log := New(&buf, cfg)

	log.Debug().Msg("hidden")
	log.Info().Str("card", "1").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "1", entry["card"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "loud"

	var buf bytes.Buffer
	log := New(&buf, cfg)
	log.Debug().Msg("hidden")

	assert.Zero(t, buf.Len())
}

func TestLoggerService_WithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, svc.GetApplication())
	assert.NotPanics(t, svc.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	assert.NotPanics(t, nilService.Shutdown)
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.DefaultObservabilityConfig())

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("x")

	assert.NotContains(t, buf.String(), "trace.id")
}
