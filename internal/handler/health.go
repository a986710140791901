package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/middleware"
	"github.com/deppfellow/travelcard-api/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Pinger checks reachability of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthHandler serves the endpoint load balancers and uptime monitors
// poll. With the "upstream" check enabled it also reports whether the
// transit API can be reached.
type HealthHandler struct {
	Handler
	upstream Pinger
}

// NewHealthHandler constructs a HealthHandler. A nil upstream skips the
// upstream check.
func NewHealthHandler(s *server.Server, upstream Pinger) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		upstream: upstream,
	}
}

// CheckHealth responds 200 when every enabled check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]CheckResult{},
	}

	obs := h.server.Config.Observability
	if h.upstream != nil && obs.HasCheck("upstream") {
		result := h.checkUpstream(c.Request().Context(), obs.HealthChecks.Timeout)
		response.Checks["upstream"] = result

		if result.Status != statusHealthy {
			response.Status = statusUnhealthy
			logger.Error().
				Str("error", result.Error).
				Str("response_time", result.ResponseTime).
				Msg("upstream health check failed")
		}
	}

	if response.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkUpstream(ctx context.Context, timeout time.Duration) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := h.upstream.Ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return CheckResult{Status: statusHealthy, ResponseTime: elapsed.String()}
	}

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       "upstream",
			"operation":        "health_check",
			"error_type":       "upstream_unreachable",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return CheckResult{
		Status:       statusUnhealthy,
		ResponseTime: elapsed.String(),
		Error:        err.Error(),
	}
}
