package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/server"
)

// MetricsMiddleware records request counts and latencies in Prometheus.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Collect labels requests by route template, not raw URL, so card numbers
// never become label values.
func (mm *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(statusFromError(c, err))

			m := mm.server.Metrics
			m.Requests.WithLabelValues(route, c.Request().Method, status).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))

			return err
		}
	}
}
