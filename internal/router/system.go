package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/handler"
	"github.com/deppfellow/travelcard-api/internal/server"
)

// registerSystemRoutes registers "system" endpoints that are not part of
// business logic:
//  1. Health endpoint
//  2. Prometheus metrics
//  3. Docs endpoint (OpenAPI UI) and its static assets
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
