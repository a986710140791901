// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/handler"
	"github.com/deppfellow/travelcard-api/internal/middleware"
	"github.com/deppfellow/travelcard-api/internal/server"
)

// NewRouter builds the echo instance with the full middleware stack and
// all routes.
//
// Middleware order matters:
//  1. RequestID first, so every later layer can read it
//  2. New Relic starts the transaction, EnhanceTracing decorates it
//  3. ContextEnhancer builds the request logger (needs 1 and 2)
//  4. RequestLogger and Metrics observe the final status
//  5. Recover sits innermost so panics still pass through 1-4
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(middleware.RequestID())

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Collect(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api")
	registerTravelCardRoutes(api, h)

	return router
}
