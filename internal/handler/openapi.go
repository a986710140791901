package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/server"
)

// OpenAPIHandler serves the OpenAPI UI for trying the API.
//
// The UI is a static HTML page (openapi.html) that loads its JS from a CDN
// and reads openapi.json from the same static directory.
type OpenAPIHandler struct {
	Handler
	staticDir string
}

// NewOpenAPIHandler constructs an OpenAPIHandler serving from staticDir.
func NewOpenAPIHandler(s *server.Server, staticDir string) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler:   NewHandler(s),
		staticDir: staticDir,
	}
}

// ServeOpenAPIUI reads openapi.html and serves it as an HTML response.
//
// Cache-Control is set to "no-cache" so clients do not reuse old docs UI.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(h.staticDir, "openapi.html"))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
