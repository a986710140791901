package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/handler"
)

func registerTravelCardRoutes(api *echo.Group, h *handler.Handlers) {
	api.POST("/travel-card", h.TravelCard.GetTravelCard())
}
