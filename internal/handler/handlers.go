// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/travelcard-api/internal/server"
	"github.com/deppfellow/travelcard-api/internal/service"
)

// StaticDir is where the OpenAPI document and UI live, relative to the
// working directory.
const StaticDir = "static"

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	TravelCard *TravelCardHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	var upstream Pinger
	if s.Transhub != nil {
		upstream = s.Transhub
	}

	return &Handlers{
		TravelCard: NewTravelCardHandler(s, services.TravelCard),
		Health:     NewHealthHandler(s, upstream),
		OpenAPI:    NewOpenAPIHandler(s, StaticDir),
	}
}
