package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/travelcard-api/internal/middleware"
	"github.com/deppfellow/travelcard-api/internal/model"
	"github.com/deppfellow/travelcard-api/internal/server"
	"github.com/deppfellow/travelcard-api/internal/service"
)

// TravelCardHandler serves the travel card lookup.
type TravelCardHandler struct {
	Handler
	travelCardService *service.TravelCardService
}

func NewTravelCardHandler(s *server.Server, travelCardService *service.TravelCardService) *TravelCardHandler {
	return &TravelCardHandler{
		Handler:           NewHandler(s),
		travelCardService: travelCardService,
	}
}

// GetTravelCard handles POST /api/travel-card.
//
// A falsy travelCardNumber is rejected with 400 before any upstream call.
// On success the upstream travel card object is returned unchanged.
func (h *TravelCardHandler) GetTravelCard() echo.HandlerFunc {
	return Handle(h.Handler, h.getTravelCard, http.StatusOK, func() *model.GetTravelCardRequest {
		return &model.GetTravelCardRequest{}
	})
}

func (h *TravelCardHandler) getTravelCard(c echo.Context, req *model.GetTravelCardRequest) (json.RawMessage, error) {
	number := req.TravelCardNumber.Ptr()

	logger := middleware.GetLogger(c)
	if number == nil {
		// Sent upstream as null; the upstream decides what that means.
		logger.Warn().
			Str("travel_card_number", req.TravelCardNumber.String()).
			Msg("travel card number is not an integer")
	}

	card, err := h.travelCardService.GetTravelCard(c.Request().Context(), number)
	if err != nil {
		return nil, err
	}

	if summary, ok := model.Summarize(card); ok {
		logger.Info().
			Int("tickets", summary.Tickets).
			Int("carnet_tickets", summary.CarnetTickets).
			Int("remaining_consumptions", summary.RemainingConsumptions).
			Msg("travel card found")

		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.AddAttribute("travel_card.tickets", summary.Tickets)
			txn.AddAttribute("travel_card.carnet_tickets", summary.CarnetTickets)
		}
	}

	return card, nil
}
