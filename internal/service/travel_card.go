package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/travelcard-api/internal/errs"
	"github.com/deppfellow/travelcard-api/internal/lib/transhub"
	"github.com/deppfellow/travelcard-api/internal/metrics"
	"github.com/deppfellow/travelcard-api/internal/server"
)

// Client-facing messages of the lookup. The upstream ones are Norwegian
// because they are shown as-is by the frontend.
const (
	MessageUpstreamFailed = "Noe gikk galt ved henting av data"
	MessageCardNotFound   = "Fant ingen reisekort på kortnummeret"
)

// TravelCardClient fetches one travel card from the transit API.
type TravelCardClient interface {
	GetTravelCard(ctx context.Context, travelCardNumber *int64) (json.RawMessage, error)
}

type TravelCardService struct {
	server *server.Server
	client TravelCardClient
}

func NewTravelCardService(s *server.Server, client TravelCardClient) *TravelCardService {
	return &TravelCardService{
		server: s,
		client: client,
	}
}

// GetTravelCard looks up one card and returns the upstream travel card
// object verbatim.
//
// Upstream outcomes map to API errors:
//   - non-2xx status: same status, MessageUpstreamFailed
//   - no `data`: 404, MessageCardNotFound
//   - anything else: 500, "An error occurred: <error>"
func (s *TravelCardService) GetTravelCard(ctx context.Context, travelCardNumber *int64) (json.RawMessage, error) {
	start := time.Now()
	card, err := s.client.GetTravelCard(ctx, travelCardNumber)
	s.observe(time.Since(start), err)

	if err == nil {
		return card, nil
	}

	var statusErr *transhub.StatusError
	switch {
	case errors.As(err, &statusErr):
		return nil, errs.NewUpstreamError(statusErr.StatusCode, MessageUpstreamFailed, err)
	case errors.Is(err, transhub.ErrTravelCardNotFound):
		return nil, errs.NewNotFoundError(MessageCardNotFound)
	default:
		return nil, errs.NewInternalServerError(err)
	}
}

func (s *TravelCardService) observe(d time.Duration, err error) {
	if s.server == nil || s.server.Metrics == nil {
		return
	}

	var statusErr *transhub.StatusError
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.As(err, &statusErr):
		outcome = metrics.OutcomeStatus
	case errors.Is(err, transhub.ErrTravelCardNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}

	s.server.Metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
	s.server.Metrics.UpstreamLatency.Observe(float64(d.Milliseconds()))
}
