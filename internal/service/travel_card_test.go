package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/travelcard-api/internal/errs"
	"github.com/deppfellow/travelcard-api/internal/lib/transhub"
	"github.com/deppfellow/travelcard-api/internal/metrics"
	"github.com/deppfellow/travelcard-api/internal/server"
)

type fakeClient struct {
	card  json.RawMessage
	err   error
	calls []*int64
}

func (f *fakeClient) GetTravelCard(_ context.Context, travelCardNumber *int64) (json.RawMessage, error) {
	f.calls = append(f.calls, travelCardNumber)
	return f.card, f.err
}

func newTestServer() *server.Server {
	return &server.Server{Metrics: metrics.New("test")}
}

func TestTravelCardService_GetTravelCard(t *testing.T) {
	number := int64(1602012345)

	tests := []struct {
		name    string
		client  *fakeClient
		status  int
		message string
		outcome string
	}{
		{
			name:    "found",
			client:  &fakeClient{card: json.RawMessage(`{"tickets":[]}`)},
			outcome: metrics.OutcomeSuccess,
		},
		{
			name:    "upstream status",
			client:  &fakeClient{err: &transhub.StatusError{StatusCode: http.StatusServiceUnavailable}},
			status:  http.StatusServiceUnavailable,
			message: MessageUpstreamFailed,
			outcome: metrics.OutcomeStatus,
		},
		{
			name:    "not found",
			client:  &fakeClient{err: transhub.ErrTravelCardNotFound},
			status:  http.StatusNotFound,
			message: MessageCardNotFound,
			outcome: metrics.OutcomeNotFound,
		},
		{
			name:    "transport failure",
			client:  &fakeClient{err: errors.Wrap(errors.New("connection refused"), "dial")},
			status:  http.StatusInternalServerError,
			message: "An error occurred: dial: connection refused",
			outcome: metrics.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			svc := NewTravelCardService(s, tt.client)

			card, err := svc.GetTravelCard(context.Background(), &number)

			require.Len(t, tt.client.calls, 1)
			assert.Equal(t, &number, tt.client.calls[0])
			assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.UpstreamRequests.WithLabelValues(tt.outcome)))

			if tt.status == 0 {
				require.NoError(t, err)
				assert.JSONEq(t, `{"tickets":[]}`, string(card))
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestTravelCardService_WithoutMetrics(t *testing.T) {
	client := &fakeClient{card: json.RawMessage(`{}`)}
	svc := NewTravelCardService(nil, client)

	card, err := svc.GetTravelCard(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(card))
	assert.Nil(t, client.calls[0])
}
