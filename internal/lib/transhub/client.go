// Package transhub is a client for the transit operator's GraphQL API.
//
// It sends the fixed GetTravelCard query for one travel card and
// interprets the GraphQL envelope: a non-2xx status, a missing `data`
// field and a present travel card are told apart so callers can map each
// to its own response.
package transhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/travelcard-api/internal/config"
	"github.com/deppfellow/travelcard-api/internal/model"
)

// ErrTravelCardNotFound is returned when the API answered successfully but
// without any `data`.
var ErrTravelCardNotFound = errors.New("travel card not found")

// ErrNullDocument is returned when the response body is the JSON literal
// null, which has no fields to read.
var ErrNullDocument = errors.New("cannot read data of a null transit API response")

// emptyObject is returned when `data` exists but holds no travel card.
var emptyObject = json.RawMessage(`{}`)

// StatusError is returned when the API answered with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transit API responded with status %d", e.StatusCode)
}

// Response is the GraphQL envelope. Both fields are kept raw: `data` is
// forwarded verbatim and `errors` is only logged.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Client wraps an http.Client configured for the transit API and a logger.
//
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	url        string
	headers    http.Header
	logger     *zerolog.Logger
}

// NewClient creates a Client from the upstream config.
//
// The transport is wrapped by New Relic, so when a request context carries
// a transaction the call is recorded as an external segment and trace
// headers are propagated. Without a transaction it passes through.
func NewClient(cfg config.UpstreamConfig, logger *zerolog.Logger) *Client {
	headers := http.Header{}
	headers.Set("Accept", "*/*")
	headers.Set("Accept-Language", cfg.AcceptLanguage)
	headers.Set("Client-Platform", cfg.ClientPlatform)
	headers.Set("Client-Version", cfg.ClientVersion)
	headers.Set("Content-Type", "application/json")
	headers.Set("Owner-ID", cfg.OwnerID)

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Client{
		httpClient: &http.Client{
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		url:     cfg.URL,
		headers: headers,
		logger:  logger,
	}
}

// URL returns the GraphQL endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// GetTravelCard posts the GetTravelCard query for travelCardNumber.
//
// It returns:
//   - the raw `data.travelCard` object, or `{}` when `data` holds none
//   - ErrTravelCardNotFound when `data` is missing or null
//   - *StatusError for a non-2xx response
//   - any other error for transport failures and malformed JSON
//
// Exactly one request is sent; nothing is retried.
func (c *Client) GetTravelCard(ctx context.Context, travelCardNumber *int64) (json.RawMessage, error) {
	logger := c.loggerFrom(ctx)
	start := time.Now()

	body, err := json.Marshal(NewGetTravelCardPayload(travelCardNumber))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode GraphQL query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transit API request")
	}
	req.Header = c.headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("transit API request failed")
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		logger.Warn().
			Int("upstream_status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("transit API responded with non-success status")
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read transit API response")
	}

	card, err := parseResponse(payload, logger)

	logger.Debug().
		Int("upstream_status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Bool("found", err == nil).
		Msg("transit API request completed")

	return card, err
}

// parseResponse extracts `data.travelCard` from a successful response body.
func parseResponse(payload []byte, logger *zerolog.Logger) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode transit API response")
	}

	doc = bytes.TrimSpace(doc)
	if bytes.Equal(doc, []byte("null")) {
		return nil, ErrNullDocument
	}
	if len(doc) == 0 || doc[0] != '{' {
		// A document without fields has no `data` either.
		return nil, ErrTravelCardNotFound
	}

	var envelope Response
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode transit API response")
	}

	if model.IsTruthy(envelope.Errors) {
		logger.Warn().
			RawJSON("graphql_errors", envelope.Errors).
			Msg("transit API returned GraphQL errors")
	}

	if !model.IsTruthy(envelope.Data) {
		return nil, ErrTravelCardNotFound
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		// `data` is present but not an object, so it has no travelCard.
		return emptyObject, nil
	}

	card, ok := data["travelCard"]
	if !ok || !model.IsTruthy(card) {
		return emptyObject, nil
	}

	return card, nil
}

// Ping checks that the endpoint answers HTTP at all. Any status counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build transit API request")
	}
	req.Header = c.headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return nil
}

// loggerFrom prefers the request-scoped logger stored in ctx.
func (c *Client) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return c.logger
}
