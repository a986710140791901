package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/travelcard-api/internal/middleware"
	"github.com/deppfellow/travelcard-api/internal/server"
	"github.com/deppfellow/travelcard-api/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (TravelCardHandler, HealthHandler) so
// they can reach config, logger and clients via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a decoded and validated Req
// (a pointer type, e.g. *model.GetTravelCardRequest) and returns Res or an
// error for the global error handler.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result and names the operation in
// logs and traces.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes results as JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, _ interface{}) {
	txn.AddAttribute("response.status", h.status)
}

// phase is one timed step of handleRequest.
type phase struct {
	name  string
	start time.Time
}

func startPhase(name string) phase {
	return phase{name: name, start: time.Now()}
}

// end records the outcome of the phase on the transaction and returns its
// duration.
func (p phase) end(txn *newrelic.Transaction, err error) time.Duration {
	d := time.Since(p.start)
	if txn == nil {
		return d
	}

	status := "success"
	if err != nil {
		status = "failed"
	}
	txn.AddAttribute(p.name+".status", status)
	txn.AddAttribute(p.name+".duration_ms", d.Milliseconds())
	return d
}

// handleRequest runs one request through decode and validation, the typed
// handler, and the response writer. Failures are returned untouched so the
// global error handler renders them; this function only logs and traces.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	total := startPhase("total")
	route := c.Path()

	// Set by nrecho; nil when New Relic is disabled.
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()
	logger.Debug().Msg("handling request")

	validating := startPhase("validation")
	err := validation.BindAndValidate(c, req)
	validationDuration := validating.end(txn, err)
	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	running := startPhase("handler")
	result, err := handler(c, req)
	handlerDuration := running.end(txn, err)
	if err != nil {
		logHandlerError(&logger, err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", total.end(txn, err)).
			Msg("handler execution failed")
		return err
	}

	if txn != nil {
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", total.end(txn, nil)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// logHandlerError logs errors that map to 5xx at error level, the rest at
// warn.
func logHandlerError(logger *zerolog.Logger, err error) *zerolog.Event {
	if middleware.StatusOf(err) >= 500 {
		return logger.Error().Err(err)
	}
	return logger.Warn().Err(err)
}

// Handle adapts a typed HandlerFunc to an echo.HandlerFunc. newReq is
// called once per request, so concurrent requests never share a payload:
//
//	api.POST("/x", Handle(h, fn, http.StatusOK, func() *MyReq { return &MyReq{} }))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
