package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes backend errors through with the backend's status and message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status, reqErr.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized, domain.ErrAuthentication.Error()
	case errors.Is(err, domain.ErrRegistration):
		return http.StatusBadRequest, domain.ErrRegistration.Error()
	case errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound, "page not found"
	case errors.Is(err, domain.ErrTimeout):
		logUpstream(log, c, err)
		return http.StatusGatewayTimeout, domain.ErrTimeout.Error()
	case errors.Is(err, domain.ErrUnreachable):
		logUpstream(log, c, err)
		return http.StatusBadGateway, domain.ErrUnreachable.Error()
	case errors.Is(err, domain.ErrDecode):
		logUpstream(log, c, err)
		return http.StatusBadGateway, domain.ErrDecode.Error()
	case errors.Is(err, domain.ErrTooLarge):
		logUpstream(log, c, err)
		return http.StatusBadGateway, domain.ErrTooLarge.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func logUpstream(log zerolog.Logger, c echo.Context, err error) {
	log.Warn().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("backend call failed")
}
