package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/api/handler"
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error         string                 `json:"error"`
	Reason        string                 `json:"reason,omitempty"`
	Notifications []service.Notification `json:"notifications,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Uses the user-facing message of the error as the body.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		resp.Notifications = handler.Notifications(c)
		_ = c.JSON(code, resp)
	}
}

var remoteStatus = map[domain.RemoteAuthReason]int{
	domain.ReasonAccountExists:  http.StatusConflict,
	domain.ReasonWeakSecret:     http.StatusUnprocessableEntity,
	domain.ReasonMalformedEmail: http.StatusUnprocessableEntity,
	domain.ReasonNotFound:       http.StatusNotFound,
	domain.ReasonWrongSecret:    http.StatusUnauthorized,
	domain.ReasonRateLimited:    http.StatusTooManyRequests,
	domain.ReasonNetworkFailure: http.StatusServiceUnavailable,
	domain.ReasonPopupDismissed: http.StatusBadRequest,
	domain.ReasonInvalidToken:   http.StatusUnauthorized,
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var rae *domain.RemoteAuthError
	if errors.As(err, &rae) {
		code, ok := remoteStatus[rae.Reason]
		if !ok {
			code = http.StatusBadGateway
			log.Error().Err(err).Str("path", c.Path()).Msg("unclassified remote auth error")
		}
		return code, errorResponse{Error: domain.UserMessage(err), Reason: string(rae.Reason)}
	}

	// Known domain errors → deterministic HTTP codes.
	msg := domain.UserMessage(err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrCollegeNotFound):
		return http.StatusNotFound, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return http.StatusNotImplemented, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrAuthInProgress), errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, errorResponse{Error: msg}
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: msg}
	case errors.Is(err, service.ErrQueueFull):
		return http.StatusServiceUnavailable, errorResponse{Error: "We are receiving too many messages. Please try again shortly."}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
