package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
)

// Sessions resolves the device's session manager and attaches a feedback
// recorder to the request. It must run after Device.
func Sessions(opener ports.SessionOpener) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deviceID, _ := c.Get(CtxDeviceID).(string)
			if deviceID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing device identity")
			}

			rec := &service.FeedbackRecorder{}
			ctx := service.WithFeedback(c.Request().Context(), rec)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(CtxFeedback, rec)

			sessions, err := opener.Open(ctx, deviceID)
			if err != nil {
				return err
			}
			c.Set(CtxSessions, sessions)
			return next(c)
		}
	}
}

type sessionRequiredResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RequireSession rejects signed-out callers with a login redirect that
// returns to the requested path.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessions, _ := c.Get(CtxSessions).(ports.SessionService)
			if sessions != nil {
				if _, ok := sessions.RequireSession(); ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusUnauthorized, sessionRequiredResponse{
				Error:    "Please sign in to continue.",
				Redirect: service.LoginRedirect(c.Request().URL.Path),
			})
		}
	}
}
