package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/api/middleware"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
)

// ctxSessions returns the session manager injected by middleware.Sessions.
func ctxSessions(c echo.Context) (ports.SessionService, error) {
	s, _ := c.Get(middleware.CtxSessions).(ports.SessionService)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing device session")
	}
	return s, nil
}

func ctxDeviceID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxDeviceID).(string)
	return id
}

// Notifications returns what the feedback recorder collected for this request.
func Notifications(c echo.Context) []service.Notification {
	rec, _ := c.Get(middleware.CtxFeedback).(*service.FeedbackRecorder)
	if rec == nil {
		return nil
	}
	return rec.Notifications()
}
