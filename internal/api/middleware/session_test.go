package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
	"github.com/careerguide/portal/internal/infrastructure/memory"
)

func newRegistry(t *testing.T) *service.SessionRegistry {
	t.Helper()
	r, err := service.NewSessionRegistry(service.RegistryConfig{
		Mode:   domain.BackendLocal,
		KV:     memory.NewKVStore(),
		Hasher: service.Argon2Hasher{Time: 1, MemoryKiB: 64, Threads: 1},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func TestSessionsMiddleware_AttachesManagerAndFeedback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxDeviceID, "dev-1")

	handler := Sessions(newRegistry(t))(func(c echo.Context) error {
		if _, ok := c.Get(CtxSessions).(ports.SessionService); !ok {
			t.Fatalf("session manager not set")
		}
		if _, ok := c.Get(CtxFeedback).(*service.FeedbackRecorder); !ok {
			t.Fatalf("feedback recorder not set")
		}
		if service.FeedbackFromContext(c.Request().Context()) == nil {
			t.Fatalf("feedback not attached to request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionsMiddleware_RequiresDevice(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Sessions(newRegistry(t))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSession_SignedOutRedirects(t *testing.T) {
	reg := newRegistry(t)
	sessions, err := reg.Open(context.Background(), "dev-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxSessions, sessions)

	handler := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body sessionRequiredResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Redirect != "/login?redirect=%2Fv1%2Fme" {
		t.Fatalf("unexpected redirect: %q", body.Redirect)
	}
}

func TestRequireSession_SignedInPasses(t *testing.T) {
	reg := newRegistry(t)
	sessions, err := reg.Open(context.Background(), "dev-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := sessions.SignIn(context.Background(), "student@example.com", "password123", false); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxSessions, sessions)

	called := false
	handler := RequireSession()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
