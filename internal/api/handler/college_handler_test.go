package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/service"
)

func newCollegeHandler() *CollegeHandler {
	return NewCollegeHandler(service.NewCollegeService(service.NewDirectory(nil, 0, zerolog.Nop()), 2))
}

func TestCollegeHandler_List(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/colleges?location=USA&sort=fees&page=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newCollegeHandler().List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp collegeListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 3 || resp.TotalPages != 2 || !resp.HasNext || resp.HasPrev {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != "harvard" {
		t.Fatalf("unexpected order: %+v", resp.Items)
	}
	if len(resp.Cards) != 2 || resp.Cards[0].FeeText != "$73,800" {
		t.Fatalf("unexpected cards: %+v", resp.Cards)
	}
}

func TestCollegeHandler_ListBadQuery(t *testing.T) {
	for _, q := range []string{"page=two", "max_fee=-1", "max_ranking=x"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/colleges?"+q, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		err := newCollegeHandler().List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", q, err)
		}
	}
}

func TestCollegeHandler_GetNotFound(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("atlantis")

	if err := newCollegeHandler().Get(c); !errors.Is(err, domain.ErrCollegeNotFound) {
		t.Fatalf("expected ErrCollegeNotFound, got %v", err)
	}
}

func TestCollegeHandler_Apply(t *testing.T) {
	stub := &stubSessions{}
	c, rec := newDeviceContext(http.MethodPost, "/v1/colleges/mit/apply", nil, stub)
	c.SetParamNames("id")
	c.SetParamValues("mit")

	if err := newCollegeHandler().Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when signed out, got %d", rec.Code)
	}
	var resp applyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Redirect != "/login?redirect=%2Fcolleges" {
		t.Fatalf("unexpected redirect: %q", resp.Redirect)
	}

	stub.current = &domain.Session{UserID: "u1"}
	c, rec = newDeviceContext(http.MethodPost, "/v1/colleges/mit/apply", nil, stub)
	c.SetParamNames("id")
	c.SetParamValues("mit")
	if err := newCollegeHandler().Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when signed in, got %d", rec.Code)
	}
}
