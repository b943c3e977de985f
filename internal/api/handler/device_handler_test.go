package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue() (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "tok", "dev-1", nil
}

func TestDeviceHandler_Register(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/devices", nil), rec)

	if err := NewDeviceHandler(stubIssuer{}).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp deviceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" || resp.DeviceID != "dev-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDeviceHandler_RegisterError(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/devices", nil), httptest.NewRecorder())

	if err := NewDeviceHandler(stubIssuer{err: errors.New("no secret")}).Register(c); err == nil {
		t.Fatalf("expected error")
	}
}
