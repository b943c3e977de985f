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
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
)

func newQuestionHandler() *QuestionHandler {
	return NewQuestionHandler(service.NewQuestionBank(nil, zerolog.Nop()), service.NewCareerCatalog(nil, zerolog.Nop()))
}

func TestQuestionHandler_Draw(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/questions?category=verbal&count=1", nil), rec)

	if err := newQuestionHandler().Draw(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp questionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Questions) != 1 || resp.Questions[0].CorrectAnswer != -1 {
		t.Fatalf("unexpected questions: %+v", resp.Questions)
	}
}

func TestQuestionHandler_DrawTooMany(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/questions?count=500", nil), httptest.NewRecorder())

	if err := newQuestionHandler().Draw(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQuestionHandler_Score(t *testing.T) {
	c, rec := newDeviceContext(http.MethodPost, "/v1/questions/score",
		jsonBody(`{"answers":[{"question_id":"quantitative_002","choice":1}]}`), nil)

	if err := newQuestionHandler().Score(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp ports.ScoreResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Score != 2 || resp.Correct != 1 {
		t.Fatalf("unexpected score: %+v", resp)
	}
}

func TestQuestionHandler_CareerFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/career-fields", nil), rec)

	if err := newQuestionHandler().CareerFields(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp careerFieldsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Fields) != 6 {
		t.Fatalf("expected 6 career fields, got %d", len(resp.Fields))
	}
}
