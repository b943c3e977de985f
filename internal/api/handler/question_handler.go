package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/core/ports"
)

// QuestionHandler serves the aptitude test and the career catalog.
type QuestionHandler struct {
	questions ports.QuestionService
	careers   ports.CareerService
}

func NewQuestionHandler(questions ports.QuestionService, careers ports.CareerService) *QuestionHandler {
	return &QuestionHandler{questions: questions, careers: careers}
}

// Draw returns shuffled questions without their answers.
//
// @Summary      Draw aptitude questions
// @Tags         aptitude
// @Produce      json
// @Param        category  query     string  false  "verbal | quantitative | logical"
// @Param        count     query     int     false  "Number of questions (0 = all)"
// @Success      200       {object}  questionsResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/questions [get]
func (h *QuestionHandler) Draw(c echo.Context) error {
	count, err := queryInt(c, "count")
	if err != nil {
		return err
	}
	qs, err := h.questions.Draw(c.Request().Context(), c.QueryParam("category"), count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionsResponse{Questions: qs})
}

// Score grades submitted answers.
//
// @Summary      Score answers
// @Tags         aptitude
// @Accept       json
// @Produce      json
// @Param        body  body      scoreRequest  true  "Answers"
// @Success      200   {object}  ports.ScoreResult
// @Failure      400   {object}  errorResponse
// @Router       /v1/questions/score [post]
func (h *QuestionHandler) Score(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	answers := make([]ports.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, ports.Answer{QuestionID: a.QuestionID, Choice: a.Choice})
	}
	res, err := h.questions.Score(c.Request().Context(), answers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// CareerFields lists career areas.
//
// @Summary      List career fields
// @Tags         careers
// @Produce      json
// @Success      200  {object}  careerFieldsResponse
// @Router       /v1/career-fields [get]
func (h *QuestionHandler) CareerFields(c echo.Context) error {
	fields, err := h.careers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, careerFieldsResponse{Fields: fields})
}
