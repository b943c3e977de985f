package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/api/metrics"
	"github.com/careerguide/portal/internal/core/ports"
)

type CollegeHandler struct {
	service ports.DirectoryService
}

func NewCollegeHandler(service ports.DirectoryService) *CollegeHandler {
	return &CollegeHandler{service: service}
}

// List returns one page of the filtered and sorted directory.
//
// @Summary      List colleges
// @Tags         colleges
// @Produce      json
// @Param        location     query     string  false  "Country (case-insensitive)"
// @Param        program      query     string  false  "Program substring"
// @Param        max_fee      query     number  false  "Maximum total fee in USD"
// @Param        max_ranking  query     int     false  "Maximum global ranking"
// @Param        sort         query     string  false  "ranking | fees | fees-desc | name"
// @Param        page         query     int     false  "1-based page"
// @Param        page_size    query     int     false  "Page size (default 12, max 100)"
// @Success      200          {object}  collegeListResponse
// @Failure      400          {object}  errorResponse
// @Router       /v1/colleges [get]
func (h *CollegeHandler) List(c echo.Context) error {
	q := ports.BrowseQuery{
		Filter: ports.FilterCriteria{
			Location: c.QueryParam("location"),
			Program:  c.QueryParam("program"),
		},
		Sort: c.QueryParam("sort"),
	}

	var err error
	if q.Filter.MaxFeeUSD, err = queryFloat(c, "max_fee"); err != nil {
		return err
	}
	if q.Filter.MaxRanking, err = queryInt(c, "max_ranking"); err != nil {
		return err
	}
	if q.Page, err = queryInt(c, "page"); err != nil {
		return err
	}
	if q.PageSize, err = queryInt(c, "page_size"); err != nil {
		return err
	}

	res, err := h.service.Browse(c.Request().Context(), q)
	if err != nil {
		return err
	}
	metrics.DirectoryLoadsTotal.WithLabelValues(res.Source).Inc()

	return c.JSON(http.StatusOK, collegeListResponse{
		Items:      res.Page.Items,
		Cards:      res.Cards,
		Total:      res.Page.Total,
		Page:       res.Page.Page,
		PageSize:   res.Page.PageSize,
		TotalPages: res.Page.TotalPages,
		HasPrev:    res.Page.HasPrev,
		HasNext:    res.Page.HasNext,
	})
}

// Get returns one college.
//
// @Summary      Get college
// @Tags         colleges
// @Produce      json
// @Param        id   path      string  true  "College id"
// @Success      200  {object}  domain.College
// @Failure      404  {object}  errorResponse
// @Router       /v1/colleges/{id} [get]
func (h *CollegeHandler) Get(c echo.Context) error {
	college, err := h.service.SelectForDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, college)
}

// Apply starts an application. Signed-out callers get a login redirect.
//
// @Summary      Apply to a college
// @Tags         colleges
// @Produce      json
// @Security     DeviceToken
// @Param        id   path      string  true  "College id"
// @Success      200  {object}  applyResponse
// @Failure      401  {object}  applyResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/colleges/{id}/apply [post]
func (h *CollegeHandler) Apply(c echo.Context) error {
	sessions, _ := ctxSessions(c)
	out, err := h.service.SelectForAction(c.Request().Context(), c.Param("id"), sessions)
	if err != nil {
		return err
	}
	if out.Redirect != "" {
		return c.JSON(http.StatusUnauthorized, applyResponse{Redirect: out.Redirect, Message: "Please sign in to apply."})
	}
	return c.JSON(http.StatusOK, applyResponse{College: out.College, Message: "Application started for " + out.College.Name})
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

func queryFloat(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative number")
	}
	return v, nil
}
