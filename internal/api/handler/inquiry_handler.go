package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/core/ports"
)

// InquiryHandler accepts contact messages and newsletter sign-ups. Both are
// persisted asynchronously.
type InquiryHandler struct {
	service ports.InquiryService
}

func NewInquiryHandler(service ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

// Contact handles POST /v1/contact.
//
// @Summary      Send a contact message
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/contact [post]
func (h *InquiryHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.SubmitContact(c.Request().Context(), req.Name, req.Email, req.Message); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "Thank you for your message! We will get back to you soon."})
}

// Newsletter handles POST /v1/newsletter.
//
// @Summary      Subscribe to the newsletter
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body  body      newsletterRequest  true  "Subscriber"
// @Success      202   {object}  acceptedResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/newsletter [post]
func (h *InquiryHandler) Newsletter(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Subscribe(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "Successfully subscribed to newsletter!"})
}
