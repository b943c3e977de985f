package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/core/ports"
)

// DeviceHandler registers new runtime instances.
type DeviceHandler struct {
	issuer ports.DeviceTokenIssuer
}

func NewDeviceHandler(issuer ports.DeviceTokenIssuer) *DeviceHandler {
	return &DeviceHandler{issuer: issuer}
}

// Register issues a device token. Clients send it as a bearer token on
// every other call.
//
// @Summary      Register a device
// @Tags         devices
// @Produce      json
// @Success      201  {object}  deviceResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/devices [post]
func (h *DeviceHandler) Register(c echo.Context) error {
	token, deviceID, err := h.issuer.Issue()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, deviceResponse{Token: token, DeviceID: deviceID})
}
