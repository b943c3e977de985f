package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Me returns the signed-in user's data merged with the stored profile.
//
// @Summary      Current user
// @Tags         profile
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  userDataResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}
	data, err := sessions.CurrentUserData(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userDataResponse{Session: data.Session, Profile: data.Profile})
}

// Update applies a partial profile change.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      profilePatchRequest  true  "Fields to change"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/me [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	var req profilePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	patch := toProfilePatch(req)
	if patch.Empty() {
		return echo.NewHTTPError(http.StatusBadRequest, "no profile fields to update")
	}

	res, err := sessions.UpdateProfile(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	observeAuth("update_profile", sessions.Mode(), res, nil)
	return c.JSON(http.StatusOK, toAuthResponse(res, Notifications(c)))
}

// Users lists sanitized accounts of the local backend.
//
// @Summary      List local accounts
// @Tags         profile
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      501  {object}  errorResponse
// @Router       /v1/users [get]
func (h *ProfileHandler) Users(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}
	users, err := sessions.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}
