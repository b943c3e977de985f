package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/api/metrics"
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	defaultIdempotency   = 10 * time.Minute
)

type AuthHandler struct {
	guard ports.IdempotencyGuard
	ttl   time.Duration
	log   zerolog.Logger
}

// NewAuthHandler accepts a nil guard, which disables Idempotency-Key replay
// detection.
func NewAuthHandler(guard ports.IdempotencyGuard, ttl time.Duration, log zerolog.Logger) *AuthHandler {
	if ttl <= 0 {
		ttl = defaultIdempotency
	}
	return &AuthHandler{guard: guard, ttl: ttl, log: log}
}

// SignUp creates an account and signs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        Idempotency-Key  header    string         false  "Replay protection key"
// @Param        body             body      signUpRequest  true   "Account details"
// @Success      201              {object}  authResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	claim := ""
	if key := c.Request().Header.Get(HeaderIdempotencyKey); key != "" && h.guard != nil {
		claim = "signup:" + ctxDeviceID(c) + ":" + key
		fresh, err := h.guard.Claim(ctx, claim, h.ttl)
		if err != nil {
			h.log.Warn().Err(err).Msg("idempotency check failed, continuing")
			claim = ""
		} else if !fresh {
			return domain.ErrDuplicateSubmission
		}
	}

	res, err := sessions.SignUp(ctx, toSignUpInput(req))
	observeAuth("sign_up", sessions.Mode(), res, err)
	if err != nil {
		h.release(ctx, claim)
		return err
	}
	return c.JSON(http.StatusCreated, toAuthResponse(res, Notifications(c)))
}

// SignIn authenticates with email and password.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := sessions.SignIn(c.Request().Context(), req.Email, req.Password, req.RememberMe)
	observeAuth("sign_in", sessions.Mode(), res, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(res, Notifications(c)))
}

// Federated completes a sign-in vouched for by an external provider.
//
// @Summary      Federated sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      federatedRequest  true  "Provider assertion"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      501   {object}  errorResponse
// @Router       /v1/auth/federated [post]
func (h *AuthHandler) Federated(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	var req federatedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := sessions.SignInWithFederatedProvider(c.Request().Context(), domain.FederatedAssertion{
		Provider: req.Provider,
		IDToken:  req.IDToken,
	})
	observeAuth("federated_sign_in", sessions.Mode(), res, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(res, Notifications(c)))
}

// SignOut ends the current session. It succeeds when already signed out.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  messageResponse
// @Router       /v1/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	err = sessions.SignOut(c.Request().Context())
	observeAuth("sign_out", sessions.Mode(), nil, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Signed out successfully", Notifications: Notifications(c)})
}

// Reset requests a password reset.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      resetRequest  true  "Account email"
// @Success      202   {object}  resetResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/auth/reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}

	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ack, err := sessions.ResetPassword(c.Request().Context(), req.Email)
	observeAuth("reset_password", sessions.Mode(), nil, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, resetResponse{
		Message:       ack.Message,
		Diagnostic:    ack.Diagnostic,
		Notifications: Notifications(c),
	})
}

// Session reports the current session of the device.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  sessionResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sessions, err := ctxSessions(c)
	if err != nil {
		return err
	}
	s := sessions.CurrentSession()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: s != nil,
		Mode:          string(sessions.Mode()),
		Session:       s,
	})
}

// release frees a sign-up claim after a failed attempt so the client can
// retry with the same key.
func (h *AuthHandler) release(ctx context.Context, claim string) {
	if claim == "" {
		return
	}
	if err := h.guard.Release(ctx, claim); err != nil {
		h.log.Warn().Err(err).Str("claim", claim).Msg("failed to release idempotency key")
	}
}

func observeAuth(op string, mode domain.BackendMode, res *ports.AuthResult, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(op, string(mode), resultLabel(err)).Inc()
	if res == nil {
		return
	}
	for _, w := range res.Warnings {
		metrics.NonCriticalWriteFailuresTotal.WithLabelValues(w.Op).Inc()
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var rae *domain.RemoteAuthError
	if errors.As(err, &rae) {
		return string(rae.Reason)
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid-input"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not-found"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid-credential"
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return "unsupported"
	case errors.Is(err, domain.ErrAuthInProgress):
		return "in-progress"
	}
	return "error"
}
