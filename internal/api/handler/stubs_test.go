package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/api/middleware"
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
)

type stubSessions struct {
	mode    domain.BackendMode
	current *domain.Session

	signUpFn    func(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error)
	signInFn    func(ctx context.Context, email, password string, remember bool) (*ports.AuthResult, error)
	federatedFn func(ctx context.Context, a domain.FederatedAssertion) (*ports.AuthResult, error)
	resetFn     func(ctx context.Context, email string) (*ports.ResetAck, error)
	updateFn    func(ctx context.Context, p ports.ProfilePatch) (*ports.AuthResult, error)
	listFn      func(ctx context.Context) ([]domain.UserSummary, error)

	signUps  int
	signOuts int
}

func (s *stubSessions) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	s.signUps++
	return s.signUpFn(ctx, in)
}

func (s *stubSessions) SignIn(ctx context.Context, email, password string, remember bool) (*ports.AuthResult, error) {
	return s.signInFn(ctx, email, password, remember)
}

func (s *stubSessions) SignInWithFederatedProvider(ctx context.Context, a domain.FederatedAssertion) (*ports.AuthResult, error) {
	return s.federatedFn(ctx, a)
}

func (s *stubSessions) SignOut(context.Context) error {
	s.signOuts++
	s.current = nil
	return nil
}

func (s *stubSessions) ResetPassword(ctx context.Context, email string) (*ports.ResetAck, error) {
	return s.resetFn(ctx, email)
}

func (s *stubSessions) UpdateProfile(ctx context.Context, p ports.ProfilePatch) (*ports.AuthResult, error) {
	return s.updateFn(ctx, p)
}

func (s *stubSessions) CurrentSession() *domain.Session { return s.current }
func (s *stubSessions) IsAuthenticated() bool           { return s.current != nil }

func (s *stubSessions) RequireSession() (*domain.Session, bool) {
	return s.current, s.current != nil
}

func (s *stubSessions) CurrentUserData(context.Context) (*ports.UserData, error) {
	if s.current == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &ports.UserData{Session: s.current, Profile: &domain.ProfileDocument{UID: s.current.UserID, Grade: "12"}}, nil
}

func (s *stubSessions) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.listFn(ctx)
}

func (s *stubSessions) OnChange(func(*domain.Session)) func() { return func() {} }

func (s *stubSessions) Mode() domain.BackendMode {
	if s.mode == "" {
		return domain.BackendLocal
	}
	return s.mode
}

// newDeviceContext builds a context as the Device and Sessions middleware
// would leave it.
func newDeviceContext(method, target string, body io.Reader, sessions ports.SessionService) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := &service.FeedbackRecorder{}
	req = req.WithContext(service.WithFeedback(req.Context(), rec))

	w := httptest.NewRecorder()
	c := e.NewContext(req, w)
	c.Set(middleware.CtxDeviceID, "dev-1")
	c.Set(middleware.CtxFeedback, rec)
	if sessions != nil {
		c.Set(middleware.CtxSessions, sessions)
	}
	return c, w
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }
