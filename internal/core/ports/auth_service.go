package ports

import (
	"context"

	"github.com/careerguide/portal/internal/core/domain"
)

// SignUpInput carries the fields collected by the sign-up form.
type SignUpInput struct {
	Email     string
	Password  string
	Name      string
	UserType  string
	Phone     string
	Grade     string
	Interests []string
	Location  string
}

// ProfilePatch holds optional profile changes. Nil fields are left untouched.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	Grade     *string
	Interests []string
	Location  *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Grade == nil && p.Interests == nil && p.Location == nil
}

// AuthResult is returned by every successful session-changing operation.
type AuthResult struct {
	Session  *domain.Session
	Message  string
	Warnings []domain.NonCriticalWriteFailure
}

// ResetAck acknowledges a password reset request.
type ResetAck struct {
	Message string
	// Diagnostic is only set outside production.
	Diagnostic string
}

// UserData is the session merged with the stored profile document.
type UserData struct {
	Session *domain.Session
	Profile *domain.ProfileDocument
}

// SessionService is the per-device session manager.
type SessionService interface {
	SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string, remember bool) (*AuthResult, error)
	SignInWithFederatedProvider(ctx context.Context, assertion domain.FederatedAssertion) (*AuthResult, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) (*ResetAck, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*AuthResult, error)
	CurrentSession() *domain.Session
	IsAuthenticated() bool
	RequireSession() (*domain.Session, bool)
	CurrentUserData(ctx context.Context) (*UserData, error)
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	OnChange(fn func(*domain.Session)) (cancel func())
	Mode() domain.BackendMode
}

// SessionOpener resolves the session manager for a device.
type SessionOpener interface {
	Open(ctx context.Context, deviceID string) (SessionService, error)
}

// DeviceTokenIssuer signs device tokens for new runtime instances.
type DeviceTokenIssuer interface {
	Issue() (token, deviceID string, err error)
}
