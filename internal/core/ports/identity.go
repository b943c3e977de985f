package ports

import (
	"context"

	"github.com/careerguide/portal/internal/core/domain"
)

// IdentityProvider is the remote identity service as seen by one device.
// Failures are reported as *domain.RemoteAuthError.
type IdentityProvider interface {
	SignInWithEmailAndPassword(ctx context.Context, email, password string) (*domain.RemoteUser, error)
	CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (*domain.RemoteUser, error)
	SignInWithPopup(ctx context.Context, assertion domain.FederatedAssertion) (*domain.RemoteUser, error)
	SignOut(ctx context.Context) error
	SendPasswordResetEmail(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, uid, displayName string) error
	// OnAuthStateChanged calls fn with the current user (nil when signed out)
	// and again after every change. The returned func stops notifications.
	OnAuthStateChanged(ctx context.Context, fn func(*domain.RemoteUser)) (func(), error)
}

// FederatedTokenVerifier checks a provider-signed ID token and returns the
// identity it vouches for. Failures are reported as *domain.RemoteAuthError.
type FederatedTokenVerifier interface {
	Verify(ctx context.Context, provider, idToken string) (*domain.FederatedAssertion, error)
}

// IdentityBackend hands out device-scoped identity providers.
type IdentityBackend interface {
	ForDevice(deviceID string) IdentityProvider
}

// ProfileStore persists per-user profile documents in the remote store.
type ProfileStore interface {
	Set(ctx context.Context, doc *domain.ProfileDocument) error
	Get(ctx context.Context, uid string) (*domain.ProfileDocument, error)
	// Update applies the non-empty fields of patch and stamps updatedAt.
	Update(ctx context.Context, uid string, patch ProfilePatch) error
	TouchLastLogin(ctx context.Context, uid string) error
}
