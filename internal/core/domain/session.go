package domain

import (
	"fmt"
	"strings"
	"time"
)

// BackendMode selects which identity backend a SessionManager talks to.
// It is chosen once at startup.
type BackendMode string

const (
	BackendRemote BackendMode = "remote"
	BackendLocal  BackendMode = "local"
)

// ParseBackendMode accepts "remote" or "local" (case-insensitive).
func ParseBackendMode(s string) (BackendMode, error) {
	switch BackendMode(strings.ToLower(strings.TrimSpace(s))) {
	case BackendRemote:
		return BackendRemote, nil
	case BackendLocal, "":
		return BackendLocal, nil
	default:
		return "", fmt.Errorf("%w: unknown backend mode %q", ErrInvalidInput, s)
	}
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderLocal    = "local"
)

// Session is the currently authenticated user of one runtime instance.
type Session struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	UserType   string    `json:"user_type,omitempty"`
	Profile    *Profile  `json:"profile,omitempty"`
	Provider   string    `json:"provider"`
	IssuedAt   time.Time `json:"issued_at"`
	RememberMe bool      `json:"remember_me"`
}

// RemoteUser is what the remote identity service returns for an account.
type RemoteUser struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Provider    string
}

// FederatedAssertion carries the identity vouched for by an external
// provider after the client completed its popup/redirect flow. Clients send
// only Provider and IDToken; the remaining fields are filled from the
// verified token claims.
type FederatedAssertion struct {
	Provider    string
	IDToken     string
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ProfileDocument is the per-user document kept in the remote document store.
type ProfileDocument struct {
	UID         string     `json:"uid" bson:"_id"`
	Email       string     `json:"email" bson:"email"`
	Name        string     `json:"name" bson:"name"`
	UserType    string     `json:"user_type,omitempty" bson:"user_type,omitempty"`
	Phone       string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Grade       string     `json:"grade,omitempty" bson:"grade,omitempty"`
	Interests   []string   `json:"interests,omitempty" bson:"interests,omitempty"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Provider    string     `json:"provider,omitempty" bson:"provider,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	LastLoginAt time.Time  `json:"last_login_at" bson:"last_login_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// NonCriticalWriteFailure records a best-effort side write that failed after
// the primary operation already succeeded.
type NonCriticalWriteFailure struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (w NonCriticalWriteFailure) Error() string {
	return fmt.Sprintf("non-critical write %s failed: %v", w.Op, w.Err)
}

func (w NonCriticalWriteFailure) Unwrap() error { return w.Err }
