package ports

import (
	"context"
	"time"
)

// AttemptLimiter counts failed sign-in attempts per key inside a window.
type AttemptLimiter interface {
	// Blocked reports whether key has reached the attempt limit.
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// IdempotencyGuard claims a submission key for ttl.
type IdempotencyGuard interface {
	// Claim returns false when the key was already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops a claim so a failed submission can be retried.
	Release(ctx context.Context, key string) error
}

// PasswordHasher hashes and verifies locally stored secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Severity of a user notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Feedback surfaces progress and notifications to the user.
type Feedback interface {
	ShowLoading(on bool)
	ShowNotification(message string, severity Severity)
}
