package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateAccount     = errors.New("account already exists")
	ErrNotFound             = errors.New("account not found")
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrUnsupportedOperation = errors.New("operation not supported in fallback mode")
	ErrRemoteUnavailable    = errors.New("remote identity service unavailable")
	ErrAuthInProgress       = errors.New("authentication already in progress")
	ErrDuplicateSubmission  = errors.New("duplicate submission")
	ErrCollegeNotFound      = errors.New("college not found")
)

// RemoteAuthReason is the portable form of a backend-specific failure code.
type RemoteAuthReason string

const (
	ReasonAccountExists  RemoteAuthReason = "account-exists"
	ReasonWeakSecret     RemoteAuthReason = "weak-secret"
	ReasonMalformedEmail RemoteAuthReason = "malformed-email"
	ReasonNotFound       RemoteAuthReason = "not-found"
	ReasonWrongSecret    RemoteAuthReason = "wrong-secret"
	ReasonRateLimited    RemoteAuthReason = "rate-limited"
	ReasonNetworkFailure RemoteAuthReason = "network-failure"
	ReasonPopupDismissed RemoteAuthReason = "popup-dismissed"
	ReasonInvalidToken   RemoteAuthReason = "invalid-token"
	ReasonUnknown        RemoteAuthReason = "unknown"
)

// RemoteAuthError is returned by the remote identity service.
type RemoteAuthError struct {
	Reason RemoteAuthReason
	Err    error
}

// NewRemoteAuthError wraps cause (which may be nil) under reason.
func NewRemoteAuthError(reason RemoteAuthReason, cause error) *RemoteAuthError {
	return &RemoteAuthError{Reason: reason, Err: cause}
}

func (e *RemoteAuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("remote auth: %s", e.Reason)
}

func (e *RemoteAuthError) Unwrap() error { return e.Err }

var remoteMessages = map[RemoteAuthReason]string{
	ReasonAccountExists:  "An account with this email already exists.",
	ReasonWeakSecret:     "Password should be at least 6 characters.",
	ReasonMalformedEmail: "Please enter a valid email address.",
	ReasonNotFound:       "No account found with this email.",
	ReasonWrongSecret:    "Incorrect password.",
	ReasonRateLimited:    "Too many failed attempts. Please try again later.",
	ReasonNetworkFailure: "Network error. Please check your connection.",
	ReasonPopupDismissed: "Sign-in popup was closed. Please try again.",
	ReasonInvalidToken:   "Sign-in could not be verified. Please try again.",
}

// UserMessage maps err to the text shown to the user.
func UserMessage(err error) string {
	var rae *RemoteAuthError
	if errors.As(err, &rae) {
		if msg, ok := remoteMessages[rae.Reason]; ok {
			return msg
		}
		return "An error occurred. Please try again."
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Email, password, and name are required."
	case errors.Is(err, ErrDuplicateAccount):
		return "An account with this email already exists. Please sign in instead."
	case errors.Is(err, ErrNotFound):
		return "User not found. Please check your email or sign up."
	case errors.Is(err, ErrInvalidCredential):
		return "Incorrect password. Please try again."
	case errors.Is(err, ErrUnauthenticated):
		return "Please sign in to continue."
	case errors.Is(err, ErrUnsupportedOperation):
		return "This sign-in method is not available right now."
	case errors.Is(err, ErrRemoteUnavailable):
		return "The sign-in service is unavailable. Please try again later."
	case errors.Is(err, ErrAuthInProgress), errors.Is(err, ErrDuplicateSubmission):
		return "Your request is already being processed."
	case errors.Is(err, ErrCollegeNotFound):
		return "College not found."
	}
	return "An error occurred. Please try again."
}
