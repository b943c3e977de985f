package domain

import (
	"strings"
	"time"
)

const (
	UserTypeStudent = "student"
	UserTypeParent  = "parent"
)

// Profile holds the free-form student details collected at sign-up.
type Profile struct {
	Phone     string   `json:"phone"`
	Grade     string   `json:"grade"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
}

// User is an account record owned by exactly one store (local or remote).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	UserType     string    `json:"user_type"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the sanitized view of a User. It never carries the secret.
type UserSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary strips the credential from u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
}

// SameEmail compares two addresses the way account lookup does.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizeEmail returns the lookup key for an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
