//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
)

// Principal represents a persisted user or admin account.
// Email is unique per role: users and admins are separate namespaces.
type Principal struct {
	ID           string          `json:"id"         db:"id"`
	Email        string          `json:"email"      db:"email"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	FirstName    string          `json:"first_name" db:"first_name"`
	LastName     string          `json:"last_name"  db:"last_name"`
	Role         domainauth.Role `json:"role"       db:"role"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

const minPasswordLength = 6

// SignUpRequest represents a request to create a user or admin account.
// The role is taken from the route, not the body.
type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Normalize trims surrounding whitespace from the request fields.
// The password is left untouched.
func (r *SignUpRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// Validate validates the SignUpRequest fields.
func (r *SignUpRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email must be a valid email address")
	}
	if len(r.Password) < minPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	if r.FirstName == "" {
		return errors.New("first_name is required")
	}
	if r.LastName == "" {
		return errors.New("last_name is required")
	}
	return nil
}

// SignInRequest represents a credential check request.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from the email.
func (r *SignInRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Validate validates the SignInRequest fields.
func (r *SignInRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email must be a valid email address")
	}
	if len(r.Password) < minPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
