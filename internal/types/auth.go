// Package types defines the records and API payloads shared by the store,
// the portfolio logic and the HTTP server.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// CreateUserRequest is the sign-up payload.
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the caller's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User is the public view of an account (no password material).
type User struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty"`
	ResumeURL       string    `json:"resume_url,omitempty"`
	Achievements    string    `json:"achievements,omitempty"`
	PasswordSet     bool      `json:"password_set"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoginResponse is returned by register and login.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate checks the struct tags.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the struct tags.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the struct tags.
func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}
