package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// User is a users row.
type User struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string `json:"-"`
	PasswordSet     bool
	ProfilePhotoURL string
	ResumeURL       string
	Achievements    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser holds the columns set when a user is created. An empty
// PasswordHash creates an account that cannot log in (used by imports).
type NewUser struct {
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	ProfilePhotoURL string
	ResumeURL       string
	Achievements    string
}

// ToAPI converts the row to its public form, dropping password material.
func (u *User) ToAPI() *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		ProfilePhotoURL: u.ProfilePhotoURL,
		ResumeURL:       u.ResumeURL,
		Achievements:    u.Achievements,
		PasswordSet:     u.PasswordSet,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ToProfile converts the row to a profile without projects.
func (u *User) ToProfile() types.Profile {
	return types.Profile{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		ProfilePhotoURL: u.ProfilePhotoURL,
		ResumeURL:       u.ResumeURL,
		Achievements:    u.Achievements,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
