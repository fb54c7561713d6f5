package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/Lj07-coder/SkillDeck/internal/db"
	"github.com/Lj07-coder/SkillDeck/internal/portfolio"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// UserStore is the account persistence used by UserService.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u db.NewUser) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Store is everything the handlers need from the database. *db.DB
// satisfies it.
type Store interface {
	UserStore
	portfolio.Source

	UpdateAchievements(ctx context.Context, id uuid.UUID, achievements string) error
	UpdateProfilePhoto(ctx context.Context, id uuid.UUID, url string) error
	UpdateResume(ctx context.Context, id uuid.UUID, url string) error

	CreateProject(ctx context.Context, userID uuid.UUID, in *types.ProjectInput) (*types.Project, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, in *types.ProjectInput) (*types.Project, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)

	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)
