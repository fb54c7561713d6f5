package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// DefaultLoadConcurrency bounds project fetches when Load is given zero.
const DefaultLoadConcurrency = 8

// Source fetches profiles and their projects.
type Source interface {
	ListProfiles(ctx context.Context) ([]types.Profile, error)
	ListProjectsByUser(ctx context.Context, userID uuid.UUID) ([]types.Project, error)
}

// Load fetches every profile and attaches its projects, fetching up to
// concurrency users at a time. Profile order follows the source. The first
// error cancels the remaining fetches.
func Load(ctx context.Context, src Source, concurrency int) ([]types.Profile, error) {
	if concurrency <= 0 {
		concurrency = DefaultLoadConcurrency
	}

	profiles, err := src.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range profiles {
		g.Go(func() error {
			projects, err := src.ListProjectsByUser(gctx, profiles[i].ID)
			if err != nil {
				return fmt.Errorf("failed to list projects for user %s: %w", profiles[i].ID, err)
			}
			profiles[i].Projects = projects
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}
