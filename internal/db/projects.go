package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

const projectColumns = `id, user_id, title, description, phone, work_email, technologies, skills,
	completion_date, project_types, link, image_url, achievements, created_at, updated_at`

func scanProject(row pgx.Row) (*types.Project, error) {
	var (
		p            types.Project
		skillsRaw    []byte
		projectTypes []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Phone, &p.WorkEmail, &p.Technologies,
		&skillsRaw, &p.CompletionDate, &projectTypes, &p.Link, &p.ImageURL, &p.Achievements,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Skills = decodeList(skillsRaw)
	p.ProjectTypes = decodeList(projectTypes)
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]types.Project, error) {
	defer rows.Close()
	projects := []types.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// projectArgs returns the column values of in, in the order used by the
// insert and update statements ($n offset by the caller).
func projectArgs(in *types.ProjectInput) []any {
	return []any{
		strings.TrimSpace(in.Title),
		in.Description,
		strings.TrimSpace(in.Phone),
		strings.TrimSpace(in.WorkEmail),
		in.Technologies,
		encodeList(skills.Clean(in.Skills)),
		strings.TrimSpace(in.CompletionDate),
		encodeList(skills.Clean(in.ProjectTypes)),
		strings.TrimSpace(in.Link),
		strings.TrimSpace(in.ImageURL),
		in.Achievements,
	}
}

// CreateProject inserts a project owned by userID.
func (db *DB) CreateProject(ctx context.Context, userID uuid.UUID, in *types.ProjectInput) (*types.Project, error) {
	args := append([]any{userID}, projectArgs(in)...)
	p, err := scanProject(db.pool.QueryRow(ctx,
		`INSERT INTO projects (user_id, title, description, phone, work_email, technologies, skills,
			completion_date, project_types, link, image_url, achievements)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+projectColumns, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// GetProject retrieves a project owned by userID. Returns nil, nil when it
// does not exist or belongs to someone else.
func (db *DB) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error) {
	p, err := scanProject(db.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// UpdateProject overwrites a project owned by userID. An empty image URL
// keeps the stored image. Returns nil, nil when the project is not found.
func (db *DB) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, in *types.ProjectInput) (*types.Project, error) {
	args := append([]any{projectID, userID}, projectArgs(in)...)
	p, err := scanProject(db.pool.QueryRow(ctx,
		`UPDATE projects SET
			title = $3, description = $4, phone = $5, work_email = $6, technologies = $7,
			skills = $8, completion_date = $9, project_types = $10, link = $11,
			image_url = COALESCE(NULLIF($12, ''), image_url),
			achievements = $13, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+projectColumns, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project owned by userID and reports whether it existed.
func (db *DB) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListProjectsByUser returns a user's projects, oldest first.
func (db *DB) ListProjectsByUser(ctx context.Context, userID uuid.UUID) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects, err := collectProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProfiles returns every user as a profile without projects, oldest
// first. Use portfolio.Load to attach projects.
func (db *DB) ListProfiles(ctx context.Context) ([]types.Profile, error) {
	users, err := db.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]types.Profile, len(users))
	for i := range users {
		profiles[i] = users[i].ToProfile()
	}
	return profiles, nil
}

// GetProfile returns one user with their projects. Returns nil, nil when
// the user does not exist.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	u, err := db.GetUser(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	projects, err := db.ListProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := u.ToProfile()
	profile.Projects = projects
	return &profile, nil
}

// ImportResult counts what ImportCatalog wrote.
type ImportResult struct {
	Users    int `json:"users"`
	Projects int `json:"projects"`
}

// ImportCatalog upserts every profile by email and replaces its projects
// with the catalog's, all in one transaction. Imported users without an
// existing password cannot log in until one is set.
func (db *DB) ImportCatalog(ctx context.Context, catalog *types.Catalog) (ImportResult, error) {
	var result ImportResult
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		for _, profile := range catalog.Profiles {
			email := NormalizeEmail(profile.Email)
			if email == "" {
				return fmt.Errorf("profile %q has no email", profile.FirstName+" "+profile.LastName)
			}

			var userID uuid.UUID
			err := tx.QueryRow(ctx,
				`INSERT INTO users (first_name, last_name, email, profile_photo_url, resume_url, achievements)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (email) DO UPDATE SET
					first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
					profile_photo_url = EXCLUDED.profile_photo_url, resume_url = EXCLUDED.resume_url,
					achievements = EXCLUDED.achievements, updated_at = NOW()
				 RETURNING id`,
				strings.TrimSpace(profile.FirstName), strings.TrimSpace(profile.LastName), email,
				profile.ProfilePhotoURL, profile.ResumeURL, profile.Achievements,
			).Scan(&userID)
			if err != nil {
				return fmt.Errorf("failed to upsert user %s: %w", email, err)
			}
			result.Users++

			if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE user_id = $1`, userID); err != nil {
				return fmt.Errorf("failed to clear projects for %s: %w", email, err)
			}
			for _, project := range profile.Projects {
				in := ProjectInputFrom(project)
				args := append([]any{userID}, projectArgs(&in)...)
				if _, err := tx.Exec(ctx,
					`INSERT INTO projects (user_id, title, description, phone, work_email, technologies, skills,
						completion_date, project_types, link, image_url, achievements)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, args...); err != nil {
					return fmt.Errorf("failed to insert project %q for %s: %w", project.Title, email, err)
				}
				result.Projects++
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// ProjectInputFrom copies the editable fields of p.
func ProjectInputFrom(p types.Project) types.ProjectInput {
	return types.ProjectInput{
		Title:          p.Title,
		Description:    p.Description,
		Phone:          p.Phone,
		WorkEmail:      p.WorkEmail,
		Technologies:   p.Technologies,
		Skills:         p.Skills,
		CompletionDate: p.CompletionDate,
		ProjectTypes:   p.ProjectTypes,
		Link:           p.Link,
		ImageURL:       p.ImageURL,
		Achievements:   p.Achievements,
	}
}
