package portfolio

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// UntitledProject names projects saved without a title.
const UntitledProject = "Untitled Project"

// Detail is the expanded view of one portfolio.
type Detail struct {
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	ImageURL     string          `json:"image_url"`
	ResumeURL    string          `json:"resume_url,omitempty"`
	Skills       []string        `json:"skills"`
	SkillsText   string          `json:"skills_text"`
	Achievements []string        `json:"achievements"`
	Projects     []ProjectDetail `json:"projects"`
}

// ProjectDetail is one project inside a Detail with display fallbacks applied.
type ProjectDetail struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Technologies   string    `json:"technologies"`
	Types          string    `json:"types"`
	CompletionDate string    `json:"completion_date"`
	Link           string    `json:"link"`
}

// Expand builds the detail view for profile. Unlike Rank it accepts
// profiles without projects.
func Expand(profile types.Profile) Detail {
	aggregated := AggregateSkills(profile.Projects)
	skillsText := NotAvailable
	if len(aggregated) > 0 {
		skillsText = strings.Join(aggregated, ", ")
	}

	detail := Detail{
		UserID:       profile.ID,
		Name:         DisplayName(profile),
		Phone:        firstProjectField(profile.Projects, func(p types.Project) string { return p.Phone }, NotAvailable),
		Email:        firstProjectField(profile.Projects, func(p types.Project) string { return p.WorkEmail }, NotAvailable),
		ImageURL:     TopImage(profile),
		ResumeURL:    strings.TrimSpace(profile.ResumeURL),
		Skills:       aggregated,
		SkillsText:   skillsText,
		Achievements: []string{},
		Projects:     make([]ProjectDetail, 0, len(profile.Projects)),
	}

	if a := strings.TrimSpace(profile.Achievements); a != "" {
		detail.Achievements = append(detail.Achievements, a)
	}
	for _, project := range profile.Projects {
		if a := strings.TrimSpace(project.Achievements); a != "" {
			detail.Achievements = append(detail.Achievements, a)
		}
		detail.Projects = append(detail.Projects, expandProject(project))
	}
	return detail
}

func expandProject(p types.Project) ProjectDetail {
	kinds := strings.Join(p.ProjectTypes, ", ")
	return ProjectDetail{
		ID:             p.ID,
		Title:          orDefault(p.Title, UntitledProject),
		Description:    strings.TrimSpace(p.Description),
		ImageURL:       strings.TrimSpace(p.ImageURL),
		Technologies:   orDefault(p.Technologies, NotAvailable),
		Types:          orDefault(kinds, NotAvailable),
		CompletionDate: orDefault(p.CompletionDate, NotAvailable),
		Link:           orDefault(p.Link, NotAvailable),
	}
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
