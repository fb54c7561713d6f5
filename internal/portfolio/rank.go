// Package portfolio turns user profiles and their projects into ranked,
// filterable portfolio cards and detail views. Everything except Load is a
// pure function of its inputs.
package portfolio

import (
	"slices"
	"sort"
	"strings"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// Relevance scores.
const (
	ScoreUnfiltered = 0
	ScorePartial    = 1
	ScoreFull       = 2
)

// NotAvailable is shown in place of missing contact details.
const NotAvailable = "N/A"

// ScoredProfile is a ranked portfolio card. Profile is a deep copy of the
// input record, so callers may keep or mutate it freely.
type ScoredProfile struct {
	Profile      types.Profile `json:"profile"`
	Skills       []string      `json:"skills"`
	Score        int           `json:"score"`
	DisplayName  string        `json:"display_name"`
	DisplayEmail string        `json:"display_email"`
	DisplayPhone string        `json:"display_phone"`
	ImageURL     string        `json:"image_url"`
	ProjectCount int           `json:"project_count"`
}

// Rank scores every profile that owns at least one project against the
// selected skills and returns them sorted by score, highest first. Ties keep
// input order.
//
// With no selected skills every such profile scores 0. Otherwise a profile
// with none of the selected skills is dropped, one with all of them scores 2
// and one with some scores 1. Skill membership is exact-string.
func Rank(profiles []types.Profile, selected []string) []ScoredProfile {
	results := make([]ScoredProfile, 0, len(profiles))
	for _, profile := range profiles {
		if len(profile.Projects) == 0 {
			continue
		}

		aggregated := AggregateSkills(profile.Projects)
		relevance, ok := score(aggregated, selected)
		if !ok {
			continue
		}

		results = append(results, ScoredProfile{
			Profile:      cloneProfile(profile),
			Skills:       aggregated,
			Score:        relevance,
			DisplayName:  DisplayName(profile),
			DisplayEmail: firstProjectField(profile.Projects, func(p types.Project) string { return p.WorkEmail }, NotAvailable),
			DisplayPhone: firstProjectField(profile.Projects, func(p types.Project) string { return p.Phone }, NotAvailable),
			ImageURL:     TopImage(profile),
			ProjectCount: len(profile.Projects),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// score counts selected skills present in aggregated. The bool is false
// when a filter is active and nothing matches.
func score(aggregated, selected []string) (int, bool) {
	if len(selected) == 0 {
		return ScoreUnfiltered, true
	}

	matches := 0
	for _, skill := range selected {
		if slices.Contains(aggregated, skill) {
			matches++
		}
	}
	switch {
	case matches == 0:
		return 0, false
	case matches == len(selected):
		return ScoreFull, true
	default:
		return ScorePartial, true
	}
}

// AggregateSkills returns the union of the projects' skills, de-duplicated
// by exact string and ordered by first occurrence.
func AggregateSkills(projects []types.Project) []string {
	var all []string
	for _, project := range projects {
		all = append(all, skills.Normalize([]string(project.Skills))...)
	}
	return skills.DedupExact(all)
}

// FilterOptions returns every skill used by any project, sorted.
func FilterOptions(profiles []types.Profile) []string {
	var all []string
	for _, profile := range profiles {
		all = append(all, AggregateSkills(profile.Projects)...)
	}
	options := skills.DedupExact(all)
	sort.Strings(options)
	return options
}

// DisplayName is "First Last" when a first name is set, otherwise the
// email, otherwise N/A.
func DisplayName(profile types.Profile) string {
	if first := strings.TrimSpace(profile.FirstName); first != "" {
		return strings.TrimSpace(first + " " + strings.TrimSpace(profile.LastName))
	}
	if email := strings.TrimSpace(profile.Email); email != "" {
		return email
	}
	return NotAvailable
}

// TopImage is the profile photo, else the first project image, else "".
func TopImage(profile types.Profile) string {
	if photo := strings.TrimSpace(profile.ProfilePhotoURL); photo != "" {
		return photo
	}
	return firstProjectField(profile.Projects, func(p types.Project) string { return p.ImageURL }, "")
}

// firstProjectField returns the first non-blank value of field across
// projects in order, or fallback.
func firstProjectField(projects []types.Project, field func(types.Project) string, fallback string) string {
	for _, project := range projects {
		if v := strings.TrimSpace(field(project)); v != "" {
			return v
		}
	}
	return fallback
}

func cloneProfile(p types.Profile) types.Profile {
	clone := p
	clone.Projects = make([]types.Project, len(p.Projects))
	for i, project := range p.Projects {
		project.Skills = slices.Clone(project.Skills)
		project.ProjectTypes = slices.Clone(project.ProjectTypes)
		clone.Projects[i] = project
	}
	return clone
}
