package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
)

// SkillList is a project's skills. It decodes from either a JSON array or a
// single comma-delimited string; malformed values decode as an empty list.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = skills.Normalize(raw)
	return nil
}

// MarshalJSON always emits an array, never null.
func (s SkillList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Project is one portfolio entry owned by a user. Contact details live on
// the project rather than the profile.
type Project struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Phone          string    `json:"phone"`
	WorkEmail      string    `json:"work_email"`
	Technologies   string    `json:"technologies"`
	Skills         SkillList `json:"skills"`
	CompletionDate string    `json:"completion_date"`
	ProjectTypes   []string  `json:"project_types"`
	Link           string    `json:"link"`
	ImageURL       string    `json:"image_url"`
	Achievements   string    `json:"achievements"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile is a user together with the projects they own.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	ProfilePhotoURL string    `json:"profile_photo_url"`
	ResumeURL       string    `json:"resume_url"`
	Achievements    string    `json:"achievements"`
	Projects        []Project `json:"projects"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Catalog is the import/export document: a list of profiles with their
// projects inline.
type Catalog struct {
	Profiles []Profile `json:"profiles"`
}

// ProjectInput is the create/update payload for a project. Skills accept
// the same array-or-string forms as SkillList.
type ProjectInput struct {
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description" validate:"max=5000"`
	Phone          string    `json:"phone" validate:"max=40"`
	WorkEmail      string    `json:"work_email" validate:"omitempty,email"`
	Technologies   string    `json:"technologies"`
	Skills         SkillList `json:"skills"`
	CompletionDate string    `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	ProjectTypes   []string  `json:"project_types" validate:"dive,required"`
	Link           string    `json:"link" validate:"omitempty,url"`
	ImageURL       string    `json:"image_url" validate:"omitempty,url"`
	Achievements   string    `json:"achievements"`
}

// Validate checks the struct tags.
func (p *ProjectInput) Validate() error {
	return validate.Struct(p)
}

// AchievementsRequest replaces the caller's achievements text.
type AchievementsRequest struct {
	Achievements string `json:"achievements" validate:"max=10000"`
}

// Validate checks the struct tags.
func (r *AchievementsRequest) Validate() error {
	return validate.Struct(r)
}

// UploadResponse carries the URL of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}

// ExtractSkillsRequest asks for skills matching a project description.
type ExtractSkillsRequest struct {
	Description string `json:"description" validate:"required,max=5000"`
}

// Validate checks the struct tags.
func (r *ExtractSkillsRequest) Validate() error {
	return validate.Struct(r)
}
