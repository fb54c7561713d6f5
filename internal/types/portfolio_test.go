package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillList_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want SkillList
	}{
		{"array", `["Go", " Rust ", ""]`, SkillList{"Go", "Rust"}},
		{"delimited string", `"Go, Rust,,SQL"`, SkillList{"Go", "Rust", "SQL"}},
		{"null", `null`, SkillList{}},
		{"number", `42`, SkillList{}},
		{"mixed array", `["Go", 1, {"a": "b"}]`, SkillList{"Go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillList_UnmarshalInvalidJSON(t *testing.T) {
	var got SkillList
	assert.Error(t, json.Unmarshal([]byte(`[unclosed`), &got))
}

func TestSkillList_MarshalNil(t *testing.T) {
	data, err := json.Marshal(Project{Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":[]`)
}

func TestProject_DecodeEitherSkillsForm(t *testing.T) {
	var catalog Catalog
	doc := `{"profiles": [{"email": "a@example.com", "projects": [
		{"title": "One", "skills": ["Go", "SQL"]},
		{"title": "Two", "skills": "React, Node.js"}
	]}]}`
	require.NoError(t, json.Unmarshal([]byte(doc), &catalog))

	require.Len(t, catalog.Profiles, 1)
	projects := catalog.Profiles[0].Projects
	require.Len(t, projects, 2)
	assert.Equal(t, SkillList{"Go", "SQL"}, projects[0].Skills)
	assert.Equal(t, SkillList{"React", "Node.js"}, projects[1].Skills)
}

func TestProjectInput_Validate(t *testing.T) {
	valid := ProjectInput{
		Title:          "Portfolio site",
		WorkEmail:      "me@example.com",
		CompletionDate: "2024-05-01",
		Link:           "https://example.com",
		ProjectTypes:   []string{"Web"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *ProjectInput)
	}{
		{"missing title", func(p *ProjectInput) { p.Title = "" }},
		{"bad email", func(p *ProjectInput) { p.WorkEmail = "nope" }},
		{"bad date", func(p *ProjectInput) { p.CompletionDate = "05/01/2024" }},
		{"bad link", func(p *ProjectInput) { p.Link = "not a url" }},
		{"empty project type", func(p *ProjectInput) { p.ProjectTypes = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestProjectInput_OptionalFieldsMayBeEmpty(t *testing.T) {
	assert.NoError(t, (&ProjectInput{Title: "Minimal"}).Validate())
}
