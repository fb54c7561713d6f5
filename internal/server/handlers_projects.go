package server

import (
	"net/http"
	"strings"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/tags"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	projects, err := s.store.ListProjectsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []types.Project{}
	}
	s.jsonResponse(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	in, ok := s.decodeProjectInput(w, r)
	if !ok {
		return
	}

	project, err := s.store.CreateProject(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	projectID, ok := s.pathID(w, r, "project")
	if !ok {
		return
	}
	in, ok := s.decodeProjectInput(w, r)
	if !ok {
		return
	}

	project, err := s.store.UpdateProject(r.Context(), userID, projectID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	if project == nil {
		writeError(w, &ErrProjectNotFound{ProjectID: projectID})
		return
	}
	s.jsonResponse(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	projectID, ok := s.pathID(w, r, "project")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteProject(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrProjectNotFound{ProjectID: projectID})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// decodeProjectInput reads, normalizes and validates a project payload.
func (s *Server) decodeProjectInput(w http.ResponseWriter, r *http.Request) (*types.ProjectInput, bool) {
	var in types.ProjectInput
	if !decodeJSON(w, r, &in) {
		return nil, false
	}
	s.normalizeProjectInput(&in)
	if err := in.Validate(); err != nil {
		writeError(w, validationError(err))
		return nil, false
	}
	return &in, true
}

// normalizeProjectInput trims text fields and runs the skills through a
// tag input so stored lists carry no blanks or case-insensitive repeats.
func (s *Server) normalizeProjectInput(in *types.ProjectInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Phone = strings.TrimSpace(in.Phone)
	in.WorkEmail = strings.TrimSpace(in.WorkEmail)
	in.Technologies = strings.TrimSpace(in.Technologies)
	in.CompletionDate = strings.TrimSpace(in.CompletionDate)
	in.Link = strings.TrimSpace(in.Link)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Achievements = strings.TrimSpace(in.Achievements)
	in.ProjectTypes = skills.Clean(in.ProjectTypes)

	input := tags.New(s.vocab)
	input.Load([]string(in.Skills))
	in.Skills = types.SkillList(input.Tags())
}
