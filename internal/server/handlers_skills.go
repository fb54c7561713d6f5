package server

import (
	"net/http"
	"strconv"

	"github.com/Lj07-coder/SkillDeck/internal/portfolio"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/tags"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// Suggestion limits for GET /skills/suggest.
const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

// SuggestResponse is the response of GET /skills/suggest.
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// handleSkillFilters lists every skill used by a listed portfolio.
func (s *Server) handleSkillFilters(w http.ResponseWriter, r *http.Request) {
	profiles, err := portfolio.Load(r.Context(), s.store, s.loadConcurrency)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"skills": portfolio.FilterOptions(profiles)})
}

// handleSuggestSkills autocompletes q against the vocabulary, leaving out
// skills already in ?selected.
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxSuggestLimit)
	}

	input := tags.New(s.vocab)
	input.Load(r.URL.Query().Get("selected"))

	suggestions := []string{}
	for label := range input.Suggest(query) {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, label)
	}
	s.jsonResponse(w, http.StatusOK, SuggestResponse{Query: query, Suggestions: suggestions})
}

// handleExtractSkills proposes vocabulary skills for a project description.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	var req types.ExtractSkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, validationError(err))
		return
	}

	extracted := skills.Extract(r.Context(), req.Description, s.vocab, s.llm)
	s.jsonResponse(w, http.StatusOK, map[string][]string{"skills": extracted})
}
