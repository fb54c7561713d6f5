package server

import (
	"net/http"
	"strings"

	"github.com/Lj07-coder/SkillDeck/internal/portfolio"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
)

// PortfolioList is the response of GET /portfolios.
type PortfolioList struct {
	Skills  []string                  `json:"skills"`
	Count   int                       `json:"count"`
	Results []portfolio.ScoredProfile `json:"results"`
}

// selectedSkills reads ?skills=a,b (also repeated ?skills=a&skills=b).
// Duplicates are dropped here; Rank itself would count them twice.
func selectedSkills(r *http.Request) []string {
	values := r.URL.Query()["skills"]
	return skills.DedupExact(skills.Normalize(strings.Join(values, skills.Delimiter)))
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	selected := selectedSkills(r)

	profiles, err := portfolio.Load(r.Context(), s.store, s.loadConcurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	results := portfolio.Rank(profiles, selected)
	s.jsonResponse(w, http.StatusOK, PortfolioList{
		Skills:  selected,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "portfolio")
	if !ok {
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		writeError(w, &ErrUserNotFound{UserID: userID})
		return
	}
	s.jsonResponse(w, http.StatusOK, portfolio.Expand(*profile))
}
