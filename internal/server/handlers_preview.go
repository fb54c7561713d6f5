package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lj07-coder/SkillDeck/internal/fetch"
)

// handleLinkPreview returns the preview card of ?url.
func (s *Server) handleLinkPreview(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	if s.previewer == nil {
		writeError(w, &ErrUnavailable{Feature: "link previews"})
		return
	}

	target := r.URL.Query().Get("url")
	if _, err := fetch.ValidateURL(target); err != nil {
		writeError(w, &ErrValidation{Field: "url", Message: "must be an absolute http or https URL"})
		return
	}

	preview, err := s.previewer.Preview(r.Context(), target)
	if errors.Is(err, fetch.ErrPrivateAddress) {
		writeError(w, &ErrValidation{Field: "url", Message: "must point to a public host"})
		return
	}
	if err != nil {
		log.Printf("[preview] %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Could not fetch link")
		return
	}
	s.jsonResponse(w, http.StatusOK, preview)
}
