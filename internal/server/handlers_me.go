package server

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Lj07-coder/SkillDeck/internal/media"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// uploadField is the multipart form field carrying the file.
const uploadField = "file"

// Accepted upload types by kind. An empty list accepts anything.
var (
	imageTypes  = []string{"image/"}
	resumeTypes = []string{"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
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
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.AchievementsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, validationError(err))
		return
	}

	achievements := strings.TrimSpace(req.Achievements)
	if err := s.store.UpdateAchievements(r.Context(), userID, achievements); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.AchievementsRequest{Achievements: achievements})
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	url, ok := s.receiveUpload(w, r, imageTypes)
	if !ok {
		return
	}
	if err := s.store.UpdateProfilePhoto(r.Context(), userID, url); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.UploadResponse{URL: url})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	url, ok := s.receiveUpload(w, r, resumeTypes)
	if !ok {
		return
	}
	if err := s.store.UpdateResume(r.Context(), userID, url); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.UploadResponse{URL: url})
}

// handleUpload stores a project image and returns its URL without touching
// any record; the client sends it back as a project's image_url.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	url, ok := s.receiveUpload(w, r, imageTypes)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.UploadResponse{URL: url})
}

// receiveUpload reads the "file" form field, checks its declared type and
// forwards it to the uploader.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request, accepted []string) (string, bool) {
	if s.uploader == nil {
		writeError(w, &ErrUnavailable{Feature: "uploads"})
		return "", false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return "", false
		}
		writeError(w, &ErrValidation{Field: uploadField, Message: "required"})
		return "", false
	}
	defer func() { _ = file.Close() }()

	if !acceptedType(header, accepted) {
		writeError(w, &ErrValidation{Field: uploadField, Message: "unsupported file type"})
		return "", false
	}

	url, err := s.uploader.Upload(r.Context(), filepath.Base(header.Filename), file)
	if err != nil {
		var uploadErr *media.Error
		if errors.As(err, &uploadErr) {
			log.Printf("[upload] %v", err)
			s.errorResponse(w, http.StatusBadGateway, "Upload failed")
			return "", false
		}
		writeError(w, err)
		return "", false
	}
	return url, true
}

func acceptedType(header *multipart.FileHeader, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	for _, prefix := range accepted {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
