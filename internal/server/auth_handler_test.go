package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lj07-coder/SkillDeck/internal/types"
)

func register(t *testing.T, s *Server, email, password string) types.LoginResponse {
	t.Helper()
	w := serve(t, s, http.MethodPost, "/auth/register", types.CreateUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, statusOf(w))
	return decodeBody[types.LoginResponse](t, w)
}

func TestRegister_Success(t *testing.T) {
	s, store := newTestServer(t)

	resp := register(t, s, "Ada@Example.com", "correct-horse")

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, "Ada", resp.User.FirstName)
	assert.True(t, resp.User.PasswordSet)

	stored, _ := store.GetUser(t.Context(), resp.User.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newTestServer(t)
	register(t, s, "ada@example.com", "correct-horse")

	w := serve(t, s, http.MethodPost, "/auth/register", types.CreateUserRequest{
		FirstName: "Ada", LastName: "L", Email: "ADA@example.com", Password: "another-pass",
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestRegister_Invalid(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"malformed json", "{not json", "Invalid request body"},
		{"missing last name", types.CreateUserRequest{FirstName: "A", Email: "a@example.com", Password: "longenough"}, "LastName"},
		{"bad email", types.CreateUserRequest{FirstName: "A", LastName: "B", Email: "nope", Password: "longenough"}, "Email"},
		{"short password", types.CreateUserRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "short"}, "Password"},
		{"password too long", types.CreateUserRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: strings.Repeat("x", 80)}, "too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, s, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, statusOf(w))
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)
	registered := register(t, s, "ada@example.com", "correct-horse")

	w := serve(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ADA@example.com", Password: "correct-horse"}, "")
	require.Equal(t, http.StatusOK, w.Code, statusOf(w))
	resp := decodeBody[types.LoginResponse](t, w)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_Rejects(t *testing.T) {
	s, store := newTestServer(t)
	register(t, s, "ada@example.com", "correct-horse")
	store.addUser(t, "Imported", "User", "imported@example.com")

	for _, req := range []types.LoginRequest{
		{Email: "ada@example.com", Password: "wrong-horse"},
		{Email: "nobody@example.com", Password: "correct-horse"},
		{Email: "imported@example.com", Password: ""},
		{Email: "imported@example.com", Password: "anything"},
	} {
		w := serve(t, s, http.MethodPost, "/auth/login", req, "")
		if req.Password == "" {
			assert.Equal(t, http.StatusBadRequest, w.Code)
			continue
		}
		assert.Equal(t, http.StatusUnauthorized, w.Code, req.Email)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	}
}

func TestUpdatePassword(t *testing.T) {
	s, _ := newTestServer(t)
	resp := register(t, s, "ada@example.com", "correct-horse")

	w := serve(t, s, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "wrong-horse", NewPassword: "battery-staple",
	}, resp.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, s, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "correct-horse", NewPassword: "battery-staple",
	}, resp.Token)
	require.Equal(t, http.StatusOK, w.Code, statusOf(w))

	w = serve(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "battery-staple"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(t, s, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "correct-horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword_RequiresToken(t *testing.T) {
	s, _ := newTestServer(t)

	w := serve(t, s, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "a", NewPassword: "longenough",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	s, _ := newTestServer(t)
	svc := s.authHandler.userService

	err := svc.UpdatePassword(t.Context(), uuid.New(), "a", "longenough")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_ImportedAccountCannotChangePassword(t *testing.T) {
	s, store := newTestServer(t)
	id := store.addUser(t, "Imported", "User", "imported@example.com")

	err := s.authHandler.userService.UpdatePassword(t.Context(), id, "", "longenough")
	assert.IsType(t, &ErrPasswordMismatch{}, err)

	u, _ := store.GetUser(t.Context(), id)
	assert.Empty(t, u.PasswordHash)
	assert.False(t, u.PasswordSet)
}
