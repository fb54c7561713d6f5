//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := CreateUserRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "password123"}

	tests := []struct {
		name    string
		mutate  func(r *CreateUserRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*CreateUserRequest) {}},
		{name: "missing first name", mutate: func(r *CreateUserRequest) { r.FirstName = "" }, wantErr: "FirstName"},
		{name: "missing last name", mutate: func(r *CreateUserRequest) { r.LastName = "" }, wantErr: "LastName"},
		{name: "bad email", mutate: func(r *CreateUserRequest) { r.Email = "not-an-email" }, wantErr: "email"},
		{name: "short password", mutate: func(r *CreateUserRequest) { r.Password = "short" }, wantErr: "min"},
		{name: "password exactly 8", mutate: func(r *CreateUserRequest) { r.Password = "12345678" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@b.co", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.co"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "nope", Password: "x"}).Validate())
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "newpassword"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{NewPassword: "newpassword"}).Validate())

	err := (&UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "short"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min")
}

func TestLoginResponse_JSON(t *testing.T) {
	id := uuid.New()
	resp := LoginResponse{
		User: &User{
			ID: id, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			PasswordSet: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		},
		Token: "jwt-token",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), id.String())
	assert.Contains(t, string(data), `"first_name":"Ada"`)
	assert.NotContains(t, string(data), "password_hash")
	assert.NotContains(t, string(data), "profile_photo_url", "empty URLs are omitted")

	var decoded LoginResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "jwt-token", decoded.Token)
	assert.Equal(t, id, decoded.User.ID)
}
