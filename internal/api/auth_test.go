package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", types.AuthRequest{Username: "alice", Password: "secret-pass"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered types.AuthResponse
	decode(t, w, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice", registered.User.Username)

	claims, err := env.auth.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	w = env.do(t, http.MethodPost, "/api/v1/auth/register", types.AuthRequest{Username: "ALICE", Password: "other-pass"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", types.AuthRequest{Username: "alice", Password: "secret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var loggedIn types.AuthResponse
	decode(t, w, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", types.AuthRequest{Username: "alice", Password: "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		body types.AuthRequest
	}{
		{"short username", types.AuthRequest{Username: "al", Password: "secret-pass"}},
		{"short password", types.AuthRequest{Username: "alice", Password: "123"}},
		{"missing fields", types.AuthRequest{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/auth/register", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	}
}
