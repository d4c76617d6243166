package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:              config.Test,
		ServerHost:       "127.0.0.1",
		ServerPort:       "0",
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		EmptyQueryPolicy: "all",
		CORSOrigins:      []string{"http://localhost:5173"},
	}
}

func TestNew(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	testhelpers.CreateRecipes(t, db, testhelpers.SampleRecipes()...)

	srv, err := New(testConfig(), db, nil, nil, matcher.DefaultPolicy())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/search?text=tofu", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tofu Stir Fry")
}

func TestNewRejectsUnknownEmptyQueryPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.EmptyQueryPolicy = "sometimes"

	_, err := New(cfg, testhelpers.SetupSQLiteDB(t), nil, nil, matcher.DefaultPolicy())
	assert.Error(t, err)
}

func TestUnknownRouteIsJSON(t *testing.T) {
	srv, err := New(testConfig(), testhelpers.SetupSQLiteDB(t), nil, nil, matcher.DefaultPolicy())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestCORSPreflight(t *testing.T) {
	srv, err := New(testConfig(), testhelpers.SetupSQLiteDB(t), nil, nil, matcher.DefaultPolicy())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartAndShutdown(t *testing.T) {
	srv, err := New(testConfig(), testhelpers.SetupSQLiteDB(t), nil, nil, matcher.DefaultPolicy())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
