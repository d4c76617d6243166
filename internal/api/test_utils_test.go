package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/testhelpers"
)

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	recipes map[string]model.Recipe
}

// setupTestEnv wires the real services over an in-memory database seeded
// with the sample recipes. mutate may replace services before routing.
func setupTestEnv(t *testing.T, mutate ...func(*Services)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	svc := Services{
		Auth:      auth,
		Recipes:   service.NewRecipeService(db, nil, matcher.DefaultPolicy(), matcher.ShowAll),
		Favorites: service.NewFavoriteService(db),
		Bookmarks: service.NewBookmarkService(db),
		Images:    service.NewImageService(nil),
	}
	for _, m := range mutate {
		m(&svc)
	}

	router := gin.New()
	RegisterRoutes(router, svc)

	byName := make(map[string]model.Recipe)
	for _, r := range testhelpers.CreateRecipes(t, db, testhelpers.SampleRecipes()...) {
		byName[r.Name] = r
	}
	return &testEnv{router: router, db: db, auth: auth, recipes: byName}
}

// login creates a user and returns a bearer token for it.
func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	user := testhelpers.CreateUser(t, e.db, username)
	token, err := e.auth.IssueToken(&user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func recipeNames(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

