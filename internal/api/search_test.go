package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/types"
)

func TestSearchIngredientsHandler(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name  string
		body  types.IngredientSearchRequest
		names []string
	}{
		{"list field", types.IngredientSearchRequest{Ingredients: []string{"carrots"}}, []string{"Chicken Noodle Soup", "Veggie Soup"}},
		{"text field", types.IngredientSearchRequest{Text: "tofu, broccoli"}, []string{"Tofu Stir Fry"}},
		{"both fields combine", types.IngredientSearchRequest{Ingredients: []string{"tofu"}, Text: "steak"}, []string{"Steak and Eggs", "Tofu Stir Fry"}},
		{"qualified chicken is skipped", types.IngredientSearchRequest{Text: "chicken"}, []string{"Chicken Noodle Soup"}},
		{"case does not matter", types.IngredientSearchRequest{Text: "EGGS"}, []string{"Steak and Eggs"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/recipes/search-ingredients", tc.body, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var result service.SearchResult
			decode(t, w, &result)
			assert.Equal(t, tc.names, recipeNames(result.Recipes))
		})
	}
}

func TestSearchIngredientsRejectsEmptyList(t *testing.T) {
	env := setupTestEnv(t)

	for _, body := range []types.IngredientSearchRequest{
		{},
		{Ingredients: []string{" ", ";"}},
		{Text: " , ; "},
	} {
		w := env.do(t, http.MethodPost, "/api/v1/recipes/search-ingredients", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No ingredients provided."}`, w.Body.String())
	}
}

func TestSearchSuggestions(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes/search-ingredients", types.IngredientSearchRequest{Text: "brocoli"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result service.SearchResult
	decode(t, w, &result)
	assert.Empty(t, result.Recipes)
	assert.Equal(t, []string{"broccoli"}, result.Suggestions["brocoli"])
}

func TestSearchTextHandler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/recipes/search?text=steak", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var result service.SearchResult
	decode(t, w, &result)
	assert.Equal(t, []string{"Steak and Eggs"}, recipeNames(result.Recipes))

	// an empty query shows the whole catalog under the default policy
	w = env.do(t, http.MethodGet, "/api/v1/recipes/search", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	assert.Len(t, result.Recipes, 5)
}
