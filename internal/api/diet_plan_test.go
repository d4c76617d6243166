package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/internal/model"
)

func TestListDietPlansHandler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/diet-plans", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DietPlans []struct {
			Slug        string `json:"slug"`
			RecipeCount int    `json:"recipe_count"`
		} `json:"diet_plans"`
	}
	decode(t, w, &resp)

	counts := make(map[string]int)
	for _, p := range resp.DietPlans {
		counts[p.Slug] = p.RecipeCount
	}
	assert.Equal(t, map[string]int{
		"high-protein": 1,
		"low-carb":     1,
		"plant-based":  2,
		"balanced":     1,
	}, counts)
}

func TestDietPlanRecipesHandler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/diet-plans/Plant-Based/recipes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DietPlan model.DietPlan `json:"diet_plan"`
		Recipes  []model.Recipe `json:"recipes"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "plant-based", resp.DietPlan.Slug)
	assert.Equal(t, []string{"Tofu Stir Fry", "Veggie Soup"}, recipeNames(resp.Recipes))

	w = env.do(t, http.MethodGet, "/api/v1/diet-plans/keto/recipes", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
