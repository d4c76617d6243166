package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/service"
)

type DietPlanHandler struct {
	recipes service.IRecipeService
}

func NewDietPlanHandler(recipes service.IRecipeService) *DietPlanHandler {
	return &DietPlanHandler{recipes: recipes}
}

func (h *DietPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/diet-plans")
	{
		plans.GET("", h.ListDietPlans)
		plans.GET("/:slug/recipes", h.DietPlanRecipes)
	}
}

type dietPlanSummary struct {
	model.DietPlan
	RecipeCount int `json:"recipe_count"`
}

// ListDietPlans returns every diet plan with the number of recipes in its
// category.
func (h *DietPlanHandler) ListDietPlans(c *gin.Context) {
	counts, err := h.recipes.CategoryCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	plans := model.DietPlans()
	out := make([]dietPlanSummary, len(plans))
	for i, p := range plans {
		out[i] = dietPlanSummary{DietPlan: p, RecipeCount: counts[strings.ToLower(p.Category)]}
	}
	c.JSON(http.StatusOK, gin.H{"diet_plans": out})
}

func (h *DietPlanHandler) DietPlanRecipes(c *gin.Context) {
	plan, ok := model.FindDietPlan(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet plan not found"})
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), service.RecipeFilter{Category: plan.Category})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"diet_plan": plan,
		"recipes":   recipes,
	})
}
