package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/middleware"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/types"
)

type RecipeHandler struct {
	recipes     service.IRecipeService
	favorites   service.IFavoriteService
	requireAuth gin.HandlerFunc
	createLimit *middleware.RateLimiter
	modifyLimit *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, favorites service.IFavoriteService, requireAuth gin.HandlerFunc, createLimit, modifyLimit *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		favorites:   favorites,
		requireAuth: requireAuth,
		createLimit: createLimit,
		modifyLimit: modifyLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{h.requireAuth}
	modify := []gin.HandlerFunc{h.requireAuth}
	if h.createLimit != nil {
		create = append(create, h.createLimit.RateLimitMiddleware())
	}
	if h.modifyLimit != nil {
		modify = append(modify, h.modifyLimit.PerRecipeRateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchText)
		recipes.POST("/search-ingredients", h.SearchIngredients)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.POST("", append(create, h.CreateRecipe)...)
		recipes.PUT("/:id", append(modify, h.UpdateRecipe)...)
		recipes.DELETE("/:id", append(modify, h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", h.requireAuth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.requireAuth, h.UnfavoriteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), service.RecipeFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Ingredients) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and ingredients are required"})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &model.Recipe{
		Name:          strings.TrimSpace(req.Name),
		Servings:      req.Servings,
		EstimatedCost: req.EstimatedCost,
		Category:      req.Category,
		Ingredients:   req.Ingredients,
		Instructions:  req.Instructions,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.Name != nil && strings.TrimSpace(*req.Name) == "") ||
		(req.Ingredients != nil && strings.TrimSpace(*req.Ingredients) == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and ingredients cannot be blank"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

// SimilarRecipes lists the recipes closest to one recipe. limit defaults to 5.
func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	recipes, err := h.recipes.SimilarRecipes(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	recipeID, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.favorites.Add(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Recipe favorited successfully",
		"id":          recipeID,
		"is_favorite": true,
	})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	recipeID, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Recipe unfavorited successfully",
		"id":          recipeID,
		"is_favorite": false,
	})
}
