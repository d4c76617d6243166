package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/types"
)

type FavoriteHandler struct {
	favorites   service.IFavoriteService
	requireAuth gin.HandlerFunc
}

func NewFavoriteHandler(favorites service.IFavoriteService, requireAuth gin.HandlerFunc) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, requireAuth: requireAuth}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites", h.requireAuth)
	{
		favorites.GET("", h.ListFavorites)
		favorites.GET("/:recipeId", h.IsFavorite)
		favorites.POST("/toggle", h.ToggleFavorite)
	}
}

// ListFavorites returns the caller's favorite recipes, most recent first.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *FavoriteHandler) IsFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "recipeId", "recipe")
	if !ok {
		return
	}
	fav, err := h.favorites.IsFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": fav})
}

func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	fav, err := h.favorites.Toggle(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": fav})
}
