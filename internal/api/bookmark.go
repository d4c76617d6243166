package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/types"
)

// BookmarkHandler serves saved grocery lists.
type BookmarkHandler struct {
	bookmarks   service.IBookmarkService
	recipes     service.IRecipeService
	requireAuth gin.HandlerFunc
}

func NewBookmarkHandler(bookmarks service.IBookmarkService, recipes service.IRecipeService, requireAuth gin.HandlerFunc) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, recipes: recipes, requireAuth: requireAuth}
}

func (h *BookmarkHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookmarks := router.Group("/bookmarks", h.requireAuth)
	{
		bookmarks.POST("", h.CreateBookmark)
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.DELETE("/:id", h.DeleteBookmark)
		bookmarks.GET("/:id/recipes", h.BookmarkRecipes)
	}
}

// CreateBookmark saves a grocery list. Saving the same text twice returns the
// existing bookmark with 200 instead of 201.
func (h *BookmarkHandler) CreateBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bookmark, created, err := h.bookmarks.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"bookmark": bookmark})
}

func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookmarks, err := h.bookmarks.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

func (h *BookmarkHandler) DeleteBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "bookmark")
	if !ok {
		return
	}
	if err := h.bookmarks.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Bookmark deleted successfully",
		"id":      id,
	})
}

// BookmarkRecipes re-runs the ingredient search for a saved list. A list
// without terms matches nothing here, whatever the global policy says.
func (h *BookmarkHandler) BookmarkRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "bookmark")
	if !ok {
		return
	}
	bookmark, err := h.bookmarks.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.recipes.SearchWithPolicy(c.Request.Context(), bookmark.Text, matcher.ShowNone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookmark":    bookmark,
		"terms":       result.Terms,
		"recipes":     result.Recipes,
		"suggestions": result.Suggestions,
	})
}
