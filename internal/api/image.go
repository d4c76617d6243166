package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/service"
)

const maxImageSize = 5 << 20

// ImageHandler handles recipe image uploads
type ImageHandler struct {
	recipes     service.IRecipeService
	images      service.IImageService
	requireAuth gin.HandlerFunc
}

// NewImageHandler creates a new image handler. images may be nil when no
// bucket is configured.
func NewImageHandler(recipes service.IRecipeService, images service.IImageService, requireAuth gin.HandlerFunc) *ImageHandler {
	return &ImageHandler{
		recipes:     recipes,
		images:      images,
		requireAuth: requireAuth,
	}
}

// RegisterRoutes registers the image upload route
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/:id/image", h.requireAuth, h.UploadRecipeImage)
}

// UploadRecipeImage stores the multipart "image" file and records its URL on
// the recipe.
func (h *ImageHandler) UploadRecipeImage(c *gin.Context) {
	id, ok := pathUUID(c, "id", "recipe")
	if !ok {
		return
	}
	if h.images == nil {
		respondError(c, service.ErrStorageNotConfigured)
		return
	}
	if _, err := h.recipes.GetRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image must be 5MB or smaller"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, data, http.DetectContentType(data))
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.SetImageURL(c.Request.Context(), id, url)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image_url": url,
		"recipe":    recipe,
	})
}
