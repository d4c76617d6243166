package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/middleware"
	"github.com/grocerease/backend/internal/service"
)

// Services bundles what the HTTP layer depends on. Rate limiters are nil when
// Redis is not available; the routes they guard are then unlimited.
type Services struct {
	Auth      service.IAuthService
	Recipes   service.IRecipeService
	Favorites service.IFavoriteService
	Bookmarks service.IBookmarkService
	Images    service.IImageService

	LoginLimiter        *middleware.RateLimiter
	CreationLimiter     *middleware.RateLimiter
	ModificationLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "GrocerEase API is running",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	requireAuth := middleware.AuthMiddleware(svc.Auth)

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth, svc.LoginLimiter).RegisterRoutes(v1)
	NewRecipeHandler(svc.Recipes, svc.Favorites, requireAuth, svc.CreationLimiter, svc.ModificationLimiter).RegisterRoutes(v1)
	NewImageHandler(svc.Recipes, svc.Images, requireAuth).RegisterRoutes(v1)
	NewFavoriteHandler(svc.Favorites, requireAuth).RegisterRoutes(v1)
	NewBookmarkHandler(svc.Bookmarks, svc.Recipes, requireAuth).RegisterRoutes(v1)
	NewDietPlanHandler(svc.Recipes).RegisterRoutes(v1)

	if svc.LoginLimiter != nil {
		RegisterRateLimitRoutes(v1, svc.LoginLimiter)
	}
}
