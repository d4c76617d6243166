package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/middleware"
	"github.com/grocerease/backend/internal/types"
)

// RegisterRateLimitRoutes exposes the caller's remaining login attempts.
func RegisterRateLimitRoutes(router *gin.RouterGroup, login *middleware.RateLimiter) {
	router.GET("/rate-limits/login", func(c *gin.Context) {
		remaining, reset, err := login.GetRemainingRequests(c.Request.Context(), c.ClientIP())
		if err != nil {
			respondError(c, err)
			return
		}
		cfg := login.Config()
		c.JSON(http.StatusOK, types.RateLimitStatus{
			Limit:     cfg.Limit,
			Remaining: remaining,
			ResetTime: reset,
			Window:    cfg.Window.String(),
		})
	})
}
