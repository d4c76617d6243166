package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/middleware"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/service"
	"github.com/grocerease/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
	limiter     *middleware.RateLimiter
}

func NewAuthHandler(authService service.IAuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		if h.limiter != nil {
			auth.POST("/login", h.limiter.IPRateLimitMiddleware(), h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username (min 3 characters) and password (min 6 characters) are required"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.authService.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, types.AuthResponse{
		Token: token,
		User:  types.UserResponse{ID: user.ID, Username: user.Username},
	})
}
