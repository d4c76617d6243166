package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name          string `json:"name" binding:"required"`
	Servings      int    `json:"servings" binding:"gte=0"`
	EstimatedCost int    `json:"estimated_cost" binding:"gte=0"`
	Category      string `json:"category"`
	Ingredients   string `json:"ingredients" binding:"required"`
	Instructions  string `json:"instructions"`
	ImageURL      string `json:"image_url"`
}

// UpdateRecipeRequest carries a partial update; nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Name          *string `json:"name"`
	Servings      *int    `json:"servings"`
	EstimatedCost *int    `json:"estimated_cost"`
	Category      *string `json:"category"`
	Ingredients   *string `json:"ingredients"`
	Instructions  *string `json:"instructions"`
	ImageURL      *string `json:"image_url"`
}

// IngredientSearchRequest is the body of an ingredient search. Either field
// may carry the grocery list; both are tokenized together.
type IngredientSearchRequest struct {
	Ingredients []string `json:"ingredients"`
	Text        string   `json:"text"`
}

type AuthRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type BookmarkRequest struct {
	Text string `json:"text"`
}

type ToggleFavoriteRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
}

// RateLimitStatus reports the caller's remaining budget in the current window.
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
	Window    string    `json:"window"`
}
