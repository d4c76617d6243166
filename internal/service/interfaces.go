package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// IRecipeService defines the interface for recipe catalog and search operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	SetImageURL(ctx context.Context, id uuid.UUID, url string) (*model.Recipe, error)
	SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]model.Recipe, error)
	Search(ctx context.Context, raw string) (*SearchResult, error)
	SearchWithPolicy(ctx context.Context, raw string, empty matcher.EmptyQueryPolicy) (*SearchResult, error)
	CategoryCounts(ctx context.Context) (map[string]int, error)
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
}

// IBookmarkService defines the interface for saved grocery lists
type IBookmarkService interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (*model.Bookmark, bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Bookmark, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// IImageService stores recipe images
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error)
}
