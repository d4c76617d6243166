package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grocerease/backend/internal/logger"
	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/types"
)

const (
	// SuggestionThreshold is the minimum similarity for a "did you mean" word.
	SuggestionThreshold = 0.7
	// SuggestionLimit caps the suggestions returned per unmatched term.
	SuggestionLimit = 3

	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

// RecipeFilter narrows a catalog listing. Both fields are optional.
type RecipeFilter struct {
	Category string
	Query    string
}

// SearchResult is the outcome of an ingredient search. Suggestions is only
// filled when the terms matched nothing, keyed by term.
type SearchResult struct {
	Terms       []string            `json:"terms"`
	Recipes     []model.Recipe      `json:"recipes"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	cache  *CatalogCache
	policy matcher.Policy
	empty  matcher.EmptyQueryPolicy
}

// NewRecipeService creates a new RecipeService instance. cache may be nil, in
// which case every search reads the catalog from the database.
func NewRecipeService(db *gorm.DB, cache *CatalogCache, policy matcher.Policy, empty matcher.EmptyQueryPolicy) *RecipeService {
	return &RecipeService{
		db:     db,
		cache:  cache,
		policy: policy,
		empty:  empty,
	}
}

// ListRecipes returns the catalog, optionally restricted to a category
// (case-insensitive, surrounding whitespace ignored) and to names containing
// Query (case-insensitive).
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	category := strings.TrimSpace(filter.Category)
	query := strings.TrimSpace(filter.Query)
	if category == "" && query == "" {
		return s.catalog(ctx)
	}

	q := s.db.WithContext(ctx)
	if category != "" {
		q = q.Where("LOWER(TRIM(category)) = ?", strings.ToLower(category))
	}
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var recipes []model.Recipe
	if err := q.Order("name ASC, id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// CreateRecipe stores a new recipe and computes its embedding.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Category = strings.TrimSpace(recipe.Category)
	recipe.Embedding = RecipeEmbedding(recipe)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	s.invalidate(ctx)
	return recipe, nil
}

// UpdateRecipe applies the non-nil fields of req.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.EstimatedCost != nil {
		recipe.EstimatedCost = *req.EstimatedCost
	}
	if req.Category != nil {
		recipe.Category = strings.TrimSpace(*req.Category)
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	recipe.Embedding = RecipeEmbedding(recipe)

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	s.invalidate(ctx)
	return recipe, nil
}

// DeleteRecipe soft-deletes a recipe and drops its favorites.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return err
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// SetImageURL records the stored image of a recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, fmt.Errorf("set recipe image: %w", err)
	}
	recipe.ImageURL = url
	s.invalidate(ctx)
	return recipe, nil
}

// SimilarRecipes returns the recipes nearest to id. On postgres this is a
// pgvector distance ordering over the embeddings; other databases fall back
// to recipes of the same category.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]model.Recipe, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("id <> ?", id).Limit(limit)
	if s.db.Dialector.Name() == "postgres" && recipe.Embedding != nil {
		q = q.Where("embedding IS NOT NULL").Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{*recipe.Embedding}},
		})
	} else {
		q = q.Where("LOWER(TRIM(category)) = ?", strings.ToLower(recipe.Category)).Order("name ASC")
	}

	var recipes []model.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("similar recipes: %w", err)
	}
	return recipes, nil
}

// Search runs the ingredient matcher over the catalog with the configured
// empty-query policy.
func (s *RecipeService) Search(ctx context.Context, raw string) (*SearchResult, error) {
	return s.SearchWithPolicy(ctx, raw, s.empty)
}

// SearchWithPolicy runs the ingredient matcher with an explicit empty-query
// policy.
func (s *RecipeService) SearchWithPolicy(ctx context.Context, raw string, empty matcher.EmptyQueryPolicy) (*SearchResult, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	terms := matcher.Tokenize(raw)
	result := &SearchResult{
		Terms:   terms,
		Recipes: matcher.SearchTerms(s.policy, catalog, terms, model.IngredientsText, empty),
	}
	if len(terms) > 0 && len(result.Recipes) == 0 {
		result.Suggestions = suggest(catalog, terms)
	}
	return result, nil
}

// CategoryCounts counts catalog recipes per lowercased category.
func (s *RecipeService) CategoryCounts(ctx context.Context) (map[string]int, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range catalog {
		counts[strings.ToLower(strings.TrimSpace(r.Category))]++
	}
	return counts, nil
}

// catalog returns every recipe ordered by name, from the cache when possible.
func (s *RecipeService) catalog(ctx context.Context) ([]model.Recipe, error) {
	fill := false
	var version int64
	if s.cache != nil {
		recipes, v, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			logger.Warn("catalog cache unavailable", zap.Error(err))
		case ok:
			return recipes, nil
		default:
			fill, version = true, v
		}
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if fill {
		if err := s.cache.Set(ctx, version, recipes); err != nil {
			logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return recipes, nil
}

func (s *RecipeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func suggest(catalog []model.Recipe, terms []string) map[string][]string {
	texts := make([]string, len(catalog))
	for i, r := range catalog {
		texts[i] = r.Ingredients
	}
	vocab := matcher.Vocabulary(texts...)

	out := make(map[string][]string)
	for _, term := range terms {
		if words := matcher.Suggest(vocab, term, SuggestionThreshold, SuggestionLimit); len(words) > 0 {
			out[term] = words
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
