package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerease/backend/internal/model"
)

// FavoriteService manages the favorite recipes of users
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips the favorite state of a recipe and returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var isFavorite bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			isFavorite = false
			return nil
		}
		isFavorite = true
		return tx.Create(&model.Favorite{UserID: userID, RecipeID: recipeID}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return isFavorite, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return count > 0, nil
}

// Add favorites a recipe. Adding an existing favorite is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		fav := model.Favorite{UserID: userID, RecipeID: recipeID}
		return tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).FirstOrCreate(&fav).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return err
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove unfavorites a recipe. Removing a missing favorite is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// List returns the user's favorite recipes, most recently favorited first.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return recipes, nil
}

func recipeExists(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
