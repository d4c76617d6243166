package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerease/backend/internal/model"
)

// BookmarkService manages saved grocery lists
type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// Create saves a grocery list for the user. The text is trimmed first. If the
// user already saved exactly the same text, that bookmark is returned and
// created is false.
func (s *BookmarkService) Create(ctx context.Context, userID uuid.UUID, text string) (*model.Bookmark, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, ErrEmptyBookmark
	}

	var existing model.Bookmark
	err := s.db.WithContext(ctx).Where("user_id = ? AND text = ?", userID, text).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find bookmark: %w", err)
	}

	bookmark := model.Bookmark{UserID: userID, Text: text}
	if err := s.db.WithContext(ctx).Create(&bookmark).Error; err != nil {
		return nil, false, fmt.Errorf("create bookmark: %w", err)
	}
	return &bookmark, true, nil
}

// List returns the user's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Get returns a bookmark owned by the user.
func (s *BookmarkService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return &bookmark, nil
}

// Delete removes a bookmark owned by the user. Bookmarks of other users are
// reported as not found.
func (s *BookmarkService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
