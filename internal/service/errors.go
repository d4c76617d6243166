package service

import "errors"

var (
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrBookmarkNotFound     = errors.New("bookmark not found")
	ErrEmptyBookmark        = errors.New("bookmark text is empty")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrStorageNotConfigured = errors.New("image storage is not configured")
	ErrUnsupportedImage     = errors.New("unsupported image type")
)
