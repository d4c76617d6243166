package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe is a catalog entry. Ingredients is newline-delimited free text, one
// ingredient per line, and is what the ingredient matcher searches.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Servings      int              `json:"servings"`
	EstimatedCost int              `json:"estimated_cost"`
	Category      string           `gorm:"size:50;index" json:"category"`
	Ingredients   string           `gorm:"type:text;not null" json:"ingredients"`
	Instructions  string           `gorm:"type:text" json:"instructions"`
	ImageURL      string           `gorm:"size:512" json:"image_url"`
	Embedding     *pgvector.Vector `gorm:"type:vector(64)" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientsText returns the recipe's ingredient blob.
func IngredientsText(r Recipe) string {
	return r.Ingredients
}
