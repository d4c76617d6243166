package service

import (
	"math"

	"github.com/cespare/xxhash/v2"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/model"
)

// EmbeddingDimensions is the size of recipe embeddings. It must match the
// vector column in the recipes table.
const EmbeddingDimensions = 64

// measureWords never say anything about what is in a recipe.
var measureWords = map[string]struct{}{
	"cup": {}, "cups": {}, "tbsp": {}, "tsp": {}, "tablespoon": {}, "tablespoons": {},
	"teaspoon": {}, "teaspoons": {}, "lb": {}, "lbs": {}, "oz": {}, "g": {}, "kg": {},
	"ml": {}, "l": {}, "can": {}, "cans": {}, "block": {}, "blocks": {}, "head": {}, "bunch": {}, "bag": {},
	"slice": {}, "slices": {}, "clove": {}, "cloves": {}, "pinch": {}, "handful": {},
	"of": {}, "and": {}, "a": {},
}

// GenerateEmbedding hashes the ingredient words of text into a fixed size
// bag-of-terms vector with unit length. Texts that share ingredients end up
// close under euclidean distance. Text without ingredient words yields the
// zero vector.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDimensions)
	for _, word := range matcher.Vocabulary(text) {
		if _, skip := measureWords[word]; skip {
			continue
		}
		vec[xxhash.Sum64String(word)%EmbeddingDimensions]++
	}

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for i := range vec {
			vec[i] /= n
		}
	}
	return pgvector.NewVector(vec)
}

// RecipeEmbedding embeds a recipe by its ingredients.
func RecipeEmbedding(r *model.Recipe) *pgvector.Vector {
	v := GenerateEmbedding(r.Ingredients)
	return &v
}
