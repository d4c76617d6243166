package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/types"
)

// SearchIngredients finds the recipes whose ingredient lines match at least
// one term of a grocery list. Terms come from the ingredients array and the free text
// field combined.
func (h *RecipeHandler) SearchIngredients(c *gin.Context) {
	var req types.IngredientSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	raw := strings.Join(append(req.Ingredients, req.Text), "\n")
	if len(matcher.Tokenize(raw)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients provided."})
		return
	}

	result, err := h.recipes.Search(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchText is the query-string form of SearchIngredients. An empty text
// follows the configured empty-query policy.
func (h *RecipeHandler) SearchText(c *gin.Context) {
	result, err := h.recipes.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
