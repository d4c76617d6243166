package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDietPlan(t *testing.T) {
	plan, ok := FindDietPlan(" Low-Carb ")
	assert.True(t, ok)
	assert.Equal(t, "low-carb", plan.Slug)
	assert.Equal(t, "Low-Carb", plan.Category)

	_, ok = FindDietPlan("keto")
	assert.False(t, ok)
}

func TestDietPlansReturnsCopy(t *testing.T) {
	plans := DietPlans()
	assert.Len(t, plans, 4)

	plans[0].Name = "changed"
	assert.NotEqual(t, "changed", DietPlans()[0].Name)
}

func TestIngredientsText(t *testing.T) {
	r := Recipe{Name: "Toast", Ingredients: "2 slices bread\nbutter"}
	assert.Equal(t, "2 slices bread\nbutter", IngredientsText(r))
}
