package model

import "strings"

// DietPlan is one of the fixed plans shown on the home screen. Each plan
// browses the recipes of a single category.
type DietPlan struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

var dietPlans = []DietPlan{
	{Slug: "high-protein", Name: "High-Protein", Category: "High-Protein", Description: "Lean meats, eggs, legumes and dairy"},
	{Slug: "low-carb", Name: "Low-Carb", Category: "Low-Carb", Description: "Vegetables and proteins, few grains or sugars"},
	{Slug: "plant-based", Name: "Plant-Based", Category: "Plant-Based", Description: "No meat, built on beans, grains and greens"},
	{Slug: "balanced", Name: "Balanced", Category: "Balanced", Description: "A mix of everything in sensible portions"},
}

// DietPlans returns the plan catalogue in display order.
func DietPlans() []DietPlan {
	out := make([]DietPlan, len(dietPlans))
	copy(out, dietPlans)
	return out
}

// FindDietPlan looks a plan up by slug, ignoring case.
func FindDietPlan(slug string) (DietPlan, bool) {
	slug = strings.TrimSpace(slug)
	for _, p := range dietPlans {
		if strings.EqualFold(p.Slug, slug) {
			return p, true
		}
	}
	return DietPlan{}, false
}

// All returns every persisted model, in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Recipe{}, &Favorite{}, &Bookmark{}}
}
