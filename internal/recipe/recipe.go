package recipe

import "planifer-miam/internal/ingredient"

// Line is one ingredient-quantity entry of a recipe. The ingredient
// reference may be absent (nullable relation); consumers skip such lines
// instead of failing.
type Line struct {
	IngredientID int64                  `json:"ingredient_id"`
	Ingredient   *ingredient.Ingredient `json:"ingredient,omitempty"`
	Quantity     float64                `json:"quantity"`
}

// Recipe is a user's recipe with its ingredient lines. Lines carry no
// meaningful order.
type Recipe struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"-"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Servings     int    `json:"servings"`
	Lines        []Line `json:"ingredients"`
}
