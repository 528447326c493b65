package stock

import (
	"time"

	"planifer-miam/internal/ingredient"
)

// Entry is a quantity of an ingredient a user currently possesses. The
// ingredient reference is optional: rows may survive their ingredient, and
// every consumer skips entries without one. Expiration is informational
// only; the shopping-list derivation never reads it.
type Entry struct {
	ID             int64                  `json:"id"`
	UserID         int64                  `json:"-"`
	Ingredient     *ingredient.Ingredient `json:"ingredient,omitempty"`
	Quantity       float64                `json:"quantity"`
	Unit           string                 `json:"unit"`
	ExpirationDate *time.Time             `json:"expiration_date,omitempty"`
}
