package mealplan

import (
	"fmt"
	"time"

	"planifer-miam/internal/recipe"
)

// Slot is the meal slot of a planned meal. Several meals may share a date
// and slot; nothing enforces one-meal-per-slot.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnack     Slot = "snack"
)

// ParseSlot validates a meal slot string.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		return Slot(s), nil
	}
	return "", fmt.Errorf("unknown meal slot %q", s)
}

// DateLayout is the date-only format planned meals are stored and exchanged
// in. Dates carry no time component, so lexical comparison matches
// chronological comparison.
const DateLayout = "2006-01-02"

// ParseDate validates a date-only string.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// Meal is a user's assignment of a recipe to a date and meal slot. The
// recipe is resolved when loading meals for the shopping-list derivation and
// may be nil for a dangling reference; consumers skip such meals.
type Meal struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"-"`
	RecipeID int64          `json:"recipe_id"`
	Recipe   *recipe.Recipe `json:"recipe,omitempty"`
	Date     string         `json:"planned_date"`
	Slot     Slot           `json:"meal_type"`
}
