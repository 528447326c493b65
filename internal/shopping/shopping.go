// Package shopping derives a shopping list from a user's planned meals and
// pantry stock. Required ingredient quantities are aggregated across every
// planned meal in a date range, netted against current stock, and only the
// positive shortfalls are kept.
//
// Quantities are additive only under a single canonical unit per ingredient:
// no unit conversion is performed, and two recipes expressing the same
// ingredient in incompatible units will sum to a numerically wrong total.
package shopping

import (
	"planifer-miam/internal/ingredient"
	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/stock"
)

// LineIngredient identifies the ingredient of a shopping-list line.
type LineIngredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Line is one entry of the derived shopping list. NeededQuantity is always
// strictly positive: fully covered ingredients are never emitted.
type Line struct {
	Ingredient     LineIngredient `json:"ingredient"`
	TotalQuantity  float64        `json:"totalQuantity"`
	Unit           string         `json:"unit"`
	NeededQuantity float64        `json:"neededQuantity"`
}

// Requirements holds the total quantity needed per ingredient across a set
// of planned meals. First-seen ingredient order is retained so that output
// is deterministic for a given input order.
type Requirements struct {
	order   []int64
	buckets map[int64]*requirement
}

type requirement struct {
	ingredient *ingredient.Ingredient
	total      float64
	unit       string
}

// BuildStockIndex maps ingredient IDs to the quantity currently available.
// Entries without an ingredient reference are skipped. Quantities of
// multiple entries for the same ingredient are summed; nothing upstream
// guarantees at most one entry per ingredient, and overwriting would lose
// stock.
func BuildStockIndex(entries []stock.Entry) map[int64]float64 {
	index := make(map[int64]float64, len(entries))
	for _, entry := range entries {
		if entry.Ingredient == nil {
			continue
		}
		index[entry.Ingredient.ID] += entry.Quantity
	}
	return index
}

// AggregateRequirements walks every ingredient line of every planned meal's
// recipe and accumulates the total quantity required per ingredient. Meals
// with a dangling recipe reference and lines without an ingredient reference
// are skipped. The unit is the ingredient's canonical unit.
func AggregateRequirements(meals []mealplan.Meal) *Requirements {
	reqs := &Requirements{buckets: make(map[int64]*requirement)}
	for _, meal := range meals {
		if meal.Recipe == nil {
			continue
		}
		for _, line := range meal.Recipe.Lines {
			if line.Ingredient == nil {
				continue
			}
			id := line.Ingredient.ID
			bucket, ok := reqs.buckets[id]
			if !ok {
				bucket = &requirement{ingredient: line.Ingredient, unit: line.Ingredient.Unit}
				reqs.buckets[id] = bucket
				reqs.order = append(reqs.order, id)
			}
			bucket.total += line.Quantity
		}
	}
	return reqs
}

// ComputeShortfall nets the aggregated requirements against available stock
// and returns the lines with a strictly positive needed quantity, in the
// aggregation order.
func ComputeShortfall(reqs *Requirements, index map[int64]float64) []Line {
	lines := make([]Line, 0, len(reqs.order))
	for _, id := range reqs.order {
		bucket := reqs.buckets[id]
		available := index[id]
		needed := bucket.total - available
		if needed <= 0 {
			continue
		}
		lines = append(lines, Line{
			Ingredient: LineIngredient{
				ID:   bucket.ingredient.ID,
				Name: bucket.ingredient.Name,
			},
			TotalQuantity:  bucket.total,
			Unit:           bucket.unit,
			NeededQuantity: needed,
		})
	}
	return lines
}
