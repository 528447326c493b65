package shopping

import (
	"context"
	"fmt"

	"planifer-miam/internal/mealplan"
	"planifer-miam/internal/stock"
)

// MealSource provides the planned meals feeding the aggregation, with
// recipes and ingredient lines resolved.
type MealSource interface {
	FindByUserAndDateRange(ctx context.Context, userID int64, start, end string) ([]mealplan.Meal, error)
}

// StockSource provides the user's current stock entries.
type StockSource interface {
	FindByUser(ctx context.Context, userID int64) ([]stock.Entry, error)
}

// Service derives shopping lists. The computation is read-only and fully
// recomputed from current data on every call; nothing is persisted.
type Service struct {
	meals MealSource
	stock StockSource
}

// NewService creates a new Service.
func NewService(meals MealSource, stock StockSource) *Service {
	return &Service{meals: meals, stock: stock}
}

// Generate computes the shopping list for the user over the given range.
// An empty planned-meal window yields an empty list, not an error.
func (s *Service) Generate(ctx context.Context, userID int64, rng Range) ([]Line, error) {
	meals, err := s.meals.FindByUserAndDateRange(ctx, userID, rng.StartDate(), rng.EndDate())
	if err != nil {
		return nil, fmt.Errorf("failed to load planned meals: %w", err)
	}

	entries, err := s.stock.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	reqs := AggregateRequirements(meals)
	index := BuildStockIndex(entries)
	return ComputeShortfall(reqs, index), nil
}
