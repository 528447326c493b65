package mealplan

import (
	"context"
	"database/sql"
	"fmt"

	"planifer-miam/internal/recipe"
)

// Repository is a database-backed repository for planned meals.
type Repository struct {
	db      *sql.DB
	recipes *recipe.Repository
}

// NewRepository creates a new Repository. The recipe repository is used to
// resolve recipe lines when loading meals for a date range.
func NewRepository(db *sql.DB, recipes *recipe.Repository) *Repository {
	return &Repository{db: db, recipes: recipes}
}

// Create inserts a planned meal and returns its ID.
func (r *Repository) Create(ctx context.Context, meal Meal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO planned_meals (user_id, recipe_id, meal_date, meal_type) VALUES (?, ?, ?, ?)`,
		meal.UserID, meal.RecipeID, meal.Date, string(meal.Slot))
	if err != nil {
		return 0, fmt.Errorf("failed to insert planned meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read planned meal id: %w", err)
	}
	return id, nil
}

// ListByUser retrieves all of the user's planned meals ordered by date.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Meal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, meal_date, meal_type FROM planned_meals WHERE user_id = ? ORDER BY meal_date`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned meals: %w", err)
	}
	defer rows.Close()
	return scanMeals(rows)
}

// FindByUserAndDateRange retrieves the user's planned meals within
// [start, end], both bounds inclusive, ordered by date, with each meal's
// recipe and ingredient lines resolved. Meals whose recipe no longer exists
// are returned with a nil Recipe.
func (r *Repository) FindByUserAndDateRange(ctx context.Context, userID int64, start, end string) ([]Meal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, meal_date, meal_type
		FROM planned_meals
		WHERE user_id = ? AND meal_date >= ? AND meal_date <= ?
		ORDER BY meal_date`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned meals: %w", err)
	}
	defer rows.Close()

	meals, err := scanMeals(rows)
	if err != nil {
		return nil, err
	}

	// Resolve each distinct recipe once.
	resolved := make(map[int64]*recipe.Recipe)
	for i := range meals {
		rec, ok := resolved[meals[i].RecipeID]
		if !ok {
			rec, err = r.recipes.Get(ctx, userID, meals[i].RecipeID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve recipe %d: %w", meals[i].RecipeID, err)
			}
			resolved[meals[i].RecipeID] = rec
		}
		meals[i].Recipe = rec
	}
	return meals, nil
}

// CountInRange returns how many meals the user planned within [start, end].
func (r *Repository) CountInRange(ctx context.Context, userID int64, start, end string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM planned_meals WHERE user_id = ? AND meal_date >= ? AND meal_date <= ?`,
		userID, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count planned meals: %w", err)
	}
	return count, nil
}

// Recent retrieves the user's most recently dated planned meals.
func (r *Repository) Recent(ctx context.Context, userID int64, limit int) ([]Meal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, meal_date, meal_type
		FROM planned_meals WHERE user_id = ?
		ORDER BY meal_date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent planned meals: %w", err)
	}
	defer rows.Close()
	return scanMeals(rows)
}

// Delete removes one of the user's planned meals. Returns false when
// nothing was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM planned_meals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete planned meal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanMeals(rows *sql.Rows) ([]Meal, error) {
	var meals []Meal
	for rows.Next() {
		var m Meal
		var slot string
		if err := rows.Scan(&m.ID, &m.UserID, &m.RecipeID, &m.Date, &slot); err != nil {
			return nil, fmt.Errorf("failed to scan planned meal: %w", err)
		}
		m.Slot = Slot(slot)
		meals = append(meals, m)
	}
	return meals, rows.Err()
}
