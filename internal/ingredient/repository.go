package ingredient

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is a database-backed repository for ingredients. Ingredients
// are scoped to their owning user.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new ingredient for the given user and returns its ID.
func (r *Repository) Create(ctx context.Context, userID int64, ing Ingredient) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ingredients (user_id, name, unit) VALUES (?, ?, ?)`,
		userID, ing.Name, ing.Unit)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read ingredient id: %w", err)
	}
	return id, nil
}

// Get retrieves one of the user's ingredients by ID. Returns nil, nil when
// not found.
func (r *Repository) Get(ctx context.Context, userID, id int64) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, unit FROM ingredients WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&ing.ID, &ing.Name, &ing.Unit)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ing, nil
}

// List retrieves the user's ingredients, optionally filtered by a substring
// match on the name.
func (r *Repository) List(ctx context.Context, userID int64, search string) ([]Ingredient, error) {
	query := `SELECT id, name, unit FROM ingredients WHERE user_id = ? ORDER BY name`
	args := []any{userID}
	if search != "" {
		query = `SELECT id, name, unit FROM ingredients WHERE user_id = ? AND name LIKE ? ORDER BY name`
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// Update changes the name and unit of one of the user's ingredients.
// Returns false when the ingredient does not exist for that user.
func (r *Repository) Update(ctx context.Context, userID int64, ing Ingredient) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ingredients SET name = ?, unit = ? WHERE id = ? AND user_id = ?`,
		ing.Name, ing.Unit, ing.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update ingredient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes one of the user's ingredients. Returns false when nothing
// was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete ingredient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
