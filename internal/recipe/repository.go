package recipe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"planifer-miam/internal/ingredient"
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a recipe and its ingredient lines in one transaction and
// returns the new recipe ID.
func (r *Repository) Create(ctx context.Context, rec *Recipe) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (user_id, name, description, instructions, servings) VALUES (?, ?, ?, ?, ?)`,
		rec.UserID, rec.Name, rec.Description, rec.Instructions, rec.Servings)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read recipe id: %w", err)
	}

	if err := insertLines(ctx, tx, id, rec.Lines); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recipe: %w", err)
	}
	return id, nil
}

// Update replaces the recipe fields and all of its ingredient lines. Old
// lines are deleted and the new set is inserted (replace-on-update).
// Returns false when the recipe does not exist for that user.
func (r *Repository) Update(ctx context.Context, rec *Recipe) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE recipes SET name = ?, description = ?, instructions = ?, servings = ? WHERE id = ? AND user_id = ?`,
		rec.Name, rec.Description, rec.Instructions, rec.Servings, rec.ID, rec.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to update recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, rec.ID); err != nil {
		return false, fmt.Errorf("failed to delete old recipe lines: %w", err)
	}
	if err := insertLines(ctx, tx, rec.ID, rec.Lines); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit recipe update: %w", err)
	}
	return true, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, recipeID int64, lines []Line) error {
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity) VALUES (?, ?, ?)`,
			recipeID, line.IngredientID, line.Quantity); err != nil {
			return fmt.Errorf("failed to insert recipe line: %w", err)
		}
	}
	return nil
}

// Get retrieves one of the user's recipes with its lines. Returns nil, nil
// when not found.
func (r *Repository) Get(ctx context.Context, userID, id int64) (*Recipe, error) {
	var rec Recipe
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, instructions, servings FROM recipes WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Description, &rec.Instructions, &rec.Servings)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	lines, err := r.linesFor(ctx, []int64{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Lines = lines[rec.ID]
	return &rec, nil
}

// List retrieves all of the user's recipes with their lines.
func (r *Repository) List(ctx context.Context, userID int64) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, description, instructions, servings FROM recipes WHERE user_id = ? ORDER BY name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	var ids []int64
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Description, &rec.Instructions, &rec.Servings); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Lines = lines[recipes[i].ID]
	}
	return recipes, nil
}

// Delete removes one of the user's recipes; lines cascade away with it.
// Returns false when nothing was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// linesFor loads ingredient lines for a set of recipes, keyed by recipe ID.
// The ingredient join is a LEFT JOIN: a line whose ingredient has been
// removed keeps a nil Ingredient.
func (r *Repository) linesFor(ctx context.Context, recipeIDs []int64) (map[int64][]Line, error) {
	lines := make(map[int64][]Line)
	if len(recipeIDs) == 0 {
		return lines, nil
	}

	query := `SELECT ri.recipe_id, ri.ingredient_id, ri.quantity, i.id, i.name, i.unit
		FROM recipe_ingredients ri
		LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (?` + strings.Repeat(",?", len(recipeIDs)-1) + `)`
	args := make([]any, len(recipeIDs))
	for i, id := range recipeIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var line Line
		var ingID sql.NullInt64
		var ingName, ingUnit sql.NullString
		if err := rows.Scan(&recipeID, &line.IngredientID, &line.Quantity, &ingID, &ingName, &ingUnit); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		if ingID.Valid {
			line.Ingredient = &ingredient.Ingredient{ID: ingID.Int64, Name: ingName.String, Unit: ingUnit.String}
		}
		lines[recipeID] = append(lines[recipeID], line)
	}
	return lines, rows.Err()
}
