package stock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"planifer-miam/internal/ingredient"
)

// Repository is a database-backed repository for stock entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a stock entry and returns its ID. ingredientID may be nil.
func (r *Repository) Create(ctx context.Context, userID int64, ingredientID *int64, quantity float64, unit string, expiration *time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO stock_items (user_id, ingredient_id, quantity, unit, expiration_date) VALUES (?, ?, ?, ?, ?)`,
		userID, ingredientID, quantity, unit, expiration)
	if err != nil {
		return 0, fmt.Errorf("failed to insert stock entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read stock entry id: %w", err)
	}
	return id, nil
}

// FindByUser retrieves every stock entry of the user, including entries
// whose ingredient reference is absent.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.quantity, s.unit, s.expiration_date, i.id, i.name, i.unit
		FROM stock_items s
		LEFT JOIN ingredients i ON i.id = s.ingredient_id
		WHERE s.user_id = ?
		ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ExpiringWithin retrieves the user's entries expiring between now and now
// plus the given number of days, soonest first.
func (r *Repository) ExpiringWithin(ctx context.Context, userID int64, days int, now time.Time) ([]Entry, error) {
	limit := now.AddDate(0, 0, days)
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.quantity, s.unit, s.expiration_date, i.id, i.name, i.unit
		FROM stock_items s
		LEFT JOIN ingredients i ON i.id = s.ingredient_id
		WHERE s.user_id = ? AND s.expiration_date IS NOT NULL AND s.expiration_date >= ? AND s.expiration_date <= ?
		ORDER BY s.expiration_date`, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring stock entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CountByUser returns how many stock entries the user has.
func (r *Repository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM stock_items WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stock entries: %w", err)
	}
	return count, nil
}

// CountExpiringWithin returns how many of the user's entries expire between
// now and now plus the given number of days.
func (r *Repository) CountExpiringWithin(ctx context.Context, userID int64, days int, now time.Time) (int, error) {
	limit := now.AddDate(0, 0, days)
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM stock_items
		WHERE user_id = ? AND expiration_date IS NOT NULL AND expiration_date >= ? AND expiration_date <= ?`,
		userID, now, limit).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expiring stock entries: %w", err)
	}
	return count, nil
}

// Delete removes one of the user's stock entries. Returns false when
// nothing was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM stock_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete stock entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var expiration sql.NullTime
		var ingID sql.NullInt64
		var ingName, ingUnit sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Quantity, &e.Unit, &expiration, &ingID, &ingName, &ingUnit); err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		if expiration.Valid {
			t := expiration.Time
			e.ExpirationDate = &t
		}
		if ingID.Valid {
			e.Ingredient = &ingredient.Ingredient{ID: ingID.Int64, Name: ingName.String, Unit: ingUnit.String}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
