package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/skinory/skinory-api/internal/models"
)

// RoutineRepository handles all state-mutating operations for routine
// entries against the PostgreSQL write store. The (user_id, product_id,
// period) unique key is the authoritative duplicate guard; the in-request
// FindEntry check only exists for a friendly fast-path error.
type RoutineRepository struct {
	db *sql.DB
}

func NewRoutineRepository(db *sql.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

// FindEntry returns the entry for (userID, productID, period), or nil when
// no such entry exists.
func (r *RoutineRepository) FindEntry(userID, productID string, period models.Period) (*models.RoutineEntry, error) {
	query := `
		SELECT user_id, product_id, category, period, applied, created_at
		FROM routines
		WHERE user_id = $1 AND product_id = $2 AND period = $3
	`
	var entry models.RoutineEntry
	err := r.db.QueryRow(query, userID, productID, string(period)).Scan(
		&entry.UserID, &entry.ProductID, &entry.Category, &entry.Period,
		&entry.Applied, &entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find routine entry: %w", err)
	}
	return &entry, nil
}

// ListViews returns a user's entries for one period joined with product
// details, in insertion order.
func (r *RoutineRepository) ListViews(userID string, period models.Period) ([]models.RoutineView, error) {
	query := `
		SELECT r.product_id, p.name, r.category, p.skin_type, p.price, p.rating, p.image_url,
			   r.applied, r.created_at
		FROM routines r
		JOIN products p ON p.id = r.product_id
		WHERE r.user_id = $1 AND r.period = $2
		ORDER BY r.created_at ASC
	`
	rows, err := r.db.Query(query, userID, string(period))
	if err != nil {
		return nil, fmt.Errorf("failed to query routines: %w", err)
	}
	defer rows.Close()

	views := []models.RoutineView{}
	for rows.Next() {
		var view models.RoutineView
		var imageURL sql.NullString
		if err := rows.Scan(
			&view.ProductID, &view.ProductName, &view.Category, &view.SkinType,
			&view.Price, &view.Rating, &imageURL, &view.Applied, &view.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan routine: %w", err)
		}
		if imageURL.Valid {
			view.ImageURL = imageURL.String
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read routines: %w", err)
	}
	return views, nil
}

func (r *RoutineRepository) Insert(entry *models.RoutineEntry) error {
	query := `
		INSERT INTO routines (user_id, product_id, category, period, applied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		entry.UserID, entry.ProductID, entry.Category, string(entry.Period),
		entry.Applied, entry.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert routine entry: %w", err)
	}
	return nil
}

// UpdateApplied sets the applied flag on the user's entries for a product.
// The match is not scoped to a period. Returns the number of rows touched.
func (r *RoutineRepository) UpdateApplied(userID, productID string, applied bool) (int64, error) {
	query := `
		UPDATE routines
		SET applied = $3
		WHERE user_id = $1 AND product_id = $2
	`
	result, err := r.db.Exec(query, userID, productID, applied)
	if err != nil {
		return 0, fmt.Errorf("failed to update applied status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

func (r *RoutineRepository) DeleteAllForPeriod(userID string, period models.Period) error {
	query := `
		DELETE FROM routines
		WHERE user_id = $1 AND period = $2
	`
	if _, err := r.db.Exec(query, userID, string(period)); err != nil {
		return fmt.Errorf("failed to delete routines: %w", err)
	}
	return nil
}
