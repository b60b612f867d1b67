// Package review manages restaurant reviews and their aggregate rating.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablelog/service/internal/restaurant"
)

// Review is a single rating left for a restaurant. Comment is optional.
type Review struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurantId"`
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment,omitempty"`
}

// ErrInvalidRating is returned when a rating is outside the 1–5 range.
var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// Repository handles all review database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review and returns the created record. A foreign-key
// violation on restaurant_id is reported as restaurant.ErrNotFound.
func (r *Repository) Create(ctx context.Context, restaurantID int64, rating int, comment *string) (*Review, error) {
	rev := &Review{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (restaurant_id, rating, comment)
		 VALUES ($1, $2, $3)
		 RETURNING id, restaurant_id, rating, comment`,
		restaurantID, rating, comment,
	).Scan(&rev.ID, &rev.RestaurantID, &rev.Rating, &rev.Comment)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, restaurant.ErrNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rev, nil
}

// ListByRestaurant returns all reviews for one restaurant in insertion order.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, restaurant_id, rating, comment
		 FROM reviews WHERE restaurant_id = $1 ORDER BY id`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.RestaurantID, &rev.Rating, &rev.Comment); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

// isForeignKeyViolation checks whether an error is a PostgreSQL foreign_key_violation (code 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
