// Package restaurant manages restaurant listings and their persistence.
package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Restaurant is a listed restaurant. Description and Image are optional;
// Image holds the public object-store URL of the uploaded photo.
type Restaurant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// ErrNotFound is returned when a restaurant does not exist.
var ErrNotFound = errors.New("restaurant not found")

// ErrEmptyName is returned when a restaurant is created without a name.
var ErrEmptyName = errors.New("restaurant name is required")

// Repository handles all restaurant database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new restaurant and returns the created record.
func (r *Repository) Create(ctx context.Context, name string, description, image *string) (*Restaurant, error) {
	rest := &Restaurant{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO restaurants (name, description, image)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, description, image`,
		name, description, image,
	).Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Image)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return rest, nil
}

// GetByID fetches a restaurant by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	rest := &Restaurant{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, image FROM restaurants WHERE id = $1`,
		id,
	).Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant by id: %w", err)
	}
	return rest, nil
}

// List returns all restaurants in insertion order.
func (r *Repository) List(ctx context.Context) ([]Restaurant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, image FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Image); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}
