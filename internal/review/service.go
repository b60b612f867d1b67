package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablelog/service/internal/restaurant"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, restaurantID int64, rating int, comment *string) (*Review, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]Review, error)
}

// RestaurantGetter resolves the restaurant a review is attached to.
type RestaurantGetter interface {
	GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error)
}

// Service contains business logic for review management.
type Service struct {
	store       Store
	restaurants RestaurantGetter
}

// NewService creates a new review Service.
func NewService(store Store, restaurants RestaurantGetter) *Service {
	return &Service{store: store, restaurants: restaurants}
}

// Create attaches a review to a restaurant. The restaurant must exist —
// restaurant.ErrNotFound is returned before anything is inserted. Ratings
// outside 1..5 are rejected with ErrInvalidRating rather than clamped.
func (s *Service) Create(ctx context.Context, restaurantID int64, rating int, comment string) (*Review, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("check restaurant: %w", err)
	}

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var c *string
	if comment != "" {
		c = &comment
	}

	rev, err := s.store.Create(ctx, restaurantID, rating, c)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rev, nil
}

// ListByRestaurant returns all reviews for one restaurant.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Review, error) {
	return s.store.ListByRestaurant(ctx, restaurantID)
}

// IsValidation returns true when the error indicates rejected input.
func (s *Service) IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRating)
}
