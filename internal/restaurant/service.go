package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/tablelog/service/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, name string, description, image *string) (*Restaurant, error)
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	List(ctx context.Context) ([]Restaurant, error)
}

// ImageUpload describes an incoming image file to attach to a restaurant.
type ImageUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// Service contains business logic for restaurant management.
type Service struct {
	store Store
	blobs storage.Storage
}

// NewService creates a new restaurant Service.
func NewService(store Store, blobs storage.Storage) *Service {
	return &Service{store: store, blobs: blobs}
}

// Create validates the name, uploads the image (if any) to the object store
// keyed by its filename — a same-named file replaces prior content — and
// persists the restaurant with the image's public URL. If the insert fails
// after a successful upload, the blob is deleted best-effort so no orphan
// is left behind.
func (s *Service) Create(ctx context.Context, name, description string, image *ImageUpload) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var desc *string
	if description != "" {
		desc = &description
	}

	var imageURL *string
	if image != nil {
		if err := s.blobs.Upload(ctx, image.Filename, image.Reader, image.Size, image.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		u := s.blobs.PublicURL(image.Filename)
		imageURL = &u
	}

	rest, err := s.store.Create(ctx, name, desc, imageURL)
	if err != nil {
		if image != nil {
			if derr := s.blobs.Delete(ctx, image.Filename); derr != nil {
				log.Printf("restaurant: orphaned blob %q not cleaned up: %v", image.Filename, derr)
			}
		}
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return rest, nil
}

// GetByID returns a restaurant by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all restaurants.
func (s *Service) List(ctx context.Context) ([]Restaurant, error) {
	return s.store.List(ctx)
}

// IsNotFound returns true when the error indicates a restaurant was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true when the error indicates rejected input.
func (s *Service) IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName)
}
