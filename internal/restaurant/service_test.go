package restaurant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tablelog/service/internal/restaurant"
	"github.com/tablelog/service/internal/storage"
)

// fakeStore is an in-memory restaurant.Store.
type fakeStore struct {
	restaurants []restaurant.Restaurant
	nextID      int64
	failCreate  error
}

func (f *fakeStore) Create(ctx context.Context, name string, description, image *string) (*restaurant.Restaurant, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	rest := restaurant.Restaurant{ID: f.nextID, Name: name, Description: description, Image: image}
	f.restaurants = append(f.restaurants, rest)
	return &rest, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	for i := range f.restaurants {
		if f.restaurants[i].ID == id {
			rest := f.restaurants[i]
			return &rest, nil
		}
	}
	return nil, restaurant.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	return append([]restaurant.Restaurant(nil), f.restaurants...), nil
}

func TestCreateWithoutImage(t *testing.T) {
	store := &fakeStore{}
	blobs := storage.NewMemory("http://blobs.local/restaurants")
	svc := restaurant.NewService(store, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Cafe X", "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Image != nil {
		t.Errorf("expected unset image, got %q", *created.Image)
	}
	if created.Description != nil {
		t.Errorf("expected unset description, got %q", *created.Description)
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Cafe X" {
		t.Fatalf("expected exactly one restaurant named 'Cafe X', got %+v", listed)
	}
}

func TestCreateEmptyNameRejected(t *testing.T) {
	store := &fakeStore{}
	blobs := storage.NewMemory("http://blobs.local/restaurants")
	svc := restaurant.NewService(store, blobs)

	_, err := svc.Create(context.Background(), "   ", "tasty", nil)
	if !errors.Is(err, restaurant.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if !svc.IsValidation(err) {
		t.Error("expected IsValidation to report true")
	}
	if len(store.restaurants) != 0 {
		t.Errorf("expected no restaurant persisted, got %d", len(store.restaurants))
	}
}

func TestCreateWithImageComposesURL(t *testing.T) {
	store := &fakeStore{}
	blobs := storage.NewMemory("http://blobs.local/restaurants")
	svc := restaurant.NewService(store, blobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Cafe X", "garden seating", &restaurant.ImageUpload{
		Filename:    "front.jpg",
		Size:        5,
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("bytes"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Image == nil {
		t.Fatal("expected image URL to be set")
	}
	if *created.Image != "http://blobs.local/restaurants/front.jpg" {
		t.Errorf("unexpected image URL %q", *created.Image)
	}

	obj, err := blobs.Download(ctx, "front.jpg")
	if err != nil {
		t.Fatalf("expected uploaded image in store: %v", err)
	}
	obj.Close()
}

func TestCreateCleansUpBlobOnInsertFailure(t *testing.T) {
	store := &fakeStore{failCreate: errors.New("connection reset")}
	blobs := storage.NewMemory("http://blobs.local/restaurants")
	svc := restaurant.NewService(store, blobs)

	_, err := svc.Create(context.Background(), "Cafe X", "", &restaurant.ImageUpload{
		Filename:    "front.jpg",
		Size:        5,
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("bytes"),
	})
	if err == nil {
		t.Fatal("expected insert failure to propagate")
	}
	if blobs.Len() != 0 {
		t.Errorf("expected orphaned blob to be deleted, %d objects remain", blobs.Len())
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := restaurant.NewService(&fakeStore{}, storage.NewMemory("http://blobs.local/r"))

	_, err := svc.GetByID(context.Background(), 42)
	if !svc.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
