package review_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tablelog/service/internal/response"
	"github.com/tablelog/service/internal/review"
)

func newAPIRouter(svc *review.Service) http.Handler {
	h := review.NewHandler(svc)
	r := chi.NewRouter()
	r.Get("/restaurants/{id}/reviews", h.ListByRestaurant)
	r.Post("/restaurants/{id}/reviews", h.Create)
	return r
}

func TestAPICreateAndListReviews(t *testing.T) {
	svc := review.NewService(&fakeStore{}, &fakeGetter{ids: map[int64]bool{1: true}})
	r := newAPIRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/restaurants/1/reviews",
		strings.NewReader(`{"rating":4,"comment":"solid"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/restaurants/1/reviews",
		strings.NewReader(`{"rating":5}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/restaurants/1/reviews", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var env response.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape %T", env.Data)
	}
	if got := data["averageRating"]; got != "4.5" {
		t.Errorf("averageRating = %v, want 4.5", got)
	}
}

func TestAPICreateReviewMissingRestaurant(t *testing.T) {
	svc := review.NewService(&fakeStore{}, &fakeGetter{ids: map[int64]bool{}})
	r := newAPIRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/restaurants/42/reviews",
		strings.NewReader(`{"rating":5}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAPICreateReviewInvalidRating(t *testing.T) {
	svc := review.NewService(&fakeStore{}, &fakeGetter{ids: map[int64]bool{1: true}})
	r := newAPIRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/restaurants/1/reviews",
		strings.NewReader(`{"rating":9}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
