package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tablelog/service/internal/response"
	"github.com/tablelog/service/internal/restaurant"
)

// Handler holds JSON API handlers for review endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new review Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type listResponse struct {
	Reviews       []Review `json:"reviews"`
	AverageRating string   `json:"averageRating"`
}

// ListByRestaurant godoc
//
//	@Summary		List reviews for a restaurant
//	@Description	Returns all reviews for the restaurant plus the aggregate rating.
//	@Tags			reviews
//	@Produce		json
//	@Param			id	path		int	true	"Restaurant ID"
//	@Success		200	{object}	response.Envelope{data=listResponse}
//	@Failure		500	{object}	response.Envelope
//	@Router			/restaurants/{id}/reviews [get]
func (h *Handler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w, "restaurant not found")
		return
	}

	reviews, err := h.svc.ListByRestaurant(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}
	if reviews == nil {
		reviews = []Review{}
	}

	response.OK(w, listResponse{
		Reviews:       reviews,
		AverageRating: StarRating(reviews),
	})
}

// Create godoc
//
//	@Summary		Add a review
//	@Description	Attaches a 1–5 rating with an optional comment to a restaurant.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Restaurant ID"
//	@Param			review	body		createRequest	true	"Review to create"
//	@Success		201		{object}	response.Envelope{data=Review}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/restaurants/{id}/reviews [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w, "restaurant not found")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	rev, err := h.svc.Create(r.Context(), id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, restaurant.ErrNotFound):
			response.NotFound(w, "restaurant not found")
		case h.svc.IsValidation(err):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, rev)
}
