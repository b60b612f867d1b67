package restaurant

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tablelog/service/internal/response"
)

// Handler holds JSON API handlers for restaurant endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new restaurant Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List godoc
//
//	@Summary		List restaurants
//	@Description	Returns all listed restaurants.
//	@Tags			restaurants
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Restaurant}
//	@Failure		500	{object}	response.Envelope
//	@Router			/restaurants [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	if restaurants == nil {
		restaurants = []Restaurant{}
	}
	response.OK(w, restaurants)
}

// Get godoc
//
//	@Summary		Get a restaurant
//	@Description	Returns one restaurant by id.
//	@Tags			restaurants
//	@Produce		json
//	@Param			id	path		int	true	"Restaurant ID"
//	@Success		200	{object}	response.Envelope{data=Restaurant}
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/restaurants/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w, "restaurant not found")
		return
	}

	rest, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "restaurant not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, rest)
}

// Create godoc
//
//	@Summary		Create a restaurant
//	@Description	Creates a restaurant without an image. Use the web form to attach one.
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			restaurant	body		createRequest	true	"Restaurant to create"
//	@Success		201			{object}	response.Envelope{data=Restaurant}
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/restaurants [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	rest, err := h.svc.Create(r.Context(), req.Name, req.Description, nil)
	if err != nil {
		if h.svc.IsValidation(err) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, rest)
}
