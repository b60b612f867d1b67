// Package web serves the server-rendered HTML pages and form actions.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"github.com/tablelog/service/internal/restaurant"
	"github.com/tablelog/service/internal/review"
)

//go:embed templates static
var assetsFS embed.FS

// Handler renders the HTML pages and processes their form posts.
type Handler struct {
	restaurants *restaurant.Service
	reviews     *review.Service
	pages       map[string]*template.Template
}

// NewHandler parses the embedded templates and returns a ready Handler.
func NewHandler(restaurants *restaurant.Service, reviews *review.Service) *Handler {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"index.html", "details.html", "create_restaurant.html"} {
		pages[name] = template.Must(template.ParseFS(assetsFS,
			"templates/layout.html", "templates/"+name))
	}
	return &Handler{restaurants: restaurants, reviews: reviews, pages: pages}
}

// Static serves the embedded static assets (mounted under /static/).
func Static() http.Handler {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

type indexData struct {
	Flash       string
	Restaurants []restaurant.Restaurant
}

type detailData struct {
	Flash      string
	Restaurant *restaurant.Restaurant
	Reviews    []review.Review
	StarRating string
	CSRFField  template.HTML
	Error      string
}

type createData struct {
	Flash       string
	CSRFField   template.HTML
	Error       string
	Name        string
	Description string
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("web: render %s: %v", page, err)
	}
}

// Index lists all restaurants.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.List(r.Context())
	if err != nil {
		http.Error(w, "Error listing restaurants: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "index.html", indexData{
		Flash:       PopFlash(w, r),
		Restaurants: restaurants,
	})
}

// Details shows one restaurant with its reviews and aggregate rating.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.renderDetails(w, r, id, http.StatusOK, "", PopFlash(w, r))
}

func (h *Handler) renderDetails(w http.ResponseWriter, r *http.Request, id int64, status int, formError, flash string) {
	rest, err := h.restaurants.GetByID(r.Context(), id)
	if err != nil {
		if h.restaurants.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error loading restaurant: "+err.Error(), http.StatusInternalServerError)
		return
	}

	reviews, err := h.reviews.ListByRestaurant(r.Context(), id)
	if err != nil {
		http.Error(w, "Error loading reviews: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.render(w, status, "details.html", detailData{
		Flash:      flash,
		Restaurant: rest,
		Reviews:    reviews,
		StarRating: review.StarRating(reviews),
		CSRFField:  csrf.TemplateField(r),
		Error:      formError,
	})
}

// CreateForm shows the empty restaurant creation form.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "create_restaurant.html", createData{
		Flash:     PopFlash(w, r),
		CSRFField: csrf.TemplateField(r),
	})
}

// AddRestaurant handles the creation form post. The optional image is
// uploaded to the object store keyed by its filename before the record
// is persisted.
func (h *Handler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Error reading form: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")

	var image *restaurant.ImageUpload
	file, header, err := r.FormFile("image")
	switch {
	case err == nil && header.Filename != "":
		defer file.Close()
		image = &restaurant.ImageUpload{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		}
	case err == nil:
		// empty file input submitted with the form
		file.Close()
	case !errors.Is(err, http.ErrMissingFile):
		http.Error(w, "Error reading image: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.restaurants.Create(r.Context(), name, description, image); err != nil {
		if h.restaurants.IsValidation(err) {
			h.render(w, http.StatusBadRequest, "create_restaurant.html", createData{
				CSRFField:   csrf.TemplateField(r),
				Error:       err.Error(),
				Name:        name,
				Description: description,
			})
			return
		}
		http.Error(w, "Error adding restaurant: "+err.Error(), http.StatusInternalServerError)
		return
	}

	SetFlash(w, "Restaurant added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AddReview handles the review form post on the details page.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		h.renderDetails(w, r, id, http.StatusBadRequest, review.ErrInvalidRating.Error(), "")
		return
	}

	if _, err := h.reviews.Create(r.Context(), id, rating, r.FormValue("comment")); err != nil {
		switch {
		case errors.Is(err, restaurant.ErrNotFound):
			http.NotFound(w, r)
		case h.reviews.IsValidation(err):
			h.renderDetails(w, r, id, http.StatusBadRequest, err.Error(), "")
		default:
			http.Error(w, "Error adding review: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	SetFlash(w, "Review added successfully!")
	http.Redirect(w, r, "/details/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// Favicon redirects to the static favicon asset.
func (h *Handler) Favicon(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/favicon.ico", http.StatusFound)
}
