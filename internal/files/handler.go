// Package files exposes generic file transfer to and from the object store.
package files

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablelog/service/internal/storage"
)

const maxUploadBytes = 32 << 20

// Handler holds the upload and download endpoints.
type Handler struct {
	blobs storage.Storage
}

// NewHandler creates a new files Handler.
func NewHandler(blobs storage.Storage) *Handler {
	return &Handler{blobs: blobs}
}

// Upload stores the multipart "file" field under its own filename,
// overwriting any previous object with that name.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			http.Error(w, "No file selected", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error reading upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.blobs.Upload(r.Context(), header.Filename, file, header.Size, contentType); err != nil {
		http.Error(w, "Error uploading the file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "File '%s' uploaded successfully!", header.Filename)
}

// Download streams the named object back as an attachment. Any retrieval
// failure, including an unknown key, is reported as 404 with the
// underlying error text.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	obj, err := h.blobs.Download(r.Context(), filename)
	if err != nil {
		http.Error(w, "Error downloading the file: "+err.Error(), http.StatusNotFound)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, obj); err != nil {
		log.Printf("files: streaming %q aborted: %v", filename, err)
	}
}
