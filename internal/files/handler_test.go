package files_test

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tablelog/service/internal/files"
	"github.com/tablelog/service/internal/storage"
)

func newRouter(blobs storage.Storage) http.Handler {
	h := files.NewHandler(blobs)
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Get("/download/{filename}", h.Download)
	return r
}

func multipartFile(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadThenDownloadRoundTrip(t *testing.T) {
	r := newRouter(storage.NewMemory("http://blobs.local/files"))

	body, contentType := multipartFile(t, "file", "notes.txt", "remember the tapas place")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "File 'notes.txt' uploaded successfully!" {
		t.Errorf("unexpected upload response %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/download/notes.txt", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "remember the tapas place" {
		t.Errorf("downloaded bytes differ: %q", got)
	}
	want := mime.FormatMediaType("attachment", map[string]string{"filename": "notes.txt"})
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
}

func TestUploadOverwritesSameName(t *testing.T) {
	blobs := storage.NewMemory("http://blobs.local/files")
	r := newRouter(blobs)

	for _, content := range []string{"v1", "v2"} {
		body, contentType := multipartFile(t, "file", "menu.pdf", content)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("upload status = %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/download/menu.pdf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Body.String(); got != "v2" {
		t.Errorf("expected overwrite, got %q", got)
	}
}

func TestUploadMissingFile(t *testing.T) {
	r := newRouter(storage.NewMemory("http://blobs.local/files"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("other", "value")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No file selected") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestDownloadMissingKey(t *testing.T) {
	r := newRouter(storage.NewMemory("http://blobs.local/files"))

	req := httptest.NewRequest(http.MethodGet, "/download/never-uploaded.txt", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error downloading the file:") {
		t.Errorf("expected underlying error text, got %q", rec.Body.String())
	}
}
