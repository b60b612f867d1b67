package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestMemoryOverwriteByKey(t *testing.T) {
	m := NewMemory("http://blobs.local/files")
	ctx := context.Background()

	if err := m.Upload(ctx, "menu.pdf", strings.NewReader("first"), 5, "application/pdf"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if err := m.Upload(ctx, "menu.pdf", strings.NewReader("second"), 6, "application/pdf"); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	obj, err := m.Download(ctx, "menu.pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected same-named upload to overwrite, got %q", data)
	}
}

func TestMemoryDownloadMissingKey(t *testing.T) {
	m := NewMemory("http://blobs.local/files")
	if _, err := m.Download(context.Background(), "nope.txt"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestMemoryDeleteAndPublicURL(t *testing.T) {
	m := NewMemory("http://blobs.local/files/")
	ctx := context.Background()

	if got := m.PublicURL("a.txt"); got != "http://blobs.local/files/a.txt" {
		t.Errorf("unexpected public URL %q", got)
	}

	if err := m.Upload(ctx, "a.txt", strings.NewReader("x"), 1, "text/plain"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := m.Delete(ctx, "a.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty store, got %d objects", m.Len())
	}
	if err := m.Delete(ctx, "a.txt"); err != nil {
		t.Errorf("deleting a missing key should not error, got %v", err)
	}
}
