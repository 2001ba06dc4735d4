package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	url, err := s.Save(context.Background(), "abc.png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/uploads/abc.png" {
		t.Fatalf("url = %q, want /uploads/abc.png", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	if err != nil {
		t.Fatalf("read saved object: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("object content = %q", data)
	}

	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc.png")); !os.IsNotExist(err) {
		t.Fatal("object still exists after delete")
	}
}

func TestDiskStoreDeleteMissingIsNoop(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	if err := s.Delete(context.Background(), "/uploads/never-existed.png"); err != nil {
		t.Fatalf("delete missing object: %v", err)
	}
}

func TestSaveStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	url, err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/uploads/passwd" {
		t.Fatalf("url = %q, want the base name only", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Fatalf("object not written inside the store dir: %v", err)
	}
}

func TestFileTypeFor(t *testing.T) {
	cases := []struct {
		contentType string
		want        string
	}{
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"application/pdf", "pdf"},
		{"application/msword", "doc"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "doc"},
		{"text/plain", "other"},
		{"application/octet-stream", "other"},
	}
	for _, tc := range cases {
		if got := FileTypeFor(tc.contentType); got != tc.want {
			t.Fatalf("FileTypeFor(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}
