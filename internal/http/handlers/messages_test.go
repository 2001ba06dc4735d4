package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
)

type fakeObjectStore struct {
	saved map[string][]byte
	fail  bool
}

func (s *fakeObjectStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if s.fail {
		return "", errors.New("store down")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[key] = b
	return "/uploads/" + key, nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, url string) error { return nil }

func attachmentRouter(store *fakeObjectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &MessageHandler{Store: store, Log: logger.New("production")}
	r := gin.New()
	r.POST("/api/v1/messages/attachment", func(c *gin.Context) {
		c.Set("userID", uint(1))
	}, h.UploadAttachment)
	return r
}

func attachmentBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadAttachmentReturnsURLAndServerTag(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
		wantType    string
	}{
		{"notes.pdf", "application/pdf", models.FileTypePDF},
		{"photo.jpg", "image/jpeg", models.FileTypeImage},
		{"dump.bin", "application/octet-stream", models.FileTypeOther},
	}

	for _, tc := range cases {
		store := &fakeObjectStore{}
		r := attachmentRouter(store)

		body, ctype := attachmentBody(t, tc.filename, tc.contentType, "payload")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/attachment", body)
		req.Header.Set("Content-Type", ctype)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want %d: %s", tc.filename, rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp struct {
			FileURL  string `json:"file_url"`
			FileType string `json:"file_type"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: unmarshal response: %v", tc.filename, err)
		}
		if resp.FileType != tc.wantType {
			t.Fatalf("%s: file_type %q, want %q", tc.filename, resp.FileType, tc.wantType)
		}
		if !strings.HasPrefix(resp.FileURL, "/uploads/") {
			t.Fatalf("%s: file_url %q not under /uploads/", tc.filename, resp.FileURL)
		}
		if len(store.saved) != 1 {
			t.Fatalf("%s: stored %d objects, want 1", tc.filename, len(store.saved))
		}
	}
}

func TestUploadAttachmentRequiresFile(t *testing.T) {
	r := attachmentRouter(&fakeObjectStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/attachment", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadAttachmentStoreFailure(t *testing.T) {
	r := attachmentRouter(&fakeObjectStore{fail: true})

	body, ctype := attachmentBody(t, "notes.pdf", "application/pdf", "payload")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/attachment", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
