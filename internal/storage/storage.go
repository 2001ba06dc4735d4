package storage

import (
	"context"
	"io"
	"strings"

	"github.com/Muskan6505/Local-helpHub/internal/models"
)

// ObjectStore is the boundary for avatar and chat-attachment files.
type ObjectStore interface {
	// Save writes the object under key and returns its public URL.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	// Delete removes the object a previous Save returned url for.
	Delete(ctx context.Context, url string) error
}

// FileTypeFor maps an upload's content type onto the stored type tag.
func FileTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.FileTypeImage
	case contentType == "application/pdf":
		return models.FileTypePDF
	case contentType == "application/msword",
		strings.HasPrefix(contentType, "application/vnd.openxmlformats-officedocument"):
		return models.FileTypeDoc
	default:
		return models.FileTypeOther
	}
}
