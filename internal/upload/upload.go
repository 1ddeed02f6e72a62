// Package upload stores image uploads on local disk under a public /uploads prefix.
package upload

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foody-app/foody-api/internal/apperr"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads"

const MaxSize = 5 << 20

var (
	ErrTooLarge = apperr.Validation("image must be at most 5MB")
	ErrType     = apperr.Validation("only jpg, jpeg, png, gif and webp images are allowed")

	unsafeChars = regexp.MustCompile(`[^\w\-.]`)
	allowedExt  = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
)

type Store struct{ dir string }

func NewStore(dir string) *Store { return &Store{dir: dir} }

func (s *Store) Dir() string { return s.dir }

// FromForm saves the multipart file in field and returns its public path.
// It returns "" and no error when the request carries no such file.
func (s *Store) FromForm(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Validation("invalid multipart form")
	}
	if fh.Size > MaxSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := cleanName(fh.Filename)
	if err := c.SaveUploadedFile(fh, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	path := PublicPrefix + "/" + name
	log.Printf("[upload] %s -> %s bytes=%d", fh.Filename, path, fh.Size)
	return path, nil
}

// cleanName keeps a sanitized base name behind a short random prefix.
func cleanName(orig string) string {
	ext := strings.ToLower(filepath.Ext(orig))
	base := strings.TrimSuffix(filepath.Base(orig), filepath.Ext(orig))
	base = unsafeChars.ReplaceAllString(base, "_")
	if len(base) > 40 {
		base = base[:40]
	}
	return fmt.Sprintf("%s_%s%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:12], base, ext)
}
