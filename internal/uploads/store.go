// Package uploads stores customer payment proofs and product images on the
// local filesystem under randomized names.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/errors"
)

const (
	// MaxImageSize caps a single uploaded file at 5 MiB.
	MaxImageSize = 5 << 20

	// MaxProductImages caps the gallery size per product.
	MaxProductImages = 10
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// SaveImage validates and persists one uploaded image, returning the relative
// path to serve it under. The content type is sniffed from the file bytes, not
// taken from the request.
func (s *Store) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {

	if header.Size > MaxImageSize {
		return "", errors.BadRequestError("Uploaded file is too large")
	}

	buf := make([]byte, 512)

	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", errors.InternalError("Failed to read uploaded file").WithError(err)
	}

	contentType := http.DetectContentType(buf[:n])

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", errors.BadRequestError("Only PNG and JPEG images are accepted")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", errors.InternalError("Failed to rewind uploaded file").WithError(err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", errors.InternalError("Failed to store uploaded file").WithError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxImageSize)); err != nil {
		os.Remove(path)
		return "", errors.InternalError("Failed to store uploaded file").WithError(err)
	}

	return "/uploads/" + name, nil
}

// Dir is the directory served under the /uploads/ route.
func (s *Store) Dir() string {
	return s.dir
}
