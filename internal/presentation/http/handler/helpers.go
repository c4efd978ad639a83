package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	return pagination.FromQuery(c.Query("page"), c.Query("per_page"))
}

func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "date must be YYYY-MM-DD"}})
	}
	return &t, nil
}

// Uploads stores image files received from clients.
type Uploads struct {
	Dir     string
	MaxSize int64
}

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// SaveImage stores the multipart file field as a PNG or JPEG under
// Dir/sub and returns its reference relative to Dir. The type is sniffed
// from the content.
func (u Uploads) SaveImage(c *gin.Context, field, sub string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", apperror.NewBadRequestError(fmt.Sprintf("File field %q is required", field))
	}
	if u.MaxSize > 0 && fh.Size > u.MaxSize {
		return "", apperror.NewBadRequestError(fmt.Sprintf("File is %s; the limit is %s",
			humanize.Bytes(uint64(fh.Size)), humanize.Bytes(uint64(u.MaxSize))))
	}

	data, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	mt := mimetype.Detect(data)
	ext, ok := imageTypes[mt.String()]
	if !ok {
		return "", apperror.NewBadRequestError(fmt.Sprintf("Unsupported file type %s; upload a PNG or JPEG image", mt.String()))
	}

	dir := filepath.Join(u.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return filepath.ToSlash(filepath.Join(sub, name)), nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.NewBadRequestError("Unreadable upload")
	}
	defer f.Close()
	return io.ReadAll(f)
}
