package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize is 10MB in bytes
const MaxImageSize = 10 * 1024 * 1024

var allowedImageExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageStorage keeps uploaded photos (gallery images, employee photos) and
// hands back an opaque key.
type ImageStorage interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadError is a rejected upload; it is the client's fault.
type UploadError struct {
	Code    string
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

// ValidateImage checks the size and extension of an upload.
func ValidateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return &UploadError{Code: "NO_FILE", Message: "no file uploaded"}
	}
	if fileHeader.Size > MaxImageSize {
		return &UploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("file size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024)),
		}
	}
	if _, ok := allowedImageExt[strings.ToLower(filepath.Ext(fileHeader.Filename))]; !ok {
		return &UploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "only png, jpg, gif and webp images are allowed",
		}
	}
	return nil
}

func contentType(filename string) string {
	if ct, ok := allowedImageExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// objectName is "<unix nanos>-<base name>", unique enough for a single shop.
func objectName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), base)
}
