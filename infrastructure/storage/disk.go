package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage writes uploads under Dir; they are served from URLPrefix.
type DiskStorage struct {
	Dir       string
	URLPrefix string
}

func NewDiskStorage(dir, urlPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStorage{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (d *DiskStorage) Save(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := objectName(fileHeader.Filename)
	if err := d.write(key, src); err != nil {
		return "", err
	}
	return key, nil
}

// write stores src under key. A failed write leaves no file behind.
func (d *DiskStorage) write(key string, src io.Reader) error {
	path := filepath.Join(d.Dir, key)
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (d *DiskStorage) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return d.URLPrefix + key, nil
}

func (d *DiskStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.Dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Handler serves stored files. Directory paths answer 404 instead of a
// listing.
func (d *DiskStorage) Handler() http.Handler {
	files := http.FileServer(http.Dir(d.Dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
