package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LocalStorage writes uploads into a directory served as static files
type LocalStorage struct {
	dir        string
	publicPath string
}

// NewLocalStorage creates dir if needed. Locations returned by Save are
// dir-relative paths such as "public/<uuid>_cover.jpg".
func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, publicPath: publicPath}, nil
}

// Dir is the directory files are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

// PublicPath is the URL prefix the directory is mounted on
func (s *LocalStorage) PublicPath() string {
	return s.publicPath
}

func (s *LocalStorage) Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := objectName(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	log.Debug().Str("file", name).Int("size", len(data)).Msg("Upload stored on disk")

	return &StoredFile{
		Key:         name,
		Location:    path.Join(filepath.ToSlash(s.dir), name),
		ContentType: detectContentType(data),
		Size:        int64(len(data)),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}
