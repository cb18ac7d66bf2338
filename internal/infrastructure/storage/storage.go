package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrEmptyFile is returned when an upload carries no bytes
var ErrEmptyFile = errors.New("uploaded file is empty")

// Storage persists uploaded files and hands back where they can be fetched
type Storage interface {
	// Save stores data under a unique key derived from originalName
	Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error)

	// Delete removes a file previously returned by Save
	Delete(ctx context.Context, key string) error
}

// StoredFile describes a saved upload
type StoredFile struct {
	Key         string // driver specific key, passed back to Delete
	Location    string // value clients use to fetch the file
	ContentType string
	Size        int64
}

// objectName keeps the original name recognizable while making it unique
func objectName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 32 || r == '/' || r == ':':
			return -1
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}

func detectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
