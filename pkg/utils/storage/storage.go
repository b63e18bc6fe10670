package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const DefaultExtension = "jpg"

var ErrEmptyPath = errors.New("storage: empty object path")

// ObjectStore is blob storage addressed by object name.
type ObjectStore interface {
	// Put stores body under name and returns the path to use for later calls.
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
	// PublicURL returns the public URL for path, or "" if none can be derived.
	PublicURL(path string) string
	Delete(ctx context.Context, path string) error
}

// ExtensionOf returns the lower cased extension of filename without the dot,
// falling back to DefaultExtension.
func ExtensionOf(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" || strings.ContainsAny(ext, `/\ `) {
		return DefaultExtension
	}
	return ext
}

// UniqueName builds a fresh object name that keeps the upload's extension.
func UniqueName(filename string) string {
	return fmt.Sprintf("%s.%s", uuid.NewString(), ExtensionOf(filename))
}
