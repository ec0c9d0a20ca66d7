package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

// StorageKey is the fixed key the token is stored under.
const StorageKey = "auth_token"

// File persists the token as a small JSON document on disk, the way a browser
// keeps it in origin-scoped local storage. Writes go through a temp file and
// rename so a crash never leaves a half-written token.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a File store at path. When path is empty the default
// location under the user's config directory is used.
func NewFile(path string) (*File, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("token store: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "interview-portal", "session.json")
	}
	return &File{path: path}, nil
}

// Path returns the backing file location.
func (f *File) Path() string { return f.path }

func (f *File) Get(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", err
	}
	token := doc[StorageKey]
	if token == "" {
		return "", domain.ErrNoToken
	}
	return token, nil
}

func (f *File) Set(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("token store: create dir: %w", err)
	}

	raw, err := json.Marshal(map[string]string{StorageKey: token})
	if err != nil {
		return fmt.Errorf("token store: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("token store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("token store: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("token store: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("token store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("token store: rename: %w", err)
	}
	return nil
}

// Clear removes the backing file. Clearing an empty store is not an error.
func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("token store: remove: %w", err)
	}
	return nil
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNoToken
		}
		return nil, fmt.Errorf("token store: read: %w", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("token store: decode %s: %w", f.path, err)
	}
	return doc, nil
}
