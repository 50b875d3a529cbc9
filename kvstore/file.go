package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/rs/zerolog/log"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps all keys in one JSON object on disk. Every Get re-reads the
// file so that writes from another process sharing the path are visible, the
// way localStorage is shared between tabs of one origin.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (fs *FileStore) SetMany(_ context.Context, values map[string]string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	current, err := fs.load()
	if err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("Replacing unreadable credential file")
		current = make(map[string]string)
	}
	for k, v := range values {
		current[k] = v
	}
	return fs.save(current)
}

func (fs *FileStore) Delete(_ context.Context, keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	current, err := fs.load()
	if err != nil {
		// Nothing usable on disk; deleting means starting clean.
		current = make(map[string]string)
	}
	changed := err != nil
	for _, k := range keys {
		if _, ok := current[k]; ok {
			delete(current, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return fs.save(current)
}

func (fs *FileStore) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", fs.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(errors.ErrCorruptSnapshot, "%s", fs.path)
	}
	return values, nil
}

// save writes to a temp file and renames it over the target so readers never
// see a half-written object.
func (fs *FileStore) save(values map[string]string) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".kvstore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmpName, fs.path)
}
