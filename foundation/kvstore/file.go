package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File represents a store that keeps every value in a single JSON document
// on disk. The document is rewritten on every change. This implements the
// Store interface.
type File struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// NewFile constructs a File store, loading the existing document at path
// if there is one.
func NewFile(path string) (*File, error) {
	f := File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating store folder: %w", err)
		}
		return &f, nil

	case err != nil:
		return nil, fmt.Errorf("reading store: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, fmt.Errorf("decoding store %s: %w", path, err)
		}
	}

	return &f, nil
}

// Get returns the value for the key.
func (f *File) Get(key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, exists := f.values[key]
	if !exists {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores the value for the key and writes the document to disk.
func (f *File) Set(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.values[key]
	f.values[key] = value

	if err := f.flush(); err != nil {
		if existed {
			f.values[key] = old
		} else {
			delete(f.values, key)
		}
		return err
	}

	return nil
}

// Delete removes the key and writes the document to disk.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, exists := f.values[key]
	if !exists {
		return nil
	}

	delete(f.values, key)

	if err := f.flush(); err != nil {
		f.values[key] = old
		return err
	}

	return nil
}

// flush writes the document to a temporary file and renames it over the
// store so a crash never leaves a partial document behind.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}

	return nil
}
