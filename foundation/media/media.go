// Package media validates images before they are handed to the storage
// network and provides an in-memory uploader for development and tests.
package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/h2non/filetype"
)

// DefaultMaxSize is the largest upload accepted for subsidized uploads.
const DefaultMaxSize = 100 * 1024

// Set of errors returned by Validate.
var (
	ErrEmpty     = errors.New("file is empty")
	ErrTooLarge  = errors.New("file is too large")
	ErrFileType  = errors.New("file type is not allowed")
	ErrExtension = errors.New("file extension is not allowed")
)

// Options control what Validate accepts.
type Options struct {
	MaxSize      int
	AllowedTypes []string
	AllowedExts  []string
}

// DefaultOptions accepts the image types supported for blog logos.
func DefaultOptions() Options {
	return Options{
		MaxSize:      DefaultMaxSize,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
		AllowedExts:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
	}
}

// File is an uploaded file along with its sniffed content type.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Validate checks the size, extension and sniffed content type of the file.
func Validate(name string, data []byte, opts Options) (File, error) {
	if len(data) == 0 {
		return File{}, ErrEmpty
	}

	if opts.MaxSize > 0 && len(data) > opts.MaxSize {
		return File{}, fmt.Errorf("%w: %d bytes, the limit is %dKB", ErrTooLarge, len(data), opts.MaxSize/1024)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(opts.AllowedExts, ext) {
		return File{}, fmt.Errorf("%w: %q, allowed: %s", ErrExtension, ext, strings.Join(opts.AllowedExts, ", "))
	}

	contentType := sniff(data)
	if !slices.Contains(opts.AllowedTypes, contentType) {
		return File{}, fmt.Errorf("%w: %q, allowed: %s", ErrFileType, contentType, strings.Join(opts.AllowedTypes, ", "))
	}

	return File{Name: name, ContentType: contentType, Data: data}, nil
}

// sniff returns the MIME type of the content. SVG documents are text and
// are recognized by their root element.
func sniff(data []byte) string {
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}

	head := bytes.ToLower(bytes.TrimSpace(data[:min(len(data), 512)]))
	if bytes.HasPrefix(head, []byte("<svg")) || (bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))) {
		return "image/svg+xml"
	}

	return "application/octet-stream"
}

// =============================================================================

// ContentID returns the content addressed id of the data: the unpadded
// base64url encoding of its SHA-256 digest.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Memory is an uploader that keeps the files in memory.
type Memory struct {
	mu    sync.RWMutex
	files map[string]File
}

// NewMemory constructs an in-memory uploader.
func NewMemory() *Memory {
	return &Memory{
		files: make(map[string]File),
	}
}

// Upload stores the file and returns its content id.
func (m *Memory) Upload(ctx context.Context, f File, tags map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := ContentID(f.Data)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[id] = f
	return id, nil
}

// Download returns the file stored under the id.
func (m *Memory) Download(id string) (File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, exists := m.files[id]
	return f, exists
}
