// Package storage resolves image locations to bytes and writes encoded
// images back out.
//
// A location is either a file system path or an http(s) URL. URLs are
// detected by scheme prefix and fetched with a plain GET; they are read-only.
// Reads and writes are synchronous and never retried: a failure surfaces
// immediately to the caller, who can bound the call with a context deadline.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrExists is returned by Write when the destination already exists and
// overwriting was not requested.
var ErrExists = errors.New("destination already exists")

// ErrReadOnly is returned when writing to a location that cannot be written,
// such as a URL.
var ErrReadOnly = errors.New("location is read-only")

// Store abstracts reading image sources and writing encoded images.
type Store interface {
	// Read returns the full contents of a path or URL.
	Read(ctx context.Context, location string) ([]byte, error)

	// Write stores data at path. If overwrite is false and path exists,
	// Write returns ErrExists without touching the file.
	Write(ctx context.Context, path string, data []byte, overwrite bool) error
}

// Local implements Store on the local file system and net/http.
type Local struct {
	client *http.Client
}

// DefaultTimeout bounds URL fetches made through Default.
const DefaultTimeout = 30 * time.Second

// New creates a Local store whose URL fetches time out after timeout.
// A non-positive timeout disables the client-side limit; the request context
// still applies.
func New(timeout time.Duration) *Local {
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &Local{client: c}
}

var defaultStore = New(DefaultTimeout)

// Default returns the shared Local store.
func Default() *Local {
	return defaultStore
}

// IsURL reports whether location uses the http or https scheme.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Read returns the contents of a file or URL.
func (s *Local) Read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, errors.New("empty location")
	}
	if IsURL(location) {
		return s.fetch(ctx, location)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *Local) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// Write stores data at path, creating parent directories as needed.
func (s *Local) Write(ctx context.Context, path string, data []byte, overwrite bool) error {
	if path == "" {
		return errors.New("empty path")
	}
	if IsURL(path) {
		return fmt.Errorf("%w: %s", ErrReadOnly, path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists checks if a file or directory exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Ensure Local implements Store
var _ Store = (*Local)(nil)
