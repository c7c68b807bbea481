package server

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/image-canvas-mcp/internal/canvas"
)

// ErrUnknownImage is returned when an image ID is not in the registry.
var ErrUnknownImage = errors.New("unknown image id")

// Registry holds the images a client is working on, keyed by generated IDs.
//
// Every image added gets a fresh random UUID, so IDs are never reused even
// after Release. Registry is safe for concurrent use by multiple goroutines;
// the images themselves are not, and callers must serialize mutation of a
// single image.
//
// Images stay in memory until released or until Clear is called.
type Registry struct {
	mu     sync.RWMutex
	images map[string]*canvas.Image
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]*canvas.Image),
	}
}

// Add stores img under a new ID and returns the ID.
func (r *Registry) Add(img *canvas.Image) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.images[id] = img
	r.mu.Unlock()
	return id
}

// Get returns the image stored under id.
func (r *Registry) Get(id string) (*canvas.Image, error) {
	r.mu.RLock()
	img, ok := r.images[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImage, id)
	}
	return img, nil
}

// Release removes id and reports whether it was present.
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.images[id]
	delete(r.images, id)
	return ok
}

// Clear removes all images.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.images = make(map[string]*canvas.Image)
	r.mu.Unlock()
}

// Len returns the number of stored images.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}

// IDs returns the stored IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.images))
	for id := range r.images {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
