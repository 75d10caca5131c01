package registry

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/merybenavente/ragsearch-engine/library"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Registry is the process-wide mapping from library id to library
// container. It must be explicitly constructed at startup and handed down
// to callers; it is never package-level ambient state.
type Registry struct {
	mu        sync.Mutex
	libraries map[string]*library.Library
	logger    *zap.Logger
}

// New constructs an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		libraries: make(map[string]*library.Library),
		logger:    logger,
	}
}

// Create builds a new library with a fresh unique id and registers it.
func (r *Registry) Create(name string, indexType library.IndexType, params library.IndexParams, metadata library.Metadata) (*library.Library, error) {
	id := uuid.NewString()
	lib, err := library.New(id, name, indexType, params, metadata, r.logger)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.libraries[id] = lib
	r.mu.Unlock()
	return lib, nil
}

// Get returns the library for id, or NotFound.
func (r *Registry) Get(id string) (*library.Library, error) {
	r.mu.Lock()
	lib, ok := r.libraries[id]
	r.mu.Unlock()
	if !ok {
		return nil, ragerr.New(ragerr.KindNotFound, "library not found: "+id)
	}
	return lib, nil
}

// List returns every registered library. The slice order is unspecified.
func (r *Registry) List() []*library.Library {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*library.Library, 0, len(r.libraries))
	for _, lib := range r.libraries {
		out = append(out, lib)
	}
	return out
}

// UpdateMetadata applies fn to the library's metadata. The registry lock is
// released before fn runs under the library's own lock.
func (r *Registry) UpdateMetadata(id string, fn func(*library.Metadata)) error {
	lib, err := r.Get(id)
	if err != nil {
		return err
	}
	lib.UpdateMetadata(fn)
	return nil
}

// Delete removes id from the registry. The registry lock is released before
// any library-level work; the library handle obtained while the registry
// lock was held is simply dropped, and in-flight operations on it (each
// already holding the library's own lock) run to completion independently.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.libraries[id]
	if ok {
		delete(r.libraries, id)
	}
	r.mu.Unlock()
	if !ok {
		return ragerr.New(ragerr.KindNotFound, "library not found: "+id)
	}
	return nil
}
