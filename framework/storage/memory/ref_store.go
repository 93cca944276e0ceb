package memory

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

// RefStore is used for storing references, names such as
// refs/fixtures/users which point at the fingerprint last recorded
// for them.
type RefStore struct {
	mu sync.RWMutex
	r  map[string]packing.Fingerprint
}

// Write ref returns a boolean indicating whether the ref was changed
// or not, and errors incase of malformation, and misc problems.
func (r *RefStore) Write(name string, newRef packing.Fingerprint) (bool, error) {
	if err := ref.ValidName(name); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.r == nil {
		r.r = make(map[string]packing.Fingerprint)
	}
	if existingRef, exists := r.r[name]; exists {
		if newRef == existingRef {
			return false, nil
		}
	}
	r.r[name] = newRef
	return true, nil
}

func (r *RefStore) Retrieve(name string) (packing.Fingerprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if existingRef, exists := r.r[name]; exists {
		return existingRef, nil
	}
	return packing.Fingerprint{}, errors.Wrap(storage.ErrUnknownRef, name)
}

func (r *RefStore) Ls() (map[string]packing.Fingerprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make(map[string]packing.Fingerprint, len(r.r))
	for k, v := range r.r {
		res[k] = v
	}
	return res, nil
}
