package memory

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

// ObjectStore keeps deflated objects in a map. The zero value is ready
// to use and safe for concurrent use.
type ObjectStore struct {
	mu sync.RWMutex
	o  map[string][]byte
}

func (os *ObjectStore) WritePacked(p packing.HashedObject) (int, error) {
	var (
		k = p.Fingerprint().String()
		b = storage.Deflate(p.Contents())
	)

	os.mu.Lock()
	defer os.mu.Unlock()

	if os.o == nil {
		os.o = make(map[string][]byte)
	}
	if _, ok := os.o[k]; ok {
		return 0, nil
	}
	os.o[k] = b
	return len(b), nil
}

func (os *ObjectStore) RetrievePacked(s string) (packing.HashedObject, error) {
	fp, err := packing.ParseFingerprint(s)
	if err != nil {
		return nil, err
	}

	os.mu.RLock()
	poB, ok := os.o[fp.String()]
	os.mu.RUnlock()
	if !ok {
		return nil, errors.Wrap(storage.ErrNoSuchObject, s)
	}

	orig, err := storage.Inflate(poB)
	if err != nil {
		return nil, err
	}
	return packing.NewPackedObject(fp, orig), nil
}

func (os *ObjectStore) Ls() ([]packing.Fingerprint, error) {
	os.mu.RLock()
	defer os.mu.RUnlock()

	var res []packing.Fingerprint
	for k := range os.o {
		fp, err := packing.ParseFingerprint(k)
		if err != nil {
			return nil, err
		}
		res = append(res, fp)
	}
	return res, nil
}
