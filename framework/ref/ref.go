// Package ref names fingerprints. A ref such as refs/golden/users
// records the fingerprint a value had when it was last accepted, so a
// later run can check the value still fingerprints the same.
package ref

import (
	"github.com/retro-framework/go-fingerprint/framework/packing"
)

// Store points a ref at a fingerprint, reporting whether the ref moved.
// Writing the fingerprint a ref already holds is not a change.
type Store interface {
	Write(string, packing.Fingerprint) (bool, error)
}

// Source resolves a ref name, unknown names wrap storage.ErrUnknownRef.
type Source interface {
	Retrieve(string) (packing.Fingerprint, error)
}

// DB reads and writes refs.
type DB interface {
	Store
	Source
}

// ListableDB is a DB which can also enumerate its refs. The map Ls
// returns is a snapshot, callers may keep or modify it.
type ListableDB interface {
	DB
	Ls() (map[string]packing.Fingerprint, error)
}
