// Package object describes stores of packed values addressed by their
// fingerprint.
package object

import (
	"github.com/retro-framework/go-fingerprint/framework/packing"
)

// Store writes a packed object and returns how many bytes it occupies
// at rest. Writing an object which is already present stores nothing
// and returns 0 without an error.
type Store interface {
	WritePacked(packing.HashedObject) (int, error)
}

// Source looks an object up by the string form of its fingerprint
// (sha512:mkhyglxf...). Missing objects wrap storage.ErrNoSuchObject.
type Source interface {
	RetrievePacked(string) (packing.HashedObject, error)
}

// ListableSource enumerates stored fingerprints in no particular order.
type ListableSource interface {
	Ls() ([]packing.Fingerprint, error)
}

type DB interface {
	Store
	Source
}

// ListableDB is a DB which can also enumerate its contents.
type ListableDB interface {
	DB
	ListableSource
}
