// Package storage holds what the object and ref store backends share.
// The backends themselves live in the memory, fs and redis packages.
package storage

import (
	"golang.org/x/xerrors"
)

var (
	ErrNoSuchObject          = xerrors.New("storage: no such object in object database")
	ErrUnableToInflateObject = xerrors.New("storage: error running zlib inflate")
	ErrUnknownRef            = xerrors.New("storage: ref unknown")
	ErrBackendUnavailable    = xerrors.New("storage: backend unavailable")
)
