// +build !redis

package redis

import (
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/object"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

func NewObjectStore(addr string) (object.ListableDB, error) {
	return nil, errors.Wrap(storage.ErrBackendUnavailable, "built without tag `redis'")
}

func NewRefStore(addr string) (ref.ListableDB, error) {
	return nil, errors.Wrap(storage.ErrBackendUnavailable, "built without tag `redis'")
}
