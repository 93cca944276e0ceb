package storage

import (
	"bytes"
	"compress/zlib"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Deflate compresses an object's contents the way every backend keeps
// them at rest.
func Deflate(contents []byte) []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	w.Write(contents)
	w.Close()
	return b.Bytes()
}

// Inflate reverses Deflate.
func Inflate(stored []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, errors.Wrap(ErrUnableToInflateObject, err.Error())
	}
	defer r.Close()
	orig, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnableToInflateObject, err.Error())
	}
	return orig, nil
}
