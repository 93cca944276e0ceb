package packing

import (
	"bytes"
	"strings"
)

// PackedObject is an envelope in memory, header and payload as written
// by the Packer. Stores may compress it at rest.
type PackedObject struct {
	payload     []byte
	fingerprint Fingerprint
}

// NewPackedObject wraps contents read back from a store under the
// fingerprint they were stored with.
func NewPackedObject(fp Fingerprint, contents []byte) *PackedObject {
	return &PackedObject{payload: contents, fingerprint: fp}
}

func (po *PackedObject) Contents() []byte         { return po.payload }
func (po *PackedObject) Fingerprint() Fingerprint { return po.fingerprint }

// Type reads the object type from the envelope header, an envelope
// without a header has the empty type.
func (po *PackedObject) Type() ObjectTypeName {
	i := bytes.Index(po.payload, []byte(HeaderContentSepRune))
	if i < 0 {
		return ""
	}
	fields := strings.Fields(string(po.payload[:i]))
	if len(fields) == 0 {
		return ""
	}
	return ObjectTypeName(fields[0])
}
