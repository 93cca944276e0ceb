package packing

// HeaderContentSepRune separates an envelope header from its payload.
const HeaderContentSepRune = "\u0000"

// ObjectTypeName is the first word of every packed envelope.
type ObjectTypeName string

const ObjectTypeValue ObjectTypeName = "value"

// HashedObject is a packed envelope and the fingerprint of the value
// inside it. Stores key objects by that fingerprint, never by a digest
// of the envelope bytes.
type HashedObject interface {
	Type() ObjectTypeName
	Contents() []byte
	Fingerprint() Fingerprint
}
