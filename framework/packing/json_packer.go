package packing

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/canon"
	"github.com/retro-framework/go-fingerprint/framework/wire"
)

const encodingJSON = "json"

// NewJSONPacker returns a packer fingerprinting with h.
func NewJSONPacker(h *canon.Hasher) *JSONPacker {
	return &JSONPacker{h}
}

// JSONPacker packs values into envelopes addressed by their
// fingerprint. The envelope is a header naming the object type, the
// payload encoding and the payload length, the separator, and the
// payload:
//
//	value json 7\x00[1,2,3]
//
// The fingerprint is computed from the value, never from the envelope
// bytes, so it equals what canon would return for the same value.
type JSONPacker struct {
	hasher *canon.Hasher
}

func (jp *JSONPacker) Hasher() *canon.Hasher { return jp.hasher }

// Fingerprint computes the fingerprint of v without packing it.
func (jp *JSONPacker) Fingerprint(v canon.Value) (Fingerprint, error) {
	str, err := jp.hasher.HashValue(v)
	if err != nil {
		return Fingerprint{}, err
	}
	return NewFingerprint(jp.hasher.Algo(), str), nil
}

// PackValue packs v into an envelope and returns it with its fingerprint
// attached.
func (jp *JSONPacker) PackValue(v canon.Value) (HashedObject, error) {
	fp, err := jp.Fingerprint(v)
	if err != nil {
		return nil, errors.WithMessage(err, "json-pack: can't fingerprint value")
	}

	vB, err := wire.EncodeJSON(v)
	if err != nil {
		return nil, errors.WithMessage(err, "json-pack: can't encode value as json")
	}

	var payload bytes.Buffer
	payload.WriteString(fmt.Sprintf("%s %s %d", ObjectTypeValue, encodingJSON, len(vB)))
	payload.WriteString(HeaderContentSepRune)
	payload.Write(vB)

	return &PackedObject{payload: payload.Bytes(), fingerprint: fp}, nil
}

// UnpackValue reads an envelope written by PackValue.
func (jp *JSONPacker) UnpackValue(contents []byte) (canon.Value, error) {
	i := bytes.Index(contents, []byte(HeaderContentSepRune))
	if i < 0 {
		return nil, errors.Wrap(ErrEnvelopeScan, "no header separator")
	}
	var (
		header = strings.Fields(string(contents[:i]))
		body   = contents[i+len(HeaderContentSepRune):]
	)
	if len(header) != 3 {
		return nil, errors.Wrapf(ErrEnvelopeScan, "header %q", contents[:i])
	}
	if ObjectTypeName(header[0]) != ObjectTypeValue {
		return nil, errors.Wrapf(ErrUnknownObjectType, "%q", header[0])
	}
	if header[1] != encodingJSON {
		return nil, errors.Wrapf(ErrEnvelopeScan, "unsupported encoding %q", header[1])
	}
	n, err := strconv.Atoi(header[2])
	if err != nil || n != len(body) {
		return nil, errors.Wrapf(ErrEnvelopeScan, "payload length %q, have %d bytes", header[2], len(body))
	}
	v, err := wire.DecodeJSON(body)
	if err != nil {
		return nil, errors.WithMessage(err, "json-pack: can't decode payload")
	}
	return v, nil
}

// Verify unpacks obj and checks that its contents still fingerprint to
// the fingerprint it is stored under.
func (jp *JSONPacker) Verify(obj HashedObject) (canon.Value, error) {
	v, err := jp.UnpackValue(obj.Contents())
	if err != nil {
		return nil, err
	}
	fp, err := jp.Fingerprint(v)
	if err != nil {
		return nil, err
	}
	if fp != obj.Fingerprint() {
		return nil, errors.Wrapf(ErrFingerprintMismatch, "stored as %s, contents are %s", obj.Fingerprint(), fp)
	}
	return v, nil
}
