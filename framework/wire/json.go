// Package wire maps JSON and YAML documents onto canon values and back.
//
// Strings are text, integer literals are integers of any size, other
// numbers are floats and arrays are sequences. Atoms JSON has no
// literal for are written as objects with exactly one reserved key:
//
//	{"$bytes": "aGVsbG8="}   base64 (std encoding) byte string
//	{"$uuid": "1234...5678"} unique id
//	{"$float": "inf"}        inf, -inf or nan, or a float which would
//	                         otherwise read back as an integer
//	{"$int": "123"}          decimal integer, for YAML where large
//	                         integer scalars resolve to floats
//
// Any other object, booleans and null are unsupported.
package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/canon"
)

const (
	keyBytes = "$bytes"
	keyUUID  = "$uuid"
	keyFloat = "$float"
	keyInt   = "$int"
)

// JSONDecoder reads a stream of JSON documents, one value each.
type JSONDecoder struct {
	dec *json.Decoder
}

func NewJSONDecoder(r io.Reader) *JSONDecoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &JSONDecoder{dec}
}

// Decode returns the next value, io.EOF once the stream is exhausted.
func (d *JSONDecoder) Decode() (canon.Value, error) {
	var doc interface{}
	if err := d.dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "wire: can't decode json document")
	}
	return fromJSON(doc)
}

// DecodeJSON decodes the single document in b.
func DecodeJSON(b []byte) (canon.Value, error) {
	v, err := NewJSONDecoder(bytes.NewReader(b)).Decode()
	if err == io.EOF {
		return nil, errors.Wrap(ErrUnsupportedDocument, "empty document")
	}
	return v, err
}

func fromJSON(doc interface{}) (canon.Value, error) {
	switch t := doc.(type) {
	case string:
		return canon.Text(t), nil
	case json.Number:
		return number(string(t))
	case []interface{}:
		seq := make(canon.Sequence, len(t))
		for i, elem := range t {
			v, err := fromJSON(elem)
			if err != nil {
				return nil, errors.WithMessagef(err, "element %d", i)
			}
			seq[i] = v
		}
		return seq, nil
	case map[string]interface{}:
		return reserved(t)
	case nil:
		return nil, errors.Wrap(ErrUnsupportedDocument, "null")
	default:
		return nil, errors.Wrapf(ErrUnsupportedDocument, "%T", doc)
	}
}

// number reads integer literals as integers, everything else as float.
func number(lit string) (canon.Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		n, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedDocument, "bad integer %q", lit)
		}
		return canon.Integer{Int: n}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedDocument, "bad float %q", lit)
	}
	return canon.Float(f), nil
}

func reserved(obj map[string]interface{}) (canon.Value, error) {
	if len(obj) != 1 {
		return nil, errors.Wrap(ErrUnsupportedDocument, "objects must have exactly one reserved key")
	}
	var (
		key string
		raw interface{}
	)
	for key, raw = range obj {
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDocument, "%s expects a string", key)
	}
	return reservedAtom(key, s)
}

func reservedAtom(key, s string) (canon.Value, error) {
	switch key {
	case keyBytes:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Wrapf(ErrUnsupportedDocument, "%s: %s", keyBytes, err)
		}
		return canon.Bytes(b), nil
	case keyUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(ErrUnsupportedDocument, "%s: %s", keyUUID, err)
		}
		return canon.UniqueID(id), nil
	case keyInt:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedDocument, "%s: bad integer %q", keyInt, s)
		}
		return canon.Integer{Int: n}, nil
	case keyFloat:
		f, err := parseFloat(s)
		if err != nil {
			return nil, err
		}
		return canon.Float(f), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDocument, "unknown key %q", key)
	}
}

func parseFloat(s string) (float64, error) {
	switch s {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedDocument, "%s: bad float %q", keyFloat, s)
	}
	return f, nil
}

// EncodeJSON renders v in the form DecodeJSON reads, so that
// DecodeJSON(EncodeJSON(v)) hashes like v.
func EncodeJSON(v canon.Value) ([]byte, error) {
	var b bytes.Buffer
	if err := encodeJSON(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodeJSON(b *bytes.Buffer, v canon.Value) error {
	switch t := v.(type) {
	case canon.Text:
		if !utf8.ValidString(string(t)) {
			// Text and Bytes hash alike, bytes survive the round trip.
			return writeReserved(b, keyBytes, base64.StdEncoding.EncodeToString([]byte(t)))
		}
		return writeJSONString(b, string(t))
	case canon.Bytes:
		return writeReserved(b, keyBytes, base64.StdEncoding.EncodeToString(t))
	case canon.UniqueID:
		return writeReserved(b, keyUUID, uuid.UUID(t).String())
	case canon.Integer:
		if t.Int == nil {
			b.WriteString("0")
			return nil
		}
		b.WriteString(t.Int.String())
		return nil
	case canon.Float:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return writeReserved(b, keyFloat, canon.FormatFloat(f))
		}
		// FormatFloat always keeps a '.' or an exponent, so the literal
		// reads back as a float.
		b.WriteString(canon.FormatFloat(f))
		return nil
	case canon.Sequence:
		b.WriteByte('[')
		for i, elem := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeJSON(b, elem); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	default:
		return canon.UnsupportedTypeError{Type: typeName(v)}
	}
}

func writeJSONString(b *bytes.Buffer, s string) error {
	enc, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "wire: can't marshal string")
	}
	b.Write(enc)
	return nil
}

func writeReserved(b *bytes.Buffer, key, val string) error {
	b.WriteString(`{"` + key + `":`)
	if err := writeJSONString(b, val); err != nil {
		return err
	}
	b.WriteByte('}')
	return nil
}

func typeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
