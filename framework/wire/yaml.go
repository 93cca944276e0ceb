package wire

import (
	"bytes"
	"io"
	"math/big"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/retro-framework/go-fingerprint/framework/canon"
)

// YAMLDecoder reads a stream of YAML documents separated by "---". The
// reserved single key mappings work as they do for JSON.
type YAMLDecoder struct {
	dec *yaml.Decoder
}

func NewYAMLDecoder(r io.Reader) *YAMLDecoder {
	return &YAMLDecoder{yaml.NewDecoder(r)}
}

// Decode returns the next value, io.EOF once the stream is exhausted.
func (d *YAMLDecoder) Decode() (canon.Value, error) {
	var n yamlNode
	if err := d.dec.Decode(&n); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "wire: can't decode yaml document")
	}
	if n.value == nil {
		return nil, errors.Wrap(ErrUnsupportedDocument, "null")
	}
	return n.value, nil
}

// DecodeYAML decodes the single document in b.
func DecodeYAML(b []byte) (canon.Value, error) {
	v, err := NewYAMLDecoder(bytes.NewReader(b)).Decode()
	if err == io.EOF {
		return nil, errors.Wrap(ErrUnsupportedDocument, "empty document")
	}
	return v, err
}

// yamlNode decodes one YAML node into a canon value. yaml.v2 resolves
// integers beyond 64 bits to floats, so float scalars are read a second
// time as raw text and integer literals are kept as integers. Null
// nodes never reach UnmarshalYAML and leave value nil.
type yamlNode struct {
	value canon.Value
}

func (n *yamlNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var seq []yamlNode
	err := unmarshal(&seq)
	if err == nil {
		s := make(canon.Sequence, len(seq))
		for i, elem := range seq {
			if elem.value == nil {
				return errors.Wrapf(ErrUnsupportedDocument, "element %d: null", i)
			}
			s[i] = elem.value
		}
		n.value = s
		return nil
	}
	if !isTypeError(err) {
		return err
	}

	var m map[string]yamlNode
	err = unmarshal(&m)
	if err == nil {
		v, err := reservedYAML(m)
		if err != nil {
			return err
		}
		n.value = v
		return nil
	}
	if !isTypeError(err) {
		return err
	}

	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return errors.Wrap(ErrUnsupportedDocument, err.Error())
	}
	if _, ok := raw.(float64); ok {
		var text string
		if err := unmarshal(&text); err == nil {
			if i, ok := new(big.Int).SetString(text, 0); ok {
				n.value = canon.Integer{Int: i}
				return nil
			}
		}
	}
	v, err := yamlScalar(raw)
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

func isTypeError(err error) bool {
	_, ok := err.(*yaml.TypeError)
	return ok
}

func yamlScalar(raw interface{}) (canon.Value, error) {
	switch t := raw.(type) {
	case string:
		return canon.Text(t), nil
	case int:
		return canon.Int(int64(t)), nil
	case int64:
		return canon.Int(t), nil
	case uint64:
		return canon.Uint(t), nil
	case float64:
		return canon.Float(t), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedDocument, "%T", raw)
}

// reservedYAML also takes unquoted numbers, YAML resolves "$float: .inf"
// or "$int: 5" before we get to see the scalar.
func reservedYAML(m map[string]yamlNode) (canon.Value, error) {
	if len(m) != 1 {
		return nil, errors.Wrap(ErrUnsupportedDocument, "mappings must have exactly one reserved key")
	}
	var (
		key  string
		node yamlNode
	)
	for key, node = range m {
	}
	switch t := node.value.(type) {
	case canon.Text:
		return reservedAtom(key, string(t))
	case canon.Integer:
		switch key {
		case keyInt:
			return t, nil
		case keyFloat:
			f, _ := new(big.Float).SetInt(t.Int).Float64()
			return canon.Float(f), nil
		}
	case canon.Float:
		if key == keyFloat {
			return t, nil
		}
	}
	if key != keyInt && key != keyFloat && key != keyBytes && key != keyUUID {
		return nil, errors.Wrapf(ErrUnsupportedDocument, "unknown key %q", key)
	}
	return nil, errors.Wrapf(ErrUnsupportedDocument, "%s: unexpected %T", key, node.value)
}
