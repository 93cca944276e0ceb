package wire

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/xerrors"

	"github.com/retro-framework/go-fingerprint/framework/canon"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = xerrors.New("wire: unknown document format")

// Decoder reads a stream of documents, Decode returns io.EOF after the
// last one.
type Decoder interface {
	Decode() (canon.Value, error)
}

// NewDecoder returns the decoder for format, "json" or "yaml".
func NewDecoder(format string, r io.Reader) (Decoder, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONDecoder(r), nil
	case FormatYAML, "yml":
		return NewYAMLDecoder(r), nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}

// FormatFor guesses the format from a file name or media type, falling
// back to JSON.
func FormatFor(name string) string {
	name = strings.ToLower(name)
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") || strings.Contains(name, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeAll reads every document d holds.
func DecodeAll(d Decoder) ([]canon.Value, error) {
	var res []canon.Value
	for {
		v, err := d.Decode()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "document %d", len(res)+1)
		}
		res = append(res, v)
	}
}
