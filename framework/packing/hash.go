package packing

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/canon"
)

// Fingerprint is a canonical fingerprint together with the name of the
// digest it was computed with. Its string form "sha512:mkhyglxf..." is
// what the object and ref stores key on.
type Fingerprint struct {
	AlgoName canon.AlgoName
	Str      string
}

func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", f.String())), nil
}

func (f *Fingerprint) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(ErrBadFingerprint, err.Error())
	}
	fp, err := ParseFingerprint(s)
	if err != nil {
		return err
	}
	*f = fp
	return nil
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%s:%s", f.AlgoName, f.Str)
}

func (f Fingerprint) ShortStr() string {
	if len(f.Str) <= 8 {
		return f.String()
	}
	return fmt.Sprintf("%s:%s", f.AlgoName, f.Str[0:8])
}

func (f Fingerprint) IsZero() bool {
	return f.AlgoName == "" && f.Str == ""
}

func NewFingerprint(n canon.AlgoName, s string) Fingerprint {
	return Fingerprint{n, s}
}

// ParseFingerprint reads the "algo:fingerprint" form produced by String.
func ParseFingerprint(str string) (Fingerprint, error) {
	parts := strings.SplitN(str, ":", 2)
	if len(parts) != 2 || len(parts[1]) == 0 {
		return Fingerprint{}, errors.Wrapf(ErrBadFingerprint, "%q", str)
	}
	algo, err := canon.ParseAlgoName(parts[0])
	if err != nil {
		return Fingerprint{}, errors.Wrapf(ErrBadFingerprint, "%q: %s", str, err)
	}
	if strings.ContainsAny(parts[1], ":/\\") {
		return Fingerprint{}, errors.Wrapf(ErrBadFingerprint, "%q", str)
	}
	return NewFingerprint(algo, parts[1]), nil
}

// CheckAlphabet rejects alphabets whose fingerprints would not survive
// the "algo:fingerprint" form or being used as a store path: the algo
// separator, path separators, dots, whitespace and control characters
// are not allowed as symbols.
func CheckAlphabet(a canon.Alphabet) error {
	for i := 0; i < a.Len(); i++ {
		r := a.Symbol(i)
		if r == ':' || r == '/' || r == '\\' || r == '.' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return errors.Wrapf(ErrUnaddressableAlphabet, "%q", r)
		}
	}
	return nil
}
