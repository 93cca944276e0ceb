package canon

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Tag is prepended to every atom payload so that equal payloads of
// different types ("1" and 1) never produce the same bytes.
type Tag string

const (
	TagText     Tag = "TXT"
	TagUniqueID Tag = "UUID"
	TagInteger  Tag = "INT"
	TagFloat    Tag = "FLT"
	TagSequence Tag = "ITER"
)

// Separator is written before every element of a sequence.
const Separator = "SEP"

const (
	signPositive byte = 0x00
	signNegative byte = 0x01
)

// EncodeAtom returns the tag and canonical payload for a leaf value.
// Sequences are not atoms, Update is responsible for them.
func EncodeAtom(v Value) (Tag, []byte, error) {
	switch a := v.(type) {
	case Bytes:
		return TagText, []byte(a), nil
	case Text:
		return TagText, []byte(a), nil
	case UniqueID:
		b := make([]byte, len(a))
		copy(b, a[:])
		return TagUniqueID, b, nil
	case Integer:
		return TagInteger, encodeSigned(a), nil
	case Float:
		return TagFloat, []byte(FormatFloat(float64(a))), nil
	default:
		return "", nil, UnsupportedTypeError{Type: typeName(v)}
	}
}

// encodeSigned writes one sign byte followed by EncodeInt(|n|).
func encodeSigned(i Integer) []byte {
	var (
		n    = i.big()
		sign = signPositive
		mag  = n
	)
	if n.Sign() < 0 {
		sign = signNegative
		mag = new(big.Int).Abs(n)
	}
	b, _ := EncodeInt(mag)
	return append([]byte{sign}, b...)
}

// FormatFloat renders f as the shortest decimal string which parses back
// to f. Exponents between -4 and 15 use positional notation and always
// keep a fractional part ("1.0"), everything else uses scientific
// notation with a signed, at least two digit exponent ("1e+16").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	var sign string
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// "d.ddde±XX", shortest digits.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr := s, "0"
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mant, expStr = s[:i], s[i+1:]
	}
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		panic(fmt.Sprintf("canon: unexpected float format %q", s))
	}
	digits := strings.Replace(mant, ".", "", 1)

	if exp < -4 || exp >= 16 {
		var b strings.Builder
		b.WriteString(sign)
		b.WriteByte(digits[0])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if exp < 0 {
			b.WriteByte('-')
			exp = -exp
		} else {
			b.WriteByte('+')
		}
		if exp < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(exp))
		return b.String()
	}

	point := exp + 1 // digits before the decimal point
	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}

func typeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
