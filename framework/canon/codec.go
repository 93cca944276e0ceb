package canon

import (
	"math/big"
)

// minIntWidth is the smallest number of bytes EncodeInt ever produces.
const minIntWidth = 4

// EncodeInt encodes a non-negative integer big-endian. The width in bytes
// is max(4, n.BitLen()); the bit length is used as a byte count which
// over-allocates, but the width is part of the hashed byte format and
// must not change.
func EncodeInt(n *big.Int) ([]byte, error) {
	if n == nil {
		return nil, invalid("EncodeInt", "nil integer")
	}
	if n.Sign() < 0 {
		return nil, invalid("EncodeInt", "negative integer %s", n.String())
	}
	width := n.BitLen()
	if width < minIntWidth {
		width = minIntWidth
	}
	var (
		b   = make([]byte, width)
		mag = n.Bytes()
	)
	copy(b[width-len(mag):], mag)
	return b, nil
}

// EncodeUint64 is EncodeInt for values that fit a machine word, it can
// not fail.
func EncodeUint64(n uint64) []byte {
	b, _ := EncodeInt(new(big.Int).SetUint64(n))
	return b
}

// DecodeInt is the inverse of EncodeInt, leading zero bytes are ignored
// so any big-endian unsigned encoding is accepted.
func DecodeInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
