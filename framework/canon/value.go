package canon

import (
	"math/big"

	"github.com/google/uuid"
)

// Value is a node in a hashable value tree. The set of implementations
// is closed, only the types in this file satisfy it. Atoms are Bytes,
// Text, Integer, Float and UniqueID, the only container is Sequence.
type Value interface {
	canonical()
}

// Bytes is a raw byte string, it hashes exactly like the Text holding
// the same bytes.
type Bytes []byte

// Text is a string, hashed as its UTF-8 bytes.
type Text string

// Integer is an arbitrary precision signed integer. The zero Integer
// (nil Int) is treated as 0.
type Integer struct {
	Int *big.Int
}

// Float is hashed by its shortest round-trip decimal text, never by its
// bit pattern.
type Float float64

// UniqueID is a 128 bit identifier, hashed as its 16 big-endian bytes.
type UniqueID uuid.UUID

// Sequence is an ordered list of values. Only order and content carry
// weight, what container the elements came from does not.
type Sequence []Value

func (Bytes) canonical()    {}
func (Text) canonical()     {}
func (Integer) canonical()  {}
func (Float) canonical()    {}
func (UniqueID) canonical() {}
func (Sequence) canonical() {}

// Int returns an Integer holding n.
func Int(n int64) Integer {
	return Integer{big.NewInt(n)}
}

// Uint returns an Integer holding n.
func Uint(n uint64) Integer {
	return Integer{new(big.Int).SetUint64(n)}
}

// BigInt returns an Integer holding a copy of n.
func BigInt(n *big.Int) Integer {
	return Integer{new(big.Int).Set(n)}
}

func (i Integer) big() *big.Int {
	if i.Int == nil {
		return new(big.Int)
	}
	return i.Int
}

// Seq is shorthand for building a Sequence.
func Seq(vs ...Value) Sequence {
	return Sequence(vs)
}
