package canon

import (
	"encoding/hex"
	"hash"
	"strings"
)

// DefaultHashLen is the length of fingerprints when none is configured.
const DefaultHashLen = 32

// Hasher turns values into fingerprints. A Hasher holds configuration
// only, every call builds its own digest, so one Hasher may be shared by
// any number of goroutines.
type Hasher struct {
	hashLen  int
	alphabet Alphabet
	algo     AlgoName
	maxDepth int
	hashFn   func() hash.Hash
}

// Option configures a Hasher.
type Option func(*Hasher)

func WithHashLen(n int) Option { return func(h *Hasher) { h.hashLen = n } }

func WithAlphabet(a Alphabet) Option { return func(h *Hasher) { h.alphabet = a } }

func WithAlgo(n AlgoName) Option { return func(h *Hasher) { h.algo = n } }

// WithMaxDepth limits how deeply sequences may nest, 0 (the default)
// means unlimited.
func WithMaxDepth(n int) Option { return func(h *Hasher) { h.maxDepth = n } }

// New builds a Hasher, defaults are 32 symbols over DefaultAlphabet using
// DefaultAlgo.
func New(opts ...Option) (*Hasher, error) {
	h := &Hasher{
		hashLen:  DefaultHashLen,
		alphabet: DefaultAlphabet(),
		algo:     DefaultAlgo,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.hashLen < 1 {
		return nil, invalid("New", "hash length must be positive, got %d", h.hashLen)
	}
	if !h.alphabet.valid() {
		return nil, invalid("New", "alphabet has fewer than 2 symbols")
	}
	if h.maxDepth < 0 {
		return nil, invalid("New", "max depth must not be negative, got %d", h.maxDepth)
	}
	hashFn, err := h.algo.HashFn()
	if err != nil {
		return nil, err
	}
	h.hashFn = hashFn
	return h, nil
}

func (h *Hasher) HashLen() int       { return h.hashLen }
func (h *Hasher) Alphabet() Alphabet { return h.alphabet }
func (h *Hasher) Algo() AlgoName     { return h.algo }

// Hash lifts v with From and fingerprints it.
func (h *Hasher) Hash(v interface{}) (string, error) {
	val, err := From(v)
	if err != nil {
		return "", err
	}
	return h.HashValue(val)
}

// HashValue fingerprints v. Empty text and empty bytes share the
// sentinel fingerprint made of the first alphabet symbol, everything
// else is digested, rebased and cut to length. A rebased digest shorter
// than the configured length is right-padded with the first symbol.
func (h *Hasher) HashValue(v Value) (string, error) {
	if isEmptyString(v) {
		return h.pad(""), nil
	}

	hexDigest, err := h.HexDigest(v)
	if err != nil {
		return "", err
	}
	rebased, err := Rebase(hexDigest, h.alphabet, h.alphabet.Len())
	if err != nil {
		return "", err
	}
	return h.pad(truncate(rebased, h.hashLen)), nil
}

// HexDigest returns the hex encoded digest of v's canonical byte stream,
// before rebasing. The empty string sentinel does not apply here.
func (h *Hasher) HexDigest(v Value) (string, error) {
	d := h.hashFn()
	if err := Update(d, v, h.maxDepth); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

func (h *Hasher) pad(s string) string {
	n := len([]rune(s))
	if n >= h.hashLen {
		return s
	}
	return s + strings.Repeat(string(h.alphabet.Symbol(0)), h.hashLen-n)
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func isEmptyString(v Value) bool {
	switch a := v.(type) {
	case Text:
		return len(a) == 0
	case Bytes:
		return len(a) == 0
	}
	return false
}

// HashData fingerprints v with hashlen symbols of alphabet using
// DefaultAlgo.
func HashData(v interface{}, hashlen int, alphabet Alphabet) (string, error) {
	h, err := New(WithHashLen(hashlen), WithAlphabet(alphabet))
	if err != nil {
		return "", err
	}
	return h.Hash(v)
}
