package canon

import (
	"unicode/utf8"
)

var defaultAlphabet = Alphabet{symbols: []rune("abcdefghijklmnopqrstuvwxyz")}

// DefaultAlphabet returns the 26 lowercase Latin letters.
func DefaultAlphabet() Alphabet { return defaultAlphabet }

// Alphabet is an ordered set of distinct symbols, its length is the base
// fingerprints are rendered in. The zero Alphabet is not usable, build
// one with NewAlphabet.
type Alphabet struct {
	symbols []rune
}

// NewAlphabet validates symbols: at least two runes, none repeated,
// valid UTF-8.
func NewAlphabet(symbols string) (Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return Alphabet{}, invalid("NewAlphabet", "alphabet is not valid utf-8")
	}
	var (
		runes = []rune(symbols)
		seen  = make(map[rune]struct{}, len(runes))
	)
	if len(runes) < 2 {
		return Alphabet{}, invalid("NewAlphabet", "alphabet needs at least 2 symbols, got %d", len(runes))
	}
	for _, r := range runes {
		if _, dup := seen[r]; dup {
			return Alphabet{}, invalid("NewAlphabet", "duplicate symbol %q in alphabet", r)
		}
		seen[r] = struct{}{}
	}
	return Alphabet{symbols: runes}, nil
}

// MustAlphabet is NewAlphabet for package level vars, it panics on
// error.
func MustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alphabet) Len() int { return len(a.symbols) }

// Symbol returns the i'th symbol.
func (a Alphabet) Symbol(i int) rune { return a.symbols[i] }

func (a Alphabet) String() string { return string(a.symbols) }

// Contains reports whether every rune of s is in the alphabet.
func (a Alphabet) Contains(s string) bool {
	for _, r := range s {
		if a.index(r) < 0 {
			return false
		}
	}
	return true
}

func (a Alphabet) index(r rune) int {
	for i, s := range a.symbols {
		if s == r {
			return i
		}
	}
	return -1
}

func (a Alphabet) valid() bool { return len(a.symbols) >= 2 }
