package canon

import (
	"math/big"
	"strings"
)

// Rebase reads hexDigest as one non-negative base 16 integer and renders
// it in the given base using the alphabet's first base symbols.
//
// Digits are emitted least significant first. Fingerprints are
// truncated prefixes of this string, so the order is part of every
// fingerprint ever produced and must never change. Zero renders as the
// alphabet's first symbol.
func Rebase(hexDigest string, alphabet Alphabet, base int) (string, error) {
	if !alphabet.valid() {
		return "", invalid("Rebase", "alphabet has fewer than 2 symbols")
	}
	if base < 2 || base > alphabet.Len() {
		return "", invalid("Rebase", "base %d outside [2, %d]", base, alphabet.Len())
	}
	x, ok := new(big.Int).SetString(hexDigest, 16)
	if !ok || x.Sign() < 0 {
		return "", invalid("Rebase", "%q is not a hex digest", hexDigest)
	}
	if x.Sign() == 0 {
		return string(alphabet.Symbol(0)), nil
	}

	var (
		b   strings.Builder
		div = big.NewInt(int64(base))
		mod = new(big.Int)
	)
	for x.Sign() > 0 {
		x.QuoRem(x, div, mod)
		b.WriteRune(alphabet.Symbol(int(mod.Int64())))
	}
	return b.String(), nil
}
