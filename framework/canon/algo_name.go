package canon

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"
)

// AlgoName names the digest primitive a fingerprint was computed with.
type AlgoName string

const (
	AlgoSHA256 AlgoName = "sha256"
	AlgoSHA512 AlgoName = "sha512"
	AlgoBLAKE3 AlgoName = "blake3"
)

// DefaultAlgo is the digest used when none is configured.
const DefaultAlgo = AlgoSHA512

// HashFn returns a constructor for fresh digests of the named algorithm.
func (n AlgoName) HashFn() (func() hash.Hash, error) {
	switch n {
	case AlgoSHA256:
		return sha256.New, nil
	case AlgoSHA512:
		return sha512.New, nil
	case AlgoBLAKE3:
		return func() hash.Hash { return blake3.New() }, nil
	default:
		return nil, invalid("HashFn", "unknown digest algorithm %q", string(n))
	}
}

// ParseAlgoName accepts the names of the supported digests.
func ParseAlgoName(s string) (AlgoName, error) {
	n := AlgoName(s)
	if _, err := n.HashFn(); err != nil {
		return "", err
	}
	return n, nil
}
