// Package config holds the flags shared by the fingerprint programs.
//
// Flags are parsed with github.com/namsral/flag, so every flag can also
// be given as an environment variable (-hashlen is FINGERPRINT_HASHLEN)
// or as a line in the file named by -config.
package config

import (
	"github.com/namsral/flag"
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/canon"
	"github.com/retro-framework/go-fingerprint/framework/packing"
)

// EnvPrefix is prepended to flag names to form environment variables.
const EnvPrefix = "FINGERPRINT"

// NewFlagSet returns a flag set reading the environment with EnvPrefix
// and accepting a -config file.
func NewFlagSet(name string, handling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSetWithEnvPrefix(name, EnvPrefix, handling)
	fs.String(flag.DefaultConfigFlagname, "", "path to config file")
	return fs
}

// HashFlags are the tunables of a canon.Hasher.
type HashFlags struct {
	HashLen  int
	Alphabet string
	Algo     string
	MaxDepth int
}

// RegisterHashFlags defines -hashlen, -alphabet, -algo and -max_depth on
// fs, defaulting to canon's defaults.
func RegisterHashFlags(fs *flag.FlagSet) *HashFlags {
	hf := &HashFlags{}
	fs.IntVar(&hf.HashLen, "hashlen", canon.DefaultHashLen, "length of the fingerprint in symbols")
	fs.StringVar(&hf.Alphabet, "alphabet", canon.DefaultAlphabet().String(), "symbols the fingerprint is written in")
	fs.StringVar(&hf.Algo, "algo", string(canon.DefaultAlgo), "digest algorithm, one of sha256, sha512, blake3")
	fs.IntVar(&hf.MaxDepth, "max_depth", 0, "reject values nested deeper than this, 0 for no limit")
	return hf
}

// NewHasher builds the hasher the flags describe. Alphabets whose
// fingerprints could not be parsed back are rejected.
func (hf HashFlags) NewHasher() (*canon.Hasher, error) {
	alphabet, err := canon.NewAlphabet(hf.Alphabet)
	if err != nil {
		return nil, errors.WithMessage(err, "config: -alphabet")
	}
	if err := packing.CheckAlphabet(alphabet); err != nil {
		return nil, errors.WithMessage(err, "config: -alphabet")
	}
	algo, err := canon.ParseAlgoName(hf.Algo)
	if err != nil {
		return nil, errors.WithMessage(err, "config: -algo")
	}
	return canon.New(
		canon.WithHashLen(hf.HashLen),
		canon.WithAlphabet(alphabet),
		canon.WithAlgo(algo),
		canon.WithMaxDepth(hf.MaxDepth),
	)
}
