// Command fingerprint prints the canonical fingerprint of JSON or YAML
// documents read from the named files, or from stdin.
//
//	$ echo '[1, 2, ["a", 2, "c"]]' | fingerprint
//	sha512:mkhyglxfnhzjnxyyixdqibwwrftinkgh  -
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/namsral/flag"
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework"
	"github.com/retro-framework/go-fingerprint/framework/canon"
	"github.com/retro-framework/go-fingerprint/framework/config"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/wire"
)

const (
	exitOK = iota
	exitMismatch
	exitUsage
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type source struct {
	name   string
	format string
	r      io.Reader
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {

	var (
		flags     = config.NewFlagSet("fingerprint", flag.ContinueOnError)
		hashFlags = config.RegisterHashFlags(flags)
		format    = flags.String("format", "", "document format, json or yaml, guessed from the file name when empty")
		verify    = flags.String("verify", "", "compare the single document read against this fingerprint")
		hexOut    = flags.Bool("hex", false, "print the raw hex digest instead of the fingerprint")
		verbose   = flags.Bool("verbose", false, "log debug messages")
	)
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	logger := &framework.Stdout{Out: stderr, Verbose: *verbose}

	hasher, err := hashFlags.NewHasher()
	if err != nil {
		logger.Error(err)
		return exitUsage
	}
	packer := packing.NewJSONPacker(hasher)

	var sources []source
	if flags.NArg() == 0 {
		sources = append(sources, source{"-", *format, stdin})
	}
	for _, name := range flags.Args() {
		f, err := os.Open(name)
		if err != nil {
			logger.Error(err)
			return exitUsage
		}
		defer f.Close()
		sources = append(sources, source{name, *format, f})
	}

	type result struct {
		source string
		value  canon.Value
	}
	var results []result
	for _, src := range sources {
		if src.format == "" {
			src.format = wire.FormatFor(src.name)
		}
		d, err := wire.NewDecoder(src.format, src.r)
		if err != nil {
			logger.Error(err)
			return exitUsage
		}
		vals, err := wire.DecodeAll(d)
		if err != nil {
			logger.Error(errors.WithMessage(err, src.name))
			return exitMismatch
		}
		logger.Debugf("%s: %d documents as %s", src.name, len(vals), src.format)
		for _, v := range vals {
			results = append(results, result{src.name, v})
		}
	}

	if *verify != "" {
		want, err := packing.ParseFingerprint(*verify)
		if err != nil {
			logger.Error(err)
			return exitUsage
		}
		if len(results) != 1 {
			logger.Errorf("-verify needs exactly one document, read %d", len(results))
			return exitUsage
		}
		got, err := packer.Fingerprint(results[0].value)
		if err != nil {
			logger.Error(err)
			return exitMismatch
		}
		if got != want {
			fmt.Fprintf(stdout, "MISMATCH %s  %s\n", got, results[0].source)
			return exitMismatch
		}
		fmt.Fprintf(stdout, "OK %s  %s\n", got, results[0].source)
		return exitOK
	}

	for _, res := range results {
		var line string
		if *hexOut {
			line, err = hasher.HexDigest(res.value)
		} else {
			var fp packing.Fingerprint
			fp, err = packer.Fingerprint(res.value)
			line = fp.String()
		}
		if err != nil {
			logger.Error(errors.WithMessage(err, res.source))
			return exitMismatch
		}
		fmt.Fprintf(stdout, "%s  %s\n", line, res.source)
	}
	return exitOK
}
