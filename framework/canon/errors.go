package canon

import (
	"fmt"

	"golang.org/x/xerrors"
)

var (
	ErrUnsupportedType = xerrors.New("canon: unsupported type")
	ErrInvalidInput    = xerrors.New("canon: invalid input")
)

// UnsupportedTypeError is returned whenever a value (or a value nested
// somewhere inside a sequence) has no canonical encoding. Type names the
// offending Go type.
type UnsupportedTypeError struct {
	Type string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("canon: unsupported type %s", e.Type)
}

// Is lets callers match any UnsupportedTypeError against
// ErrUnsupportedType with xerrors.Is.
func (e UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// Error describes an operation which was asked to work on input outside
// of its domain (negative integers for the unsigned codec, an invalid
// alphabet, etc).
type Error struct {
	Op  string
	Err error
}

func (e Error) Error() string {
	return fmt.Sprintf("canon: op: %q err: %q", e.Op, e.Err)
}

func (e Error) Unwrap() error { return e.Err }

// Is matches ErrInvalidInput, every Error is an invalid input error.
func (e Error) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(op, format string, args ...interface{}) error {
	return Error{Op: op, Err: fmt.Errorf(format, args...)}
}
