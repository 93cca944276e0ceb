package packing

import "golang.org/x/xerrors"

var (
	ErrBadFingerprint      = xerrors.New("packing: bad fingerprint")
	ErrEnvelopeScan        = xerrors.New("packing: err scanning envelope")
	ErrUnknownObjectType   = xerrors.New("packing: unknown object type")
	ErrFingerprintMismatch = xerrors.New("packing: fingerprint does not match contents")
)

var ErrUnaddressableAlphabet = xerrors.New("packing: alphabet symbol can't appear in a fingerprint")
