package wire

import "golang.org/x/xerrors"

var (
	ErrUnsupportedDocument = xerrors.New("wire: unsupported document")
)
