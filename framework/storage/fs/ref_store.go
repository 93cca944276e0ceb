package fs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/xerrors"

	"github.com/retro-framework/go-fingerprint/framework"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

var (
	ErrUnableToCreateRefDir = xerrors.New("fs: unable to create ref dir")
	ErrUnableToWriteRef     = xerrors.New("fs: unable to write ref")
	ErrUnableToReadRefFile  = xerrors.New("fs: unable to read ref file")
)

// RefStore keeps one file per ref, the path below BasePath is the ref
// name itself and the contents are the fingerprint's string form.
// Files which do not hold a valid ref are skipped by Ls and reported to
// Log when set.
type RefStore struct {
	BasePath string
	Log      framework.Logger
}

func (s *RefStore) logger() framework.Logger {
	if s.Log == nil {
		return framework.Noop{}
	}
	return s.Log
}

func (s *RefStore) mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (s *RefStore) Write(name string, fp packing.Fingerprint) (bool, error) {
	if err := ref.ValidName(name); err != nil {
		return false, err
	}

	var (
		refPath = filepath.Join(s.BasePath, filepath.FromSlash(name))
		refDir  = filepath.Dir(refPath)
	)

	// Check if we have to write the file, read it first
	existing, err := ioutil.ReadFile(refPath)
	switch {
	case err == nil:
		if string(existing) == fp.String() {
			return false, nil
		}
	case !os.IsNotExist(err):
		return false, errors.Wrap(ErrUnableToReadRefFile, err.Error())
	}

	if err := s.mkdirAll(refDir); err != nil {
		return false, errors.Wrap(ErrUnableToCreateRefDir, err.Error())
	}
	if err := ioutil.WriteFile(refPath, []byte(fp.String()), 0644); err != nil {
		return false, errors.Wrap(ErrUnableToWriteRef, err.Error())
	}
	return true, nil
}

func (s *RefStore) Retrieve(name string) (packing.Fingerprint, error) {
	if err := ref.ValidName(name); err != nil {
		return packing.Fingerprint{}, err
	}

	data, err := ioutil.ReadFile(filepath.Join(s.BasePath, filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		return packing.Fingerprint{}, errors.Wrap(storage.ErrUnknownRef, name)
	}
	if err != nil {
		return packing.Fingerprint{}, errors.Wrap(ErrUnableToReadRefFile, err.Error())
	}
	return packing.ParseFingerprint(strings.TrimSpace(string(data)))
}

func (s *RefStore) Ls() (map[string]packing.Fingerprint, error) {
	var (
		root = filepath.Join(s.BasePath, strings.TrimSuffix(ref.Prefix, "/"))
		res  = make(map[string]packing.Fingerprint)
	)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.BasePath, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		fp, err := s.Retrieve(name)
		if err != nil {
			s.logger().Warnf("fs: skipping %s while listing refs: %s", name, err)
			return nil
		}
		res[name] = fp
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "fs: listing refs")
	}
	return res, nil
}
