package fs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/xerrors"

	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

var (
	ErrUnableToCreateBaseDir   = xerrors.New("fs: unable to create base dir")
	ErrUnableToCreateObjectDir = xerrors.New("fs: unable to create object dir")
	ErrUnableToWriteObject     = xerrors.New("fs: unable to write object")
	ErrUnableToReadObjectFile  = xerrors.New("fs: unable to read object file")
)

const objectsDir = "objects"

// ObjectStore keeps one deflated file per object below
// BasePath/objects/<algo>/<first two symbols>/<rest>.
type ObjectStore struct {
	BasePath string
}

func (s *ObjectStore) mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (s *ObjectStore) objPath(fp packing.Fingerprint) string {
	str := []rune(fp.Str)
	if len(str) <= 2 {
		return filepath.Join(s.BasePath, objectsDir, string(fp.AlgoName), string(str), "_")
	}
	return filepath.Join(s.BasePath, objectsDir, string(fp.AlgoName), string(str[0:2]), string(str[2:]))
}

func (s *ObjectStore) WritePacked(p packing.HashedObject) (int, error) {

	if err := s.mkdirAll(s.BasePath); err != nil {
		return 0, errors.Wrap(ErrUnableToCreateBaseDir, err.Error())
	}

	var (
		objPath = s.objPath(p.Fingerprint())
		objDir  = filepath.Dir(objPath)
	)

	if _, err := os.Stat(objPath); err == nil {
		return 0, nil
	}

	if err := s.mkdirAll(objDir); err != nil {
		return 0, errors.Wrap(ErrUnableToCreateObjectDir, err.Error())
	}

	b := storage.Deflate(p.Contents())

	// Write next to the final path and rename, readers never see a
	// partially written object.
	tmp, err := ioutil.TempFile(objDir, ".tmp-")
	if err != nil {
		return 0, errors.Wrap(ErrUnableToWriteObject, err.Error())
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return 0, errors.Wrap(ErrUnableToWriteObject, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrap(ErrUnableToWriteObject, err.Error())
	}
	if err := os.Rename(tmp.Name(), objPath); err != nil {
		return 0, errors.Wrap(ErrUnableToWriteObject, err.Error())
	}
	return len(b), nil
}

func (s *ObjectStore) RetrievePacked(str string) (packing.HashedObject, error) {
	fp, err := packing.ParseFingerprint(str)
	if err != nil {
		return nil, err
	}

	content, err := ioutil.ReadFile(s.objPath(fp))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(storage.ErrNoSuchObject, str)
	}
	if err != nil {
		return nil, errors.Wrap(ErrUnableToReadObjectFile, err.Error())
	}

	orig, err := storage.Inflate(content)
	if err != nil {
		return nil, err
	}
	return packing.NewPackedObject(fp, orig), nil
}

// Ls walks the object directory and returns every stored fingerprint.
func (s *ObjectStore) Ls() ([]packing.Fingerprint, error) {
	var (
		root = filepath.Join(s.BasePath, objectsDir)
		res  []packing.Fingerprint
	)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 {
			return nil
		}
		str := parts[1] + parts[2]
		if parts[2] == "_" {
			str = parts[1]
		}
		fp, err := packing.ParseFingerprint(parts[0] + ":" + str)
		if err != nil {
			return nil
		}
		res = append(res, fp)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "fs: listing objects")
	}
	return res, nil
}
