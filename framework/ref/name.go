package ref

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/zyedidia/glob"
	"golang.org/x/xerrors"
)

// Prefix every ref name must start with.
const Prefix = "refs/"

var ErrInvalidName = xerrors.New("ref: invalid ref name")

// ValidName checks that name is "refs/" followed by one or more non
// empty path segments, none of them "." or "..", without whitespace or
// backslashes. Filesystem stores map names straight onto paths.
func ValidName(name string) error {
	if !strings.HasPrefix(name, Prefix) {
		return errors.Wrapf(ErrInvalidName, "%q does not start with %s", name, Prefix)
	}
	if strings.ContainsAny(name, " \t\r\n\\\x00") {
		return errors.Wrapf(ErrInvalidName, "%q contains whitespace or backslashes", name)
	}
	for _, seg := range strings.Split(strings.TrimPrefix(name, Prefix), "/") {
		if seg == "" || seg == "." || seg == ".." {
			return errors.Wrapf(ErrInvalidName, "%q has an empty or relative segment", name)
		}
	}
	return nil
}

// Match returns the names matching the shell style glob pattern,
// sorted. An empty pattern matches everything.
func Match(pattern string, names []string) ([]string, error) {
	var res []string
	if pattern == "" {
		res = append(res, names...)
		sort.Strings(res)
		return res, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "can't compile glob pattern")
	}
	for _, name := range names {
		if g.MatchString(name) {
			res = append(res, name)
		}
	}
	sort.Strings(res)
	return res, nil
}
