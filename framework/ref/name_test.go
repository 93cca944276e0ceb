package ref

import (
	"testing"

	test "github.com/retro-framework/go-fingerprint/framework/test_helper"
)

func Test_ValidName(t *testing.T) {
	for _, name := range []string{"refs/a", "refs/fixtures/users", "refs/a.b/c-d_e"} {
		t.Run("accepts "+name, func(t *testing.T) {
			test.H(t).IsNil(ValidName(name))
		})
	}
	for _, name := range []string{"", "HEAD", "refs/", "refs//a", "refs/../etc", "refs/a/.", "refs/a b", `refs\a`} {
		t.Run("rejects "+name, func(t *testing.T) {
			test.H(t).ErrIs(ValidName(name), ErrInvalidName)
		})
	}
}

func Test_Match(t *testing.T) {
	var names = []string{"refs/fixtures/b", "refs/fixtures/a", "refs/golden/a"}

	t.Run("empty pattern matches everything, sorted", func(t *testing.T) {
		res, err := Match("", names)
		test.H(t).IsNil(err)
		test.H(t).InterfaceEql(res, []string{"refs/fixtures/a", "refs/fixtures/b", "refs/golden/a"})
	})

	t.Run("glob", func(t *testing.T) {
		res, err := Match("refs/fixtures/*", names)
		test.H(t).IsNil(err)
		test.H(t).InterfaceEql(res, []string{"refs/fixtures/a", "refs/fixtures/b"})
	})

	t.Run("no match", func(t *testing.T) {
		res, err := Match("refs/nothing/*", names)
		test.H(t).IsNil(err)
		test.H(t).IntEql(len(res), 0)
	})
}
