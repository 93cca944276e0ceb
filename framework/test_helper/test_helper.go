package test_helper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"
)

func H(t *testing.T) helper {
	t.Helper()
	return helper{t}
}

type helper struct {
	t *testing.T
}

func (h helper) IntEql(got, want int) {
	h.t.Helper()
	if got != want {
		h.t.Fatalf("int equality assertion failed, got %d wanted %d", got, want)
	}
}

func (h helper) StringEql(got, want string) {
	h.t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Errorf("string equality assertion failed (-want +got)\n%s", diff)
	}
}

func (h helper) StringNotEql(got, notWant string) {
	h.t.Helper()
	if got == notWant {
		h.t.Errorf("string inequality assertion failed, both were %q", got)
	}
}

func (h helper) InterfaceEql(got, want interface{}) {
	h.t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Errorf("equality assertion failed (-want +got)\n%s", diff)
	}
}

func (h helper) ErrEql(got, want error) {
	h.t.Helper()
	if got == nil && want == nil {
		return
	}
	if got == nil || want == nil {
		h.t.Fatalf("error equality assertion failed, got %v wanted %v", got, want)
	}
	if got.Error() != want.Error() {
		h.t.Fatalf("error equality assertion failed, got %q wanted %q", got, want.Error())
	}
}

// ErrIs asserts that got matches target somewhere in its chain.
func (h helper) ErrIs(got, target error) {
	h.t.Helper()
	if !xerrors.Is(got, target) {
		h.t.Fatalf("error chain assertion failed, got %v wanted it to match %v", got, target)
	}
}

func (h helper) IsNil(any interface{}) {
	h.t.Helper()
	if any != nil {
		h.t.Fatalf("wanted nil, got %v", any)
	}
}

func (h helper) NotNil(any interface{}) {
	h.t.Helper()
	if any == nil {
		h.t.Fatalf("wanted not nil, got %v", any)
	}
}

func (h helper) BoolEql(got, want bool) {
	h.t.Helper()
	if got != want {
		h.t.Fatalf("boolean equality assertion failed, got %t wanted %t", got, want)
	}
}
