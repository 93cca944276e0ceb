package framework

import (
	"bytes"
	"testing"

	test "github.com/retro-framework/go-fingerprint/framework/test_helper"
)

func Test_Stdout(t *testing.T) {

	t.Run("writes one prefixed line per entry", func(t *testing.T) {
		var buf bytes.Buffer
		l := &Stdout{Out: &buf}

		l.Infof("hashed %d values", 3)
		l.Error("boom")

		test.H(t).StringEql(buf.String(), "INFO  hashed 3 values\nERROR boom\n")
	})

	t.Run("drops debug unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		l := &Stdout{Out: &buf}
		l.Debug("quiet")
		test.H(t).StringEql(buf.String(), "")

		l.Verbose = true
		l.Debugf("loud %s", "now")
		test.H(t).StringEql(buf.String(), "DEBUG loud now\n")
	})

	t.Run("satisfies Logger", func(t *testing.T) {
		var _ Logger = &Stdout{}
		var _ Logger = Noop{}
	})
}
