package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/retro-framework/go-fingerprint/framework"
	"github.com/retro-framework/go-fingerprint/framework/canon"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/storage"
	"github.com/retro-framework/go-fingerprint/framework/storage/memory"
	test "github.com/retro-framework/go-fingerprint/framework/test_helper"
)

const (
	nestedDoc = `[1, 2, ["a", 2, "c"]]`
	nestedFP  = "sha512:mkhyglxfnhzjnxyyixdqibwwrftinkgh"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := canon.New()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(newRouter(server{
		packer: packing.NewJSONPacker(h),
		odb:    &memory.ObjectStore{},
		refdb:  &memory.RefStore{},
		log:    framework.Noop{},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var buf strings.Builder
	if _, err := io.Copy(&buf, res.Body); err != nil {
		t.Fatal(err)
	}
	return res, []byte(buf.String())
}

func Test_HashServer(t *testing.T) {

	srv := newTestServer(t)

	t.Run("fingerprints every json document", func(t *testing.T) {

		// Arrange
		body := nestedDoc + "\n" + `"1"`

		// Act
		res, b := do(t, "POST", srv.URL+"/hash", "application/json", body)

		// Assert
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		var got []string
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).InterfaceEql(got, []string{nestedFP, "sha512:kjckshvqyxgutulxpqdcbgwqynecikho"})
	})

	t.Run("yaml documents fingerprint the same", func(t *testing.T) {
		res, b := do(t, "POST", srv.URL+"/hash", "application/x-yaml", "- 1\n- 2\n- [a, 2, c]\n")
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		var got []string
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).InterfaceEql(got, []string{nestedFP})
	})

	t.Run("unsupported documents are a bad request", func(t *testing.T) {
		res, _ := do(t, "POST", srv.URL+"/hash", "application/json", `{"a": 1}`)
		test.H(t).IntEql(res.StatusCode, http.StatusBadRequest)
	})

	t.Run("only POST is routed", func(t *testing.T) {
		res, _ := do(t, "GET", srv.URL+"/hash", "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusMethodNotAllowed)
	})
}

func Test_ObjectDBServer(t *testing.T) {

	srv := newTestServer(t)

	t.Run("stores documents", func(t *testing.T) {
		res, b := do(t, "POST", srv.URL+"/obj", "application/json", nestedDoc)
		test.H(t).IntEql(res.StatusCode, http.StatusCreated)

		var got []storedObject
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).IntEql(len(got), 1)
		test.H(t).BoolEql(got[0].Written > 0, true)
	})

	t.Run("storing again writes nothing", func(t *testing.T) {
		_, b := do(t, "POST", srv.URL+"/obj", "application/json", nestedDoc)
		var got []map[string]interface{}
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).StringEql(got[0]["fingerprint"].(string), nestedFP)
		test.H(t).InterfaceEql(got[0]["written"], float64(0))
	})

	t.Run("retrieves the stored value as json", func(t *testing.T) {
		res, b := do(t, "GET", srv.URL+"/obj/"+nestedFP, "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		test.H(t).StringEql(string(b), `[1,2,["a",2,"c"]]`)
	})

	t.Run("unknown objects are not found", func(t *testing.T) {
		res, _ := do(t, "GET", srv.URL+"/obj/sha512:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusNotFound)
	})

	t.Run("malformed fingerprints are a bad request", func(t *testing.T) {
		res, _ := do(t, "GET", srv.URL+"/obj/md5:abc", "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusBadRequest)
	})
}

func Test_RefDBServer(t *testing.T) {

	srv := newTestServer(t)

	t.Run("writes a ref", func(t *testing.T) {
		res, b := do(t, "PUT", srv.URL+"/ref/refs/golden/nested", "text/plain", nestedFP)
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		var got namedRef
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).BoolEql(*got.Changed, true)
	})

	t.Run("rewriting the same fingerprint is no change", func(t *testing.T) {
		_, b := do(t, "PUT", srv.URL+"/ref/refs/golden/nested", "text/plain", nestedFP+"\n")
		var got namedRef
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).BoolEql(*got.Changed, false)
	})

	t.Run("retrieves a ref", func(t *testing.T) {
		res, b := do(t, "GET", srv.URL+"/ref/refs/golden/nested", "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		var got map[string]string
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).StringEql(got["fingerprint"], nestedFP)
	})

	t.Run("lists refs filtered by pattern", func(t *testing.T) {
		do(t, "PUT", srv.URL+"/ref/refs/fixtures/one", "text/plain", nestedFP)

		_, b := do(t, "GET", srv.URL+"/ref?pattern=refs/golden/*", "", "")
		var got []map[string]string
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).IntEql(len(got), 1)
		test.H(t).StringEql(got[0]["name"], "refs/golden/nested")

		_, b = do(t, "GET", srv.URL+"/ref", "", "")
		got = nil
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).IntEql(len(got), 2)
	})

	t.Run("unknown refs are not found", func(t *testing.T) {
		res, _ := do(t, "GET", srv.URL+"/ref/refs/golden/missing", "", "")
		test.H(t).IntEql(res.StatusCode, http.StatusNotFound)
	})

	t.Run("invalid names are a bad request", func(t *testing.T) {
		res, _ := do(t, "PUT", srv.URL+"/ref/heads/master", "text/plain", nestedFP)
		test.H(t).IntEql(res.StatusCode, http.StatusBadRequest)
	})
}

func Test_VerifyServer(t *testing.T) {

	srv := newTestServer(t)
	do(t, "PUT", srv.URL+"/ref/refs/golden/nested", "text/plain", nestedFP)

	t.Run("matching documents verify", func(t *testing.T) {
		res, b := do(t, "POST", srv.URL+"/verify/refs/golden/nested", "application/json", nestedDoc)
		test.H(t).IntEql(res.StatusCode, http.StatusOK)
		var got verification
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).BoolEql(got.OK, true)
	})

	t.Run("changed documents conflict", func(t *testing.T) {
		res, b := do(t, "POST", srv.URL+"/verify/refs/golden/nested", "application/json", `[1, 2, ["a", 2, "d"]]`)
		test.H(t).IntEql(res.StatusCode, http.StatusConflict)
		var got map[string]interface{}
		test.H(t).IsNil(json.Unmarshal(b, &got))
		test.H(t).InterfaceEql(got["ok"], false)
		test.H(t).StringEql(got["recorded"].(string), nestedFP)
	})

	t.Run("unknown refs are not found", func(t *testing.T) {
		res, _ := do(t, "POST", srv.URL+"/verify/refs/golden/missing", "application/json", nestedDoc)
		test.H(t).IntEql(res.StatusCode, http.StatusNotFound)
	})
}

func Test_StatusFor(t *testing.T) {
	test.H(t).IntEql(statusFor(storage.ErrNoSuchObject), http.StatusNotFound)
	test.H(t).IntEql(statusFor(canon.UnsupportedTypeError{Type: "bool"}), http.StatusBadRequest)
	test.H(t).IntEql(statusFor(storage.ErrBackendUnavailable), http.StatusServiceUnavailable)
}

func Test_OpenStores(t *testing.T) {
	_, _, err := openStores("memory", "", "", framework.Noop{})
	test.H(t).IsNil(err)
	_, _, err = openStores("tape", "", "", framework.Noop{})
	test.H(t).NotNil(err)
}
