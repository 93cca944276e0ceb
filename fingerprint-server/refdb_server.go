package main

import (
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
)

type refDBServer struct {
	db ref.ListableDB
}

type namedRef struct {
	Name        string              `json:"name"`
	Fingerprint packing.Fingerprint `json:"fingerprint"`
	Changed     *bool               `json:"changed,omitempty"`
}

func (srv refDBServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var name = mux.Vars(r)["name"]
	switch {
	case r.Method == http.MethodGet && name == "":
		srv.list(w, r)
	case r.Method == http.MethodGet:
		srv.retrieve(w, r, name)
	case r.Method == http.MethodPut:
		srv.write(w, r, name)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// list answers with every ref matching the optional ?pattern= glob.
func (srv refDBServer) list(w http.ResponseWriter, r *http.Request) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.ListRefs")
	defer spn.Finish()
	r = r.WithContext(ctx)

	refs, err := srv.db.Ls()
	if err != nil {
		writeError(w, r, err)
		return
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	matched, err := ref.Match(r.URL.Query().Get("pattern"), names)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := make([]namedRef, 0, len(matched))
	for _, name := range matched {
		res = append(res, namedRef{Name: name, Fingerprint: refs[name]})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (srv refDBServer) retrieve(w http.ResponseWriter, r *http.Request, name string) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.RetrieveRef")
	defer spn.Finish()
	spn.SetTag("ref", name)
	r = r.WithContext(ctx)

	fp, err := srv.db.Retrieve(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, namedRef{Name: name, Fingerprint: fp})
}

// write points name at the fingerprint given as the request body, in
// its "algo:fingerprint" form.
func (srv refDBServer) write(w http.ResponseWriter, r *http.Request, name string) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.WriteRef")
	defer spn.Finish()
	spn.SetTag("ref", name)
	r = r.WithContext(ctx)

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, 1024))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fp, err := packing.ParseFingerprint(strings.TrimSpace(string(body)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	changed, err := srv.db.Write(name, fp)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, namedRef{Name: name, Fingerprint: fp, Changed: &changed})
}
