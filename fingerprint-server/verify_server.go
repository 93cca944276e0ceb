package main

import (
	"net/http"

	"github.com/gorilla/mux"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/retro-framework/go-fingerprint/framework/ctxkey"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
)

// verifyServer checks that the document in the body still fingerprints
// to what a ref recorded for it.
type verifyServer struct {
	packer *packing.JSONPacker
	db     ref.Source
}

type verification struct {
	Name     string              `json:"name"`
	Recorded packing.Fingerprint `json:"recorded"`
	Computed packing.Fingerprint `json:"computed"`
	OK       bool                `json:"ok"`
}

func (srv verifyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var name = mux.Vars(r)["name"]

	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.Verify")
	defer spn.Finish()
	spn.SetTag("ref", name)
	r = r.WithContext(ctxkey.WithRef(ctx, name))

	recorded, err := srv.db.Retrieve(name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vals, err := decodeBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(vals) != 1 {
		http.Error(w, "expected exactly one document", http.StatusBadRequest)
		return
	}

	computed, err := srv.packer.Fingerprint(vals[0])
	if err != nil {
		writeError(w, r, err)
		return
	}

	res := verification{Name: name, Recorded: recorded, Computed: computed, OK: recorded == computed}
	status := http.StatusOK
	if !res.OK {
		status = http.StatusConflict
		ctxkey.Logger(r.Context()).Warnf("%s: recorded %s, computed %s", ctxkey.Ref(r.Context()), recorded, computed)
	}
	spn.SetTag("ok", res.OK)
	writeJSON(w, r, status, res)
}
