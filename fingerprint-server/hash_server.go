package main

import (
	"net/http"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/retro-framework/go-fingerprint/framework/packing"
)

type hashServer struct {
	packer *packing.JSONPacker
}

// ServeHTTP fingerprints every document in the body, answering with
// the fingerprints in document order.
func (srv hashServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.Hash")
	defer spn.Finish()
	r = r.WithContext(ctx)

	vals, err := decodeBody(w, r)
	if err != nil {
		spn.LogKV("event", "error", "error.object", err)
		writeError(w, r, err)
		return
	}
	spn.SetTag("documents", len(vals))

	fps := make([]packing.Fingerprint, 0, len(vals))
	for _, v := range vals {
		fp, err := srv.packer.Fingerprint(v)
		if err != nil {
			spn.LogKV("event", "error", "error.object", err)
			writeError(w, r, err)
			return
		}
		fps = append(fps, fp)
	}
	writeJSON(w, r, http.StatusOK, fps)
}
