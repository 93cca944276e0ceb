package main

import (
	"net/http"

	"github.com/gorilla/mux"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/retro-framework/go-fingerprint/framework/ctxkey"
	"github.com/retro-framework/go-fingerprint/framework/object"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/wire"
)

type objectDBServer struct {
	packer *packing.JSONPacker
	db     object.DB
}

type storedObject struct {
	Fingerprint packing.Fingerprint `json:"fingerprint"`
	Written     int                 `json:"written"`
}

func (srv objectDBServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		srv.retrieve(w, r)
	case http.MethodPost:
		srv.store(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// store packs and writes every document in the body.
func (srv objectDBServer) store(w http.ResponseWriter, r *http.Request) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.StoreObjects")
	defer spn.Finish()
	r = r.WithContext(ctx)

	vals, err := decodeBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res := make([]storedObject, 0, len(vals))
	for _, v := range vals {
		po, err := srv.packer.PackValue(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		n, err := srv.db.WritePacked(po)
		if err != nil {
			spn.LogKV("event", "error", "error.object", err)
			writeError(w, r, err)
			return
		}
		ctxkey.Logger(ctx).Debugf("stored %s (%d bytes at rest)", po.Fingerprint(), n)
		res = append(res, storedObject{po.Fingerprint(), n})
	}
	writeJSON(w, r, http.StatusCreated, res)
}

// retrieve answers with the stored value as JSON after checking it
// still fingerprints to the name it is stored under.
func (srv objectDBServer) retrieve(w http.ResponseWriter, r *http.Request) {
	spn, ctx := opentracing.StartSpanFromContext(r.Context(), "fingerprint-server.RetrieveObject")
	defer spn.Finish()
	r = r.WithContext(ctx)

	var vars = mux.Vars(r)
	spn.SetTag("fingerprint", vars["fp"])

	hashedObj, err := srv.db.RetrievePacked(vars["fp"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hashedObj.Type() != packing.ObjectTypeValue {
		http.Error(w, http.StatusText(http.StatusExpectationFailed), http.StatusExpectationFailed)
		return
	}

	v, err := srv.packer.Verify(hashedObj)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := wire.EncodeJSON(v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
