package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/xerrors"

	"github.com/retro-framework/go-fingerprint/framework"
	"github.com/retro-framework/go-fingerprint/framework/canon"
	"github.com/retro-framework/go-fingerprint/framework/ctxkey"
	"github.com/retro-framework/go-fingerprint/framework/object"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage"
	"github.com/retro-framework/go-fingerprint/framework/wire"
)

// maxBodyBytes bounds every request body the server decodes.
const maxBodyBytes = 8 << 20

type server struct {
	packer *packing.JSONPacker
	odb    object.ListableDB
	refdb  ref.ListableDB
	log    framework.Logger
}

func newRouter(srv server) *mux.Router {
	rMux := mux.NewRouter()

	rMux.Handle("/hash", hashServer{srv.packer}).Methods("POST")
	rMux.Handle("/obj", objectDBServer{srv.packer, srv.odb}).Methods("POST")
	rMux.Handle("/obj/{fp}", objectDBServer{srv.packer, srv.odb}).Methods("GET")
	rMux.Handle("/ref", refDBServer{srv.refdb}).Methods("GET")
	rMux.Handle("/ref/{name:.*}", refDBServer{srv.refdb}).Methods("GET", "PUT")
	rMux.Handle("/verify/{name:.*}", verifyServer{srv.packer, srv.refdb}).Methods("POST")

	rMux.Use(loggerMiddleware{srv.log}.Middleware)
	return rMux
}

// loggerMiddleware makes the server logger available to handlers
// through the request context.
type loggerMiddleware struct {
	log framework.Logger
}

func (lm loggerMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ctxkey.WithLogger(r.Context(), lm.log)))
	})
}

// decodeBody reads every document in the request body, YAML when the
// content type says so and JSON otherwise.
func decodeBody(w http.ResponseWriter, r *http.Request) ([]canon.Value, error) {
	d, err := wire.NewDecoder(wire.FormatFor(r.Header.Get("Content-Type")), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return wire.DecodeAll(d)
}

func statusFor(err error) int {
	switch {
	case xerrors.Is(err, storage.ErrNoSuchObject), xerrors.Is(err, storage.ErrUnknownRef):
		return http.StatusNotFound
	case xerrors.Is(err, packing.ErrFingerprintMismatch):
		return http.StatusConflict
	case xerrors.Is(err, wire.ErrUnsupportedDocument),
		xerrors.Is(err, wire.ErrUnknownFormat),
		xerrors.Is(err, canon.ErrUnsupportedType),
		xerrors.Is(err, canon.ErrInvalidInput),
		xerrors.Is(err, packing.ErrBadFingerprint),
		xerrors.Is(err, ref.ErrInvalidName):
		return http.StatusBadRequest
	case xerrors.Is(err, storage.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the status it maps to. Client
// errors carry the message, server errors only the status text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = statusFor(err)
		msg    = http.StatusText(status)
	)
	if status < http.StatusInternalServerError {
		msg = err.Error()
		ctxkey.Logger(r.Context()).Infof("%s %s: %s", r.Method, r.URL.Path, err)
	} else {
		ctxkey.Logger(r.Context()).Errorf("%s %s: %s", r.Method, r.URL.Path, err)
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxkey.Logger(r.Context()).Errorf("encoding response: %s", err)
	}
}
