package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// Decode unmarshals the request body into val, rejecting unknown fields so
// client typos surface as errors instead of silently dropped data.
func Decode(w http.ResponseWriter, r *http.Request, val interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(val)
}

// Param returns the named route variable.
func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
