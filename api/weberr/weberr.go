// Package weberr lets handlers return plain errors while still controlling
// the HTTP response the client sees. An error built here carries a response
// body and status code that the Errors middleware unwraps and renders.
package weberr

import (
	"net/http"
)

// ErrorResponse is the body rendered for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RequestError marks an error as scoped to a single request, as opposed to a
// fault the process should care about.
type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (r *RequestError) Unwrap() error { return r.Err }

// NewError wraps err with the message and status the client should receive.
func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(&ErrorResponse{msg}, status))
	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(err, "the resource could not be found", http.StatusNotFound, opts...)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusBadRequest, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"the server encountered a problem and could not process your request",
		http.StatusInternalServerError,
		opts...,
	)
}

// Upstream reports a failure of an external collaborator, forwarding its
// message to the caller instead of retrying.
func Upstream(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusBadGateway, opts...)
}
