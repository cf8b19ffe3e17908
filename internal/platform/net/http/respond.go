// Package http holds the router facade, the server and the envelope writers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/logger"
	pnet "producescan/internal/platform/net"
)

// Envelope is the body every endpoint answers with
type Envelope = pnet.Wire

// JSON encodes v with status, encode errors are dropped since the header is already out
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce
// a Body that is an error becomes an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle turns a handler that returns a Response into a HandlerFunc
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Error(err, reqID)
		if status >= stdhttp.StatusInternalServerError {
			// the envelope only carries the message, keep the cause in the log
			logger.C(r.Context()).Error().Err(err).Stringer("code", perr.CodeOf(err)).Msg("request failed")
		}
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	JSON(w, status, pnet.Data(status, resp.Body, reqID))
}

// OK wraps data in a 200
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error answers with the status mapped from the error code
func Error(err error) Response { return Response{Body: err} }
