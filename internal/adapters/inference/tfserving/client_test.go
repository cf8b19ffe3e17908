package tfserving

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"producescan/internal/core/imageprep"
	perr "producescan/internal/platform/errors"

	"github.com/cenkalti/backoff/v4"
)

func tensor2() imageprep.Tensor {
	return imageprep.Tensor{Size: 2, Data: []float32{
		0, 0.1, 0.2, 0.3, 0.4, 0.5,
		0.6, 0.7, 0.8, 0.9, 1, 0.5,
	}}
}

func newTestClient(t *testing.T, srv *httptest.Server, o Options) *Client {
	t.Helper()
	o.BaseURL = srv.URL
	if o.Model == "" {
		o.Model = "produce_classifier"
	}
	c, err := New(o)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c.retry = func(ctx context.Context) backoff.BackOff {
		return backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(c.opts.MaxRetries)), ctx)
	}
	return c
}

func TestPredict_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/models/produce_classifier:predict" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Instances) != 1 || len(req.Instances[0]) != 2 || len(req.Instances[0][0]) != 2 || len(req.Instances[0][0][0]) != 3 {
			t.Errorf("bad instance shape")
		} else if req.Instances[0][1][0][2] != 0.8 {
			t.Errorf("bad pixel layout %v", req.Instances[0][1][0])
		}
		_, _ = w.Write([]byte(`{"predictions": [[0.1, 0.7, 0.2]]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	got, err := c.Predict(context.Background(), tensor2())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(got) != 3 || got[1] != 0.7 {
		t.Fatalf("scores %v", got)
	}
	if c.Name() != "produce_classifier" {
		t.Fatalf("name %q", c.Name())
	}
}

func TestPredict_PinnedVersionPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models/ripeness/versions/3:predict" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"predictions": [[1, 0, 0]]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{Model: "ripeness", Version: 3})
	if _, err := c.Predict(context.Background(), tensor2()); err != nil {
		t.Fatalf("predict: %v", err)
	}
}

func TestPredict_RetriesTransient(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"predictions": [[0.5, 0.5]]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	if _, err := c.Predict(context.Background(), tensor2()); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("hits = %d", hits.Load())
	}
}

func TestPredict_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		code   perr.ErrorCode
	}{
		{"bad request", http.StatusBadRequest, `{"error": "Input to reshape is a tensor with 12 values"}`, perr.ErrorCodeUnknown},
		{"missing model", http.StatusNotFound, `{"error": "Servable not found"}`, perr.ErrorCodeUnavailable},
		{"always unavailable", http.StatusServiceUnavailable, ``, perr.ErrorCodeUnavailable},
		{"error in 200 body", http.StatusOK, `{"error": "oom"}`, perr.ErrorCodeUnknown},
		{"two predictions", http.StatusOK, `{"predictions": [[1], [2]]}`, perr.ErrorCodeUnknown},
		{"not json", http.StatusOK, `<html>`, perr.ErrorCodeJSON},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))
		c := newTestClient(t, srv, Options{MaxRetries: 1})
		_, err := c.Predict(context.Background(), tensor2())
		srv.Close()
		if !perr.IsCode(err, tc.code) {
			t.Fatalf("%s: code = %v err = %v", tc.name, perr.CodeOf(err), err)
		}
	}
}

func TestPredict_RejectsBadTensor(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Errorf("server must not be called")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	_, err := c.Predict(context.Background(), imageprep.Tensor{Size: 2, Data: []float32{1, 2}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		body   string
		ok     bool
		detail string
	}{
		{"available", `{"model_version_status":[{"version":"2","state":"AVAILABLE","status":{"error_code":"OK"}}]}`, true, "version 2 AVAILABLE"},
		{"loading", `{"model_version_status":[{"version":"2","state":"LOADING","status":{"error_code":"OK"}}]}`, false, ""},
		{"no versions", `{"model_version_status":[]}`, false, ""},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/v1/models/produce_classifier" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			_, _ = w.Write([]byte(tc.body))
		}))
		c := newTestClient(t, srv, Options{})
		detail, err := c.Probe(context.Background())
		srv.Close()
		if tc.ok != (err == nil) {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
		if tc.ok && detail != tc.detail {
			t.Fatalf("%s: detail = %q", tc.name, detail)
		}
		if !tc.ok && !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("%s: code = %v", tc.name, perr.CodeOf(err))
		}
	}
}

func TestProbe_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, Model: "m", MaxRetries: -1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.Probe(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	for _, o := range []Options{
		{BaseURL: "http://localhost:8501"},
		{BaseURL: "", Model: "m"},
		{BaseURL: "localhost:8501/no-scheme", Model: "m"},
	} {
		if _, err := New(o); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%+v: err = %v", o, err)
		}
	}
}
