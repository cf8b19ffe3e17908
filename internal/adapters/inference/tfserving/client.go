// Package tfserving is a REST client for models hosted behind a TensorFlow Serving compatible endpoint
// it satisfies the recognition Model contract (Predict, Probe, Name)
package tfserving

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"producescan/internal/core/imageprep"
	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/logger"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "producescan-recognition"
	defaultMaxRetry  = 2
	defaultRetryBase = 200 * time.Millisecond
	maxBackoff       = 5 * time.Second
	maxErrorBody     = 2048
)

// Options configures the Client
type Options struct {
	// BaseURL is the REST root, e.g. http://tfserving:8501
	BaseURL string
	// Model is the served model name
	Model string
	// Version pins a model version, 0 means whatever the server considers latest
	Version int

	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors and transient 5xx
	// MaxRetries 0 means the default, negative disables retries
	MaxRetries int
	RetryBase  time.Duration
}

// Client calls one served model
// it is safe for concurrent use and holds no per call state
type Client struct {
	http  *http.Client
	opts  Options
	base  string
	log   logger.Logger
	retry func(ctx context.Context) backoff.BackOff
}

// New validates options and builds a Client
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.Model) == "" {
		return nil, perr.InvalidArgf("tfserving model name is required")
	}
	u, err := url.Parse(strings.TrimRight(o.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, perr.InvalidArgf("tfserving base url %q is not absolute", o.BaseURL)
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}

	base := u.String() + "/v1/models/" + url.PathEscape(o.Model)
	if o.Version > 0 {
		base += fmt.Sprintf("/versions/%d", o.Version)
	}
	c := &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		base: base,
		log:  logger.Named("tfserving").With().Str("model", o.Model).Logger(),
	}
	c.retry = c.retryPolicy
	return c, nil
}

// Name is the served model name
func (c *Client) Name() string { return c.opts.Model }

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
	Error       string      `json:"error"`
}

// Predict runs one image through the model and returns its class scores
func (c *Client) Predict(ctx context.Context, in imageprep.Tensor) ([]float32, error) {
	if in.Size <= 0 || len(in.Data) != in.Size*in.Size*imageprep.Channels {
		return nil, perr.InvalidArgf("tensor shape %v does not match %d values", in.Shape(), len(in.Data))
	}
	body, err := json.Marshal(predictRequest{Instances: [][][][]float32{in.Instance()}})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode predict request")
	}

	resp, err := c.do(ctx, http.MethodPost, c.base+":predict", body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode predict response")
	}
	if out.Error != "" {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "tfserving predict: %s", out.Error)
	}
	if len(out.Predictions) != 1 {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "tfserving returned %d predictions for 1 instance", len(out.Predictions))
	}
	return out.Predictions[0], nil
}

type statusResponse struct {
	ModelVersionStatus []struct {
		Version string `json:"version"`
		State   string `json:"state"`
		Status  struct {
			ErrorCode    string `json:"error_code"`
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
	} `json:"model_version_status"`
}

// Probe asks the server whether the model has a version in the AVAILABLE state
func (c *Client) Probe(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var st statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "decode model status")
	}
	var seen []string
	for _, v := range st.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return fmt.Sprintf("version %s AVAILABLE", v.Version), nil
		}
		s := "version " + v.Version + " " + v.State
		if v.Status.ErrorMessage != "" {
			s += ": " + v.Status.ErrorMessage
		}
		seen = append(seen, s)
	}
	if len(seen) == 0 {
		return "", perr.Unavailablef("model %s reports no versions", c.opts.Model)
	}
	return "", perr.Unavailablef("model %s not available (%s)", c.opts.Model, strings.Join(seen, "; "))
}

// errTransient marks a status worth another attempt
type errTransient int

func (e errTransient) Error() string { return fmt.Sprintf("transient status %d", int(e)) }

// retryPolicy is exponential from RetryBase, capped at maxBackoff, stopping after MaxRetries or on ctx
func (c *Client) retryPolicy(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.opts.RetryBase
	eb.MaxInterval = maxBackoff
	eb.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.opts.MaxRetries)), ctx)
}

// do sends the request, retrying transport errors and 502/503/504
// on success the caller closes the body
func (c *Client) do(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	attempt := 0
	send := func() (*http.Response, error) {
		attempt++
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rdr)
		if err != nil {
			return nil, backoff.Permanent(perr.Wrapf(err, perr.ErrorCodeUnknown, "tfserving new request failed"))
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		c.log.Debug().Str("method", method).Int("status", resp.StatusCode).Int("attempt", attempt).
			Dur("latency", time.Since(start)).Msg("tfserving http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			return nil, errTransient(resp.StatusCode)
		case http.StatusNotFound:
			return nil, backoff.Permanent(perr.Newf(perr.ErrorCodeUnavailable, "tfserving model %s not found: %s", c.opts.Model, readError(resp.Body)))
		default:
			return nil, backoff.Permanent(perr.Newf(perr.ErrorCodeUnknown, "tfserving unexpected status %d: %s", resp.StatusCode, readError(resp.Body)))
		}
	}
	warn := func(err error, next time.Duration) {
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", next).Msg("tfserving retrying")
	}

	resp, err := backoff.RetryNotifyWithData(send, c.retry(ctx), warn)
	if err == nil {
		return resp, nil
	}
	var transient errTransient
	switch {
	case ctx.Err() != nil:
		return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "tfserving request cancelled")
	case errors.As(err, &transient):
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "tfserving %s", transient)
	case isPerr(err):
		return nil, err
	default:
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "tfserving %s failed", method)
	}
}

func isPerr(err error) bool {
	_, ok := perr.As(err)
	return ok
}

// readError pulls the error text out of a TF Serving error body and closes it
func readError(rc io.ReadCloser) string {
	b, _ := io.ReadAll(io.LimitReader(rc, maxErrorBody))
	_ = rc.Close()
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(b))
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
