// Package http provides the upload and camera capture entry points
package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	stdhttp "net/http"
	"strings"

	"producescan/internal/modkit/httpkit"
	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/net/http/bind"
	"producescan/internal/services/scan/domain"
)

// DefaultMaxUpload caps image bodies when no limit is configured
const DefaultMaxUpload int64 = 16 << 20

// fileField is the multipart field carrying the upload
const fileField = "file"

// Register mounts scan endpoints on the given router
func Register(r httpkit.Router, p domain.Pipeline, maxBytes int64) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUpload
	}
	h := &handlers{svc: p, max: maxBytes}

	// multipart upload
	httpkit.Post(r, "/upload", h.upload)

	// single camera frame, raw bytes or a JSON data url
	httpkit.Post(r, "/capture", h.capture)
}

type handlers struct {
	svc domain.Pipeline
	max int64
}

// CaptureRequest is the JSON form of a camera frame
type CaptureRequest struct {
	Image string `json:"image" validate:"required" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
}

var errTooLarge = errors.New("body exceeds limit")

// swagger:route POST /scan/upload Scan scanUpload
// @Summary Scan an uploaded produce image
// @Tags Scan
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} domain.View "ok"
// @Failure 400 {object} errors.Wire "no image supplied"
// @Failure 413 {object} errors.Wire "image too large"
// @Router /scan/upload [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	r.Body = limitBody(r.Body, h.max)
	if err := r.ParseMultipartForm(h.max); err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, tooLarge(h.max)
		}
		if errors.Is(err, stdhttp.ErrNotMultipart) || errors.Is(err, stdhttp.ErrMissingBoundary) {
			return nil, noImage()
		}
		return nil, perr.WithField(perr.InvalidArgf("malformed multipart body"), fileField)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	f, fh, err := r.FormFile(fileField)
	if err != nil {
		return nil, noImage()
	}
	defer f.Close()

	img, err := readAll(f, h.max)
	if err != nil {
		return nil, err
	}
	if len(img) == 0 || fh.Filename == "" {
		return nil, noImage()
	}

	out := h.svc.Scan(r.Context(), domain.Input{
		Image:    img,
		Filename: fh.Filename,
		Source:   domain.SourceUpload,
		Actor:    actor(r),
	})
	return out.View(), nil
}

// swagger:route POST /scan/capture Scan scanCapture
// @Summary Scan a single camera frame
// @Tags Scan
// @Accept image/jpeg,image/png,application/json
// @Produce json
// @Param body body CaptureRequest false "JSON data url form"
// @Success 200 {object} domain.View "ok"
// @Failure 400 {object} errors.Wire "no image supplied"
// @Failure 413 {object} errors.Wire "image too large"
// @Router /scan/capture [post]
func (h *handlers) capture(r *stdhttp.Request) (any, error) {
	var (
		img []byte
		err error
	)
	if isJSON(r.Header.Get("Content-Type")) {
		img, err = h.fromJSON(r)
	} else {
		img, err = readAll(r.Body, h.max)
	}
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, noImage()
	}

	out := h.svc.Capture(r.Context(), domain.Input{
		Image:  img,
		Source: domain.SourceCamera,
		Actor:  actor(r),
	})
	return out.View(), nil
}

func (h *handlers) fromJSON(r *stdhttp.Request) ([]byte, error) {
	// base64 inflates by 4/3, leave room for the envelope
	in, err := bind.ParseJSON[CaptureRequest](r, bind.JSONOptions{MaxBytes: h.max/3*4 + 4096})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeValidation) {
			return nil, noImage()
		}
		return nil, err
	}
	img, err := DecodeDataURL(in.Image)
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "image is not valid base64 data"), "image")
	}
	if int64(len(img)) > h.max {
		return nil, tooLarge(h.max)
	}
	return img, nil
}

// DecodeDataURL accepts data:<mime>;base64,<payload> or bare base64
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, errors.New("data url is not base64 encoded")
		}
		s = payload
	}
	if s == "" {
		return nil, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func isJSON(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}

// actor is the authenticated user when one is attached, empty otherwise
func actor(r *stdhttp.Request) string {
	uid, err := httpkit.User(r)
	if err != nil {
		return ""
	}
	return uid
}

func readAll(rd io.Reader, max int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(rd, max+1))
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, tooLarge(max)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "read image body")
	}
	if n > max {
		return nil, tooLarge(max)
	}
	return buf.Bytes(), nil
}

func noImage() error {
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "no image supplied"), fileField)
}

func tooLarge(max int64) error {
	return perr.TooLargef("image exceeds %d bytes", max)
}

// limitedBody fails reads past its budget instead of truncating silently
type limitedBody struct {
	rc   io.ReadCloser
	left int64
}

func limitBody(rc io.ReadCloser, max int64) io.ReadCloser {
	if rc == nil {
		return io.NopCloser(bytes.NewReader(nil))
	}
	// multipart framing needs headroom over the file itself
	return &limitedBody{rc: rc, left: max + 64<<10}
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.left <= 0 {
		var probe [1]byte
		if n, err := l.rc.Read(probe[:]); n == 0 && errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, errTooLarge
	}
	if int64(len(p)) > l.left {
		p = p[:l.left]
	}
	n, err := l.rc.Read(p)
	l.left -= int64(n)
	return n, err
}

func (l *limitedBody) Close() error { return l.rc.Close() }
