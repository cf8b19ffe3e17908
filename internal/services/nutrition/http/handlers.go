// Package http provides http transport for nutrition lookups
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"producescan/internal/modkit/httpkit"
	perr "producescan/internal/platform/errors"
	"producescan/internal/services/nutrition/domain"
)

// Register mounts nutrition endpoints on the given router
func Register(r httpkit.Router, s domain.ReaderPort) {
	h := &handlers{svc: s}

	// active records, ordered by name
	httpkit.Get(r, "/", h.list)

	// one record by exact label text
	httpkit.Get(r, "/{name}", h.byName)
}

type handlers struct{ svc domain.ReaderPort }

// swagger:route GET /nutrition Nutrition nutritionList
// @Summary List active nutrition records
// @Tags Nutrition
// @Produce json
// @Param limit query int false "Page size (1-500)"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Summary "ok"
// @Router /nutrition [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := intParam(q, "offset")
	if err != nil {
		return nil, err
	}
	return h.svc.ListActive(r.Context(), domain.ListInput{Limit: limit, Offset: offset})
}

// swagger:route GET /nutrition/{name} Nutrition nutritionByName
// @Summary Resolve the active nutrition record for a label
// @Tags Nutrition
// @Produce json
// @Param name path string true "Label text, case sensitive"
// @Success 200 {object} domain.Record "ok"
// @Failure 404 {object} errors.Wire "not found"
// @Router /nutrition/{name} [get]
func (h *handlers) byName(r *stdhttp.Request) (any, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	rec, ok, err := h.svc.FindActiveByName(r.Context(), name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("no nutrition record for %q", name)
	}
	return rec, nil
}

func intParam(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a non negative integer", key), key)
	}
	return n, nil
}
