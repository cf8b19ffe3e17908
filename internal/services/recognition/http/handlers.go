// Package http exposes model lifecycle over http
package http

import (
	stdhttp "net/http"

	"producescan/internal/modkit/httpkit"
	"producescan/internal/services/recognition/domain"
)

// Register mounts recognition endpoints on the given router
func Register(r httpkit.Router, s domain.StatusPort) {
	h := &handlers{status: s}
	httpkit.Get(r, "/models", h.models)
}

type handlers struct{ status domain.StatusPort }

// swagger:route GET /recognition/models Recognition recognitionModels
// @Summary Lifecycle state of the prediction models
// @Tags Recognition
// @Produce json
// @Success 200 {object} domain.StatusReport "ok"
// @Router /recognition/models [get]
func (h *handlers) models(_ *stdhttp.Request) (any, error) {
	return h.status.Report(), nil
}
