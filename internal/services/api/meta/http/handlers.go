// Package http serves the /meta probes and build information
package http

import (
	"context"
	"net/http"
	"time"

	"producescan/internal/core/version"
	"producescan/internal/modkit/httpkit"
	rdom "producescan/internal/services/recognition/domain"
)

// Pinger is satisfied by store seams that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
// SQL and CH are the configured store seams, nil when that backend is off
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	SQL         any
	CH          any
	Models      rdom.StatusPort
}

// readyTimeout bounds the dependency pings of one readiness probe
const readyTimeout = 2 * time.Second

// Check states, a skipped dependency is a deployment choice and does not degrade
const (
	checkOK       = "ok"
	checkFail     = "fail"
	checkDegraded = "degraded"
	checkSkipped  = "skipped"
	checkUnknown  = "unknown"
)

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/models", h.models)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"producescan-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T08:05:00Z"`
}

// ReadyCheck is one dependency verdict: ok, fail, degraded, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"sql"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse folds the checks into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T08:05:00Z"`
}

// ServiceResponse reports uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"producescan-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModelsResponse pairs the model lifecycle with the label set compiled into the binary
type ModelsResponse struct {
	Models rdom.StatusReport `json:"models"`
	Build  version.BuildInfo `json:"build"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{
		ping(ctx, "sql", h.deps.SQL),
		ping(ctx, "ch", h.deps.CH),
		h.modelCheck(),
	}
	return ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(time.Now())}, nil
}

func ping(ctx context.Context, name string, seam any) ReadyCheck {
	if seam == nil {
		return ReadyCheck{Name: name, Status: checkSkipped}
	}
	p, ok := seam.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: checkUnknown}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: checkFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: checkOK}
}

// overall is the worst verdict, unknown counts as degraded
func overall(checks []ReadyCheck) string {
	out := checkOK
	for _, c := range checks {
		switch c.Status {
		case checkFail:
			return checkFail
		case checkDegraded, checkUnknown:
			out = checkDegraded
		}
	}
	return out
}

// modelCheck degrades rather than fails, scans still answer "Model missing"
func (h *handlers) modelCheck() ReadyCheck {
	if h.deps.Models == nil {
		return ReadyCheck{Name: "models", Status: checkSkipped}
	}
	rep := h.deps.Models.Report()
	if rep.State == rdom.StateReady.String() {
		return ReadyCheck{Name: "models", Status: checkOK}
	}
	c := ReadyCheck{Name: "models", Status: checkDegraded, Error: "models " + rep.State}
	for _, m := range rep.Models {
		if m.State != rdom.StateReady.String() && m.Detail != "" {
			c.Error = m.Role + ": " + m.Detail
			break
		}
	}
	return c
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Model lifecycle and label set
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelsResponse "ok"
// @Router /meta/models [get]
func (h *handlers) models(_ *http.Request) (any, error) {
	out := ModelsResponse{
		Build:  version.Info(),
		Models: rdom.StatusReport{State: rdom.StateUninitialized.String()},
	}
	if h.deps.Models != nil {
		out.Models = h.deps.Models.Report()
	}
	return out, nil
}
