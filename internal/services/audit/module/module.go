// Package module wires the audit sink using modkit
// it exposes ports only and mounts no routes
package module

import (
	"strings"

	modkit "producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	str "producescan/internal/platform/strings"
	"producescan/internal/services/audit/domain"
	"producescan/internal/services/audit/repo"
	"producescan/internal/services/audit/service"
)

// Backends for CORE_AUDIT_BACKEND
const (
	BackendSQL = "sql"
	BackendCH  = "ch"
	BackendLog = "log"
)

// Options selects where events are stored
type Options struct {
	Backend string
}

// FromConfig reads CORE_AUDIT_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_AUDIT_")
	return Options{Backend: strings.ToLower(ac.MayEnum("BACKEND", BackendSQL, BackendSQL, BackendCH, BackendLog))}
}

// Ports is what the scan pipeline consumes from audit
type Ports struct {
	Sink domain.Sink
}

// Module implements the audit module
type Module struct {
	name  string
	ports Ports
}

// New constructs the audit module
// a backend whose store is not configured falls back to log only
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("audit")}, opts...)...)
	o := FromConfig(deps.Cfg)
	return &Module{name: b.Name, ports: Ports{Sink: service.New(Pick(o.Backend, deps))}}
}

// Pick resolves the repo for backend, nil means log only
func Pick(backend string, deps modkit.Deps) repo.Repo {
	log := logger.Named("audit")
	switch backend {
	case BackendSQL:
		if deps.SQL != nil {
			return repo.NewSQL().Bind(deps.SQL)
		}
	case BackendCH:
		if deps.CH != nil {
			return repo.NewCH(deps.CH)
		}
	case BackendLog:
		return nil
	}
	log.Warn().Str("backend", backend).Msg("audit store not configured, logging events only")
	return nil
}

// MountRoutes is a no op, audit has no http surface
func (m *Module) MountRoutes(httpkit.Router) {}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
