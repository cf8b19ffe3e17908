// Package module wires nutrition into the API using modkit
package module

import (
	modkit "producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	str "producescan/internal/platform/strings"
	nhttp "producescan/internal/services/nutrition/http"
	nrepo "producescan/internal/services/nutrition/repo"
	nsvc "producescan/internal/services/nutrition/service"
)

// Module implements the nutrition module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   nsvc.Service
}

// New constructs the nutrition module over deps.SQL
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("nutrition"), modkit.WithPrefix("/nutrition")}, opts...)...)

	svc := nsvc.New(deps.SQL, nrepo.NewSQL())
	return &Module{b: b, svc: svc, ports: Ports{Reader: svc, Writer: svc}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { nhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
