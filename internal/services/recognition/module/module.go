// Package module wires the recognition models into the API using modkit
package module

import (
	"context"

	modkit "producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	str "producescan/internal/platform/strings"
	rhttp "producescan/internal/services/recognition/http"
)

// Module implements the recognition module
type Module struct {
	b     modkit.Built
	ports Ports
	rt    Runtime
}

// New constructs the recognition module and probes the models once
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithRuntime(deps, Open(context.Background(), FromConfig(deps.Cfg)), opts...)
}

// NewWithRuntime constructs the module around an already opened runtime
func NewWithRuntime(_ modkit.Deps, rt Runtime, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("recognition"),
		modkit.WithPrefix("/recognition"),
	}, opts...)...)

	return &Module{
		b:  b,
		rt: rt,
		ports: Ports{
			Classifier: rt.Classifier,
			Assessor:   rt.Assessor,
			Lifecycle:  rt.Models,
			Status:     rt.Models,
		},
	}
}

// MountRoutes mounts the model status routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { rhttp.Register(rr, m.rt.Models) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
