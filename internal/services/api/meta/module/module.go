// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	str "producescan/internal/platform/strings"

	metahttp "producescan/internal/services/api/meta/http"
	rdom "producescan/internal/services/recognition/domain"
)

// Requires are the optional ports meta reports on
type Requires struct {
	Models rdom.StatusPort
}

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var req Requires
	if p, ok := b.Ports.(Requires); ok {
		req = p
	}

	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: "producescan-api",
		StartedAt:   time.Now(),
		SQL:         orNil(deps.SQL),
		CH:          orNil(deps.CH),
		Models:      req.Models,
	}}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// orNil keeps a nil interface nil once boxed as any
func orNil[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}
