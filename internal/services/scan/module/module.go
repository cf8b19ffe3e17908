// Package module wires the scan pipeline into the API using modkit
package module

import (
	"context"

	"producescan/internal/core/shelflife"
	modkit "producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	"producescan/internal/platform/logger"
	"producescan/internal/platform/net/middleware"
	str "producescan/internal/platform/strings"
	shttp "producescan/internal/services/scan/http"
	ssvc "producescan/internal/services/scan/service"
)

// Module implements the scan module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   *ssvc.Svc

	register func(httpkit.Router)
}

// New constructs the scan module from injected Requires
// missing model, nutrition or audit ports are a wiring bug
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	base := []modkit.Option{
		modkit.WithName("scan"),
		modkit.WithPrefix("/scan"),
	}
	if o.MaxInFlight > 0 {
		base = append(base, modkit.WithMiddlewares(middleware.Throttle(o.MaxInFlight)))
	}
	b := modkit.Build(append(base, opts...)...)

	req, ok := b.Ports.(Requires)
	if !ok {
		panic("scan module requires modkit.WithPorts(scan.Requires{...})")
	}
	log := logger.Named("scan")

	if req.ShelfLife == nil {
		req.ShelfLife = LoadShelfLife(o.ShelfLifePath)
	}
	if req.Assets == nil {
		a, err := OpenAssets(context.Background(), o.Assets)
		if err != nil {
			log.Warn().Err(err).Str("backend", o.Assets.Backend).Msg("asset store unavailable, images will not be kept")
		}
		req.Assets = a
	}

	svc := ssvc.New(ssvc.Deps{
		Lifecycle:  req.Lifecycle,
		Classifier: req.Classifier,
		Assessor:   req.Assessor,
		Nutrition:  req.Nutrition,
		ShelfLife:  req.ShelfLife,
		Sink:       req.Sink,
		Assets:     req.Assets,
	})

	m := &Module{b: b, svc: svc, ports: Ports{Pipeline: svc}}
	m.register = func(r httpkit.Router) {
		mount := func(rr httpkit.Router) { shttp.Register(rr, m.svc, o.MaxUploadBytes) }
		switch {
		case req.Auth != nil && o.RequireAuth:
			httpkit.Protected(r, req.Auth, mount)
		case req.Auth != nil:
			r.Group(func(gr httpkit.Router) {
				gr.Use(httpkit.OptionalAuth(req.Auth))
				mount(gr)
			})
		default:
			mount(r)
		}
	}
	return m
}

// LoadShelfLife reads the table at path, falling back to the embedded table
func LoadShelfLife(path string) shelflife.Table {
	log := logger.Named("scan")
	if path != "" {
		t, err := shelflife.LoadFile(path)
		if err == nil {
			return t
		}
		log.Warn().Err(err).Str("path", path).Msg("shelf life table unreadable, using embedded table")
	}
	t, err := shelflife.Load()
	if err != nil {
		log.Error().Err(err).Msg("embedded shelf life table invalid, shelf life disabled")
		return shelflife.Empty()
	}
	return t
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.register) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
