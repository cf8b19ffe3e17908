package modkit

import (
	"net/http"

	"producescan/internal/modkit/httpkit"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// Mount scopes register under the module prefix with the module middleware applied
// an empty prefix registers on r itself inside a group
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	scoped := func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		if register != nil {
			register(rr)
		}
	}
	if b.Prefix == "" {
		r.Group(scoped)
		return
	}
	r.Route(b.Prefix, scoped)
}
