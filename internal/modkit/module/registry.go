package module

import "sync"

// registry maps module name to its Ports() value, filled once api.Modules has wired everything
var registry sync.Map

// Register records the port set of a module
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs returns the port set registered under name when it has type T
func PortsAs[T any](name string) (T, bool) {
	v, ok := registry.Load(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Reset forgets every registration
func Reset() { registry.Clear() }
