package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in m.Ports(), either the bundle itself or one of its exported fields
// a pointer to a struct bundle is followed once
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if t, ok := p.(T); ok {
		return t, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous || len(f.Index) > 1 {
			continue
		}
		if t, ok := rv.FieldByIndex(f.Index).Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module: %s exposes no %s", m.Name(), reflect.TypeFor[T]()))
	}
	return t
}
