// Package testkit holds assertions and seam helpers shared by the package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func recovered(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	if recovered(fn) == nil {
		t.Fatalf("expected panic, got none")
	}
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	if v := recovered(fn); v != nil {
		t.Fatalf("unexpected panic: %v", v)
	}
}

// MustContain fails unless out contains want
// log output gets long, so on failure out is saved under the test temp dir instead of printed
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	path := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(path, []byte(out), 0o600)
	t.Fatalf("output does not contain %q, see %s", want, path)
}

// Swap points a package seam at replacement until the test ends
func Swap[T any](t *testing.T, seam *T, replacement T) {
	t.Helper()
	prev := *seam
	t.Cleanup(func() { *seam = prev })
	*seam = replacement
}

var serial sync.Mutex

// Serial keeps tests that Swap a shared seam from running at the same time
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
