package strings

import (
	"testing"

	"producescan/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); len(got) != 2 {
		t.Fatalf("nil should fall back, got %v", got)
	}
	if got := IfEmpty([]string{"OPTIONS"}, def); len(got) != 1 || got[0] != "OPTIONS" {
		t.Fatalf("non empty should win, got %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("scan", "module name"); got != "scan" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/scan":        "/scan",
		"nutrition":    "/nutrition",
		" /meta/ ":     "/meta",
		"recognition/": "/recognition",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		testkit.MustPanic(t, func() { MustPrefix(in) })
	}
}
