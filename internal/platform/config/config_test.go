package config

import (
	"reflect"
	"testing"
	"time"

	kit "producescan/internal/platform/testkit"
)

func TestPrefix(t *testing.T) {
	t.Parallel()

	if got := New().Prefix("CORE_").Prefix("SCAN_").key("REQUIRE_AUTH"); got != "CORE_SCAN_REQUIRE_AUTH" {
		t.Fatalf("key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_JWT_SECRET", "  s3cret ")
	if got := c.MustString("JWT_SECRET"); got != "s3cret" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("CORE_API_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("CORE_")
	t.Setenv("CORE_API_PORT", " :8080 ")
	t.Setenv("CORE_SCAN_MAX_INFLIGHT", "4")
	t.Setenv("CORE_BAD_INT", "four")
	t.Setenv("CORE_MODELS_MIN_CONFIDENCE", "0.65")
	t.Setenv("CORE_BAD_FLOAT", "high")
	t.Setenv("CORE_SCAN_REQUIRE_AUTH", "true")
	t.Setenv("CORE_BAD_BOOL", "yes please")
	t.Setenv("CORE_API_JWT_LEEWAY", "30s")
	t.Setenv("CORE_BAD_DUR", "soon")

	if got := c.MayString("API_PORT", ":4000"); got != ":8080" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", ":4000"); got != ":4000" {
		t.Fatalf("MayString default = %q", got)
	}
	if c.MayInt("SCAN_MAX_INFLIGHT", 0) != 4 || c.MayInt("BAD_INT", 7) != 7 || c.MayInt("MISSING", 3) != 3 {
		t.Fatalf("MayInt mismatch")
	}
	if c.MayFloat64("MODELS_MIN_CONFIDENCE", 0) != 0.65 || c.MayFloat64("BAD_FLOAT", 0.5) != 0.5 {
		t.Fatalf("MayFloat64 mismatch")
	}
	if !c.MayBool("SCAN_REQUIRE_AUTH", false) || !c.MayBool("BAD_BOOL", true) || c.MayBool("MISSING", false) {
		t.Fatalf("MayBool mismatch")
	}
	if c.MayDuration("API_JWT_LEEWAY", 0) != 30*time.Second || c.MayDuration("BAD_DUR", time.Second) != time.Second {
		t.Fatalf("MayDuration mismatch")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}

	t.Setenv("CORE_API_CORS_ORIGINS", " https://kiosk.example , ,https://admin.example ")
	if got := c.MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, []string{"https://kiosk.example", "https://admin.example"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ")
	if got := c.MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("blank entries should fall back, got %v", got)
	}
	if got := c.MayCSV("MISSING", nil); got != nil {
		t.Fatalf("missing should give def, got %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORE_ASSETS_")
	if got := c.MayEnum("BACKEND", "fs", "fs", "s3", "none"); got != "fs" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("CORE_ASSETS_BACKEND", "S3")
	if got := c.MayEnum("BACKEND", "fs", "fs", "s3", "none"); got != "S3" {
		t.Fatalf("case insensitive match = %q", got)
	}
	t.Setenv("CORE_ASSETS_BACKEND", "gcs")
	kit.MustPanic(t, func() { _ = c.MayEnum("BACKEND", "fs", "fs", "s3", "none") })
	if got := c.MayEnum("UNSET", "", "a"); got != "" {
		t.Fatalf("empty default = %q", got)
	}
}
