package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadDotEnv_LoadsWithoutOverriding(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PSCAN_DOTENV_SET", "from-env")
	t.Setenv("PSCAN_DOTENV_NEW", "")
	_ = os.Unsetenv("PSCAN_DOTENV_NEW")

	p := writeEnv(t, "PSCAN_DOTENV_SET=from-file\nPSCAN_DOTENV_NEW=loaded\n")
	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("PSCAN_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing value overridden: %q", got)
	}
	if got := os.Getenv("PSCAN_DOTENV_NEW"); got != "loaded" {
		t.Fatalf("new value = %q", got)
	}
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	t.Setenv("APP_ENV", "")
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

func TestLoadDotEnv_SkippedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PSCAN_DOTENV_PROD", "")
	_ = os.Unsetenv("PSCAN_DOTENV_PROD")

	p := writeEnv(t, "PSCAN_DOTENV_PROD=leaked\n")
	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("PSCAN_DOTENV_PROD"); got != "" {
		t.Fatalf("production loaded %q", got)
	}
}
