package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	raw := []byte(`
version: "1"
self_id: 10000
nicknames:
  - mtbot
  - assistant
log:
  level: debug
  format: json
gateway:
  enabled: true
  bind: "127.0.0.1:9210"
`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1")
	}
	if cfg.SelfID != 10000 {
		t.Errorf("SelfID = %d, want 10000", cfg.SelfID)
	}
	if len(cfg.Nicknames) != 2 || cfg.Nicknames[0] != "mtbot" {
		t.Errorf("Nicknames = %v, want [mtbot assistant]", cfg.Nicknames)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if !cfg.Gateway.Enabled || cfg.Gateway.Bind != "127.0.0.1:9210" {
		t.Errorf("Gateway = %+v, want enabled on 127.0.0.1:9210", cfg.Gateway)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("MTCODE_TEST_SELF_ID", "42")
	cfg, err := Parse([]byte("version: \"1\"\nself_id: ${MTCODE_TEST_SELF_ID}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.SelfID != 42 {
		t.Errorf("SelfID = %d, want 42", cfg.SelfID)
	}
}

func TestParse_EnvDefault(t *testing.T) {
	cfg, err := Parse([]byte("version: \"1\"\nself_id: ${MTCODE_TEST_UNSET:-7}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.SelfID != 7 {
		t.Errorf("SelfID = %d, want default 7", cfg.SelfID)
	}
}

func TestParse_EnvOverridesDefault(t *testing.T) {
	t.Setenv("MTCODE_TEST_SELF_ID", "42")
	cfg, err := Parse([]byte("version: \"1\"\nself_id: ${MTCODE_TEST_SELF_ID:-7}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.SelfID != 42 {
		t.Errorf("SelfID = %d, want env value 42", cfg.SelfID)
	}
}

func TestParse_UndefinedVariable(t *testing.T) {
	_, err := Parse([]byte("version: ${MTCODE_TEST_NO_SUCH_VAR}\n"))
	if err == nil {
		t.Fatal("expected error for undefined variable")
	}
	if !strings.Contains(err.Error(), "MTCODE_TEST_NO_SUCH_VAR") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestParse_ReportsAllUndefined(t *testing.T) {
	_, err := Parse([]byte("a: ${MTCODE_TEST_MISSING_A}\nb: ${MTCODE_TEST_MISSING_B}\n"))
	if err == nil {
		t.Fatal("expected error for undefined variables")
	}
	for _, want := range []string{"MTCODE_TEST_MISSING_A", "MTCODE_TEST_MISSING_B"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s: %v", want, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtcode.yaml")
	if err := os.WriteFile(path, []byte("version: \"1\"\nself_id: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SelfID != 5 {
		t.Errorf("SelfID = %d, want 5", cfg.SelfID)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}
