package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/maxlift/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestStorageConfig_Defaults(t *testing.T) {
	cfg := StorageConfig{Path: "./data"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("file backend should pass: %v", err)
	}
	if cfg.Backend != "file" {
		t.Errorf("backend = %q, want file", cfg.Backend)
	}

	cfg = StorageConfig{Backend: "sqlite", Path: "./maxlift.db"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite backend should pass: %v", err)
	}
	if cfg.Driver != "sqlite3" {
		t.Errorf("driver = %q, want sqlite3", cfg.Driver)
	}
}

func TestStorageConfig_Invalid(t *testing.T) {
	cases := []StorageConfig{
		{Backend: "redis", Path: "x"},
		{Backend: "file"},
		{Backend: "sqlite", Path: "x.db", Driver: "postgres"},
	}
	for _, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("%+v should fail validation", c)
		}
	}

	mem := StorageConfig{Backend: "memory"}
	if err := mem.Validate(); err != nil {
		t.Errorf("memory backend needs no path: %v", err)
	}
}

func TestEventsConfig_NegativeDurations(t *testing.T) {
	for _, cfg := range []EventsConfig{
		{ProgressThrottle: -time.Second},
		{Heartbeat: -time.Second},
	} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%+v should fail validation", cfg)
		}
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("MAXLIFT_TEST_TOKEN", "s3cret")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `app:
  log_level: DEBUG
  http:
    port: 9090
storage:
  backend: sqlite
  path: ./maxlift.db
  driver: sqlite
auth:
  mode: token
  token: ${MAXLIFT_TEST_TOKEN}
events:
  progress_throttle: 500ms
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOptional(path, cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Driver != "sqlite" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if !cfg.Storage.Watch {
		t.Error("watch default should survive a file that omits it")
	}
	if cfg.Auth.Token != "s3cret" {
		t.Errorf("token = %q, want expanded env value", cfg.Auth.Token)
	}
	if cfg.Events.ProgressThrottle != 500*time.Millisecond {
		t.Errorf("throttle = %v", cfg.Events.ProgressThrottle)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Storage.Path != "./data" || cfg.App.HTTP.Port != 8080 {
		t.Errorf("defaults changed: %+v", cfg)
	}
}
