package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "radscribe" {
		t.Errorf("name = %s", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %s", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development must enable debug")
	}
	if cfg.Logging.ServiceName != "radscribe" {
		t.Errorf("logging.service_name = %s", cfg.Logging.ServiceName)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Whisper.URL == "" {
		t.Error("whisper.url must get a default")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{}
	valid.ApplyDefaults()
	if err := valid.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	badEnv := Config{}
	badEnv.ApplyDefaults()
	badEnv.Environment = "qa"
	if err := badEnv.Validate(); err == nil {
		t.Error("expected validation error for unknown environment")
	}

	badPort := Config{}
	badPort.ApplyDefaults()
	badPort.Server.Port = 70000
	if err := badPort.Validate(); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
name: radscribe
environment: staging
server:
  port: 9001
whisper:
  url: http://sidecar:8387
transcribe:
  sequential: true
api:
  maintenance_mode: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := Load("radscribe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("environment = %s", cfg.Environment)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Whisper.URL != "http://sidecar:8387" {
		t.Errorf("whisper.url = %s", cfg.Whisper.URL)
	}
	if !cfg.Transcribe.Sequential {
		t.Error("transcribe.sequential = false, want true")
	}
	if !cfg.API.MaintenanceMode {
		t.Error("api.maintenance_mode = false, want true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RADSCRIBE_SERVER_PORT", "9002")

	var cfg Config
	if err := Load("radscribe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9002 {
		t.Errorf("server.port = %d, want env override 9002", cfg.Server.Port)
	}
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Env string `mapstructure:"env" validate:"omitempty,oneof=a b"`
	}
	if err := ValidateStruct(&sample{Env: "a"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := ValidateStruct(&sample{Env: "c"}); err == nil {
		t.Error("invalid struct accepted")
	}
}
