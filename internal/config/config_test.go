package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoadWithFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "psyhunter.yml")
	configBody := []byte("profile: people/jordan.json\ntrace: traces/neo.json\nformat: json\nlisten: 127.0.0.1:9000\npolicies:\n  - console\n  - dashboard\nlog:\n  level: debug\n")
	if err := os.WriteFile(configPath, configBody, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(envFormat, "ndjson")
	t.Setenv(envNoColor, "1")

	loader := Loader{ConfigPath: configPath, EnvFile: filepath.Join(dir, "missing.env")}
	cfg, err := loader.Load(Overrides{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}

	if cfg.ProfilePath != "people/jordan.json" || cfg.TracePath != "traces/neo.json" {
		t.Fatalf("unexpected paths: %s %s", cfg.ProfilePath, cfg.TracePath)
	}

	if cfg.Format != FormatNDJSON {
		t.Fatalf("env override should set format to ndjson, got %s", cfg.Format)
	}

	if !cfg.NoColor {
		t.Fatalf("env override should disable colour")
	}

	if len(cfg.Policies) != 2 || cfg.Policies[1] != "dashboard" {
		t.Fatalf("unexpected policies: %#v", cfg.Policies)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected listen/log: %s %s", cfg.ListenAddr, cfg.LogLevel)
	}
}

func TestLoaderDotenvYieldsToProcessEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PSYHUNTER_PROFILE=from-dotenv.json\nPSYHUNTER_TRACE=trace-dotenv.json\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	t.Setenv(envTrace, "trace-process.json")

	loader := Loader{ConfigPath: filepath.Join(dir, "none.yml"), EnvFile: envPath}
	cfg, err := loader.Load(Overrides{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ProfilePath != "from-dotenv.json" {
		t.Fatalf("expected dotenv profile, got %s", cfg.ProfilePath)
	}
	if cfg.TracePath != "trace-process.json" {
		t.Fatalf("process env should win over dotenv, got %s", cfg.TracePath)
	}
}

func TestOverridesWin(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "psyhunter.yml")
	if err := os.WriteFile(configPath, []byte("policies: console\nprofile: file.json\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	noColor := true
	loader := Loader{ConfigPath: configPath, EnvFile: filepath.Join(dir, "none.env")}
	cfg, err := loader.Load(Overrides{ProfilePath: "flag.json", Policies: []string{"Dashboard"}, NoColor: &noColor})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ProfilePath != "flag.json" {
		t.Fatalf("expected overrides to replace profile, got %s", cfg.ProfilePath)
	}
	if len(cfg.Policies) != 1 || cfg.Policies[0] != "dashboard" {
		t.Fatalf("expected lowercased override policies, got %#v", cfg.Policies)
	}
	if !cfg.NoColor {
		t.Fatalf("expected no-color override")
	}
}

func TestLoaderRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "psyhunter.yml")
	if err := os.WriteFile(configPath, []byte("policies: [console\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader := Loader{ConfigPath: configPath, EnvFile: filepath.Join(dir, "none.env")}
	if _, err := loader.Load(Overrides{}); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RuntimeConfig)
		wantErr bool
	}{
		{"defaults", func(*RuntimeConfig) {}, false},
		{"no policies", func(c *RuntimeConfig) { c.Policies = nil }, true},
		{"bad format", func(c *RuntimeConfig) { c.Format = "xml" }, true},
		{"bad log level", func(c *RuntimeConfig) { c.LogLevel = "loud" }, true},
		{"bad log format", func(c *RuntimeConfig) { c.LogFormat = "yaml" }, true},
		{"public listen address", func(c *RuntimeConfig) { c.ListenAddr = "0.0.0.0:8501" }, true},
		{"localhost listen address", func(c *RuntimeConfig) { c.ListenAddr = "localhost:8501" }, false},
		{"ipv6 loopback", func(c *RuntimeConfig) { c.ListenAddr = "[::1]:8501" }, false},
		{"missing port", func(c *RuntimeConfig) { c.ListenAddr = "127.0.0.1" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRuntimeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got := ParseList("console, dashboard\nconsole")
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %#v", got)
	}
	if ParseList("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}
