package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("expected default max size 10, got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("expected default format 'yaml', got %s", cfg.Output.Format)
	}
	if cfg.DDL.Dialect != "postgres" {
		t.Errorf("expected default dialect 'postgres', got %s", cfg.DDL.Dialect)
	}
	if cfg.Profile.SkipOptional || cfg.Profile.FixDoc || cfg.Instance.Populate {
		t.Error("expected boolean options to default to false")
	}
	if cfg.Profile.Attributes == nil || len(cfg.Profile.Attributes) != 0 {
		t.Errorf("expected empty attribute overrides, got %v", cfg.Profile.Attributes)
	}
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
log:
  level: debug
output:
  format: json
profile:
  skip_optional: true
  attributes:
    - fullName=name
ddl:
  dialect: sqlite
`
	os.WriteFile("schemaprof.yaml", []byte(configContent), 0644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Output.Format)
	}
	if !cfg.Profile.SkipOptional {
		t.Error("expected skip_optional to be true")
	}
	if len(cfg.Profile.Attributes) != 1 || cfg.Profile.Attributes[0] != "fullName=name" {
		t.Errorf("expected attribute override fullName=name, got %v", cfg.Profile.Attributes)
	}
	if cfg.DDL.Dialect != "sqlite" {
		t.Errorf("expected dialect 'sqlite', got %s", cfg.DDL.Dialect)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(path, []byte("instance:\n  populate: true\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	if !cfg.Instance.Populate {
		t.Error("expected populate to be true")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("SCHEMAPROF_DDL_DIALECT", "sqlite")
	t.Setenv("SCHEMAPROF_OUTPUT_NO_COLOR", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DDL.Dialect != "sqlite" {
		t.Errorf("expected dialect from environment, got %s", cfg.DDL.Dialect)
	}
	if !cfg.Output.NoColor {
		t.Error("expected no_color from environment")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad size", func(c *Config) { c.Log.MaxSizeMB = 0 }, true},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"bad dialect", func(c *Config) { c.DDL.Dialect = "mysql" }, true},
		{"bad override", func(c *Config) { c.Profile.Attributes = []string{"fullName"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides([]string{"fullName=name", " dob = birth_date "})
	if err != nil {
		t.Fatalf("ParseOverrides() error = %v", err)
	}
	if len(got) != 2 || got["fullName"] != "name" || got["dob"] != "birth_date" {
		t.Errorf("ParseOverrides() = %v", got)
	}

	for _, bad := range []string{"fullName", "=name", "fullName="} {
		if _, err := ParseOverrides([]string{bad}); err == nil {
			t.Errorf("ParseOverrides(%q) expected error", bad)
		}
	}
}
