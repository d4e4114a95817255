package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "hbw.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Expected defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbw.yaml")
	content := `data_path: corpus.parquet
addr: ":9000"
session_max_age: 30m
default_columns:
  - Title
  - Date
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataPath != "corpus.parquet" || cfg.Addr != ":9000" || cfg.SessionMaxAge != 30*time.Minute {
		t.Errorf("Unexpected config %+v", cfg)
	}
	want := []string{corpus.ColTitle, corpus.ColDate, corpus.ColLCCN, corpus.ColWorldCat}
	if diff := cmp.Diff(want, cfg.ExportColumns()); diff != "" {
		t.Errorf("ExportColumns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbw.yaml")
	if err := os.WriteFile(path, []byte("default_columns: [Title"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HBW_DATA", "/srv/hbw.csv")
	t.Setenv("HBW_ADDR", ":7000")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.DataPath != "/srv/hbw.csv" || cfg.Addr != ":7000" {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}
	if cfg.StylesheetPath != Default().StylesheetPath {
		t.Errorf("Expected stylesheet default, got %s", cfg.StylesheetPath)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DefaultColumns = []string{"Title", "Shelf mark"}
	cfg.Authorities = []string{corpus.ColTitle}
	cfg.ExportPrefix = " "

	err := cfg.Validate()
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(ve.Items) != 3 {
		t.Errorf("Expected 3 problems, got %v", ve.Items)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{
			name:   "empty authorities",
			modify: func(c *Config) { c.Authorities = nil },
			field:  "authorities",
		},
		{
			name:   "prefix with path separator",
			modify: func(c *Config) { c.ExportPrefix = "../HBW" },
			field:  "export_prefix",
		},
		{
			name:   "zero session age",
			modify: func(c *Config) { c.SessionMaxAge = 0 },
			field:  "session_max_age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			var ve ValidationError
			if !errors.As(cfg.Validate(), &ve) {
				t.Fatal("Expected ValidationError")
			}
			if len(ve.Items) != 1 || ve.Items[0].Field != tt.field {
				t.Errorf("Expected one %s problem, got %v", tt.field, ve.Items)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}
