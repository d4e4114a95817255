package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"gopkg.in/yaml.v3"
)

// Config controls where data comes from and which columns are shown
type Config struct {
	DataPath       string   `yaml:"data_path"`
	StylesheetPath string   `yaml:"stylesheet_path"`
	Addr           string   `yaml:"addr"`
	DefaultColumns []string `yaml:"default_columns"`
	Authorities    []string `yaml:"authorities"`
	ExportPrefix   string   `yaml:"export_prefix"`

	// SessionMaxAge is how long an idle web session is kept
	SessionMaxAge time.Duration `yaml:"session_max_age"`
}

func Default() Config {
	return Config{
		DataPath:       "data/BBIP_metadata_20241231_with_wc.csv",
		StylesheetPath: "static/style.css",
		Addr:           ":8888",
		DefaultColumns: append([]string(nil), corpus.DefaultColumns...),
		Authorities:    append([]string(nil), corpus.AuthorityColumns...),
		ExportPrefix:   "HBW",
		SessionMaxAge:  24 * time.Hour,
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides paths and address from HBW_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("HBW_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("HBW_STYLESHEET"); v != "" {
		c.StylesheetPath = v
	}
	if v := os.Getenv("HBW_ADDR"); v != "" {
		c.Addr = v
	}
}

// ExportColumns are the display columns followed by the authorities
func (c Config) ExportColumns() []string {
	cols := make([]string, 0, len(c.DefaultColumns)+len(c.Authorities))
	cols = append(cols, c.DefaultColumns...)
	return append(cols, c.Authorities...)
}

func (c Config) Validate() error {
	var ve ValidationError

	if strings.TrimSpace(c.DataPath) == "" {
		ve.Add("data_path", "must not be empty")
	}
	if strings.TrimSpace(c.ExportPrefix) == "" {
		ve.Add("export_prefix", "must not be empty")
	} else if strings.ContainsAny(c.ExportPrefix, `/\`) {
		ve.Add("export_prefix", "must not contain path separators")
	}
	if c.SessionMaxAge <= 0 {
		ve.Add("session_max_age", "must be positive")
	}
	if len(c.DefaultColumns) == 0 {
		ve.Add("default_columns", "must list at least one column")
	}
	for _, col := range c.DefaultColumns {
		if !corpus.IsKnownColumn(col) {
			ve.Add("default_columns", fmt.Sprintf("unknown column %q", col))
		}
	}
	if len(c.Authorities) == 0 {
		ve.Add("authorities", "must list at least one column")
	}
	for _, col := range c.Authorities {
		if col != corpus.ColLCCN && col != corpus.ColWorldCat {
			ve.Add("authorities", fmt.Sprintf("%q is not an authority column", col))
		}
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every problem found in a config
type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid config:")
	for _, item := range e.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}
