// Package config loads sheetdash settings from an optional YAML file and
// SHEETDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/style"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. SHEETDASH_DPI.
const EnvPrefix = "SHEETDASH"

// Config represents the complete application configuration.
type Config struct {
	Input       string `yaml:"input" envconfig:"INPUT" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	DPI         int    `yaml:"dpi" envconfig:"DPI" validate:"min=50,max=1200"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=png jpg jpeg svg pdf tif tiff"`
	TitlePrefix string `yaml:"title_prefix" envconfig:"TITLE_PREFIX"`
	Scheme      string `yaml:"color_scheme" envconfig:"COLOR_SCHEME" validate:"required"`
	Background  string `yaml:"bg_style" envconfig:"BG_STYLE" validate:"required"`
	IndexColumn string `yaml:"index_column" envconfig:"INDEX_COLUMN"`

	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`

	// ColorSchemes and BgStyles add or replace presets. They are file-only.
	ColorSchemes map[string][]string         `yaml:"color_schemes" ignored:"true" validate:"dive,keys,required,endkeys,min=1,dive,chartcolor"`
	BgStyles     map[string]style.Background `yaml:"bg_styles" ignored:"true" validate:"dive,keys,required,endkeys"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json console"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:       "HDFC_modified.xlsx",
		OutputDir:   "exports",
		DPI:         300,
		Format:      "png",
		TitlePrefix: "HDFC",
		Scheme:      "hdfc_brand",
		Background:  "presentation",
		IndexColumn: "Category",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("chartcolor", isChartColor)

	// Use YAML keys in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// isChartColor accepts anything style.ParseColor understands.
func isChartColor(fl validator.FieldLevel) bool {
	_, err := style.ParseColor(fl.Field().String())
	return err == nil
}

// Validate checks field ranges and that the selected presets exist.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return c.Registry().Lookup(c.Scheme, c.Background)
}

// Registry returns the built-in presets merged with the configured ones.
func (c *Config) Registry() *style.Registry {
	r := style.NewRegistry()
	for name, colors := range c.ColorSchemes {
		// Colors were checked by Validate.
		_ = r.AddScheme(name, colors)
	}
	for name, bg := range c.BgStyles {
		r.AddBackground(name, bg)
	}
	return r
}
