package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdspan/internal/fileutil"
	"github.com/alnah/go-mdspan/internal/listing"
	"github.com/alnah/go-mdspan/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxPlaceholderLength = 100  // Stands in for a whole table
	MaxListingFields     = 16
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
	FormatHTML = "html"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Formats lists the accepted output.format values.
var Formats = []string{FormatJSON, FormatYAML, FormatText, FormatHTML}

// ColorModes lists the accepted output.color values.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// AppDir is the directory searched under the user config directory.
const AppDir = "go-mdspan"

// Config holds all configuration for formatting runs.
type Config struct {
	BaseURL              string        `yaml:"baseURL"`
	TablePlaceholder     string        `yaml:"tablePlaceholder"`
	NormalizeLineEndings *bool         `yaml:"normalizeLineEndings"` // nil = default (on)
	Output               OutputConfig  `yaml:"output"`
	Listing              ListingConfig `yaml:"listing"`
	Workers              int           `yaml:"workers"` // 0 = auto
}

// OutputConfig defines how results are written.
type OutputConfig struct {
	Format string `yaml:"format"` // json, yaml, text, html (default: json)
	Color  string `yaml:"color"`  // auto, always, never (default: auto)
	Lexer  string `yaml:"lexer"`  // chroma lexer for code blocks in HTML (empty = guess)
}

// ListingConfig defines which listing fields are annotated.
type ListingConfig struct {
	Fields []string `yaml:"fields"` // Empty = every supported field
}

// Normalize reports whether line endings are normalized.
func (c *Config) Normalize() bool {
	return c.NormalizeLineEndings == nil || *c.NormalizeLineEndings
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers that
// build a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("baseURL", c.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: baseURL %q (must be an absolute http or https URL)", ErrInvalidValue, c.BaseURL)
		}
	}
	if err := validateFieldLength("tablePlaceholder", c.TablePlaceholder, MaxPlaceholderLength); err != nil {
		return err
	}

	if err := validateEnum("output.format", c.Output.Format, Formats); err != nil {
		return err
	}
	if err := validateEnum("output.color", c.Output.Color, ColorModes); err != nil {
		return err
	}

	if len(c.Listing.Fields) > MaxListingFields {
		return fmt.Errorf("%w: listing.fields (%d entries, max %d)", ErrFieldTooLong, len(c.Listing.Fields), MaxListingFields)
	}
	supported := listing.Fields()
	for i, f := range c.Listing.Fields {
		if !contains(supported, f) {
			return fmt.Errorf("%w: listing.fields[%d] %q (must be one of %s)", ErrInvalidValue, i, f, strings.Join(supported, ", "))
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" || contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatJSON, Color: ColorAuto},
	}
}

// applyDefaults fills enumerated fields left empty by a config file and
// lower-cases the ones that were set.
func (c *Config) applyDefaults() {
	c.Output.Format = strings.ToLower(c.Output.Format)
	c.Output.Color = strings.ToLower(c.Output.Color)
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
