package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdspan/internal/config"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "MDSPAN_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSPAN_CONFIG: config file name or path
	BaseURL    string // MDSPAN_BASE_URL: base for /r/ and /u/ links
	Format     string // MDSPAN_FORMAT: json, yaml, text, html
	Workers    int    // MDSPAN_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSPAN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSPAN_CONFIG":   true,
	"MDSPAN_BASE_URL": true,
	"MDSPAN_FORMAT":   true,
	"MDSPAN_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDSPAN_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDSPAN_CONFIG"),
		BaseURL:    getenv("MDSPAN_BASE_URL"),
		Format:     strings.ToLower(getenv("MDSPAN_FORMAT")),
	}

	// Parse int for workers; invalid values are ignored
	if workers := getenv("MDSPAN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSPAN_* variables.
// Helps catch typos like MDSPAN_BASEURL instead of MDSPAN_BASE_URL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is still
// empty or at its built-in default.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.BaseURL != "" && cfg.BaseURL == "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.Format != "" && (cfg.Output.Format == "" || cfg.Output.Format == defaults.Output.Format) {
		cfg.Output.Format = env.Format
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
