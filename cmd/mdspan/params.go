package main

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/config"
)

// resolveConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
// The config file comes from --config, then MDSPAN_CONFIG.
func resolveConfig(common commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeEngineFlags merges formatter flags into config. CLI values override config values.
func mergeEngineFlags(f engineFlags, cfg *config.Config) {
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.placeholder != "" {
		cfg.TablePlaceholder = f.placeholder
	}
	if f.noNormalize {
		off := false
		cfg.NormalizeLineEndings = &off
	}
}

// mergeRenderFlags merges rendering flags into config. CLI values override config values.
func mergeRenderFlags(f renderFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Output.Format = strings.ToLower(f.format)
	}
	if f.color != "" {
		cfg.Output.Color = strings.ToLower(f.color)
	}
	if f.lexer != "" {
		cfg.Output.Lexer = f.lexer
	}
}

// newFormatter builds a Formatter from the effective configuration.
func newFormatter(cfg *config.Config) (*mdspan.Formatter, error) {
	opts := []mdspan.Option{
		mdspan.WithBaseURL(cfg.BaseURL),
		mdspan.WithLineEndingNormalization(cfg.Normalize()),
	}
	if cfg.TablePlaceholder != "" {
		opts = append(opts, mdspan.WithTablePlaceholder(cfg.TablePlaceholder))
	}
	return mdspan.NewFormatter(opts...)
}
