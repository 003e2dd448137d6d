package mdspan

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-mdspan/internal/entity"
	"github.com/alnah/go-mdspan/internal/pipeline"
)

// DefaultTablePlaceholder replaces table blocks when no placeholder is set.
const DefaultTablePlaceholder = pipeline.DefaultTablePlaceholder

// Formatter converts markdown into annotated text.
// Create with NewFormatter; a Formatter is immutable and safe for
// concurrent use.
type Formatter struct {
	cfg          formatterConfig
	preprocessor pipeline.Preprocessor
	engine       *pipeline.Engine
}

// formatterConfig holds the options collected before the engine is built.
type formatterConfig struct {
	baseURL          string
	tablePlaceholder string
	normalize        bool
}

// Option configures a Formatter.
type Option func(*formatterConfig)

// WithBaseURL sets the prefix for site-relative link targets ("/wiki"
// becomes baseURL + "/wiki"). It must be an absolute http or https URL.
func WithBaseURL(baseURL string) Option {
	return func(c *formatterConfig) {
		c.baseURL = baseURL
	}
}

// WithTablePlaceholder sets the text that stands in for a table block.
func WithTablePlaceholder(placeholder string) Option {
	return func(c *formatterConfig) {
		c.tablePlaceholder = placeholder
	}
}

// WithLineEndingNormalization toggles CRLF/CR to LF conversion. It is
// on by default.
func WithLineEndingNormalization(enabled bool) Option {
	return func(c *formatterConfig) {
		c.normalize = enabled
	}
}

// NewFormatter creates a Formatter with default configuration.
// Returns an error wrapping ErrInvalidBaseURL or ErrEmptyPlaceholder when
// an option value is unusable.
func NewFormatter(opts ...Option) (*Formatter, error) {
	cfg := formatterConfig{
		tablePlaceholder: DefaultTablePlaceholder,
		normalize:        true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateBaseURL(cfg.baseURL); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.tablePlaceholder) == "" {
		return nil, ErrEmptyPlaceholder
	}

	f := &Formatter{
		cfg: cfg,
		engine: pipeline.NewEngine(pipeline.Options{
			BaseURL:          cfg.baseURL,
			TablePlaceholder: cfg.tablePlaceholder,
		}),
	}
	if cfg.normalize {
		f.preprocessor = &pipeline.LineEndingPreprocessor{}
	} else {
		f.preprocessor = pipeline.NopPreprocessor{}
	}
	return f, nil
}

// validateBaseURL accepts "" (site-relative targets stay relative) or an
// absolute http(s) URL with a host.
func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidBaseURL, raw)
	}
	return nil
}

// BaseURL returns the configured base URL.
func (f *Formatter) BaseURL() string {
	return f.cfg.baseURL
}

// TablePlaceholder returns the configured table placeholder.
func (f *Formatter) TablePlaceholder() string {
	return f.cfg.tablePlaceholder
}

// Format strips markup from raw and returns the remaining text with its
// annotations. Empty input yields an empty Result and no error.
func (f *Formatter) Format(raw string) (*Result, error) {
	if raw == "" {
		return &Result{}, nil
	}

	content := f.preprocessor.Preprocess(raw)

	decoded, err := entity.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decoding entities: %w", err)
	}

	text, annotations := f.engine.Annotate(decoded)
	return &Result{Text: text, Annotations: annotations}, nil
}

// Format runs a Formatter built from opts over raw.
func Format(raw string, opts ...Option) (*Result, error) {
	f, err := NewFormatter(opts...)
	if err != nil {
		return nil, err
	}
	return f.Format(raw)
}
