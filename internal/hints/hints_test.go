package hints

// Notes:
// - ForColor tests cannot use t.Parallel() because they modify the
//   package-level NoColorSet variable.
// These are acceptable gaps: we test observable behavior through the hook.

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForColor_NoColorSet(t *testing.T) {
	orig := NoColorSet
	defer func() { NoColorSet = orig }()
	NoColorSet = func() bool { return true }

	hint := ForColor()

	if !strings.Contains(hint, "NO_COLOR") {
		t.Errorf("expected NO_COLOR suggestion, got %q", hint)
	}
	if !strings.Contains(hint, "--color always") {
		t.Errorf("expected --color suggestion, got %q", hint)
	}
}

func TestForColor_NoColorUnset(t *testing.T) {
	orig := NoColorSet
	defer func() { NoColorSet = orig }()
	NoColorSet = func() bool { return false }

	hint := ForColor()

	if strings.Contains(hint, "NO_COLOR") {
		t.Errorf("should not mention NO_COLOR when unset, got %q", hint)
	}
	if !strings.Contains(hint, "--color always") {
		t.Errorf("expected --color suggestion, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", ".config", "go-mdspan", "foo.yaml")

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "local paths only",
			paths:    []string{"foo.yaml", "foo.yml"},
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "with user config path",
			paths:    []string{"foo.yaml", userPath},
			contains: "create " + userPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint should not contain %q, got %q", tt.excludes, hint)
			}
		})
	}
}

func TestForMalformedEntity(t *testing.T) {
	t.Parallel()

	if hint := ForMalformedEntity("&#x;"); !strings.Contains(hint, "&#x;") || !strings.Contains(hint, "&amp;") {
		t.Errorf("ForMalformedEntity(&#x;) = %q, want reference and &amp; mentioned", hint)
	}
	if hint := ForMalformedEntity(""); !strings.Contains(hint, "&amp;") {
		t.Errorf("ForMalformedEntity(\"\") = %q, want &amp; mentioned", hint)
	}
}

func TestForUnknownValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{
			name:      "empty available",
			available: []string{},
			wantEmpty: true,
		},
		{
			name:      "with formats",
			available: []string{"json", "yaml", "text", "html"},
			contains:  "json, yaml, text, html",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForUnknownValue(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForMalformedEntity("&#;"),
		ForInvalidBaseURL(),
		ForUnknownValue([]string{"a"}),
		ForOutputDirectory(),
		ForInputTooLarge(),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
