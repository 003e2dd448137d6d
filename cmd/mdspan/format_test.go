package main

// Notes:
// - planJobs: we test the stdout, single-file and directory layouts plus
//   duplicate output detection.
// - runFormat: we test batch output to a directory and streaming several
//   inputs to stdout. Worker scheduling is covered in pool_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestPlanJobs - Output path layout
// ---------------------------------------------------------------------------

func TestPlanJobs(t *testing.T) {
	t.Parallel()

	existingDir := t.TempDir()

	tests := []struct {
		name   string
		files  []string
		output string
		want   []Job
	}{
		{
			name:  "no output streams every input",
			files: []string{"a.md", "b.md"},
			want:  []Job{{InputPath: "a.md"}, {InputPath: "b.md"}},
		},
		{
			name:   "single input writes the named file",
			files:  []string{"docs/a.md"},
			output: "out/result.json",
			want:   []Job{{InputPath: "docs/a.md", OutputPath: "out/result.json"}},
		},
		{
			name:   "single input into existing directory",
			files:  []string{"docs/a.md"},
			output: existingDir,
			want:   []Job{{InputPath: "docs/a.md", OutputPath: filepath.Join(existingDir, "a.json")}},
		},
		{
			name:   "trailing slash means directory",
			files:  []string{"a.md"},
			output: "out/",
			want:   []Job{{InputPath: "a.md", OutputPath: filepath.Join("out", "a.json")}},
		},
		{
			name:   "several inputs into a directory",
			files:  []string{"x/a.md", "y/b.markdown"},
			output: "out",
			want: []Job{
				{InputPath: "x/a.md", OutputPath: filepath.Join("out", "a.json")},
				{InputPath: "y/b.markdown", OutputPath: filepath.Join("out", "b.json")},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := planJobs(tt.files, tt.output, "json")
			if err != nil {
				t.Fatalf("planJobs() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("planJobs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanJobs_DuplicateOutput(t *testing.T) {
	t.Parallel()

	_, err := planJobs([]string{"x/a.md", "y/a.md"}, "out", "json")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("planJobs() error = %v, want ErrUsage", err)
	}
	if !strings.Contains(err.Error(), "x/a.md") || !strings.Contains(err.Error(), "y/a.md") {
		t.Errorf("error %q should name both inputs", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunFormat_Directory - Batch output to files
// ---------------------------------------------------------------------------

func TestRunFormat_Directory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "results")
	a := writeFile(t, in, "a.md", "*one*")
	b := writeFile(t, in, "b.md", "~~two~~")

	env := newTestEnv("", nil)
	err := runFormat(context.Background(), []string{"-o", out, "--workers", "2", a, b}, env.Environment)
	if err != nil {
		t.Fatalf("runFormat() unexpected error: %v\nstderr: %s", err, env.stderr)
	}

	for name, wantKind := range map[string]string{"a.json": "italic", "b.json": "strikethrough"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		got := decodeResult(t, data)
		if len(got.Annotations) != 1 || got.Annotations[0].Kind != wantKind {
			t.Errorf("%s annotations = %+v, want one %s", name, got.Annotations, wantKind)
		}
	}

	stdout := env.stdout.String()
	if !strings.Contains(stdout, "Created "+filepath.Join(out, "a.json")) {
		t.Errorf("stdout should report created files, got %q", stdout)
	}
	if !strings.Contains(stdout, "2 succeeded, 0 failed") {
		t.Errorf("stdout should carry a summary, got %q", stdout)
	}
}

// ---------------------------------------------------------------------------
// TestRunFormat_Stream - Several inputs on stdout
// ---------------------------------------------------------------------------

func TestRunFormat_Stream(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	a := writeFile(t, in, "a.md", "# first")
	b := writeFile(t, in, "b.md", "* second")

	env := newTestEnv("", nil)
	err := runFormat(context.Background(), []string{"--format", "yaml", "-q", a, b}, env.Environment)
	if err != nil {
		t.Fatalf("runFormat() unexpected error: %v", err)
	}

	docs := strings.Split(env.stdout.String(), "---\n")
	if len(docs) != 2 {
		t.Fatalf("got %d YAML documents, want 2:\n%s", len(docs), env.stdout)
	}
	if !strings.Contains(docs[0], "kind: heading") {
		t.Errorf("first document should hold the heading, got:\n%s", docs[0])
	}
	if !strings.Contains(docs[1], "kind: bullet") {
		t.Errorf("second document should hold the bullet, got:\n%s", docs[1])
	}
	if env.stderr.Len() != 0 {
		t.Errorf("quiet run wrote to stderr: %q", env.stderr)
	}
}

func TestRunFormat_PartialFailure(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	good := writeFile(t, in, "good.md", "fine")
	bad := writeFile(t, in, "bad.md", "&#xZZ; &#x;")

	env := newTestEnv("", nil)
	err := runFormat(context.Background(), []string{good, bad}, env.Environment)

	if exitCodeFor(err) != ExitInput {
		t.Errorf("exit code = %d, want %d (err: %v)", exitCodeFor(err), ExitInput, err)
	}
	if !strings.Contains(err.Error(), "1 of 2 input(s) failed") {
		t.Errorf("error %q should count failures", err)
	}
	if decodeResult(t, env.stdout.Bytes()).Text != "fine" {
		t.Errorf("successful input should still be written, got %q", env.stdout)
	}
}

func TestRunFormat_HTMLFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "post.md", "**hi** [go](https://go.dev)")
	out := filepath.Join(dir, "post.html")

	env := newTestEnv("", nil)
	if err := runFormat(context.Background(), []string{"-f", "html", "-o", out, in}, env.Environment); err != nil {
		t.Fatalf("runFormat() unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{"<strong>hi</strong>", `<a href="https://go.dev">go</a>`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("HTML output missing %q, got %q", want, data)
		}
	}
}
