package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParse - goldmark path and pipe fallback
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *Table
	}{
		{
			name:  "minimal GFM table",
			input: "a|b\n-|-\n1|2",
			want: &Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"1", "2"}},
				Align:  []Align{AlignDefault, AlignDefault},
			},
		},
		{
			name:  "outer pipes and alignments",
			input: "| x | y | z |\n|:--|:-:|--:|\n| 1 | 2 | 3 |",
			want: &Table{
				Header: []string{"x", "y", "z"},
				Rows:   [][]string{{"1", "2", "3"}},
				Align:  []Align{AlignLeft, AlignCenter, AlignRight},
			},
		},
		{
			name:  "inline markup is flattened",
			input: "| **a** | `b` |\n|---|---|\n| ~~c~~ | d |",
			want: &Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"c", "d"}},
				Align:  []Align{AlignDefault, AlignDefault},
			},
		},
		{
			name:  "short rows are padded",
			input: "a|b|c\n-|-|-\n1|2",
			want: &Table{
				Header: []string{"a", "b", "c"},
				Rows:   [][]string{{"1", "2", ""}},
				Align:  []Align{AlignDefault, AlignDefault, AlignDefault},
			},
		},
		{
			name:  "separator narrower than header falls back to splitter",
			input: "a|b|c\n-|-\n1|2|3",
			want: &Table{
				Header: []string{"a", "b", "c"},
				Rows:   [][]string{{"1", "2", "3"}},
				Align:  []Align{AlignDefault, AlignDefault, AlignDefault},
			},
		},
		{
			name:  "splitter keeps escaped pipes",
			input: "a|b|c\n:-|-:\nx \\| y|z|w",
			want: &Table{
				Header: []string{"a", "b", "c"},
				Rows:   [][]string{{"x | y", "z", "w"}},
				Align:  []Align{AlignLeft, AlignRight, AlignDefault},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseNotTable(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"just text",
		"a|b\nno separator",
		"a|b\n:|:",
	} {
		if _, err := Parse(input); !errors.Is(err, ErrNotTable) {
			t.Errorf("Parse(%q) error = %v, want ErrNotTable", input, err)
		}
	}
}

func TestSplitRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"a|b", []string{"a", "b"}},
		{"| a | b |", []string{"a", "b"}},
		{"a | `x|y` | b", []string{"a", "`x|y`", "b"}},
		{`a \| b`, []string{"a | b"}},
		{"|", []string{""}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitRow(tt.in)); diff != "" {
			t.Errorf("splitRow(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

// ---------------------------------------------------------------------------
// TestText - Box-drawn grids
// ---------------------------------------------------------------------------

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table *Table
		want  []string
	}{
		{
			name: "default alignment",
			table: &Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"1", "22"}},
				Align:  []Align{AlignDefault, AlignDefault},
			},
			want: []string{
				"┌───┬────┐",
				"│ a │ b  │",
				"├───┼────┤",
				"│ 1 │ 22 │",
				"└───┴────┘",
			},
		},
		{
			name: "left center right",
			table: &Table{
				Header: []string{"x", "y", "z"},
				Rows:   [][]string{{"1", "2", "3"}, {"long", "mid", "r"}},
				Align:  []Align{AlignLeft, AlignCenter, AlignRight},
			},
			want: []string{
				"┌──────┬─────┬───┐",
				"│ x    │  y  │ z │",
				"├──────┼─────┼───┤",
				"│ 1    │  2  │ 3 │",
				"│ long │ mid │ r │",
				"└──────┴─────┴───┘",
			},
		},
		{
			name: "wide runes count two columns",
			table: &Table{
				Header: []string{"漢字", "n"},
				Rows:   [][]string{{"ab", "1"}},
				Align:  []Align{AlignDefault, AlignRight},
			},
			want: []string{
				"┌──────┬───┐",
				"│ 漢字 │ n │",
				"├──────┼───┤",
				"│ ab   │ 1 │",
				"└──────┴───┘",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := strings.Split(tt.table.Text(), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Text() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextEmpty(t *testing.T) {
	t.Parallel()

	if got := (&Table{}).Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestHTML - goldmark rendering
// ---------------------------------------------------------------------------

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "GFM table",
			input: "a|b\n-|-\n1|2",
			want:  []string{"<table>", "<th>a</th>", "<td>2</td>", "</table>"},
		},
		{
			name:  "fallback is normalised first",
			input: "a|b|c\n-|-\n1|2|3",
			want:  []string{"<table>", "<th>c</th>", "<td>3</td>"},
		},
		{
			name:  "raw HTML in cells is escaped",
			input: "a|b\n-|-\n<script>|x",
			want:  []string{"<table>", "<!-- raw HTML omitted -->"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := HTML(tt.input)
			if err != nil {
				t.Fatalf("HTML() unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("HTML() = %q, missing %q", got, w)
				}
			}
			if strings.Contains(got, "<script>") {
				t.Errorf("HTML() leaked raw HTML: %q", got)
			}
		})
	}
}

func TestHTMLNotTable(t *testing.T) {
	t.Parallel()

	if _, err := HTML("plain words"); !errors.Is(err, ErrNotTable) {
		t.Errorf("HTML() error = %v, want ErrNotTable", err)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	t.Parallel()

	want := &Table{
		Header: []string{"a|b", "c"},
		Rows:   [][]string{{"1", "2"}},
		Align:  []Align{AlignCenter, AlignRight},
	}
	got, err := Parse(want.Markdown())
	if err != nil {
		t.Fatalf("Parse(Markdown()) unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
