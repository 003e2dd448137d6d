package span

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestBufferReplace - Annotations move with the text
// ---------------------------------------------------------------------------

func TestBufferReplace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		existing []Annotation
		start    int
		end      int
		repl     string
		wantText string
		want     []Annotation
	}{
		{
			name:     "delete before annotation shifts it left",
			text:     "**ab",
			existing: []Annotation{{Start: 2, End: 4, Kind: Bold}},
			start:    0, end: 2,
			wantText: "ab",
			want:     []Annotation{{Start: 0, End: 2, Kind: Bold}},
		},
		{
			name:     "delete after annotation leaves it alone",
			text:     "ab**",
			existing: []Annotation{{Start: 0, End: 2, Kind: Bold}},
			start:    2, end: 4,
			wantText: "ab",
			want:     []Annotation{{Start: 0, End: 2, Kind: Bold}},
		},
		{
			name:     "delete inside annotation shrinks it",
			text:     "abcdef",
			existing: []Annotation{{Start: 1, End: 5, Kind: Italic}},
			start:    2, end: 4,
			wantText: "abef",
			want:     []Annotation{{Start: 1, End: 3, Kind: Italic}},
		},
		{
			name:     "delete swallowing annotation drops it",
			text:     "abcdef",
			existing: []Annotation{{Start: 2, End: 4, Kind: Italic}},
			start:    1, end: 5,
			wantText: "af",
			want:     nil,
		},
		{
			name:     "replacement grows text",
			text:     "a|b\nx",
			existing: []Annotation{{Start: 4, End: 5, Kind: Bold}},
			start:    0, end: 3,
			repl:     "[Table]",
			wantText: "[Table]\nx",
			want:     []Annotation{{Start: 8, End: 9, Kind: Bold}},
		},
		{
			name:     "empty annotation at edit start survives",
			text:     "abc",
			existing: []Annotation{{Start: 1, End: 1, Kind: Link}},
			start:    1, end: 2,
			wantText: "ac",
			want:     []Annotation{{Start: 1, End: 1, Kind: Link}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuffer(tt.text)
			for _, a := range tt.existing {
				b.Add(a.Start, a.End, a.Kind, a.Payload)
			}
			b.Replace(tt.start, tt.end, tt.repl)

			if got := b.String(); got != tt.wantText {
				t.Errorf("String() = %q, want %q", got, tt.wantText)
			}
			if diff := cmp.Diff(tt.want, b.Annotations()); diff != "" {
				t.Errorf("Annotations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBufferAddOutOfRangePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Add() did not panic for range past end of text")
		}
	}()
	NewBuffer("abc").Add(1, 4, Bold, "")
}

func TestBufferCovered(t *testing.T) {
	t.Parallel()

	b := NewBuffer("0123456789")
	b.Add(2, 5, Monospace, "")

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"inside", 3, 4, true},
		{"overlapping left edge", 0, 3, true},
		{"overlapping right edge", 4, 8, true},
		{"touching left edge", 0, 2, false},
		{"touching right edge", 5, 8, false},
		{"empty range inside", 3, 3, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := b.Covered(tt.start, tt.end, Monospace); got != tt.want {
				t.Errorf("Covered(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
			if b.Covered(tt.start, tt.end, Bold) {
				t.Errorf("Covered(%d, %d, Bold) = true, want false", tt.start, tt.end)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEditor - Snapshot to live offset translation
// ---------------------------------------------------------------------------

func TestEditorTracksDeletedBytes(t *testing.T) {
	t.Parallel()

	// Strip every "**" pair around words, matching on the snapshot.
	b := NewBuffer("**a** and **bc**")
	e := NewEditor(b)

	matches := [][2]int{{0, 5}, {10, 16}}
	for _, m := range matches {
		e.Delete(m[0], m[0]+2)
		start, end := e.Live(m[0]+2), e.Live(m[1]-2)
		e.Delete(m[1]-2, m[1])
		e.Annotate(start, end, Bold, "")
	}

	if got, want := b.String(), "a and bc"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got, want := e.Deleted(), 8; got != want {
		t.Errorf("Deleted() = %d, want %d", got, want)
	}
	want := []Annotation{
		{Start: 0, End: 1, Kind: Bold},
		{Start: 6, End: 8, Kind: Bold},
	}
	if diff := cmp.Diff(want, b.Annotations()); diff != "" {
		t.Errorf("Annotations() mismatch (-want +got):\n%s", diff)
	}
	if e.Snapshot() != "**a** and **bc**" {
		t.Errorf("Snapshot() changed to %q", e.Snapshot())
	}
}

func TestEditorReplaceCanGrowText(t *testing.T) {
	t.Parallel()

	b := NewBuffer("ab|cd")
	e := NewEditor(b)
	e.Replace(0, 2, "xyz")

	if got := e.Deleted(); got != -1 {
		t.Errorf("Deleted() = %d, want -1", got)
	}
	if got := e.Live(3); got != 4 {
		t.Errorf("Live(3) = %d, want 4", got)
	}
	if got := b.String(); got != "xyz|cd" {
		t.Errorf("String() = %q, want %q", got, "xyz|cd")
	}
}

func TestEditorRejectsOutOfOrderEdits(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Delete() did not panic for an edit left of the previous one")
		}
	}()
	e := NewEditor(NewBuffer("abcdef"))
	e.Delete(3, 4)
	e.Delete(0, 1)
}

// ---------------------------------------------------------------------------
// TestKind - Names and text marshalling
// ---------------------------------------------------------------------------

func TestKindTextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != k {
			t.Errorf("round trip of %v = %v", k, got)
		}
	}
}

func TestKindUnknown(t *testing.T) {
	t.Parallel()

	if _, err := Kind(0).MarshalText(); err == nil {
		t.Error("MarshalText(0) error = nil, want error")
	}
	var k Kind
	if err := k.UnmarshalText([]byte("blink")); err == nil {
		t.Error("UnmarshalText(blink) error = nil, want error")
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q, want kind(99)", got)
	}
}

func TestAnnotationJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Annotation{Start: 1, End: 3, Kind: SubredditLink, Payload: "golang"})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"start":1,"end":3,"kind":"subreddit","payload":"golang"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
