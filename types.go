package mdspan

import (
	"unicode/utf8"

	"github.com/alnah/go-mdspan/internal/span"
)

// Annotation marks the byte range [Start, End) of Result.Text with a Kind.
// Payload holds the resolved URL for Link, the bare name for
// SubredditLink and UserLink, and the raw source for Table.
type Annotation = span.Annotation

// Kind identifies what an annotation means to a renderer.
type Kind = span.Kind

// Annotation kinds.
const (
	Bold          = span.Bold
	Italic        = span.Italic
	Strikethrough = span.Strikethrough
	Bullet        = span.Bullet
	Heading       = span.Heading
	Monospace     = span.Monospace
	Link          = span.Link
	SubredditLink = span.SubredditLink
	UserLink      = span.UserLink
	Table         = span.Table
)

// Kinds returns every annotation kind in declaration order.
func Kinds() []Kind {
	return span.Kinds()
}

// Result is the output of Format.
type Result struct {
	Text        string       `json:"text" yaml:"text"`
	Annotations []Annotation `json:"annotations" yaml:"annotations"`
}

// Empty reports whether the result carries no text and no annotations.
func (r *Result) Empty() bool {
	return r == nil || (r.Text == "" && len(r.Annotations) == 0)
}

// ByKind returns the annotations of the given kinds, in their original order.
func (r *Result) ByKind(kinds ...Kind) []Annotation {
	if r == nil {
		return nil
	}
	var out []Annotation
	for _, a := range r.Annotations {
		for _, k := range kinds {
			if a.Kind == k {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Substring returns the text covered by a, or "" when a lies outside Text.
func (r *Result) Substring(a Annotation) string {
	if r == nil || a.Start < 0 || a.End > len(r.Text) || a.Start > a.End {
		return ""
	}
	return r.Text[a.Start:a.End]
}

// RuneOffsets returns a copy of the annotations with Start and End
// expressed in runes instead of bytes.
func (r *Result) RuneOffsets() []Annotation {
	if r == nil || len(r.Annotations) == 0 {
		return nil
	}
	out := make([]Annotation, len(r.Annotations))
	for i, a := range r.Annotations {
		a.Start = runeIndex(r.Text, a.Start)
		a.End = runeIndex(r.Text, a.End)
		out[i] = a
	}
	return out
}

func runeIndex(s string, byteOff int) int {
	if byteOff > len(s) {
		byteOff = len(s)
	}
	return utf8.RuneCountInString(s[:byteOff])
}
