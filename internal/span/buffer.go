package span

import "fmt"

// Buffer is the live text plus the annotations accumulated so far.
// A Buffer is owned by a single call and is not safe for concurrent use.
type Buffer struct {
	text        []byte
	annotations []Annotation
}

// NewBuffer creates a buffer holding a copy of s with no annotations.
func NewBuffer(s string) *Buffer {
	return &Buffer{text: []byte(s)}
}

// String returns the current text.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the current text length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Annotations returns a copy of the annotations in insertion order.
func (b *Buffer) Annotations() []Annotation {
	if len(b.annotations) == 0 {
		return nil
	}
	out := make([]Annotation, len(b.annotations))
	copy(out, b.annotations)
	return out
}

// Add appends an annotation over [start, end). It panics when the range
// is outside the current text, since that means a pass lost track of its
// offsets.
func (b *Buffer) Add(start, end int, kind Kind, payload string) {
	if start < 0 || end < start || end > len(b.text) {
		panic(fmt.Sprintf("span: annotation [%d,%d) outside text of length %d", start, end, len(b.text)))
	}
	b.annotations = append(b.annotations, Annotation{Start: start, End: end, Kind: kind, Payload: payload})
}

// Covered reports whether [start, end) overlaps an annotation of any of
// the given kinds.
func (b *Buffer) Covered(start, end int, kinds ...Kind) bool {
	for _, a := range b.annotations {
		if !a.Overlaps(start, end) {
			continue
		}
		for _, k := range kinds {
			if a.Kind == k {
				return true
			}
		}
	}
	return false
}

// CoveredBy reports whether [start, end) overlaps an annotation for which
// match returns true.
func (b *Buffer) CoveredBy(start, end int, match func(Kind) bool) bool {
	for _, a := range b.annotations {
		if a.Overlaps(start, end) && match(a.Kind) {
			return true
		}
	}
	return false
}

// Delete removes [start, end) from the text.
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Replace substitutes repl for [start, end) and moves existing
// annotations with the text: positions before the edit stay put,
// positions at or after end shift by the length change, and positions
// inside the edited range collapse to start. An annotation that was
// non-empty and collapses to empty is dropped.
func (b *Buffer) Replace(start, end int, repl string) {
	if start < 0 || end < start || end > len(b.text) {
		panic(fmt.Sprintf("span: edit [%d,%d) outside text of length %d", start, end, len(b.text)))
	}
	delta := len(repl) - (end - start)

	next := make([]byte, 0, len(b.text)+delta)
	next = append(next, b.text[:start]...)
	next = append(next, repl...)
	next = append(next, b.text[end:]...)
	b.text = next

	move := func(pos int) int {
		switch {
		case pos <= start:
			return pos
		case pos >= end:
			return pos + delta
		default:
			return start
		}
	}

	kept := b.annotations[:0]
	for _, a := range b.annotations {
		wasEmpty := a.Start == a.End
		a.Start, a.End = move(a.Start), move(a.End)
		if a.Start == a.End && !wasEmpty {
			continue
		}
		kept = append(kept, a)
	}
	b.annotations = kept
}
