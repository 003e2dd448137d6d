package span

import "fmt"

// Editor applies one pass's edits to a Buffer.
//
// Patterns are matched against Snapshot, the text as it was when the
// editor was created; edits are expressed in snapshot coordinates and
// applied to the live buffer. Deleted counts the bytes removed so far
// (negative when a replacement grew the text), so a snapshot offset p
// to the right of every edit made so far lives at p - Deleted.
//
// Edits must be issued left to right and must not overlap.
type Editor struct {
	buf      *Buffer
	snapshot string
	deleted  int
	cursor   int // snapshot offset of the end of the last edit
}

// NewEditor starts a pass over buf.
func NewEditor(buf *Buffer) *Editor {
	return &Editor{buf: buf, snapshot: buf.String()}
}

// Buffer returns the live buffer.
func (e *Editor) Buffer() *Buffer {
	return e.buf
}

// Snapshot returns the text at pass entry.
func (e *Editor) Snapshot() string {
	return e.snapshot
}

// Deleted returns the net number of bytes removed by this pass.
func (e *Editor) Deleted() int {
	return e.deleted
}

// Live translates a snapshot offset into the live buffer.
func (e *Editor) Live(pos int) int {
	return pos - e.deleted
}

// Delete removes the snapshot range [start, end) from the live buffer.
func (e *Editor) Delete(start, end int) {
	e.Replace(start, end, "")
}

// Replace substitutes repl for the snapshot range [start, end).
func (e *Editor) Replace(start, end int, repl string) {
	if start < e.cursor || end < start || end > len(e.snapshot) {
		panic(fmt.Sprintf("span: edit [%d,%d) out of order (cursor %d, snapshot length %d)", start, end, e.cursor, len(e.snapshot)))
	}
	e.buf.Replace(e.Live(start), e.Live(end), repl)
	e.deleted += (end - start) - len(repl)
	e.cursor = end
}

// Covered reports whether the snapshot range [start, end) overlaps, in
// the live buffer, an annotation of one of the given kinds. The range
// must lie to the right of every edit made so far.
func (e *Editor) Covered(start, end int, kinds ...Kind) bool {
	return e.buf.Covered(e.Live(start), e.Live(end), kinds...)
}

// Annotate adds an annotation over the live range [start, end).
func (e *Editor) Annotate(start, end int, kind Kind, payload string) {
	e.buf.Add(start, end, kind, payload)
}
