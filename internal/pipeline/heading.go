package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

// headingPattern: leading #s with an optional space, the title, and
// optional closing #s.
var headingPattern = regexp.MustCompile(`(?m)^(#+ ?)(.*?)(#*)$`)

// HeadingPass turns "# Title #" lines into a Heading over "Title ".
type HeadingPass struct{}

// Apply runs the pass.
func (HeadingPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	for _, m := range headingPattern.FindAllStringSubmatchIndex(e.Snapshot(), -1) {
		if e.Covered(m[0], m[1], span.Monospace) {
			continue
		}
		e.Delete(m[2], m[3])
		start, end := e.Live(m[4]), e.Live(m[5])
		e.Delete(m[6], m[7])
		if end > start {
			e.Annotate(start, end, span.Heading, "")
		}
	}
}
