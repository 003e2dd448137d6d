package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

// DefaultTablePlaceholder stands in for a table block in the output text.
const DefaultTablePlaceholder = "[Table]"

// tablePattern: a header line containing |, a justification line of
// -, :, | (and blanks) with at least one -, then one or more rows
// containing |.
var tablePattern = regexp.MustCompile(`(?m)^[^\n]*\|[^\n]*\n` +
	`[-:| \t]*-[-:| \t]*` +
	`(?:\n[^\n]*\|[^\n]*)+`)

// TablePass replaces pipe tables with a placeholder and records the
// original block verbatim in a Table annotation for an external renderer.
type TablePass struct {
	Placeholder string
}

// Apply runs the pass.
func (p TablePass) Apply(buf *span.Buffer) {
	placeholder := p.Placeholder
	if placeholder == "" {
		placeholder = DefaultTablePlaceholder
	}

	e := span.NewEditor(buf)
	s := e.Snapshot()
	for _, m := range tablePattern.FindAllStringIndex(s, -1) {
		if e.Covered(m[0], m[1], span.Monospace) {
			continue
		}
		e.Replace(m[0], m[1], placeholder)
		end := e.Live(m[1])
		e.Annotate(end-len(placeholder), end, span.Table, s[m[0]:m[1]])
	}
}
