package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

// Emphasis patterns are single-line and non-greedy. Bold must run before
// italic so "**x**" is not eaten by the single-asterisk pattern.
var (
	boldPattern          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern        = regexp.MustCompile(`\*(.+?)\*`)
	strikethroughPattern = regexp.MustCompile(`~~(.+?)~~`)
)

// StylePass strips a symmetric delimiter pair and annotates the text
// between them.
type StylePass struct {
	Pattern *regexp.Regexp
	Delim   int // bytes stripped from each side
	Kind    span.Kind
}

// Styles returns the bold, italic and strikethrough passes in the order
// they must run.
func Styles() []Pass {
	return []Pass{
		StylePass{Pattern: boldPattern, Delim: 2, Kind: span.Bold},
		StylePass{Pattern: italicPattern, Delim: 1, Kind: span.Italic},
		StylePass{Pattern: strikethroughPattern, Delim: 2, Kind: span.Strikethrough},
	}
}

// Apply runs the pass.
func (p StylePass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	for _, m := range p.Pattern.FindAllStringIndex(e.Snapshot(), -1) {
		if e.Covered(m[0], m[1], span.Monospace) {
			continue
		}
		e.Delete(m[0], m[0]+p.Delim)
		start, end := e.Live(m[0]+p.Delim), e.Live(m[1]-p.Delim)
		e.Delete(m[1]-p.Delim, m[1])
		e.Annotate(start, end, p.Kind, "")
	}
}
