package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

// codeLinePattern matches a line indented by four spaces or a tab.
var codeLinePattern = regexp.MustCompile(`(?m)^( {4}|\t)(.*)$`)

// CodeBlockPass strips the indentation of code lines and marks runs of
// consecutive code lines with a single Monospace annotation.
type CodeBlockPass struct{}

// Apply runs the pass.
func (CodeBlockPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)

	open := false
	var start, end int
	flush := func() {
		if open && end > start {
			e.Annotate(start, end, span.Monospace, "")
		}
	}

	for _, m := range codeLinePattern.FindAllStringSubmatchIndex(e.Snapshot(), -1) {
		e.Delete(m[2], m[3])
		lineStart, lineEnd := e.Live(m[4]), e.Live(m[5])

		// The previous code line ended right before this line's newline.
		if open && lineStart == end+1 {
			end = lineEnd
			continue
		}
		flush()
		open, start, end = true, lineStart, lineEnd
	}
	flush()
}
