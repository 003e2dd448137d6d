package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

var bulletPattern = regexp.MustCompile(`(?m)^([ \t]*[*+-] )(.*)$`)

// BulletPass strips list markers and annotates the item text.
type BulletPass struct{}

// Apply runs the pass.
func (BulletPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	for _, m := range bulletPattern.FindAllStringSubmatchIndex(e.Snapshot(), -1) {
		if e.Covered(m[0], m[1], span.Monospace) {
			continue
		}
		e.Delete(m[2], m[3])
		start, end := e.Live(m[4]), e.Live(m[5])
		if end > start {
			e.Annotate(start, end, span.Bullet, "")
		}
	}
}
