package pipeline

import (
	"regexp"

	"github.com/alnah/go-mdspan/internal/span"
)

// relativeLinkPattern matches /r/name, /u/name and /user/name when not
// glued to a preceding word or path. Group 1 is the link, group 2 the
// prefix, group 3 the name.
var relativeLinkPattern = regexp.MustCompile(`(?:^|[^\w/])(/(r|u|user)/([A-Za-z0-9_-]+))`)

// RelativeLinkPass annotates subreddit and user references in place.
type RelativeLinkPass struct{}

// Apply runs the pass.
func (RelativeLinkPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	s := e.Snapshot()
	for _, m := range relativeLinkPattern.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[2], m[3]
		if e.Covered(start, end, span.Monospace, span.Link, span.SubredditLink, span.UserLink) {
			continue
		}
		e.Annotate(e.Live(start), e.Live(end), relativeKind(s[m[4]:m[5]]), s[m[6]:m[7]])
	}
}
