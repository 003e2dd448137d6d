package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdspan/internal/span"
)

// rawLinkPattern matches a web URL: an http(s) scheme or a www. host,
// dotted host labels, an optional port, and an optional path, query or
// fragment running to the next space.
var rawLinkPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)` +
	`[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*` +
	`(?::[0-9]{1,5})?` +
	`(?:[/?#][^\s<>"]*)?`)

// trailingPunct is dropped from the end of a matched URL: it almost
// always belongs to the sentence.
const trailingPunct = `.,;:!?'"*`

// RawLinkPass annotates bare URLs as links without touching the text.
type RawLinkPass struct {
	Resolver Resolver
}

// Apply runs the pass.
func (p RawLinkPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	s := e.Snapshot()
	for _, m := range rawLinkPattern.FindAllStringIndex(s, -1) {
		end := trimURL(s, m[0], m[1])
		if end <= m[0] {
			continue
		}
		if e.Covered(m[0], end, span.Monospace, span.Link, span.SubredditLink, span.UserLink) {
			continue
		}
		e.Annotate(e.Live(m[0]), e.Live(end), span.Link, p.Resolver.URL(s[m[0]:end]))
	}
}

// trimURL drops trailing sentence punctuation and closing parentheses
// that have no opening partner inside the URL.
func trimURL(s string, start, end int) int {
	for end > start {
		last := s[end-1]
		switch {
		case strings.IndexByte(trailingPunct, last) >= 0:
			end--
		case last == ')' && strings.Count(s[start:end], "(") < strings.Count(s[start:end], ")"):
			end--
		default:
			return end
		}
	}
	return end
}
