package pipeline

import (
	"strings"

	"github.com/alnah/go-mdspan/internal/span"
)

// NamedLinkPass turns [label](target) into a link annotation over label.
//
// Brackets and parentheses are matched with nesting, so labels may
// contain [ ] and targets may contain ( ), as in Wikipedia URLs. One run
// of whitespace, newlines included, may separate ] from (. Anything that
// does not close properly is left as literal text.
type NamedLinkPass struct {
	Resolver Resolver
}

// Apply runs the pass.
func (p NamedLinkPass) Apply(buf *span.Buffer) {
	e := span.NewEditor(buf)
	s := e.Snapshot()

	for i := 0; i < len(s); {
		open := strings.IndexByte(s[i:], '[')
		if open < 0 {
			return
		}
		open += i
		i = open + 1

		closeBracket := matching(s, open, '[', ']')
		if closeBracket < 0 {
			continue
		}
		paren := closeBracket + 1
		for paren < len(s) && isSpace(s[paren]) {
			paren++
		}
		if paren >= len(s) || s[paren] != '(' {
			continue
		}
		closeParen := matching(s, paren, '(', ')')
		if closeParen < 0 {
			continue
		}

		label := s[open+1 : closeBracket]
		target := linkTarget(s[paren+1 : closeParen])
		if label == "" || target == "" {
			continue
		}
		if e.Covered(open, closeParen+1, span.Monospace) {
			continue
		}

		kind, payload := p.Resolver.Target(target)
		e.Delete(open, open+1)
		start, end := e.Live(open+1), e.Live(closeBracket)
		e.Delete(closeBracket, closeParen+1)
		e.Annotate(start, end, kind, payload)

		i = closeParen + 1
	}
}

// matching returns the index of the bracket closing the one at open, or
// -1 when the text ends first.
func matching(s string, open int, left, right byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// linkTarget extracts the URL from the text between the parentheses,
// dropping a trailing quoted title: (url "title") yields url.
func linkTarget(inner string) string {
	for i := 0; i+1 < len(inner); i++ {
		if isSpace(inner[i]) && (inner[i+1] == '"' || inner[i+1] == '\'') {
			inner = inner[:i]
			break
		}
	}
	return strings.TrimSpace(inner)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
