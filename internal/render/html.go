package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/table"
)

// HTMLOptions configures HTML rendering.
type HTMLOptions struct {
	// BaseURL resolves subreddit and user references.
	BaseURL string
	// Lexer names the chroma lexer for code blocks. Empty means guess
	// from the content.
	Lexer string
}

// openElement is an element on the nesting stack. node is what the
// parent holds; inner is where children go (they differ for pre>code).
type openElement struct {
	index int
	node  *html.Node
	inner *html.Node
}

// HTML renders res as an HTML fragment. Code blocks become pre>code with
// chroma token classes, links become anchors, tables are rendered from
// their source and newlines outside code become <br>.
func HTML(res *mdspan.Result, opts HTMLOptions) (string, error) {
	if res.Empty() {
		return "", nil
	}

	root := &html.Node{Type: html.DocumentNode}
	var stack []openElement
	parent := func() *html.Node {
		if len(stack) == 0 {
			return root
		}
		return stack[len(stack)-1].inner
	}

	for _, seg := range segments(res.Text, res.Annotations) {
		chain := seg.active
		if len(chain) > 0 && res.Annotations[chain[0]].Kind == mdspan.Table {
			chain = chain[:1]
		}

		// Keep the shared prefix open, close the rest.
		keep := 0
		for keep < len(stack) && keep < len(chain) && stack[keep].index == chain[keep] {
			keep++
		}
		stack = stack[:keep]

		for _, idx := range chain[keep:] {
			el, err := newElement(res.Annotations[idx], opts)
			if err != nil {
				return "", err
			}
			el.index = idx
			parent().AppendChild(el.node)
			stack = append(stack, el)
		}

		if len(chain) > 0 && res.Annotations[chain[0]].Kind == mdspan.Table {
			continue
		}

		text := res.Text[seg.start:seg.end]
		if inCode(res.Annotations, chain) {
			if err := appendCode(parent(), text, opts.Lexer); err != nil {
				return "", err
			}
			continue
		}
		appendLines(parent(), text)
	}

	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return buf.String(), nil
}

func newElement(a mdspan.Annotation, opts HTMLOptions) (openElement, error) {
	switch a.Kind {
	case mdspan.Bold:
		return leaf(atom.Strong), nil
	case mdspan.Italic:
		return leaf(atom.Em), nil
	case mdspan.Strikethrough:
		return leaf(atom.Del), nil
	case mdspan.Heading:
		return leaf(atom.H3), nil
	case mdspan.Bullet:
		return leaf(atom.Li), nil
	case mdspan.Monospace:
		pre := element(atom.Pre, html.Attribute{Key: "class", Val: "chroma"})
		code := element(atom.Code)
		pre.AppendChild(code)
		return openElement{node: pre, inner: code}, nil
	case mdspan.Link, mdspan.SubredditLink, mdspan.UserLink:
		return leaf(atom.A, html.Attribute{Key: "href", Val: Target(a, opts.BaseURL)}), nil
	case mdspan.Table:
		return tableElement(a.Payload)
	default:
		return leaf(atom.Span), nil
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func leaf(a atom.Atom, attrs ...html.Attribute) openElement {
	n := element(a, attrs...)
	return openElement{node: n, inner: n}
}

// tableElement parses the goldmark rendering of a table block into a
// <div class="table"> container.
func tableElement(raw string) (openElement, error) {
	div := element(atom.Div, html.Attribute{Key: "class", Val: "table"})
	out, err := table.HTML(raw)
	if err != nil {
		div.AppendChild(&html.Node{Type: html.TextNode, Data: raw})
		return openElement{node: div, inner: div}, nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(out), element(atom.Body))
	if err != nil {
		return openElement{}, fmt.Errorf("%w: parsing table: %v", ErrRender, err)
	}
	for _, n := range nodes {
		div.AppendChild(n)
	}
	return openElement{node: div, inner: div}, nil
}

func inCode(anns []mdspan.Annotation, chain []int) bool {
	for _, idx := range chain {
		if anns[idx].Kind == mdspan.Monospace {
			return true
		}
	}
	return false
}

// appendLines adds text to parent, turning newlines into <br>.
func appendLines(parent *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			parent.AppendChild(element(atom.Br))
		}
		if line != "" {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}

// appendCode tokenises code with chroma and adds one span per token,
// classed with chroma's short token names.
func appendCode(parent *html.Node, code, lexerName string) error {
	var lexer chroma.Lexer
	if lexerName != "" {
		lexer = lexers.Get(lexerName)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("%w: tokenising code: %v", ErrRender, err)
	}
	tokens := it.Tokens()
	// Some lexers append a newline the source did not have.
	if n := len(tokens); n > 0 && !strings.HasSuffix(code, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}
		textNode := &html.Node{Type: html.TextNode, Data: tok.Value}
		class := tokenClass(tok.Type)
		if class == "" {
			parent.AppendChild(textNode)
			continue
		}
		span := element(atom.Span, html.Attribute{Key: "class", Val: class})
		span.AppendChild(textNode)
		parent.AppendChild(span)
	}
	return nil
}

func tokenClass(t chroma.TokenType) string {
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if class := chroma.StandardTypes[candidate]; class != "" {
			return class
		}
	}
	return ""
}
