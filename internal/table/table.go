// Package table re-parses the raw pipe-table blocks carried by Table
// annotations so renderers can lay them out as grids or HTML.
package table

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors.
var (
	// ErrNotTable indicates the block has no header and separator line.
	ErrNotTable = errors.New("not a pipe table")
	// ErrRender indicates goldmark failed to render a table.
	ErrRender = errors.New("table rendering failed")
)

// Align is the horizontal alignment of a column.
type Align uint8

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "default"
	}
}

// Table is a parsed pipe table. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
	Align  []Align
}

// Columns returns the number of columns.
func (t *Table) Columns() int {
	return len(t.Header)
}

// markdown is shared; goldmark parsers are safe for concurrent use.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// Parse extracts cells and alignments from raw. GFM tables go through
// goldmark; blocks goldmark rejects (for instance a separator with fewer
// cells than the header) fall back to a plain pipe splitter.
func Parse(raw string) (*Table, error) {
	if t := parseGoldmark([]byte(raw)); t != nil {
		return t, nil
	}
	if t := parsePipes(raw); t != nil {
		return t, nil
	}
	return nil, ErrNotTable
}

func parseGoldmark(src []byte) *Table {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var found *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if tbl, ok := n.(*east.Table); ok {
			found = tbl
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if found == nil {
		return nil
	}

	t := &Table{Align: make([]Align, len(found.Alignments))}
	for i, a := range found.Alignments {
		t.Align[i] = fromGoldmark(a)
	}
	for row := found.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, src))
		}
		switch row.(type) {
		case *east.TableHeader:
			t.Header = cells
		case *east.TableRow:
			t.Rows = append(t.Rows, cells)
		}
	}
	if len(t.Header) == 0 {
		return nil
	}
	t.normalize()
	return t
}

func fromGoldmark(a east.Alignment) Align {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignDefault
	}
}

// cellText flattens the inline children of a cell to plain text.
func cellText(cell ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			value := v.Segment.Value(src)
			if !v.IsRaw() {
				value = util.UnescapePunctuations(value)
			}
			b.Write(value)
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// parsePipes handles blocks goldmark does not recognise: a header line,
// a separator line of -, : and |, then any rows containing |.
func parsePipes(raw string) *Table {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 || !strings.Contains(lines[0], "|") {
		return nil
	}
	separators := splitRow(lines[1])
	if !isSeparator(separators) {
		return nil
	}

	t := &Table{Header: splitRow(lines[0])}
	t.Align = make([]Align, len(separators))
	for i, part := range separators {
		t.Align[i] = parseAlign(part)
	}
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" || !strings.Contains(line, "|") {
			break
		}
		t.Rows = append(t.Rows, splitRow(line))
	}
	t.normalize()
	return t
}

func isSeparator(parts []string) bool {
	dash := false
	for _, part := range parts {
		for _, r := range part {
			switch r {
			case '-':
				dash = true
			case ':':
			default:
				return false
			}
		}
	}
	return dash
}

func parseAlign(part string) Align {
	left := strings.HasPrefix(part, ":")
	right := strings.HasSuffix(part, ":") && len(part) > 1
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	default:
		return AlignDefault
	}
}

// splitRow trims one outer pipe on each side and splits on the rest.
// Backslash-escaped pipes and pipes inside code spans stay in the cell.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var parts []string
	var cell strings.Builder
	inCode := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
			continue
		case c == '`':
			inCode = !inCode
		case c == '|' && !inCode:
			parts = append(parts, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		cell.WriteByte(c)
	}
	return append(parts, strings.TrimSpace(cell.String()))
}

// normalize pads or truncates every row and the alignments to the header
// width.
func (t *Table) normalize() {
	n := len(t.Header)
	t.Align = fit(t.Align, n)
	for i, row := range t.Rows {
		t.Rows[i] = fit(row, n)
	}
}

func fit[T any](s []T, n int) []T {
	if len(s) >= n {
		return s[:n]
	}
	return append(s, make([]T, n-len(s))...)
}

// Markdown renders t back as a canonical GFM pipe table.
func (t *Table) Markdown() string {
	var b strings.Builder
	writeMarkdownRow(&b, t.Header)
	seps := make([]string, t.Columns())
	for i := range seps {
		switch t.Align[i] {
		case AlignLeft:
			seps[i] = ":--"
		case AlignCenter:
			seps[i] = ":-:"
		case AlignRight:
			seps[i] = "--:"
		default:
			seps[i] = "---"
		}
	}
	writeMarkdownRow(&b, seps)
	for _, row := range t.Rows {
		writeMarkdownRow(&b, row)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
