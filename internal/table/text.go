package table

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borders struct {
	topLeft, topSep, topRight          string
	midLeft, midSep, midRight          string
	bottomLeft, bottomSep, bottomRight string
	vertical, horizontal               string
}

var boxBorders = borders{
	topLeft:     "┌",
	topSep:      "┬",
	topRight:    "┐",
	midLeft:     "├",
	midSep:      "┼",
	midRight:    "┤",
	bottomLeft:  "└",
	bottomSep:   "┴",
	bottomRight: "┘",
	vertical:    "│",
	horizontal:  "─",
}

// Text renders t as a box-drawn grid sized by display width, so wide
// runes (CJK, emoji) keep the columns aligned. There is no trailing
// newline.
func (t *Table) Text() string {
	if t.Columns() == 0 {
		return ""
	}
	widths := t.widths()

	hCells := make([]string, len(widths))
	for i, w := range widths {
		hCells[i] = strings.Repeat(boxBorders.horizontal, w+2)
	}

	lines := []string{borderLine(hCells, boxBorders.topLeft, boxBorders.topSep, boxBorders.topRight)}
	lines = append(lines, t.textRow(t.Header, widths))
	lines = append(lines, borderLine(hCells, boxBorders.midLeft, boxBorders.midSep, boxBorders.midRight))
	for _, row := range t.Rows {
		lines = append(lines, t.textRow(row, widths))
	}
	lines = append(lines, borderLine(hCells, boxBorders.bottomLeft, boxBorders.bottomSep, boxBorders.bottomRight))
	return strings.Join(lines, "\n")
}

func borderLine(columns []string, left, sep, right string) string {
	return left + strings.Join(columns, sep) + right
}

func (t *Table) widths() []int {
	widths := make([]int, t.Columns())
	update := func(cells []string) {
		for i, c := range cells {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	update(t.Header)
	for _, row := range t.Rows {
		update(row)
	}
	return widths
}

func (t *Table) textRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString(boxBorders.vertical)
	for i, c := range cells {
		b.WriteString(" ")
		b.WriteString(pad(c, widths[i], t.Align[i]))
		b.WriteString(" ")
		b.WriteString(boxBorders.vertical)
	}
	return b.String()
}

func pad(s string, width int, align Align) string {
	switch align {
	case AlignRight:
		return runewidth.FillLeft(s, width)
	case AlignCenter:
		gap := width - runewidth.StringWidth(s)
		if gap <= 0 {
			return s
		}
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return runewidth.FillRight(s, width)
	}
}

// HTML renders raw as an HTML <table> fragment through goldmark. Blocks
// goldmark does not recognise are normalised into GFM first.
func HTML(raw string) (string, error) {
	out, err := convert(raw)
	if err != nil {
		return "", err
	}
	if strings.Contains(out, "<table>") {
		return out, nil
	}

	t := parsePipes(raw)
	if t == nil {
		return "", ErrNotTable
	}
	return convert(t.Markdown())
}

func convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
