package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/table"
)

// DefaultBulletMarker prefixes bullet items in text output.
const DefaultBulletMarker = "• "

// TextOptions configures terminal rendering.
type TextOptions struct {
	// Color enables ANSI SGR styling.
	Color bool
	// BaseURL resolves subreddit and user references.
	BaseURL string
	// BulletMarker prefixes bullet items; DefaultBulletMarker when empty.
	BulletMarker string
}

const sgrReset = "\x1b[0m"

// sgr holds the SGR parameters per kind.
var sgr = map[mdspan.Kind]string{
	mdspan.Bold:          "1",
	mdspan.Italic:        "3",
	mdspan.Strikethrough: "9",
	mdspan.Heading:       "1;4",
	mdspan.Monospace:     "36",
	mdspan.Link:          "34;4",
	mdspan.SubredditLink: "34;4",
	mdspan.UserLink:      "34;4",
}

// Text renders res for a terminal. Link targets follow the link text as
// " <url>", bullet items get a marker and tables are expanded into
// box-drawn grids.
func Text(res *mdspan.Result, opts TextOptions) string {
	if res.Empty() {
		return ""
	}
	marker := opts.BulletMarker
	if marker == "" {
		marker = DefaultBulletMarker
	}

	var b strings.Builder
	current := ""
	setStyle := func(style string) {
		if !opts.Color || style == current {
			return
		}
		if current != "" {
			b.WriteString(sgrReset)
		}
		if style != "" {
			b.WriteString("\x1b[" + style + "m")
		}
		current = style
	}

	anns := res.Annotations
	for _, seg := range segments(res.Text, anns) {
		if idx, ok := tableAt(anns, seg); ok {
			if anns[idx].Start == seg.start {
				setStyle("")
				b.WriteString(tableText(anns[idx].Payload, res.Text[anns[idx].Start:anns[idx].End]))
			}
			continue
		}

		for _, a := range anns {
			if a.Kind == mdspan.Bullet && a.Start == seg.start && a.Start < a.End {
				setStyle("")
				b.WriteString(marker)
			}
		}

		setStyle(styleFor(anns, seg.active))
		b.WriteString(res.Text[seg.start:seg.end])

		for _, idx := range seg.active {
			a := anns[idx]
			if a.Kind.IsLink() && a.End == seg.end {
				setStyle("")
				b.WriteString(" <" + Target(a, opts.BaseURL) + ">")
			}
		}
	}
	setStyle("")
	return b.String()
}

func tableAt(anns []mdspan.Annotation, seg segment) (int, bool) {
	for _, idx := range seg.active {
		if anns[idx].Kind == mdspan.Table {
			return idx, true
		}
	}
	return 0, false
}

func tableText(raw, placeholder string) string {
	t, err := table.Parse(raw)
	if err != nil {
		return placeholder
	}
	return t.Text()
}

// styleFor joins the SGR parameters of the active kinds in a stable order.
func styleFor(anns []mdspan.Annotation, active []int) string {
	seen := map[string]bool{}
	var params []string
	for _, idx := range active {
		p := sgr[anns[idx].Kind]
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		params = append(params, p)
	}
	sort.SliceStable(params, func(i, j int) bool {
		return leadingInt(params[i]) < leadingInt(params[j])
	})
	return strings.Join(params, ";")
}

func leadingInt(s string) int {
	head, _, _ := strings.Cut(s, ";")
	n, _ := strconv.Atoi(head)
	return n
}
