// Package render turns a formatted result into HTML or terminal text.
//
// Both renderers sweep the annotation boundaries: the text is cut at every
// annotation start and end, and each piece is emitted inside the elements
// (or terminal styles) of the annotations covering it.
package render

import (
	"errors"
	"sort"
	"strings"

	"github.com/alnah/go-mdspan"
)

// ErrRender indicates a renderer could not produce output.
var ErrRender = errors.New("render failed")

// segment is a maximal run of text covered by the same annotations.
type segment struct {
	start, end int
	active     []int // indexes into the annotation slice, outermost first
}

// rank orders annotation kinds from outermost to innermost element.
var rank = map[mdspan.Kind]int{
	mdspan.Table:         0,
	mdspan.Heading:       1,
	mdspan.Bullet:        2,
	mdspan.Monospace:     3,
	mdspan.Link:          4,
	mdspan.SubredditLink: 4,
	mdspan.UserLink:      4,
	mdspan.Bold:          5,
	mdspan.Italic:        6,
	mdspan.Strikethrough: 7,
}

func segments(text string, anns []mdspan.Annotation) []segment {
	cuts := []int{0, len(text)}
	for _, a := range anns {
		if a.Start >= 0 && a.End <= len(text) && a.Start < a.End {
			cuts = append(cuts, a.Start, a.End)
		}
	}
	sort.Ints(cuts)

	var segs []segment
	for i := 1; i < len(cuts); i++ {
		start, end := cuts[i-1], cuts[i]
		if start == end {
			continue
		}
		seg := segment{start: start, end: end}
		for j, a := range anns {
			if a.Start <= start && a.End >= end && a.Start < a.End {
				seg.active = append(seg.active, j)
			}
		}
		sort.SliceStable(seg.active, func(x, y int) bool {
			return rank[anns[seg.active[x]].Kind] < rank[anns[seg.active[y]].Kind]
		})
		segs = append(segs, seg)
	}
	return segs
}

// Target returns the URL a link annotation points to. Subreddit and user
// references are resolved against baseURL.
func Target(a mdspan.Annotation, baseURL string) string {
	base := strings.TrimSuffix(baseURL, "/")
	switch a.Kind {
	case mdspan.SubredditLink:
		return base + "/r/" + a.Payload
	case mdspan.UserLink:
		return base + "/u/" + a.Payload
	default:
		return a.Payload
	}
}
