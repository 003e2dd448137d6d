// Package span holds the mutable text buffer threaded through the
// annotation passes, the annotations it accumulates, and the per-pass
// editor that translates snapshot offsets into live-buffer offsets.
//
// All offsets are byte offsets into UTF-8 text and all ranges are
// half-open: [Start, End).
package span

import (
	"fmt"
	"strings"
)

// Kind identifies what an annotation means to a renderer.
type Kind uint8

// Annotation kinds.
const (
	Bold Kind = iota + 1
	Italic
	Strikethrough
	Bullet
	Heading
	Monospace
	Link
	SubredditLink
	UserLink
	Table
)

var kindNames = map[Kind]string{
	Bold:          "bold",
	Italic:        "italic",
	Strikethrough: "strikethrough",
	Bullet:        "bullet",
	Heading:       "heading",
	Monospace:     "monospace",
	Link:          "link",
	SubredditLink: "subreddit",
	UserLink:      "user",
	Table:         "table",
}

// Kinds returns every annotation kind in declaration order.
func Kinds() []Kind {
	return []Kind{Bold, Italic, Strikethrough, Bullet, Heading, Monospace, Link, SubredditLink, UserLink, Table}
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsLink reports whether the kind carries a navigation target.
func (k Kind) IsLink() bool {
	return k == Link || k == SubredditLink || k == UserLink
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("span: unknown kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *Kind) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("span: unknown kind %q", string(b))
}

// Annotation attaches a kind, and for link and table kinds a payload, to
// a range of text.
//
// Payload is the target URL for Link, the subreddit or user name for
// SubredditLink and UserLink, and the verbatim source block for Table.
type Annotation struct {
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Len returns the number of bytes covered.
func (a Annotation) Len() int {
	return a.End - a.Start
}

// Overlaps reports whether a shares at least one byte with [start, end).
func (a Annotation) Overlaps(start, end int) bool {
	return a.Start < end && start < a.End
}
