// Package entity decodes the HTML character references that the listing
// service escapes into its markdown fields.
//
// Only a fixed set of named references is understood (gt, lt, amp, quot,
// apos, nbsp, mdash) plus decimal and hexadecimal numeric references.
// Anything else is left as literal text.
package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/alnah/go-mdspan/internal/span"
)

// ErrMalformedEntity indicates a numeric character reference that does not
// name a valid character.
var ErrMalformedEntity = errors.New("malformed character reference")

// Precompiled patterns, shared by every call.
var (
	// Narrow first phase: only &amp; so doubly escaped input survives
	// into the second phase as a single escape.
	ampPattern = regexp.MustCompile(`&amp;`)

	entityPattern = regexp.MustCompile(`&(?:(gt|lt|amp|quot|apos|nbsp|mdash)|#([0-9]*)|#[xX]([0-9a-fA-F]*));`)
)

var named = map[string]string{
	"gt":    ">",
	"lt":    "<",
	"amp":   "&",
	"quot":  `"`,
	"apos":  "'",
	"nbsp":  " ",
	"mdash": "—",
}

// Error reports where a malformed reference was found. Offset is a byte
// offset into the text seen by the second decoding phase.
type Error struct {
	Offset    int
	Reference string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", ErrMalformedEntity, e.Reference, e.Offset)
}

// Unwrap lets errors.Is match ErrMalformedEntity.
func (e *Error) Unwrap() error {
	return ErrMalformedEntity
}

// Decode resolves character references in raw. A malformed numeric
// reference fails the whole decode: the result is empty and the error
// wraps ErrMalformedEntity.
func Decode(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	buf := span.NewBuffer(raw)
	decodeAmpersands(span.NewEditor(buf))
	if err := decodeReferences(span.NewEditor(buf)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeAmpersands(e *span.Editor) {
	for _, m := range ampPattern.FindAllStringIndex(e.Snapshot(), -1) {
		e.Replace(m[0], m[1], "&")
	}
}

func decodeReferences(e *span.Editor) error {
	s := e.Snapshot()
	for _, m := range entityPattern.FindAllStringSubmatchIndex(s, -1) {
		var repl string
		switch {
		case m[2] >= 0:
			repl = named[s[m[2]:m[3]]]
		case m[4] >= 0:
			r, ok := codepoint(s[m[4]:m[5]], 10)
			if !ok {
				return &Error{Offset: m[0], Reference: s[m[0]:m[1]]}
			}
			repl = string(r)
		default:
			r, ok := codepoint(s[m[6]:m[7]], 16)
			if !ok {
				return &Error{Offset: m[0], Reference: s[m[0]:m[1]]}
			}
			repl = string(r)
		}
		e.Replace(m[0], m[1], repl)
	}
	return nil
}

// codepoint parses digits in the given base and rejects anything that is
// not a valid, non-NUL scalar value.
func codepoint(digits string, base int) (rune, bool) {
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
