package pipeline

import (
	"regexp"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// Preprocessor rewrites raw text before entity decoding.
type Preprocessor interface {
	Preprocess(content string) string
}

// LineEndingPreprocessor converts \r\n and \r to \n so that the
// line-anchored passes see one line terminator.
type LineEndingPreprocessor struct{}

// Preprocess applies all transformations.
func (p *LineEndingPreprocessor) Preprocess(content string) string {
	return normalizeLineEndings(content)
}

// NopPreprocessor returns its input unchanged.
type NopPreprocessor struct{}

// Preprocess returns content as is.
func (NopPreprocessor) Preprocess(content string) string {
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
