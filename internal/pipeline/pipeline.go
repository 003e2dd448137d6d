package pipeline

import (
	"github.com/alnah/go-mdspan/internal/span"
)

// Pass is one rewrite stage over the buffer.
type Pass interface {
	Apply(buf *span.Buffer)
}

// Compile-time interface implementation checks.
var (
	_ Pass         = CodeBlockPass{}
	_ Pass         = StylePass{}
	_ Pass         = HeadingPass{}
	_ Pass         = BulletPass{}
	_ Pass         = NamedLinkPass{}
	_ Pass         = RawLinkPass{}
	_ Pass         = TablePass{}
	_ Pass         = RelativeLinkPass{}
	_ Preprocessor = (*LineEndingPreprocessor)(nil)
	_ Preprocessor = NopPreprocessor{}
)

// Options configures an Engine.
type Options struct {
	// BaseURL resolves site-relative link targets such as "/wiki/faq".
	BaseURL string
	// TablePlaceholder replaces table blocks; DefaultTablePlaceholder
	// when empty.
	TablePlaceholder string
}

// Engine runs the passes in their fixed order. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	passes []Pass
}

// NewEngine builds the pass sequence for opts.
func NewEngine(opts Options) *Engine {
	resolver := Resolver{BaseURL: opts.BaseURL}

	passes := []Pass{CodeBlockPass{}}
	passes = append(passes, Styles()...)
	passes = append(passes,
		HeadingPass{},
		BulletPass{},
		NamedLinkPass{Resolver: resolver},
		RawLinkPass{Resolver: resolver},
		TablePass{Placeholder: opts.TablePlaceholder},
		RelativeLinkPass{},
	)
	return &Engine{passes: passes}
}

// Annotate strips markup from decoded text and returns the remaining
// text with its annotations.
func (e *Engine) Annotate(decoded string) (string, []span.Annotation) {
	if decoded == "" {
		return "", nil
	}
	buf := span.NewBuffer(decoded)
	for _, p := range e.passes {
		p.Apply(buf)
	}
	return buf.String(), buf.Annotations()
}

// Annotate is a convenience wrapper building a one-off Engine.
func Annotate(decoded string, opts Options) (string, []span.Annotation) {
	return NewEngine(opts).Annotate(decoded)
}
