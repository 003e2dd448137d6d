// Package pipeline implements the markdown-to-annotated-text passes.
//
// The engine runs a fixed sequence of passes over one span.Buffer:
//   - CodeBlock: indented lines become Monospace, indentation stripped
//   - Styles: **bold**, *italic*, ~~strikethrough~~ (in that order)
//   - Heading: leading # markers
//   - Bullets: *, + and - list markers
//   - NamedLinks: [label](target), nesting-aware
//   - RawLinks: bare http(s):// and www. URLs
//   - Tables: pipe tables replaced by a placeholder carrying the source
//   - RelativeLinks: /r/name, /u/name and /user/name
//
// Each pass matches its pattern against the text as it was when the pass
// started and edits the live buffer through a span.Editor, which keeps the
// count of bytes removed so snapshot offsets stay translatable. Ranges
// already covered by Monospace are never reformatted.
//
// Entity decoding happens before the engine runs (see internal/entity);
// rendering the annotations is left to the caller.
package pipeline
