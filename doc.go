// Package mdspan turns a restricted Markdown dialect into plain text plus
// a list of typed span annotations over that text.
//
// # Quick Start
//
// Create a formatter once and reuse it; it is safe for concurrent use:
//
//	f, err := mdspan.NewFormatter(
//	    mdspan.WithBaseURL("https://www.reddit.com"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := f.Format("**hello** [golang](/r/golang)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Text) // hello golang
//
// Each Annotation carries a byte range into Result.Text, a Kind and, for
// links and tables, a payload (the resolved URL, the subreddit or user
// name, or the raw table source).
//
// # Processing Stages
//
//  1. Line ending normalization (CRLF and CR become LF)
//  2. HTML entity decoding (&amp; first, then the full set)
//  3. Markup passes, in order: indented code, bold, italic,
//     strikethrough, headings, bullets, named links, raw links,
//     tables, subreddit and user references
//
// Text inside indented code blocks is immune to every later pass.
//
// # Offsets
//
// Annotation offsets are byte offsets into the UTF-8 Result.Text. Use
// Result.Substring to slice the covered text, or Result.RuneOffsets when
// a consumer counts characters instead of bytes.
//
// # Errors
//
// Format returns an error wrapping ErrMalformedEntity when the input
// contains a numeric character reference that is not a valid Unicode
// scalar value:
//
//	if errors.Is(err, mdspan.ErrMalformedEntity) {
//	    // reject the input
//	}
package mdspan
