package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdspan/internal/span"
)

// relativeTargetPattern matches a link target that is exactly a subreddit
// or user path.
var relativeTargetPattern = regexp.MustCompile(`^/(r|u|user)/([A-Za-z0-9_-]+)/?$`)

// Resolver turns link targets found in text into absolute URLs.
type Resolver struct {
	// BaseURL is prefixed to targets starting with "/".
	BaseURL string
}

// URL resolves u: site-relative paths get the base URL, scheme-less
// targets get http://, anything with an http or https scheme is kept.
func (r Resolver) URL(u string) string {
	switch {
	case strings.HasPrefix(u, "/"):
		return strings.TrimSuffix(r.BaseURL, "/") + u
	case !hasWebScheme(u):
		return "http://" + u
	default:
		return u
	}
}

// Target classifies a link target: subreddit and user paths become
// SubredditLink or UserLink carrying the name, everything else a Link
// carrying the resolved URL.
func (r Resolver) Target(u string) (span.Kind, string) {
	if m := relativeTargetPattern.FindStringSubmatch(u); m != nil {
		return relativeKind(m[1]), m[2]
	}
	return span.Link, r.URL(u)
}

func relativeKind(prefix string) span.Kind {
	if prefix == "r" {
		return span.SubredditLink
	}
	return span.UserLink
}

func hasWebScheme(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
