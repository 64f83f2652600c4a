package normalize

import (
	"regexp"
	"strings"
)

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	urlRe     = regexp.MustCompile(`https?://\S+`)
	wwwRe     = regexp.MustCompile(`www\.\S+`)
	nonWordRe = regexp.MustCompile(`[^A-Za-z0-9\s]`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Clean strips leftover markup fragments, URLs and punctuation from raw
// export text and returns a lowercased, single-spaced form. An empty result
// means the input carried no usable signal; callers skip such items.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := tagRe.ReplaceAllString(raw, "")
	s = urlRe.ReplaceAllString(s, "")
	s = wwwRe.ReplaceAllString(s, "")
	s = nonWordRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// noiseWords are UI boilerplate tokens that carry no interest signal.
var noiseWords = map[string]struct{}{
	"here":  {},
	"click": {},
	"login": {},
	"home":  {},
	"ok":    {},
}

// FilterNoise drops stoplist words and tokens of two characters or fewer
// from an already cleaned string, returning the rejoined remainder. The
// remainder may be empty when every token was noise.
func FilterNoise(cleaned string) string {
	fields := strings.Fields(cleaned)
	kept := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, noisy := noiseWords[w]; noisy {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
