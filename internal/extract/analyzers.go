package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/activitylens/internal/normalize"
)

// analyzeGeneric handles exports of unknown provenance. Classification is
// a loose keyword scan over the flattened block text; the first matching
// keyword group wins and the priority order below is the tie-break. The
// order is load-bearing for compatibility and must not be reordered.
func analyzeGeneric(root *html.Node) Result {
	res := Result{Categories: map[string]int{
		"Search":   0,
		"YouTube":  0,
		"Maps":     0,
		"Shopping": 0,
		"Discover": 0,
		"Other":    0,
	}}
	eachBlock(root, func(b block) {
		text := b.text(" ")
		low := strings.ToLower(text)
		switch {
		case strings.Contains(low, "searched") || strings.Contains(low, "search"):
			res.Categories["Search"]++
		case strings.Contains(low, "youtube") || strings.Contains(low, "watched"):
			res.Categories["YouTube"]++
		case strings.Contains(low, "maps") || strings.Contains(low, "location") || strings.Contains(low, "place"):
			res.Categories["Maps"]++
		case strings.Contains(low, "shopping") || strings.Contains(low, "product"):
			res.Categories["Shopping"]++
		case strings.Contains(low, "discover"):
			res.Categories["Discover"]++
		default:
			res.Categories["Other"]++
		}

		// Best effort at something readable for the ranking: prefer the
		// first link's display text, else the chunk before the bullet
		// separator.
		if linkText, _, ok := b.firstLink(); ok {
			res.Items = append(res.Items, linkText)
		} else if chunk := normalize.Clean(beforeSeparator(text)); chunk != "" {
			res.Items = append(res.Items, chunk)
		}

		collectTime(&res, b)
	})
	return res
}

// beforeSeparator returns the portion of text preceding the " • " bullet
// that exports use between an activity line and its metadata.
func beforeSeparator(text string) string {
	head, _, _ := strings.Cut(text, " • ")
	return head
}

// searchPhrases mark a search record; checked in order, first match wins.
var searchPhrases = []string{
	"Searched for",
	"You searched for",
	"Searched on Google for",
}

// analyzeSearch handles search-history exports. Every block is either a
// search record or Other; the query term follows the matched phrase.
func analyzeSearch(root *html.Node) Result {
	res := Result{Categories: map[string]int{
		"Search": 0,
		"Other":  0,
	}}
	eachBlock(root, func(b block) {
		text := b.text(" ")
		if term, ok := queryTerm(text, searchPhrases); ok {
			// Empty terms still count as a search, they just rank nothing.
			res.Categories["Search"]++
			if term != "" {
				res.Items = append(res.Items, term)
			}
		} else {
			res.Categories["Other"]++
		}
		collectTime(&res, b)
	})
	return res
}

var videoPhrases = []string{
	"Searched for",
	"Search for",
	"Searched on YouTube for",
}

const removedVideoPrefix = "watched a video that has been removed"

// analyzeVideo handles watch-history exports. A block may contribute both
// a search query and a watched title; queries and titles are accumulated
// separately and the YouTube/Search counters are the final list sizes
// rather than per-record increments.
func analyzeVideo(root *html.Node) Result {
	res := Result{Categories: map[string]int{
		"YouTube":  0,
		"Search":   0,
		"Maps":     0,
		"Shopping": 0,
		"Discover": 0,
		"Other":    0,
	}}
	var queries, titles []string
	eachBlock(root, func(b block) {
		text := b.text(" ")

		if q, ok := queryTerm(text, videoPhrases); ok && q != "" {
			queries = append(queries, q)
		}

		if linkText, href, ok := b.firstLink(); ok {
			if strings.Contains(href, "youtube.com") || strings.Contains(href, "youtu.be") {
				title := normalize.Clean(linkText)
				if title != "" && !strings.HasPrefix(title, removedVideoPrefix) {
					titles = append(titles, title)
				}
			}
		}

		collectTime(&res, b)
	})
	res.Categories["YouTube"] = len(titles)
	res.Categories["Search"] = len(queries)
	res.Items = append(res.Items, queries...)
	res.Items = append(res.Items, titles...)
	return res
}

var (
	viewedSuffixRe = regexp.MustCompile(`(?i)\s*-\s*viewed$`)
	viewedBareRe   = regexp.MustCompile(`(?i)viewed$`)
	feedNoiseRe    = regexp.MustCompile(`(?i)\bcard(s)?\b|\bin your feed\b`)
)

// analyzeDiscover handles feed exports. Only blocks that announce
// themselves as Discover content qualify; everything else is skipped
// outright, there is no Other bucket. Items are the feed lines between the
// "Details" marker and the "Why is this here" footer, minus viewed
// suffixes and card boilerplate. The Discover counter is the number of
// items extracted, not the number of qualifying blocks.
func analyzeDiscover(root *html.Node) Result {
	res := Result{Categories: map[string]int{
		"Discover": 0,
	}}
	eachBlock(root, func(b block) {
		lines := nonEmptyLines(b.text("\n"))
		if len(lines) == 0 {
			return
		}

		first := strings.ToLower(lines[0])
		whole := strings.ToLower(strings.Join(lines, "\n"))
		if !strings.Contains(first, "discover") &&
			!(strings.Contains(whole, "products:") && strings.Contains(whole, "discover")) {
			return
		}

		start := 1
		for i, ln := range lines {
			if strings.HasPrefix(strings.ToLower(ln), "details") {
				start = i + 1
				break
			}
		}
		for _, ln := range lines[start:] {
			if strings.HasPrefix(strings.ToLower(ln), "why is this here") {
				break
			}
			item := strings.TrimSpace(viewedSuffixRe.ReplaceAllString(ln, ""))
			item = strings.TrimSpace(viewedBareRe.ReplaceAllString(item, ""))
			if feedNoiseRe.MatchString(item) {
				continue
			}
			if item = normalize.Clean(item); item != "" {
				res.Items = append(res.Items, item)
			}
		}

		collectTime(&res, b)
	})
	res.Categories["Discover"] = len(res.Items)
	return res
}
