package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/hyperifyio/activitylens/internal/normalize"
	"github.com/hyperifyio/activitylens/internal/timestamp"
)

// Result is the outcome of one extraction pass over an export document.
type Result struct {
	// Categories maps a category name to its record count. The key set is
	// fixed per format; values start at zero and only grow during the pass.
	Categories map[string]int
	// Items are raw interest candidates in document order, not yet
	// normalized for ranking.
	Items []string
	// Times are the successfully parsed activity timestamps in document
	// order, which is not necessarily chronological.
	Times []time.Time
}

// Analyze parses the export document and runs the extractor for the given
// format. A document that cannot be parsed as markup at all is the only
// fatal condition; anomalies inside a single record block degrade to that
// block's optional contributions being skipped.
func Analyze(data []byte, kind Kind) (Result, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("parse export document: %w", err)
	}
	switch kind {
	case KindSearch:
		return analyzeSearch(root), nil
	case KindVideo:
		return analyzeVideo(root), nil
	case KindDiscover:
		return analyzeDiscover(root), nil
	default:
		return analyzeGeneric(root), nil
	}
}

// block is one record block: a <div> subtree representing a single logged
// activity event. Nested blocks are visited independently.
type block struct {
	node *html.Node
}

// eachBlock visits every record block in document order. All four format
// extractors share this walk and differ only in the per-block callback.
func eachBlock(root *html.Node, visit func(b block)) {
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "div") {
			visit(block{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(root)
}

// text flattens the block subtree: each text node is trimmed, empty chunks
// are dropped, and the remainder is joined with sep.
func (b block) text(sep string) string {
	var parts []string
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(b.node)
	return strings.Join(parts, sep)
}

// firstElement returns the first descendant element with the given tag, or
// nil when the block has none.
func (b block) firstElement(tag string) *html.Node {
	var found *html.Node
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if found != nil {
			return
		}
		if n != b.node && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if found != nil {
				return
			}
		}
	}
	dfs(b.node)
	return found
}

// firstLink returns the display text and target of the block's first
// embedded hyperlink.
func (b block) firstLink() (text, href string, ok bool) {
	n := b.firstElement("a")
	if n == nil {
		return "", "", false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "href") {
			href = a.Val
			break
		}
	}
	return block{node: n}.text(""), href, true
}

// labelText returns the text of the block's first short label sub-element,
// where exports place the activity timestamp.
func (b block) labelText() (string, bool) {
	n := b.firstElement("span")
	if n == nil {
		return "", false
	}
	return block{node: n}.text(""), true
}

// collectTime appends the block's label timestamp when it parses. Most
// labels carry unrelated text, so a parse miss is the normal case.
func collectTime(res *Result, b block) {
	label, ok := b.labelText()
	if !ok {
		return
	}
	if t, ok := timestamp.Parse(label); ok {
		res.Times = append(res.Times, t)
	}
}

var (
	connectorRe = regexp.MustCompile(`(?i)^(for|on|about)\s+`)
	timeFragRe  = regexp.MustCompile(`\bat \d{1,2}:\d{2}\b.*$`)
)

// queryTerm finds the first of phrases inside the block text and returns
// the normalized query that follows it. A trailing "at H:MM ..." fragment
// that some exports glue onto the same line is stripped before
// normalization, and a leading connector word left over from the phrase
// split is dropped afterwards. The boolean reports whether any phrase
// matched; the term itself may still come back empty.
func queryTerm(text string, phrases []string) (string, bool) {
	for _, phrase := range phrases {
		idx := strings.Index(text, phrase)
		if idx < 0 {
			continue
		}
		raw := text[idx+len(phrase):]
		raw = timeFragRe.ReplaceAllString(raw, "")
		term := normalize.Clean(raw)
		term = connectorRe.ReplaceAllString(term, "")
		return term, true
	}
	return "", false
}

// nonEmptyLines splits flattened block text into trimmed, non-empty lines.
func nonEmptyLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
