package extract

import "strings"

// Kind selects which format-specific extractor runs over a document.
type Kind int

const (
	KindGeneric Kind = iota
	KindSearch
	KindVideo
	KindDiscover
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindVideo:
		return "video"
	case KindDiscover:
		return "discover"
	default:
		return "generic"
	}
}

// KindForFilename picks the extractor from the uploaded file's original
// name. Matching is a case-insensitive substring check with the first hit
// winning, so a name like "youtube-search.html" dispatches to the search
// extractor.
func KindForFilename(name string) Kind {
	low := strings.ToLower(name)
	switch {
	case strings.Contains(low, "search"):
		return KindSearch
	case strings.Contains(low, "youtube"), strings.Contains(low, "watch"):
		return KindVideo
	case strings.Contains(low, "discover"), strings.Contains(low, "myactivity"):
		return KindDiscover
	default:
		return KindGeneric
	}
}
