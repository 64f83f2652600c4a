package rank

import (
	"sort"

	"github.com/hyperifyio/activitylens/internal/normalize"
)

// Item is a normalized interest label with its occurrence count.
type Item struct {
	Label string
	Count int
}

// NoData is the sentinel label returned when no raw items survive
// normalization. By convention it never appears in a rendered chart.
const NoData = "No data found"

// TopFive normalizes and noise-filters raw item strings, then returns up
// to five (label, count) pairs sorted by descending count. Ties keep the
// order in which labels were first seen. An empty survivor set yields the
// single sentinel entry {NoData, 0}.
func TopFive(items []string) []Item {
	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, raw := range items {
		cleaned := normalize.Clean(raw)
		if cleaned == "" {
			continue
		}
		label := normalize.FilterNoise(cleaned)
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	if len(order) == 0 {
		return []Item{{Label: NoData, Count: 0}}
	}

	ranked := make([]Item, 0, len(order))
	for _, label := range order {
		ranked = append(ranked, Item{Label: label, Count: counts[label]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked
}

// IsSentinel reports whether ranked is exactly the no-data placeholder.
func IsSentinel(ranked []Item) bool {
	return len(ranked) == 1 && ranked[0].Label == NoData && ranked[0].Count == 0
}
