package app

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/activitylens/internal/extract"
	"github.com/hyperifyio/activitylens/internal/rank"
	"github.com/hyperifyio/activitylens/internal/risk"
)

// Analysis bundles everything the presentation layer renders for one
// uploaded export. It is computed fresh per request and never mutated
// afterwards.
type Analysis struct {
	Filename   string
	Kind       extract.Kind
	Categories map[string]int
	Top        []rank.Item
	Risk       risk.Assessment
}

// Analyze reads a saved export document and runs the full pipeline:
// extractor dispatch by the original filename, extraction, interest
// ranking and risk scoring at the given instant. The only fatal errors are
// failing to read or parse the document; everything below that degrades to
// partial results inside the extractors.
func Analyze(path, originalName string, now time.Time) (Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("read export %s: %w", path, err)
	}

	kind := extract.KindForFilename(originalName)
	res, err := extract.Analyze(data, kind)
	if err != nil {
		return Analysis{}, err
	}

	top := rank.TopFive(res.Items)
	assessment := risk.Assess(res.Categories, res.Times, now)

	log.Info().
		Str("file", originalName).
		Stringer("kind", kind).
		Int("items", len(res.Items)).
		Int("timestamps", len(res.Times)).
		Str("level", string(assessment.Level)).
		Int("percent", assessment.Percent).
		Msg("export analyzed")

	return Analysis{
		Filename:   originalName,
		Kind:       kind,
		Categories: res.Categories,
		Top:        top,
		Risk:       assessment,
	}, nil
}

// categoryOrder fixes the display order of the well-known categories.
var categoryOrder = []string{"Search", "YouTube", "Maps", "Shopping", "Discover", "Other"}

// OrderedCategories lists the map keys in canonical display order, with
// unknown keys sorted after the well-known ones. Rendering layers share
// this so the page and the report agree.
func OrderedCategories(categories map[string]int) []string {
	known := make(map[string]bool, len(categoryOrder))
	out := make([]string, 0, len(categories))
	for _, name := range categoryOrder {
		known[name] = true
		if _, ok := categories[name]; ok {
			out = append(out, name)
		}
	}
	var extra []string
	for name := range categories {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
