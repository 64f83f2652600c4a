package risk

import (
	"math"
	"sort"
	"time"
)

// Level is the coarse tracking-exposure tier.
type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Assessment is the immutable outcome of scoring one extraction pass.
type Assessment struct {
	Level       Level
	Color       string
	Headline    string
	Suggestions []string
	// Percent is the Score projected onto a bounded 0..100 meter.
	Percent int
	// Score is the raw combined volume+recency value the tier is chosen by.
	Score float64
}

// categoryWeights drives the volume component. Categories missing from the
// table weigh 1.
var categoryWeights = map[string]float64{
	"Search":   1,
	"YouTube":  2,
	"Maps":     3,
	"Shopping": 2,
	"Discover": 1,
	"Other":    1,
}

// recencyHalfLifeDays controls the exponential decay of timestamp weight.
const recencyHalfLifeDays = 7.0

// meterCeiling is the raw score that maps to a 100% meter reading.
const meterCeiling = 15.0

// Assess combines category volume and timestamp recency into a bounded
// score, a tier, and the tier's fixed guidance text. The result is
// deterministic for fixed inputs and a fixed now; category iteration is
// ordered so the floating-point sum never varies between calls.
//
// Timestamps after now produce a negative day delta, which inflates the
// recency term. That mirrors the original arithmetic and is intentionally
// not clamped.
func Assess(categories map[string]int, times []time.Time, now time.Time) Assessment {
	var total float64

	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		w, ok := categoryWeights[cat]
		if !ok {
			w = 1
		}
		total += w * math.Log(1+float64(categories[cat]))
	}

	for _, t := range times {
		days := math.Floor(now.Sub(t).Hours() / 24)
		total += math.Exp(-days / recencyHalfLifeDays)
	}

	percent := int(math.Min(100, math.Max(0, total/meterCeiling*100)))

	a := Assessment{Percent: percent, Score: total}
	switch {
	case total <= 3:
		a.Level = Low
		a.Color = "green"
		a.Headline = "Low tracking detected."
		a.Suggestions = []string{
			"Keep privacy settings reviewed monthly.",
			"Use incognito for sensitive searches.",
			"Periodically clear browsing history.",
		}
	case total <= 10:
		a.Level = Medium
		a.Color = "#ffcc00"
		a.Headline = "Moderate tracking detected."
		a.Suggestions = []string{
			"Turn off Location History in Google settings.",
			"Review connected apps and revoke unused permissions.",
			"Use a privacy-focused browser (Brave/Firefox) for routine browsing.",
		}
	default:
		a.Level = High
		a.Color = "red"
		a.Headline = "Heavy tracking detected recently."
		a.Suggestions = []string{
			"Pause Web & App Activity (Google Account ▶ Data & privacy).",
			"Delete recent activity from My Activity.",
			"Consider a VPN for browsing and disable ad personalization.",
		}
	}
	return a
}
