package risk

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestAssess_ZeroActivityIsLow(t *testing.T) {
	got := Assess(map[string]int{
		"Search": 0, "YouTube": 0, "Maps": 0, "Shopping": 0, "Discover": 0, "Other": 0,
	}, nil, testNow)
	if got.Level != Low {
		t.Fatalf("level = %q, want Low", got.Level)
	}
	if got.Percent != 0 {
		t.Fatalf("percent = %d, want 0", got.Percent)
	}
	if got.Score != 0 {
		t.Fatalf("score = %v, want 0", got.Score)
	}
	if got.Color != "green" || got.Headline != "Low tracking detected." {
		t.Fatalf("unexpected tier text: %+v", got)
	}
	if len(got.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got.Suggestions))
	}
}

func TestAssess_YouTubeVolumeLandsInMedium(t *testing.T) {
	got := Assess(map[string]int{"YouTube": 50}, nil, testNow)
	wantScore := 2 * math.Log(51)
	if math.Abs(got.Score-wantScore) > 1e-9 {
		t.Fatalf("score = %v, want %v", got.Score, wantScore)
	}
	if got.Level != Medium {
		t.Fatalf("level = %q, want Medium (score %v)", got.Level, got.Score)
	}
	if got.Percent != 52 {
		t.Fatalf("percent = %d, want 52", got.Percent)
	}
	if got.Color != "#ffcc00" || got.Headline != "Moderate tracking detected." {
		t.Fatalf("unexpected tier text: %+v", got)
	}
}

func TestAssess_PercentBoundedForPathologicalVolume(t *testing.T) {
	got := Assess(map[string]int{"Maps": 10000}, nil, testNow)
	if got.Percent != 100 {
		t.Fatalf("percent = %d, want 100", got.Percent)
	}
	if got.Level != High {
		t.Fatalf("level = %q, want High", got.Level)
	}
	if got.Color != "red" || got.Headline != "Heavy tracking detected recently." {
		t.Fatalf("unexpected tier text: %+v", got)
	}
}

func TestAssess_RecentActivityRaisesScore(t *testing.T) {
	counts := map[string]int{"Search": 1}
	base := Assess(counts, nil, testNow)

	recent := []time.Time{
		testNow.Add(-1 * time.Hour),
		testNow.Add(-25 * time.Hour),
	}
	withRecency := Assess(counts, recent, testNow)
	if withRecency.Score <= base.Score {
		t.Fatalf("recency did not raise score: %v <= %v", withRecency.Score, base.Score)
	}
	// Same-day activity decays by exp(0), day-old by exp(-1/7).
	wantDelta := 1 + math.Exp(-1.0/7)
	if math.Abs((withRecency.Score-base.Score)-wantDelta) > 1e-9 {
		t.Fatalf("recency delta = %v, want %v", withRecency.Score-base.Score, wantDelta)
	}
}

func TestAssess_FutureTimestampInflatesRecency(t *testing.T) {
	counts := map[string]int{"Search": 0}
	future := []time.Time{testNow.Add(36 * time.Hour)}
	got := Assess(counts, future, testNow)
	// Floor of a negative delta is -2 days; exp(2/7) > 1.
	want := math.Exp(2.0 / 7)
	if math.Abs(got.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got.Score, want)
	}
}

func TestAssess_Deterministic(t *testing.T) {
	counts := map[string]int{
		"Search": 7, "YouTube": 3, "Maps": 2, "Shopping": 1, "Discover": 5, "Other": 4,
	}
	times := []time.Time{
		testNow.AddDate(0, 0, -1),
		testNow.AddDate(0, 0, -30),
	}
	first := Assess(counts, times, testNow)
	for i := 0; i < 100; i++ {
		if got := Assess(counts, times, testNow); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestAssess_UnknownCategoryDefaultsToWeightOne(t *testing.T) {
	got := Assess(map[string]int{"Podcasts": 10}, nil, testNow)
	want := math.Log(11)
	if math.Abs(got.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got.Score, want)
	}
}
