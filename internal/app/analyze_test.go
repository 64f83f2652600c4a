package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/activitylens/internal/extract"
	"github.com/hyperifyio/activitylens/internal/rank"
	"github.com/hyperifyio/activitylens/internal/risk"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestAnalyze_SearchExportEndToEnd(t *testing.T) {
	doc := `<html><body>
	<div>Searched for cats and dogs at 10:30<span>June 14, 2025 at 9:00</span></div>
	<div>Searched for cats and dogs</div>
	<div>Searched for garden tools</div>
	<div>Unrelated block</div>
	</body></html>`
	path := writeExport(t, "search-history.html", doc)

	got, err := Analyze(path, "My Search History.html", testNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.Kind != extract.KindSearch {
		t.Fatalf("kind = %v, want search", got.Kind)
	}
	if got.Categories["Search"] != 3 || got.Categories["Other"] != 1 {
		t.Fatalf("unexpected categories: %v", got.Categories)
	}
	if len(got.Top) != 2 || got.Top[0].Label != "cats and dogs" || got.Top[0].Count != 2 {
		t.Fatalf("unexpected top items: %v", got.Top)
	}
	if got.Risk.Level != risk.Low && got.Risk.Level != risk.Medium {
		t.Fatalf("implausible risk level %q for small export", got.Risk.Level)
	}
}

func TestAnalyze_EmptyDocumentYieldsSentinel(t *testing.T) {
	path := writeExport(t, "export.html", "<html><body></body></html>")
	got, err := Analyze(path, "export.html", testNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !rank.IsSentinel(got.Top) {
		t.Fatalf("expected sentinel top list, got %v", got.Top)
	}
	if got.Risk.Level != risk.Low || got.Risk.Percent != 0 {
		t.Fatalf("expected zero-score Low assessment, got %+v", got.Risk)
	}
}

func TestAnalyze_MissingFileIsFatal(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "gone.html"), "gone.html", testNow)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestOrderedCategories(t *testing.T) {
	got := OrderedCategories(map[string]int{
		"Other": 1, "Search": 2, "Podcasts": 3, "YouTube": 4,
	})
	want := []string{"Search", "YouTube", "Other", "Podcasts"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
