package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/activitylens/internal/app"
	"github.com/hyperifyio/activitylens/internal/rank"
	"github.com/hyperifyio/activitylens/internal/risk"
)

func sampleAnalysis() app.Analysis {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	categories := map[string]int{
		"Search": 12, "YouTube": 4, "Maps": 0, "Shopping": 1, "Discover": 0, "Other": 3,
	}
	return app.Analysis{
		Filename:   "search-history.html",
		Categories: categories,
		Top: []rank.Item{
			{Label: "cats and dogs", Count: 5},
			{Label: "garden tools", Count: 2},
		},
		Risk: risk.Assess(categories, nil, now),
	}
}

func TestWrite_ProducesPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	if err := Write(sampleAnalysis(), out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
	if len(data) < 1000 {
		t.Fatalf("report suspiciously small: %d bytes", len(data))
	}
}

func TestWrite_SentinelTopAndEmptyCategories(t *testing.T) {
	a := sampleAnalysis()
	a.Categories = map[string]int{"Discover": 0}
	a.Top = []rank.Item{{Label: rank.NoData, Count: 0}}
	a.Risk = risk.Assess(a.Categories, nil, time.Now())

	out := filepath.Join(t.TempDir(), "empty.pdf")
	if err := Write(a, out); err != nil {
		t.Fatalf("Write failed on empty analysis: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("expected non-empty report, err=%v", err)
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short label", 40); got != "short label" {
		t.Fatalf("short label altered: %q", got)
	}
	long := strings.Repeat("a", 45)
	got := truncateLabel(long, 40)
	if len([]rune(got)) != 41 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected forty runes plus ellipsis, got %q", got)
	}
}
