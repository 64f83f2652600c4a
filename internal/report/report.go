package report

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hyperifyio/activitylens/internal/app"
	"github.com/hyperifyio/activitylens/internal/rank"
)

// slicePalette colors consecutive pie slices and legend rows.
var slicePalette = [][3]int{
	{66, 133, 244},
	{219, 68, 55},
	{244, 180, 0},
	{15, 157, 88},
	{171, 71, 188},
	{255, 112, 67},
}

const maxLabelRunes = 40

var titleCaser = cases.Title(language.Und)

// Write renders a single-page PDF for one analysis: the category
// breakdown with a pie chart over the non-zero entries, the top-5 bar
// chart (omitted for the no-data sentinel), and the risk meter with its
// suggestions.
func Write(a app.Analysis, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Activity analysis", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Activity analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, truncateLabel(a.Filename, maxLabelRunes), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawRiskMeter(pdf, a)
	drawCategories(pdf, a.Categories)
	drawTopItems(pdf, a.Top)

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write report %s: %w", outPath, err)
	}
	return nil
}

func drawRiskMeter(pdf *gofpdf.Fpdf, a app.Analysis) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, a.Risk.Headline, "", 1, "L", false, 0, "")

	const meterWidth, meterHeight = 120.0, 6.0
	x, y := pdf.GetXY()
	r, g, b := tierRGB(a.Risk.Color)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Rect(x, y, meterWidth, meterHeight, "D")
	if a.Risk.Percent > 0 {
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, meterWidth*float64(a.Risk.Percent)/100, meterHeight, "F")
	}
	pdf.SetXY(x+meterWidth+4, y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, meterHeight, fmt.Sprintf("%d%% (%s)", a.Risk.Percent, a.Risk.Level), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, s := range a.Risk.Suggestions {
		pdf.CellFormat(4, 5, "-", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 5, s, "", "L", false)
	}
	pdf.Ln(4)
}

func drawCategories(pdf *gofpdf.Fpdf, categories map[string]int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Activity breakdown", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	type entry struct {
		name  string
		count int
	}
	var entries []entry
	var total int
	for _, name := range app.OrderedCategories(categories) {
		if categories[name] > 0 {
			entries = append(entries, entry{name, categories[name]})
			total += categories[name]
		}
	}
	if total == 0 {
		pdf.CellFormat(0, 6, "No categorized activity.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	// Legend on the left, pie on the right.
	startY := pdf.GetY()
	for i, e := range entries {
		c := slicePalette[i%len(slicePalette)]
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.Rect(12, pdf.GetY()+1, 4, 4, "F")
		pdf.SetX(18)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", e.name, e.count), "", 1, "L", false, 0, "")
	}
	endY := pdf.GetY()

	const cx, radius = 150.0, 25.0
	cy := startY + radius
	angle := -90.0 // first slice starts at twelve o'clock
	for i, e := range entries {
		sweep := 360 * float64(e.count) / float64(total)
		c := slicePalette[i%len(slicePalette)]
		pdf.SetFillColor(c[0], c[1], c[2])
		drawSlice(pdf, cx, cy, radius, angle, angle+sweep)
		angle += sweep
	}

	if bottom := cy + radius; bottom > endY {
		pdf.SetY(bottom)
	} else {
		pdf.SetY(endY)
	}
	pdf.Ln(6)
}

// drawSlice approximates a filled pie sector with a polygon fan.
func drawSlice(pdf *gofpdf.Fpdf, cx, cy, r, fromDeg, toDeg float64) {
	points := []gofpdf.PointType{{X: cx, Y: cy}}
	const stepDeg = 3.0
	for deg := fromDeg; deg < toDeg; deg += stepDeg {
		points = append(points, arcPoint(cx, cy, r, deg))
	}
	points = append(points, arcPoint(cx, cy, r, toDeg))
	pdf.Polygon(points, "F")
}

func arcPoint(cx, cy, r, deg float64) gofpdf.PointType {
	rad := deg * math.Pi / 180
	return gofpdf.PointType{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}

func drawTopItems(pdf *gofpdf.Fpdf, top []rank.Item) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Top 5 interests", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	if rank.IsSentinel(top) {
		pdf.CellFormat(0, 6, rank.NoData, "", 1, "L", false, 0, "")
		return
	}

	maxCount := 0
	for _, it := range top {
		if it.Count > maxCount {
			maxCount = it.Count
		}
	}
	if maxCount == 0 {
		return
	}

	const labelWidth, barMax, barHeight = 80.0, 90.0, 5.0
	for i, it := range top {
		label := truncateLabel(titleCaser.String(it.Label), maxLabelRunes)
		pdf.CellFormat(labelWidth, 7, label, "", 0, "L", false, 0, "")
		x, y := pdf.GetXY()
		c := slicePalette[i%len(slicePalette)]
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.Rect(x, y+1, barMax*float64(it.Count)/float64(maxCount), barHeight, "F")
		pdf.SetX(x + barMax + 2)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d", it.Count), "", 1, "L", false, 0, "")
	}
}

// truncateLabel caps a display label at max runes with an ellipsis marker.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// tierRGB maps the tier color tokens onto fill colors.
func tierRGB(token string) (int, int, int) {
	switch token {
	case "green":
		return 46, 125, 50
	case "#ffcc00":
		return 255, 204, 0
	case "red":
		return 198, 40, 40
	default:
		return 120, 120, 120
	}
}
