// Package sheet renders a printable armament sheet: every weapon of a game
// grouped by category with its requirements and usability verdict for one
// stat block.
package sheet

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"soulsreq/internal/game"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	rowH      = 14.0
	nameW     = 170.0
	catW      = 110.0
	badgeW    = 62.0
	fontSize  = 8
	titleSize = 16
)

// Generate returns PDF bytes for the armament sheet of adapter a.
func Generate(a *game.Adapter, player game.Stats, groups []game.Group, title string) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("sheet: nil adapter")
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)

	attrW := (pageW - 2*margin - nameW - catW - badgeW) / float64(len(a.Attrs))
	y := newPage(pdf)

	// Title block
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+8, y)
	if title == "" {
		title = a.Label
	}
	pdf.CellFormat(pageW-2*margin-16, 18, title, "", 0, "L", false, 0, "")
	y += 22
	pdf.SetFont("Helvetica", "", fontSize+1)
	pdf.SetXY(margin+8, y)
	pdf.CellFormat(pageW-2*margin-16, 12, statLine(a, player), "", 0, "L", false, 0, "")
	y += 20

	header := func() {
		pdf.SetFont("Helvetica", "B", fontSize)
		x := float64(margin + 8)
		pdf.SetXY(x, y)
		pdf.CellFormat(nameW, rowH, "Name", "B", 0, "L", false, 0, "")
		pdf.CellFormat(catW, rowH, "Category", "B", 0, "L", false, 0, "")
		for _, k := range a.Attrs {
			pdf.CellFormat(attrW, rowH, a.LabelFor(k), "B", 0, "C", false, 0, "")
		}
		pdf.CellFormat(badgeW-16, rowH, "", "B", 0, "C", false, 0, "")
		y += rowH + 2
	}
	header()

	for _, g := range groups {
		if y+2*rowH > pageH-margin-8 {
			y = newPage(pdf)
			header()
		}
		pdf.SetFont("Helvetica", "B", fontSize+1)
		pdf.SetXY(margin+8, y)
		pdf.CellFormat(nameW+catW, rowH, fmt.Sprintf("%s (%d)", g.Category, len(g.Items)), "", 0, "L", false, 0, "")
		y += rowH
		pdf.SetFont("Helvetica", "", fontSize)
		for _, it := range g.Items {
			if y+rowH > pageH-margin-8 {
				y = newPage(pdf)
				header()
				pdf.SetFont("Helvetica", "", fontSize)
			}
			pdf.SetXY(margin+8, y)
			pdf.CellFormat(nameW, rowH, clip(it.Weapon.Name, 36), "", 0, "L", false, 0, "")
			pdf.CellFormat(catW, rowH, clip(it.Weapon.Category, 22), "", 0, "L", false, 0, "")
			for _, k := range a.Attrs {
				pdf.CellFormat(attrW, rowH, reqCell(it.Weapon.Requirements.Get(k)), "", 0, "C", false, 0, "")
			}
			drawBadge(pdf, pdf.GetX(), y+1, badgeW-16, rowH-2, it.Verdict)
			y += rowH
		}
		y += 4
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newPage adds a parchment page and returns the first usable y.
func newPage(pdf *gofpdf.Fpdf) float64 {
	pdf.AddPage()
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(0.5)
	return margin + 10
}

func statLine(a *game.Adapter, p game.Stats) string {
	parts := make([]string, 0, len(a.Attrs))
	for _, k := range a.Attrs {
		parts = append(parts, fmt.Sprintf("%s %d", a.LabelFor(k), p.Get(k)))
	}
	line := strings.Join(parts, "   ")
	if a.TwoHand.Enabled() {
		line += fmt.Sprintf("   (two-handed %s x%g, %s)", a.LabelFor(a.TwoHand.Affected), a.TwoHand.Multiplier, a.TwoHand.Rounding)
	}
	return line
}

func reqCell(v int) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprint(v)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// drawBadge draws the verdict pill: green for 1H, yellow for 2H, red otherwise.
func drawBadge(pdf *gofpdf.Fpdf, x, y, w, h float64, v game.Verdict) {
	switch v {
	case game.OneHanded:
		pdf.SetFillColor(187, 247, 208)
	case game.TwoHanded:
		pdf.SetFillColor(254, 240, 138)
	default:
		pdf.SetFillColor(254, 202, 202)
	}
	pdf.Rect(x, y, w, h, "F")
	pdf.SetFont("Helvetica", "B", fontSize-1)
	pdf.SetTextColor(40, 25, 15)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, v.String(), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetTextColor(80, 50, 30)
}

// drawWavyBorder draws a tattered parchment edge around the page.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin/2, margin/2, pageW-margin, pageH-margin, 16, 3)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(0.5)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w, Y: y + amp*math.Cos(float64(i)*0.5)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w, Y: y + h + amp*math.Cos(float64(i)*0.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h})
	}
	return pts
}
