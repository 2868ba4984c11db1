// Package export writes cutting plans to presentation formats: PDF layout
// diagrams, QR part labels, XLSX cut lists and DXF drawings.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/panelcut/panelcut/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the plan as a PDF: one page per sheet with a scaled
// layout diagram, then a summary page with per-material totals and failures.
func ExportPDF(path string, result model.PlanResult, cfg model.GlobalConfig) error {
	if result.TotalSheets() == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, materialID := range sortedMaterialIDs(result) {
		mr := result.Materials[materialID]
		for i, sheet := range mr.Sheets {
			pdf.AddPage()
			renderSheetPage(pdf, sheet, cfg, materialID, i+1, len(mr.Sheets))
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, cfg)

	return pdf.OutputFileAndClose(path)
}

// sortedMaterialIDs returns the plan's material IDs in stable alphabetical
// order so export page order is deterministic.
func sortedMaterialIDs(result model.PlanResult) []string {
	ids := make([]string, 0, len(result.Materials))
	for id := range result.Materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// renderSheetPage draws a single sheet of one material on the current page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, cfg model.GlobalConfig, materialID string, sheetNum, sheetCount int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s — sheet %d of %d (%.0f x %.0f mm)",
		materialID, sheetNum, sheetCount, cfg.SheetWidth, cfg.SheetHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f mm2 | Waste: %.1f%% | Trim: %.0f mm | Kerf: %.1f mm",
		len(sheet.Parts), sheet.UsedArea(), sheet.Waste, cfg.TrimMargin, cfg.Kerf)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/cfg.SheetWidth, drawHeight/cfg.SheetHeight)
	canvasW := cfg.SheetWidth * scale
	canvasH := cfg.SheetHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Trim border
	if cfg.TrimMargin > 0 {
		pdf.SetDrawColor(160, 120, 90)
		pdf.SetLineWidth(0.2)
		pdf.Rect(offsetX+cfg.TrimMargin*scale, offsetY+cfg.TrimMargin*scale,
			canvasW-2*cfg.TrimMargin*scale, canvasH-2*cfg.TrimMargin*scale, "D")
	}

	// Reusable free regions, hatched
	for _, fr := range sheet.FreeRects {
		fx := offsetX + fr.X*scale
		fy := offsetY + fr.Y*scale
		fw := fr.Width * scale
		fh := fr.Height * scale
		pdf.SetFillColor(235, 225, 205)
		pdf.SetDrawColor(180, 160, 130)
		pdf.SetLineWidth(0.15)
		pdf.Rect(fx, fy, fw, fh, "FD")
		drawHatchPattern(pdf, fx, fy, fw, fh)
	}

	// Placed parts
	for i, p := range sheet.Parts {
		col := partColors[i%len(partColors)]
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale
		pw := p.Width * scale
		ph := p.Height * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Name
			if p.Rotated {
				label += " (R)"
			}
			dims := fmt.Sprintf("%.0fx%.0f", p.FinishWidth, p.FinishHeight)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, cfg, scale, offsetX, offsetY, canvasW, canvasH)
}

// labelFontSize picks a font size that fits roughly inside a part rectangle.
func labelFontSize(w, h float64) float64 {
	size := math.Min(w, h) / 4
	if size < 5 {
		return 5
	}
	if size > 9 {
		return 9
	}
	return size
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark a
// reusable offcut region.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(180, 160, 130)
	pdf.SetLineWidth(0.1)

	spacing := 4.0
	maxDist := w + h
	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, cfg model.GlobalConfig, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", cfg.SheetWidth)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", cfg.SheetHeight)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws per-material totals and any failures.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlanResult, cfg model.GlobalConfig) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Cutting plan summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight+2)
	pdf.CellFormat(0, 5, fmt.Sprintf("Stock: %.0f x %.0f mm, trim %.0f mm, kerf %.1f mm",
		cfg.SheetWidth, cfg.SheetHeight, cfg.TrimMargin, cfg.Kerf), "", 1, "L", false, 0, "")

	y := marginTop + headerHeight + 12
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, 6, "Material", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Sheets", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "Parts", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Avg waste", "B", 0, "R", false, 0, "")
	pdf.CellFormat(80, 6, "Status", "B", 1, "L", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 10)
	for _, id := range sortedMaterialIDs(result) {
		mr := result.Materials[id]
		parts := 0
		for _, s := range mr.Sheets {
			parts += len(s.Parts)
		}
		status := "ok"
		if !mr.OK() {
			status = "FAILED: " + mr.Reason
		}

		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 6, id, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", len(mr.Sheets)), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", parts), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f%%", mr.AverageWaste()), "", 0, "R", false, 0, "")
		pdf.CellFormat(80, 6, status, "", 1, "L", false, 0, "")
		y += 6
	}
}
