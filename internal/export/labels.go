package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/panelcut/panelcut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartID     string  `json:"part_id"`
	Name       string  `json:"name"`
	MaterialID string  `json:"material"`
	Width      float64 `json:"width_mm"`
	Height     float64 `json:"height_mm"`
	SheetIndex int     `json:"sheet"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every placed part in
// the plan. Each label carries the part name, finished dimensions and a QR
// code encoding the placement metadata as JSON.
func ExportLabels(path string, result model.PlanResult) error {
	var labels []LabelInfo
	for _, materialID := range sortedMaterialIDs(result) {
		mr := result.Materials[materialID]
		for sheetIdx, sheet := range mr.Sheets {
			for _, p := range sheet.Parts {
				labels = append(labels, LabelInfo{
					PartID:     p.PartID,
					Name:       p.Name,
					MaterialID: materialID,
					Width:      p.FinishWidth,
					Height:     p.FinishHeight,
					SheetIndex: sheetIdx + 1,
					Rotated:    p.Rotated,
					X:          p.X,
					Y:          p.Y,
				})
			}
		}
	}

	if len(labels) == 0 {
		return fmt.Errorf("no parts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PartID, info.SheetIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		// Trim whole runes so a multi-byte name is never cut mid-character.
		runes := []rune(name)
		for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > textW {
			runes = runes[:len(runes)-1]
		}
		name = string(runes) + "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm  %s", info.Width, info.Height, info.MaterialID)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	sheetInfo := fmt.Sprintf("Sheet %d @ (%.0f, %.0f)", info.SheetIndex, info.X, info.Y)
	pdf.CellFormat(textW, 3, sheetInfo, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "ROTATED 90", "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
