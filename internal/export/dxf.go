package export

import (
	"fmt"
	"path/filepath"

	"github.com/panelcut/panelcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// ExportDXF writes one DXF drawing per physical sheet into dir, named
// <material>-sheet-<n>.dxf. The sheet outline goes on layer 0, part outlines
// on a PARTS layer and reusable free regions on an OFFCUTS layer, all as
// closed LWPOLYLINEs in mm.
func ExportDXF(dir string, result model.PlanResult, cfg model.GlobalConfig) error {
	if result.TotalSheets() == 0 {
		return fmt.Errorf("no sheets to export")
	}

	for _, materialID := range sortedMaterialIDs(result) {
		mr := result.Materials[materialID]
		for i, sheet := range mr.Sheets {
			path := filepath.Join(dir, fmt.Sprintf("%s-sheet-%d.dxf", materialID, i+1))
			if err := writeSheetDXF(path, sheet, cfg); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
		}
	}
	return nil
}

func writeSheetDXF(path string, sheet model.SheetResult, cfg model.GlobalConfig) error {
	d := dxf.NewDrawing()

	// Sheet outline on the default layer.
	addRect(d, 0, 0, cfg.SheetWidth, cfg.SheetHeight)

	if _, err := d.AddLayer("PARTS", color.Green, table.LT_CONTINUOUS, true); err != nil {
		return err
	}
	for _, p := range sheet.Parts {
		addRect(d, p.X, p.Y, p.Width, p.Height)
	}

	if _, err := d.AddLayer("OFFCUTS", color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return err
	}
	for _, fr := range sheet.FreeRects {
		addRect(d, fr.X, fr.Y, fr.Width, fr.Height)
	}

	return d.SaveAs(path)
}

// addRect draws an axis-aligned rectangle as a closed LWPOLYLINE.
func addRect(d *drawing.Drawing, x, y, w, h float64) {
	d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
}
