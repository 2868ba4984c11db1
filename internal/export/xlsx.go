package export

import (
	"fmt"

	"github.com/panelcut/panelcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the plan as a workbook: one worksheet per material with
// the placement list, plus a summary worksheet with per-material totals.
func ExportXLSX(path string, result model.PlanResult, cfg model.GlobalConfig) error {
	if len(result.Materials) == 0 {
		return fmt.Errorf("no materials to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result, cfg); err != nil {
		return err
	}

	for _, materialID := range sortedMaterialIDs(result) {
		if err := writeMaterialSheet(f, materialID, result.Materials[materialID]); err != nil {
			return err
		}
	}

	// Drop excelize's default worksheet; Summary is the first page.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, result model.PlanResult, cfg model.GlobalConfig) error {
	const name = "Summary"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	rows := [][]any{
		{"Stock sheet", fmt.Sprintf("%.0f x %.0f mm", cfg.SheetWidth, cfg.SheetHeight)},
		{"Trim margin", cfg.TrimMargin},
		{"Kerf", cfg.Kerf},
		{},
		{"Material", "Status", "Sheets", "Parts", "Avg waste %", "Reason"},
	}

	for _, id := range sortedMaterialIDs(result) {
		mr := result.Materials[id]
		parts := 0
		for _, s := range mr.Sheets {
			parts += len(s.Parts)
		}
		rows = append(rows, []any{id, string(mr.Status), len(mr.Sheets), parts, mr.AverageWaste(), mr.Reason})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeMaterialSheet(f *excelize.File, materialID string, mr model.MaterialResult) error {
	// Worksheet names are capped at 31 characters by the format.
	name := materialID
	if len(name) > 31 {
		name = name[:31]
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := []any{"Sheet", "Part", "Name", "X (mm)", "Y (mm)", "Placed W", "Placed H", "Finish W", "Finish H", "Rotated"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	rowIdx := 2
	for sheetIdx, sheet := range mr.Sheets {
		for _, p := range sheet.Parts {
			row := []any{sheetIdx + 1, p.PartID, p.Name, p.X, p.Y, p.Width, p.Height, p.FinishWidth, p.FinishHeight, p.Rotated}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return err
			}
			rowIdx++
		}
	}

	if !mr.OK() {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		note := []any{"PACKING FAILED", mr.Reason}
		if err := f.SetSheetRow(name, cell, &note); err != nil {
			return err
		}
	}
	return nil
}
