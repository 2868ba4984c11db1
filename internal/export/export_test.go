package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/panelcut/panelcut/internal/model"
)

// buildTestResult returns a small two-material plan with one placed sheet,
// one free region and one failed group.
func buildTestResult() model.PlanResult {
	return model.PlanResult{Materials: map[string]model.MaterialResult{
		"mdf-18": {
			Status: model.StatusOK,
			Sheets: []model.SheetResult{
				{
					Parts: []model.PlacedPart{
						{PartID: "p1", Name: "Side panel", MaterialID: "mdf-18",
							X: 10, Y: 10, Width: 720, Height: 560,
							FinishWidth: 720, FinishHeight: 560},
						{PartID: "p2", Name: "Shelf", MaterialID: "mdf-18",
							X: 10, Y: 574, Width: 400, Height: 764, Rotated: true,
							FinishWidth: 764, FinishHeight: 400},
					},
					FreeRects: []model.FreeRect{
						{X: 734, Y: 10, Width: 2056, Height: 560},
					},
					Waste: 82.3,
				},
			},
		},
		"oak-veneer-18": {
			Status:    model.StatusFailed,
			Oversized: []model.Part{{ID: "p3", Name: "Worktop", MaterialID: "oak-veneer-18", Width: 4000, Height: 800}},
			Reason:    "parts too large for the sheet: Worktop (4000x800)",
		},
	}}
}

func TestExportPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	require.NoError(t, ExportPDF(path, buildTestResult(), model.DefaultGlobalConfig()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "a rendered PDF is not empty")
}

func TestExportPDF_NoSheets(t *testing.T) {
	empty := model.PlanResult{Materials: map[string]model.MaterialResult{}}
	err := ExportPDF(filepath.Join(t.TempDir(), "plan.pdf"), empty, model.DefaultGlobalConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sheets")
}

func TestExportLabels_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, buildTestResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportLabels_TruncatesLongMultiByteName(t *testing.T) {
	result := buildTestResult()
	mr := result.Materials["mdf-18"]
	// Wider than a label's text area, every character multi-byte.
	mr.Sheets[0].Parts[0].Name = strings.Repeat("Tür-Ölfaß-Überbau ", 6)
	result.Materials["mdf-18"] = mr

	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, result))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportLabels_NoPlacedParts(t *testing.T) {
	empty := model.PlanResult{Materials: map[string]model.MaterialResult{
		"mdf-18": {Status: model.StatusFailed, Reason: "parts too large"},
	}}
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), empty)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parts placed")
}

func TestExportXLSX_WritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	require.NoError(t, ExportXLSX(path, buildTestResult(), model.DefaultGlobalConfig()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "mdf-18")
	assert.Contains(t, sheets, "oak-veneer-18")
	assert.NotContains(t, sheets, "Sheet1")

	rows, err := f.GetRows("mdf-18")
	require.NoError(t, err)
	var cells []string
	for _, row := range rows {
		cells = append(cells, row...)
	}
	assert.Contains(t, cells, "Side panel")
	assert.Contains(t, cells, "Shelf")

	failedRows, err := f.GetRows("oak-veneer-18")
	require.NoError(t, err)
	cells = cells[:0]
	for _, row := range failedRows {
		cells = append(cells, row...)
	}
	assert.Contains(t, cells, "PACKING FAILED")
}

func TestExportDXF_OneFilePerSheet(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ExportDXF(dir, buildTestResult(), model.DefaultGlobalConfig()))

	path := filepath.Join(dir, "mdf-18-sheet-1.dxf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "LWPOLYLINE")
	assert.Contains(t, content, "PARTS")
	assert.Contains(t, content, "OFFCUTS")

	// The failed material produced no sheets, so no file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSortedMaterialIDs_Deterministic(t *testing.T) {
	ids := sortedMaterialIDs(buildTestResult())
	assert.Equal(t, []string{"mdf-18", "oak-veneer-18"}, ids)
}
