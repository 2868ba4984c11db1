// Package importer reads part lists from CSV, Excel and DXF files. CSV import
// supports automatic delimiter detection, flexible column mapping and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/panelcut/panelcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	Width    int
	Height   int
	Quantity int
	Material int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"name":     {"name", "label", "part", "part name", "description", "desc", "piece", "item"},
	"width":    {"width", "w", "length", "len", "x"},
	"height":   {"height", "h", "depth", "d", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"material": {"material", "mat", "material id", "board", "stock"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter that
// produces the most consistent column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns.
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases for each column role. When no
// header is recognized it returns a positional mapping and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:     -1,
		Width:    -1,
		Height:   -1,
		Quantity: -1,
		Material: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "name":
						if mapping.Name == -1 {
							mapping.Name = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "material":
						if mapping.Material == -1 {
							mapping.Material = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Width, Height, Quantity, Material
		return ColumnMapping{
			Name:     0,
			Width:    1,
			Height:   2,
			Quantity: 3,
			Material: 4,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a trimmed cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts parts from a row using the given column mapping. A row
// with quantity N yields N parts with distinct IDs. Returns the parts and any
// error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) ([]model.Part, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return nil, fmt.Sprintf("%s: Missing height value", rowLabel)
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
	}

	if width <= 0 || height <= 0 || qty <= 0 {
		return nil, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel)
	}

	material := getCell(row, mapping.Material)

	parts := make([]model.Part, 0, qty)
	for i := 0; i < qty; i++ {
		parts = append(parts, model.NewPart(name, width, height, material))
	}
	return parts, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// importFromRows converts raw rows into parts using header detection.
func importFromRows(rows [][]string, rowWord string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	mapping, hasHeader := DetectColumns(rows[0])
	dataRows := rows
	if hasHeader {
		dataRows = rows[1:]
	} else {
		result.Warnings = append(result.Warnings, "No header row detected, assuming Name, Width, Height, Quantity, Material order")
	}

	for i, row := range dataRows {
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowWord, i+1)
		if hasHeader {
			rowLabel = fmt.Sprintf("%s %d", rowWord, i+2)
		}

		parts, errMsg := parseRow(row, mapping, rowLabel, len(result.Parts))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Parts = append(result.Parts, parts...)
	}

	if len(result.Parts) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No parts found in file")
	}

	return result
}

// ImportCSV imports parts from a CSV file. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports parts from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports parts from an Excel (.xlsx) file. It reads the first
// worksheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read sheet %q: %v", sheets[0], err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}
