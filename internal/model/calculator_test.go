package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatePurchase_PadsPartsWithKerf(t *testing.T) {
	cfg := GlobalConfig{SheetWidth: 1020, SheetHeight: 1020, TrimMargin: 10, Kerf: 4}
	parts := []Part{
		{Name: "a", MaterialID: "mdf", Width: 496, Height: 496},
		{Name: "b", MaterialID: "mdf", Width: 496, Height: 496},
		{Name: "other", MaterialID: "oak", Width: 900, Height: 900},
	}

	est := EstimatePurchase("mdf", parts, cfg, 15, 30)

	// Two 500x500 padded parts on a 1000x1000 usable sheet.
	assert.Equal(t, 500000.0, est.TotalPartArea)
	assert.Equal(t, 1000000.0, est.SheetArea)
	assert.InDelta(t, 0.5, est.SheetsNeededExact, 1e-9)
	assert.Equal(t, 1, est.SheetsNeededMin)
	assert.Equal(t, 1, est.SheetsWithWaste)
	assert.Equal(t, 30.0, est.EstimatedCost)
}

func TestEstimatePurchase_WasteFactorBumpsCount(t *testing.T) {
	cfg := GlobalConfig{SheetWidth: 1000, SheetHeight: 1000, Kerf: 0}
	parts := []Part{
		{MaterialID: "mdf", Width: 950, Height: 1000},
		{MaterialID: "mdf", Width: 950, Height: 1000},
	}

	est := EstimatePurchase("mdf", parts, cfg, 15, 0)

	assert.Equal(t, 2, est.SheetsNeededMin)
	assert.Equal(t, 3, est.SheetsWithWaste, "1.9 exact * 1.15 waste rounds up to 3")
}

func TestEstimatePurchase_NoMatchingParts(t *testing.T) {
	est := EstimatePurchase("mdf", nil, DefaultGlobalConfig(), 15, 45)

	assert.Zero(t, est.TotalPartArea)
	assert.Zero(t, est.SheetsNeededMin)
	assert.Zero(t, est.EstimatedCost)
}
