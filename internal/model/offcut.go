package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting,
// worth keeping in stock for a later job.
type Offcut struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"material_id"`
	SheetIndex int     `json:"sheet_index"` // index of the source sheet within its material group
	X          float64 `json:"x"`           // position on the source sheet (mm from left)
	Y          float64 `json:"y"`           // position on the source sheet (mm from top)
	Width      float64 `json:"width"`       // mm
	Height     float64 `json:"height"`      // mm
}

// Area returns the offcut area in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be worth returning to stock. Smaller remnants are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be worth
// returning to stock.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts scans the free regions of a material group's sheets and
// promotes those above the reuse thresholds to Offcut records, largest first.
func DetectOffcuts(materialID string, sheets []SheetResult) []Offcut {
	var offcuts []Offcut
	for idx, sheet := range sheets {
		for _, fr := range sheet.FreeRects {
			if fr.Width < MinOffcutDimension || fr.Height < MinOffcutDimension {
				continue
			}
			if fr.Area() < MinOffcutArea {
				continue
			}
			offcuts = append(offcuts, Offcut{
				ID:         uuid.New().String()[:8],
				MaterialID: materialID,
				SheetIndex: idx,
				X:          fr.X,
				Y:          fr.Y,
				Width:      fr.Width,
				Height:     fr.Height,
			})
		}
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}
