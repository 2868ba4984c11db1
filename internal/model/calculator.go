package model

import "math"

// PurchaseEstimate holds the results of a rough sheet purchasing calculation
// for one material. It is an area-based pre-check, not a packing run, so the
// real plan may need more sheets than SheetsNeededMin.
type PurchaseEstimate struct {
	MaterialID        string  `json:"material_id"`
	TotalPartArea     float64 `json:"total_part_area"`     // sq mm, including kerf allowance
	SheetArea         float64 `json:"sheet_area"`          // usable area of one sheet, sq mm
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // fractional sheet count
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // ceiling of the exact count
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // recommended purchase including waste factor
	WastePercent      float64 `json:"waste_percent"`       // waste factor applied, e.g. 15 for 15%
	EstimatedCost     float64 `json:"estimated_cost"`      // total cost if a price was given
	PricePerSheet     float64 `json:"price_per_sheet"`
}

// EstimatePurchase computes how many sheets of one material to buy for the
// given parts. Each part is padded by the kerf on both axes, since every part
// costs one blade width of material along each cut edge.
func EstimatePurchase(materialID string, parts []Part, cfg GlobalConfig, wastePercent, pricePerSheet float64) PurchaseEstimate {
	var totalPartArea float64
	for _, p := range parts {
		if p.MaterialID != materialID {
			continue
		}
		totalPartArea += (p.Width + cfg.Kerf) * (p.Height + cfg.Kerf)
	}

	sheetArea := cfg.UsableArea()
	est := PurchaseEstimate{
		MaterialID:    materialID,
		TotalPartArea: totalPartArea,
		SheetArea:     sheetArea,
		WastePercent:  wastePercent,
		PricePerSheet: pricePerSheet,
	}
	if sheetArea <= 0 || totalPartArea == 0 {
		return est
	}

	est.SheetsNeededExact = totalPartArea / sheetArea
	est.SheetsNeededMin = int(math.Ceil(est.SheetsNeededExact))

	wasteFactor := 1.0 + wastePercent/100.0
	est.SheetsWithWaste = int(math.Ceil(est.SheetsNeededExact * wasteFactor))
	if est.SheetsWithWaste < est.SheetsNeededMin {
		est.SheetsWithWaste = est.SheetsNeededMin
	}
	est.EstimatedCost = float64(est.SheetsWithWaste) * pricePerSheet

	return est
}
