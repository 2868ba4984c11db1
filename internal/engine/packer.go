package engine

import "github.com/panelcut/panelcut/internal/model"

// MinUsableDimension is the smallest width or height (in mm) a leftover region
// must have to be worth reporting. Smaller scraps stay out of the results but
// remain accounted for in the waste percentage.
const MinUsableDimension = 20.0

// maxSheetsPerStrategy caps how many sheets one ordering may produce before
// the run is declared non-converged.
const maxSheetsPerStrategy = 200

// workingPart tracks placement state for one part during a sequencing run.
// The flag lives here so the caller's parts are never mutated.
type workingPart struct {
	model.Part
	placed bool
}

func newWorkingParts(parts []model.Part) []*workingPart {
	wps := make([]*workingPart, len(parts))
	for i := range parts {
		wps[i] = &workingPart{Part: parts[i]}
	}
	return wps
}

// packSheet fills one fresh sheet from the ordered list of parts. It makes a
// single linear pass: a part that does not fit is skipped for this sheet, even
// if space for it opens up later. Parts already placed on earlier sheets are
// skipped outright.
func packSheet(parts []*workingPart, cfg model.GlobalConfig, matFor func(string) model.MaterialConfig) model.SheetResult {
	alloc := newAllocator(rect{
		x: cfg.TrimMargin,
		y: cfg.TrimMargin,
		w: cfg.UsableWidth(),
		h: cfg.UsableHeight(),
	}, cfg.Kerf)

	sheet := model.SheetResult{}

	for _, wp := range parts {
		if wp.placed {
			continue
		}

		allowRotate := !matFor(wp.MaterialID).TextureStrict
		x, y, rotated, ok := alloc.place(wp.Width, wp.Height, allowRotate)
		if !ok {
			continue
		}

		placedW, placedH := wp.Width, wp.Height
		if rotated {
			placedW, placedH = wp.Height, wp.Width
		}
		sheet.Parts = append(sheet.Parts, model.PlacedPart{
			PartID:       wp.ID,
			Name:         wp.Name,
			MaterialID:   wp.MaterialID,
			X:            x,
			Y:            y,
			Width:        placedW,
			Height:       placedH,
			Rotated:      rotated,
			FinishWidth:  wp.Width,
			FinishHeight: wp.Height,
		})
		wp.placed = true
	}

	for _, fr := range alloc.freeRects {
		if fr.w >= MinUsableDimension && fr.h >= MinUsableDimension {
			sheet.FreeRects = append(sheet.FreeRects, model.FreeRect{
				X: fr.x, Y: fr.y, Width: fr.w, Height: fr.h,
			})
		}
	}

	if usable := cfg.UsableArea(); usable > 0 {
		sheet.Waste = 100.0 - sheet.UsedArea()/usable*100.0
	}

	return sheet
}

// sequenceOutcome is the result of sequencing one ordering of a material's
// parts onto sheets.
type sequenceOutcome struct {
	sheets    []model.SheetResult
	oversized []model.Part
	converged bool
}

// sequenceSheets opens fresh sheets until every part is placed. Two guards
// stop runaway input: a sheet that places zero parts means the survivors can
// never fit (they are reported as oversized and the run stops), and the sheet
// ceiling stops orderings that keep opening sheets without finishing.
func sequenceSheets(parts []model.Part, cfg model.GlobalConfig, matFor func(string) model.MaterialConfig) sequenceOutcome {
	wps := newWorkingParts(parts)
	outcome := sequenceOutcome{converged: true}

	for {
		remaining := 0
		for _, wp := range wps {
			if !wp.placed {
				remaining++
			}
		}
		if remaining == 0 {
			break
		}

		if len(outcome.sheets) >= maxSheetsPerStrategy {
			outcome.converged = false
			break
		}

		sheet := packSheet(wps, cfg, matFor)
		if len(sheet.Parts) == 0 {
			for _, wp := range wps {
				if !wp.placed {
					outcome.oversized = append(outcome.oversized, wp.Part)
					wp.placed = true
				}
			}
			outcome.converged = false
			break
		}

		outcome.sheets = append(outcome.sheets, sheet)
	}

	return outcome
}
