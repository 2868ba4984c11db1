package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/panelcut/panelcut/internal/model"
)

// orderStrategy is one way of sorting parts before they are fed to the
// sequencer. Different orderings suit different part mixes, so the search
// tries all of them and keeps the best plan.
type orderStrategy struct {
	name string
	less func(a, b model.Part) bool
}

func maxSide(p model.Part) float64 {
	if p.Width > p.Height {
		return p.Width
	}
	return p.Height
}

var orderStrategies = []orderStrategy{
	{
		name: "area-desc",
		less: func(a, b model.Part) bool { return a.Area() > b.Area() },
	},
	{
		name: "longest-side-desc",
		less: func(a, b model.Part) bool { return maxSide(a) > maxSide(b) },
	},
	{
		name: "width-desc",
		less: func(a, b model.Part) bool { return a.Width > b.Width },
	},
}

// packMaterial runs the sequencer once per ordering strategy and keeps the
// plan with the fewest sheets, breaking ties on lower average waste. Only
// orderings that converged count; if none did, the material fails and the
// parts that could never be placed are reported.
func packMaterial(parts []model.Part, cfg model.GlobalConfig, matFor func(string) model.MaterialConfig) model.MaterialResult {
	if len(parts) == 0 {
		return model.MaterialResult{Status: model.StatusOK}
	}

	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return model.MaterialResult{
				Status: model.StatusFailed,
				Reason: err.Error(),
			}
		}
	}

	var best *sequenceOutcome
	var oversized []model.Part

	for _, strat := range orderStrategies {
		ordered := make([]model.Part, len(parts))
		copy(ordered, parts)
		sort.SliceStable(ordered, func(i, j int) bool {
			return strat.less(ordered[i], ordered[j])
		})

		outcome := sequenceSheets(ordered, cfg, matFor)
		if !outcome.converged {
			if len(oversized) == 0 {
				oversized = outcome.oversized
			}
			continue
		}

		if best == nil || betterOutcome(outcome, *best) {
			o := outcome
			best = &o
		}
	}

	if best == nil {
		return model.MaterialResult{
			Status:    model.StatusFailed,
			Oversized: oversized,
			Reason:    failureReason(oversized),
		}
	}

	return model.MaterialResult{
		Status: model.StatusOK,
		Sheets: best.sheets,
	}
}

// betterOutcome reports whether candidate beats current: fewer sheets first,
// then lower average waste.
func betterOutcome(candidate, current sequenceOutcome) bool {
	if len(candidate.sheets) != len(current.sheets) {
		return len(candidate.sheets) < len(current.sheets)
	}
	return averageWaste(candidate.sheets) < averageWaste(current.sheets)
}

func averageWaste(sheets []model.SheetResult) float64 {
	if len(sheets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sheets {
		sum += s.Waste
	}
	return sum / float64(len(sheets))
}

func failureReason(oversized []model.Part) string {
	if len(oversized) == 0 {
		return fmt.Sprintf("no ordering finished within %d sheets", maxSheetsPerStrategy)
	}
	names := make([]string, 0, len(oversized))
	for _, p := range oversized {
		names = append(names, fmt.Sprintf("%s (%.0fx%.0f)", p.Name, p.Width, p.Height))
	}
	return "parts too large for the sheet: " + strings.Join(names, ", ")
}
