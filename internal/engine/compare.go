package engine

import (
	"fmt"

	"github.com/panelcut/panelcut/internal/model"
)

// ComparisonScenario defines a named config variant to compare.
type ComparisonScenario struct {
	Name   string
	Config model.GlobalConfig
}

// ComparisonResult holds the plan and computed statistics for one scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          model.PlanResult
	SheetsUsed      int
	AverageWaste    float64
	FailedMaterials int
}

// CompareScenarios plans the same part list under each scenario and returns
// the results in scenario order, for side-by-side what-if comparison of sheet
// geometry parameters.
func CompareScenarios(scenarios []ComparisonScenario, parts []model.Part, materials map[string]model.MaterialConfig) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan := New(scenario.Config, materials).Plan(parts)

		sheets := 0
		var wasteSum float64
		for _, mr := range plan.Materials {
			sheets += len(mr.Sheets)
			for _, s := range mr.Sheets {
				wasteSum += s.Waste
			}
		}
		avgWaste := 0.0
		if sheets > 0 {
			avgWaste = wasteSum / float64(sheets)
		}

		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          plan,
			SheetsUsed:      sheets,
			AverageWaste:    avgWaste,
			FailedMaterials: len(plan.FailedMaterials()),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of the given config:
// the config as-is, a half-kerf blade, and no edge trim.
func BuildDefaultScenarios(base model.GlobalConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Config: base},
	}

	if base.Kerf > 1.0 {
		halfKerf := base
		halfKerf.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Kerf %.1fmm (half)", halfKerf.Kerf),
			Config: halfKerf,
		})
	}

	if base.TrimMargin > 0 {
		noTrim := base
		noTrim.TrimMargin = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Edge Trim",
			Config: noTrim,
		})
	}

	return scenarios
}
