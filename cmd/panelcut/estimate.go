package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/panelcut/panelcut/internal/model"
	"github.com/panelcut/panelcut/internal/project"
)

var estimateWastePercent float64

var estimateCmd = &cobra.Command{
	Use:   "estimate <job.json>",
	Short: "estimate sheet purchases per material without planning",
	Long: `Estimate computes an area-based purchase estimate for each material in a
job: total part area with kerf allowance against the usable sheet area. It is
a quick pre-check; the planned sheet count can be higher.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().Float64Var(&estimateWastePercent, "waste", 15.0, "waste factor percentage applied on top of the exact area")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	job, err := project.LoadJob(args[0])
	if err != nil {
		return fmt.Errorf("cannot load job: %w", err)
	}
	if err := job.Config.Validate(); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	catalog, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return fmt.Errorf("cannot load material catalog: %w", err)
	}

	seen := map[string]bool{}
	var ids []string
	for _, p := range job.Parts {
		if !seen[p.MaterialID] {
			seen[p.MaterialID] = true
			ids = append(ids, p.MaterialID)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		price := 0.0
		if mat, ok := catalog.Find(id); ok {
			price = mat.PricePerSheet
		}
		est := model.EstimatePurchase(id, job.Parts, job.Config, estimateWastePercent, price)
		cmd.Printf("%-20s %.2f m2 of parts, min %d sheets, buy %d",
			id, est.TotalPartArea/1e6, est.SheetsNeededMin, est.SheetsWithWaste)
		if est.EstimatedCost > 0 {
			cmd.Printf(" (est. cost %.2f)", est.EstimatedCost)
		}
		cmd.Println()
	}

	return nil
}
