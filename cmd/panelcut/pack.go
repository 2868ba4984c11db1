package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/panelcut/panelcut/internal/engine"
	"github.com/panelcut/panelcut/internal/export"
	"github.com/panelcut/panelcut/internal/model"
	"github.com/panelcut/panelcut/internal/project"
	"github.com/panelcut/panelcut/internal/worker"
)

var (
	packOutPath  string
	packPDFPath  string
	packLabels   string
	packXLSXPath string
	packDXFDir   string
	packCompare  bool
)

var packCmd = &cobra.Command{
	Use:   "pack <job.json>",
	Short: "plan cut layouts for a saved job",
	Long: `Pack reads a job file (parts, sheet geometry and material policies), plans
the cut layouts per material and writes the plan. The exit status is nonzero
when any material fails to pack; failed materials and their oversized parts
are reported on stderr while the remaining materials still produce a plan.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutPath, "out", "o", "", "write the plan as JSON to this path")
	packCmd.Flags().StringVar(&packPDFPath, "pdf", "", "export layout diagrams as PDF")
	packCmd.Flags().StringVar(&packLabels, "labels", "", "export QR part labels as PDF")
	packCmd.Flags().StringVar(&packXLSXPath, "xlsx", "", "export the cut list as an XLSX workbook")
	packCmd.Flags().StringVar(&packDXFDir, "dxf-dir", "", "export one DXF drawing per sheet into this directory")
	packCmd.Flags().BoolVar(&packCompare, "compare", false, "also print what-if scenarios (half kerf, no trim)")
}

func runPack(cmd *cobra.Command, args []string) error {
	job, err := project.LoadJob(args[0])
	if err != nil {
		return fmt.Errorf("cannot load job: %w", err)
	}
	if err := job.Config.Validate(); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	result, err := worker.RunSync(cmd.Context(), job.Request())
	if err != nil {
		return err
	}

	printPlanSummary(cmd, result)

	if packCompare {
		printComparison(cmd, job)
	}

	if packOutPath != "" {
		if err := project.SavePlan(packOutPath, job, result); err != nil {
			return fmt.Errorf("cannot write plan: %w", err)
		}
		cmd.Printf("plan written to %s\n", packOutPath)
	}
	if packPDFPath != "" {
		if err := export.ExportPDF(packPDFPath, result, job.Config); err != nil {
			return fmt.Errorf("PDF export failed: %w", err)
		}
		cmd.Printf("layout diagrams written to %s\n", packPDFPath)
	}
	if packLabels != "" {
		if err := export.ExportLabels(packLabels, result); err != nil {
			return fmt.Errorf("label export failed: %w", err)
		}
		cmd.Printf("labels written to %s\n", packLabels)
	}
	if packXLSXPath != "" {
		if err := export.ExportXLSX(packXLSXPath, result, job.Config); err != nil {
			return fmt.Errorf("XLSX export failed: %w", err)
		}
		cmd.Printf("cut list written to %s\n", packXLSXPath)
	}
	if packDXFDir != "" {
		if err := os.MkdirAll(packDXFDir, 0755); err != nil {
			return err
		}
		if err := export.ExportDXF(packDXFDir, result, job.Config); err != nil {
			return fmt.Errorf("DXF export failed: %w", err)
		}
		cmd.Printf("DXF drawings written to %s\n", packDXFDir)
	}

	if failed := result.FailedMaterials(); len(failed) > 0 {
		sort.Strings(failed)
		for _, id := range failed {
			mr := result.Materials[id]
			fmt.Fprintf(cmd.ErrOrStderr(), "material %s failed: %s\n", id, mr.Reason)
			for _, p := range mr.Oversized {
				fmt.Fprintf(cmd.ErrOrStderr(), "  oversized part %s %q (%.0f x %.0f mm)\n",
					p.ID, p.Name, p.Width, p.Height)
			}
		}
		return fmt.Errorf("%d of %d materials failed to pack", len(failed), len(result.Materials))
	}

	return nil
}

func printPlanSummary(cmd *cobra.Command, result model.PlanResult) {
	ids := make([]string, 0, len(result.Materials))
	for id := range result.Materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		mr := result.Materials[id]
		if !mr.OK() {
			cmd.Printf("%-20s FAILED\n", id)
			continue
		}
		parts := 0
		for _, s := range mr.Sheets {
			parts += len(s.Parts)
		}
		cmd.Printf("%-20s %d sheets, %d parts, avg waste %.1f%%\n", id, len(mr.Sheets), parts, mr.AverageWaste())

		offcuts := model.DetectOffcuts(id, mr.Sheets)
		if len(offcuts) > 0 {
			best := offcuts[0]
			cmd.Printf("%-20s %d reusable offcuts, largest %.0f x %.0f mm\n",
				"", len(offcuts), best.Width, best.Height)
		}
	}
}

func printComparison(cmd *cobra.Command, job project.PackJob) {
	scenarios := engine.BuildDefaultScenarios(job.Config)
	results := engine.CompareScenarios(scenarios, job.Parts, job.Materials)

	cmd.Println("\nscenario comparison:")
	for _, r := range results {
		cmd.Printf("  %-24s %d sheets, avg waste %.1f%%, %d failed materials\n",
			r.Scenario.Name, r.SheetsUsed, r.AverageWaste, r.FailedMaterials)
	}
}
