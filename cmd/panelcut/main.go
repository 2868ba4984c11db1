// panelcut — guillotine cutting-stock planner
//
// Plans how to cut rectangular parts from stock sheets, one material at a
// time, and exports the resulting layouts.
//
// Build:
//
//	go build -o panelcut ./cmd/panelcut
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "panelcut",
	Short: "panelcut plans guillotine cut layouts for sheet materials",
	Long: `panelcut takes a list of rectangular parts grouped by material and plans
how to cut them from stock sheets, minimizing the number of sheets and the
wasted area. Plans can be exported as PDF diagrams, QR part labels, XLSX
cut lists and DXF drawings.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(materialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
