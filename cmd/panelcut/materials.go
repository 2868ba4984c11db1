package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelcut/panelcut/internal/project"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "list the material catalog",
	Args:  cobra.NoArgs,
	RunE:  runMaterials,
}

func runMaterials(cmd *cobra.Command, args []string) error {
	catalog, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return fmt.Errorf("cannot load material catalog: %w", err)
	}

	for _, m := range catalog.Materials {
		texture := "free rotation"
		if m.TextureStrict {
			texture = "texture strict"
		}
		cmd.Printf("%-16s %-24s %.0f x %.0f mm  %s\n", m.ID, m.Name, m.SheetWidth, m.SheetHeight, texture)
	}
	return nil
}
