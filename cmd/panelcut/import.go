package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelcut/panelcut/internal/importer"
	"github.com/panelcut/panelcut/internal/project"
)

var (
	importOutPath  string
	importMaterial string
)

var importCmd = &cobra.Command{
	Use:   "import <parts.csv|.xlsx|.dxf>",
	Short: "convert a part list into a job file",
	Long: `Import reads a part list from CSV, XLSX or DXF and writes a job file with
the application's default sheet geometry and texture policies taken from the
material catalog. DXF shapes are imported by their bounding rectangle.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutPath, "out", "o", "job.json", "path of the job file to write")
	importCmd.Flags().StringVarP(&importMaterial, "material", "m", "", "assign this material ID to parts that have none")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path)
	default:
		return fmt.Errorf("unsupported file type %q, expected .csv, .xlsx or .dxf", filepath.Ext(path))
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
		}
		return fmt.Errorf("import failed with %d errors", len(result.Errors))
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("cannot load app config: %w", err)
	}
	catalog, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return fmt.Errorf("cannot load material catalog: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	job := project.NewPackJob(name)
	job.Config = config.GlobalConfig()
	job.Materials = catalog.Configs()

	for _, p := range result.Parts {
		if p.MaterialID == "" {
			p.MaterialID = importMaterial
		}
		job.Parts = append(job.Parts, p)
	}

	if err := project.SaveJob(importOutPath, job); err != nil {
		return fmt.Errorf("cannot write job file: %w", err)
	}

	config.AddRecentJob(importOutPath)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
		return fmt.Errorf("cannot update app config: %w", err)
	}

	cmd.Printf("imported %d parts into %s\n", len(job.Parts), importOutPath)
	return nil
}
