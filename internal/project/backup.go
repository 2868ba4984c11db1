package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// BackupData is the top-level structure for export/import of all user data.
type BackupData struct {
	Version   string    `json:"version"`
	CreatedAt string    `json:"created_at"`
	Config    AppConfig `json:"config"`
	Catalog   Catalog   `json:"catalog"`
}

// ExportAllData writes the config and material catalog to a single JSON file.
func ExportAllData(exportPath string, config AppConfig, catalog Catalog) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   catalog,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. The caller decides whether to apply the
// contained config and catalog.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	return backup, nil
}
