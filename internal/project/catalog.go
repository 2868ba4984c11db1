package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/panelcut/panelcut/internal/model"
)

// Material describes one board type in the catalog: its packing policy plus
// purchasing metadata that the planner itself does not need.
type Material struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TextureStrict bool    `json:"texture_strict"`
	SheetWidth    float64 `json:"sheet_width"`  // mm, preferred stock size
	SheetHeight   float64 `json:"sheet_height"` // mm
	PricePerSheet float64 `json:"price_per_sheet"`
}

// Config converts a catalog entry into the planner's material policy.
func (m Material) Config() model.MaterialConfig {
	return model.MaterialConfig{TextureStrict: m.TextureStrict}
}

// Catalog is the user's saved material list.
type Catalog struct {
	Materials []Material `json:"materials"`
}

// Configs returns the catalog as a material ID to policy map for a request.
func (c Catalog) Configs() map[string]model.MaterialConfig {
	configs := make(map[string]model.MaterialConfig, len(c.Materials))
	for _, m := range c.Materials {
		configs[m.ID] = m.Config()
	}
	return configs
}

// Find returns the material with the given ID, or false when absent.
func (c Catalog) Find(id string) (Material, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// DefaultCatalog returns a catalog seeded with common board types.
func DefaultCatalog() Catalog {
	return Catalog{
		Materials: []Material{
			{ID: "mdf-18", Name: "MDF 18mm", TextureStrict: false, SheetWidth: 2800, SheetHeight: 2070},
			{ID: "chipboard-18", Name: "Chipboard 18mm", TextureStrict: false, SheetWidth: 2800, SheetHeight: 2070},
			{ID: "oak-veneer-18", Name: "Oak veneer 18mm", TextureStrict: true, SheetWidth: 2800, SheetHeight: 2070},
			{ID: "plywood-12", Name: "Plywood 12mm", TextureStrict: false, SheetWidth: 2440, SheetHeight: 1220},
			{ID: "hdf-3", Name: "HDF 3mm back panel", TextureStrict: false, SheetWidth: 2800, SheetHeight: 2070},
		},
	}
}

// DefaultCatalogPath returns the default path of the material catalog file.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "materials.json")
}

// SaveCatalog writes the catalog to the given path as indented JSON.
func SaveCatalog(path string, catalog Catalog) error {
	return writeJSON(path, catalog)
}

// LoadCatalog reads the catalog from the given path. When the file does not
// exist, the default catalog is written there and returned.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			catalog := DefaultCatalog()
			if saveErr := SaveCatalog(path, catalog); saveErr != nil {
				return catalog, saveErr
			}
			return catalog, nil
		}
		return Catalog{}, err
	}
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}
