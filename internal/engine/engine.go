// Package engine implements the 2D guillotine cutting-stock planner: a
// best-short-side-fit rectangle packer driven by several part-ordering
// strategies, run independently per material.
package engine

import (
	"sort"

	"github.com/panelcut/panelcut/internal/model"
)

// Planner runs the packing algorithm for a fixed sheet geometry and material
// catalog. It is safe to reuse for multiple Plan calls; each call works on its
// own copies of the input.
type Planner struct {
	Config    model.GlobalConfig
	Materials map[string]model.MaterialConfig
}

func New(cfg model.GlobalConfig, materials map[string]model.MaterialConfig) *Planner {
	return &Planner{Config: cfg, Materials: materials}
}

// materialFor looks up a material's packing policy, defaulting to a
// non-texture-strict material for unknown IDs.
func (p *Planner) materialFor(id string) model.MaterialConfig {
	if cfg, ok := p.Materials[id]; ok {
		return cfg
	}
	return model.MaterialConfig{}
}

// Plan partitions the parts by material and packs each group independently.
// A group that fails (oversized parts, non-convergence) is reported as failed
// in the result without affecting the other groups.
func (p *Planner) Plan(parts []model.Part) model.PlanResult {
	result := model.PlanResult{Materials: make(map[string]model.MaterialResult)}

	for _, id := range materialIDs(parts) {
		var group []model.Part
		for _, part := range parts {
			if part.MaterialID == id {
				group = append(group, part)
			}
		}
		result.Materials[id] = packMaterial(group, p.Config, p.materialFor)
	}

	return result
}

// Pack is the request/response entry point used by the worker and the CLI.
func Pack(req model.PackRequest) model.PlanResult {
	return New(req.Config, req.Materials).Plan(req.Parts)
}

// materialIDs returns the unique material IDs in sorted order so group
// iteration is deterministic.
func materialIDs(parts []model.Part) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range parts {
		if !seen[p.MaterialID] {
			seen[p.MaterialID] = true
			ids = append(ids, p.MaterialID)
		}
	}
	sort.Strings(ids)
	return ids
}
