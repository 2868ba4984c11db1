package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Part represents one rectangular piece that has to be cut from stock.
// Width and height are the finished dimensions in mm.
type Part struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MaterialID string  `json:"material_id"`
	Width      float64 `json:"width"`  // mm
	Height     float64 `json:"height"` // mm
}

// NewPart creates a Part with a generated short ID.
func NewPart(name string, w, h float64, materialID string) Part {
	return Part{
		ID:         uuid.New().String()[:8],
		Name:       name,
		MaterialID: materialID,
		Width:      w,
		Height:     h,
	}
}

// Area returns the part area in square mm.
func (p Part) Area() float64 {
	return p.Width * p.Height
}

// Validate checks that the part has usable dimensions.
func (p Part) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("part %q: dimensions must be positive, got %.2f x %.2f", p.Name, p.Width, p.Height)
	}
	return nil
}

// MaterialConfig holds the per-material packing policy.
type MaterialConfig struct {
	// TextureStrict forbids 90 degree rotation so the grain or pattern
	// direction is preserved on every part of this material.
	TextureStrict bool `json:"texture_strict"`
}

// GlobalConfig holds the stock sheet geometry shared by all materials.
type GlobalConfig struct {
	SheetWidth  float64 `json:"sheet_width"`  // mm
	SheetHeight float64 `json:"sheet_height"` // mm
	TrimMargin  float64 `json:"trim_margin"`  // unusable border on all four edges, mm
	Kerf        float64 `json:"kerf"`         // blade width removed at every cut, mm
}

// DefaultGlobalConfig returns the standard 2800x2070 board with 10mm trim
// and a 4mm saw kerf.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		SheetWidth:  2800.0,
		SheetHeight: 2070.0,
		TrimMargin:  10.0,
		Kerf:        4.0,
	}
}

// UsableWidth returns the sheet width after edge trim.
func (c GlobalConfig) UsableWidth() float64 {
	return c.SheetWidth - 2*c.TrimMargin
}

// UsableHeight returns the sheet height after edge trim.
func (c GlobalConfig) UsableHeight() float64 {
	return c.SheetHeight - 2*c.TrimMargin
}

// UsableArea returns the placeable area of one sheet in square mm.
func (c GlobalConfig) UsableArea() float64 {
	return c.UsableWidth() * c.UsableHeight()
}

// Validate checks the config for degenerate geometry.
func (c GlobalConfig) Validate() error {
	if c.SheetWidth <= 0 || c.SheetHeight <= 0 {
		return fmt.Errorf("sheet dimensions must be positive, got %.2f x %.2f", c.SheetWidth, c.SheetHeight)
	}
	if c.TrimMargin < 0 {
		return fmt.Errorf("trim margin must not be negative, got %.2f", c.TrimMargin)
	}
	if c.Kerf < 0 {
		return fmt.Errorf("kerf must not be negative, got %.2f", c.Kerf)
	}
	if c.UsableWidth() <= 0 || c.UsableHeight() <= 0 {
		return fmt.Errorf("trim margin %.2f leaves no usable area on a %.2f x %.2f sheet",
			c.TrimMargin, c.SheetWidth, c.SheetHeight)
	}
	return nil
}

// FreeRect is an unused axis-aligned region on one sheet, in sheet-local
// coordinates with the origin at the top-left corner.
type FreeRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the region area in square mm.
func (r FreeRect) Area() float64 {
	return r.Width * r.Height
}

// Intersects reports whether two regions overlap. Touching edges do not count.
func (r FreeRect) Intersects(o FreeRect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// PlacedPart is a part assigned to a position on a sheet. Width and Height are
// the dimensions as placed; when Rotated is true they are the finished
// dimensions swapped.
type PlacedPart struct {
	PartID       string  `json:"part_id"`
	Name         string  `json:"name"`
	MaterialID   string  `json:"material_id"`
	X            float64 `json:"x"` // mm from the sheet's left edge
	Y            float64 `json:"y"` // mm from the sheet's top edge
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Rotated      bool    `json:"rotated"`
	FinishWidth  float64 `json:"finish_width"`
	FinishHeight float64 `json:"finish_height"`
}

// Bounds returns the placement rectangle for geometric checks.
func (p PlacedPart) Bounds() FreeRect {
	return FreeRect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// SheetResult is one physical sheet of the cutting plan.
type SheetResult struct {
	Parts     []PlacedPart `json:"parts"`
	FreeRects []FreeRect   `json:"free_rects"`
	Waste     float64      `json:"waste"` // percent of usable area not covered by parts
}

// UsedArea returns the total area covered by placed parts.
func (sr SheetResult) UsedArea() float64 {
	var total float64
	for _, p := range sr.Parts {
		total += p.Width * p.Height
	}
	return total
}

// MaterialStatus tags the outcome of packing one material group.
type MaterialStatus string

const (
	StatusOK     MaterialStatus = "ok"
	StatusFailed MaterialStatus = "failed"
)

// MaterialResult is the outcome for a single material group. A failed group
// carries a reason and the parts that could never be placed, so an unplaceable
// part is distinguishable from a material that simply had no parts.
type MaterialResult struct {
	Status    MaterialStatus `json:"status"`
	Sheets    []SheetResult  `json:"sheets"`
	Oversized []Part         `json:"oversized_parts,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

// OK reports whether the group packed successfully.
func (mr MaterialResult) OK() bool {
	return mr.Status == StatusOK
}

// AverageWaste returns the mean waste percentage across the group's sheets,
// or 0 for an empty group.
func (mr MaterialResult) AverageWaste() float64 {
	if len(mr.Sheets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range mr.Sheets {
		sum += s.Waste
	}
	return sum / float64(len(mr.Sheets))
}

// PackRequest is the full input of one planning run.
type PackRequest struct {
	Parts     []Part                    `json:"parts"`
	Config    GlobalConfig              `json:"config"`
	Materials map[string]MaterialConfig `json:"materials"`
}

// MaterialFor returns the config for a material, defaulting to a
// non-texture-strict material when the ID is unknown.
func (r PackRequest) MaterialFor(id string) MaterialConfig {
	if cfg, ok := r.Materials[id]; ok {
		return cfg
	}
	return MaterialConfig{}
}

// PlanResult maps each material ID to its packing outcome.
type PlanResult struct {
	Materials map[string]MaterialResult `json:"materials"`
}

// TotalSheets returns the number of sheets across all material groups.
func (pr PlanResult) TotalSheets() int {
	total := 0
	for _, mr := range pr.Materials {
		total += len(mr.Sheets)
	}
	return total
}

// FailedMaterials returns the IDs of groups that did not pack.
func (pr PlanResult) FailedMaterials() []string {
	var failed []string
	for id, mr := range pr.Materials {
		if !mr.OK() {
			failed = append(failed, id)
		}
	}
	return failed
}
