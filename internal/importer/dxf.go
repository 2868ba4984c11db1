package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/panelcut/panelcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF imports parts from a DXF file. Each LWPOLYLINE or CIRCLE becomes
// one Part sized to the shape's bounding rectangle: the planner packs
// axis-aligned rectangles, so non-rectangular panels are carried by their
// bounding box. Parts are imported with an empty material ID; the caller
// assigns materials afterwards.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	partNum := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			minX, minY := math.Inf(1), math.Inf(1)
			maxX, maxY := math.Inf(-1), math.Inf(-1)
			for _, v := range e.Vertices {
				minX = math.Min(minX, v[0])
				minY = math.Min(minY, v[1])
				maxX = math.Max(maxX, v[0])
				maxY = math.Max(maxY, v[1])
			}
			partNum++
			addBoundingBoxPart(&result, baseName, partNum, maxX-minX, maxY-minY)

		case *entity.Circle:
			partNum++
			d := 2 * e.Radius
			addBoundingBoxPart(&result, baseName, partNum, d, d)

		default:
			// Unsupported entity types are silently skipped.
		}
	}

	if len(result.Parts) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
	}

	return result
}

// addBoundingBoxPart appends one part for a detected shape, skipping
// degenerate geometry.
func addBoundingBoxPart(result *ImportResult, baseName string, partNum int, width, height float64) {
	if width < 0.01 || height < 0.01 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", width, height))
		return
	}
	name := fmt.Sprintf("%s %d", baseName, partNum)
	result.Parts = append(result.Parts, model.NewPart(name, width, height, ""))
}
