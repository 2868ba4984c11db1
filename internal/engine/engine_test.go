package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelcut/panelcut/internal/model"
)

func testConfig() model.GlobalConfig {
	return model.GlobalConfig{
		SheetWidth:  2800,
		SheetHeight: 2070,
		TrimMargin:  10,
		Kerf:        4,
	}
}

func TestPlan_SinglePartOnOneSheet(t *testing.T) {
	cfg := testConfig()
	parts := []model.Part{
		{ID: "p1", Name: "Panel", MaterialID: "mdf", Width: 1000, Height: 500},
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.True(t, mr.OK())
	require.Len(t, mr.Sheets, 1)
	require.Len(t, mr.Sheets[0].Parts, 1)

	placed := mr.Sheets[0].Parts[0]
	assert.Equal(t, 10.0, placed.X, "first placement starts at the trim margin")
	assert.Equal(t, 10.0, placed.Y)
	assert.Equal(t, 1000.0, placed.FinishWidth)
	assert.Equal(t, 500.0, placed.FinishHeight)
	assert.Greater(t, mr.Sheets[0].Waste, 90.0)
}

func TestPlan_TwentyTilesFitOnTwoSheets(t *testing.T) {
	// Twenty 700x500 parts tile a 2800x2000 area ignoring kerf; with kerf
	// losses they still must not spread over more than two sheets.
	cfg := testConfig()
	var parts []model.Part
	for i := 0; i < 20; i++ {
		parts = append(parts, model.NewPart("Tile", 700, 500, "chipboard"))
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["chipboard"]
	require.True(t, mr.OK())
	assert.LessOrEqual(t, len(mr.Sheets), 2)

	placed := 0
	for _, s := range mr.Sheets {
		placed += len(s.Parts)
	}
	assert.Equal(t, 20, placed, "every tile must be placed exactly once")
}

func TestPlan_OversizedPartFailsLoudly(t *testing.T) {
	cfg := testConfig()
	parts := []model.Part{
		{ID: "big", Name: "Huge", MaterialID: "mdf", Width: 3000, Height: 3000},
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.False(t, mr.OK())
	assert.Empty(t, mr.Sheets)
	require.Len(t, mr.Oversized, 1)
	assert.Equal(t, "big", mr.Oversized[0].ID)
	assert.Contains(t, mr.Reason, "too large")
}

func TestPlan_FailedMaterialDoesNotAbortOthers(t *testing.T) {
	cfg := testConfig()
	parts := []model.Part{
		{ID: "ok1", Name: "Door", MaterialID: "mdf", Width: 600, Height: 400},
		{ID: "bad", Name: "Huge", MaterialID: "glass", Width: 5000, Height: 5000},
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	require.True(t, result.Materials["mdf"].OK(), "healthy material must still pack")
	require.False(t, result.Materials["glass"].OK())
	assert.Equal(t, []string{"glass"}, result.FailedMaterials())
}

func TestPlan_MixedOversizedFailsWithPartListed(t *testing.T) {
	// One placeable and one unplaceable part of the same material: the group
	// fails, and the report names exactly the unplaceable part.
	cfg := testConfig()
	parts := []model.Part{
		{ID: "small", Name: "Shelf", MaterialID: "mdf", Width: 600, Height: 300},
		{ID: "big", Name: "Wall", MaterialID: "mdf", Width: 4000, Height: 100},
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.False(t, mr.OK())
	require.Len(t, mr.Oversized, 1)
	assert.Equal(t, "big", mr.Oversized[0].ID)
}

func TestPlan_TextureStrictNeverRotates(t *testing.T) {
	cfg := testConfig()
	materials := map[string]model.MaterialConfig{
		"oak": {TextureStrict: true},
	}
	var parts []model.Part
	for i := 0; i < 8; i++ {
		parts = append(parts, model.NewPart("Front", 900, 350, "oak"))
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg, Materials: materials})

	mr := result.Materials["oak"]
	require.True(t, mr.OK())
	for _, sheet := range mr.Sheets {
		for _, p := range sheet.Parts {
			assert.False(t, p.Rotated, "texture-strict material must keep orientation")
			assert.Equal(t, p.FinishWidth, p.Width)
			assert.Equal(t, p.FinishHeight, p.Height)
		}
	}
}

func TestPlan_TextureStrictTallPartFails(t *testing.T) {
	// 800x2100 fits the 2780x2050 usable area only when rotated, which a
	// texture-strict material forbids.
	cfg := testConfig()
	parts := []model.Part{
		{ID: "p1", Name: "Tall", MaterialID: "oak", Width: 800, Height: 2060},
	}

	strict := Pack(model.PackRequest{
		Parts:     parts,
		Config:    cfg,
		Materials: map[string]model.MaterialConfig{"oak": {TextureStrict: true}},
	})
	free := Pack(model.PackRequest{Parts: parts, Config: cfg})

	assert.False(t, strict.Materials["oak"].OK())
	require.True(t, free.Materials["oak"].OK())
	assert.True(t, free.Materials["oak"].Sheets[0].Parts[0].Rotated)
}

func TestPlan_NoOverlapAnywhere(t *testing.T) {
	cfg := testConfig()
	var parts []model.Part
	sizes := [][2]float64{
		{1200, 600}, {800, 450}, {800, 450}, {700, 700}, {350, 250},
		{900, 380}, {600, 600}, {450, 320}, {1500, 520}, {240, 180},
	}
	for _, s := range sizes {
		parts = append(parts, model.NewPart("P", s[0], s[1], "mdf"))
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.True(t, mr.OK())

	for _, sheet := range mr.Sheets {
		for i := range sheet.Parts {
			for j := i + 1; j < len(sheet.Parts); j++ {
				assert.False(t, sheet.Parts[i].Bounds().Intersects(sheet.Parts[j].Bounds()),
					"parts %d and %d overlap", i, j)
			}
			for _, fr := range sheet.FreeRects {
				assert.False(t, sheet.Parts[i].Bounds().Intersects(fr),
					"part %d overlaps a free region", i)
			}
		}
		for i := range sheet.FreeRects {
			for j := i + 1; j < len(sheet.FreeRects); j++ {
				assert.False(t, sheet.FreeRects[i].Intersects(sheet.FreeRects[j]),
					"free regions %d and %d overlap", i, j)
			}
		}
	}
}

func TestPlan_ConservationAcrossSheets(t *testing.T) {
	cfg := testConfig()
	var parts []model.Part
	for i := 0; i < 30; i++ {
		parts = append(parts, model.NewPart("P", 650, 480, "mdf"))
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.True(t, mr.OK())

	seen := map[string]int{}
	for _, sheet := range mr.Sheets {
		for _, p := range sheet.Parts {
			seen[p.PartID]++
		}
	}
	require.Len(t, seen, 30)
	for id, count := range seen {
		assert.Equal(t, 1, count, "part %s placed more than once", id)
	}
}

func TestPlan_WasteBounds(t *testing.T) {
	cfg := testConfig()
	var parts []model.Part
	for i := 0; i < 12; i++ {
		parts = append(parts, model.NewPart("P", 600, 400, "mdf"))
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.True(t, mr.OK())
	for _, sheet := range mr.Sheets {
		require.NotEmpty(t, sheet.Parts)
		assert.GreaterOrEqual(t, sheet.Waste, 0.0)
		assert.Less(t, sheet.Waste, 100.0)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	cfg := testConfig()
	var parts []model.Part
	sizes := [][2]float64{{800, 600}, {800, 600}, {400, 400}, {1200, 350}, {500, 500}, {950, 270}}
	for _, s := range sizes {
		parts = append(parts, model.NewPart("P", s[0], s[1], "mdf"))
	}
	req := model.PackRequest{Parts: parts, Config: cfg}

	first, err := json.Marshal(Pack(req))
	require.NoError(t, err)
	second, err := json.Marshal(Pack(req))
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical output")
}

func TestPlan_EmptyInput(t *testing.T) {
	result := Pack(model.PackRequest{Config: testConfig()})
	assert.Empty(t, result.Materials)
	assert.Equal(t, 0, result.TotalSheets())
}

func TestPlan_DegeneratePartDimensions(t *testing.T) {
	cfg := testConfig()
	parts := []model.Part{
		{ID: "neg", Name: "Broken", MaterialID: "mdf", Width: -5, Height: 100},
	}

	result := Pack(model.PackRequest{Parts: parts, Config: cfg})

	mr := result.Materials["mdf"]
	require.False(t, mr.OK())
	assert.Contains(t, mr.Reason, "positive")
}

func TestPlan_UnknownMaterialDefaultsToFreeRotation(t *testing.T) {
	req := model.PackRequest{Materials: map[string]model.MaterialConfig{"oak": {TextureStrict: true}}}
	assert.True(t, req.MaterialFor("oak").TextureStrict)
	assert.False(t, req.MaterialFor("no-such-material").TextureStrict)
}

func TestPlan_SmallScrapsNotReported(t *testing.T) {
	cfg := testConfig()
	// Leaves a sliver narrower than the minimum usable dimension next to the
	// part after the kerf is taken.
	parts := []model.Part{
		{ID: "p1", Name: "Wide", MaterialID: "mdf", Width: 2770, Height: 2040},
	}

	result := Pack(model.PackRequest{
		Parts:     parts,
		Config:    cfg,
		Materials: map[string]model.MaterialConfig{"mdf": {TextureStrict: true}},
	})

	mr := result.Materials["mdf"]
	require.True(t, mr.OK())
	require.Len(t, mr.Sheets, 1)
	for _, fr := range mr.Sheets[0].FreeRects {
		assert.GreaterOrEqual(t, fr.Width, MinUsableDimension)
		assert.GreaterOrEqual(t, fr.Height, MinUsableDimension)
	}
}

func TestSequence_WatchdogStopsRunawayInput(t *testing.T) {
	// One tiny part per sheet would need 250 sheets; the ceiling declares
	// the ordering non-converged instead of grinding through them.
	cfg := model.GlobalConfig{SheetWidth: 100, SheetHeight: 100, TrimMargin: 0, Kerf: 0}
	var parts []model.Part
	for i := 0; i < 250; i++ {
		parts = append(parts, model.NewPart("Chip", 60, 60, "mdf"))
	}

	outcome := sequenceSheets(parts, cfg, func(string) model.MaterialConfig { return model.MaterialConfig{} })

	assert.False(t, outcome.converged)
	assert.Len(t, outcome.sheets, maxSheetsPerStrategy)
}

func TestBetterOutcome(t *testing.T) {
	oneSheet := sequenceOutcome{sheets: []model.SheetResult{{Waste: 40}}}
	twoSheets := sequenceOutcome{sheets: []model.SheetResult{{Waste: 10}, {Waste: 10}}}
	oneSheetLowWaste := sequenceOutcome{sheets: []model.SheetResult{{Waste: 20}}}

	assert.True(t, betterOutcome(oneSheet, twoSheets), "fewer sheets beats lower waste")
	assert.True(t, betterOutcome(oneSheetLowWaste, oneSheet), "equal sheets falls back to waste")
	assert.False(t, betterOutcome(oneSheet, oneSheetLowWaste))
}
