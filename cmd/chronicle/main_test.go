package main

import (
	"testing"

	"github.com/aeonforge/chronicle/internal/engine"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

func TestStartingColorIsDistinctAndStable(t *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 12; i++ {
		c := startingColor(i)
		if seen[c] {
			t.Errorf("color %d repeats an earlier palette entry: %v", i, c)
		}
		seen[c] = true
		if startingColor(i) != c {
			t.Errorf("startingColor(%d) is not stable across calls", i)
		}
	}
}

func TestStartingColorWrapsPastPaletteLength(t *testing.T) {
	if startingColor(0) != startingColor(12) {
		t.Fatalf("expected the palette to wrap after 12 entries")
	}
}

func allLandGrid(w, h int) *worldmap.Grid {
	g := worldmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SeedCell(x, y, worldmap.Cell{IsLand: true, Food: 4})
		}
	}
	return g
}

func TestFoundStartingPolitiesPlacesOnLand(t *testing.T) {
	w := engine.NewWorld(allLandGrid(10, 10), 5, 1000, 1100)
	w.PolityCfg.RegionCountMax = 4
	foundStartingPolities(w, 1000)

	all := w.Registry.All()
	if len(all) == 0 {
		t.Fatal("expected at least one founded polity")
	}
	if len(all) > 4 {
		t.Fatalf("expected at most RegionCountMax polities, got %d", len(all))
	}
	for _, p := range all {
		cell := w.Grid.At(p.StartingCell.X, p.StartingCell.Y)
		if !cell.IsLand {
			t.Errorf("polity %d founded on non-land cell %v", p.Index, p.StartingCell)
		}
		if cell.Owner != p.Index {
			t.Errorf("polity %d's starting cell is not owned by it: owner=%d", p.Index, cell.Owner)
		}
	}
}
