package worldmap

import "testing"

func landGrid(w, h int) *Grid {
	g := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SeedCell(x, y, Cell{IsLand: true})
		}
	}
	return g
}

func TestPaintCellsAssignsLandWithinRadius(t *testing.T) {
	g := landGrid(5, 5)
	g.PaintCells(1, Coord{X: 2, Y: 2}, 1, false, false)
	if got := g.At(2, 2).Owner; got != 1 {
		t.Fatalf("expected center cell owned by 1, got %d", got)
	}
	if got := g.At(1, 2).Owner; got != 1 {
		t.Fatalf("expected orthogonal neighbor within radius owned by 1, got %d", got)
	}
	if got := g.At(0, 0).Owner; got != -1 {
		t.Fatalf("expected corner outside radius to remain unclaimed, got %d", got)
	}
}

func TestPaintCellsSkipsWater(t *testing.T) {
	g := landGrid(3, 3)
	g.SeedCell(1, 1, Cell{IsLand: false})
	g.PaintCells(1, Coord{X: 1, Y: 1}, 1, false, false)
	if got := g.At(1, 1).Owner; got != -1 {
		t.Fatalf("expected water cell to stay unclaimed even at the paint center, got %d", got)
	}
}

func TestPaintCellsWithoutOverwriteSkipsOwnedCells(t *testing.T) {
	g := landGrid(3, 3)
	g.SetOwner(0, 0, 7)
	g.PaintCells(1, Coord{X: 0, Y: 0}, 1, false, false)
	if got := g.At(0, 0).Owner; got != 7 {
		t.Fatalf("expected already-owned cell to be preserved without overwrite, got %d", got)
	}
}

func TestPaintCellsWithOverwriteReassignsAndReportsAffected(t *testing.T) {
	g := landGrid(3, 3)
	g.SetOwner(0, 0, 7)
	affected := g.PaintCells(1, Coord{X: 0, Y: 0}, 1, false, true)
	if got := g.At(0, 0).Owner; got != 1 {
		t.Fatalf("expected overwrite to reassign the cell to the new owner, got %d", got)
	}
	if _, ok := affected[7]; !ok {
		t.Fatalf("expected the dispossessed owner 7 to be reported as affected, got %v", affected)
	}
	if _, ok := affected[1]; ok {
		t.Fatalf("expected the painting polity itself not to appear in its own affected set, got %v", affected)
	}
}

func TestPaintCellsEraseClearsOwnershipAndReportsAffected(t *testing.T) {
	g := landGrid(3, 3)
	g.SetOwner(1, 1, 4)
	affected := g.PaintCells(-1, Coord{X: 1, Y: 1}, 0, true, false)
	if got := g.At(1, 1).Owner; got != -1 {
		t.Fatalf("expected erase to clear ownership, got %d", got)
	}
	if _, ok := affected[4]; !ok {
		t.Fatalf("expected the erased owner to be reported as affected, got %v", affected)
	}
}

func TestPaintThenEraseRoundTripsToUnclaimed(t *testing.T) {
	g := landGrid(5, 5)
	center := Coord{X: 2, Y: 2}
	g.PaintCells(3, center, 2, false, true)

	var painted []Coord
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if g.At(x, y).Owner == 3 {
				painted = append(painted, Coord{X: x, Y: y})
			}
		}
	}
	if len(painted) == 0 {
		t.Fatal("expected paint to claim at least one cell")
	}

	g.PaintCells(-1, center, 2, true, true)
	for _, c := range painted {
		if got := g.At(c.X, c.Y).Owner; got != -1 {
			t.Fatalf("expected cell %v to round-trip back to unclaimed after erase, got %d", c, got)
		}
	}
	for pair, count := range g.contacts {
		if count != 0 {
			t.Fatalf("expected no residual border contacts after a full paint/erase round trip, pair=%v count=%d", pair, count)
		}
	}
}
