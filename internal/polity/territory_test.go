package polity

import (
	"testing"

	"github.com/aeonforge/chronicle/internal/worldmap"
)

func TestTerritoryAddKeepsCanonicalOrder(t *testing.T) {
	tr := NewTerritory()
	coords := []worldmap.Coord{{X: 3, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 0}}
	for _, c := range coords {
		tr.Add(c)
	}
	want := []worldmap.Coord{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 1}}
	got := tr.Cells()
	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: want %v, got %v (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestTerritoryAddIsIdempotent(t *testing.T) {
	tr := NewTerritory()
	c := worldmap.Coord{X: 2, Y: 2}
	tr.Add(c)
	tr.Add(c)
	if tr.Len() != 1 {
		t.Fatalf("expected adding the same cell twice to be a no-op, got len %d", tr.Len())
	}
}

func TestTerritoryRemove(t *testing.T) {
	tr := NewTerritory()
	a, b := worldmap.Coord{X: 0, Y: 0}, worldmap.Coord{X: 1, Y: 0}
	tr.Add(a)
	tr.Add(b)
	tr.Remove(a)
	if tr.Contains(a) {
		t.Fatal("expected a to be removed")
	}
	if !tr.Contains(b) {
		t.Fatal("expected b to remain")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected len 1 after removal, got %d", tr.Len())
	}
}

func TestTerritoryRemoveMissingIsNoop(t *testing.T) {
	tr := NewTerritory()
	tr.Add(worldmap.Coord{X: 0, Y: 0})
	tr.Remove(worldmap.Coord{X: 9, Y: 9})
	if tr.Len() != 1 {
		t.Fatalf("expected removing an absent cell to be a no-op, got len %d", tr.Len())
	}
}
