package engine

import (
	"testing"

	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// landGrid builds a small all-land grid, since the test only cares about
// scheduler behavior, not terrain generation.
func landGrid(w, h int) *worldmap.Grid {
	g := worldmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SeedCell(x, y, worldmap.Cell{IsLand: true, Food: 5, Resource: worldmap.ResourceFood})
		}
	}
	return g
}

func buildTestWorld(seed uint64) *World {
	w := NewWorld(landGrid(12, 12), seed, 1000, 1100)
	w.WorkerCount = 2
	founders := []FoundingPolity{
		{Name: "Ashenmoor", Cell: worldmap.Coord{X: 1, Y: 1}, Type: polity.Pacifist, Ideology: polity.Tribal, Color: [3]uint8{1, 2, 3}},
		{Name: "Veridian", Cell: worldmap.Coord{X: 8, Y: 2}, Type: polity.Warmonger, Ideology: polity.Kingdom, Color: [3]uint8{4, 5, 6}},
		{Name: "Kharovast", Cell: worldmap.Coord{X: 3, Y: 9}, Type: polity.Trader, Ideology: polity.CityState, Color: [3]uint8{7, 8, 9}},
	}
	for _, f := range founders {
		w.FoundPolity(f, 1000)
	}
	return w
}

func TestFoundPolityClaimsStartingCell(t *testing.T) {
	w := buildTestWorld(1)
	p := w.Registry.All()[0]
	cell := w.Grid.At(1, 1)
	if cell.Owner != p.Index {
		t.Fatalf("expected starting cell owned by %d, got %d", p.Index, cell.Owner)
	}
	if !p.Territory.Contains(worldmap.Coord{X: 1, Y: 1}) {
		t.Fatal("expected the founding polity's territory to contain its starting cell")
	}
}

func TestAdvanceYearIncrementsYear(t *testing.T) {
	w := buildTestWorld(1)
	startYear := w.Year
	w.AdvanceYear()
	if w.Year != startYear+1 {
		t.Fatalf("expected year to advance by 1, got %d -> %d", startYear, w.Year)
	}
}

func TestAdvanceYearIsDeterministic(t *testing.T) {
	const seed = 7
	const years = 15

	w1 := buildTestWorld(seed)
	w2 := buildTestWorld(seed)

	for i := 0; i < years; i++ {
		w1.AdvanceYear()
		w2.AdvanceYear()
	}

	h1, h2 := w1.CanonicalHash(), w2.CanonicalHash()
	if h1 != h2 {
		t.Fatalf("two worlds built from the same seed diverged after %d years: %x != %x", years, h1, h2)
	}
}

func TestAdvanceYearDeterministicAcrossWorkerCounts(t *testing.T) {
	const seed = 11
	const years = 10

	w1 := buildTestWorld(seed)
	w1.WorkerCount = 1
	w2 := buildTestWorld(seed)
	w2.WorkerCount = 4

	for i := 0; i < years; i++ {
		w1.AdvanceYear()
		w2.AdvanceYear()
	}

	if h1, h2 := w1.CanonicalHash(), w2.CanonicalHash(); h1 != h2 {
		t.Fatalf("scheduler result depended on worker pool size: %x (1 worker) != %x (4 workers)", h1, h2)
	}
}

func TestCanonicalHashChangesAsWorldEvolves(t *testing.T) {
	w := buildTestWorld(3)
	h0 := w.CanonicalHash()
	for i := 0; i < 5; i++ {
		w.AdvanceYear()
	}
	h1 := w.CanonicalHash()
	if h0 == h1 {
		t.Fatal("expected the canonical hash to change as the world evolves over several years")
	}
}
