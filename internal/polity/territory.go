package polity

import (
	"sort"

	"github.com/aeonforge/chronicle/internal/worldmap"
)

// Territory maintains the set-and-vector representation the design notes
// require: a set for O(1) membership and a deterministically ordered
// vector (sorted by (y,x), see Section 9's canonicalization rule) that
// must always agree with the set.
type Territory struct {
	set map[worldmap.Coord]struct{}
	vec []worldmap.Coord
}

// NewTerritory returns an empty territory.
func NewTerritory() *Territory {
	return &Territory{set: make(map[worldmap.Coord]struct{})}
}

// Len returns the number of owned cells.
func (t *Territory) Len() int { return len(t.vec) }

// Contains reports whether c is owned.
func (t *Territory) Contains(c worldmap.Coord) bool {
	_, ok := t.set[c]
	return ok
}

// Add inserts a cell, keeping the vector sorted by (y,x) so the two
// representations stay in lockstep and snapshots are reproducible without
// an extra canonicalization pass.
func (t *Territory) Add(c worldmap.Coord) {
	if t.Contains(c) {
		return
	}
	t.set[c] = struct{}{}
	i := sort.Search(len(t.vec), func(i int) bool { return less(c, t.vec[i]) })
	t.vec = append(t.vec, worldmap.Coord{})
	copy(t.vec[i+1:], t.vec[i:])
	t.vec[i] = c
}

// Remove deletes a cell if present.
func (t *Territory) Remove(c worldmap.Coord) {
	if !t.Contains(c) {
		return
	}
	delete(t.set, c)
	i := sort.Search(len(t.vec), func(i int) bool { return !less(t.vec[i], c) })
	if i < len(t.vec) && t.vec[i] == c {
		t.vec = append(t.vec[:i], t.vec[i+1:]...)
	}
}

// Cells returns the canonical (y,x)-sorted slice. Callers must not mutate it.
func (t *Territory) Cells() []worldmap.Coord { return t.vec }

func less(a, b worldmap.Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
