package polity

import (
	"github.com/aeonforge/chronicle/internal/war"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// Registry is the ordered vector of polities. A polity's identity is its
// stable index; dead polities are retained at their index with population
// 0 and no territory — never compacted (Section 3, "Lifecycle").
type Registry struct {
	polities []*Polity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add appends a new polity, assigning it the next stable index.
func (r *Registry) Add(p *Polity) int32 {
	p.Index = int32(len(r.polities))
	r.polities = append(r.polities, p)
	return p.Index
}

// Get returns the polity at index i, or nil if out of range.
func (r *Registry) Get(i int32) *Polity {
	if i < 0 || int(i) >= len(r.polities) {
		return nil
	}
	return r.polities[i]
}

// Len returns the number of polities ever created (including dead ones).
func (r *Registry) Len() int { return len(r.polities) }

// All returns every polity in index order.
func (r *Registry) All() []*Polity { return r.polities }

// Transfer is the one and only adjacency-safe cell-ownership setter: it
// routes through the grid's mutex-guarded setter and keeps both the owning
// and losing polity's Territory set/vec in sync, per Section 4.2 and the
// design notes' "only write path" rule.
func (r *Registry) Transfer(g *worldmap.Grid, c worldmap.Coord, newOwner int32) {
	g.Lock()
	defer g.Unlock()
	r.transferLocked(g, c, newOwner)
}

// transferLocked assumes the caller already holds the grid lock (used by
// batch commits in the S2 worker pool, matching Section 5's rule that
// reads-then-commit happen inside one critical section).
func (r *Registry) transferLocked(g *worldmap.Grid, c worldmap.Coord, newOwner int32) {
	cell := g.At(c.X, c.Y)
	oldOwner := cell.Owner
	if oldOwner == newOwner {
		return
	}
	if oldOwner >= 0 {
		if old := r.Get(oldOwner); old != nil {
			old.Territory.Remove(c)
		}
	}
	g.SetOwnerLocked(c.X, c.Y, newOwner)
	if newOwner >= 0 {
		if nw := r.Get(newOwner); nw != nil {
			nw.Territory.Add(c)
		}
	}
}

// Kill marks a polity dead: population and territory are zeroed, and every
// other polity's enemy list is scrubbed of references to it (Section 9's
// conservative resolution of the open question on dead-polity handling:
// scrub both sides eagerly on war end and on absorb, applied here for any
// death path).
func (r *Registry) Kill(g *worldmap.Grid, i int32) {
	p := r.Get(i)
	if p == nil || p.Dead {
		return
	}
	for _, c := range append([]worldmap.Coord(nil), p.Territory.Cells()...) {
		r.transferLocked2(g, c, -1)
	}
	p.Population = 0
	p.War = war.State{}
	p.Dead = true

	for _, other := range r.polities {
		if other == p {
			continue
		}
		other.War.Enemies = removeIndex(other.War.Enemies, i)
	}
}

// transferLocked2 takes the lock itself (Kill is not called from within an
// already-locked section in the current call graph).
func (r *Registry) transferLocked2(g *worldmap.Grid, c worldmap.Coord, newOwner int32) {
	g.Lock()
	defer g.Unlock()
	r.transferLocked(g, c, newOwner)
}

func removeIndex(s []int32, v int32) []int32 {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
