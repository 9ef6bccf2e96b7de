// Package tech implements the technology/institution DAG and the
// per-polity knowledge state: discovery, diffusion, and adoption/loss.
// See design doc Section 4.4.
package tech

// NumDomains is the fixed length of a polity's knowledge-domain vector.
// Domain indices referenced elsewhere in the spec: 0=subsistence,
// 5=health, 6=education, 7=military.
const NumDomains = 10

// ID identifies a technology node. IDs are stable and dense starting at 0
// so they can index directly into per-polity arrays.
type ID int

// Gates describes the resource-ledger feasibility checks a technology
// requires before it can be discovered or adopted.
type Gates struct {
	RequiresEnergy       bool
	RequiresOre          bool
	RequiresConstruction bool
}

// Tech is a single technology/institution node.
type Tech struct {
	ID         ID
	Name       string
	Domain     int // 0..NumDomains-1
	Prereqs    []ID
	Threshold  float64 // domain-knowledge threshold for discovery hazard
	Difficulty float64 // 0..1, higher is harder
	Gates      Gates
}

// Induced classifies a tech's economic character, used by the discovery
// hazard's induced_bias term. Looked up per tech ID by inducedOf's fixed
// classification (static_data.go) each time it is needed, matching the
// spec's "inferred from the tech name+domain" rule.
type Induced uint8

const (
	InducedNone Induced = iota
	InducedLaborSaving
	InducedEnergyUsing
	InducedMaterials
	InducedInformation
	InducedInstitutions
)

// DAG is the static technology table, keyed by ID for O(1) lookup.
type DAG struct {
	Techs  []Tech // indexed by ID
	byName map[string]ID
}

// NewDAG builds a DAG from an ordered tech list. Techs must be listed so
// that every prerequisite ID is less than its dependent's ID (a simple
// topological precondition the static table satisfies by construction).
func NewDAG(techs []Tech) *DAG {
	d := &DAG{Techs: techs, byName: make(map[string]ID, len(techs))}
	for _, t := range techs {
		d.byName[t.Name] = t.ID
	}
	return d
}

// Len returns the number of techs in the DAG.
func (d *DAG) Len() int { return len(d.Techs) }

// ByName resolves a technology by its name, used by tests and by the
// static K/r-multiplier tables that reference named techs.
func (d *DAG) ByName(name string) (ID, bool) {
	id, ok := d.byName[name]
	return id, ok
}

// PrereqsSatisfied reports whether every prerequisite of tech id is marked
// known in the given dense known-set.
func (d *DAG) PrereqsSatisfied(id ID, known []bool) bool {
	for _, p := range d.Techs[id].Prereqs {
		if int(p) >= len(known) || !known[p] {
			return false
		}
	}
	return true
}

// HasPrereqPath reports whether id has at least one path through the DAG
// where every prerequisite transitively required is known — the invariant
// spec.md Section 8 requires for any tech marked known.
func (d *DAG) HasPrereqPath(id ID, known []bool) bool {
	if int(id) >= len(known) || !known[id] {
		return false
	}
	var visit func(ID) bool
	seen := make(map[ID]bool)
	visit = func(cur ID) bool {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		if !known[cur] {
			return false
		}
		for _, p := range d.Techs[cur].Prereqs {
			if !visit(p) {
				return false
			}
		}
		return true
	}
	return visit(id)
}
