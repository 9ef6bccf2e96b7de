package tech

// State is a polity's dense per-tech knowledge state plus its per-domain
// knowledge-stock vector. See design doc Section 3, "Knowledge state".
type State struct {
	Domains          [NumDomains]float64
	Known            []bool
	Adoption         []float32
	LowAdoptionYears []uint16
}

// NewState allocates a knowledge state sized for a DAG with n techs.
func NewState(n int) *State {
	return &State{
		Known:            make([]bool, n),
		Adoption:         make([]float32, n),
		LowAdoptionYears: make([]uint16, n),
	}
}

// Unlocked reports whether tech id counts as unlocked: known and adopted at
// or above the configured threshold.
func (s *State) Unlocked(id ID, adoptionThreshold float32) bool {
	return int(id) < len(s.Known) && s.Known[id] && s.Adoption[id] >= adoptionThreshold
}

// UnlockedList returns every tech ID currently unlocked, in ID order.
func (s *State) UnlockedList(adoptionThreshold float32) []ID {
	var out []ID
	for i := range s.Known {
		if s.Unlocked(ID(i), adoptionThreshold) {
			out = append(out, ID(i))
		}
	}
	return out
}

// SetUnlocked is the editor override: wipes dense state, optionally
// transitively closes prerequisites, marks the given techs (and, if
// requested, their prereqs) known with adoption 1, and leaves effect
// recomputation to the caller.
func (s *State) SetUnlocked(dag *DAG, ids []ID, includePrereqs bool) {
	for i := range s.Known {
		s.Known[i] = false
		s.Adoption[i] = 0
		s.LowAdoptionYears[i] = 0
	}

	toMark := make(map[ID]struct{}, len(ids))
	var add func(ID)
	add = func(id ID) {
		if _, ok := toMark[id]; ok {
			return
		}
		toMark[id] = struct{}{}
		if includePrereqs {
			for _, p := range dag.Techs[id].Prereqs {
				add(p)
			}
		}
	}
	for _, id := range ids {
		add(id)
	}
	for id := range toMark {
		s.Known[id] = true
		s.Adoption[id] = 1
	}
}

// TopKAdopted returns the up-to-k known tech IDs with the highest adoption,
// used by known-tech diffusion's "top-K most-adopted known techs of the
// source" candidate selection.
func (s *State) TopKAdopted(k int) []ID {
	type pair struct {
		id ID
		a  float32
	}
	var pairs []pair
	for i, known := range s.Known {
		if known {
			pairs = append(pairs, pair{ID(i), s.Adoption[i]})
		}
	}
	// Simple insertion sort: tech counts per polity stay small (tens, not
	// thousands), so O(n^2) is both fine and keeps ties in ID order
	// (stable), which matters for determinism.
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && pairs[j-1].a < pairs[j].a {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
			j--
		}
	}
	if k > len(pairs) {
		k = len(pairs)
	}
	out := make([]ID, k)
	for i := 0; i < k; i++ {
		out[i] = pairs[i].id
	}
	return out
}
