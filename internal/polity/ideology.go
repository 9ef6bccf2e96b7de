package polity

import "github.com/aeonforge/chronicle/internal/tech"

// IdeologyCadenceYears is how often the ideology transition check runs
// (Section 4.3 step 15).
const IdeologyCadenceYears = 25

// transition is a candidate ideology change with its static requirements
// and a selection weight contribution.
type transition struct {
	from, to   Ideology
	minPop     int64
	minInst    float64
	minControl float64
	gate       tech.ID
	hasGate    bool
}

var transitions = []transition{
	{from: Tribal, to: Chiefdom, minPop: 2_000, minInst: 0.10},
	{from: Chiefdom, to: Kingdom, minPop: 20_000, minInst: 0.25, gate: tech.CivilService, hasGate: true},
	{from: Kingdom, to: Empire, minPop: 200_000, minInst: 0.40, minControl: 0.55},
	{from: Kingdom, to: Republic, minPop: 80_000, minInst: 0.55, gate: tech.Philosophy, hasGate: true},
	{from: Republic, to: Democracy, minPop: 150_000, minInst: 0.65, gate: tech.Education, hasGate: true},
	{from: Empire, to: Federation, minPop: 500_000, minInst: 0.60, gate: tech.Economics, hasGate: true},
	{from: Kingdom, to: Theocracy, minPop: 20_000, minInst: 0.20, gate: tech.Shamanism, hasGate: true},
	{from: Kingdom, to: Dictatorship, minPop: 50_000, minInst: 0.30},
}

// checkIdeologyTransition runs every IdeologyCadenceYears: among the
// transitions whose origin matches the current ideology and whose static
// requirements are met, one is selected, weighted by leader reformism and
// polity type (Section 4.3 step 15).
func checkIdeologyTransition(p *Polity, year int) {
	if year%IdeologyCadenceYears != 0 {
		return
	}

	var candidates []transition
	for _, t := range transitions {
		if t.from != p.Ideology {
			continue
		}
		if p.Population < t.minPop || p.Macro.InstitutionCap < t.minInst || p.AvgControl < t.minControl {
			continue
		}
		if t.hasGate && !p.Knowledge.Unlocked(t.gate, 0.5) {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return
	}

	weights := make([]float64, len(candidates))
	var total float64
	for i, t := range candidates {
		w := 0.5 + p.Leader.Reformism
		if p.Type == Trader && (t.to == Republic || t.to == Federation) {
			w += 0.3
		}
		if p.Type == Warmonger && (t.to == Empire || t.to == Dictatorship) {
			w += 0.3
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return
	}

	draw := p.RNG.Float64() * total
	var cum float64
	chosen := candidates[len(candidates)-1]
	for i, w := range weights {
		cum += w
		if draw < cum {
			chosen = candidates[i]
			break
		}
	}

	p.Ideology = chosen.to
	if isRepresentative(chosen.to) {
		p.NextElectionYear = year + 4 + p.RNG.IntN(5)
	}
}

func isRepresentative(i Ideology) bool {
	return i == Republic || i == Democracy || i == Federation
}
