package engine

import (
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// FoundingPolity describes one starting polity's placement and archetype,
// the caller-supplied input to FoundPolity (Section 6, "starting polities").
type FoundingPolity struct {
	Name     string
	Cell     worldmap.Coord
	Type     polity.Type
	Ideology polity.Ideology
	Color    [3]uint8
}

// defaultFoundingMacro seeds a founding-year polity's macro vector with
// moderate, non-degenerate values: an all-zero Macro would starve the
// first several years of tech innovation and fiscal convergence, since
// nearly every formula in Sections 4.3/4.4 multiplies several Macro terms
// together.
func defaultFoundingMacro() polity.Macro {
	return polity.Macro{
		FoodSecurity:      0.6,
		MarketAccess:      0.2,
		InstitutionCap:    0.3,
		Connectivity:      0.15,
		Inequality:        0.3,
		KnowledgeStock:    0.05,
		Openness:          0.3,
		Urbanization:      0.1,
		HumanCapital:      0.2,
		Specialization:    0.15,
		IdeaMarket:        0.2,
		Credibility:       0.4,
		Media:             0.1,
		Fragmentation:     0.3,
		InfraFactor:       0.1,
		Access:            0.2,
		ResourceGate:      0.3,
		SurplusFactor:     0.1,
		RoadMobility:      0.1,
		TerrainDefense:    0.2,
		MilitaryStrength:  0.2,
		LogisticsReachEff: 0.15,
	}
}

// FoundPolity creates a founding-year polity, claims its starting cell
// through the registry's adjacency-safe transfer path, and adds it to the
// world (Section 6). It is a thin wrapper the CLI uses once per configured
// starting polity before the first AdvanceYear call.
func (w *World) FoundPolity(f FoundingPolity, year int) *polity.Polity {
	p := &polity.Polity{
		Name:          f.Name,
		BaseName:      f.Name,
		Color:         f.Color,
		FoundingYear:  year,
		Type:          f.Type,
		Ideology:      f.Ideology,
		Population:    2000,
		StartingCell:  f.Cell,
		Territory:     polity.NewTerritory(),
		Legitimacy:    0.6,
		Stability:     0.6,
		AvgControl:    0.6,
		TaxRate:       0.15,
		TreasurySpend: 0.8,
		Treasury:      1000,
		Budget: polity.BudgetShares{
			Military: 1.0 / 6, Admin: 1.0 / 6, Infra: 1.0 / 6,
			Health: 1.0 / 6, Education: 1.0 / 6, RnD: 1.0 / 6,
		},
		Leader: polity.Leader{
			Age: 35, Competence: 0.5, Coercion: 0.4, Diplomacy: 0.5,
			Reformism: 0.4, EliteAffinity: 0.5, CommonerAffinity: 0.5, Ambition: 0.4,
		},
		Macro:              defaultFoundingMacro(),
		NextSuccessionYear: year + 20,
		NextPolicyYear:     year + 1,
		NextElectionYear:   year + 4,
		Cities:             []polity.City{{Location: f.Cell, Population: 2000, IsMajor: false}},
	}
	p.Effects = tech.RecomputeEffects(w.Effects, nil)

	idx := w.SpawnPolity(p)
	w.Registry.Transfer(w.Grid, f.Cell, idx)
	return p
}
