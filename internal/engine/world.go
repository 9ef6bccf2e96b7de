// Package engine owns the fixed-order yearly scheduler that advances a
// World from its configured start year to its end year. See design doc
// Section 4.1 (overview) and Section 4.3 (the sub-phase schedule).
package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aeonforge/chronicle/internal/demography"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/society"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/war"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// World is the full simulation state for one run: the grid, the polity
// registry, the shared tech DAG and its derived effect table, the trade
// matrix, the plague lifecycle, and every leaf package's compiled config.
type World struct {
	Grid     *worldmap.Grid
	Registry *polity.Registry
	DAG      *tech.DAG
	Effects  tech.EffectTable
	Trade    *economy.Matrix

	TechCfg   tech.Config
	WarCfg    war.Config
	DemoCfg   demography.Config
	PlagueCfg demography.PlagueConfig
	EconCfg   economy.Config
	PolityCfg polity.Config

	Plague demography.PlagueState

	WorldSeed uint64
	WorldRNG  *rand.Rand
	Year      int
	EndYear   int
	Dt        float64

	// RecomputeAffectedEachYear toggles whether a plague's affected-polity
	// membership is fixed at onset (false, the default) or recomputed every
	// year it is active (true), per the design notes' documented choice.
	RecomputeAffectedEachYear bool

	// WorkerCount bounds the S2 per-polity update worker pool. 0 means
	// GOMAXPROCS-sized.
	WorkerCount int
}

// NewWorld constructs an empty World ready for starting polities to be
// added via w.Registry.Add before the first AdvanceYear call.
func NewWorld(grid *worldmap.Grid, seed uint64, startYear, endYear int) *World {
	dag := tech.DefaultDAG()
	return &World{
		Grid:      grid,
		Registry:  polity.NewRegistry(),
		DAG:       dag,
		Effects:   tech.DefaultEffectTable(),
		Trade:     economy.NewMatrix(economy.DefaultConfig()),
		TechCfg:   tech.DefaultConfig(),
		WarCfg:    war.DefaultConfig(),
		DemoCfg:   demography.DefaultConfig(),
		PlagueCfg: demography.DefaultPlagueConfig(),
		EconCfg:   economy.DefaultConfig(),
		PolityCfg: polity.DefaultConfig(),
		Plague:    demography.NewPlagueState(startYear + 600),
		WorldSeed: seed,
		WorldRNG:  entropy.NewWorldRNG(seed),
		Year:      startYear,
		EndYear:   endYear,
		Dt:        1.0,
	}
}

// SpawnPolity creates a new polity at its founding cell and adds it to the
// registry, seeding its per-polity RNG from the world seed per Section 5.
func (w *World) SpawnPolity(p *polity.Polity) int32 {
	if p.Territory == nil {
		p.Territory = polity.NewTerritory()
	}
	if p.Knowledge == nil {
		p.Knowledge = tech.NewState(w.DAG.Len())
	}
	if (p.Society == society.State{}) {
		p.Society = society.NewState()
	}
	idx := w.Registry.Add(p)
	p.RNG = entropy.SeedPolityRNG(w.WorldSeed, int(idx))
	slog.Info("polity spawned", "index", idx, "name", p.Name, "year", w.Year)
	return idx
}
