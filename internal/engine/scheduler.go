package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/aeonforge/chronicle/internal/demography"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
)

// areEnemies reports whether a and b are at war with each other
// specifically, not merely each at war with someone. War.Enemies is kept
// sorted (Section 9), so this is a binary search.
func areEnemies(a, b *polity.Polity) bool {
	enemies := a.War.Enemies
	i := sort.Search(len(enemies), func(i int) bool { return enemies[i] >= b.Index })
	return i < len(enemies) && enemies[i] == b.Index
}

// hasSeaRoute reports whether a and b can trade by sea: Section 4.9's
// reduced contract only needs to know that both sides can dock, not the
// actual sea lane, so this holds whenever each polity has sited at least
// one port (Section 4.2's coastal-cell precondition).
func hasSeaRoute(a, b *polity.Polity) bool {
	return len(a.Ports) > 0 && len(b.Ports) > 0
}

// AdvanceYear runs one tick of the fixed S1-S7 sub-phase order (Section
// 4.3): plague lifecycle, per-polity update, tech innovation/discovery/
// adoption, pairwise diffusion, trade, the fiscal tick, then global
// bookkeeping. Every sub-phase completes for every polity before the next
// one starts; only S2's inner fan-out is parallel.
func (w *World) AdvanceYear() {
	w.runPlaguePhase()      // S1
	w.runUpdatePhase()      // S2
	w.runTechPhase()        // S3
	w.runDiffusionPhase()   // S4
	w.runTradePhase()       // S5
	w.runFiscalPhase()      // S6
	w.runBookkeepingPhase() // S7
}

// runPlaguePhase closes an active plague once its duration elapses, then
// opens the next scheduled one (Section 4.7).
func (w *World) runPlaguePhase() {
	if demography.ShouldEnd(w.Plague, w.PlagueCfg, w.Year) {
		demography.End(&w.Plague, w.Year, w.PlagueCfg, w.WorldRNG.Float64())
		slog.Info("plague ended", "year", w.Year, "next", w.Plague.NextYear)
		return
	}
	if !w.Plague.Active && w.Year >= w.Plague.NextYear {
		var affected []int32
		for _, p := range w.Registry.All() {
			if !p.Dead && p.Population > 0 {
				affected = append(affected, p.Index)
			}
		}
		demography.Start(&w.Plague, w.Year, affected, w.RecomputeAffectedEachYear)
		slog.Info("plague started", "year", w.Year, "affected", len(affected))
	}
}

// runUpdatePhase is S2: every live polity's 17-step yearly update, fanned
// out across the worker pool. Each polity gets its own *polity.Context so
// the PlagueAffected flag can vary per polity.
func (w *World) runUpdatePhase() {
	all := w.Registry.All()
	live := make([]*polity.Polity, 0, len(all))
	for _, p := range all {
		if !p.Dead {
			live = append(live, p)
		}
	}

	makeCtx := func(p *polity.Polity) *polity.Context {
		return &polity.Context{
			Grid:            w.Grid,
			Registry:        w.Registry,
			DAG:             w.DAG,
			Effects:         w.Effects,
			Trade:           w.Trade,
			TechCfg:         w.TechCfg,
			WarCfg:          w.WarCfg,
			DemoCfg:         w.DemoCfg,
			EconCfg:         w.EconCfg,
			Cfg:             w.PolityCfg,
			Year:            w.Year,
			Dt:              w.Dt,
			WorldSeed:       w.WorldSeed,
			PlagueAffected:  demography.Affected(w.Plague, p.Index, nil),
			FoundingAllowed: true,
			WarBurstActive:  p.War.IsAtWar,
		}
	}
	runPolityUpdates(live, w.WorkerCount, makeCtx)
}

// runTechPhase is S3: innovation, discovery, and adoption/forgetting run
// per polity against that polity's own knowledge state, then the derived
// effect aggregate is recomputed (Section 4.4).
func (w *World) runTechPhase() {
	for _, p := range w.Registry.All() {
		if p.Dead {
			continue
		}
		ind := buildIndicators(p)
		ledger := p.ResourceLedger()

		total, perDomain := tech.Innovate(ind, w.Dt)
		_ = total
		for d := range perDomain {
			p.Knowledge.Domains[d] += perDomain[d]
		}

		deterministic := func(techID int, salt uint64) float64 {
			return entropy.DeterministicUnit(w.WorldSeed, w.Year, int(p.Index), techID, salt)
		}

		discovered := tech.DiscoveryPass(w.DAG, p.Knowledge, w.TechCfg, ind, w.Dt,
			ledger.Energy, ledger.Ore, ledger.Construction, deterministic)
		if len(discovered) > 0 {
			slog.Debug("tech discovered", "polity", p.Index, "year", w.Year, "count", len(discovered))
		}

		for id := 0; id < w.DAG.Len(); id++ {
			if !p.Knowledge.Known[id] {
				continue
			}
			tech.UpdateAdoptionAndLoss(w.DAG, w.TechCfg, p.Knowledge, tech.ID(id), ind,
				ledger.Energy, ledger.Ore, ledger.Construction, float64(p.Population), w.Dt, deterministic)
		}

		p.Effects = tech.RecomputeEffects(w.Effects, p.Knowledge.Adoption)
	}
}

// runDiffusionPhase is S4: every unordered pair of live, contiguous or
// trading polities exchanges domain-knowledge stock and, directionally,
// known-tech diffusion (Section 4.4).
func (w *World) runDiffusionPhase() {
	all := w.Registry.All()
	for i := 0; i < len(all); i++ {
		a := all[i]
		if a.Dead {
			continue
		}
		for j := i + 1; j < len(all); j++ {
			b := all[j]
			if b.Dead {
				continue
			}
			borderContacts := w.Grid.BorderContactCount(a.Index, b.Index)
			tradeIntensity := w.Trade.Get(a.Index, b.Index)
			if borderContacts == 0 && tradeIntensity <= 0 {
				continue
			}

			traitDistance := traitDistance(a, b)
			tech.DomainKnowledgeDiffusion(w.TechCfg, a.Knowledge, b.Knowledge, borderContacts,
				tradeIntensity, traitDistance, a.Macro.InstitutionCap, b.Macro.InstitutionCap, w.Dt)

			w_ab := clamp01Fiscal(float64(borderContacts)/5 + tradeIntensity)
			ledgerA, ledgerB := a.ResourceLedger(), b.ResourceLedger()

			detA := func(techID int, salt uint64) float64 {
				return entropy.DeterministicUnit(w.WorldSeed, w.Year, int(a.Index), techID, salt)
			}
			detB := func(techID int, salt uint64) float64 {
				return entropy.DeterministicUnit(w.WorldSeed, w.Year, int(b.Index), techID, salt)
			}

			tech.KnownTechDiffusion(w.DAG, w.TechCfg, b.Knowledge, a.Knowledge, w_ab,
				b.Macro.IdeaMarket, b.Macro.Media, a.Macro.IdeaMarket, b.Macro.Connectivity, a.Macro.Openness,
				w.Dt, ledgerA.Energy, ledgerA.Ore, ledgerA.Construction, detA)
			tech.KnownTechDiffusion(w.DAG, w.TechCfg, a.Knowledge, b.Knowledge, w_ab,
				a.Macro.IdeaMarket, a.Macro.Media, b.Macro.IdeaMarket, a.Macro.Connectivity, b.Macro.Openness,
				w.Dt, ledgerB.Energy, ledgerB.Ore, ledgerB.Construction, detB)
		}
	}
}

// traitDistance is a cheap cultural-distance proxy between two polities'
// macro profiles, used to damp domain-knowledge diffusion between
// dissimilar societies (Section 4.4's trait_distance term).
func traitDistance(a, b *polity.Polity) float64 {
	d := math.Abs(a.Macro.Openness-b.Macro.Openness) +
		math.Abs(a.Macro.Specialization-b.Macro.Specialization) +
		math.Abs(a.Macro.Inequality-b.Macro.Inequality)
	return d / 3
}

// runTradePhase is S5: every polity pair's trade-intensity EMA is updated
// from current market access, war status, and resource complementarity
// (Section 4.9).
func (w *World) runTradePhase() {
	all := w.Registry.All()
	for i := 0; i < len(all); i++ {
		a := all[i]
		if a.Dead {
			continue
		}
		for j := i + 1; j < len(all); j++ {
			b := all[j]
			if b.Dead {
				continue
			}
			if w.Grid.BorderContactCount(a.Index, b.Index) == 0 && w.Trade.Get(a.Index, b.Index) <= 0 {
				continue
			}
			ledgerA, ledgerB := a.ResourceLedger(), b.ResourceLedger()
			complementarity := resourceComplementarity(ledgerA, ledgerB)
			w.Trade.Update(a.Index, b.Index, economy.PairInputs{
				AtWar:           areEnemies(a, b),
				HasSeaRoute:     hasSeaRoute(a, b),
				MarketAccessA:   a.Macro.MarketAccess,
				MarketAccessB:   b.Macro.MarketAccess,
				Complementarity: complementarity,
				CreditFriction:  1 - 0.5*(a.FiscalCapacity+b.FiscalCapacity),
				InfoFriction:    1 - 0.5*(a.Macro.Connectivity+b.Macro.Connectivity),
			})
		}
	}
}

// resourceComplementarity scores how differently two polities' resource
// ledgers are shaped: polities rich in different goods trade more.
func resourceComplementarity(a, b polity.Resources) float64 {
	totalA := a.Food + a.Ore + a.Energy + a.Construction
	totalB := b.Food + b.Ore + b.Energy + b.Construction
	if totalA <= 0 || totalB <= 0 {
		return 0.3
	}
	shareA := [4]float64{a.Food / totalA, a.Ore / totalA, a.Energy / totalA, a.Construction / totalA}
	shareB := [4]float64{b.Food / totalB, b.Ore / totalB, b.Energy / totalB, b.Construction / totalB}
	var diff float64
	for k := range shareA {
		diff += math.Abs(shareA[k] - shareB[k])
	}
	return clamp01Fiscal(diff / 2)
}

// runFiscalPhase is S6: the slow EMA-convergence tick driving the macro
// indices Section 4.3's other steps only read.
func (w *World) runFiscalPhase() {
	for _, p := range w.Registry.All() {
		if p.Dead {
			continue
		}
		runFiscalTick(p, w.Dt)
	}
}

// runBookkeepingPhase is S7: advance the year counter, periodically
// recompute the grid's adjacency table from scratch as an invariant check,
// and drain the dirty-cell queue.
func (w *World) runBookkeepingPhase() {
	w.Year++
	if w.Year%50 == 0 {
		w.Grid.RebuildAdjacency()
	}
	w.Grid.DrainDirty()
}
