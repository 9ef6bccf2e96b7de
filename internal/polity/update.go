// Package polity implements the per-polity state machine: the yearly
// update pipeline (expansion, war accounting, population, budget,
// stability/legitimacy drift, institutional drift), the polity registry,
// and the territory/city bookkeeping described in design doc Sections 3
// and 4.3.
package polity

import (
	"github.com/aeonforge/chronicle/internal/demography"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/society"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/war"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// Context bundles every shared collaborator a polity's yearly update reads
// or mutates: the grid, the registry (for neighbor lookups and territory
// transfer), the tech DAG and effect table, the trade matrix, and the
// config sections that are not already owned by a leaf package.
type Context struct {
	Grid      *worldmap.Grid
	Registry  *Registry
	DAG       *tech.DAG
	Effects   tech.EffectTable
	Trade     *economy.Matrix
	TechCfg   tech.Config
	WarCfg    war.Config
	DemoCfg   demography.Config
	EconCfg   economy.Config
	Cfg       Config
	Year      int
	Dt        float64
	WorldSeed uint64

	PlagueAffected  bool
	FoundingAllowed bool
	WarBurstActive  bool
}

// Update runs the full 17-step yearly pipeline for a single polity
// (Section 4.3). It is safe to call concurrently for distinct polities
// from a worker pool, provided all territory-mutating calls route through
// ctx.Grid's mutex (which they do, via ctx.Registry.Transfer/transferLocked).
func Update(p *Polity, ctx *Context) {
	if p.Dead {
		return
	}

	// Step 1: reset per-tick macro scratch, renormalize budget, income/expenses.
	p.ResetResourceLedger()
	p.Budget.Normalize()
	income := p.TaxRate * float64(p.Population) / 1000
	spendRate := p.TreasurySpend
	if p.War.IsAtWar {
		spendRate *= 1.25
	}
	expenses := income * spendRate

	// Step 2: regional structure.
	extraction := clamp01(p.TaxRate * 2)
	famine := clamp01(1 - p.Macro.FoodSecurity)
	updateRegions(p, ctx.Cfg, extraction, famine)

	// Step 3: succession check.
	deficitRatio := clamp01((expenses - income) / maxPos(income, 1))
	checkSuccession(p, ctx.Cfg, ctx.Year, deficitRatio)

	// Step 4: agentic society tick (Section 4.8).
	runSocietyTick(p, ctx)

	// Step 5: pressure vector.
	neighbors := ctx.Grid.Neighbors(p.Index)
	reservesShortfall := clamp01(1 - float64(p.Treasury)/maxPos(income*3, 1))
	debtToIncome := clamp01(p.Debt / maxPos(income, 1))
	fiscalGap := clamp01(1 - p.FiscalCapacity)
	frontierFood := clamp01(p.Macro.FoodSecurity - 0.5)
	pressures, bestTarget, _ := computePressures(p, ctx.Registry, neighbors,
		deficitRatio, reservesShortfall, debtToIncome, fiscalGap, frontierFood)

	// Step 6: policy step (may declare war).
	spareGold := p.Treasury > uint64(income*2)
	policyStep(p, ctx.Registry, ctx.WarCfg, ctx.Trade, ctx.Year, pressures, bestTarget, spareGold)

	// Step 7: expansion budget.
	budget := expansionBudget(p, pressures.Opportunity)

	// Step 8: soft overload.
	nTechs := len(p.Knowledge.UnlockedList(0.1))
	budget = softOverload(p, nTechs, budget)

	// Step 9: expansion execution.
	executeExpansion(p, ctx.Registry, ctx.Grid, budget, ctx.WarBurstActive)

	// Step 10: warmonger surge.
	if p.Type == Warmonger {
		warmongerSurge(p, ctx.Registry, ctx.Grid, 0.05)
	}

	// Step 11: resources aggregation.
	aggregateResources(p, ctx)

	// Step 12: population step.
	stepPopulation(p, ctx)

	// Step 13: stability/legitimacy drift.
	stabIn := StabilityInputs{
		PlagueAffected: ctx.PlagueAffected,
		LowGrowth:      p.Population > 0 && float64(p.resources.Food) < float64(p.Population)/2,
		HighGrowth:     !p.War.IsAtWar && p.Stability > 0.6,
		TaxPain:        clamp01(p.TaxRate),
		DebtStress:     debtToIncome,
		ServiceStress:  clamp01(1 - p.Budget.Health - p.Budget.Education),
		Shortfall:      reservesShortfall,
	}
	driftStability(p, ctx.Cfg, stabIn)
	driftLegitimacy(p, ctx.Cfg, stabIn)

	// Step 14: city growth / founding.
	maybeGrowCities(p, ctx.FoundingAllowed)

	// Step 15: ideology transition check.
	checkIdeologyTransition(p, ctx.Year)

	// Step 16: road/port/factory cadence.
	runInfrastructureCadence(p, ctx)

	// Step 17: war accounting.
	militaryShare := p.Budget.Military
	runWarAccounting(p, ctx.Registry, ctx.Grid, ctx.WarCfg, militaryShare)

	p.Treasury = addClampedUint64(p.Treasury, income) - minUint64(p.Treasury, uint64(maxPos(expenses, 0)))
}

func maxPos(x, floor float64) float64 {
	if x < floor {
		return floor
	}
	return x
}

func addClampedUint64(a uint64, b float64) uint64 {
	if b <= 0 {
		return a
	}
	return a + uint64(b)
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// runSocietyTick adapts society.Tick to the polity's macro state (Section
// 4.3 step 4 / Section 4.8).
func runSocietyTick(p *Polity, ctx *Context) {
	in := society.Inputs{
		Capability:      0.45*p.Macro.LogisticsReachEff + 0.35*p.Macro.InstitutionCap + 0.20*p.Macro.Connectivity,
		TechCount:       len(p.Knowledge.UnlockedList(0.1)),
		Urbanization:    p.Macro.Urbanization,
		CommercialDepth: p.Macro.MarketAccess,
		LeaderReformism: p.Leader.Reformism,
		LeaderAmbition:  p.Leader.Ambition,
		Extraction:      clamp01(p.TaxRate * 2),
		Legitimacy:      p.Legitimacy,
		Famine:          p.Macro.FoodSecurity < 0.3,
		AtWar:           p.War.IsAtWar,
		Control:         p.AvgControl,
	}
	society.Tick(&p.Society, in)

	if isRepresentative(p.Ideology) {
		elIn := society.ElectionInputs{
			Economy:    p.Macro.FoodSecurity,
			Governance: p.AdminCapacity,
			Incumbency: 1 - float64(p.Leader.YearsInPower)/50,
			AtWar:      p.War.IsAtWar,
		}
		if !p.Society.Election.Active && ctx.Year >= p.NextElectionYear {
			society.ScheduleElection(&p.Society.Election, ctx.Year, p.RNG.Float64())
		}
		if p.Society.Election.Active && ctx.Year >= p.Society.Election.NextYear {
			_, lost := society.RunElection(&p.Society.Election, ctx.Year, elIn, p.RNG.Float64())
			if lost {
				p.Leader.YearsInPower = 0
				p.Legitimacy = clamp01(p.Legitimacy + 0.03)
			}
		}
	}

	applyCultureDrift(p, ctx)
}

// applyCultureDrift checks the 220-year cooldown and, once the pressure-
// driven drift magnitude crosses the threshold, renames the polity and
// advances its language-drift accumulator (Section 4.8).
func applyCultureDrift(p *Polity, ctx *Context) {
	if !society.CanDrift(p.LastCultureDriftYear, ctx.Year) {
		return
	}
	draw := entropy.DeterministicUnit(ctx.WorldSeed, ctx.Year, int(p.Index), 0, entropy.SaltCultureDrift)
	mag := society.DriftMagnitude(p.Society.Pressures, draw)
	if mag <= 0.5 {
		return
	}
	p.LastCultureDriftYear = ctx.Year
	p.Society.LanguageDrift += mag
	p.Society.LastRenameYear = ctx.Year
	p.Name = p.BaseName + "-" + society.DriftNameSuffix(p.Society.LanguageDrift)
}

// aggregateResources recomputes the per-cell food sum over owned cells and
// adds non-food resources to the fresh ledger (Section 4.3 step 11).
func aggregateResources(p *Polity, ctx *Context) {
	var food, ore, energyRes, construction float64
	for _, c := range p.Territory.Cells() {
		cell := ctx.Grid.At(c.X, c.Y)
		f := cell.Food
		if c == p.StartingCell {
			f = demography.CapitalFoodFloor(ctx.DemoCfg, f)
		}
		food += float64(f)
		switch cell.Resource {
		case worldmap.ResourceOre:
			ore++
		case worldmap.ResourceEnergy:
			energyRes++
		case worldmap.ResourceConstruction:
			construction++
		}
	}
	p.AddResources(Resources{Food: food, Ore: ore, Energy: energyRes, Construction: construction})
}

// stepPopulation runs the logistic population update (Section 4.6),
// folding in the tech and climate K-multipliers plus the fertility-damped
// growth rate.
func stepPopulation(p *Polity, ctx *Context) {
	k := demography.CarryingCapacity(ctx.DemoCfg, p.resources.Food, p.Effects.MaxPopMultiplier, 1.0)
	r := demography.GrowthRate(ctx.DemoCfg, p.Effects.GrowthRateBonus, p.Effects.FertilityDamping)

	if ctx.PlagueAffected {
		deaths := demography.Deaths(demography.DefaultPlagueConfig(), p.Population, p.Effects.PlagueResistance)
		p.Population -= deaths
		if p.Population < 0 {
			p.Population = 0
		}
	}

	prev := p.Population
	p.Population = demography.Step(p.Population, r, k)
	if p.Population <= prev {
		p.StagnationYears++
	} else {
		p.StagnationYears = 0
	}
}
