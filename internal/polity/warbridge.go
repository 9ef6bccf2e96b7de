package polity

import (
	"github.com/aeonforge/chronicle/internal/war"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// runWarAccounting implements Section 4.3 step 17: supply/demand scoring,
// exhaustion update, attrition, duration decrement, possible ending, and
// annihilation capture, bridging into the war package's pure functions.
func runWarAccounting(p *Polity, r *Registry, g *worldmap.Grid, cfg war.Config, militaryShare float64) {
	if !p.War.IsAtWar {
		return
	}

	in := war.TickInputs{
		Logistics:      p.Macro.LogisticsReachEff,
		MarketAccess:   p.Macro.MarketAccess,
		Control:        p.AvgControl,
		Energy:         p.resources.Energy,
		FoodStock:      p.Macro.FoodSecurity,
		RoadMobility:   p.Macro.RoadMobility,
		TerrainDefense: p.Macro.TerrainDefense,
		MilitaryShare:  militaryShare,
		Stability:      p.Stability,
		Goal:           p.War.ActiveWarGoal,
	}
	result := war.Tick(cfg, in)

	p.Macro.MilitaryStrength *= 1 - result.Attrition
	p.Stability = clamp01(p.Stability + result.StabilityDelta)
	p.Legitimacy = clamp01(p.Legitimacy + result.LegitimacyDelta)
	p.Macro.FoodSecurity = clamp01(p.Macro.FoodSecurity - result.FoodStockErosion)

	war.Advance(cfg, &p.War, result.ExhaustionDelta)

	for _, enemyIdx := range append([]int32(nil), p.War.Enemies...) {
		enemy := r.Get(enemyIdx)
		if enemy == nil || enemy.Dead {
			continue
		}
		tryAnnihilate(p, enemy, r, g)
	}

	if war.ShouldEnd(p.War) {
		endWarFor(p, r, cfg)
	}
}

// endWarFor closes out p's belligerency entirely — war_duration and
// war_exhaustion are shared scalars across all of p's concurrent fronts, so
// ending them ends every front at once; each enemy's own bilateral link and
// (independently scalar) war state are then closed to match.
func endWarFor(p *Polity, r *Registry, cfg war.Config) {
	enemies := append([]int32(nil), p.War.Enemies...)
	result := war.End(cfg, &p.War, p.RNG.Float64())
	p.Legitimacy = clamp01(p.Legitimacy + result.LegitimacyDelta)
	p.War.Enemies = nil

	for _, enemyIdx := range enemies {
		enemy := r.Get(enemyIdx)
		if enemy == nil {
			continue
		}
		war.RemoveEnemy(&enemy.War, p.Index)
		if len(enemy.War.Enemies) == 0 && enemy.War.IsAtWar {
			enemyResult := war.End(cfg, &enemy.War, enemy.RNG.Float64())
			enemy.Legitimacy = clamp01(enemy.Legitimacy + enemyResult.LegitimacyDelta)
		}
	}
}

// tryAnnihilate checks whether p can finish off enemy this year and, if so,
// absorbs its territory, cities, and 80% of its treasury (Section 4.5,
// "Annihilation capture").
func tryAnnihilate(p *Polity, enemy *Polity, r *Registry, g *worldmap.Grid) {
	if p.War.ActiveWarGoal != war.GoalAnnihilation {
		return
	}
	selfPower := power(p.Macro.MilitaryStrength+p.Effects.MilitaryBonus, p.Population)
	enemyPower := power(enemy.Macro.MilitaryStrength+enemy.Effects.MilitaryBonus, enemy.Population)
	ratio := selfPower / max1e9(enemyPower)

	in := war.AnnihilationInputs{
		PowerRatio:           ratio,
		TargetPopulationDom:  p.Population > 2*enemy.Population,
		TargetTerritoryDom:   p.Territory.Len() > 2*enemy.Territory.Len(),
		TargetCollapseDriven: enemy.Stability < 0.10 || enemy.Legitimacy < 0.10,
	}
	if !war.CanAnnihilate(in) {
		return
	}

	for _, c := range append([]worldmap.Coord(nil), enemy.Territory.Cells()...) {
		r.Transfer(g, c, p.Index)
	}
	p.Cities = append(p.Cities, enemy.Cities...)
	absorbed := uint64(float64(enemy.Treasury) * war.AbsorbedGoldFraction)
	p.Treasury += absorbed

	r.Kill(g, enemy.Index)
}

func max1e9(x float64) float64 {
	if x < 1e-9 {
		return 1e-9
	}
	return x
}
