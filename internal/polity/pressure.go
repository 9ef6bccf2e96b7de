package polity

import (
	"math"

	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/war"
)

// Pressures is the {survival, revenue, legitimacy, opportunity} vector from
// Section 4.3 step 5, each in [0,1].
type Pressures struct {
	Survival    float64
	Revenue     float64
	Legitimacy  float64
	Opportunity float64
}

// power computes military power ≡ military_strength * sqrt(max(1, pop/10000)).
func power(militaryStrength float64, population int64) float64 {
	scale := math.Sqrt(math.Max(1, float64(population)/10000))
	return militaryStrength * scale
}

// isViableTarget reports whether other is a viable war target for self, per
// Section 4.3 step 5: our_power/their_power > 1.08, or their fragility
// (blend of 1-stability, 1-legitimacy) > 0.62 and ratio > 0.92.
func isViableTarget(selfPower, otherPower float64, otherStability, otherLegitimacy float64) bool {
	if otherPower <= 0 {
		return true
	}
	ratio := selfPower / otherPower
	if ratio > 1.08 {
		return true
	}
	fragility := 0.5*(1-otherStability) + 0.5*(1-otherLegitimacy)
	return fragility > 0.62 && ratio > 0.92
}

// computePressures assembles the pressure vector for p, scanning its
// adjacency-indexed neighbors for the survival/opportunity terms. It also
// returns the best viable war target's index (or -1) and the worst
// neighbor power ratio, for use by the policy step.
func computePressures(p *Polity, r *Registry, neighbors []int32, deficitRatio, reservesShortfall, debtToIncomeRatio, fiscalGap, frontierFoodScore float64) (Pressures, int32, float64) {
	selfPower := power(p.Macro.MilitaryStrength+p.Effects.MilitaryBonus, p.Population)

	worstRatio := math.Inf(1)
	bestTarget := int32(-1)
	bestTargetScore := -1.0
	viableCount := 0

	for _, idx := range neighbors {
		other := r.Get(idx)
		if other == nil || other.Dead || idx == p.Index {
			continue
		}
		otherPower := power(other.Macro.MilitaryStrength+other.Effects.MilitaryBonus, other.Population)
		ratio := selfPower / math.Max(1e-9, otherPower)
		if ratio < worstRatio {
			worstRatio = ratio
		}
		if isViableTarget(selfPower, otherPower, other.Stability, other.Legitimacy) {
			viableCount++
			score := ratio + (1 - other.Stability)
			if score > bestTargetScore {
				bestTargetScore = score
				bestTarget = idx
			}
		}
	}
	if math.IsInf(worstRatio, 1) {
		worstRatio = 1
	}

	borderExposure := clamp01(float64(len(neighbors)) / 8)
	survival := clamp01(0.6*clamp01(1/math.Max(0.2, worstRatio)-0.5) + 0.4*borderExposure)

	revenue := clamp01(0.35*clamp01(deficitRatio) + 0.25*clamp01(reservesShortfall) +
		0.25*clamp01(debtToIncomeRatio) + 0.15*clamp01(fiscalGap))

	legitimacy := clamp01(0.7*(1-p.Legitimacy) + 0.3*(1-p.Stability))

	opportunity := clamp01(frontierFoodScore + float64(viableCount)/2/math.Max(1, float64(len(neighbors))))

	return Pressures{
		Survival:    survival,
		Revenue:     revenue,
		Legitimacy:  legitimacy,
		Opportunity: opportunity,
	}, bestTarget, worstRatio
}

// dominant returns which of the four pressures is largest.
func (pr Pressures) dominant() string {
	m := pr.Survival
	name := "survival"
	if pr.Revenue > m {
		m, name = pr.Revenue, "revenue"
	}
	if pr.Legitimacy > m {
		m, name = pr.Legitimacy, "legitimacy"
	}
	if pr.Opportunity > m {
		_, name = pr.Opportunity, "opportunity"
	}
	return name
}

// policyStep runs at cadence 5 years (<25 techs known) or 2 years (>=25
// techs known): the dominant pressure reshapes budget shares, tax rate, and
// treasury spend, and may trigger a war decision (Section 4.3 step 6).
func policyStep(p *Polity, r *Registry, warCfg war.Config, trade *economy.Matrix, year int, pr Pressures, bestTarget int32, spareGold bool) {
	cadence := 5
	if len(p.Knowledge.UnlockedList(0.1)) >= 25 {
		cadence = 2
	}
	if p.NextPolicyYear != 0 && year < p.NextPolicyYear {
		return
	}
	p.NextPolicyYear = year + cadence

	switch pr.dominant() {
	case "opportunity":
		p.Budget.Military += 0.05
		if spareGold && bestTarget >= 0 {
			tryDeclareWar(p, r, warCfg, trade, year, bestTarget, pr)
		}
	case "survival":
		p.Budget.Military += 0.08
		if pr.Survival > 0.75 {
			// Defensive emergency: declare on bestTarget, the same candidate
			// the opportunity branch uses; an existing war with that target
			// is not checked here.
			if bestTarget >= 0 {
				tryDeclareWar(p, r, warCfg, trade, year, bestTarget, pr)
			}
		}
	case "revenue":
		p.TaxRate = clampSigned(p.TaxRate+0.02, 0.05, 0.60)
		p.TreasurySpend = clampSigned(p.TreasurySpend-0.02, 0.10, 0.95)
	case "legitimacy":
		p.Budget.Admin += 0.05
		p.Budget.Education += 0.03
	}
	p.Budget.Normalize()
}

// tryDeclareWar runs CanDeclare/SelectGoal/Duration/Declare against the
// best candidate target, bridging into the war package (Section 4.5).
func tryDeclareWar(p *Polity, r *Registry, cfg war.Config, trade *economy.Matrix, year int, targetIdx int32, pr Pressures) {
	target := r.Get(targetIdx)
	if target == nil {
		return
	}
	in := war.DeclareInputs{
		AggressorStability:  p.Stability,
		AggressorLegitimacy: p.Legitimacy,
		AggressorPopulation: p.Population,
		TargetDead:          target.Dead,
		SameIndex:           p.Index == targetIdx,
	}
	if !war.CanDeclare(cfg, p.War, in) {
		return
	}

	selfPower := power(p.Macro.MilitaryStrength+p.Effects.MilitaryBonus, p.Population)
	otherPower := power(target.Macro.MilitaryStrength+target.Effects.MilitaryBonus, target.Population)
	ratio := selfPower / math.Max(1e-9, otherPower)

	goalIn := war.GoalInputs{
		Scarcity:           1 - p.Macro.FoodSecurity,
		IsTribal:           p.Type == Warmonger && p.Ideology == Tribal,
		Institution:        p.Macro.InstitutionCap,
		LeaderAmbition:     p.Leader.Ambition,
		ImperialWindow:     clamp01(ratio - 1),
		TargetWeakness:     clamp01(1 - target.Stability),
		LegitimacyPressure: pr.Legitimacy,
		TargetIllegitimacy: clamp01(1 - target.Legitimacy),
		PowerRatio:         ratio,
	}
	draw := p.RNG.Float64()
	goal := war.SelectGoal(cfg, goalIn, draw)

	duration := war.Duration(ratio, p.Macro.LogisticsReachEff, p.Effects.WarDurationReduction)
	war.Declare(&p.War, &target.War, p.Index, targetIdx, goal, duration)
	if trade != nil {
		trade.Zero(p.Index, targetIdx)
	}
}
