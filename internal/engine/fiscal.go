package engine

import (
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
)

// runFiscalTick is Section 4.3's S6: the macro indices that the budget
// shares drive (admin capacity, fiscal capacity, institution cap, human
// capital, market access, and the rest of the Macro vector the tech and
// society packages read) converge slowly toward a budget-implied target
// rather than snapping to it, so a single bad year of tax policy does not
// instantly unwind a century of institution-building.
func runFiscalTick(p *polity.Polity, dt float64) {
	const rate = 0.04
	k := rate * dt
	if k > 1 {
		k = 1
	}

	applySocialPressures(p, k)

	const equalShare = 1.0 / 6

	p.AdminCapacity = ema(p.AdminCapacity, clamp01Fiscal(0.5+1.5*(p.Budget.Admin-equalShare)), k)
	p.FiscalCapacity = ema(p.FiscalCapacity, clamp01Fiscal(0.6+1.2*(p.Budget.Admin-equalShare)-0.3*p.TaxRate), k)

	p.Macro.InstitutionCap = ema(p.Macro.InstitutionCap,
		clamp01Fiscal(0.4*p.AdminCapacity+0.3*p.Stability+0.3*p.Legitimacy), k)
	p.Macro.InfraFactor = ema(p.Macro.InfraFactor, clamp01Fiscal(1.5*(p.Budget.Infra)), k)
	p.Macro.HumanCapital = ema(p.Macro.HumanCapital, clamp01Fiscal(1.5*(p.Budget.Education)), k)

	ledger := p.ResourceLedger()
	territory := float64(p.Territory.Len())
	if territory < 1 {
		territory = 1
	}
	p.Macro.ResourceGate = ema(p.Macro.ResourceGate,
		clamp01Fiscal((ledger.Ore+ledger.Energy+ledger.Construction)/territory), k)
	p.Macro.KnowledgeStock = ema(p.Macro.KnowledgeStock, averageDomain(p.Knowledge), k)

	p.Macro.MarketAccess = ema(p.Macro.MarketAccess,
		clamp01Fiscal(0.5*p.Macro.RoadMobility+0.3*p.Macro.Access+0.2*p.Macro.InfraFactor), k)
	p.Macro.Openness = ema(p.Macro.Openness, clamp01Fiscal(0.4+1.2*(p.Budget.RnD-equalShare)), k)
	p.Macro.Specialization = ema(p.Macro.Specialization, p.Macro.Urbanization, k)
	p.Macro.IdeaMarket = ema(p.Macro.IdeaMarket,
		clamp01Fiscal(0.5*p.Budget.RnD*6+0.5*p.Macro.HumanCapital), k)
	p.Macro.Credibility = ema(p.Macro.Credibility, clamp01Fiscal(0.5*p.Legitimacy+0.5*p.Stability), k)
	p.Macro.Media = ema(p.Macro.Media, clamp01Fiscal(0.3+p.Budget.RnD*3), k)
	p.Macro.Fragmentation = ema(p.Macro.Fragmentation, clamp01Fiscal(1-p.AvgControl), k)
	p.Macro.Inequality = ema(p.Macro.Inequality,
		clamp01Fiscal(0.5*(1-p.Legitimacy)+0.5*p.EliteDefectionPressure), k)

	citiesPerTerritory := float64(len(p.Cities)) / (territory/50 + 1)
	p.Macro.Urbanization = ema(p.Macro.Urbanization, clamp01Fiscal(citiesPerTerritory), k)
	p.Macro.SurplusFactor = ema(p.Macro.SurplusFactor, clamp01Fiscal(p.Macro.FoodSecurity-0.5), k)
	p.Macro.TerrainDefense = ema(p.Macro.TerrainDefense, clamp01Fiscal(0.3+p.Effects.DefensiveBonus), k)
	p.Macro.MilitaryStrength = ema(p.Macro.MilitaryStrength, clamp01Fiscal(0.15+1.2*p.Budget.Military), k)

	p.LogisticsReach = ema(p.LogisticsReach,
		clamp01Fiscal(0.4*p.Macro.RoadMobility+0.3*p.Macro.Access+0.3*p.Macro.Connectivity), k)
	logisticsFriction := 1.0
	if p.War.IsAtWar {
		logisticsFriction = 0.7
	}
	p.Macro.LogisticsReachEff = p.LogisticsReach * logisticsFriction
}

// applySocialPressures perturbs budget shares, tax rate, and treasury
// spend from the agentic-society pressure vector computed in Section 4.8's
// yearly tick, each channel damped by the leader trait that governs how
// responsive this particular leader is to that constituency: bourgeois
// pressure pulls infrastructure/research spending up under a reformist
// leader, bureaucrat pressure pulls admin spending up under an
// elite-aligned leader, elite bargaining pressure pulls the tax rate down,
// and commoner pressure pulls treasury spend up under a commoner-aligned
// leader.
func applySocialPressures(p *polity.Polity, k float64) {
	pr := p.Society.Pressures

	p.Budget.Infra += k * pr.Bourgeois * (0.3 + 0.7*p.Leader.Reformism)
	p.Budget.RnD += k * pr.Bourgeois * (0.3 + 0.7*p.Leader.Reformism)
	p.Budget.Admin += k * pr.Bureaucrat * (0.3 + 0.7*p.Leader.EliteAffinity)
	p.Budget.Normalize()

	p.TaxRate = clamp01Fiscal(p.TaxRate - k*pr.EliteBargaining*(0.3+0.7*p.Leader.EliteAffinity))
	p.TreasurySpend = clamp01Fiscal(p.TreasurySpend + k*pr.Commoner*(0.3+0.7*p.Leader.CommonerAffinity))
}

func averageDomain(s *tech.State) float64 {
	var sum float64
	for _, d := range s.Domains {
		sum += d
	}
	avg := sum / float64(tech.NumDomains)
	return clamp01Fiscal(avg / 50) // domain stocks are unbounded accumulators; 50 is a soft saturation scale
}

func ema(cur, target, rate float64) float64 { return cur + rate*(target-cur) }

func clamp01Fiscal(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
