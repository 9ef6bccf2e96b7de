package engine

import (
	"math"

	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
)

// buildIndicators copies a polity's macro state into the scalar bundle the
// tech package's innovation/discovery/adoption formulas read. tech never
// imports polity (leaf-package rule), so this conversion lives here instead.
func buildIndicators(p *polity.Polity) tech.Indicators {
	popLog := math.Log1p(float64(p.Population))
	return tech.Indicators{
		Population:   float64(p.Population),
		PopLog:       popLog,
		MarketAccess: p.Macro.MarketAccess,
		Openness:     p.Macro.Openness,
		Stability:    p.Stability,
		Legitimacy:   p.Legitimacy,
		FoodSecurity: p.Macro.FoodSecurity,
		AtWar:        p.War.IsAtWar,
		Famine:       p.Macro.FoodSecurity < 0.3,

		SurplusFactor:  p.Macro.SurplusFactor,
		Urbanization:   p.Macro.Urbanization,
		InfraFactor:    p.Macro.InfraFactor,
		Access:         p.Macro.Access,
		Education:      p.Budget.Education,
		PopScale:       clamp01Fiscal(popLog / 15),
		HumanCapital:   p.Macro.HumanCapital,
		KnowledgeStock: p.Macro.KnowledgeStock,
		Connectivity:   p.Macro.Connectivity,
		Institution:    p.Macro.InstitutionCap,
		Inequality:     p.Macro.Inequality,
		ResourceGate:   p.Macro.ResourceGate,

		HealthShare:    p.Budget.Health,
		EducationShare: p.Budget.Education,

		Specialization: p.Macro.Specialization,
		IdeaMarket:     p.Macro.IdeaMarket,
		Credibility:    p.Macro.Credibility,
		Media:          p.Macro.Media,
		Fragmentation:  p.Macro.Fragmentation,

		ScienceMultiplier:  p.Effects.ScienceMultiplier,
		ResearchMultiplier: p.Effects.ResearchMultiplier,
	}
}
