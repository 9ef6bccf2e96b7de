package polity

// StabilityInputs bundles the scalars the additive stability/legitimacy
// drift needs beyond what Polity already carries (Section 4.7).
type StabilityInputs struct {
	PlagueAffected bool
	LowGrowth      bool
	HighGrowth     bool
	TaxPain        float64
	DebtStress     float64
	ServiceStress  float64
	Shortfall      float64
}

func resilience(p *Polity) float64 {
	return 0.42*p.Macro.InstitutionCap + 0.30*p.AdminCapacity + 0.16*p.AvgControl + 0.12*p.Legitimacy
}

// driftStability applies one year's additive stability drift, clamped to
// [0,1] at the end (Section 4.7).
func driftStability(p *Polity, cfg Config, in StabilityInputs) {
	res := resilience(p)
	crisis := clamp01(1 - p.Stability)

	var delta float64
	switch {
	case p.War.IsAtWar:
		delta = -cfg.YearlyWarStabilityHit * (0.70 + 0.90*p.War.WarExhaustion) * (1 - 0.45*res)
		p.StagnationYears = 0
	case in.PlagueAffected:
		delta = -cfg.YearlyPlagueStabilityHit * (1 - 0.40*p.Budget.Health - 0.35*p.Macro.InstitutionCap)
	case p.StagnationYears > 20:
		delta = -cfg.YearlyStagnationHit * (0.70 + 0.30*(1-res))
	case in.LowGrowth || in.HighGrowth:
		delta = (cfg.PeaceRecoveryLowGrowth + cfg.PeaceRecoveryHighGrowth) * (0.45 + 0.55*res)
	}

	tailRecovery := cfg.ResilienceRecovery * clamp01(1-p.Stability) * res * (1 - 0.75*crisis)
	floor := 0.04 * res * (1 - 0.85*crisis)

	p.Stability = clamp01(p.Stability + delta + tailRecovery + floor)
}

// driftLegitimacy applies one year's additive legitimacy drift, analogous
// to driftStability but with tax/debt/service/control/shortfall terms
// (Section 4.7).
func driftLegitimacy(p *Polity, cfg Config, in StabilityInputs) {
	crisis := clamp01(1 - p.Legitimacy)

	delta := -0.03*in.TaxPain - 0.03*in.DebtStress - 0.02*in.ServiceStress -
		0.02*(1-p.AvgControl) - 0.03*in.Shortfall
	if p.War.IsAtWar {
		delta -= cfg.YearlyWarStabilityHit * 0.5
	}
	if in.PlagueAffected {
		delta -= cfg.YearlyPlagueStabilityHit * 0.5
	}

	recovery := cfg.LegitimacyRecovery * clamp01(1-p.Legitimacy) * p.Macro.InstitutionCap *
		p.AdminCapacity * p.AvgControl * p.Macro.FoodSecurity * (1 - 0.80*crisis)
	floor := 0.03 * p.Macro.InstitutionCap * (1 - 0.85*crisis)

	p.Legitimacy = clamp01(p.Legitimacy + delta + recovery + floor)
}
