package tech

// AdoptionSpeed computes the `speed` multiplier from Section 4.4's
// adoption/loss rule, folding in institution, stability, legitimacy,
// market-access, connectivity, specialization, inequality, food-security,
// idea-market, credibility, media, fragmentation, and induced bias; at-war
// and famine dampen it.
func AdoptionSpeed(cfg Config, ind Indicators, induced Induced) float64 {
	speed := cfg.AdoptionBaseSpeed *
		ind.Institution * ind.Stability * ind.Legitimacy * ind.MarketAccess *
		ind.Connectivity * (0.5 + 0.5*ind.Specialization) * (1 - 0.5*ind.Inequality) *
		ind.FoodSecurity * ind.IdeaMarket * ind.Credibility * ind.Media *
		(0.5 + 0.5*ind.Fragmentation) * inducedBias(induced, ind)

	if ind.AtWar {
		speed *= 0.7
	}
	if ind.Famine {
		speed *= 0.6
	}
	return speed
}

// UpdateAdoptionAndLoss advances a single tech's adoption for one year,
// applying the decay branch when prerequisites or feasibility fail, and
// tracking low-adoption years for the rare-forgetting check. Returns
// whether the tech was forgotten this year.
func UpdateAdoptionAndLoss(dag *DAG, cfg Config, s *State, id ID, ind Indicators, energy, ore, construction float64, population float64, dt float64, deterministicUnit func(tech int, salt uint64) float64) (forgotten bool) {
	if !s.Known[id] {
		return false
	}
	tc := dag.Techs[id]

	prereqsOK := true
	for _, p := range tc.Prereqs {
		if s.Adoption[p] < float32(cfg.PrereqAdoptionFraction*0.65) {
			prereqsOK = false
			break
		}
	}
	feasibleNow := feasible(tc.Gates, cfg, energy, ore, construction)

	a := float64(s.Adoption[id])
	if prereqsOK && feasibleNow {
		speed := AdoptionSpeed(cfg, ind, inducedOf(id))
		a += speed * (1 - a) * dt
	} else {
		decay := cfg.AdoptionDecayBase * cfg.CollapseDecayMultiplier
		a -= decay * a * dt
	}
	a = clamp01(a)
	s.Adoption[id] = float32(a)

	if a < 0.05 {
		if s.LowAdoptionYears[id] < 65535 {
			s.LowAdoptionYears[id]++
		}
	} else {
		s.LowAdoptionYears[id] = 0
	}

	// Rare forgetting: a very small deterministic chance to clear Known
	// when adoption has been stuck low for long enough, on a small,
	// disconnected, low-order polity.
	if s.LowAdoptionYears[id] >= cfg.RareForgetYears &&
		population < 1500 && ind.Connectivity < 0.12 && int(id) <= 250 {
		if deterministicUnit(int(id), 2 /* SaltRareForget */) < cfg.RareForgetChance {
			s.Known[id] = false
			s.Adoption[id] = 0
			s.LowAdoptionYears[id] = 0
			return true
		}
	}
	return false
}
