package polity

import "math/rand/v2"

// checkSuccession runs the succession check at cadence next_succession_year
// (Section 4.3 step 3): a weighted risk score may trigger a crisis
// succession, dropping legitimacy/stability and installing a new leader.
func checkSuccession(p *Polity, cfg Config, year int, deficitRatio float64) {
	if p.NextSuccessionYear == 0 {
		scheduleSuccession(p, cfg, year)
		return
	}
	if year < p.NextSuccessionYear {
		return
	}
	scheduleSuccession(p, cfg, year)

	risk := 0.30*p.EliteDefectionPressure +
		0.20*(1-p.AdminCapacity) +
		0.20*boolToFloat(p.War.IsAtWar) +
		0.15*clamp01(deficitRatio) +
		0.15*(1-p.Leader.Competence)
	risk = clamp01(risk)

	draw := p.RNG.Float64()
	if draw >= risk {
		return
	}

	p.Legitimacy = clamp01(p.Legitimacy - 0.15*risk)
	p.Stability = clamp01(p.Stability - 0.12*risk)
	p.AutonomyPressure = clamp01(p.AutonomyPressure + 0.10*risk)
	p.Leader = crisisLeader(p.RNG)
}

// scheduleSuccession draws the next succession year from
// [SuccessionIntervalMinYears, SuccessionIntervalMaxYears].
func scheduleSuccession(p *Polity, cfg Config, year int) {
	span := cfg.SuccessionIntervalMaxYears - cfg.SuccessionIntervalMinYears
	interval := cfg.SuccessionIntervalMinYears
	if span > 0 {
		interval += p.RNG.IntN(span + 1)
	}
	p.NextSuccessionYear = year + interval
}

// crisisLeader rolls a fresh leader with the wider, riskier trait spread a
// crisis succession produces rather than an orderly one.
func crisisLeader(rng *rand.Rand) Leader {
	return Leader{
		Competence:       0.2 + 0.5*rng.Float64(),
		Coercion:         rng.Float64(),
		Diplomacy:        rng.Float64(),
		Reformism:        rng.Float64(),
		EliteAffinity:    rng.Float64(),
		CommonerAffinity: rng.Float64(),
		Ambition:         0.3 + 0.7*rng.Float64(),
	}
}
