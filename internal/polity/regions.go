package polity

// ensureRegions lazily creates the polity's regional sub-states the first
// time it is needed, with N in [min,max] drawn from the polity's own RNG,
// decreasing population shares and increasing distance penalty with each
// successive region (Section 4.3 step 2).
func ensureRegions(p *Polity, cfg Config) {
	if len(p.Regions) > 0 {
		return
	}
	span := cfg.RegionCountMax - cfg.RegionCountMin
	n := cfg.RegionCountMin
	if span > 0 {
		n += p.RNG.IntN(span + 1)
	}
	p.Regions = make([]Region, n)

	remaining := 1.0
	for i := range p.Regions {
		share := remaining / float64(n-i) * (1.0 - 0.15*float64(i)/float64(n))
		if share < 0 {
			share = 0
		}
		remaining -= share
		p.Regions[i] = Region{
			PopShare:     share,
			Distance:     float64(i) / float64(n),
			LocalControl: 0.5,
		}
	}
}

// updateRegions recomputes local control, grievance, and elite power for
// every region, then integrates the polity-wide elite_defection_pressure
// (Section 4.3 step 2).
func updateRegions(p *Polity, cfg Config, extraction, famine float64) {
	ensureRegions(p, cfg)

	infraShare := p.Budget.Infra
	var defection float64
	for i := range p.Regions {
		r := &p.Regions[i]
		farPenalty := r.Distance * (1 - p.AdminCapacity)
		target := p.AvgControl - farPenalty + 0.35*p.AdminCapacity + 0.15*infraShare
		r.LocalControl = clamp01(r.LocalControl + 0.10*(target-r.LocalControl))

		grievanceDrive := 0.4*extraction + 0.3*famine + 0.2*boolToFloat(p.War.IsAtWar) + 0.1*(1-r.LocalControl)
		grievanceDrive -= 0.5 * p.Legitimacy
		r.Grievance = clamp01(r.Grievance + 0.05*(grievanceDrive-r.Grievance))

		r.ElitePower = clamp01(0.5*r.PopShare + 0.5*r.Grievance)
		defection += r.PopShare * r.Grievance * (1 - r.LocalControl)
	}
	p.EliteDefectionPressure = clamp01(cfg.EliteDefectionSensitivity * defection)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
