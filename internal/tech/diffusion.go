package tech

import "math"

// DomainKnowledgeDiffusion moves domain-knowledge scalar from the
// higher-knowledge polity to the lower one on each domain, per Section 4.4:
//
//	w_border = clamp(log1p(border_contacts)/5, 0, 1)
//	w_trade  = clamp(trade_intensity[a,b], 0, 1)
//	rate     = base * w * exp(-friction*trait_distance) * dt
//
// moderated by institution absorption on both sides. Mutates a and b in
// place.
func DomainKnowledgeDiffusion(cfg Config, a, b *State, borderContacts int32, tradeIntensity, traitDistance float64, instA, instB float64, dt float64) {
	wBorder := clamp01(math.Log1p(float64(borderContacts)) / 5)
	wTrade := clamp01(tradeIntensity)

	for d := 0; d < NumDomains; d++ {
		diffuse := func(w float64) {
			if w <= 0 {
				return
			}
			rate := cfg.DiffusionBase * w * math.Exp(-cfg.CulturalFrictionStrength*traitDistance) * dt
			absorbA := 0.5 + 0.5*instA
			absorbB := 0.5 + 0.5*instB

			delta := a.Domains[d] - b.Domains[d]
			if delta == 0 {
				return
			}
			flow := rate * delta
			if delta > 0 {
				// a -> b
				flow *= absorbB
				a.Domains[d] -= flow
				b.Domains[d] += flow
			} else {
				flow *= absorbA
				a.Domains[d] -= flow // flow is negative here, so this adds
				b.Domains[d] += flow
			}
			if a.Domains[d] < 0 {
				a.Domains[d] = 0
			}
			if b.Domains[d] < 0 {
				b.Domains[d] = 0
			}
		}
		diffuse(wBorder)
		diffuse(wTrade)
	}
}

// KnownTechDiffusion runs the directed, contact-weighted known-tech
// diffusion pass from source to target over the source's top-K most
// adopted known techs, per Section 4.4. Two effects: Learn (target marks
// tech known) and Seed adoption (if source adoption is very high and
// target's is very low). deterministicUnit must be bound to
// (worldSeed, year, targetPolity).
func KnownTechDiffusion(dag *DAG, cfg Config, src, tgt *State, w float64, ideaMarketSrc, mediaSrc, ideaMarketTgt, connectivitySrc, opennessTgt float64, dt float64, energy, ore, construction float64, deterministicUnit func(tech int, salt uint64) float64) (learned []ID, seeded []ID) {
	if w <= 0 {
		return nil, nil
	}
	candidates := src.TopKAdopted(cfg.KnownDiffusionTopK)
	for _, id := range candidates {
		if tgt.Known[id] {
			continue
		}
		tc := dag.Techs[id]
		if !dag.PrereqsSatisfied(id, tgt.Known) {
			continue
		}

		pLearn := cfg.KnownDiffusionBase * w * connectivitySrc * ideaMarketSrc * mediaSrc * ideaMarketTgt * opennessTgt * dt
		if pLearn > 0 && deterministicUnit(int(id), 3 /* SaltKnownDiffusion */) < pLearn {
			tgt.Known[id] = true
			tgt.Adoption[id] = cfg.DiscoverySeedAdoption
			learned = append(learned, id)
			continue
		}

		if src.Adoption[id] > 0.80 && tgt.Adoption[id] < 0.10 && feasible(tc.Gates, cfg, energy, ore, construction) {
			if deterministicUnit(int(id), 4 /* SaltAdoptionSeed */) < pLearn+0.5 {
				tgt.Adoption[id] += cfg.AdoptionSeedFromNeighbors
				if tgt.Adoption[id] > 1 {
					tgt.Adoption[id] = 1
				}
				seeded = append(seeded, id)
			}
		}
	}
	return learned, seeded
}
