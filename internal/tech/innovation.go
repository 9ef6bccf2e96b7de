package tech

import "math"

// Indicators bundles the macro-state scalars the innovation, discovery,
// diffusion, and adoption formulas read from a polity. The tech package
// never imports the polity package (to keep the DAG leaf-level per the
// design notes' dependency order); polity.Update populates one of these
// each year from its own macro state and passes it in.
type Indicators struct {
	Population   float64
	PopLog       float64 // log-scaled population term, precomputed by caller
	MarketAccess float64
	Openness     float64
	Stability    float64
	Legitimacy   float64
	FoodSecurity float64
	AtWar        bool
	Famine       bool

	SurplusFactor  float64
	Urbanization   float64
	InfraFactor    float64
	Access         float64
	Education      float64
	PopScale       float64
	HumanCapital   float64
	KnowledgeStock float64
	Connectivity   float64
	Institution    float64
	Inequality     float64
	ResourceGate   float64

	HealthShare    float64
	EducationShare float64

	Specialization float64
	IdeaMarket     float64
	Credibility    float64
	Media          float64
	Fragmentation  float64

	ScienceMultiplier  float64 // from tech.Aggregate
	ResearchMultiplier float64 // from tech.Aggregate
}

// Config groups the tunable tech.* TOML parameters from spec.md Section 6.
type Config struct {
	DiscoveryBase             float64
	DiscoveryDifficultyScale  float64
	AdoptionBaseSpeed         float64
	AdoptionDecayBase         float64
	AdoptionThreshold         float32 // 0.10-0.95
	CollapseDecayMultiplier   float64
	DiffusionBase             float64
	CulturalFrictionStrength  float64
	KnownDiffusionBase        float64
	KnownDiffusionTopK        int
	PrereqAdoptionFraction    float64
	RareForgetYears           uint16
	RareForgetChance          float64
	ResourceReqEnergy         float64
	ResourceReqOre            float64
	ResourceReqConstruction   float64
	DiscoverySeedAdoption     float32
	AdoptionSeedFromNeighbors float32
	MaxDiscoveriesPerYear     int
}

// DefaultConfig returns the compiled defaults for the [tech] config section.
func DefaultConfig() Config {
	return Config{
		DiscoveryBase:             0.02,
		DiscoveryDifficultyScale:  4.0,
		AdoptionBaseSpeed:         0.35,
		AdoptionDecayBase:         0.08,
		AdoptionThreshold:         0.55,
		CollapseDecayMultiplier:   2.5,
		DiffusionBase:             0.05,
		CulturalFrictionStrength:  1.2,
		KnownDiffusionBase:        0.04,
		KnownDiffusionTopK:        5,
		PrereqAdoptionFraction:    0.65,
		RareForgetYears:           30,
		RareForgetChance:          0.02,
		ResourceReqEnergy:         1.0,
		ResourceReqOre:            1.0,
		ResourceReqConstruction:   1.0,
		DiscoverySeedAdoption:     0.05,
		AdoptionSeedFromNeighbors: 0.08,
		MaxDiscoveriesPerYear:     3,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Innovate computes a polity's yearly innovation output and its
// distribution across knowledge domains, per Section 4.4:
//
//	innov = baseline_craft + advanced
func Innovate(ind Indicators, dt float64) (total float64, perDomain [NumDomains]float64) {
	contact := clamp01(0.5*ind.MarketAccess + 0.5*ind.Openness)
	order := clamp01(0.5*ind.Stability + 0.5*ind.Legitimacy)
	survival := clamp01(ind.FoodSecurity)
	warPenalty := 1.0
	if ind.AtWar {
		warPenalty = 0.6
	}
	base := 0.01
	baselineCraft := base * ind.PopLog * contact * order * survival * warPenalty

	advanced := (12*ind.SurplusFactor + ind.Urbanization) *
		ind.InfraFactor * ind.Access * ind.Stability * ind.Legitimacy *
		ind.Urbanization * ind.Education * ind.PopScale * ind.HumanCapital *
		ind.KnowledgeStock * ind.Connectivity * ind.Institution *
		(1 - 0.45*ind.Inequality) * ind.ResourceGate

	if ind.ScienceMultiplier > 0 {
		advanced *= ind.ScienceMultiplier
	}

	total = (baselineCraft + advanced) * dt

	// Domain weighting, biased by current pressures (Section 4.4).
	weights := [NumDomains]float64{}
	for i := range weights {
		weights[i] = 1.0
	}
	if ind.FoodSecurity < 0.9 {
		weights[DomainSubsistence] += 2.0
	}
	if ind.AtWar {
		weights[DomainMilitary] += 2.0
	}
	if ind.EducationShare > 0 {
		weights[DomainEducation] += 2.0 * ind.EducationShare
	}
	if ind.HealthShare > 0 {
		weights[DomainHealth] += 2.0 * ind.HealthShare
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		perDomain[i] = total * w / sum
	}
	return total, perDomain
}

// smoothstep implements the classic 3x^2-2x^3 Hermite interpolation clamped
// to [0,1], used by the discovery hazard's domain_factor term.
func smoothstep(x float64) float64 {
	x = clamp01(x)
	return x * x * (3 - 2*x)
}

func inducedBias(k Induced, ind Indicators) float64 {
	switch k {
	case InducedLaborSaving:
		return 0.9 + 0.3*ind.Urbanization
	case InducedEnergyUsing:
		return 0.9 + 0.3*ind.ResourceGate
	case InducedMaterials:
		return 0.9 + 0.2*ind.InfraFactor
	case InducedInformation:
		return 0.9 + 0.3*ind.Education
	case InducedInstitutions:
		return 0.9 + 0.3*ind.Institution
	default:
		return 1.0
	}
}

// mechanismBoost mixes the market/commitment/media factors named in
// Section 4.4's discovery hazard.
func mechanismBoost(ind Indicators) float64 {
	return 0.25*ind.Fragmentation + 0.25*ind.IdeaMarket + 0.25*ind.Credibility + 0.25*ind.Media + 0.5
}

// feasible reports whether a tech's resource gates pass given the polity's
// resource ledger (expressed as fractions of requirement satisfied, 1.0
// meaning fully satisfied).
func feasible(g Gates, cfg Config, energy, ore, construction float64) bool {
	if g.RequiresEnergy && energy < cfg.ResourceReqEnergy {
		return false
	}
	if g.RequiresOre && ore < cfg.ResourceReqOre {
		return false
	}
	if g.RequiresConstruction && construction < cfg.ResourceReqConstruction {
		return false
	}
	return true
}

// DiscoveryHazard computes the per-year discovery probability for a single
// unknown tech, per Section 4.4:
//
//	hazard = base * pop_factor * org_factor * domain_factor * mechanism_boost * induced_bias / (1 + difficulty_scale*difficulty)
//	p = 1 - exp(-hazard*dt)
func DiscoveryHazard(cfg Config, tc Tech, ind Indicators, dt float64) float64 {
	popFactor := clamp01(ind.PopScale)
	orgFactor := clamp01(0.5*ind.Institution + 0.5*ind.Stability)
	domainFactor := smoothstep((ind.KnowledgeStock - 0.45*tc.Threshold) / (0.9 * tc.Threshold))
	if ind.ResearchMultiplier > 0 {
		orgFactor *= ind.ResearchMultiplier
	}

	hazard := cfg.DiscoveryBase * popFactor * orgFactor * domainFactor *
		mechanismBoost(ind) * inducedBias(inducedOf(tc.ID), ind) /
		(1 + cfg.DiscoveryDifficultyScale*tc.Difficulty)

	if math.IsNaN(hazard) || hazard < 0 {
		return 0 // NaN/negative hazard is treated as zero (Section 7).
	}
	p := 1 - math.Exp(-hazard*dt)
	if math.IsNaN(p) {
		return 0
	}
	return p
}

// DiscoveryPass runs the discovery check for every unknown, prereq-satisfied,
// feasible tech and triggers discovery deterministically via
// deterministicUnit, capping the number of discoveries per polity per year.
// The caller supplies deterministicUnit bound to (worldSeed, year, polity).
func DiscoveryPass(dag *DAG, s *State, cfg Config, ind Indicators, dt float64, energy, ore, construction float64, deterministicUnit func(tech int, salt uint64) float64) []ID {
	var triggered []ID
	for i := range dag.Techs {
		if s.Known[i] {
			continue
		}
		tc := dag.Techs[i]
		if !dag.PrereqsSatisfied(tc.ID, s.Known) {
			continue
		}
		if !feasible(tc.Gates, cfg, energy, ore, construction) {
			continue
		}
		p := DiscoveryHazard(cfg, tc, ind, dt)
		if p <= 0 {
			continue
		}
		if deterministicUnit(int(tc.ID), 1 /* SaltDiscovery */) < p {
			triggered = append(triggered, tc.ID)
			if len(triggered) >= cfg.MaxDiscoveriesPerYear {
				break
			}
		}
	}
	for _, id := range triggered {
		s.Known[id] = true
		s.Adoption[id] = cfg.DiscoverySeedAdoption
		s.LowAdoptionYears[id] = 0
	}
	return triggered
}
