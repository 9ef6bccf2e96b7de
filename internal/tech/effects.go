package tech

// Bonus is a single tech's contribution to a polity's derived bonus
// multipliers, scaled by the polity's current adoption of that tech.
// See design doc Section 4.4, "Effects recomputation".
type Bonus struct {
	MaxPopMultiplier     float64 // carrying-capacity multiplier (Section 4.6 tech_K_multiplier)
	ExpansionRateBonus   float64 // additive bonus to expansion scale
	BurstRadiusBonus     int     // additive bonus to warmonger-surge radius
	BurstFrequencyBonus  float64 // additive bonus to warmonger-surge chance
	MilitaryBonus        float64 // additive bonus to military_strength
	DefensiveBonus       float64 // additive bonus to terrain_defense
	WarDurationReduction float64 // fractional reduction to base war duration, capped 80% total
	PlagueResistance     float64 // fractional reduction to plague mortality multiplier
	ScienceMultiplier    float64 // multiplicative bonus to innovation output
	ResearchMultiplier   float64 // multiplicative bonus to discovery hazard
	GrowthRateBonus      float64 // additive bonus to logistic r (Section 4.6)
	FertilityDamping     float64 // multiplicative damping of r (demographic transition)
}

// EffectTable maps a tech ID to its static bonus contribution. Bonuses are
// scaled by the polity's current adoption of that tech before being summed;
// see Aggregate.
type EffectTable map[ID]Bonus

// DefaultEffectTable returns the static effect table for DefaultDAG,
// matching the per-tech multipliers spec.md Section 4.6 names explicitly
// (Irrigation 1.06, Agriculture 1.10, Railroad 1.20, Steam 1.15,
// Refrigeration 1.10, and the r-bonus ladder) plus analogous values for the
// remaining named techs of Sections 4.3/4.4/4.5.
func DefaultEffectTable() EffectTable {
	return EffectTable{
		Irrigation:             {MaxPopMultiplier: 1.06, GrowthRateBonus: 5e-5},
		Agriculture:            {MaxPopMultiplier: 1.10, GrowthRateBonus: 8e-5},
		AnimalHusbandry:        {MaxPopMultiplier: 1.04},
		Granaries:              {MaxPopMultiplier: 1.05},
		Engineering:            {GrowthRateBonus: 3e-5, DefensiveBonus: 0.05, ExpansionRateBonus: 0.02},
		CivilService:           {GrowthRateBonus: 2e-5, ScienceMultiplier: 1.05},
		ConstructionRoads:      {ExpansionRateBonus: 0.04, DefensiveBonus: 0.03},
		Shipbuilding:           {ExpansionRateBonus: 0.02},
		IronWorking:            {MilitaryBonus: 0.08},
		BronzeWorking:          {MilitaryBonus: 0.04},
		Sanitation:             {GrowthRateBonus: 4e-4, PlagueResistance: 0.25},
		Vaccination:            {GrowthRateBonus: 3e-4, PlagueResistance: 0.45},
		Penicillin:             {GrowthRateBonus: 2e-4, PlagueResistance: 0.55},
		Steam:                  {MaxPopMultiplier: 1.15, GrowthRateBonus: 6e-4},
		Industrialization:      {MaxPopMultiplier: 1.12, GrowthRateBonus: 8e-4, MilitaryBonus: 0.10},
		Railroad:               {MaxPopMultiplier: 1.20, ExpansionRateBonus: 0.05},
		Electricity:            {MaxPopMultiplier: 1.10, GrowthRateBonus: 5e-4, ScienceMultiplier: 1.10},
		MassProduction:         {MilitaryBonus: 0.15, ScienceMultiplier: 1.05},
		Refrigeration:          {MaxPopMultiplier: 1.10},
		Flight:                 {BurstRadiusBonus: 2, MilitaryBonus: 0.12},
		University:             {ScienceMultiplier: 1.15, ResearchMultiplier: 1.15},
		Education:              {FertilityDamping: 0.85, ScienceMultiplier: 1.10},
		Economics:              {FertilityDamping: 0.92},
		Computers:              {FertilityDamping: 0.80, ScienceMultiplier: 1.25, ResearchMultiplier: 1.20},
		PersonalComputers:      {FertilityDamping: 0.70, ScienceMultiplier: 1.10},
		Internet:               {FertilityDamping: 0.60, ScienceMultiplier: 1.20, ResearchMultiplier: 1.15},
		ArtificialIntelligence: {FertilityDamping: 0.45, ScienceMultiplier: 1.40, ResearchMultiplier: 1.35},
	}
}

// Aggregate rolls up a polity's adoption-weighted bonuses across every
// known tech into a single usable summary. Multiplicative fields (the
// *Multiplier ones and FertilityDamping) compose by product; additive
// fields sum.
type Aggregate struct {
	MaxPopMultiplier     float64
	ExpansionRateBonus   float64
	BurstRadiusBonus     int
	BurstFrequencyBonus  float64
	MilitaryBonus        float64
	DefensiveBonus       float64
	WarDurationReduction float64
	PlagueResistance     float64
	ScienceMultiplier    float64
	ResearchMultiplier   float64
	GrowthRateBonus      float64
	FertilityDamping     float64
}

// RecomputeEffects rebuilds a polity's bonus aggregate from its current
// per-tech adoption vector. adoption is indexed by tech ID; entries for
// techs below the adoption threshold still contribute (scaled down), since
// partial diffusion has a partial effect.
func RecomputeEffects(table EffectTable, adoption []float32) Aggregate {
	agg := Aggregate{MaxPopMultiplier: 1, ScienceMultiplier: 1, ResearchMultiplier: 1, FertilityDamping: 1}
	for id, b := range table {
		if int(id) >= len(adoption) {
			continue
		}
		a := float64(adoption[id])
		if a <= 0 {
			continue
		}
		if b.MaxPopMultiplier > 0 {
			agg.MaxPopMultiplier *= 1 + (b.MaxPopMultiplier-1)*a
		}
		agg.ExpansionRateBonus += b.ExpansionRateBonus * a
		agg.BurstRadiusBonus += int(float64(b.BurstRadiusBonus) * a)
		agg.BurstFrequencyBonus += b.BurstFrequencyBonus * a
		agg.MilitaryBonus += b.MilitaryBonus * a
		agg.DefensiveBonus += b.DefensiveBonus * a
		agg.WarDurationReduction += b.WarDurationReduction * a
		agg.PlagueResistance += b.PlagueResistance * a
		if b.ScienceMultiplier > 0 {
			agg.ScienceMultiplier *= 1 + (b.ScienceMultiplier-1)*a
		}
		if b.ResearchMultiplier > 0 {
			agg.ResearchMultiplier *= 1 + (b.ResearchMultiplier-1)*a
		}
		agg.GrowthRateBonus += b.GrowthRateBonus * a
		if b.FertilityDamping > 0 {
			agg.FertilityDamping *= 1 - (1-b.FertilityDamping)*a
		}
	}
	if agg.WarDurationReduction > 0.80 {
		agg.WarDurationReduction = 0.80
	}
	if agg.PlagueResistance > 0.95 {
		agg.PlagueResistance = 0.95
	}
	return agg
}
