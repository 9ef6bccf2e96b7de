package war

// TickInputs bundles the per-polity scalars the supply/demand accounting
// needs, recomputed fresh every year (Section 4.5, "During war, per-tick").
type TickInputs struct {
	Logistics      float64
	MarketAccess   float64
	Control        float64
	Energy         float64
	FoodStock      float64
	RoadMobility   float64
	TerrainDefense float64
	MilitaryShare  float64
	Stability      float64
	Goal           Goal
}

// SupplyScore computes supply_score, clamped to [0,1].
func SupplyScore(cfg Config, in TickInputs) float64 {
	s := cfg.SupplyBase +
		cfg.LogisticsWeight*in.Logistics +
		cfg.MarketWeight*in.MarketAccess +
		cfg.ControlWeight*in.Control +
		cfg.EnergyWeight*in.Energy +
		cfg.FoodStockWeight*in.FoodStock +
		0.10*in.RoadMobility +
		0.10*in.TerrainDefense
	return clamp01(s)
}

// DemandScore computes demand_score per Section 4.5.
func DemandScore(in TickInputs) float64 {
	d := 0.20 + 1.25*in.MilitaryShare + 0.15*(1-in.RoadMobility)
	if in.Goal == GoalAnnihilation {
		d += 0.25
	}
	return d
}

// TickResult is the outcome of one year's war accounting for one belligerent.
type TickResult struct {
	Overdraw         float64
	ExhaustionDelta  float64
	Attrition        float64 // multiplicative shrink applied to military strength, in [0, 0.30]
	StabilityDelta   float64
	LegitimacyDelta  float64
	FoodStockErosion float64
}

// Tick computes one year of war accounting: supply vs demand, exhaustion
// rise, and — when demand exceeds supply — attrition against military
// strength, stability, legitimacy, and food stock.
func Tick(cfg Config, in TickInputs) TickResult {
	supply := SupplyScore(cfg, in)
	demand := DemandScore(in)
	overdraw := demand - supply
	if overdraw < 0 {
		overdraw = 0
	}

	res := TickResult{Overdraw: overdraw}
	res.ExhaustionDelta = cfg.ExhaustionRise*(0.5+overdraw) +
		cfg.OverSupplyAttrition*overdraw +
		0.02*(1-in.Stability)

	if overdraw > 0 {
		attr := cfg.OverSupplyAttrition * overdraw
		if attr > 0.30 {
			attr = 0.30
		}
		res.Attrition = attr
		res.StabilityDelta = -attr * 0.5
		res.LegitimacyDelta = -attr * 0.3
		res.FoodStockErosion = attr * 0.2
	}
	return res
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
