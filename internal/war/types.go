// Package war implements the war lifecycle: declaration, per-tick supply
// and exhaustion accounting, ending, and annihilation absorption.
// See design doc Section 4.5.
package war

// Goal enumerates the reasons a war was declared.
type Goal uint8

const (
	GoalRaid Goal = iota
	GoalBorderShift
	GoalTribute
	GoalVassalization
	GoalRegimeChange
	GoalAnnihilation
)

// State tracks one polity's belligerency. Enemies holds polity indices,
// kept sorted for deterministic snapshotting (Section 9).
type State struct {
	IsAtWar          bool
	WarDuration      int
	PeaceDuration    int
	WarExhaustion    float64
	ConquestMomentum float64
	ActiveWarGoal    Goal
	Enemies          []int32
}

// Config groups the [war] TOML parameters.
type Config struct {
	SupplyBase                      float64
	LogisticsWeight                 float64
	MarketWeight                    float64
	ControlWeight                   float64
	EnergyWeight                    float64
	FoodStockWeight                 float64
	OverSupplyAttrition             float64
	TerrainDefenseWeight            float64
	ExhaustionRise                  float64
	ExhaustionPeaceThreshold        float64
	ObjectiveWeight                 [6]float64 // indexed by Goal
	CooldownMinYears                int
	CooldownMaxYears                int
	PeaceStabilityFloor             float64
	PeaceLegitimacyFloor            float64
	MaxConcurrentWars               int
	OpportunisticWarThreshold       float64
	LeaderAmbitionWarWeight         float64
	WeakStatePredationWeight        float64
	EarlyAnnihilationBias           float64
	HighInstitutionAnnihilationDamp float64
}

// DefaultConfig returns compiled defaults.
func DefaultConfig() Config {
	return Config{
		SupplyBase: 0.15, LogisticsWeight: 0.25, MarketWeight: 0.15,
		ControlWeight: 0.15, EnergyWeight: 0.10, FoodStockWeight: 0.10,
		OverSupplyAttrition: 0.35, TerrainDefenseWeight: 0.10,
		ExhaustionRise: 0.08, ExhaustionPeaceThreshold: 0.75,
		ObjectiveWeight:  [6]float64{1, 1, 1, 1, 1, 1},
		CooldownMinYears: 5, CooldownMaxYears: 20,
		PeaceStabilityFloor: 0.18, PeaceLegitimacyFloor: 0.12,
		MaxConcurrentWars: 5, OpportunisticWarThreshold: 1.08,
		LeaderAmbitionWarWeight: 0.3, WeakStatePredationWeight: 0.3,
		EarlyAnnihilationBias: 0.2, HighInstitutionAnnihilationDamp: 0.4,
	}
}
