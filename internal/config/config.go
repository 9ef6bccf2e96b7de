// Package config loads the simulation's TOML configuration file, matching
// the sections and keys enumerated in design doc Section 6. Unknown keys
// are ignored; missing keys fall back to the compiled defaults below, and
// a config load failure never prevents a run — it only gets logged.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// World holds [world] section keys.
type World struct {
	YearsPerTick                  int    `toml:"yearsPerTick"`
	StartYear                     int    `toml:"startYear"`
	EndYear                       int    `toml:"endYear"`
	RNGSeedMode                   string `toml:"rngSeedMode"` // "fixed" | "random"
	DeterministicMode             bool   `toml:"deterministicMode"`
	DeterministicOverseasFallback string `toml:"deterministicOverseasFallback"` // "on" | "off" | "auto"
}

// Food holds [food] section keys.
type Food struct {
	CapitalFoodFloor      float32 `toml:"capitalFoodFloor"`
	CarryingCapacityScale float64 `toml:"carryingCapacityScale"`
}

// Resources holds [resources] section keys.
type Resources struct {
	OreRegenRate          float64 `toml:"oreRegenRate"`
	EnergyRegenRate       float64 `toml:"energyRegenRate"`
	ConstructionRegenRate float64 `toml:"constructionRegenRate"`
}

// Migration holds [migration] section keys (currently reserved for
// seasonal-migration style extensions beyond the core's scope).
type Migration struct {
	Enabled bool `toml:"enabled"`
}

// Disease holds [disease] section keys.
type Disease struct {
	PlagueIntervalMin   int     `toml:"plagueIntervalMin"`
	PlagueIntervalMax   int     `toml:"plagueIntervalMax"`
	PlagueDurationYears int     `toml:"plagueDurationYears"`
	PlagueMortalityBase float64 `toml:"plagueMortalityBase"`
}

// War holds [war] section keys.
type War struct {
	SupplyBase                      float64 `toml:"supplyBase"`
	LogisticsWeight                 float64 `toml:"logisticsWeight"`
	MarketWeight                    float64 `toml:"marketWeight"`
	ControlWeight                   float64 `toml:"controlWeight"`
	EnergyWeight                    float64 `toml:"energyWeight"`
	FoodStockWeight                 float64 `toml:"foodStockWeight"`
	OverSupplyAttrition             float64 `toml:"overSupplyAttrition"`
	TerrainDefenseWeight            float64 `toml:"terrainDefenseWeight"`
	ExhaustionRise                  float64 `toml:"exhaustionRise"`
	ExhaustionPeaceThreshold        float64 `toml:"exhaustionPeaceThreshold"`
	ObjectiveRaidWeight             float64 `toml:"objectiveRaidWeight"`
	ObjectiveBorderShiftWeight      float64 `toml:"objectiveBorderShiftWeight"`
	ObjectiveTributeWeight          float64 `toml:"objectiveTributeWeight"`
	ObjectiveVassalizationWeight    float64 `toml:"objectiveVassalizationWeight"`
	ObjectiveRegimeChangeWeight     float64 `toml:"objectiveRegimeChangeWeight"`
	ObjectiveAnnihilationWeight     float64 `toml:"objectiveAnnihilationWeight"`
	CooldownMinYears                int     `toml:"cooldownMinYears"`
	CooldownMaxYears                int     `toml:"cooldownMaxYears"`
	PeaceStabilityFloor             float64 `toml:"peaceStabilityFloor"`
	PeaceLegitimacyFloor            float64 `toml:"peaceLegitimacyFloor"`
	MaxConcurrentWars               int     `toml:"maxConcurrentWars"`
	OpportunisticWarThreshold       float64 `toml:"opportunisticWarThreshold"`
	LeaderAmbitionWarWeight         float64 `toml:"leaderAmbitionWarWeight"`
	WeakStatePredationWeight        float64 `toml:"weakStatePredationWeight"`
	EarlyAnnihilationBias           float64 `toml:"earlyAnnihilationBias"`
	HighInstitutionAnnihilationDamp float64 `toml:"highInstitutionAnnihilationDamp"`
}

// Polity holds [polity] section keys.
type Polity struct {
	RegionCountMin             int     `toml:"regionCountMin"`
	RegionCountMax             int     `toml:"regionCountMax"`
	SuccessionIntervalMinYears int     `toml:"successionIntervalMinYears"`
	SuccessionIntervalMaxYears int     `toml:"successionIntervalMaxYears"`
	EliteDefectionSensitivity  float64 `toml:"eliteDefectionSensitivity"`
	YearlyWarStabilityHit      float64 `toml:"yearlyWarStabilityHit"`
	YearlyPlagueStabilityHit   float64 `toml:"yearlyPlagueStabilityHit"`
	YearlyStagnationHit        float64 `toml:"yearlyStagnationHit"`
	PeaceRecoveryLowGrowth     float64 `toml:"peaceRecoveryLowGrowth"`
	PeaceRecoveryHighGrowth    float64 `toml:"peaceRecoveryHighGrowth"`
	ResilienceRecovery         float64 `toml:"resilienceRecovery"`
	LegitimacyRecovery         float64 `toml:"legitimacyRecovery"`
}

// Economy holds [economy] section keys.
type Economy struct {
	FactorElasticity          float64 `toml:"factorElasticity"`
	TradeIntensityScale       float64 `toml:"tradeIntensityScale"`
	TradeIntensityMemory      float64 `toml:"tradeIntensityMemory"`
	CreditFrictionWeight      float64 `toml:"creditFrictionWeight"`
	InformationFrictionWeight float64 `toml:"informationFrictionWeight"`
	SeaRouteMultiplier        float64 `toml:"seaRouteMultiplier"`
}

// Scoring holds [scoring] section keys (external collaborator surface;
// the core computes the raw indices and leaves weighting to callers).
type Scoring struct {
	PopulationWeight float64 `toml:"populationWeight"`
	TerritoryWeight  float64 `toml:"territoryWeight"`
	TechWeight       float64 `toml:"techWeight"`
}

// Config is the root TOML document.
type Config struct {
	World     World       `toml:"world"`
	Food      Food        `toml:"food"`
	Resources Resources   `toml:"resources"`
	Migration Migration   `toml:"migration"`
	Disease   Disease     `toml:"disease"`
	War       War         `toml:"war"`
	Polity    Polity      `toml:"polity"`
	Tech      TechSection `toml:"tech"`
	Economy   Economy     `toml:"economy"`
	Scoring   Scoring     `toml:"scoring"`

	// ContentHash is the sha256 of the raw file bytes that were parsed (or
	// empty if compiled defaults were used because no file was found).
	ContentHash string `toml:"-"`
}

// TechSection mirrors internal/tech.Config with TOML tags; ToTechConfig
// (adapt.go) converts between the two so internal/tech stays free of a
// config-package import.
type TechSection struct {
	DiscoveryBase             float64 `toml:"discoveryBase"`
	DiscoveryDifficultyScale  float64 `toml:"discoveryDifficultyScale"`
	AdoptionBaseSpeed         float64 `toml:"adoptionBaseSpeed"`
	AdoptionDecayBase         float64 `toml:"adoptionDecayBase"`
	AdoptionThreshold         float64 `toml:"adoptionThreshold"`
	CollapseDecayMultiplier   float64 `toml:"collapseDecayMultiplier"`
	DiffusionBase             float64 `toml:"diffusionBase"`
	CulturalFrictionStrength  float64 `toml:"culturalFrictionStrength"`
	KnownDiffusionBase        float64 `toml:"knownDiffusionBase"`
	KnownDiffusionTopK        int     `toml:"knownDiffusionTopK"`
	PrereqAdoptionFraction    float64 `toml:"prereqAdoptionFraction"`
	RareForgetYears           int     `toml:"rareForgetYears"`
	RareForgetChance          float64 `toml:"rareForgetChance"`
	ResourceReqEnergy         float64 `toml:"resourceReqEnergy"`
	ResourceReqOre            float64 `toml:"resourceReqOre"`
	ResourceReqConstruction   float64 `toml:"resourceReqConstruction"`
	DiscoverySeedAdoption     float64 `toml:"discoverySeedAdoption"`
	AdoptionSeedFromNeighbors float64 `toml:"adoptionSeedFromNeighbors"`
	MaxDiscoveriesPerYear     int     `toml:"maxDiscoveriesPerYear"`
}

// Default returns the compiled-default configuration. Every key spec.md
// Section 6 enumerates has a value here so a missing file or a partially
// populated TOML document still yields a runnable config.
func Default() Config {
	return Config{
		World: World{
			YearsPerTick:                  1,
			StartYear:                     -5000,
			EndYear:                       2050,
			RNGSeedMode:                   "fixed",
			DeterministicMode:             true,
			DeterministicOverseasFallback: "auto",
		},
		Food: Food{
			CapitalFoodFloor:      417,
			CarryingCapacityScale: 1200,
		},
		Resources: Resources{
			OreRegenRate:          0.01,
			EnergyRegenRate:       0.01,
			ConstructionRegenRate: 0.02,
		},
		Migration: Migration{Enabled: true},
		Disease: Disease{
			PlagueIntervalMin:   600,
			PlagueIntervalMax:   700,
			PlagueDurationYears: 3,
			PlagueMortalityBase: 0.05,
		},
		War: War{
			SupplyBase: 0.15, LogisticsWeight: 0.25, MarketWeight: 0.15,
			ControlWeight: 0.15, EnergyWeight: 0.10, FoodStockWeight: 0.10,
			OverSupplyAttrition: 0.35, TerrainDefenseWeight: 0.10,
			ExhaustionRise: 0.08, ExhaustionPeaceThreshold: 0.75,
			ObjectiveRaidWeight: 1.0, ObjectiveBorderShiftWeight: 1.0,
			ObjectiveTributeWeight: 1.0, ObjectiveVassalizationWeight: 1.0,
			ObjectiveRegimeChangeWeight: 1.0, ObjectiveAnnihilationWeight: 1.0,
			CooldownMinYears: 5, CooldownMaxYears: 20,
			PeaceStabilityFloor: 0.18, PeaceLegitimacyFloor: 0.12,
			MaxConcurrentWars: 5, OpportunisticWarThreshold: 1.08,
			LeaderAmbitionWarWeight: 0.3, WeakStatePredationWeight: 0.3,
			EarlyAnnihilationBias: 0.2, HighInstitutionAnnihilationDamp: 0.4,
		},
		Polity: Polity{
			RegionCountMin: 1, RegionCountMax: 6,
			SuccessionIntervalMinYears: 10, SuccessionIntervalMaxYears: 40,
			EliteDefectionSensitivity: 0.5,
			YearlyWarStabilityHit:     0.05, YearlyPlagueStabilityHit: 0.04,
			YearlyStagnationHit:    0.02,
			PeaceRecoveryLowGrowth: 0.01, PeaceRecoveryHighGrowth: 0.015,
			ResilienceRecovery: 0.02, LegitimacyRecovery: 0.015,
		},
		Tech: TechSection{
			DiscoveryBase: 0.02, DiscoveryDifficultyScale: 4.0,
			AdoptionBaseSpeed: 0.35, AdoptionDecayBase: 0.08,
			AdoptionThreshold: 0.55, CollapseDecayMultiplier: 2.5,
			DiffusionBase: 0.05, CulturalFrictionStrength: 1.2,
			KnownDiffusionBase: 0.04, KnownDiffusionTopK: 5,
			PrereqAdoptionFraction: 0.65, RareForgetYears: 30,
			RareForgetChance: 0.02, ResourceReqEnergy: 1.0,
			ResourceReqOre: 1.0, ResourceReqConstruction: 1.0,
			DiscoverySeedAdoption: 0.05, AdoptionSeedFromNeighbors: 0.08,
			MaxDiscoveriesPerYear: 3,
		},
		Economy: Economy{
			FactorElasticity: 0.5, TradeIntensityScale: 1.0,
			TradeIntensityMemory: 0.9, CreditFrictionWeight: 0.3,
			InformationFrictionWeight: 0.3, SeaRouteMultiplier: 1.25,
		},
		Scoring: Scoring{PopulationWeight: 1, TerritoryWeight: 1, TechWeight: 1},
	}
}

// Load reads and parses a TOML config file at path. A missing or
// unparseable file is logged and compiled defaults are returned — per
// Section 7, a config error never prevents the simulation from starting.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config file unreadable, using compiled defaults", "path", path, "error", err)
		return cfg
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("config file unparseable, using compiled defaults", "path", path, "error", err)
		return Default()
	}

	sum := sha256.Sum256(data)
	cfg.ContentHash = hex.EncodeToString(sum[:])
	return cfg
}
