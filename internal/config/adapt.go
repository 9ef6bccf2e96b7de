package config

import (
	"github.com/aeonforge/chronicle/internal/demography"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/war"
)

// ToWarConfig converts the [war] TOML section into internal/war.Config. The
// six named ObjectiveXWeight keys collapse into war.Config's ObjectiveWeight
// array, indexed by war.Goal in declaration order (Raid, BorderShift,
// Tribute, Vassalization, RegimeChange, Annihilation).
func (c Config) ToWarConfig() war.Config {
	w := c.War
	return war.Config{
		SupplyBase:               w.SupplyBase,
		LogisticsWeight:          w.LogisticsWeight,
		MarketWeight:             w.MarketWeight,
		ControlWeight:            w.ControlWeight,
		EnergyWeight:             w.EnergyWeight,
		FoodStockWeight:          w.FoodStockWeight,
		OverSupplyAttrition:      w.OverSupplyAttrition,
		TerrainDefenseWeight:     w.TerrainDefenseWeight,
		ExhaustionRise:           w.ExhaustionRise,
		ExhaustionPeaceThreshold: w.ExhaustionPeaceThreshold,
		ObjectiveWeight: [6]float64{
			w.ObjectiveRaidWeight,
			w.ObjectiveBorderShiftWeight,
			w.ObjectiveTributeWeight,
			w.ObjectiveVassalizationWeight,
			w.ObjectiveRegimeChangeWeight,
			w.ObjectiveAnnihilationWeight,
		},
		CooldownMinYears:                w.CooldownMinYears,
		CooldownMaxYears:                w.CooldownMaxYears,
		PeaceStabilityFloor:             w.PeaceStabilityFloor,
		PeaceLegitimacyFloor:            w.PeaceLegitimacyFloor,
		MaxConcurrentWars:               w.MaxConcurrentWars,
		OpportunisticWarThreshold:       w.OpportunisticWarThreshold,
		LeaderAmbitionWarWeight:         w.LeaderAmbitionWarWeight,
		WeakStatePredationWeight:        w.WeakStatePredationWeight,
		EarlyAnnihilationBias:           w.EarlyAnnihilationBias,
		HighInstitutionAnnihilationDamp: w.HighInstitutionAnnihilationDamp,
	}
}

// ToPolityConfig converts the [polity] TOML section into internal/polity.Config.
func (c Config) ToPolityConfig() polity.Config {
	p := c.Polity
	return polity.Config{
		RegionCountMin:             p.RegionCountMin,
		RegionCountMax:             p.RegionCountMax,
		SuccessionIntervalMinYears: p.SuccessionIntervalMinYears,
		SuccessionIntervalMaxYears: p.SuccessionIntervalMaxYears,
		EliteDefectionSensitivity:  p.EliteDefectionSensitivity,
		YearlyWarStabilityHit:      p.YearlyWarStabilityHit,
		YearlyPlagueStabilityHit:   p.YearlyPlagueStabilityHit,
		YearlyStagnationHit:        p.YearlyStagnationHit,
		PeaceRecoveryLowGrowth:     p.PeaceRecoveryLowGrowth,
		PeaceRecoveryHighGrowth:    p.PeaceRecoveryHighGrowth,
		ResilienceRecovery:         p.ResilienceRecovery,
		LegitimacyRecovery:         p.LegitimacyRecovery,
	}
}

// ToTechConfig converts the [tech] TOML section into internal/tech.Config.
func (c Config) ToTechConfig() tech.Config {
	t := c.Tech
	return tech.Config{
		DiscoveryBase:             t.DiscoveryBase,
		DiscoveryDifficultyScale:  t.DiscoveryDifficultyScale,
		AdoptionBaseSpeed:         t.AdoptionBaseSpeed,
		AdoptionDecayBase:         t.AdoptionDecayBase,
		AdoptionThreshold:         float32(t.AdoptionThreshold),
		CollapseDecayMultiplier:   t.CollapseDecayMultiplier,
		DiffusionBase:             t.DiffusionBase,
		CulturalFrictionStrength:  t.CulturalFrictionStrength,
		KnownDiffusionBase:        t.KnownDiffusionBase,
		KnownDiffusionTopK:        t.KnownDiffusionTopK,
		PrereqAdoptionFraction:    t.PrereqAdoptionFraction,
		RareForgetYears:           uint16(t.RareForgetYears),
		RareForgetChance:          t.RareForgetChance,
		ResourceReqEnergy:         t.ResourceReqEnergy,
		ResourceReqOre:            t.ResourceReqOre,
		ResourceReqConstruction:   t.ResourceReqConstruction,
		DiscoverySeedAdoption:     float32(t.DiscoverySeedAdoption),
		AdoptionSeedFromNeighbors: float32(t.AdoptionSeedFromNeighbors),
		MaxDiscoveriesPerYear:     t.MaxDiscoveriesPerYear,
	}
}

// ToEconomyConfig converts the [economy] TOML section into internal/economy.Config.
func (c Config) ToEconomyConfig() economy.Config {
	e := c.Economy
	return economy.Config{
		FactorElasticity:          e.FactorElasticity,
		TradeIntensityScale:       e.TradeIntensityScale,
		TradeIntensityMemory:      e.TradeIntensityMemory,
		CreditFrictionWeight:      e.CreditFrictionWeight,
		InformationFrictionWeight: e.InformationFrictionWeight,
		SeaRouteMultiplier:        e.SeaRouteMultiplier,
	}
}

// ToDemographyConfig converts the [food] TOML section into
// internal/demography.Config; the growth-rate bounds are compiled constants.
func (c Config) ToDemographyConfig() demography.Config {
	return demography.Config{
		BaseR:            0.0003,
		MinR:             5e-5,
		MaxR:             0.02,
		CarryingScale:    c.Food.CarryingCapacityScale,
		CapitalFoodFloor: c.Food.CapitalFoodFloor,
	}
}

// ToPlagueConfig converts the [disease] TOML section into
// internal/demography.PlagueConfig.
func (c Config) ToPlagueConfig() demography.PlagueConfig {
	d := c.Disease
	return demography.PlagueConfig{
		IntervalMinYears: d.PlagueIntervalMin,
		IntervalMaxYears: d.PlagueIntervalMax,
		DurationYears:    d.PlagueDurationYears,
		MortalityBase:    d.PlagueMortalityBase,
	}
}
