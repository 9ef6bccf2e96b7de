package config

import "testing"

func TestToWarConfigCarriesObjectiveWeights(t *testing.T) {
	cfg := Default().ToWarConfig()
	if cfg.MaxConcurrentWars != Default().War.MaxConcurrentWars {
		t.Fatalf("expected MaxConcurrentWars to carry over, got %d", cfg.MaxConcurrentWars)
	}
	for _, w := range cfg.ObjectiveWeight {
		if w != 1.0 {
			t.Fatalf("expected the compiled defaults' unit objective weights to carry over, got %v", cfg.ObjectiveWeight)
		}
	}
}

func TestToPolityConfigRegionBounds(t *testing.T) {
	cfg := Default().ToPolityConfig()
	if cfg.RegionCountMin != 1 || cfg.RegionCountMax != 6 {
		t.Fatalf("want RegionCountMin=1 RegionCountMax=6, got %d/%d", cfg.RegionCountMin, cfg.RegionCountMax)
	}
}

func TestToTechConfigCarriesDiscoveryParams(t *testing.T) {
	cfg := Default().ToTechConfig()
	if cfg.DiscoveryBase != 0.02 {
		t.Fatalf("expected DiscoveryBase 0.02, got %v", cfg.DiscoveryBase)
	}
	if cfg.KnownDiffusionTopK != 5 {
		t.Fatalf("expected KnownDiffusionTopK 5, got %d", cfg.KnownDiffusionTopK)
	}
}

func TestToEconomyConfigMatchesDefault(t *testing.T) {
	cfg := Default().ToEconomyConfig()
	if cfg.SeaRouteMultiplier != 1.25 {
		t.Fatalf("expected SeaRouteMultiplier 1.25, got %v", cfg.SeaRouteMultiplier)
	}
}

func TestToPlagueConfigMatchesDiseaseSection(t *testing.T) {
	cfg := Default().ToPlagueConfig()
	d := Default().Disease
	if cfg.IntervalMinYears != d.PlagueIntervalMin || cfg.IntervalMaxYears != d.PlagueIntervalMax ||
		cfg.DurationYears != d.PlagueDurationYears || cfg.MortalityBase != d.PlagueMortalityBase {
		t.Fatalf("plague config did not carry over from the disease section: %+v vs %+v", cfg, d)
	}
}
