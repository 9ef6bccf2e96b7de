package tech

import "testing"

func fullIndicators() Indicators {
	return Indicators{
		Institution: 1, Stability: 1, Legitimacy: 1, MarketAccess: 1,
		Connectivity: 1, Specialization: 1, Inequality: 0, FoodSecurity: 1,
		IdeaMarket: 1, Credibility: 1, Media: 1, Fragmentation: 1,
	}
}

func TestAdoptionSpeedDampenedByWarAndFamine(t *testing.T) {
	cfg := DefaultConfig()
	calm := AdoptionSpeed(cfg, fullIndicators(), InducedNone)

	war := fullIndicators()
	war.AtWar = true
	warSpeed := AdoptionSpeed(cfg, war, InducedNone)
	if warSpeed >= calm {
		t.Fatalf("expected war to dampen adoption speed, calm=%v war=%v", calm, warSpeed)
	}

	famine := fullIndicators()
	famine.Famine = true
	famineSpeed := AdoptionSpeed(cfg, famine, InducedNone)
	if famineSpeed >= calm {
		t.Fatalf("expected famine to dampen adoption speed, calm=%v famine=%v", calm, famineSpeed)
	}
}

func TestUpdateAdoptionAndLossSkipsUnknownTech(t *testing.T) {
	dag := NewDAG([]Tech{{ID: 0, Name: "root"}})
	cfg := DefaultConfig()
	s := NewState(1)
	forgotten := UpdateAdoptionAndLoss(dag, cfg, s, 0, fullIndicators(), 1, 1, 1, 1000, 1, func(int, uint64) float64 { return 1 })
	if forgotten {
		t.Fatal("expected an unknown tech never to be reported as forgotten")
	}
	if s.Adoption[0] != 0 {
		t.Fatalf("expected adoption to stay at 0 for an unknown tech, got %v", s.Adoption[0])
	}
}

func TestUpdateAdoptionAndLossGrowsWhenFeasible(t *testing.T) {
	dag := NewDAG([]Tech{{ID: 0, Name: "root"}})
	cfg := DefaultConfig()
	s := NewState(1)
	s.Known[0] = true
	s.Adoption[0] = 0.1
	UpdateAdoptionAndLoss(dag, cfg, s, 0, fullIndicators(), 1, 1, 1, 1000, 1, func(int, uint64) float64 { return 1 })
	if s.Adoption[0] <= 0.1 {
		t.Fatalf("expected adoption to grow under favorable indicators, got %v", s.Adoption[0])
	}
}

func TestUpdateAdoptionAndLossDecaysWhenInfeasible(t *testing.T) {
	dag := NewDAG([]Tech{{ID: 0, Name: "root", Gates: Gates{RequiresEnergy: true}}})
	cfg := DefaultConfig()
	s := NewState(1)
	s.Known[0] = true
	s.Adoption[0] = 0.8
	UpdateAdoptionAndLoss(dag, cfg, s, 0, fullIndicators(), 0 /* no energy */, 1, 1, 1000, 1, func(int, uint64) float64 { return 1 })
	if s.Adoption[0] >= 0.8 {
		t.Fatalf("expected adoption to decay when infeasible, got %v", s.Adoption[0])
	}
}

func TestUpdateAdoptionAndLossDecaysWhenPrereqAdoptionTooLow(t *testing.T) {
	dag := NewDAG([]Tech{
		{ID: 0, Name: "root"},
		{ID: 1, Name: "child", Prereqs: []ID{0}},
	})
	cfg := DefaultConfig()
	s := NewState(2)
	s.Known[0] = true
	s.Adoption[0] = 0.1 // below the 0.65*0.65 prereq-adoption floor
	s.Known[1] = true
	s.Adoption[1] = 0.8
	UpdateAdoptionAndLoss(dag, cfg, s, 1, fullIndicators(), 1, 1, 1, 1000, 1, func(int, uint64) float64 { return 1 })
	if s.Adoption[1] >= 0.8 {
		t.Fatalf("expected the dependent tech's adoption to decay when its prereq's adoption is too low, got %v", s.Adoption[1])
	}
}

func TestUpdateAdoptionAndLossRareForgettingRequiresSmallDisconnectedPolity(t *testing.T) {
	dag := NewDAG([]Tech{{ID: 0, Name: "root", Gates: Gates{RequiresEnergy: true}}})
	cfg := DefaultConfig()
	cfg.RareForgetYears = 1
	cfg.RareForgetChance = 1.0

	s := NewState(1)
	s.Known[0] = true
	s.Adoption[0] = 0.01
	s.LowAdoptionYears[0] = cfg.RareForgetYears

	ind := fullIndicators()
	ind.Connectivity = 0.01 // isolated, required for rare forgetting

	forgotten := UpdateAdoptionAndLoss(dag, cfg, s, 0, ind, 0, 1, 1, 500, 1, func(int, uint64) float64 { return 0 })
	if !forgotten {
		t.Fatal("expected rare forgetting to trigger for a small, isolated polity stuck at low adoption")
	}
	if s.Known[0] {
		t.Fatal("expected the tech to be marked unknown after forgetting")
	}
}

func TestUpdateAdoptionAndLossRareForgettingBlockedForLargePopulation(t *testing.T) {
	dag := NewDAG([]Tech{{ID: 0, Name: "root", Gates: Gates{RequiresEnergy: true}}})
	cfg := DefaultConfig()
	cfg.RareForgetYears = 1
	cfg.RareForgetChance = 1.0

	s := NewState(1)
	s.Known[0] = true
	s.Adoption[0] = 0.01
	s.LowAdoptionYears[0] = cfg.RareForgetYears

	ind := fullIndicators()
	ind.Connectivity = 0.01

	forgotten := UpdateAdoptionAndLoss(dag, cfg, s, 0, ind, 0, 1, 1, 1_000_000, 1, func(int, uint64) float64 { return 0 })
	if forgotten {
		t.Fatal("expected a large population to be exempt from rare forgetting regardless of adoption history")
	}
}
