package war

import "testing"

func TestCanDeclareBaseline(t *testing.T) {
	cfg := DefaultConfig()
	aggressor := State{}
	in := DeclareInputs{AggressorStability: 0.5, AggressorLegitimacy: 0.5, AggressorPopulation: 1000}
	if !CanDeclare(cfg, aggressor, in) {
		t.Fatal("expected a healthy aggressor with no outstanding peace duration to be able to declare war")
	}
}

func TestCanDeclareRejectsLowStabilityOrLegitimacy(t *testing.T) {
	cfg := DefaultConfig()
	aggressor := State{}
	cases := []DeclareInputs{
		{AggressorStability: 0.1, AggressorLegitimacy: 0.5, AggressorPopulation: 1000},
		{AggressorStability: 0.5, AggressorLegitimacy: 0.05, AggressorPopulation: 1000},
		{AggressorStability: 0.5, AggressorLegitimacy: 0.5, AggressorPopulation: 0},
	}
	for i, in := range cases {
		if CanDeclare(cfg, aggressor, in) {
			t.Errorf("case %d: expected declaration to be rejected", i)
		}
	}
}

func TestCanDeclareRejectsSelfAndDeadTarget(t *testing.T) {
	cfg := DefaultConfig()
	aggressor := State{}
	base := DeclareInputs{AggressorStability: 0.5, AggressorLegitimacy: 0.5, AggressorPopulation: 1000}
	same := base
	same.SameIndex = true
	if CanDeclare(cfg, aggressor, same) {
		t.Error("expected self-declaration to be rejected")
	}
	dead := base
	dead.TargetDead = true
	if CanDeclare(cfg, aggressor, dead) {
		t.Error("expected declaring war on a dead target to be rejected")
	}
}

func TestCanDeclareRejectsDuringActivePeace(t *testing.T) {
	cfg := DefaultConfig()
	aggressor := State{PeaceDuration: 3}
	in := DeclareInputs{AggressorStability: 0.5, AggressorLegitimacy: 0.5, AggressorPopulation: 1000}
	if CanDeclare(cfg, aggressor, in) {
		t.Fatal("expected a nonzero peace duration to block a new declaration")
	}
}

func TestCanDeclareRejectsAtMaxConcurrentWars(t *testing.T) {
	cfg := DefaultConfig()
	aggressor := State{Enemies: make([]int32, cfg.MaxConcurrentWars)}
	in := DeclareInputs{AggressorStability: 0.5, AggressorLegitimacy: 0.5, AggressorPopulation: 1000}
	if CanDeclare(cfg, aggressor, in) {
		t.Fatal("expected max concurrent wars to block a new declaration")
	}
}

func TestDeclareUpdatesBothSidesSymmetrically(t *testing.T) {
	a, b := &State{}, &State{}
	Declare(a, b, 1, 2, GoalRaid, 10)
	if !a.IsAtWar || !b.IsAtWar {
		t.Fatal("expected both sides to be marked at war")
	}
	if len(a.Enemies) != 1 || a.Enemies[0] != 2 {
		t.Fatalf("expected aggressor enemies [2], got %v", a.Enemies)
	}
	if len(b.Enemies) != 1 || b.Enemies[0] != 1 {
		t.Fatalf("expected target enemies [1], got %v", b.Enemies)
	}
	if a.WarDuration != 10 || b.WarDuration != 10 {
		t.Fatalf("expected both sides to share the computed duration, got %d and %d", a.WarDuration, b.WarDuration)
	}
}

func TestDeclareKeepsEnemiesSorted(t *testing.T) {
	a := &State{Enemies: []int32{1, 5}}
	b := &State{}
	Declare(a, b, 0, 3, GoalRaid, 10)
	want := []int32{1, 3, 5}
	if len(a.Enemies) != len(want) {
		t.Fatalf("want %v, got %v", want, a.Enemies)
	}
	for i := range want {
		if a.Enemies[i] != want[i] {
			t.Fatalf("want %v, got %v", want, a.Enemies)
		}
	}
}

func TestSelectGoalFallsBackToRaidWhenAllWeightsZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ObjectiveWeight = [6]float64{0, 0, 0, 0, 0, 0}
	got := SelectGoal(cfg, GoalInputs{}, 0.5)
	if got != GoalRaid {
		t.Fatalf("expected GoalRaid fallback, got %v", got)
	}
}

func TestDurationClampsToConfiguredRange(t *testing.T) {
	if d := Duration(10, 1, 0); d > 36 || d < 6 {
		t.Errorf("expected duration within [6,36], got %d", d)
	}
	if d := Duration(0.1, 0, 0); d > 36 {
		t.Errorf("expected duration clamped at 36, got %d", d)
	}
	if d := Duration(10, 1, 0.9); d < 1 {
		t.Errorf("expected duration clamped at a minimum of 1, got %d", d)
	}
}
