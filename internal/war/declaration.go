package war

import "sort"

// DeclareInputs bundles the scalars CanDeclare and SelectGoal need. The
// caller (polity package) assembles these from both sides' Polity state;
// war itself never imports polity, to keep the dependency graph acyclic.
type DeclareInputs struct {
	AggressorStability  float64
	AggressorLegitimacy float64
	AggressorPopulation int64
	TargetDead          bool
	SameIndex           bool
}

// CanDeclare implements can_declare_war: peace_duration==0, stability>=0.18,
// legitimacy>=0.12, pop>0, enemies<5, no self-declaration, no dead target.
func CanDeclare(cfg Config, aggressor State, in DeclareInputs) bool {
	if in.SameIndex || in.TargetDead {
		return false
	}
	if aggressor.PeaceDuration != 0 {
		return false
	}
	if in.AggressorStability < 0.18 || in.AggressorLegitimacy < 0.12 {
		return false
	}
	if in.AggressorPopulation <= 0 {
		return false
	}
	if len(aggressor.Enemies) >= cfg.MaxConcurrentWars {
		return false
	}
	return true
}

// GoalInputs bundles the scalar drivers of goal-selection weights, one set
// per candidate goal, per Section 4.5's listed weight composition.
type GoalInputs struct {
	Scarcity           float64
	IsTribal           bool
	Institution        float64
	LeaderAmbition     float64
	ImperialWindow     float64
	TargetWeakness     float64
	LegitimacyPressure float64
	TargetIllegitimacy float64
	PowerRatio         float64 // aggressor strength / target strength
}

// weights returns the six unnormalized objective weights in Goal order.
func weights(cfg Config, in GoalInputs) [6]float64 {
	var w [6]float64

	raid := in.Scarcity
	if in.IsTribal {
		raid += 0.5
	}
	w[GoalRaid] = raid * cfg.ObjectiveWeight[GoalRaid]

	w[GoalBorderShift] = (in.Institution + in.LeaderAmbition + in.ImperialWindow + in.TargetWeakness) *
		cfg.ObjectiveWeight[GoalBorderShift]

	w[GoalTribute] = (in.Institution + in.TargetWeakness) * cfg.ObjectiveWeight[GoalTribute]

	w[GoalVassalization] = (in.PowerRatio + in.TargetWeakness + in.ImperialWindow) *
		cfg.ObjectiveWeight[GoalVassalization]

	w[GoalRegimeChange] = (in.LegitimacyPressure + in.TargetIllegitimacy) *
		cfg.ObjectiveWeight[GoalRegimeChange]

	annih := cfg.EarlyAnnihilationBias
	if in.PowerRatio > 1.25 {
		annih += in.TargetWeakness * in.LeaderAmbition
	}
	annih += in.ImperialWindow
	annih -= cfg.HighInstitutionAnnihilationDamp * in.Institution
	if annih < 0 {
		annih = 0
	}
	w[GoalAnnihilation] = annih * cfg.ObjectiveWeight[GoalAnnihilation]

	return w
}

// SelectGoal performs weighted selection over the six war goals using a
// single draw in [0,1) supplied by the caller (the deterministic_unit hash,
// salted with SaltWarGoalSelect, so the choice is reproducible regardless of
// scheduling order).
func SelectGoal(cfg Config, in GoalInputs, draw float64) Goal {
	w := weights(cfg, in)
	var total float64
	for _, x := range w {
		if x > 0 {
			total += x
		}
	}
	if total <= 0 {
		return GoalRaid
	}
	target := draw * total
	var cum float64
	for g, x := range w {
		if x <= 0 {
			continue
		}
		cum += x
		if target < cum {
			return Goal(g)
		}
	}
	return GoalAnnihilation
}

// Duration computes the base war duration in years:
// clamp(8 + 10/max(0.6,ratio) + 8*(1-logistics), 6, 36), then reduced by the
// war_duration_reduction tech bonus (already capped at 80% by the caller).
func Duration(powerRatio, logistics, warDurationReduction float64) int {
	r := powerRatio
	if r < 0.6 {
		r = 0.6
	}
	base := 8 + 10/r + 8*(1-logistics)
	if base < 6 {
		base = 6
	}
	if base > 36 {
		base = 36
	}
	base *= 1 - warDurationReduction
	if base < 1 {
		base = 1
	}
	return int(base + 0.5)
}

// insertSorted inserts v into the sorted []int32 slice s if not present.
func insertSorted(s []int32, v int32) []int32 {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i < len(s) && s[i] == v {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// Declare starts a war between aggressor (index aIdx) and target (index
// tIdx): both sides' IsAtWar flips true, enemies lists gain each other
// (kept sorted), peace_duration resets to 0 on both, and war_exhaustion
// resets for the attacker only, per Section 4.5.
func Declare(aggressor, target *State, aIdx, tIdx int32, goal Goal, durationYears int) {
	aggressor.IsAtWar = true
	target.IsAtWar = true
	aggressor.Enemies = insertSorted(aggressor.Enemies, tIdx)
	target.Enemies = insertSorted(target.Enemies, aIdx)
	aggressor.PeaceDuration = 0
	target.PeaceDuration = 0
	aggressor.WarExhaustion = 0
	aggressor.ActiveWarGoal = goal
	aggressor.WarDuration = durationYears
	target.WarDuration = durationYears
}
