package war

// legitimacyShiftByGoal are the one-time legitimacy deltas applied to the
// aggressor when a war ends, indexed by the active goal (Section 4.5).
var legitimacyShiftByGoal = [6]float64{
	GoalRaid:          0,
	GoalBorderShift:   0,
	GoalTribute:       0.02,
	GoalVassalization: 0.01,
	GoalRegimeChange:  -0.01,
	GoalAnnihilation:  -0.04,
}

// EndResult bundles the state changes a war's conclusion applies to the
// aggressor; the caller is responsible for applying the symmetric parts
// (closing the target's enemy link, target-side legitimacy effects are
// left to the polity package, which knows both sides' full state).
type EndResult struct {
	Ended           bool
	LegitimacyDelta float64
	PeaceDuration   int
}

// Advance decrements war_duration by one year, force-ending the war if
// exhaustion has reached the peace threshold, per Section 4.5: "war_duration--;
// if war_exhaustion >= peace_threshold, duration forced to 0".
func Advance(cfg Config, s *State, exhaustionDelta float64) {
	s.WarExhaustion += exhaustionDelta
	if s.WarExhaustion > 1 {
		s.WarExhaustion = 1
	}
	s.WarDuration--
	if s.WarExhaustion >= cfg.ExhaustionPeaceThreshold {
		s.WarDuration = 0
	}
}

// ShouldEnd reports whether a war's duration has run out.
func ShouldEnd(s State) bool { return s.WarDuration <= 0 }

// End closes out one side's belligerency: legitimacy shifts by the goal
// that was pursued, minus 0.08*exhaustion, peace_duration is drawn into
// [cooldownMin, cooldownMax] from the caller-supplied draw in [0,1), and
// the war-lifecycle fields reset. The caller must separately remove this
// polity's index from the other side's Enemies and vice versa.
func End(cfg Config, s *State, draw float64) EndResult {
	delta := legitimacyShiftByGoal[s.ActiveWarGoal] - 0.08*s.WarExhaustion

	span := cfg.CooldownMaxYears - cfg.CooldownMinYears
	peace := cfg.CooldownMinYears
	if span > 0 {
		peace += int(draw * float64(span+1))
	}

	s.IsAtWar = false
	s.WarDuration = 0
	s.WarExhaustion = 0
	s.ConquestMomentum = 0
	s.PeaceDuration = peace

	return EndResult{Ended: true, LegitimacyDelta: delta, PeaceDuration: peace}
}

// RemoveEnemy scrubs idx out of s.Enemies, keeping it sorted and compact.
func RemoveEnemy(s *State, idx int32) {
	out := s.Enemies[:0]
	for _, x := range s.Enemies {
		if x != idx {
			out = append(out, x)
		}
	}
	s.Enemies = out
}
