package demography

// PlagueConfig groups the [disease] TOML parameters.
type PlagueConfig struct {
	IntervalMinYears int
	IntervalMaxYears int
	DurationYears    int
	MortalityBase    float64
}

// DefaultPlagueConfig returns compiled defaults.
func DefaultPlagueConfig() PlagueConfig {
	return PlagueConfig{IntervalMinYears: 600, IntervalMaxYears: 700, DurationYears: 3, MortalityBase: 0.05}
}

// PlagueState tracks the single world plague's lifecycle.
type PlagueState struct {
	Active        bool
	StartYear     int
	NextYear      int
	AffectedOnset map[int32]struct{} // polity indices affected, fixed at plague start (see design notes open question)
}

// NewPlagueState seeds the first scheduled plague year.
func NewPlagueState(firstYear int) PlagueState {
	return PlagueState{NextYear: firstYear, AffectedOnset: make(map[int32]struct{})}
}

// Start begins a plague, fixing affected-polity membership at onset per the
// design notes' documented (non-recomputed) behavior. recomputeEachYear, if
// true, instead leaves AffectedOnset nil so callers recompute membership
// every year — the toggle the design notes ask to expose for experimentation.
func Start(s *PlagueState, year int, affected []int32, recomputeEachYear bool) {
	s.Active = true
	s.StartYear = year
	if recomputeEachYear {
		s.AffectedOnset = nil
		return
	}
	s.AffectedOnset = make(map[int32]struct{}, len(affected))
	for _, i := range affected {
		s.AffectedOnset[i] = struct{}{}
	}
}

// ShouldEnd reports whether the plague, started 3 years ago, should end now.
func ShouldEnd(s PlagueState, cfg PlagueConfig, year int) bool {
	return s.Active && year-s.StartYear >= cfg.DurationYears
}

// End closes out the plague and schedules the next one 600-700 years out
// (the draw in [0,1) selects within that window).
func End(s *PlagueState, year int, cfg PlagueConfig, draw float64) {
	s.Active = false
	span := cfg.IntervalMaxYears - cfg.IntervalMinYears
	next := cfg.IntervalMinYears + int(draw*float64(span+1))
	s.NextYear = year + next
	s.AffectedOnset = nil
}

// Affected reports whether polity i is affected this year, given the onset
// membership (or, if nil, a caller-supplied live recompute predicate).
func Affected(s PlagueState, i int32, recompute func(int32) bool) bool {
	if !s.Active {
		return false
	}
	if s.AffectedOnset == nil {
		if recompute == nil {
			return true
		}
		return recompute(i)
	}
	_, ok := s.AffectedOnset[i]
	return ok
}

// Deaths computes plague deaths for one affected polity this year:
// P * 0.05 * plague_mortality_multiplier, where the multiplier is reduced
// by Sanitation/Vaccination/Penicillin (folded into plagueResistance, 0..1,
// by the caller via tech.Aggregate.PlagueResistance).
func Deaths(cfg PlagueConfig, population int64, plagueResistance float64) int64 {
	mult := 1 - plagueResistance
	if mult < 0 {
		mult = 0
	}
	deaths := float64(population) * cfg.MortalityBase * mult
	if deaths < 0 {
		return 0
	}
	return int64(deaths)
}
