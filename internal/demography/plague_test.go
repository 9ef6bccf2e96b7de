package demography

import "testing"

func TestStartFixesMembershipAtOnset(t *testing.T) {
	s := NewPlagueState(2000)
	Start(&s, 1000, []int32{1, 3, 5}, false)
	if !s.Active {
		t.Fatal("expected plague to be active after Start")
	}
	for _, want := range []int32{1, 3, 5} {
		if !Affected(s, want, nil) {
			t.Errorf("expected polity %d to be affected", want)
		}
	}
	if Affected(s, 2, nil) {
		t.Error("expected polity 2, not in the onset list, to be unaffected")
	}
}

func TestStartWithRecomputeEachYearLeavesMembershipOpen(t *testing.T) {
	s := NewPlagueState(2000)
	Start(&s, 1000, []int32{1}, true)
	if s.AffectedOnset != nil {
		t.Fatal("expected AffectedOnset to be nil when recomputeEachYear is true")
	}
	if !Affected(s, 99, nil) {
		t.Fatal("expected Affected to default to true with no recompute function and nil onset")
	}
	called := false
	Affected(s, 99, func(int32) bool { called = true; return false })
	if !called {
		t.Fatal("expected the recompute callback to be invoked")
	}
}

func TestShouldEndAfterDuration(t *testing.T) {
	cfg := DefaultPlagueConfig()
	s := NewPlagueState(2000)
	Start(&s, 1000, []int32{1}, false)
	if ShouldEnd(s, cfg, 1000+cfg.DurationYears-1) {
		t.Fatal("expected plague not to end before its duration elapses")
	}
	if !ShouldEnd(s, cfg, 1000+cfg.DurationYears) {
		t.Fatal("expected plague to end once its duration elapses")
	}
}

func TestEndSchedulesNextWithinConfiguredWindow(t *testing.T) {
	cfg := DefaultPlagueConfig()
	s := NewPlagueState(2000)
	Start(&s, 1000, []int32{1}, false)
	End(&s, 1003, cfg, 0)
	if s.Active {
		t.Fatal("expected plague to be inactive after End")
	}
	minNext := 1003 + cfg.IntervalMinYears
	maxNext := 1003 + cfg.IntervalMaxYears
	if s.NextYear < minNext || s.NextYear > maxNext {
		t.Fatalf("next plague year %d outside [%d,%d]", s.NextYear, minNext, maxNext)
	}
	if s.AffectedOnset != nil {
		t.Fatal("expected onset membership to be cleared after End")
	}
}

func TestDeathsReducedByResistance(t *testing.T) {
	cfg := DefaultPlagueConfig()
	noResistance := Deaths(cfg, 100000, 0)
	fullResistance := Deaths(cfg, 100000, 1)
	if fullResistance != 0 {
		t.Fatalf("expected full resistance to eliminate deaths, got %d", fullResistance)
	}
	if noResistance <= 0 {
		t.Fatalf("expected positive deaths with no resistance, got %d", noResistance)
	}
}

func TestDeathsNeverNegativeWithResistanceAboveOne(t *testing.T) {
	cfg := DefaultPlagueConfig()
	if got := Deaths(cfg, 1000, 2); got < 0 {
		t.Fatalf("expected Deaths to clamp at 0, got %d", got)
	}
}
