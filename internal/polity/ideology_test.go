package polity

import (
	"testing"

	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/tech"
)

func TestCheckIdeologyTransitionOnlyRunsOnCadence(t *testing.T) {
	p := &Polity{
		Ideology:   Tribal,
		Population: 1_000_000,
		Knowledge:  tech.NewState(50),
		RNG:        entropy.SeedPolityRNG(1, 0),
	}
	p.Macro.InstitutionCap = 1
	checkIdeologyTransition(p, IdeologyCadenceYears-1)
	if p.Ideology != Tribal {
		t.Fatalf("expected no transition off-cadence, got %v", p.Ideology)
	}
}

func TestCheckIdeologyTransitionTribalToChiefdomNeedsNoGate(t *testing.T) {
	p := &Polity{
		Ideology:   Tribal,
		Population: 5_000,
		Knowledge:  tech.NewState(50),
		RNG:        entropy.SeedPolityRNG(1, 0),
	}
	p.Macro.InstitutionCap = 0.5
	checkIdeologyTransition(p, IdeologyCadenceYears)
	if p.Ideology != Chiefdom {
		t.Fatalf("expected a well-populated, institutionally capable tribe to transition to Chiefdom, got %v", p.Ideology)
	}
}

func TestCheckIdeologyTransitionBlockedBelowPopulationThreshold(t *testing.T) {
	p := &Polity{
		Ideology:   Tribal,
		Population: 100, // below Chiefdom's minPop
		Knowledge:  tech.NewState(50),
		RNG:        entropy.SeedPolityRNG(1, 0),
	}
	p.Macro.InstitutionCap = 1
	checkIdeologyTransition(p, IdeologyCadenceYears)
	if p.Ideology != Tribal {
		t.Fatalf("expected an underpopulated tribe to remain Tribal, got %v", p.Ideology)
	}
}

func TestCheckIdeologyTransitionBlockedByMissingGate(t *testing.T) {
	p := &Polity{
		Ideology:   Chiefdom,
		Population: 1_000_000,
		Knowledge:  tech.NewState(50), // CivilService not unlocked
		RNG:        entropy.SeedPolityRNG(1, 0),
	}
	p.Macro.InstitutionCap = 1
	checkIdeologyTransition(p, IdeologyCadenceYears)
	if p.Ideology != Chiefdom {
		t.Fatalf("expected a Chiefdom without Civil Service to remain a Chiefdom, got %v", p.Ideology)
	}
}

func TestCheckIdeologyTransitionProceedsOnceGateUnlocked(t *testing.T) {
	ks := tech.NewState(50)
	ks.Known[tech.CivilService] = true
	ks.Adoption[tech.CivilService] = 1
	p := &Polity{
		Ideology:   Chiefdom,
		Population: 1_000_000,
		Knowledge:  ks,
		RNG:        entropy.SeedPolityRNG(1, 0),
	}
	p.Macro.InstitutionCap = 1
	checkIdeologyTransition(p, IdeologyCadenceYears)
	if p.Ideology != Kingdom {
		t.Fatalf("expected Civil Service to unlock the Chiefdom-to-Kingdom transition, got %v", p.Ideology)
	}
}
