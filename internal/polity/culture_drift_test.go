package polity

import (
	"testing"

	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/society"
)

func TestApplyCultureDriftRenamesPolityWhenMagnitudeCrossesThreshold(t *testing.T) {
	p := &Polity{
		Index:    2,
		BaseName: "Verdane",
		Name:     "Verdane",
	}
	ctx := &Context{Year: 1000, WorldSeed: 99}
	p.Society.Pressures = society.Pressures{Bourgeois: 1, Bureaucrat: 1, EliteBargaining: 1}

	draw := entropy.DeterministicUnit(ctx.WorldSeed, ctx.Year, int(p.Index), 0, entropy.SaltCultureDrift)
	wantMag := society.DriftMagnitude(p.Society.Pressures, draw)

	applyCultureDrift(p, ctx)

	if wantMag <= 0.5 {
		if p.Name != p.BaseName {
			t.Fatalf("magnitude %v did not cross the threshold, expected no rename, got %q", wantMag, p.Name)
		}
		return
	}
	if p.LastCultureDriftYear != ctx.Year {
		t.Fatalf("expected LastCultureDriftYear set to %d, got %d", ctx.Year, p.LastCultureDriftYear)
	}
	if p.Society.LastRenameYear != ctx.Year {
		t.Fatalf("expected LastRenameYear set to %d, got %d", ctx.Year, p.Society.LastRenameYear)
	}
	if p.Society.LanguageDrift != wantMag {
		t.Fatalf("expected LanguageDrift to accumulate by %v, got %v", wantMag, p.Society.LanguageDrift)
	}
	want := p.BaseName + "-" + society.DriftNameSuffix(p.Society.LanguageDrift)
	if p.Name != want {
		t.Fatalf("expected renamed polity %q, got %q", want, p.Name)
	}
}

func TestApplyCultureDriftRespectsCooldown(t *testing.T) {
	p := &Polity{
		Index:                2,
		BaseName:             "Verdane",
		Name:                 "Verdane",
		LastCultureDriftYear: 900,
	}
	p.Society.Pressures = society.Pressures{Bourgeois: 1, Bureaucrat: 1, EliteBargaining: 1}
	ctx := &Context{Year: 1000, WorldSeed: 99} // 100 years < CultureDriftCooldownYears

	applyCultureDrift(p, ctx)

	if p.Name != p.BaseName {
		t.Fatalf("expected no rename inside the cooldown window, got %q", p.Name)
	}
	if p.LastCultureDriftYear != 900 {
		t.Fatalf("expected LastCultureDriftYear untouched inside the cooldown, got %d", p.LastCultureDriftYear)
	}
}

func TestApplyCultureDriftNoopWithZeroPressures(t *testing.T) {
	p := &Polity{
		Index:    3,
		BaseName: "Kest",
		Name:     "Kest",
	}
	ctx := &Context{Year: 1000, WorldSeed: 99}

	applyCultureDrift(p, ctx)

	if p.Name != p.BaseName || p.Society.LanguageDrift != 0 {
		t.Fatalf("expected zero pressures to never trigger a rename, got name=%q drift=%v", p.Name, p.Society.LanguageDrift)
	}
}
