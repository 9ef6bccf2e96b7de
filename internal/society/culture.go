package society

// CultureDriftCooldownYears is the cadence at which agentic pressures may
// rename a polity and evolve its language label (Section 4.8).
const CultureDriftCooldownYears = 220

// CanDrift reports whether enough years have passed since the last rename
// for a new one to be eligible.
func CanDrift(lastDriftYear, currentYear int) bool {
	return currentYear-lastDriftYear >= CultureDriftCooldownYears
}

// DriftMagnitude derives how strongly culture should drift this cycle from
// accumulated bourgeois/bureaucrat pressure and a deterministic draw,
// grounded on the pressure-driven perturbation rule in Section 4.8.
func DriftMagnitude(p Pressures, draw float64) float64 {
	base := 0.3*p.Bourgeois + 0.3*p.Bureaucrat + 0.4*p.EliteBargaining
	return clamp01(base*0.5 + draw*0.5)
}

// nameDriftSuffixes are the deterministic name-evolution tokens a drifting
// polity's label rotates through; this stands in for full procedural
// language generation (Section 4.8).
var nameDriftSuffixes = [...]string{
	"ar", "esh", "und", "ico", "avi", "orn", "eth", "uma", "ska", "iel",
	"oth", "ynn", "adra", "ovar", "ekh",
}

// DriftNameSuffix picks the current name-evolution suffix from accumulated
// language drift: as LanguageDrift climbs past each integer step, the label
// rotates to the next token, so the same accumulated drift always yields
// the same suffix across runs.
func DriftNameSuffix(languageDrift float64) string {
	n := len(nameDriftSuffixes)
	idx := int(languageDrift) % n
	if idx < 0 {
		idx += n
	}
	return nameDriftSuffixes[idx]
}
