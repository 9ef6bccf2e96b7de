package society

import "math"

// Inputs bundles the scalars the society package needs from a polity's
// macro state and leader, keeping this package free of a polity-package
// import (society is a leaf below polity in the dependency order).
type Inputs struct {
	Capability      float64 // 0.45*logistics + 0.35*institution + 0.20*connectivity
	TechCount       int
	Urbanization    float64
	CommercialDepth float64
	LeaderReformism float64
	LeaderAmbition  float64
	Extraction      float64
	Legitimacy      float64
	Famine          bool
	AtWar           bool
	Control         float64
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// targetComplexity maps capability/tech-count/commercial depth to a
// class-complexity level in [2,6] (Section 4.8).
func targetComplexity(in Inputs) int {
	score := in.Capability*2 + float64(in.TechCount)/15 + in.CommercialDepth*2
	level := 2 + int(score)
	if level > 6 {
		level = 6
	}
	if level < 2 {
		level = 2
	}
	return level
}

// targetShares computes the smoothing target for each class's population
// share given capability, urbanization, and commercial depth.
func targetShares(in Inputs) [NumClasses]float64 {
	bourgeois := clamp01(0.10 + 0.35*in.CommercialDepth + 0.15*in.Urbanization)
	bureaucrat := clamp01(0.05 + 0.20*in.Capability)
	elite := clamp01(0.03 + 0.05*in.Capability)
	artisan := clamp01(0.10 + 0.15*in.Urbanization)
	laborer := clamp01(0.25 + 0.10*in.Urbanization)
	subsistence := 1 - bourgeois - bureaucrat - elite - artisan - laborer
	if subsistence < 0.05 {
		subsistence = 0.05
	}
	return [NumClasses]float64{
		ClassSubsistence: subsistence,
		ClassLaborers:    laborer,
		ClassArtisans:    artisan,
		ClassMerchants:   bourgeois,
		ClassBureaucrats: bureaucrat,
		ClassElite:       elite,
	}
}

// Tick advances the agentic society one year: class-complexity level,
// class-share smoothing, per-class sentiment/influence, elite bloc
// dynamics, and the derived pressure scalars (Section 4.8).
func Tick(s *State, in Inputs) {
	s.ComplexityLevel = targetComplexity(in)

	targets := targetShares(in)
	sum := 0.0
	for i := range s.Classes {
		k := ClassKind(i)
		s.Classes[k].Share += (targets[k] - s.Classes[k].Share) * 0.08
		if s.Classes[k].Share < 0 {
			s.Classes[k].Share = 0
		}
		sum += s.Classes[k].Share
	}
	if sum > 0 {
		for i := range s.Classes {
			s.Classes[i].Share /= sum
		}
	}

	hardship := 0.0
	if in.Famine {
		hardship += 0.4
	}
	if in.AtWar {
		hardship += 0.2
	}
	for i := range s.Classes {
		c := &s.Classes[i]
		fit := 1 - math.Abs(c.TradePref-in.CommercialDepth)
		c.Sentiment += (fit - hardship - c.Sentiment) * 0.1
		c.Sentiment = clampSigned(c.Sentiment)
		c.Influence = clamp01(c.Share*0.6 + c.Influence*0.4)
	}

	for i := range s.Elites {
		e := &s.Elites[i]
		overExtraction := clamp01(in.Extraction - e.ExtractionTolerance)
		e.Grievance += (overExtraction + (1-in.Legitimacy)*0.3 - e.Grievance) * 0.1
		e.Grievance = clamp01(e.Grievance)
		e.Loyalty += ((1 - e.Grievance) - e.Loyalty) * 0.08
		e.Loyalty = clamp01(e.Loyalty)
	}

	s.Pressures = Pressures{
		EliteBargaining: avgGrievance(s.Elites[:]),
		Commoner:        -s.Classes[ClassLaborers].Sentiment*0.5 + 0.5,
		Bourgeois:       s.Classes[ClassMerchants].Influence,
		Bureaucrat:      s.Classes[ClassBureaucrats].Influence,
	}
}

func avgGrievance(elites []EliteBloc) float64 {
	sum := 0.0
	for _, e := range elites {
		sum += e.Grievance
	}
	return sum / float64(len(elites))
}

func clampSigned(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
