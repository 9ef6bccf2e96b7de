package society

import "testing"

func TestTickKeepsClassSharesNormalized(t *testing.T) {
	s := NewState()
	in := Inputs{Capability: 0.6, TechCount: 20, Urbanization: 0.4, CommercialDepth: 0.5, Legitimacy: 0.5}
	for i := 0; i < 30; i++ {
		Tick(&s, in)
	}
	var sum float64
	for _, c := range s.Classes {
		if c.Share < 0 {
			t.Fatalf("class share went negative: %v", c.Share)
		}
		sum += c.Share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("expected class shares to sum to ~1, got %v", sum)
	}
}

func TestTickComplexityLevelStaysInRange(t *testing.T) {
	s := NewState()
	cases := []Inputs{
		{Capability: 0, TechCount: 0, CommercialDepth: 0},
		{Capability: 1, TechCount: 1000, CommercialDepth: 1},
	}
	for _, in := range cases {
		Tick(&s, in)
		if s.ComplexityLevel < 2 || s.ComplexityLevel > 6 {
			t.Fatalf("complexity level %d out of [2,6]", s.ComplexityLevel)
		}
	}
}

func TestTickFamineAndWarDepressSentiment(t *testing.T) {
	calm := NewState()
	Tick(&calm, Inputs{Capability: 0.5, CommercialDepth: 0.5, Legitimacy: 0.8})

	harsh := NewState()
	Tick(&harsh, Inputs{Capability: 0.5, CommercialDepth: 0.5, Legitimacy: 0.8, Famine: true, AtWar: true})

	if harsh.Classes[ClassLaborers].Sentiment >= calm.Classes[ClassLaborers].Sentiment {
		t.Fatalf("expected famine+war to depress laborer sentiment relative to calm conditions: harsh=%v calm=%v",
			harsh.Classes[ClassLaborers].Sentiment, calm.Classes[ClassLaborers].Sentiment)
	}
}

func TestTickEliteGrievanceRisesWithOverExtraction(t *testing.T) {
	s := NewState()
	for i := 0; i < 10; i++ {
		Tick(&s, Inputs{Extraction: 0.9, Legitimacy: 0.3})
	}
	for i, e := range s.Elites {
		if e.Grievance <= 0 {
			t.Errorf("elite bloc %d: expected grievance to build under heavy extraction and low legitimacy, got %v", i, e.Grievance)
		}
	}
}
