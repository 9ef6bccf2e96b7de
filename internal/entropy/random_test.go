package entropy

import "testing"

func TestDeterministicUnitIsPure(t *testing.T) {
	a := DeterministicUnit(42, 1900, 3, 7, SaltDiscovery)
	b := DeterministicUnit(42, 1900, 3, 7, SaltDiscovery)
	if a != b {
		t.Fatalf("DeterministicUnit not pure: %v != %v", a, b)
	}
	if a < 0 || a >= 1 {
		t.Fatalf("DeterministicUnit out of [0,1) range: %v", a)
	}
}

func TestDeterministicUnitVariesWithInputs(t *testing.T) {
	base := DeterministicUnit(42, 1900, 3, 7, SaltDiscovery)
	cases := []float64{
		DeterministicUnit(43, 1900, 3, 7, SaltDiscovery),
		DeterministicUnit(42, 1901, 3, 7, SaltDiscovery),
		DeterministicUnit(42, 1900, 4, 7, SaltDiscovery),
		DeterministicUnit(42, 1900, 3, 8, SaltDiscovery),
		DeterministicUnit(42, 1900, 3, 7, SaltRareForget),
	}
	for i, c := range cases {
		if c == base {
			t.Errorf("case %d: expected a different value when one input changes, got the same %v", i, c)
		}
	}
}

func TestSeedPolityRNGDeterministic(t *testing.T) {
	r1 := SeedPolityRNG(1234, 5)
	r2 := SeedPolityRNG(1234, 5)
	for i := 0; i < 10; i++ {
		v1, v2 := r1.Uint64(), r2.Uint64()
		if v1 != v2 {
			t.Fatalf("draw %d diverged: %v != %v", i, v1, v2)
		}
	}
}

func TestSeedPolityRNGDiffersByIndex(t *testing.T) {
	r1 := SeedPolityRNG(1234, 5)
	r2 := SeedPolityRNG(1234, 6)
	if r1.Uint64() == r2.Uint64() {
		t.Fatal("expected different polity indices to produce different streams")
	}
}

func TestNewWorldRNGDeterministic(t *testing.T) {
	r1 := NewWorldRNG(99)
	r2 := NewWorldRNG(99)
	if r1.Uint64() != r2.Uint64() {
		t.Fatal("expected world RNG to be a pure function of its seed")
	}
}
