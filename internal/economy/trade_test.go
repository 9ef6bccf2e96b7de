package economy

import "testing"

func TestMatrixUpdateSymmetric(t *testing.T) {
	m := NewMatrix(DefaultConfig())
	m.Update(3, 7, PairInputs{MarketAccessA: 0.8, MarketAccessB: 0.6, Complementarity: 0.9})
	if m.Get(3, 7) != m.Get(7, 3) {
		t.Fatalf("expected symmetric lookup, got %v vs %v", m.Get(3, 7), m.Get(7, 3))
	}
	if m.Get(3, 7) <= 0 {
		t.Fatalf("expected positive intensity, got %v", m.Get(3, 7))
	}
}

func TestMatrixUpdateAtWarForcesZero(t *testing.T) {
	m := NewMatrix(DefaultConfig())
	m.Update(1, 2, PairInputs{MarketAccessA: 1, MarketAccessB: 1, Complementarity: 1})
	if m.Get(1, 2) == 0 {
		t.Fatal("expected nonzero intensity before war")
	}
	m.Update(1, 2, PairInputs{AtWar: true, MarketAccessA: 1, MarketAccessB: 1, Complementarity: 1})
	if m.Get(1, 2) != 0 {
		t.Fatalf("expected war to force intensity to zero, got %v", m.Get(1, 2))
	}
}

func TestMatrixZero(t *testing.T) {
	m := NewMatrix(DefaultConfig())
	m.Update(1, 2, PairInputs{MarketAccessA: 1, MarketAccessB: 1, Complementarity: 1})
	m.Zero(1, 2)
	if m.Get(1, 2) != 0 {
		t.Fatalf("expected Zero to clear intensity, got %v", m.Get(1, 2))
	}
}

func TestMatrixSetDirectClampsAndBypassesEMA(t *testing.T) {
	m := NewMatrix(DefaultConfig())
	m.SetDirect(4, 9, 0.42)
	if got := m.Get(4, 9); got != 0.42 {
		t.Fatalf("expected SetDirect value to be stored verbatim, got %v", got)
	}
	m.SetDirect(4, 9, 5) // out of range, must clamp
	if got := m.Get(4, 9); got != 1 {
		t.Fatalf("expected SetDirect to clamp above 1, got %v", got)
	}
	m.SetDirect(4, 9, -5)
	if got := m.Get(4, 9); got != 0 {
		t.Fatalf("expected SetDirect to clamp below 0, got %v", got)
	}
}

func TestMatrixEMASmoothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TradeIntensityMemory = 0.5
	m := NewMatrix(cfg)
	in := PairInputs{MarketAccessA: 1, MarketAccessB: 1, Complementarity: 1}
	m.Update(1, 2, in)
	first := m.Get(1, 2)
	m.Update(1, 2, in)
	second := m.Get(1, 2)
	if second <= first {
		t.Fatalf("expected repeated updates toward a positive target to increase intensity monotonically: %v then %v", first, second)
	}
}
