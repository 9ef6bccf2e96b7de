// Package economy provides the diffusion-only view of trade the core
// consumes: a symmetric trade-intensity matrix and a sea-route predicate.
// Full barter/currency/market simulation is an external collaborator
// (design doc Section 1, Non-goals) — this package implements exactly the
// reduced contract Section 4.9 specifies.
package economy

// Config groups the [economy] TOML parameters relevant to trade intensity.
type Config struct {
	FactorElasticity          float64
	TradeIntensityScale       float64
	TradeIntensityMemory      float64 // EMA smoothing factor, 0..1
	CreditFrictionWeight      float64
	InformationFrictionWeight float64
	SeaRouteMultiplier        float64 // additive multiplier for a sea-shipping route (1.25x)
}

// DefaultConfig returns compiled defaults for the trade-intensity formula.
func DefaultConfig() Config {
	return Config{
		FactorElasticity:          0.5,
		TradeIntensityScale:       1.0,
		TradeIntensityMemory:      0.9,
		CreditFrictionWeight:      0.3,
		InformationFrictionWeight: 0.3,
		SeaRouteMultiplier:        1.25,
	}
}

// PairInputs bundles the per-pair scalars the intensity update needs.
type PairInputs struct {
	AtWar           bool
	HasSeaRoute     bool
	MarketAccessA   float64
	MarketAccessB   float64
	Complementarity float64 // how well the two economies' resource profiles complement each other, 0..1
	CreditFriction  float64
	InfoFriction    float64
}

// Matrix is the symmetric trade-intensity table, keyed by an ordered pair
// of polity indices (a<=b). Values are clamped to [0,1].
type Matrix struct {
	cfg    Config
	values map[[2]int32]float64
}

// NewMatrix creates an empty intensity matrix.
func NewMatrix(cfg Config) *Matrix {
	return &Matrix{cfg: cfg, values: make(map[[2]int32]float64)}
}

func key(a, b int32) [2]int32 {
	if a > b {
		a, b = b, a
	}
	return [2]int32{a, b}
}

// Get returns the current trade intensity between a and b.
func (m *Matrix) Get(a, b int32) float64 {
	return m.values[key(a, b)]
}

// Update recomputes the EMA-smoothed intensity for a pair. Pairs at war
// are forced to zero; a sea-shipping route applies the configured
// multiplier to the raw throughput term before smoothing.
func (m *Matrix) Update(a, b int32, in PairInputs) {
	k := key(a, b)
	if in.AtWar {
		m.values[k] = 0
		return
	}

	raw := in.Complementarity * clamp01(0.5*in.MarketAccessA+0.5*in.MarketAccessB) *
		(1 - in.CreditFriction*m.cfg.CreditFrictionWeight) *
		(1 - in.InfoFriction*m.cfg.InformationFrictionWeight)
	raw *= m.cfg.TradeIntensityScale
	if in.HasSeaRoute {
		raw *= m.cfg.SeaRouteMultiplier
	}
	raw = clamp01(raw)

	prev := m.values[k]
	mem := m.cfg.TradeIntensityMemory
	m.values[k] = clamp01(mem*prev + (1-mem)*raw)
}

// Zero forces a pair's intensity to zero, used when war is declared so the
// very next diffusion/adoption pass already sees trade_intensity==0 even
// before the next trade tick runs.
func (m *Matrix) Zero(a, b int32) {
	m.values[key(a, b)] = 0
}

// SetDirect overwrites a pair's intensity with an already-computed value,
// bypassing the EMA formula. Used by snapshot restore, where the saved
// value is the smoothed result of years of prior Update calls.
func (m *Matrix) SetDirect(a, b int32, v float64) {
	m.values[key(a, b)] = clamp01(v)
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
