package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// canonicalEpsilon is the reciprocal of the fixed 1e-9 rounding grid
// applied to every float64 before it enters a canonical hash: two runs that agree to 1e-9 on every
// scalar are considered bit-identical for reproducibility purposes, which
// absorbs the order-of-summation noise a parallel S2 fan-out can introduce
// without masking a genuine divergence (Section 9).
const canonicalEpsilon = 1e9

func roundCanonical(x float64) float64 {
	return math.Round(x*canonicalEpsilon) / canonicalEpsilon
}

// CanonicalHash produces a deterministic fingerprint of the world's
// observable state: the year, the grid's owner array, and every polity's
// rounded scalar fields, sorted territory, sorted enemy list, and dense
// knowledge vectors. Two worlds advanced from the same seed/map/config to
// the same year must hash identically regardless of worker-pool
// scheduling; a mismatch signals a determinism bug, not a legitimate
// divergence (Section 9).
func (w *World) CanonicalHash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeI64 := func(v int64) { writeU64(uint64(v)) }
	writeF64 := func(v float64) { writeU64(math.Float64bits(roundCanonical(v))) }

	writeI64(int64(w.Year))
	writeU64(w.WorldSeed)

	for y := 0; y < w.Grid.Height; y++ {
		for x := 0; x < w.Grid.Width; x++ {
			writeI64(int64(w.Grid.At(x, y).Owner))
		}
	}

	for _, p := range w.Registry.All() {
		writeI64(int64(p.Index))
		writeU64(boolBit(p.Dead))
		writeI64(p.Population)
		writeF64(p.Legitimacy)
		writeF64(p.Stability)
		writeF64(p.AvgControl)
		writeF64(p.AdminCapacity)
		writeF64(p.FiscalCapacity)
		writeF64(p.LogisticsReach)
		writeF64(p.TaxRate)
		writeF64(p.TreasurySpend)
		writeF64(p.Debt)
		writeU64(p.Treasury)

		for _, c := range p.Territory.Cells() {
			writeI64(int64(c.X))
			writeI64(int64(c.Y))
		}

		for _, city := range p.Cities {
			writeI64(int64(city.Location.X))
			writeI64(int64(city.Location.Y))
			writeI64(city.Population)
		}

		// Roads/Ports/Factories are kept (y,x)-sorted and deduped at
		// insertion time (internal/polity/infrastructure.go), so no extra
		// sort pass is needed here to satisfy the canonicalization rule.
		for _, c := range p.Roads {
			writeI64(int64(c.X))
			writeI64(int64(c.Y))
		}
		for _, c := range p.Ports {
			writeI64(int64(c.X))
			writeI64(int64(c.Y))
		}
		for _, c := range p.Factories {
			writeI64(int64(c.X))
			writeI64(int64(c.Y))
		}

		writeU64(boolBit(p.War.IsAtWar))
		writeI64(int64(p.War.WarDuration))
		writeF64(p.War.WarExhaustion)
		writeU64(uint64(p.War.ActiveWarGoal))
		for _, e := range p.War.Enemies { // already sorted, Section 9
			writeI64(int64(e))
		}

		if p.Knowledge != nil {
			for _, known := range p.Knowledge.Known {
				writeU64(boolBit(known))
			}
			for _, a := range p.Knowledge.Adoption {
				writeF64(float64(a))
			}
			for _, d := range p.Knowledge.Domains {
				writeF64(d)
			}
		}
	}

	return h.Sum64()
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
