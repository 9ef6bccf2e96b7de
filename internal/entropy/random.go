// Package entropy provides the simulation's RNG discipline: a world RNG used
// only for construction, one independent RNG per polity, and a pure
// deterministic hash for decisions that must be reproducible regardless of
// thread scheduling.
// See design doc Section 5 (RNG discipline).
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"math/rand/v2"
)

// mix64 is a SplitMix64-style finalizer used to turn small integer inputs
// into well-distributed 64-bit seeds.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

const (
	c1 = 0x9e3779b97f4a7c15
	c2 = 0xbf58476d1ce4e5b9
)

// SeedPolityRNG derives a per-polity seed from the world seed and polity
// index, per Section 5: "One per-polity RNG seeded from
// mix64(world_seed XOR index*C1 XOR C2)".
func SeedPolityRNG(worldSeed uint64, polityIndex int) *rand.Rand {
	s := mix64(worldSeed ^ (uint64(polityIndex) * c1) ^ c2)
	return rand.New(rand.NewPCG(s, mix64(s)))
}

// NewWorldRNG creates the single world RNG used only during world
// construction (spawning starting polities, placing resources when no map
// image is supplied).
func NewWorldRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix64(seed^c1)))
}

// RandomSeed produces a fresh, non-deterministic 64-bit seed from the OS CSPRNG.
// Used only when the config's rngSeedMode requests a fresh seed; once chosen,
// the seed is recorded so a run can be replayed deterministically.
func RandomSeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real OS;
		// fall back to a fixed constant so callers never observe a panic.
		return 0x2545F4914F6CDD1D
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// DeterministicUnit is the pure hash → [0,1) function used for any decision
// that must match across thread orderings: neighbor-pair tech diffusion,
// discovery hazards, rare forgetting. Never backed by a polity RNG, so the
// result depends only on its arguments, never on scheduling order.
func DeterministicUnit(worldSeed uint64, year int, polity, tech int, salt uint64) float64 {
	h := mix64(worldSeed)
	h = mix64(h ^ uint64(int64(year))*0xff51afd7ed558ccd)
	h = mix64(h ^ uint64(uint32(polity))*0xc4ceb9fe1a85ec53)
	h = mix64(h ^ uint64(uint32(tech))*0x2545F4914F6CDD1D)
	h = mix64(h ^ salt)
	// Keep the low 53 bits (the rotate moves the top 11 bits down, the
	// shift drops them) for a uniform float64 in [0,1), matching the
	// standard mantissa-width trick.
	return float64(bits.RotateLeft64(h, 11)>>11) / float64(1<<53)
}

// Salt values for the distinct deterministic decisions named in the spec.
const (
	SaltDiscovery      uint64 = 1
	SaltRareForget     uint64 = 2
	SaltKnownDiffusion uint64 = 3
	SaltAdoptionSeed   uint64 = 4
	SaltWarmongerSurge uint64 = 5
	SaltCultureDrift   uint64 = 6
	SaltWarGoalSelect  uint64 = 7
	SaltAnnihilation   uint64 = 8
)
