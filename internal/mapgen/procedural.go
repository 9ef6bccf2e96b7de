// Package mapgen supplies the grid construction that the core consumes.
// Real map-image loading and resource-palette decoding are external
// collaborators (see design doc Section 1, "deliberately out of scope");
// this package's Loader interface is the seam they plug into. Procedural
// provides the one concrete, in-scope implementation: a deterministic
// opensimplex-noise generator used for tests and as a fallback when no map
// image is configured.
// See design doc Section 6 (map input) and the teacher's
// internal/world/generation.go for the layered-noise technique this adapts.
package mapgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/aeonforge/chronicle/internal/worldmap"
)

// Loader builds a Grid from some external source (image pair, save file,
// procedural generator). The simulation core depends only on this
// interface, never on a concrete image decoder.
type Loader interface {
	Load(width, height int) (*worldmap.Grid, error)
}

// Config parameterizes the procedural generator.
type Config struct {
	Seed        int64
	SeaLevel    float64 // elevation threshold below which a cell is water
	MountainLvl float64 // elevation threshold above which a cell favors ore
	BaseFood    float32 // base food potential for fertile land
}

// DefaultConfig returns reasonable generation parameters.
func DefaultConfig() Config {
	return Config{
		Seed:        1,
		SeaLevel:    0.32,
		MountainLvl: 0.74,
		BaseFood:    6.0,
	}
}

// Procedural generates land/water, biome, and resource fields from three
// independent noise layers (elevation, rainfall, temperature), exactly the
// layering the teacher's generation.go uses for its hex world, adapted here
// to a rectangular cell grid.
type Procedural struct {
	Cfg Config
}

// NewProcedural creates a generator with the given configuration.
func NewProcedural(cfg Config) *Procedural {
	return &Procedural{Cfg: cfg}
}

// Load implements Loader.
func (p *Procedural) Load(width, height int) (*worldmap.Grid, error) {
	seed := p.Cfg.Seed
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	g := worldmap.New(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx, fy := float64(x)/float64(width), float64(y)/float64(height)

			elevation := octaveNoise(elevNoise, fx, fy, 4)
			rainfall := octaveNoise(rainNoise, fx, fy, 3)
			temperature := octaveNoise(tempNoise, fx, fy, 3)

			isLand := elevation > p.Cfg.SeaLevel
			cell := worldmap.Cell{IsLand: isLand}

			if isLand {
				cell.Biome = biomeTag(rainfall, temperature)
				cell.Food = foodPotential(p.Cfg.BaseFood, elevation, rainfall, p.Cfg)
				cell.Resource = resourceKind(elevation, rainfall, p.Cfg)
			}
			g.SeedCell(x, y, cell)
		}
	}
	return g, nil
}

func octaveNoise(n opensimplex.Noise, x, y float64, octaves int) float64 {
	sum, amp, freq, norm := 0.0, 1.0, 4.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += n.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

func biomeTag(rainfall, temperature float64) uint8 {
	switch {
	case temperature < 0.25:
		return 0 // tundra
	case rainfall < 0.3:
		return 1 // desert
	case rainfall > 0.7 && temperature > 0.6:
		return 2 // rainforest
	case rainfall > 0.5:
		return 3 // forest
	default:
		return 4 // plains
	}
}

func foodPotential(base float32, elevation, rainfall float64, cfg Config) float32 {
	if elevation > cfg.MountainLvl {
		return base * 0.15
	}
	fertility := math.Max(0.1, rainfall)
	return base * float32(fertility)
}

func resourceKind(elevation, rainfall float64, cfg Config) worldmap.ResourceKind {
	switch {
	case elevation > cfg.MountainLvl:
		return worldmap.ResourceOre
	case rainfall < 0.25:
		return worldmap.ResourceEnergy
	case rainfall > 0.75:
		return worldmap.ResourceFood
	default:
		return worldmap.ResourceConstruction
	}
}
