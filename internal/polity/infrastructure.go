package polity

import (
	"math"
	"sort"

	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// InfrastructureCadenceYears staggers each polity's road/port/factory
// build-out check; the stagger offset is the polity index modulo the
// cadence, so not every polity evaluates the same year (Section 4.3
// step 16).
const InfrastructureCadenceYears = 10

const (
	maxPortsPerPolity     = 8
	maxFactoriesPerPolity = 6
)

// insertSortedUnique inserts c into coords, keeping the slice sorted by
// (y,x) and free of duplicates, mirroring the canonicalization rule
// Section 9 applies to territory, ports, roads, and factories.
func insertSortedUnique(coords []worldmap.Coord, c worldmap.Coord) []worldmap.Coord {
	i := sort.Search(len(coords), func(i int) bool { return less(c, coords[i]) })
	if i > 0 && coords[i-1] == c {
		return coords
	}
	if i < len(coords) && coords[i] == c {
		return coords
	}
	coords = append(coords, worldmap.Coord{})
	copy(coords[i+1:], coords[i:])
	coords[i] = c
	return coords
}

// runInfrastructureCadence builds roads (gated on Construction/Roads),
// ports (Shipbuilding+Navigation, and only on coastal cells), and
// factories (Industrialization) when the polity's staggered trigger year
// lands, subject to tech gates (Section 4.3 step 16, grounded on the
// original's staggered buildRoads/buildPorts/attemptFactoryConstruction
// cadence).
func runInfrastructureCadence(p *Polity, ctx *Context) {
	year := ctx.Year
	if (year+int(p.Index))%InfrastructureCadenceYears != 0 {
		return
	}
	if len(p.Cities) < 2 {
		return
	}

	if p.Knowledge.Unlocked(tech.ConstructionRoads, 0.5) {
		buildRoad(p, ctx)
	}
	if p.Knowledge.Unlocked(tech.Shipbuilding, 0.5) && p.Knowledge.Unlocked(tech.Navigation, 0.5) {
		buildPort(p, ctx)
	}
	if p.Knowledge.Unlocked(tech.Industrialization, 0.5) {
		buildFactory(p, ctx)
	}

	p.Macro.RoadMobility = clamp01(sqrtRatio(len(p.Roads), 140) + sqrtRatio(len(p.Ports), 20))
}

// buildRoad lays one road segment linking the capital to the next
// un-linked city, deterministically chosen by city index so no RNG draw is
// consumed.
func buildRoad(p *Polity, ctx *Context) {
	capital := p.Cities[0].Location
	for i := 1; i < len(p.Cities); i++ {
		c := p.Cities[i].Location
		if containsCoord(p.Roads, c) {
			continue
		}
		p.Roads = insertSortedUnique(p.Roads, c)
		p.Roads = insertSortedUnique(p.Roads, capital)
		return
	}
}

// buildPort sites a new port at the first coastal owned cell in (y,x) order
// not already hosting one, capped at maxPortsPerPolity.
func buildPort(p *Polity, ctx *Context) {
	if len(p.Ports) >= maxPortsPerPolity {
		return
	}
	cells := p.Territory.Cells()
	for _, c := range cells {
		if !ctx.Grid.IsCoastalLand(c.X, c.Y) {
			continue
		}
		if containsCoord(p.Ports, c) {
			continue
		}
		p.Ports = insertSortedUnique(p.Ports, c)
		return
	}
}

// buildFactory sites a new factory at an owned cell bearing Ore, Energy, or
// Construction resources, capped at maxFactoriesPerPolity.
func buildFactory(p *Polity, ctx *Context) {
	if len(p.Factories) >= maxFactoriesPerPolity {
		return
	}
	for _, c := range p.Territory.Cells() {
		if containsCoord(p.Factories, c) {
			continue
		}
		cell := ctx.Grid.At(c.X, c.Y)
		if cell.Resource == worldmap.ResourceNone || cell.Resource == worldmap.ResourceFood {
			continue
		}
		p.Factories = insertSortedUnique(p.Factories, c)
		return
	}
}

func containsCoord(coords []worldmap.Coord, c worldmap.Coord) bool {
	i := sort.Search(len(coords), func(i int) bool { return !less(coords[i], c) })
	return i < len(coords) && coords[i] == c
}

func sqrtRatio(n, scale int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Sqrt(float64(n)) / float64(scale)
}
