package polity

import (
	"math"

	"github.com/aeonforge/chronicle/internal/worldmap"
)

// expansionBudget computes the number of cells a polity may claim this
// year: clamp(round((4 + 28*opportunity) * scale), 0, cap), cap in
// [60,170] (Section 4.3 step 7).
func expansionBudget(p *Polity, opportunity float64) int {
	scale := 0.4 + 0.3*p.Leader.Ambition + 0.15*p.Macro.LogisticsReachEff + 0.15*p.AvgControl + 0.20*p.War.ConquestMomentum
	cap := 60 + int(110*clamp01(p.Effects.ExpansionRateBonus*5))
	if cap > 170 {
		cap = 170
	}
	if cap < 60 {
		cap = 60
	}
	n := int(math.Round((4 + 28*opportunity) * scale))
	if n < 0 {
		n = 0
	}
	if n > cap {
		n = cap
	}
	return n
}

// softOverload implements Section 4.3 step 8: nominal capacity vs. load,
// returning the (possibly reduced) expansion budget and applying control/
// legitimacy drag or slow recovery in place.
func softOverload(p *Polity, nTechs int, budget int) int {
	capacity := math.Max(24, 60+5000*p.AdminCapacity+120*float64(len(p.Cities))+10*float64(nTechs))
	load := float64(p.Territory.Len()) * (1 + 0.35*(1-p.AvgControl) + 0.25*p.AutonomyPressure + 0.2*boolToFloat(p.War.IsAtWar))

	if load > capacity {
		overload := (load - capacity) / capacity
		capabilityBlend := 0.5*p.AdminCapacity + 0.5*p.AvgControl
		drag := 0.65 + 0.35*(1-capabilityBlend)
		budget = int(float64(budget) * math.Exp(-1.35*overload*drag))
		p.AvgControl = clamp01(p.AvgControl - 0.05*overload)
		p.Legitimacy = clamp01(p.Legitimacy - 0.02*overload)
	} else {
		p.AvgControl = clamp01(p.AvgControl + 0.01)
	}
	return budget
}

// primaryEnemy returns the registry entry for p's lowest-index live enemy,
// used as the attack-vector target during wartime expansion.
func primaryEnemy(p *Polity, r *Registry) *Polity {
	for _, idx := range p.War.Enemies {
		if e := r.Get(idx); e != nil && !e.Dead {
			return e
		}
	}
	return nil
}

// executeExpansion runs Section 4.3 step 9: wartime BFS capture along an
// attack vector, or peacetime boundary-cell trials, depending on
// p.War.IsAtWar.
func executeExpansion(p *Polity, r *Registry, g *worldmap.Grid, budget int, warBurst bool) {
	if budget <= 0 {
		return
	}
	if p.War.IsAtWar {
		executeWartimeCapture(p, r, g, budget, warBurst)
		return
	}
	executePeacetimeGrowth(p, r, g, budget)
}

// executeWartimeCapture seeds a BFS at the furthest enemy-owned border cell
// toward the primary enemy's capital, capturing up to budget cells
// (depth-capped 20, or higher under a war-burst).
func executeWartimeCapture(p *Polity, r *Registry, g *worldmap.Grid, budget int, warBurst bool) {
	enemy := primaryEnemy(p, r)
	if enemy == nil || enemy.Territory.Len() == 0 {
		return
	}
	depthCap := 20
	if warBurst {
		budget *= 2
		depthCap = 32
	}

	seed, ok := furthestBorderCellToward(p, g, enemy.StartingCell)
	if !ok {
		return
	}

	type node struct {
		c     worldmap.Coord
		depth int
	}
	visited := map[worldmap.Coord]struct{}{seed: {}}
	queue := []node{{seed, 0}}
	captured := 0

	g.Lock()
	defer g.Unlock()
	for len(queue) > 0 && captured < budget {
		cur := queue[0]
		queue = queue[1:]
		cell := g.At(cur.c.X, cur.c.Y)
		if cell.Owner == enemy.Index {
			r.transferLocked(g, cur.c, p.Index)
			captured++
		}
		if cur.depth >= depthCap {
			continue
		}
		for _, n := range neighborCoords4(g, cur.c) {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			nc := g.At(n.X, n.Y)
			if nc.IsLand && (nc.Owner == enemy.Index || nc.Owner == -1) {
				queue = append(queue, node{n, cur.depth + 1})
			}
		}
	}
}

// furthestBorderCellToward finds, among p's owned cells that border enemy
// territory, the one furthest along the vector from p's capital toward
// target.
func furthestBorderCellToward(p *Polity, g *worldmap.Grid, target worldmap.Coord) (worldmap.Coord, bool) {
	capital := p.StartingCell
	dx := float64(target.X - capital.X)
	dy := float64(target.Y - capital.Y)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		norm = 1
	}
	dx, dy = dx/norm, dy/norm

	var best worldmap.Coord
	bestScore := math.Inf(-1)
	found := false

	for _, c := range p.Territory.Cells() {
		isBorder := false
		for _, n := range neighborCoords4(g, c) {
			nc := g.At(n.X, n.Y)
			if nc.Owner != p.Index && nc.Owner != -1 {
				isBorder = true
				break
			}
		}
		if !isBorder {
			continue
		}
		score := float64(c.X-capital.X)*dx + float64(c.Y-capital.Y)*dy
		if score > bestScore {
			bestScore = score
			best = c
			found = true
		}
	}
	return best, found
}

// executePeacetimeGrowth spends `budget` trials picking a random owned cell and
// taking its highest-food unclaimed land neighbor (Section 4.3 step 9,
// peacetime branch). Contention is resolved first-committer-wins by taking
// the grid lock per trial.
func executePeacetimeGrowth(p *Polity, r *Registry, g *worldmap.Grid, budget int) {
	cells := p.Territory.Cells()
	if len(cells) == 0 {
		return
	}
	for i := 0; i < budget; i++ {
		border := cells[p.RNG.IntN(len(cells))]
		var bestCoord worldmap.Coord
		bestFood := float32(-1)
		found := false

		g.Lock()
		for _, n := range neighborCoords4(g, border) {
			nc := g.At(n.X, n.Y)
			if nc.IsLand && nc.Owner == -1 && nc.Food > bestFood {
				bestFood = nc.Food
				bestCoord = n
				found = true
			}
		}
		if found {
			r.transferLocked(g, bestCoord, p.Index)
			cells = append(cells, bestCoord)
		}
		g.Unlock()
	}
}

// warmongerSurge attempts, stochastically, a single compact disk-shaped
// territory grab outside the immediate border (Section 4.3 step 10).
func warmongerSurge(p *Polity, r *Registry, g *worldmap.Grid, baseChance float64) {
	chance := clamp01(baseChance + p.Effects.BurstFrequencyBonus)
	if p.RNG.Float64() >= chance {
		return
	}
	cells := p.Territory.Cells()
	if len(cells) == 0 {
		return
	}
	center := cells[p.RNG.IntN(len(cells))]
	radius := 2 + p.Effects.BurstRadiusBonus

	g.Lock()
	defer g.Unlock()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if !g.InBounds(x, y) {
				continue
			}
			cell := g.At(x, y)
			if cell.IsLand && cell.Owner == -1 {
				r.transferLocked(g, worldmap.Coord{X: x, Y: y}, p.Index)
			}
		}
	}
}

// neighborCoords4 returns the 4-connected in-bounds neighbors of c.
func neighborCoords4(g *worldmap.Grid, c worldmap.Coord) []worldmap.Coord {
	cands := [4]worldmap.Coord{
		{X: c.X + 1, Y: c.Y}, {X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1}, {X: c.X, Y: c.Y - 1},
	}
	out := make([]worldmap.Coord, 0, 4)
	for _, n := range cands {
		if g.InBounds(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}
