package polity

import "github.com/aeonforge/chronicle/internal/worldmap"

// maybeGrowCities runs Section 4.3 step 14: above 10,000 population, found
// a new city at a deterministically-chosen cell (if allowed and territory
// exists); above 1,000,000, one-shot promote the capital to Major.
func maybeGrowCities(p *Polity, foundingAllowed bool) {
	if p.Population >= 10_000 && foundingAllowed && p.Territory.Len() > 0 {
		if loc, ok := bestCityCell(p); ok && !hasCityAt(p, loc) {
			p.Cities = append(p.Cities, City{Location: loc, Population: 1000})
		}
	}
	if p.Population >= 1_000_000 && !p.MajorUpgraded && len(p.Cities) > 0 {
		p.Cities[0].IsMajor = true
		p.MajorUpgraded = true
	}
}

// bestCityCell deterministically selects the owned cell at a
// population-derived index as the next founding site; it does not check
// whether that cell already hosts a city.
func bestCityCell(p *Polity) (worldmap.Coord, bool) {
	cells := p.Territory.Cells()
	if len(cells) == 0 {
		return worldmap.Coord{}, false
	}
	// Territory.Cells() is sorted by (y,x), so picking the cell at a
	// population-derived stable index keeps founding deterministic across
	// runs without consuming the polity RNG.
	idx := int(p.Population/10_000) % len(cells)
	return cells[idx], true
}

func hasCityAt(p *Polity, c worldmap.Coord) bool {
	for _, city := range p.Cities {
		if city.Location == c {
			return true
		}
	}
	return false
}
