package worldmap

// PaintCells is the editor tool: it paints a disk of radius cells around
// center, assigning them to polity (or erasing to -1), and returns the set
// of other polity indices whose territory shrank as a result. Respects the
// same adjacency invariants as SetOwner.
func (g *Grid) PaintCells(polity int32, center Coord, radius int, erase bool, overwrite bool) (affected map[int32]struct{}) {
	affected = make(map[int32]struct{})
	target := polity
	if erase {
		target = -1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if !g.InBounds(x, y) {
				continue
			}
			idx := g.index(x, y)
			cell := g.cells[idx]
			if !cell.IsLand {
				continue
			}
			if cell.Owner == target {
				continue
			}
			if cell.Owner >= 0 && !overwrite && !erase {
				continue
			}
			if cell.Owner >= 0 && cell.Owner != target {
				affected[cell.Owner] = struct{}{}
			}
			g.SetOwnerLocked(x, y, target)
		}
	}
	return affected
}
