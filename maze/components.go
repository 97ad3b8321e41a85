package maze

// Regions finds every 4-connected region of passable cells.
// Regions are returned in the row-major order of their first cell; the cells
// within a region are in BFS discovery order starting from that cell.
//
// Time:   O(R×C).
// Memory: O(R×C) for seen flags and output.
func (g *Grid) Regions() [][]Coord {
	seen := make([]bool, len(g.cells))
	var regions [][]Coord

	for i0, c0 := range g.cells {
		if !c0.Passable || seen[i0] {
			continue
		}
		// BFS to collect region
		queue := []int{i0}
		seen[i0] = true
		var region []Coord

		for qi := 0; qi < len(queue); qi++ {
			u := g.coordinate(queue[qi])
			region = append(region, u)
			for _, d := range Directions {
				v := u.Step(d)
				if !g.Passable(v.Row, v.Col) {
					continue
				}
				vi := g.index(v.Row, v.Col)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		regions = append(regions, region)
	}

	return regions
}

// RegionOf returns the index into Regions() of the region holding c, or -1
// when c is out of bounds or a wall.
func (g *Grid) RegionOf(c Coord) int {
	if !g.Passable(c.Row, c.Col) {
		return -1
	}
	for i, region := range g.Regions() {
		for _, rc := range region {
			if rc == c {
				return i
			}
		}
	}

	return -1
}

// Connected reports whether a and b are passable and in the same region.
func (g *Grid) Connected(a, b Coord) bool {
	ra := g.RegionOf(a)
	return ra >= 0 && ra == g.RegionOf(b)
}
