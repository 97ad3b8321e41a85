package maze

import "fmt"

// Grid is a Rows×Cols maze. Cells are stored row-major; start and end are
// the coordinates recorded by SetStart and SetEnd.
//
// A new Grid reports start and end as (0,0) with no cell flagged until
// SetStart/SetEnd are called.
type Grid struct {
	rows, cols int
	cells      []Cell
	start, end Coord
}

// New builds a Grid with every cell passable and unmarked.
// Returns ErrInvalidDimensions if cfg has a non-positive dimension and
// ErrTooManyCells if Rows×Cols overflows int.
// Complexity: O(R×C) time and memory.
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cells := make([]Cell, cfg.Cells())
	for i := range cells {
		cells[i] = defaultCell
	}

	return &Grid{rows: cfg.Rows, cols: cfg.Cols, cells: cells}, nil
}

// MustNew is New that panics on invalid dimensions.
func MustNew(cfg Config) *Grid {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}

	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Config returns the dimensions g was built with.
func (g *Grid) Config() Config { return Config{Rows: g.rows, Cols: g.cols} }

// Start returns the recorded start coordinate.
func (g *Grid) Start() Coord { return g.start }

// End returns the recorded end coordinate.
func (g *Grid) End() Coord { return g.end }

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains is InBounds for a Coord.
func (g *Grid) Contains(c Coord) bool {
	return g.InBounds(c.Row, c.Col)
}

// index converts (row,col) to a row-major offset. Callers check bounds first.
func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// coordinate converts a row-major offset back to a Coord.
func (g *Grid) coordinate(i int) Coord {
	return Coord{Row: i / g.cols, Col: i % g.cols}
}

// cell returns a pointer to the cell at (row,col), or nil when out of bounds.
func (g *Grid) cell(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}

	return &g.cells[g.index(row, col)]
}

// Cell returns a copy of the cell at (row,col) and whether it was in bounds.
func (g *Grid) Cell(row, col int) (Cell, bool) {
	c := g.cell(row, col)
	if c == nil {
		return Cell{}, false
	}

	return *c, true
}

// SetWall marks (row,col) impassable. Out-of-bounds coordinates are ignored.
func (g *Grid) SetWall(row, col int) {
	if c := g.cell(row, col); c != nil {
		c.Passable = false
	}
}

// SetStart records (row,col) as the start and flags its cell, clearing the
// flag on any previous start cell.
//
// The coordinate must be in bounds; violating this is a programming error
// and panics.
func (g *Grid) SetStart(row, col int) {
	c := g.mustCell("SetStart", row, col)
	if prev := g.cell(g.start.Row, g.start.Col); prev != nil {
		prev.IsStart = false
	}
	c.IsStart = true
	g.start = Coord{Row: row, Col: col}
}

// SetEnd records (row,col) as the end and flags its cell, clearing the flag
// on any previous end cell.
//
// The coordinate must be in bounds; violating this is a programming error
// and panics.
func (g *Grid) SetEnd(row, col int) {
	c := g.mustCell("SetEnd", row, col)
	if prev := g.cell(g.end.Row, g.end.Col); prev != nil {
		prev.IsEnd = false
	}
	c.IsEnd = true
	g.end = Coord{Row: row, Col: col}
}

func (g *Grid) mustCell(op string, row, col int) *Cell {
	c := g.cell(row, col)
	if c == nil {
		panic(fmt.Sprintf("maze: %s(%d,%d) outside %dx%d grid", op, row, col, g.rows, g.cols))
	}

	return c
}

// Passable reports whether (row,col) is in bounds and not a wall.
func (g *Grid) Passable(row, col int) bool {
	c := g.cell(row, col)
	return c != nil && c.Passable
}

// InPath reports whether (row,col) is on the current candidate path.
func (g *Grid) InPath(row, col int) bool {
	c := g.cell(row, col)
	return c != nil && c.InPath
}

// Searched reports whether a search has entered (row,col).
func (g *Grid) Searched(row, col int) bool {
	c := g.cell(row, col)
	return c != nil && c.Searched
}

// SetPassable sets the passable flag. Out-of-bounds coordinates are ignored.
func (g *Grid) SetPassable(row, col int, v bool) {
	if c := g.cell(row, col); c != nil {
		c.Passable = v
	}
}

// SetInPath sets the in-path flag. Out-of-bounds coordinates are ignored.
func (g *Grid) SetInPath(row, col int, v bool) {
	if c := g.cell(row, col); c != nil {
		c.InPath = v
	}
}

// SetSearched sets the searched flag. Out-of-bounds coordinates are ignored.
func (g *Grid) SetSearched(row, col int, v bool) {
	if c := g.cell(row, col); c != nil {
		c.Searched = v
	}
}

// Reset clears InPath and Searched on every cell. Walls and the start/end
// markers are kept, so the grid can be searched again from scratch.
// Complexity: O(R×C).
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].InPath = false
		g.cells[i].Searched = false
	}
}

// ClearPath clears InPath on every cell and keeps Searched.
func (g *Grid) ClearPath() {
	for i := range g.cells {
		g.cells[i].InPath = false
	}
}

// PathCells returns the coordinates whose InPath flag is set, in row-major order.
// Complexity: O(R×C).
func (g *Grid) PathCells() []Coord {
	var out []Coord
	for i, c := range g.cells {
		if c.InPath {
			out = append(out, g.coordinate(i))
		}
	}

	return out
}

// SearchedCount returns the number of cells with Searched set.
func (g *Grid) SearchedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Searched {
			n++
		}
	}

	return n
}

// Walls returns the coordinates of impassable cells in row-major order.
func (g *Grid) Walls() []Coord {
	var out []Coord
	for i, c := range g.cells {
		if !c.Passable {
			out = append(out, g.coordinate(i))
		}
	}

	return out
}
