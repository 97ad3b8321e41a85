package maze

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for grid construction.
var (
	// ErrInvalidDimensions indicates a Config with a non-positive row or column count.
	ErrInvalidDimensions = errors.New("maze: rows and cols must be positive")

	// ErrTooManyCells indicates a Config whose Rows×Cols does not fit in an int.
	ErrTooManyCells = errors.New("maze: rows×cols overflows int")
)

const (
	// DefaultRows is the row count of DefaultConfig.
	DefaultRows = 8
	// DefaultCols is the column count of DefaultConfig.
	DefaultCols = 8
)

// Config carries the grid dimensions chosen at construction time.
type Config struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

// DefaultConfig returns an 8×8 Config.
func DefaultConfig() Config {
	return Config{Rows: DefaultRows, Cols: DefaultCols}
}

// Validate reports ErrInvalidDimensions if either dimension is not positive
// and ErrTooManyCells if the cell count would overflow.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Rows, c.Cols)
	}
	if c.Rows > math.MaxInt/c.Cols {
		return fmt.Errorf("%w: got %dx%d", ErrTooManyCells, c.Rows, c.Cols)
	}

	return nil
}

// Cells returns Rows×Cols. It is only meaningful for a valid Config.
func (c Config) Cells() int {
	return c.Rows * c.Cols
}

// Cell is one grid position.
//
// Passable is true unless the cell is a wall. InPath is true while the cell is
// on the candidate path of an active search, and stays true on the final
// path after a successful one. Searched is set the first time a search enters
// the cell and is never cleared by search. IsStart and IsEnd mark the
// designated entry and exit.
type Cell struct {
	Passable bool
	InPath   bool
	Searched bool
	IsStart  bool
	IsEnd    bool
}

// defaultCell is the state of every cell in a freshly built grid.
var defaultCell = Cell{Passable: true}

// Direction is one of the four orthogonal moves, in solver order.
type Direction int

const (
	// Down moves to row+1.
	Down Direction = iota
	// Up moves to row-1.
	Up
	// Left moves to col-1.
	Left
	// Right moves to col+1.
	Right
)

// Directions lists the neighbor order used by every search: down, up, left, right.
var Directions = [...]Direction{Down, Up, Left, Right}

// offsets is indexed by Direction.
var offsets = [...]Coord{
	Down:  {Row: 1, Col: 0},
	Up:    {Row: -1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

// Offset returns the row/col delta of d.
func (d Direction) Offset() Coord {
	return offsets[d]
}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	}

	return fmt.Sprintf("Direction(%d)", int(d))
}
