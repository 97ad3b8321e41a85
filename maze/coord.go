package maze

import (
	"encoding/json"
	"fmt"
)

// Coord addresses a cell by row and column. Row 0 is the top row.
//
// Coord encodes as a two-element array [row, col] in both JSON and YAML,
// which is the shape maze templates use for walls, start and end.
type Coord struct {
	Row int
	Col int
}

// Add returns c moved by the delta o.
func (c Coord) Add(o Coord) Coord {
	return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Step returns the neighbor of c in direction d. The result may be out of bounds.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Offset())
}

// Adjacent reports whether c and o differ by exactly one row or one column.
func (c Coord) Adjacent(o Coord) bool {
	dr, dc := c.Row-o.Row, c.Col-o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}

	return dr+dc == 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// MarshalJSON encodes c as [row, col].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("maze: coordinate must be a [row, col] array: %w", err)
	}
	return c.fromPair(pair)
}

// MarshalYAML encodes c as a [row, col] sequence.
func (c Coord) MarshalYAML() (interface{}, error) {
	return []int{c.Row, c.Col}, nil
}

// UnmarshalYAML decodes a [row, col] sequence.
func (c *Coord) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []int
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("maze: coordinate must be a [row, col] sequence: %w", err)
	}
	return c.fromPair(pair)
}

func (c *Coord) fromPair(pair []int) error {
	if len(pair) != 2 {
		return fmt.Errorf("maze: coordinate needs 2 elements, got %d", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]

	return nil
}
