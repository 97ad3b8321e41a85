// Package template reads and writes maze templates and applies them to a
// maze.Grid.
//
// A template lists wall coordinates plus a start and an end coordinate, each
// as a [row, col] pair:
//
//	{"walls": [[1,0],[1,1]], "start": [0,0], "end": [2,0]}
//
// The same document may be written as YAML. Walls outside the grid are
// ignored when the template is applied; a start or end outside the grid is an
// error.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmaze/maze"
)

var (
	// ErrStartOutOfBounds indicates a template start outside the target grid.
	ErrStartOutOfBounds = errors.New("template: start is out of bounds")
	// ErrEndOutOfBounds indicates a template end outside the target grid.
	ErrEndOutOfBounds = errors.New("template: end is out of bounds")
	// ErrUnknownFormat indicates a format that is neither JSON nor YAML.
	ErrUnknownFormat = errors.New("template: unknown format")
	// ErrGridNil is returned by Apply for a nil grid.
	ErrGridNil = errors.New("template: grid is nil")
)

// Format selects the serialized form of a template.
type Format int

const (
	// JSON is the default template format.
	JSON Format = iota
	// YAML carries the same fields as JSON.
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}

	return JSON
}

// Template is the serialized form of a maze.
type Template struct {
	Walls []maze.Coord `json:"walls" yaml:"walls"`
	Start maze.Coord   `json:"start" yaml:"start"`
	End   maze.Coord   `json:"end" yaml:"end"`
}

// Default returns the template used when no input is given: no walls, start
// at the top-left cell and end at the bottom-right cell of cfg.
func Default(cfg maze.Config) Template {
	return Template{
		Walls: []maze.Coord{},
		Start: maze.Coord{Row: 0, Col: 0},
		End:   maze.Coord{Row: cfg.Rows - 1, Col: cfg.Cols - 1},
	}
}

// FromGrid captures the walls, start and end of g as a Template.
func FromGrid(g *maze.Grid) Template {
	walls := g.Walls()
	if walls == nil {
		walls = []maze.Coord{}
	}

	return Template{Walls: walls, Start: g.Start(), End: g.End()}
}

// Decode reads one template from r.
func Decode(r io.Reader, f Format) (Template, error) {
	var t Template
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Template{}, fmt.Errorf("template: decode json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return Template{}, fmt.Errorf("template: decode yaml: %w", err)
		}
	default:
		return Template{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}

	return t, nil
}

// Parse decodes a template held in memory.
func Parse(data []byte, f Format) (Template, error) {
	return Decode(bytes.NewReader(data), f)
}

// LoadFile reads the template at path, choosing the format by extension.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("template: read %s: %w", path, err)
	}
	t, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Encode writes t to w.
func Encode(w io.Writer, t Template, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("template: encode json: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("template: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("template: encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}

	return nil
}

// WriteFile writes t to path, choosing the format by extension.
func WriteFile(path string, t Template) error {
	var buf bytes.Buffer
	if err := Encode(&buf, t, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("template: write %s: %w", path, err)
	}

	return nil
}

// Apply marks t's walls on g and sets its start and end.
//
// Walls outside g are skipped. A start or end outside g is reported as
// ErrStartOutOfBounds or ErrEndOutOfBounds before g is modified.
func Apply(t Template, g *maze.Grid) error {
	if g == nil {
		return ErrGridNil
	}
	if !g.Contains(t.Start) {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrStartOutOfBounds, t.Start, g.Rows(), g.Cols())
	}
	if !g.Contains(t.End) {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrEndOutOfBounds, t.End, g.Rows(), g.Cols())
	}

	for _, w := range t.Walls {
		g.SetWall(w.Row, w.Col)
	}
	g.SetStart(t.Start.Row, t.Start.Col)
	g.SetEnd(t.End.Row, t.End.Col)

	return nil
}

// Build creates a grid of size cfg and applies t to it.
func Build(t Template, cfg maze.Config) (*maze.Grid, error) {
	g, err := maze.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := Apply(t, g); err != nil {
		return nil, err
	}

	return g, nil
}

// OutOfBounds returns the walls of t that fall outside cfg; Apply ignores them.
func (t Template) OutOfBounds(cfg maze.Config) []maze.Coord {
	var out []maze.Coord
	for _, w := range t.Walls {
		if w.Row < 0 || w.Row >= cfg.Rows || w.Col < 0 || w.Col >= cfg.Cols {
			out = append(out, w)
		}
	}

	return out
}
