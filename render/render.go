// Package render draws a maze.Grid as a bordered block of text, one rune per
// cell.
//
// Each cell shows the first matching glyph in priority order: start, end,
// in-path, searched, open, wall. Start and end therefore stay visible even
// when a template puts them on a wall.
package render

import (
	"io"
	"strings"

	"github.com/katalvlaran/lvmaze/maze"
)

// Palette lists the runes used for cells and borders.
type Palette struct {
	Start    rune
	End      rune
	Path     rune
	Searched rune
	Open     rune
	Wall     rune

	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// DefaultPalette uses box-drawing borders and a full block for walls.
func DefaultPalette() Palette {
	return Palette{
		Start:    'S',
		End:      'E',
		Path:     '*',
		Searched: 'x',
		Open:     ' ',
		Wall:     '█',

		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
	}
}

// ASCIIPalette uses only 7-bit characters.
func ASCIIPalette() Palette {
	p := DefaultPalette()
	p.Wall = '#'
	p.TopLeft, p.TopRight, p.BottomLeft, p.BottomRight = '+', '+', '+', '+'
	p.Horizontal, p.Vertical = '-', '|'

	return p
}

// Glyph returns the rune for one cell under p.
func (p Palette) Glyph(c maze.Cell) rune {
	switch {
	case c.IsStart:
		return p.Start
	case c.IsEnd:
		return p.End
	case c.InPath:
		return p.Path
	case c.Passable && c.Searched:
		return p.Searched
	case c.Passable:
		return p.Open
	default:
		return p.Wall
	}
}

// Renderer formats grids with a fixed Palette.
type Renderer struct {
	palette Palette
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette replaces the default palette.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		r.palette = p
	}
}

// New returns a Renderer using DefaultPalette unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{palette: DefaultPalette()}
	for _, fn := range opts {
		fn(r)
	}

	return r
}

// String renders g. Lines are separated by '\n' with no trailing newline.
func (r *Renderer) String(g *maze.Grid) string {
	var b strings.Builder
	r.build(&b, g)

	return b.String()
}

// Write renders g to w.
func (r *Renderer) Write(w io.Writer, g *maze.Grid) error {
	_, err := io.WriteString(w, r.String(g))
	return err
}

func (r *Renderer) build(b *strings.Builder, g *maze.Grid) {
	p := r.palette
	border := strings.Repeat(string(p.Horizontal), g.Cols())

	// Top border
	b.WriteRune(p.TopLeft)
	b.WriteString(border)
	b.WriteRune(p.TopRight)
	b.WriteByte('\n')

	// Rows, including side borders
	for row := 0; row < g.Rows(); row++ {
		b.WriteRune(p.Vertical)
		for col := 0; col < g.Cols(); col++ {
			c, _ := g.Cell(row, col)
			b.WriteRune(p.Glyph(c))
		}
		b.WriteRune(p.Vertical)
		b.WriteByte('\n')
	}

	// Bottom border
	b.WriteRune(p.BottomLeft)
	b.WriteString(border)
	b.WriteRune(p.BottomRight)
}

var std = New()

// String renders g with DefaultPalette.
func String(g *maze.Grid) string {
	return std.String(g)
}

// Write renders g to w with DefaultPalette.
func Write(w io.Writer, g *maze.Grid) error {
	return std.Write(w, g)
}
