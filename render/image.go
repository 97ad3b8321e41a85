package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/yalue/image_utils"

	"github.com/katalvlaran/lvmaze/maze"
)

// DefaultCellPixels is the side of one cell in images drawn by Image.
const DefaultCellPixels = 16

// ErrCellPixels is returned when the requested cell size is not positive.
var ErrCellPixels = errors.New("render: cell pixels must be positive")

// Colors lists the fill colors used by Image, in the same priority order as
// Palette.
type Colors struct {
	Start    color.Color
	End      color.Color
	Path     color.Color
	Searched color.Color
	Open     color.Color
	Wall     color.Color
}

// DefaultColors returns green start, red end, yellow path and a light grey
// trail on white, with black walls and border.
func DefaultColors() Colors {
	return Colors{
		Start:    color.RGBA{R: 0x2e, G: 0xa0, B: 0x43, A: 0xff},
		End:      color.RGBA{R: 0xd0, G: 0x31, B: 0x2d, A: 0xff},
		Path:     color.RGBA{R: 0xf2, G: 0xc9, B: 0x4c, A: 0xff},
		Searched: color.RGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff},
		Open:     color.White,
		Wall:     color.Black,
	}
}

// Color returns the fill for c.
func (p Colors) Color(c maze.Cell) color.Color {
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

// Image draws g as a picture with one cellPixels square per cell and a
// one-cell wall-colored border, mirroring the text layout.
//
// Each cell is first drawn as a single pixel; the picture is then scaled up
// and framed with image_utils.
func Image(g *maze.Grid, colors Colors, cellPixels int) (*image.RGBA, error) {
	if cellPixels <= 0 {
		return nil, ErrCellPixels
	}

	rows, cols := g.Rows(), g.Cols()
	cells := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, _ := g.Cell(row, col)
			cells.Set(col, row, colors.Color(cell))
		}
	}

	scaled := image_utils.ResizeImage(cells, cols*cellPixels, rows*cellPixels)
	if e, ok := scaled.(*image_utils.ErrorImage); ok {
		return nil, fmt.Errorf("render: scale %dx%d grid: %w", rows, cols, e)
	}
	framed := image_utils.AddImageBorder(scaled, colors.Wall, cellPixels)

	out := image.NewRGBA(framed.Bounds())
	draw.Draw(out, out.Bounds(), framed, framed.Bounds().Min, draw.Src)

	return out, nil
}

// WritePNG encodes Image(g, DefaultColors(), cellPixels) to w.
func WritePNG(w io.Writer, g *maze.Grid, cellPixels int) error {
	pic, err := Image(g, DefaultColors(), cellPixels)
	if err != nil {
		return err
	}
	if err := png.Encode(w, pic); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}

	return nil
}
