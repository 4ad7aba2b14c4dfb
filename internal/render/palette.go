// Package render draws engine snapshots. Colour and geometry helpers are
// shared by the ebiten and terminal frontends.
package render

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

// Palette maps a cell value to its fill colour. Index 0 is the background.
var Palette = [tetris.ShapeCount + 1]color.RGBA{
	tetris.Empty:  {0x00, 0x00, 0x00, 0xff},
	tetris.ShapeI: {0xff, 0x0d, 0x72, 0xff},
	tetris.ShapeJ: {0x0d, 0xc2, 0xff, 0xff},
	tetris.ShapeL: {0x0d, 0xff, 0x72, 0xff},
	tetris.ShapeO: {0xf5, 0x38, 0xff, 0xff},
	tetris.ShapeS: {0xff, 0x8e, 0x0d, 0xff},
	tetris.ShapeT: {0xff, 0xe1, 0x38, 0xff},
	tetris.ShapeZ: {0x38, 0x77, 0xff, 0xff},
}

// Background is the colour of empty cells and the canvas.
var Background = Palette[tetris.Empty]

// ColorOf returns the palette colour of a cell. Out of range values render
// as background.
func ColorOf(id tetris.ShapeID) color.RGBA {
	if int(id) >= len(Palette) {
		return Background
	}
	return Palette[id]
}

// Adjust shifts every colour channel by amount, clamping to [0, 255].
func Adjust(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: clampChannel(int(c.R) + amount),
		G: clampChannel(int(c.G) + amount),
		B: clampChannel(int(c.B) + amount),
		A: c.A,
	}
}

func Lighten(c color.RGBA, amount int) color.RGBA { return Adjust(c, amount) }
func Darken(c color.RGBA, amount int) color.RGBA  { return Adjust(c, -amount) }

func clampChannel(v int) uint8 {
	return uint8(min(255, max(0, v)))
}

// Bevel holds the colours of a shaded block: the face, the lit top and left
// edges, the shadowed bottom and right edges, and the outline.
type Bevel struct {
	Face   color.RGBA
	Light  color.RGBA
	Shadow color.RGBA
	Border color.RGBA
}

const (
	bevelAmount  = 30
	borderAmount = 50
)

func BevelOf(id tetris.ShapeID) Bevel {
	face := ColorOf(id)
	return Bevel{
		Face:   face,
		Light:  Lighten(face, bevelAmount),
		Shadow: Darken(face, bevelAmount),
		Border: Darken(face, borderAmount),
	}
}
