package render

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"

	"roomviz/internal/room"
)

// overBlank returns the pixel produced by compositing layers, in order,
// onto a transparent pixel.
func overBlank(layers ...color.NRGBA) color.RGBA {
	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, c := range layers {
		draw.Draw(px, px.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
	}
	return px.RGBAAt(0, 0)
}

// tileOf maps a pixel back to its tile at the default scale.
func tileOf(x, y int) room.XY {
	return room.XY{X: x / DefaultScaleFactor, Y: y / DefaultScaleFactor}
}

// corner is the top-left pixel of a tile, which labels never reach.
func corner(img *image.RGBA, xy room.XY) color.RGBA {
	return img.RGBAAt(xy.X*DefaultScaleFactor, xy.Y*DefaultScaleFactor)
}

// assertTiles checks every pixel: tiles in want must be exactly that color,
// all others transparent.
func assertTiles(t *testing.T, img *image.RGBA, want map[room.XY]color.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := img.RGBAAt(x, y)
			expected := want[tileOf(x, y)]
			if got != expected {
				t.Fatalf("pixel (%d,%d) in tile %s = %v, want %v", x, y, tileOf(x, y), got, expected)
			}
		}
	}
}
