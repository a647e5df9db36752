// Package render draws rooms onto raster canvases: tile sprites, alpha
// overlays, text labels, and the path and region debug layers built on them.
package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"roomviz/internal/room"
)

// DefaultScaleFactor is the pixel size of one tile.
const DefaultScaleFactor = 16

// ErrCanvasSize indicates a canvas whose dimensions are not room.Size tiles square.
var ErrCanvasSize = fmt.Errorf("%w: render: canvas is not a square room canvas", room.ErrContract)

// NewCanvas allocates a transparent canvas of room.Size*scale pixels per side.
func NewCanvas(scale int) *image.RGBA {
	side := room.Size * scale
	return image.NewRGBA(image.Rect(0, 0, side, side))
}

// Clone returns a deep copy of src that shares no pixel storage with it.
func Clone(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}

// ScaleOf derives the tile scale from a canvas.
func ScaleOf(img image.Image) (int, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 || b.Dx()%room.Size != 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrCanvasSize, b.Dx(), b.Dy())
	}
	return b.Dx() / room.Size, nil
}

// TileRect returns the pixel rectangle covered by tile xy.
func TileRect(scale int, xy room.XY) image.Rectangle {
	x0, y0 := xy.X*scale, xy.Y*scale
	return image.Rect(x0, y0, x0+scale, y0+scale)
}

// TileAlphaOverlay builds a width x height overlay that is transparent
// except for tile xy, which is filled with c.
func TileAlphaOverlay(width, height, scale int, c color.NRGBA, xy room.XY) (*image.NRGBA, error) {
	return MultiTileAlphaOverlay(width, height, scale, c, []room.XY{xy})
}

// MultiTileAlphaOverlay builds one overlay covering every tile in tiles.
// Tiles are painted into a single layer, so a tile listed twice is not
// blended twice when the overlay is composited.
func MultiTileAlphaOverlay(width, height, scale int, c color.NRGBA, tiles []room.XY) (*image.NRGBA, error) {
	overlay := image.NewNRGBA(image.Rect(0, 0, width, height))
	src := image.NewUniform(c)
	for _, xy := range tiles {
		if !xy.Valid() {
			return nil, fmt.Errorf("%w: overlay tile %s", room.ErrOutOfRange, xy)
		}
		draw.Draw(overlay, TileRect(scale, xy), src, image.Point{}, draw.Src)
	}
	return overlay, nil
}

// Composite blends overlay over dst with its origin at (x, y).
func Composite(dst draw.Image, overlay image.Image, x, y int) {
	r := overlay.Bounds().Sub(overlay.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(dst, r, overlay, overlay.Bounds().Min, draw.Over)
}

// overlayTiles builds a multi-tile overlay sized to dst and composites it at the origin.
func overlayTiles(dst *image.RGBA, scale int, c color.NRGBA, tiles []room.XY) error {
	b := dst.Bounds()
	overlay, err := MultiTileAlphaOverlay(b.Dx(), b.Dy(), scale, c, tiles)
	if err != nil {
		return err
	}
	Composite(dst, overlay, 0, 0)
	return nil
}
