package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"roomviz/internal/room"
)

// TextDrawer places a short label on a tile.
type TextDrawer interface {
	DrawText(dst draw.Image, xy room.XY, text string)
}

// Labeler draws text centred on a tile with a fixed bitmap face.
type Labeler struct {
	Scale int
	Face  font.Face
	Color color.Color
}

// NewLabeler returns a white basicfont labeler for the given tile scale.
func NewLabeler(scale int) *Labeler {
	return &Labeler{
		Scale: scale,
		Face:  basicfont.Face7x13,
		Color: color.White,
	}
}

// DrawText centres text on tile xy. Text wider than the tile spills over
// its neighbours symmetrically.
func (l *Labeler) DrawText(dst draw.Image, xy room.XY, text string) {
	tile := TileRect(l.Scale, xy)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.Color),
		Face: l.Face,
	}

	width := d.MeasureString(text).Ceil()
	m := l.Face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	x := tile.Min.X + (l.Scale-width)/2
	baseline := tile.Min.Y + (l.Scale-(ascent+descent))/2 + ascent
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)}
	d.DrawString(text)
}
