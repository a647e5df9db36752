package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"roomviz/internal/room"
)

// ErrUnknownKind indicates a tile kind the painter has no drawing for.
var ErrUnknownKind = fmt.Errorf("%w: render: unknown tile kind", room.ErrContract)

var terrainColors = map[room.TerrainKind]color.RGBA{
	room.Plain: {43, 43, 43, 255},
	room.Swamp: {35, 37, 19, 255},
	room.Wall:  {17, 17, 17, 255},
}

var resourceColors = map[room.ResourceKind]color.RGBA{
	room.Source:           {255, 231, 66, 255},
	room.MineralHydrogen:  {180, 180, 180, 255},
	room.MineralOxygen:    {220, 220, 220, 255},
	room.MineralUtrium:    {80, 208, 248, 255},
	room.MineralLemergium: {0, 240, 152, 255},
	room.MineralKeanium:   {160, 128, 248, 255},
	room.MineralZynthium:  {250, 210, 128, 255},
	room.MineralCatalyst:  {255, 102, 102, 255},
}

// TilePainter draws single-tile sprites for terrain, resources and
// structures. Kinds found in Sprites use the loaded PNG; everything else
// falls back to flat shapes.
type TilePainter struct {
	Scale   int
	Sprites *SpriteSet
}

// NewTilePainter returns a painter for the given scale. sprites may be nil.
func NewTilePainter(scale int, sprites *SpriteSet) *TilePainter {
	return &TilePainter{Scale: scale, Sprites: sprites}
}

// DrawTerrainTile fills tile xy with its terrain.
func (p *TilePainter) DrawTerrainTile(dst *image.RGBA, xy room.XY, t room.TerrainKind) error {
	rect, err := p.rect(xy)
	if err != nil {
		return err
	}
	if p.Sprites.Draw(dst, rect, t.String()) {
		return nil
	}
	c, ok := terrainColors[t]
	if !ok {
		return fmt.Errorf("%w: terrain %s", ErrUnknownKind, t)
	}
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// DrawResourceTile draws a resource as a disc centred on tile xy.
func (p *TilePainter) DrawResourceTile(dst *image.RGBA, xy room.XY, r room.ResourceKind) error {
	rect, err := p.rect(xy)
	if err != nil {
		return err
	}
	if p.Sprites.Draw(dst, rect, string(r)) {
		return nil
	}
	c, ok := resourceColors[r]
	if !ok {
		return fmt.Errorf("%w: resource %q", ErrUnknownKind, r)
	}
	p.fillRing(dst, rect, c, p.Scale*3/8, 0)
	return nil
}

// DrawStructureTile draws a buildable structure on tile xy.
func (p *TilePainter) DrawStructureTile(dst *image.RGBA, xy room.XY, s room.StructureKind) error {
	rect, err := p.rect(xy)
	if err != nil {
		return err
	}
	if p.Sprites.Draw(dst, rect, string(s)) {
		return nil
	}

	inset := max(p.Scale/8, 1)
	switch s {
	case room.ConstructedWall:
		draw.Draw(dst, rect, image.NewUniform(color.RGBA{60, 60, 60, 255}), image.Point{}, draw.Src)
	case room.Controller:
		fill(dst, rect.Inset(inset), color.RGBA{200, 200, 200, 255})
		fill(dst, rect.Inset(inset*3), color.RGBA{60, 60, 60, 255})
	case room.Extractor:
		// Ring only, so the mineral underneath stays visible.
		p.fillRing(dst, rect, color.RGBA{160, 160, 160, 255}, p.Scale/2, p.Scale*3/8)
	case room.Terminal:
		fill(dst, rect.Inset(inset), color.RGBA{170, 170, 170, 255})
		fill(dst, rect.Inset(inset*3), color.RGBA{255, 255, 255, 255})
	default:
		return fmt.Errorf("%w: structure %q", ErrUnknownKind, s)
	}
	return nil
}

func (p *TilePainter) rect(xy room.XY) (image.Rectangle, error) {
	if !xy.Valid() {
		return image.Rectangle{}, fmt.Errorf("%w: tile %s", room.ErrOutOfRange, xy)
	}
	return TileRect(p.Scale, xy), nil
}

func (p *TilePainter) fillRing(dst *image.RGBA, rect image.Rectangle, c color.RGBA, outer, inner int) {
	center := rect.Min.Add(image.Pt(p.Scale/2, p.Scale/2))
	mask := &ring{center: center, outer: outer, inner: inner}
	draw.DrawMask(dst, rect, image.NewUniform(c), image.Point{}, mask, rect.Min, draw.Over)
}

func fill(dst *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// ring is an alpha mask that is opaque between two radii around center.
type ring struct {
	center       image.Point
	outer, inner int
}

func (r *ring) ColorModel() color.Model { return color.AlphaModel }

func (r *ring) Bounds() image.Rectangle {
	return image.Rect(r.center.X-r.outer, r.center.Y-r.outer, r.center.X+r.outer, r.center.Y+r.outer)
}

func (r *ring) At(x, y int) color.Color {
	// Sample at the pixel centre.
	dx := 2*(x-r.center.X) + 1
	dy := 2*(y-r.center.Y) + 1
	d2 := dx*dx + dy*dy
	if d2 < 4*r.outer*r.outer && d2 >= 4*r.inner*r.inner {
		return color.Opaque
	}
	return color.Transparent
}
