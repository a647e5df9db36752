// Package visualize turns one room of a shard snapshot into a sequence of
// comparable debug images.
package visualize

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"roomviz/internal/maps"
	"roomviz/internal/regions"
	"roomviz/internal/render"
	"roomviz/internal/room"
)

// ErrNoTerrain indicates room data without terrain.
var ErrNoTerrain = errors.New("visualize: room has no terrain")

// TileDrawer draws the single-tile sprites of the base layer.
type TileDrawer interface {
	DrawTerrainTile(dst *image.RGBA, xy room.XY, t room.TerrainKind) error
	DrawResourceTile(dst *image.RGBA, xy room.XY, r room.ResourceKind) error
	DrawStructureTile(dst *image.RGBA, xy room.XY, s room.StructureKind) error
}

// Analyzer partitions a room's terrain into regions.
type Analyzer interface {
	Analyze(t *room.Terrain) (render.Partition, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(t *room.Terrain) (render.Partition, error)

// Analyze calls f(t).
func (f AnalyzerFunc) Analyze(t *room.Terrain) (render.Partition, error) {
	return f(t)
}

// WatershedAnalyzer runs regions.Analyze.
var WatershedAnalyzer = AnalyzerFunc(func(t *room.Terrain) (render.Partition, error) {
	a, err := regions.Analyze(t)
	if err != nil {
		return nil, err
	}
	return a, nil
})

// Options configures a Pipeline. Zero fields take defaults.
type Options struct {
	Scale    int
	Tiles    TileDrawer
	Analyzer Analyzer
	Text     render.TextDrawer
	Log      *zerolog.Logger
}

// Pipeline renders rooms. It holds no per-room state and may be shared by
// concurrent RenderRoom calls as long as its collaborators allow it.
type Pipeline struct {
	scale    int
	tiles    TileDrawer
	analyzer Analyzer
	regions  *render.RegionRenderer
	log      zerolog.Logger
}

// New returns a pipeline built from opts.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		scale:    opts.Scale,
		tiles:    opts.Tiles,
		analyzer: opts.Analyzer,
		log:      zerolog.Nop(),
	}
	if opts.Log != nil {
		p.log = *opts.Log
	}
	if p.scale <= 0 {
		p.scale = render.DefaultScaleFactor
	}
	if p.tiles == nil {
		p.tiles = render.NewTilePainter(p.scale, nil)
	}
	if p.analyzer == nil {
		p.analyzer = WatershedAnalyzer
	}
	text := opts.Text
	if text == nil {
		text = render.NewLabeler(p.scale)
	}
	p.regions = &render.RegionRenderer{Text: text, Log: p.log}
	return p
}

// Scale returns the tile size in pixels.
func (p *Pipeline) Scale() int {
	return p.scale
}

// RenderRoom returns the room's variants in order: the base layer, then a
// copy of it with the region analysis drawn on top.
func (p *Pipeline) RenderRoom(rd *maps.RoomData) ([]*image.RGBA, error) {
	log := p.log.With().Str("room", rd.Name).Logger()

	base, err := p.DrawBase(rd)
	if err != nil {
		return nil, err
	}

	analysis := render.Clone(base)
	start := time.Now()
	partition, err := p.analyzer.Analyze(rd.Terrain)
	if err != nil {
		return nil, fmt.Errorf("analyze room %s: %w", rd.Name, err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Int("regions", len(partition.Regions())).Msg("room analyzed")

	start = time.Now()
	if err := p.regions.Render(analysis, partition); err != nil {
		return nil, fmt.Errorf("render regions for %s: %w", rd.Name, err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("regions rendered")

	return []*image.RGBA{base, analysis}, nil
}

// RenderPath returns a copy of the base layer with path highlighted.
func (p *Pipeline) RenderPath(rd *maps.RoomData, path room.Path) (*image.RGBA, error) {
	base, err := p.DrawBase(rd)
	if err != nil {
		return nil, err
	}
	if err := render.RenderPath(base, path); err != nil {
		return nil, fmt.Errorf("render path for %s: %w", rd.Name, err)
	}
	return base, nil
}

// DrawBase draws terrain, then resources, then structures, so later
// layers cover earlier ones on the same tile.
func (p *Pipeline) DrawBase(rd *maps.RoomData) (*image.RGBA, error) {
	if rd.Terrain == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTerrain, rd.Name)
	}
	img := render.NewCanvas(p.scale)

	for y := 0; y < room.Size; y++ {
		for x := 0; x < room.Size; x++ {
			xy := room.XY{X: x, Y: y}
			if err := p.tiles.DrawTerrainTile(img, xy, rd.Terrain.At(xy)); err != nil {
				return nil, fmt.Errorf("draw terrain for %s: %w", rd.Name, err)
			}
		}
	}

	for _, o := range rd.Objects {
		if kind, ok := o.Resource(); ok {
			if err := p.tiles.DrawResourceTile(img, o.XY(), kind); err != nil {
				return nil, fmt.Errorf("draw %s for %s: %w", o.Type, rd.Name, err)
			}
		}
	}

	for _, o := range rd.Objects {
		if kind, ok := o.Structure(); ok {
			if err := p.tiles.DrawStructureTile(img, o.XY(), kind); err != nil {
				return nil, fmt.Errorf("draw %s for %s: %w", o.Type, rd.Name, err)
			}
		}
	}
	return img, nil
}
