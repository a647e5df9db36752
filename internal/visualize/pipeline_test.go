package visualize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"roomviz/internal/maps"
	"roomviz/internal/render"
	"roomviz/internal/room"
)

type drawCall struct {
	layer string
	xy    room.XY
	kind  string
}

// recordingTiles records every draw and fails on the tile in failAt.
type recordingTiles struct {
	calls  []drawCall
	failAt *room.XY
}

func (r *recordingTiles) record(layer string, xy room.XY, kind string) error {
	r.calls = append(r.calls, drawCall{layer, xy, kind})
	if r.failAt != nil && *r.failAt == xy {
		return fmt.Errorf("%w: %s", render.ErrUnknownKind, kind)
	}
	return nil
}

func (r *recordingTiles) DrawTerrainTile(_ *image.RGBA, xy room.XY, t room.TerrainKind) error {
	return r.record("terrain", xy, t.String())
}

func (r *recordingTiles) DrawResourceTile(_ *image.RGBA, xy room.XY, k room.ResourceKind) error {
	return r.record("resource", xy, string(k))
}

func (r *recordingTiles) DrawStructureTile(_ *image.RGBA, xy room.XY, k room.StructureKind) error {
	return r.record("structure", xy, string(k))
}

type stubPartition struct {
	regions []room.Region
	heights map[room.XY]int
	borders []room.XY
}

func (s stubPartition) Regions() []room.Region { return s.regions }

func (s stubPartition) HeightOf(xy room.XY) (int, bool) {
	h, ok := s.heights[xy]
	return h, ok
}

func (s stubPartition) BorderTiles() []room.XY { return s.borders }

type noText struct{}

func (noText) DrawText(draw.Image, room.XY, string) {}

func plainRoom(name string, objects ...maps.Object) *maps.RoomData {
	return &maps.RoomData{Name: name, Terrain: &room.Terrain{}, Objects: objects}
}

func pixelAt(img *image.RGBA, xy room.XY) color.RGBA {
	return img.RGBAAt(xy.X*render.DefaultScaleFactor, xy.Y*render.DefaultScaleFactor)
}

func TestDrawBaseOrder(t *testing.T) {
	tiles := &recordingTiles{}
	p := New(Options{Tiles: tiles})

	rd := plainRoom("W1N1",
		maps.Object{Type: maps.TypeController, X: 3, Y: 3},
		maps.Object{Type: maps.TypeSource, X: 1, Y: 1},
		maps.Object{Type: "spawn", X: 2, Y: 2},
		maps.Object{Type: maps.TypeMineral, X: 4, Y: 4, MineralType: "H"},
		maps.Object{Type: maps.TypeExtractor, X: 4, Y: 4},
	)
	_, err := p.DrawBase(rd)
	require.NoError(t, err)

	n := room.Size * room.Size
	require.Len(t, tiles.calls, n+4)
	for i, c := range tiles.calls[:n] {
		require.Equal(t, "terrain", c.layer)
		require.Equal(t, room.FromIndex(i), c.xy)
	}
	assert.Equal(t, []drawCall{
		{"resource", room.XY{X: 1, Y: 1}, "source"},
		{"resource", room.XY{X: 4, Y: 4}, "H"},
		{"structure", room.XY{X: 3, Y: 3}, "controller"},
		{"structure", room.XY{X: 4, Y: 4}, "extractor"},
	}, tiles.calls[n:])
}

func TestRenderRoomVariants(t *testing.T) {
	member := room.XY{X: 10, Y: 10}
	border := room.XY{X: 11, Y: 10}
	partition := stubPartition{
		regions: []room.Region{{Members: []room.XY{member}}},
		heights: map[room.XY]int{member: 1},
		borders: []room.XY{border},
	}
	p := New(Options{
		Analyzer: AnalyzerFunc(func(*room.Terrain) (render.Partition, error) { return partition, nil }),
		Text:     noText{},
	})

	rd := plainRoom("W1N1", maps.Object{Type: maps.TypeSource, X: 30, Y: 30})
	imgs, err := p.RenderRoom(rd)
	require.NoError(t, err)
	require.Len(t, imgs, 2)

	base, annotated := imgs[0], imgs[1]
	size := room.Size * render.DefaultScaleFactor
	assert.Equal(t, image.Rect(0, 0, size, size), base.Bounds())
	assert.Equal(t, image.Rect(0, 0, size, size), annotated.Bounds())

	want, err := p.DrawBase(rd)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, base.Pix, "variant 0 is the base layer")

	c, err := render.AssignColor(2, 0)
	require.NoError(t, err)
	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	px.SetRGBA(0, 0, pixelAt(base, member))
	draw.Draw(px, px.Bounds(), image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: render.RegionAlpha}), image.Point{}, draw.Over)
	assert.Equal(t, px.RGBAAt(0, 0), pixelAt(annotated, member))

	assert.Equal(t, pixelAt(base, border), pixelAt(annotated, border), "border tiles only get a label")
	assert.Equal(t, pixelAt(base, room.XY{X: 30, Y: 30}), pixelAt(annotated, room.XY{X: 30, Y: 30}))

	annotated.SetRGBA(0, 0, color.RGBA{1, 2, 3, 4})
	assert.NotEqual(t, annotated.RGBAAt(0, 0), base.RGBAAt(0, 0), "variants share no pixels")
}

func TestRenderRoomWatershed(t *testing.T) {
	rd := plainRoom("W1N1")
	for i := 0; i < room.Size; i++ {
		rd.Terrain.Set(room.XY{X: 25, Y: i}, room.Wall)
	}

	imgs, err := New(Options{}).RenderRoom(rd)
	require.NoError(t, err)
	require.Len(t, imgs, 2)

	assert.NotEqual(t, pixelAt(imgs[0], room.XY{X: 5, Y: 5}), pixelAt(imgs[1], room.XY{X: 5, Y: 5}))
	assert.NotEqual(t, pixelAt(imgs[1], room.XY{X: 5, Y: 5}), pixelAt(imgs[1], room.XY{X: 40, Y: 5}))
	assert.Equal(t, pixelAt(imgs[0], room.XY{X: 25, Y: 5}), pixelAt(imgs[1], room.XY{X: 25, Y: 5}), "walls stay unannotated")
}

func TestRenderRoomErrors(t *testing.T) {
	t.Run("draw failure", func(t *testing.T) {
		bad := room.XY{X: 7, Y: 7}
		p := New(Options{Tiles: &recordingTiles{failAt: &bad}, Text: noText{}})
		imgs, err := p.RenderRoom(plainRoom("W1N1"))
		require.ErrorIs(t, err, render.ErrUnknownKind)
		require.ErrorIs(t, err, room.ErrContract)
		assert.Nil(t, imgs)
	})

	t.Run("unknown mineral", func(t *testing.T) {
		p := New(Options{Text: noText{}})
		rd := plainRoom("W1N1", maps.Object{Type: maps.TypeMineral, X: 1, Y: 1, MineralType: "Q"})
		imgs, err := p.RenderRoom(rd)
		require.ErrorIs(t, err, render.ErrUnknownKind)
		assert.Nil(t, imgs)
	})

	t.Run("object off the grid", func(t *testing.T) {
		p := New(Options{Text: noText{}})
		rd := plainRoom("W1N1", maps.Object{Type: maps.TypeSource, X: 50, Y: 1})
		_, err := p.RenderRoom(rd)
		require.ErrorIs(t, err, room.ErrOutOfRange)
	})

	t.Run("analyzer failure", func(t *testing.T) {
		boom := errors.New("boom")
		p := New(Options{
			Analyzer: AnalyzerFunc(func(*room.Terrain) (render.Partition, error) { return nil, boom }),
		})
		imgs, err := p.RenderRoom(plainRoom("W1N1"))
		require.ErrorIs(t, err, boom)
		assert.Nil(t, imgs)
	})

	t.Run("no terrain", func(t *testing.T) {
		_, err := New(Options{}).RenderRoom(&maps.RoomData{Name: "W1N1"})
		require.ErrorIs(t, err, ErrNoTerrain)
	})
}

func TestRenderPath(t *testing.T) {
	p := New(Options{})
	rd := plainRoom("W1N1")
	base, err := p.DrawBase(rd)
	require.NoError(t, err)

	path, err := room.ParsePath("2,2 2,3 2,4")
	require.NoError(t, err)
	img, err := p.RenderPath(rd, path)
	require.NoError(t, err)

	for _, xy := range path {
		assert.NotEqual(t, pixelAt(base, xy), pixelAt(img, xy), "tile %s highlighted", xy)
	}
	assert.Equal(t, pixelAt(base, room.XY{X: 3, Y: 3}), pixelAt(img, room.XY{X: 3, Y: 3}))

	_, err = p.RenderPath(rd, nil)
	require.ErrorIs(t, err, render.ErrEmptyPath)
	_, err = p.RenderPath(rd, room.Path{{X: 2, Y: 2}, {X: -1, Y: 0}})
	require.ErrorIs(t, err, room.ErrOutOfRange)
}
