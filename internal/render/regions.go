package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/rs/zerolog"

	"roomviz/internal/room"
)

// RegionAlpha is the opacity of a region overlay.
const RegionAlpha = 128

// BorderMarker is drawn on every border tile.
const BorderMarker = "B"

// Partition is the result of a region analysis.
type Partition interface {
	// Regions returns the regions in a stable order; colors follow it.
	Regions() []room.Region
	// HeightOf returns the height of a tile that belongs to some region.
	HeightOf(xy room.XY) (int, bool)
	// BorderTiles returns the tiles on region or room boundaries.
	BorderTiles() []room.XY
}

// RegionRenderer colors each region of a partition and labels its tiles.
type RegionRenderer struct {
	Text TextDrawer
	Log  zerolog.Logger
}

// NewRegionRenderer returns a renderer using a Labeler at the given scale.
func NewRegionRenderer(scale int, log zerolog.Logger) *RegionRenderer {
	return &RegionRenderer{Text: NewLabeler(scale), Log: log}
}

// Render draws p onto dst. Each region is finished, overlay then height
// labels, before the next one starts; border markers go on last.
func (r *RegionRenderer) Render(dst *image.RGBA, p Partition) error {
	scale, err := ScaleOf(dst)
	if err != nil {
		return err
	}

	regions := p.Regions()
	// One extra category stays reserved for the border tiles.
	count := len(regions) + 1

	for i, region := range regions {
		c, err := AssignColor(count, i)
		if err != nil {
			return err
		}
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: RegionAlpha}
		if err := overlayTiles(dst, scale, fill, region.Members); err != nil {
			return err
		}

		for _, xy := range region.Members {
			h, ok := p.HeightOf(xy)
			if !ok {
				r.Log.Debug().Int("region", i).Stringer("tile", xy).Msg("no height for region tile")
				continue
			}
			r.Text.DrawText(dst, xy, strconv.Itoa(h))
		}
	}

	for _, xy := range p.BorderTiles() {
		if !xy.Valid() {
			return fmt.Errorf("%w: border tile %s", room.ErrOutOfRange, xy)
		}
		r.Text.DrawText(dst, xy, BorderMarker)
	}
	return nil
}
