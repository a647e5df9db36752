package render

import (
	"fmt"
	"image"
	"image/color"

	"roomviz/internal/room"
)

// ErrEmptyPath indicates a path with no tiles, which has neither start nor end.
var ErrEmptyPath = fmt.Errorf("%w: render: empty path", room.ErrContract)

// Path highlight colors.
var (
	PathStartColor = color.NRGBA{R: 255, A: 125}
	PathEndColor   = color.NRGBA{G: 255, A: 125}
	PathColor      = color.NRGBA{B: 255, A: 125}
)

// RenderPath highlights path on dst: the start tile, then every tile strictly
// between start and end as a single overlay, then the end tile. A one-tile
// path is drawn as start and end on the same tile with no middle layer.
func RenderPath(dst *image.RGBA, path room.Path) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if err := path.Validate(); err != nil {
		return err
	}
	scale, err := ScaleOf(dst)
	if err != nil {
		return err
	}

	if err := overlayTiles(dst, scale, PathStartColor, []room.XY{path.Start()}); err != nil {
		return err
	}
	if middle := path.Middle(); len(middle) > 0 {
		if err := overlayTiles(dst, scale, PathColor, middle); err != nil {
			return err
		}
	}
	return overlayTiles(dst, scale, PathEndColor, []room.XY{path.End()})
}
