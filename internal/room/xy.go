// Package room holds the value types shared by the renderers, the region
// oracle and the map loader: tile coordinates, paths, regions and terrain.
package room

import (
	"fmt"
	"sort"
)

// Size is the width and height of a room in tiles.
const Size = 50

// XY is a tile coordinate inside a room.
type XY struct {
	X, Y int
}

// NewXY returns the coordinate (x, y) or ErrOutOfRange.
func NewXY(x, y int) (XY, error) {
	xy := XY{X: x, Y: y}
	if !xy.Valid() {
		return XY{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, y)
	}
	return xy, nil
}

// Valid reports whether both components lie in [0, Size).
func (xy XY) Valid() bool {
	return xy.X >= 0 && xy.X < Size && xy.Y >= 0 && xy.Y < Size
}

// Index maps the coordinate to its row-major position y*Size + x.
func (xy XY) Index() int {
	return xy.Y*Size + xy.X
}

// FromIndex is the inverse of XY.Index.
func FromIndex(idx int) XY {
	return XY{X: idx % Size, Y: idx / Size}
}

// Less orders coordinates by x, then y.
func (xy XY) Less(o XY) bool {
	if xy.X != o.X {
		return xy.X < o.X
	}
	return xy.Y < o.Y
}

func (xy XY) String() string {
	return fmt.Sprintf("(%d,%d)", xy.X, xy.Y)
}

// SortXY sorts coordinates in place by (x, y).
func SortXY(xys []XY) {
	sort.Slice(xys, func(i, j int) bool { return xys[i].Less(xys[j]) })
}

// Region is one set of member tiles produced by a region partition.
type Region struct {
	Members []XY
}

// Len returns the number of member tiles.
func (r Region) Len() int {
	return len(r.Members)
}
