package render

import (
	"fmt"
	"image/color"
	"math"

	"roomviz/internal/room"
)

var (
	// ErrCategoryCount indicates a category count below one.
	ErrCategoryCount = fmt.Errorf("%w: render: category count must be at least 1", room.ErrContract)
	// ErrCategoryIndex indicates an index outside [0, count).
	ErrCategoryIndex = fmt.Errorf("%w: render: category index out of range", room.ErrContract)
)

// AssignColor picks color number index out of total evenly spaced hues.
//
// The index is mapped to an angle on the U/V chrominance plane at constant
// luma and converted back to RGB. Channels are clamped to [0, 2] before
// scaling, so some hues saturate; the result is a debugging palette, not an
// accurate colorimetric conversion. The color depends on total as well as
// index: the same region gets a different color when the count changes.
func AssignColor(total, index int) (color.RGBA, error) {
	if total < 1 {
		return color.RGBA{}, fmt.Errorf("%w: got %d", ErrCategoryCount, total)
	}
	if index < 0 || index >= total {
		return color.RGBA{}, fmt.Errorf("%w: index %d, count %d", ErrCategoryIndex, index, total)
	}

	angle := float64(index) / float64(total) * 2 * math.Pi
	u, v := math.Cos(angle), math.Sin(angle)
	y := 1.0

	r := y + v/0.88
	g := y - 0.38*u - 0.58*v
	b := y + u/0.49

	return color.RGBA{R: wheelByte(r), G: wheelByte(g), B: wheelByte(b), A: 255}, nil
}

func wheelByte(v float64) uint8 {
	v = math.Min(math.Max(v, 0), 2) / 2
	return uint8(math.Floor(v * 255))
}
