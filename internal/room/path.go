package room

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is an ordered sequence of tiles. The first element is the start, the
// last the end, everything strictly between is the middle.
type Path []XY

// Start returns the first tile. It panics on an empty path; callers check Len first.
func (p Path) Start() XY {
	return p[0]
}

// End returns the last tile.
func (p Path) End() XY {
	return p[len(p)-1]
}

// Middle returns the tiles strictly between start and end.
// Paths of length 0, 1 and 2 have no middle.
func (p Path) Middle() []XY {
	if len(p) <= 2 {
		return nil
	}
	return p[1 : len(p)-1]
}

// Validate checks every tile lies inside the room.
func (p Path) Validate() error {
	for i, xy := range p {
		if !xy.Valid() {
			return fmt.Errorf("%w: path[%d] = %s", ErrOutOfRange, i, xy)
		}
	}
	return nil
}

// ParsePath reads a path written as space separated "x,y" pairs, e.g. "2,2 2,3 2,4".
func ParsePath(s string) (Path, error) {
	fields := strings.Fields(s)
	path := make(Path, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("invalid path step %q (expected x,y)", f)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("invalid x in %q: %w", f, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("invalid y in %q: %w", f, err)
		}
		xy, err := NewXY(x, y)
		if err != nil {
			return nil, err
		}
		path = append(path, xy)
	}
	return path, nil
}
