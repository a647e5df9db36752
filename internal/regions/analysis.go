package regions

import (
	"errors"

	"roomviz/internal/room"
)

// ErrNilTerrain indicates Analyze was called without terrain.
var ErrNilTerrain = errors.New("regions: nil terrain")

const (
	unassigned = 0
	border     = -1
)

// neighbors are the offsets of the eight surrounding tiles.
var neighbors = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// Analysis is an immutable partition of one room.
type Analysis struct {
	heights [room.Size * room.Size]int
	labels  [room.Size * room.Size]int
	regions []room.Region
	borders []room.XY
}

// Analyze partitions the walkable tiles of terrain.
func Analyze(terrain *room.Terrain) (*Analysis, error) {
	if terrain == nil {
		return nil, ErrNilTerrain
	}
	a := &Analysis{}
	a.computeHeights(terrain)
	a.watershed(terrain)
	a.collect()
	return a, nil
}

// Regions returns the regions in the order they were created.
func (a *Analysis) Regions() []room.Region {
	return a.regions
}

// HeightOf returns the height of a walkable tile.
func (a *Analysis) HeightOf(xy room.XY) (int, bool) {
	if !xy.Valid() {
		return 0, false
	}
	h := a.heights[xy.Index()]
	return h, h > 0
}

// BorderTiles returns the tiles separating two or more regions, sorted by (x, y).
func (a *Analysis) BorderTiles() []room.XY {
	return a.borders
}

// RegionOf returns the index into Regions of the region containing xy.
func (a *Analysis) RegionOf(xy room.XY) (int, bool) {
	if !xy.Valid() {
		return 0, false
	}
	l := a.labels[xy.Index()]
	if l <= 0 {
		return 0, false
	}
	return l - 1, true
}

// IsBorder reports whether xy is a border tile.
func (a *Analysis) IsBorder(xy room.XY) bool {
	return xy.Valid() && a.labels[xy.Index()] == border
}

// computeHeights runs a level-synchronous BFS from every wall. Walkable
// tiles on the room edge start at height 1 since the outside reads as wall.
func (a *Analysis) computeHeights(terrain *room.Terrain) {
	var frontier []int
	for i := range terrain {
		if !terrain[i].Walkable() {
			frontier = append(frontier, i)
		}
	}

	for level := 1; ; level++ {
		var next []int
		push := func(i int) {
			if terrain[i].Walkable() && a.heights[i] == 0 {
				a.heights[i] = level
				next = append(next, i)
			}
		}
		if level == 1 {
			for i := range terrain {
				xy := room.FromIndex(i)
				if xy.X == 0 || xy.Y == 0 || xy.X == room.Size-1 || xy.Y == room.Size-1 {
					push(i)
				}
			}
		}
		for _, i := range frontier {
			for _, n := range neighborIndices(i) {
				push(n)
			}
		}
		if len(next) == 0 {
			return
		}
		frontier = next
	}
}

func (a *Analysis) watershed(terrain *room.Terrain) {
	levels := make(map[int][]int)
	maxHeight := 0
	for i, h := range a.heights {
		if h == 0 {
			continue
		}
		levels[h] = append(levels[h], i)
		maxHeight = max(maxHeight, h)
	}

	next := 1
	for h := maxHeight; h >= 1; h-- {
		tiles := levels[h]

		// Grow existing regions into this level, breadth first.
		var queue []int
		for _, i := range tiles {
			if a.touchesLabel(i) {
				queue = append(queue, i)
			}
		}
		for qi := 0; qi < len(queue); qi++ {
			i := queue[qi]
			if a.labels[i] != unassigned {
				continue
			}
			a.labels[i] = a.claim(i)
			if a.labels[i] <= 0 {
				// Borders do not carry a region any further.
				continue
			}
			for _, n := range neighborIndices(i) {
				if a.heights[n] == h && a.labels[n] == unassigned {
					queue = append(queue, n)
				}
			}
		}

		// Whatever is left at this level seeds new regions.
		for _, i := range tiles {
			if a.labels[i] != unassigned {
				continue
			}
			a.flood(i, h, next)
			next++
		}
	}
}

// touchesLabel reports whether any neighbor belongs to a region.
func (a *Analysis) touchesLabel(i int) bool {
	for _, n := range neighborIndices(i) {
		if a.labels[n] > 0 {
			return true
		}
	}
	return false
}

// claim returns the single region label around i, or border if there are several.
func (a *Analysis) claim(i int) int {
	label := unassigned
	for _, n := range neighborIndices(i) {
		l := a.labels[n]
		if l <= 0 {
			continue
		}
		if label != unassigned && l != label {
			return border
		}
		label = l
	}
	return label
}

func (a *Analysis) flood(start, h, label int) {
	a.labels[start] = label
	queue := []int{start}
	for qi := 0; qi < len(queue); qi++ {
		for _, n := range neighborIndices(queue[qi]) {
			if a.heights[n] == h && a.labels[n] == unassigned {
				a.labels[n] = label
				queue = append(queue, n)
			}
		}
	}
}

func (a *Analysis) collect() {
	count := 0
	for _, l := range a.labels {
		count = max(count, l)
	}
	a.regions = make([]room.Region, count)
	for i, l := range a.labels {
		switch {
		case l > 0:
			a.regions[l-1].Members = append(a.regions[l-1].Members, room.FromIndex(i))
		case l == border:
			a.borders = append(a.borders, room.FromIndex(i))
		}
	}
	for _, r := range a.regions {
		room.SortXY(r.Members)
	}
	room.SortXY(a.borders)
}

func neighborIndices(i int) []int {
	xy := room.FromIndex(i)
	out := make([]int, 0, len(neighbors))
	for _, d := range neighbors {
		n := room.XY{X: xy.X + d[0], Y: xy.Y + d[1]}
		if n.Valid() {
			out = append(out, n.Index())
		}
	}
	return out
}

// Stats summarises an analysis for logging.
type Stats struct {
	Regions     int
	BorderTiles int
	MaxHeight   int
	Largest     int
}

// Stats returns summary numbers for the partition.
func (a *Analysis) Stats() Stats {
	s := Stats{Regions: len(a.regions), BorderTiles: len(a.borders)}
	for _, h := range a.heights {
		s.MaxHeight = max(s.MaxHeight, h)
	}
	for _, r := range a.regions {
		s.Largest = max(s.Largest, r.Len())
	}
	return s
}
