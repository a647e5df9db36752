// Package synth generates synthetic shard snapshots: noise-shaped rooms
// with a controller, sources and a mineral placed on open ground.
package synth

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"roomviz/internal/maps"
	"roomviz/internal/room"
)

// Options controls generation.
type Options struct {
	Seed int64
	// WallLevel is the elevation above which a tile becomes wall.
	WallLevel float64
	// SwampLevel is the moisture above which open ground becomes swamp.
	SwampLevel float64
	// Sources per room, at least one.
	Sources int
	// Extractor places an extractor on the mineral.
	Extractor bool
}

// DefaultOptions mirror the density of real shard rooms.
func DefaultOptions(seed int64) Options {
	return Options{Seed: seed, WallLevel: 0.62, SwampLevel: 0.66, Sources: 2}
}

var (
	elevationOctaves = Octaves{Frequency: 0.06, Count: 4, Lacunarity: 2, Persistence: 0.5}
	moistureOctaves  = Octaves{Frequency: 0.09, Count: 3, Lacunarity: 2, Persistence: 0.5}
	edgeOctaves      = Octaves{Frequency: 0.15, Count: 2, Lacunarity: 2, Persistence: 0.5}
)

// RoomNames returns w*h room names of a grid starting at W0N0, walking
// west then north.
func RoomNames(w, h int) []string {
	names := make([]string, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			names = append(names, fmt.Sprintf("W%dN%d", x, y))
		}
	}
	return names
}

// Shard generates every named room. The same options and names always give
// the same shard.
func Shard(names []string, opts Options) (*maps.Shard, error) {
	s := &maps.Shard{
		Description: fmt.Sprintf("synthetic shard, seed %d", opts.Seed),
		Rooms:       make(map[string]*maps.RoomData, len(names)),
	}
	for _, name := range names {
		if !maps.ValidRoomName(name) {
			return nil, fmt.Errorf("invalid room name %q", name)
		}
		if _, dup := s.Rooms[name]; dup {
			return nil, fmt.Errorf("duplicate room %s", name)
		}
		s.Rooms[name] = Room(name, opts)
	}
	return s, nil
}

// Room generates one room. Its seed is derived from opts.Seed and name.
func Room(name string, opts Options) *maps.RoomData {
	seed := roomSeed(opts.Seed, name)
	t := terrain(seed, opts)
	rng := rand.New(rand.NewSource(seed + 100))

	rd := &maps.RoomData{Name: name, Status: "normal", Terrain: t, Objects: []maps.Object{}}
	open := openTiles(t)
	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })

	take := func() (room.XY, bool) {
		if len(open) == 0 {
			return room.XY{}, false
		}
		xy := open[0]
		open = open[1:]
		return xy, true
	}

	if xy, ok := take(); ok {
		rd.Objects = append(rd.Objects, maps.Object{Type: maps.TypeController, X: xy.X, Y: xy.Y})
	}
	for i := 0; i < max(opts.Sources, 1); i++ {
		if xy, ok := take(); ok {
			rd.Objects = append(rd.Objects, maps.Object{Type: maps.TypeSource, X: xy.X, Y: xy.Y})
		}
	}
	if xy, ok := take(); ok {
		mineral := room.MineralKinds[rng.Intn(len(room.MineralKinds))]
		rd.Objects = append(rd.Objects, maps.Object{Type: maps.TypeMineral, X: xy.X, Y: xy.Y, MineralType: string(mineral)})
		if opts.Extractor {
			rd.Objects = append(rd.Objects, maps.Object{Type: maps.TypeExtractor, X: xy.X, Y: xy.Y})
		}
	}
	return rd
}

func roomSeed(seed int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ int64(h.Sum64())
}

func terrain(seed int64, opts Options) *room.Terrain {
	elevation := NewNoise(seed)
	moisture := NewNoise(seed + 1)
	edges := NewNoise(seed + 2)

	var t room.Terrain
	for y := 0; y < room.Size; y++ {
		for x := 0; x < room.Size; x++ {
			xy := room.XY{X: x, Y: y}
			fx, fy := float64(x), float64(y)

			if onEdge(xy) {
				// Gaps in the edge wall are the room exits.
				if edges.Fractal(fx, fy, edgeOctaves) < 0.55 {
					t.Set(xy, room.Wall)
				}
				continue
			}

			switch {
			case elevation.Fractal(fx, fy, elevationOctaves) > opts.WallLevel:
				t.Set(xy, room.Wall)
			case moisture.Fractal(fx, fy, moistureOctaves) > opts.SwampLevel:
				t.Set(xy, room.Swamp)
			}
		}
	}
	return &t
}

func onEdge(xy room.XY) bool {
	return xy.X == 0 || xy.Y == 0 || xy.X == room.Size-1 || xy.Y == room.Size-1
}

// openTiles lists plain tiles at least two tiles from the room edge, so
// objects never block an exit.
func openTiles(t *room.Terrain) []room.XY {
	var out []room.XY
	for y := 2; y < room.Size-2; y++ {
		for x := 2; x < room.Size-2; x++ {
			xy := room.XY{X: x, Y: y}
			if t.At(xy) == room.Plain {
				out = append(out, xy)
			}
		}
	}
	return out
}

// Distribution counts tiles per terrain kind.
func Distribution(t *room.Terrain) map[room.TerrainKind]int {
	counts := make(map[room.TerrainKind]int)
	for _, k := range t {
		counts[k]++
	}
	return counts
}
