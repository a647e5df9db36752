package room

import "fmt"

// TerrainKind is the terrain of a single tile.
type TerrainKind uint8

const (
	Plain TerrainKind = iota
	Wall
	Swamp
)

func (t TerrainKind) String() string {
	switch t {
	case Plain:
		return "plain"
	case Wall:
		return "wall"
	case Swamp:
		return "swamp"
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// Walkable reports whether units can stand on the tile.
func (t TerrainKind) Walkable() bool {
	return t == Plain || t == Swamp
}

// Terrain is the full terrain of a room in row-major order.
type Terrain [Size * Size]TerrainKind

// At returns the terrain at xy. Out-of-range coordinates read as Wall.
func (t *Terrain) At(xy XY) TerrainKind {
	if !xy.Valid() {
		return Wall
	}
	return t[xy.Index()]
}

// Set stores the terrain kind at xy.
func (t *Terrain) Set(xy XY, k TerrainKind) {
	t[xy.Index()] = k
}

// ParseTerrain decodes the offline digit encoding, one digit per tile in
// row-major order: 0 plain, 1 wall, 2 swamp, 3 wall on swamp.
func ParseTerrain(s string) (*Terrain, error) {
	if len(s) != Size*Size {
		return nil, fmt.Errorf("terrain has %d tiles, expected %d", len(s), Size*Size)
	}
	var t Terrain
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			t[i] = Plain
		case '1', '3':
			t[i] = Wall
		case '2':
			t[i] = Swamp
		default:
			xy := FromIndex(i)
			return nil, fmt.Errorf("terrain tile %s: invalid code %q", xy, s[i])
		}
	}
	return &t, nil
}

// Encode is the inverse of ParseTerrain.
func (t *Terrain) Encode() string {
	buf := make([]byte, len(t))
	for i, k := range t {
		switch k {
		case Wall:
			buf[i] = '1'
		case Swamp:
			buf[i] = '2'
		default:
			buf[i] = '0'
		}
	}
	return string(buf)
}
