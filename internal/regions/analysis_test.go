package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomviz/internal/room"
)

// carve builds an all-wall room with the given rectangles opened as plain.
// Each rectangle is {x0, y0, x1, y1}, inclusive.
func carve(rects ...[4]int) *room.Terrain {
	var t room.Terrain
	for i := range t {
		t[i] = room.Wall
	}
	for _, r := range rects {
		for y := r[1]; y <= r[3]; y++ {
			for x := r[0]; x <= r[2]; x++ {
				t.Set(room.XY{X: x, Y: y}, room.Plain)
			}
		}
	}
	return &t
}

// checkPartition verifies regions and borders are disjoint and together
// cover exactly the walkable tiles.
func checkPartition(t *testing.T, terrain *room.Terrain, a *Analysis) {
	t.Helper()
	seen := make(map[room.XY]string)
	for i, r := range a.Regions() {
		for _, xy := range r.Members {
			require.NotContains(t, seen, xy, "tile %s in two places", xy)
			seen[xy] = "region"
			idx, ok := a.RegionOf(xy)
			require.True(t, ok)
			require.Equal(t, i, idx)
		}
	}
	for _, xy := range a.BorderTiles() {
		require.NotContains(t, seen, xy, "border tile %s is also a member", xy)
		seen[xy] = "border"
		require.True(t, a.IsBorder(xy))
	}
	for i := range terrain {
		xy := room.FromIndex(i)
		_, covered := seen[xy]
		assert.Equal(t, terrain[i].Walkable(), covered, "tile %s", xy)
		_, hasHeight := a.HeightOf(xy)
		assert.Equal(t, terrain[i].Walkable(), hasHeight, "height of %s", xy)
	}
}

func TestAnalyzeTwoRoomsAndCorridor(t *testing.T) {
	terrain := carve(
		[4]int{5, 5, 11, 11},
		[4]int{17, 5, 23, 11},
		[4]int{12, 8, 16, 8},
	)

	a, err := Analyze(terrain)
	require.NoError(t, err)
	checkPartition(t, terrain, a)

	require.Len(t, a.Regions(), 2)
	assert.Equal(t, []room.XY{{X: 14, Y: 8}}, a.BorderTiles())

	left, ok := a.RegionOf(room.XY{X: 8, Y: 8})
	require.True(t, ok)
	right, ok := a.RegionOf(room.XY{X: 20, Y: 8})
	require.True(t, ok)
	assert.Equal(t, 0, left)
	assert.Equal(t, 1, right)
	assert.Equal(t, 51, a.Regions()[0].Len())
	assert.Equal(t, 51, a.Regions()[1].Len())

	tests := []struct {
		xy     room.XY
		height int
	}{
		{room.XY{X: 8, Y: 8}, 4},
		{room.XY{X: 5, Y: 5}, 1},
		{room.XY{X: 7, Y: 6}, 2},
		{room.XY{X: 12, Y: 8}, 1},
		{room.XY{X: 14, Y: 8}, 1},
	}
	for _, tt := range tests {
		h, ok := a.HeightOf(tt.xy)
		require.True(t, ok, "tile %s", tt.xy)
		assert.Equal(t, tt.height, h, "tile %s", tt.xy)
	}

	_, ok = a.HeightOf(room.XY{X: 0, Y: 0})
	assert.False(t, ok)
}

func TestAnalyzeOpenRoom(t *testing.T) {
	var terrain room.Terrain

	a, err := Analyze(&terrain)
	require.NoError(t, err)
	checkPartition(t, &terrain, a)

	require.Len(t, a.Regions(), 1)
	assert.Empty(t, a.BorderTiles())

	h, ok := a.HeightOf(room.XY{X: 0, Y: 17})
	require.True(t, ok)
	assert.Equal(t, 1, h)

	s := a.Stats()
	assert.Equal(t, Stats{Regions: 1, BorderTiles: 0, MaxHeight: 25, Largest: room.Size * room.Size}, s)
}

func TestAnalyzeAllWalls(t *testing.T) {
	a, err := Analyze(carve())
	require.NoError(t, err)

	assert.Empty(t, a.Regions())
	assert.Empty(t, a.BorderTiles())
	_, ok := a.HeightOf(room.XY{X: 10, Y: 10})
	assert.False(t, ok)
	_, ok = a.RegionOf(room.XY{X: 10, Y: 10})
	assert.False(t, ok)
}

func TestAnalyzeSwampIsWalkable(t *testing.T) {
	terrain := carve([4]int{1, 1, 3, 3})
	terrain.Set(room.XY{X: 2, Y: 2}, room.Swamp)

	a, err := Analyze(terrain)
	require.NoError(t, err)
	checkPartition(t, terrain, a)

	h, ok := a.HeightOf(room.XY{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, 2, h)
}

func TestAnalyzeDeterministic(t *testing.T) {
	terrain := carve(
		[4]int{2, 2, 20, 9},
		[4]int{10, 10, 12, 30},
		[4]int{5, 31, 40, 44},
	)

	a, err := Analyze(terrain)
	require.NoError(t, err)
	b, err := Analyze(terrain)
	require.NoError(t, err)

	assert.Equal(t, a.Regions(), b.Regions())
	assert.Equal(t, a.BorderTiles(), b.BorderTiles())
	checkPartition(t, terrain, a)
}

func TestAnalyzeNilTerrain(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, ErrNilTerrain)
}

func TestHeightOfOutsideRoom(t *testing.T) {
	var terrain room.Terrain
	a, err := Analyze(&terrain)
	require.NoError(t, err)

	_, ok := a.HeightOf(room.XY{X: -1, Y: 3})
	assert.False(t, ok)
	assert.False(t, a.IsBorder(room.XY{X: 50, Y: 50}))
}
