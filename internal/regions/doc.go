// Package regions partitions the walkable tiles of a room into regions.
//
// Each walkable tile gets a height: its Chebyshev distance to the nearest
// wall, where everything outside the room counts as wall. Regions are then
// grown by a watershed over the heights, from the highest tiles down:
//
//   - a tile reached from exactly one region joins it;
//   - a tile touched by two or more regions becomes a border tile;
//   - a group of tiles at the current height reached from no region
//     starts a new one.
//
// Neighbors are the eight surrounding tiles. The result depends only on the
// terrain, so region order, and with it every color derived from it, is
// stable between runs.
package regions
