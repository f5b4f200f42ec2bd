// Package spatial implements a uniform-grid broadcast-phase culling
// structure, generalizing the teacher's SpatialGrid (car-to-car
// collision culling) into a generic container. The player-player
// collision phase (spec §4.1 Phase I) is its only user; pickup and
// beat checks scan the player list directly.
package spatial

import (
	"github.com/fenixdev/quadball-server/internal/geometry"
)

type cellKey struct {
	X, Y int64
}

// Grid buckets items of type T into fixed-size cells by position, so
// Pairs only has to compare items that share or neighbor a cell
// instead of every pair in the room.
type Grid[T any] struct {
	cellSize float64
	cells    map[cellKey][]T
}

// NewGrid creates a grid with the given cell size (same units as the
// positions it will index, i.e. meters).
func NewGrid[T any](cellSize float64) *Grid[T] {
	return &Grid[T]{cellSize: cellSize, cells: make(map[cellKey][]T)}
}

func (g *Grid[T]) keyFor(p geometry.Vector2) cellKey {
	return cellKey{X: int64(p.X / g.cellSize), Y: int64(p.Y / g.cellSize)}
}

// Update rebuilds the grid from scratch with the given items, using
// posOf to extract each item's position.
func (g *Grid[T]) Update(items []T, posOf func(T) geometry.Vector2) {
	g.cells = make(map[cellKey][]T)
	for _, item := range items {
		key := g.keyFor(posOf(item))
		g.cells[key] = append(g.cells[key], item)
	}
}

// Nearby returns every item sharing or adjacent to p's cell (a 3x3
// neighborhood), for queries where only one side of the pair is
// gridded.
func (g *Grid[T]) Nearby(p geometry.Vector2) []T {
	center := g.keyFor(p)
	var out []T
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			key := cellKey{X: center.X + dx, Y: center.Y + dy}
			out = append(out, g.cells[key]...)
		}
	}
	return out
}

// Pairs returns every unordered pair of items that share or occupy
// adjacent cells, deduplicated, for player-player collision resolution
// (spec §4.1 Phase I).
func (g *Grid[T]) Pairs() [][2]T {
	var pairs [][2]T

	for key, items := range g.cells {
		// Same-cell pairs.
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				pairs = append(pairs, [2]T{items[i], items[j]})
			}
		}
		// Cross-cell pairs: only scan a forward half-neighborhood so
		// each unordered cell pair is visited exactly once.
		for dx := int64(0); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				if dx == 0 && dy <= 0 {
					continue
				}
				neighborItems, ok := g.cells[cellKey{X: key.X + dx, Y: key.Y + dy}]
				if !ok {
					continue
				}
				for _, a := range items {
					for _, b := range neighborItems {
						pairs = append(pairs, [2]T{a, b})
					}
				}
			}
		}
	}
	return pairs
}
