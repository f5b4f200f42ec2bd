package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fenixdev/quadball-server/internal/geometry"
)

type point struct {
	id  int
	pos geometry.Vector2
}

func TestGridPairsSameCell(t *testing.T) {
	g := NewGrid[point](10)
	items := []point{{1, geometry.Vector2{X: 1, Y: 1}}, {2, geometry.Vector2{X: 2, Y: 2}}}
	g.Update(items, func(p point) geometry.Vector2 { return p.pos })

	pairs := g.Pairs()
	assert.Len(t, pairs, 1)
}

func TestGridPairsAdjacentCellsNoDuplicates(t *testing.T) {
	g := NewGrid[point](10)
	items := []point{
		{1, geometry.Vector2{X: 1, Y: 1}},
		{2, geometry.Vector2{X: 11, Y: 1}},
		{3, geometry.Vector2{X: 1, Y: 11}},
	}
	g.Update(items, func(p point) geometry.Vector2 { return p.pos })

	pairs := g.Pairs()
	assert.Len(t, pairs, 3) // all three are mutually adjacent, no pair double-counted
}

func TestGridNearby(t *testing.T) {
	g := NewGrid[point](10)
	items := []point{{1, geometry.Vector2{X: 1, Y: 1}}, {2, geometry.Vector2{X: 100, Y: 100}}}
	g.Update(items, func(p point) geometry.Vector2 { return p.pos })

	near := g.Nearby(geometry.Vector2{X: 2, Y: 2})
	assert.Len(t, near, 1)
	assert.Equal(t, 1, near[0].id)
}
