package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeZeroBelowEpsilon(t *testing.T) {
	v := Vector2{X: 1e-9, Y: 0}
	assert.Equal(t, Zero, v.Normalize())
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Vector2{X: 3, Y: 4}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
}

func TestLerp(t *testing.T) {
	a := Vector2{X: 0, Y: 0}
	b := Vector2{X: 10, Y: 20}
	got := Lerp(a, b, 0.25)
	assert.Equal(t, Vector2{X: 2.5, Y: 5}, got)
}

func TestClampToPitchAbsorbsVelocityAxis(t *testing.T) {
	res := ClampToPitch(Vector2{X: -5, Y: 10})
	assert.True(t, res.ClampedX)
	assert.False(t, res.ClampedY)
	assert.Equal(t, 0.0, res.Position.X)
	assert.Equal(t, 10.0, res.Position.Y)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vector2{0, 0}, Vector2{3, 4}), 1e-9)
}
