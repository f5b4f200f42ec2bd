// Package geometry implements the 2D vector primitives the simulation
// is built on (spec §3: Vector2).
package geometry

import (
	"math"

	"github.com/fenixdev/quadball-server/config"
)

// Vector2 is a pair (x, y) of real numbers in meters.
type Vector2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector2{}

// Add returns v + other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Length returns the Euclidean magnitude of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns v scaled to unit length, or the zero vector if its
// magnitude is below config.Epsilon (spec §3).
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l < config.Epsilon {
		return Zero
	}
	return Vector2{v.X / l, v.Y / l}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vector2) float64 {
	return a.Sub(b).Length()
}

// Lerp linearly interpolates from a to b by t (t is not clamped by this
// function; callers pass accel_factor*dt which is expected to be in
// [0, 1] for a single tick, per spec §4.1 Phase B).
func Lerp(a, b Vector2, t float64) Vector2 {
	return Vector2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// ClampResult reports, per axis, whether clamping changed the value —
// used to zero the corresponding velocity component ("wall absorption,
// not reflection, for players", spec §4.1 Phase B).
type ClampResult struct {
	Position      Vector2
	ClampedX      bool
	ClampedY      bool
}

// ClampToPitch clamps a position to [0, PITCH_LENGTH] x [0, PITCH_WIDTH]
// and reports which axes were clamped.
func ClampToPitch(p Vector2) ClampResult {
	res := ClampResult{Position: p}
	if p.X < 0 {
		res.Position.X = 0
		res.ClampedX = true
	} else if p.X > config.PitchLength {
		res.Position.X = config.PitchLength
		res.ClampedX = true
	}
	if p.Y < 0 {
		res.Position.Y = 0
		res.ClampedY = true
	} else if p.Y > config.PitchWidth {
		res.Position.Y = config.PitchWidth
		res.ClampedY = true
	}
	return res
}
