package entities

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
)

// BallType is volleyball (quaffle) or dodgeball (bludger).
type BallType int

const (
	BallVolleyball BallType = BallType(config.BallVolleyball)
	BallDodgeball  BallType = BallType(config.BallDodgeball)
)

// Ball is a single ball's authoritative state (spec §3).
type Ball struct {
	ID       int // room-local, stable for the life of the room
	BallType BallType

	Position Vector2Alias
	Velocity Vector2Alias

	// HolderID is nil when free.
	HolderID *uuid.UUID

	// IsDead applies to dodgeballs only: set after a beat until a
	// beater re-activates it.
	IsDead bool

	// LastThrowerID is nil until the ball has been thrown at least once.
	LastThrowerID *uuid.UUID

	// PossessionTeam records which side last held or scored with the
	// volleyball. Nil means no team has touched it yet.
	PossessionTeam *Team

	// LastKeeperOwnZoneTouch is the game_time at which a keeper last
	// held this ball while standing in their own keeper zone, used for
	// the 0.2s self-own protection window on goal detection (spec
	// §4.1 Phase H). Nil if never touched that way.
	LastKeeperOwnZoneTouch *float64
}

// NewBall constructs a ball with the given room-local id and type.
func NewBall(id int, ballType BallType) *Ball {
	return &Ball{ID: id, BallType: ballType}
}

// IsHeld reports whether some player currently holds this ball (spec
// §3 invariant 2).
func (b *Ball) IsHeld() bool {
	return b.HolderID != nil
}

// Release clears the holder, leaving position/velocity as set by the
// caller (spec §4.1 Phase D throws, Phase G beats).
func (b *Ball) Release() {
	b.HolderID = nil
}

// SetHolder assigns a new holder (spec §4.1 Phase F pickups).
func (b *Ball) SetHolder(id uuid.UUID) {
	b.HolderID = &id
}
