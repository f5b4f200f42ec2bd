// Package entities implements the domain data types from spec §3:
// Player, Ball, and Hoop, each a tagged product type with its own
// invariants rather than the dynamic string-keyed dict the original
// source used (spec §9, "Dynamic dictionary-of-entities").
package entities

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/geometry"
)

// Role is one of keeper, chaser, beater, seeker.
type Role int

// Role values mirror config's role constants so MaxSpeedForRole and
// wire encoding can pass them through without translation.
const (
	RoleKeeper Role = Role(config.RoleKeeper)
	RoleChaser Role = Role(config.RoleChaser)
	RoleBeater Role = Role(config.RoleBeater)
	RoleSeeker Role = Role(config.RoleSeeker)
)

// Team is 0 or 1.
type Team int

const (
	TeamA Team = Team(config.TeamA)
	TeamB Team = Team(config.TeamB)
)

// Player is a single participant's authoritative state. There is no
// mutex here: per spec §5/§9, the room's tick goroutine is the sole
// writer of Player state, and all other goroutines communicate through
// the room's input channels rather than mutating this struct directly.
type Player struct {
	ID      uuid.UUID
	Name    string
	Team    Team
	Role    Role

	Position Vector2Alias
	Velocity Vector2Alias

	// DesiredDirection is the last input, normalized or zero (spec §3).
	DesiredDirection Vector2Alias

	IsKnockedOut   bool
	KnockoutTimer  float64 // seconds remaining, 0 iff not knocked out
}

// Vector2Alias avoids importing geometry under a different name at
// every call site while keeping the entities package free of a direct
// cyclic dependency risk should geometry ever need entity types.
type Vector2Alias = geometry.Vector2

// NewPlayer constructs a player at the given roster slot.
func NewPlayer(id uuid.UUID, name string, team Team, role Role) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Team: team,
		Role: role,
	}
}

// MaxSpeed returns the configured speed cap for this player's role.
func (p *Player) MaxSpeed() float64 {
	return config.MaxSpeedForRole(int(p.Role))
}

// InKeeperZone reports whether the player is standing in their own
// keeper zone (the strip of width KEEPER_ZONE_X at their own short end).
func (p *Player) InKeeperZone() bool {
	if p.Team == TeamA {
		return p.Position.X <= config.KeeperZoneX
	}
	return p.Position.X >= config.PitchLength-config.KeeperZoneX
}

// Immune reports whether the player is currently immune to beats: true
// iff role is keeper and position is inside their own keeper zone
// (spec §3 "immune (derived)").
func (p *Player) Immune() bool {
	return p.Role == RoleKeeper && p.InKeeperZone()
}

// KnockOut transitions the player into the knocked-out state (spec §3
// invariant 4: zero velocity, timer reset).
func (p *Player) KnockOut(duration float64) {
	p.IsKnockedOut = true
	p.KnockoutTimer = duration
	p.Velocity = geometry.Zero
}

// TickKnockout advances the knockout timer by dt and clears the flag
// when it reaches zero (spec §4.1 Phase B).
func (p *Player) TickKnockout(dt float64) {
	if !p.IsKnockedOut {
		return
	}
	p.Velocity = geometry.Zero
	p.KnockoutTimer -= dt
	if p.KnockoutTimer <= 0 {
		p.KnockoutTimer = 0
		p.IsKnockedOut = false
	}
}
