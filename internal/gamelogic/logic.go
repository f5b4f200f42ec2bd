// Package gamelogic implements the per-tick simulation (spec §4.1): a
// pure function from (GameState, dt, Input) to a mutated GameState,
// executed in a strict phase order every tick by the room's sole-writer
// tick goroutine (spec §5). No phase here touches a network connection
// or the clock directly; game_time is advanced explicitly in Phase L so
// the whole package stays deterministic and unit-testable, the same
// split the teacher draws between internal/game (pure simulation) and
// cmd/gameserver (transport).
package gamelogic

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// Input is the coalesced set of player intents for one tick (spec §4.1
// Phase A, §5 "coalesce movement input, never drop throw input").
type Input struct {
	// Move holds each player's latest raw direction vector since the
	// last tick; only the most recent is kept per player.
	Move map[uuid.UUID]geometry.Vector2

	// Throws holds player IDs that buffered a throw intent this tick,
	// in arrival order. A player appearing twice still produces at
	// most one release (Phase D checks the player still holds a ball).
	Throws []uuid.UUID
}

// NewInput returns an empty Input ready for a room to populate.
func NewInput() Input {
	return Input{Move: make(map[uuid.UUID]geometry.Vector2)}
}

// GameLogic runs the fixed phase order over a GameState. It carries no
// state of its own; all simulation state lives in the GameState and
// Ball/Player structs it is handed.
type GameLogic struct{}

// New returns a GameLogic.
func New() *GameLogic {
	return &GameLogic{}
}

// Step advances s by one tick of dt seconds, applying input in the
// phase order spec §4.1 mandates: A apply inputs, B player kinematics,
// C held balls follow holder, D throws, E free-ball kinematics, F
// pickup (with K goaltending folded in), G beats, H goals, I player
// collisions, J delay-of-game, L time advance.
func (g *GameLogic) Step(s *state.GameState, dt float64, in Input) {
	prevBallPos := snapshotBallPositions(s)

	applyInputs(s, in)
	stepPlayerKinematics(s, dt)
	followHolders(s)
	applyThrows(s, in)
	stepFreeBalls(s, dt)
	resolvePickups(s)
	resolveBeats(s)
	resolveGoals(s, prevBallPos)
	resolvePlayerCollisions(s)
	stepDelayOfGame(s, dt)

	s.GameTime += dt
	tickInbound(s, dt)
}

func snapshotBallPositions(s *state.GameState) map[int]geometry.Vector2 {
	out := make(map[int]geometry.Vector2, len(s.Balls))
	for _, b := range s.Balls {
		out[b.ID] = b.Position
	}
	return out
}

// heldBallOf returns the ball currently held by the given player, or nil.
func heldBallOf(s *state.GameState, id uuid.UUID) *entities.Ball {
	for _, b := range s.Balls {
		if b.HolderID != nil && *b.HolderID == id {
			return b
		}
	}
	return nil
}

func oppositeTeam(t entities.Team) entities.Team {
	if t == entities.TeamA {
		return entities.TeamB
	}
	return entities.TeamA
}
