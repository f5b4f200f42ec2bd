package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/state"
)

// applyThrows is Phase D. A player who buffered a throw intent and
// still holds a ball releases it along their current facing direction
// at the ball type's throw speed. A second throw intent from the same
// player this tick is a no-op: after the first release heldBallOf(p)
// returns nil, so the loop naturally drops the duplicate.
func applyThrows(s *state.GameState, in Input) {
	for _, throwerID := range in.Throws {
		playerID := throwerID
		thrower := s.PlayerByID(playerID)
		if thrower == nil {
			continue
		}
		b := heldBallOf(s, playerID)
		if b == nil {
			continue
		}

		dir := thrower.DesiredDirection
		speed := config.ThrowSpeedVolleyball
		if b.BallType == entities.BallDodgeball {
			speed = config.ThrowSpeedDodgeball
		}

		b.Release()
		b.Position = thrower.Position.Add(dir.Scale(config.PlayerRadius + radiusOf(b) + config.Epsilon))
		b.Velocity = dir.Scale(speed)
		b.LastThrowerID = &playerID

		if b.BallType == entities.BallVolleyball {
			s.SetPossession(thrower.Team)
		}
	}
}
