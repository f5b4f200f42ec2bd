package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// triggerInbounding enters the Inbounding phase when the volleyball
// leaves the pitch through a sideline (spec §4.3): the ball snaps to
// the nearest on-line point with zero velocity, and only the team that
// didn't last touch it may pick it up until the 5s grace expires.
func triggerInbounding(s *state.GameState, vb *entities.Ball) {
	team := entities.TeamA
	if s.PossessionTeam != nil {
		team = oppositeTeam(*s.PossessionTeam)
	} else if vb.LastThrowerID != nil {
		if thrower := s.PlayerByID(*vb.LastThrowerID); thrower != nil {
			team = oppositeTeam(thrower.Team)
		}
	}

	y := vb.Position.Y
	if y < 0 {
		y = 0
	} else if y > config.PitchWidth {
		y = config.PitchWidth
	}
	vb.Position = geometry.Vector2{X: vb.Position.X, Y: y}
	vb.Velocity = geometry.Zero

	s.Inbound = state.InboundState{Phase: state.Inbounding, Team: team, GraceRemaining: config.InboundingFreeForAllAfter}
}

// inboundEligible reports whether p may pick up ball b right now: the
// inbounding restriction only applies to the volleyball while the
// state machine is Inbounding and the grace period hasn't expired.
func inboundEligible(s *state.GameState, p *entities.Player, b *entities.Ball) bool {
	if b.BallType != entities.BallVolleyball {
		return true
	}
	if s.Inbound.Phase != state.Inbounding {
		return true
	}
	if s.Inbound.GraceRemaining <= 0 {
		return true
	}
	return p.Team == s.Inbound.Team
}

// tickInbound counts down the grace period (part of Phase L's clock
// bookkeeping); it does not itself clear the Inbounding phase, which
// happens in resolvePickups once the ball is actually retrieved.
func tickInbound(s *state.GameState, dt float64) {
	if s.Inbound.Phase != state.Inbounding {
		return
	}
	if s.Inbound.GraceRemaining > 0 {
		s.Inbound.GraceRemaining -= dt
	}
}
