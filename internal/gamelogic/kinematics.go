package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// applyInputs is Phase A: latch the tick's coalesced move direction
// onto each player. Knocked-out players still receive the input (so it
// is ready the instant they recover) but stepPlayerKinematics ignores
// it while they are down.
func applyInputs(s *state.GameState, in Input) {
	for _, p := range s.Players {
		if dir, ok := in.Move[p.ID]; ok {
			p.DesiredDirection = dir.Normalize()
		}
	}
}

// stepPlayerKinematics is Phase B: lerp velocity toward the role's
// target speed, count down knockout, move, and clamp to the pitch.
func stepPlayerKinematics(s *state.GameState, dt float64) {
	for _, p := range s.Players {
		target := p.DesiredDirection.Scale(p.MaxSpeed())
		p.Velocity = geometry.Lerp(p.Velocity, target, config.AccelFactor*dt)

		p.TickKnockout(dt)

		moved := p.Position.Add(p.Velocity.Scale(dt))
		clamped := geometry.ClampToPitch(moved)
		p.Position = clamped.Position
		if clamped.ClampedX {
			p.Velocity.X = 0
		}
		if clamped.ClampedY {
			p.Velocity.Y = 0
		}
	}
}

// followHolders is Phase C: a held ball's position and velocity track
// its holder exactly (spec §3 invariant 1), and a keeper holding the
// volleyball in their own zone refreshes the self-own protection
// timestamp used by Phase H.
func followHolders(s *state.GameState) {
	for _, b := range s.Balls {
		if b.HolderID == nil {
			continue
		}
		holder := s.PlayerByID(*b.HolderID)
		if holder == nil {
			b.HolderID = nil
			continue
		}
		b.Position = holder.Position
		b.Velocity = holder.Velocity

		if b.BallType == entities.BallVolleyball && holder.Role == entities.RoleKeeper && holder.InKeeperZone() {
			t := s.GameTime
			b.LastKeeperOwnZoneTouch = &t
		}
	}
}
