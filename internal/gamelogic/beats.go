package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// resolveBeats is Phase G: an in-flight dodgeball that touches an
// opposing player goes dead. A non-immune target is knocked out and
// forced to drop the volleyball if they were holding it; an immune
// keeper stops the ball without being knocked out. Dead-dodgeball
// revival is handled in resolvePickups alongside normal Phase F
// pickups, since it is itself a kind of pickup.
func resolveBeats(s *state.GameState) {
	for _, b := range s.Balls {
		if b.BallType != entities.BallDodgeball || b.IsDead || b.HolderID != nil || b.LastThrowerID == nil {
			continue
		}
		thrower := s.PlayerByID(*b.LastThrowerID)
		if thrower == nil {
			continue
		}

		for _, p := range s.Players {
			if p.ID == thrower.ID || p.Team == thrower.Team || p.IsKnockedOut {
				continue
			}
			if geometry.Distance(p.Position, b.Position) > config.PlayerRadius+config.DodgeballRadius {
				continue
			}

			if !p.Immune() {
				preKnockoutVelocity := p.Velocity
				held := heldBallOf(s, p.ID)

				p.KnockOut(config.KnockoutDuration)
				if held != nil && held.BallType == entities.BallVolleyball {
					held.Release()
					held.Velocity = preKnockoutVelocity.Scale(0.5)
				}
			}

			b.IsDead = true
			b.Velocity = geometry.Zero
			break
		}
	}
}
