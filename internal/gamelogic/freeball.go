package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/state"
)

// stepFreeBalls is Phase E. A free ball moves, drags, and bounces off
// the walls; the decision of which walls reflect which ball type
// resolves an ambiguity left open by the source material (see
// DESIGN.md): dodgeballs bounce off all four pitch walls, the
// volleyball only bounces off the two short (goal-line) walls, and a
// volleyball exiting through a long wall (a sideline) triggers
// inbounding instead of reflecting.
func stepFreeBalls(s *state.GameState, dt float64) {
	for _, b := range s.Balls {
		if b.HolderID != nil {
			continue
		}

		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Velocity = b.Velocity.Scale(1 - config.FreeBallDrag*dt)

		if b.BallType == entities.BallDodgeball {
			reflectX(b)
			reflectY(b)
			continue
		}

		reflectX(b)
		if s.Inbound.Phase != state.Inbounding && (b.Position.Y <= 0 || b.Position.Y >= config.PitchWidth) {
			triggerInbounding(s, b)
		}
	}
}

func reflectX(b *entities.Ball) {
	if b.Position.X < 0 {
		b.Position.X = -b.Position.X * config.WallRestitution
		b.Velocity.X = -b.Velocity.X * config.WallRestitution
	} else if b.Position.X > config.PitchLength {
		over := b.Position.X - config.PitchLength
		b.Position.X = config.PitchLength - over*config.WallRestitution
		b.Velocity.X = -b.Velocity.X * config.WallRestitution
	}
}

func reflectY(b *entities.Ball) {
	if b.Position.Y < 0 {
		b.Position.Y = -b.Position.Y * config.WallRestitution
		b.Velocity.Y = -b.Velocity.Y * config.WallRestitution
	} else if b.Position.Y > config.PitchWidth {
		over := b.Position.Y - config.PitchWidth
		b.Position.Y = config.PitchWidth - over*config.WallRestitution
		b.Velocity.Y = -b.Velocity.Y * config.WallRestitution
	}
}
