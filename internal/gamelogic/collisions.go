package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/spatial"
	"github.com/fenixdev/quadball-server/internal/state"
)

// resolvePlayerCollisions is Phase I: overlapping players are pushed
// apart along their center-to-center axis and exchange the normal
// component of their velocity, generalizing the teacher's car-to-car
// CheckCollision into an elastic push with no explosion/rubberbanding
// concept (gameplay anti-cheat is out of scope here). A knocked-out
// player behaves as a static obstacle: only the other player in the
// pair is pushed, and no velocity is exchanged.
func resolvePlayerCollisions(s *state.GameState) {
	grid := spatial.NewGrid[*entities.Player](config.PlayerCollisionDiameter * 2)
	grid.Update(s.Players, func(p *entities.Player) geometry.Vector2 { return p.Position })

	for _, pair := range grid.Pairs() {
		a, b := pair[0], pair[1]
		delta := b.Position.Sub(a.Position)
		dist := delta.Length()
		if dist >= config.PlayerCollisionDiameter || dist < config.Epsilon {
			continue
		}
		normal := delta.Scale(1 / dist)
		overlap := config.PlayerCollisionDiameter - dist

		switch {
		case a.IsKnockedOut && b.IsKnockedOut:
			continue
		case a.IsKnockedOut:
			b.Position = b.Position.Add(normal.Scale(overlap))
		case b.IsKnockedOut:
			a.Position = a.Position.Sub(normal.Scale(overlap))
		default:
			a.Position = a.Position.Sub(normal.Scale(overlap / 2))
			b.Position = b.Position.Add(normal.Scale(overlap / 2))

			aNormalSpeed := a.Velocity.X*normal.X + a.Velocity.Y*normal.Y
			bNormalSpeed := b.Velocity.X*normal.X + b.Velocity.Y*normal.Y
			a.Velocity = a.Velocity.Add(normal.Scale(bNormalSpeed - aNormalSpeed))
			b.Velocity = b.Velocity.Add(normal.Scale(aNormalSpeed - bNormalSpeed))
		}
	}
}
