package gamelogic

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// resolvePickups is Phase F, with Phase K (goaltending) folded in as a
// pickup-eligibility restriction. At most one player picks up a given
// ball per tick, and a player who already picked up a ball this phase
// is no longer eligible for another. Only beaters pick up dodgeballs;
// a live dodgeball reaching any other player is left to Phase G.
func resolvePickups(s *state.GameState) {
	holding := make(map[uuid.UUID]bool)
	for _, p := range s.Players {
		if b := heldBallOf(s, p.ID); b != nil {
			holding[p.ID] = true
		}
	}

	for _, b := range s.Balls {
		if b.HolderID != nil {
			continue
		}
		if b.BallType == entities.BallDodgeball && b.IsDead {
			reviveDeadDodgeball(s, b, holding)
			continue
		}

		for _, p := range s.Players {
			if p.IsKnockedOut || holding[p.ID] {
				continue
			}
			if !inboundEligible(s, p, b) {
				continue
			}
			if b.BallType == entities.BallDodgeball && p.Role != entities.RoleBeater {
				continue
			}
			if isGoaltending(p, s) && b.BallType == entities.BallVolleyball {
				continue
			}
			if geometry.Distance(p.Position, b.Position) > config.PlayerRadius+radiusOf(b) {
				continue
			}

			b.SetHolder(p.ID)
			holding[p.ID] = true
			if b.BallType == entities.BallVolleyball {
				s.SetPossession(p.Team)
				if s.Inbound.Phase == state.Inbounding {
					s.Inbound.Phase = state.InPlay
				}
			}
			break
		}
	}
}

// reviveDeadDodgeball implements "a dead dodgeball becomes live again
// when touched by a beater of either team; ownership of the beat
// transfers to that beater" (spec §4.1 Phase G): the reviving beater
// immediately becomes the new holder.
func reviveDeadDodgeball(s *state.GameState, b *entities.Ball, holding map[uuid.UUID]bool) {
	for _, p := range s.Players {
		if p.IsKnockedOut || holding[p.ID] || p.Role != entities.RoleBeater {
			continue
		}
		if geometry.Distance(p.Position, b.Position) > config.PlayerRadius+config.DodgeballRadius {
			continue
		}
		b.IsDead = false
		b.LastThrowerID = nil
		b.SetHolder(p.ID)
		holding[p.ID] = true
		return
	}
}

// isGoaltending reports whether p is a chaser standing in range of
// their own hoop, which blocks them from picking up a free volleyball
// (spec §4.1 Phase K).
func isGoaltending(p *entities.Player, s *state.GameState) bool {
	if p.Role != entities.RoleChaser {
		return false
	}
	for _, h := range s.Hoops {
		if h.Team != p.Team {
			continue
		}
		if geometry.Distance(p.Position, h.Position) <= config.GoaltendingRadius {
			return true
		}
	}
	return false
}

func radiusOf(b *entities.Ball) float64 {
	if b.BallType == entities.BallDodgeball {
		return config.DodgeballRadius
	}
	return config.VolleyballRadius
}
