package gamelogic

import (
	"math"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// resolveGoals is Phase H: a free volleyball that crosses a hoop's
// plane this tick scores for the team that held possession, unless a
// keeper touched it from their own zone within the last
// config.SelfOwnWindow seconds (self-own protection). prevPos holds
// each ball's position from before this tick's movement phases ran.
func resolveGoals(s *state.GameState, prevPos map[int]geometry.Vector2) {
	vb := s.Volleyball()
	if vb == nil || vb.HolderID != nil || s.PossessionTeam == nil {
		return
	}
	prev, ok := prevPos[vb.ID]
	if !ok {
		return
	}

	for _, h := range s.Hoops {
		if h.Team == *s.PossessionTeam {
			continue // can't score on your own hoop
		}
		if !crossesHoopPlane(prev, vb.Position, h) {
			continue
		}
		if recentSelfOwnTouch(s, vb) {
			continue
		}

		s.Score[*s.PossessionTeam]++
		Kickoff(s)
		return
	}
}

func recentSelfOwnTouch(s *state.GameState, vb *entities.Ball) bool {
	if vb.LastKeeperOwnZoneTouch == nil {
		return false
	}
	return s.GameTime-*vb.LastKeeperOwnZoneTouch <= config.SelfOwnWindow
}

// crossesHoopPlane checks whether the segment prev->curr crosses the
// hoop's gate: the vertical line at hoop.Position.X, within hoop.Radius
// of hoop.Position.Y. hoop.Thickness widens the band prev/curr are
// allowed to already sit in without x-movement, for the case of a ball
// drifting slowly through the gate across several ticks.
func crossesHoopPlane(prev, curr geometry.Vector2, h *entities.Hoop) bool {
	dx := curr.X - prev.X
	if math.Abs(dx) < config.Epsilon {
		withinBand := prev.X >= h.Position.X-h.Thickness/2 && prev.X <= h.Position.X+h.Thickness/2
		if !withinBand {
			return false
		}
		return math.Abs(prev.Y-h.Position.Y) <= h.Radius && math.Abs(curr.Y-h.Position.Y) <= h.Radius
	}

	t := (h.Position.X - prev.X) / dx
	if t < 0 || t > 1 {
		return false
	}
	y := prev.Y + t*(curr.Y-prev.Y)
	return math.Abs(y-h.Position.Y) <= h.Radius
}

// The moving-ball case above treats the hoop as a zero-thickness gate
// at h.Position.X; Thickness only widens the stationary-ball band. A
// fast ball clipping the post edge rather than crossing the plane
// cleanly isn't modeled.
