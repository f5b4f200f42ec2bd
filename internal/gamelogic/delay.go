package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/state"
)

// stepDelayOfGame is Phase J: continuous possession of the volleyball
// inside the central band, by the same team, accrues a delay_bin every
// full second; reaching the cap forces a turnover.
func stepDelayOfGame(s *state.GameState, dt float64) {
	vb := s.Volleyball()
	if vb == nil || vb.HolderID == nil {
		s.DelayTimer = 0
		return
	}
	holder := s.PlayerByID(*vb.HolderID)
	if holder == nil || !inCentralBand(holder) {
		s.DelayTimer = 0
		return
	}

	s.DelayTimer += dt
	if s.DelayTimer < config.DelaySecondsPerBin {
		return
	}
	s.DelayTimer -= config.DelaySecondsPerBin
	s.DelayBin++

	if s.DelayBin >= config.DelayBinCap {
		turnoverTeam := oppositeTeam(holder.Team)
		vb.Release()
		s.SetPossession(turnoverTeam)
		s.DelayTimer = 0
	}
}

// inCentralBand reports whether p is outside both keeper zones, i.e.
// in the neutral midfield strip where delay-of-game can accrue.
func inCentralBand(p *entities.Player) bool {
	return p.Position.X > config.KeeperZoneX && p.Position.X < config.PitchLength-config.KeeperZoneX
}
