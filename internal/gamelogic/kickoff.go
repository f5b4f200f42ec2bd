package gamelogic

import (
	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

// Kickoff resets a GameState to the standard formation (spec §4.5):
// used both to build the opening position when a room starts and to
// reset the pitch after every goal. Hoops are never touched here; they
// are created once at room setup and never move.
func Kickoff(s *state.GameState) {
	resetPlayers(s)
	resetBalls(s)
	s.DelayBin = 0
	s.DelayTimer = 0
	s.ClearPossession()
	s.Inbound = state.InboundState{}
}

func resetPlayers(s *state.GameState) {
	byTeam := map[entities.Team][]*entities.Player{}
	for _, p := range s.Players {
		p.IsKnockedOut = false
		p.KnockoutTimer = 0
		p.Velocity = geometry.Zero
		p.DesiredDirection = geometry.Zero
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}
	for team, players := range byTeam {
		placeFormation(team, players)
	}
}

// placeFormation lines a team up at their own end: keeper on the goal
// line, chasers side by side in one row ahead of the keeper (not
// staggered into a triangle), beaters
// flanking wide, seeker held back near the keeper. Multiple players of
// the same role spread evenly across the width so the formation
// degrades gracefully for any roster size.
func placeFormation(team entities.Team, players []*entities.Player) {
	var keepers, chasers, beaters, seekers []*entities.Player
	for _, p := range players {
		switch p.Role {
		case entities.RoleKeeper:
			keepers = append(keepers, p)
		case entities.RoleChaser:
			chasers = append(chasers, p)
		case entities.RoleBeater:
			beaters = append(beaters, p)
		default:
			seekers = append(seekers, p)
		}
	}

	place(keepers, team, 0, config.PitchWidth/2, 0)
	place(chasers, team, 8, config.PitchWidth/2, 6)
	place(beaters, team, 14, config.PitchWidth/2, 10)
	place(seekers, team, 3, config.PitchWidth/2+12, 4)
}

// place positions each player in row at the given depth from their own
// goal line, spread across width around centerY in increments of
// spacing.
func place(row []*entities.Player, team entities.Team, depth, centerY, spacing float64) {
	n := len(row)
	for i, p := range row {
		offset := (float64(i) - float64(n-1)/2) * spacing
		p.Position = geometry.Vector2{X: formationX(team, depth), Y: centerY + offset}
	}
}

func formationX(team entities.Team, depth float64) float64 {
	if team == entities.TeamA {
		return config.HoopOffset + depth
	}
	return config.PitchLength - config.HoopOffset - depth
}

func resetBalls(s *state.GameState) {
	if vb := s.Volleyball(); vb != nil {
		vb.Position = geometry.Vector2{X: config.PitchLength / 2, Y: config.PitchWidth / 2}
		vb.Velocity = geometry.Zero
		vb.HolderID = nil
		vb.LastThrowerID = nil
		vb.PossessionTeam = nil
		vb.IsDead = false
		vb.LastKeeperOwnZoneTouch = nil
	}

	spawns := []geometry.Vector2{
		{X: config.KeeperZoneX, Y: config.PitchWidth / 4},
		{X: config.PitchLength - config.KeeperZoneX, Y: 3 * config.PitchWidth / 4},
	}
	for i, db := range s.Dodgeballs() {
		db.Position = spawns[i%len(spawns)]
		db.Velocity = geometry.Zero
		db.HolderID = nil
		db.LastThrowerID = nil
		db.IsDead = false
	}
}
