// Package state implements GameState (spec §3): the aggregate of
// players, balls, hoops, score, clocks, possession, and inbounding
// state for one room. Insertion order of players/balls is preserved so
// the binary encoder (internal/wire) can emit them positionally and a
// client can resolve identities via the players_order/balls_order
// arrays sent in the game socket's initial_state message.
package state

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/internal/entities"
)

// InboundPhase is the inbounding state machine's current phase (spec §4.3).
type InboundPhase int

const (
	InPlay InboundPhase = iota
	Inbounding
)

// InboundState tracks the volleyball inbounding state machine.
type InboundState struct {
	Phase InboundPhase
	// Team is the team allowed to pick the ball up while Inbounding.
	Team entities.Team
	// GraceRemaining counts down from 5s; at zero, any team may pick up.
	GraceRemaining float64
}

// GameState aggregates all authoritative per-room state.
type GameState struct {
	Players     []*entities.Player
	playerIndex map[uuid.UUID]int

	Balls     []*entities.Ball
	ballIndex map[int]int

	Hoops []*entities.Hoop

	Score [2]int

	GameTime float64

	DelayBin int

	// DelayTimer accumulates seconds of continuous in-band possession
	// toward the next delay_bin increment (spec §4.1 Phase J). Reset
	// whenever the ball leaves the band or changes hands.
	DelayTimer float64

	// PossessionTeam mirrors spec's possession_code (nil = 0/none).
	PossessionTeam *entities.Team

	Inbound InboundState
}

// New constructs an empty GameState.
func New() *GameState {
	return &GameState{
		playerIndex: make(map[uuid.UUID]int),
		ballIndex:   make(map[int]int),
	}
}

// AddPlayer appends a player, preserving insertion order.
func (s *GameState) AddPlayer(p *entities.Player) {
	s.playerIndex[p.ID] = len(s.Players)
	s.Players = append(s.Players, p)
}

// PlayerByID returns the player with the given ID, or nil.
func (s *GameState) PlayerByID(id uuid.UUID) *entities.Player {
	idx, ok := s.playerIndex[id]
	if !ok {
		return nil
	}
	return s.Players[idx]
}

// AddBall appends a ball, preserving insertion order.
func (s *GameState) AddBall(b *entities.Ball) {
	s.ballIndex[b.ID] = len(s.Balls)
	s.Balls = append(s.Balls, b)
}

// BallByID returns the ball with the given room-local ID, or nil.
func (s *GameState) BallByID(id int) *entities.Ball {
	idx, ok := s.ballIndex[id]
	if !ok {
		return nil
	}
	return s.Balls[idx]
}

// AddHoop appends a hoop. Hoops are created once at room setup and
// never added to or removed from afterward.
func (s *GameState) AddHoop(h *entities.Hoop) {
	s.Hoops = append(s.Hoops, h)
}

// Volleyball returns the single volleyball in play, or nil if absent.
func (s *GameState) Volleyball() *entities.Ball {
	for _, b := range s.Balls {
		if b.BallType == entities.BallVolleyball {
			return b
		}
	}
	return nil
}

// Dodgeballs returns the dodgeballs in play.
func (s *GameState) Dodgeballs() []*entities.Ball {
	var out []*entities.Ball
	for _, b := range s.Balls {
		if b.BallType == entities.BallDodgeball {
			out = append(out, b)
		}
	}
	return out
}

// PossessionCode returns the wire-level possession encoding: 0 none,
// 1 team_0, 2 team_1 (spec §3, §4.4).
func (s *GameState) PossessionCode() int {
	if s.PossessionTeam == nil {
		return 0
	}
	if *s.PossessionTeam == entities.TeamA {
		return 1
	}
	return 2
}

// SetPossession updates possession and zeroes delay_bin whenever the
// possession_code actually changes (spec §3 invariant 6).
func (s *GameState) SetPossession(team entities.Team) {
	if s.PossessionTeam == nil || *s.PossessionTeam != team {
		s.DelayBin = 0
	}
	t := team
	s.PossessionTeam = &t
	if vb := s.Volleyball(); vb != nil {
		vb.PossessionTeam = &t
	}
}

// ClearPossession sets possession to none (spec §3: possession_code 0).
func (s *GameState) ClearPossession() {
	if s.PossessionTeam != nil {
		s.DelayBin = 0
	}
	s.PossessionTeam = nil
	if vb := s.Volleyball(); vb != nil {
		vb.PossessionTeam = nil
	}
}
