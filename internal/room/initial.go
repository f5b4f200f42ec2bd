package room

import (
	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/state"
)

// InitialStateMessage is the one-time JSON message a game socket
// receives right after attaching (spec §6, §4.4): the full GameState
// plus the players_order/balls_order arrays a client needs to resolve
// the ID-less positional records in every subsequent binary broadcast,
// plus the config block (pitch dimensions, radii) the client needs to
// render and predict without hardcoding server constants.
type InitialStateMessage struct {
	Type         string        `json:"type"`
	RoomID       string        `json:"room_id"`
	PlayerID     string        `json:"player_id"`
	PlayersOrder []string      `json:"players_order"`
	BallsOrder   []int         `json:"balls_order"`
	Config       ConfigSummary `json:"config"`
	State        StateSnapshot `json:"state"`
}

// ConfigSummary is the subset of config clients need to agree with the
// server on pitch geometry and entity sizes.
type ConfigSummary struct {
	PitchLength      float64 `json:"pitch_length"`
	PitchWidth       float64 `json:"pitch_width"`
	KeeperZoneX      float64 `json:"keeper_zone_x"`
	HoopOffset       float64 `json:"hoop_offset"`
	HoopRadius       float64 `json:"hoop_radius"`
	HoopThickness    float64 `json:"hoop_thickness"`
	PlayerRadius     float64 `json:"player_radius"`
	VolleyballRadius float64 `json:"volleyball_radius"`
	DodgeballRadius  float64 `json:"dodgeball_radius"`
	TickHz           int     `json:"tick_hz"`
}

// StateSnapshot is the full GameState at the moment a socket attaches,
// in the same positional order as PlayersOrder/BallsOrder.
type StateSnapshot struct {
	Players        []PlayerSnapshot `json:"players"`
	Balls          []BallSnapshot   `json:"balls"`
	Hoops          []HoopSnapshot   `json:"hoops"`
	Score          [2]int           `json:"score"`
	GameTime       float64          `json:"game_time"`
	DelayBin       int              `json:"delay_bin"`
	PossessionCode int              `json:"possession_code"`
}

// PlayerSnapshot is one roster member's full state.
type PlayerSnapshot struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Team         int     `json:"team"`
	Role         int     `json:"role"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IsKnockedOut bool    `json:"is_knocked_out"`
}

// BallSnapshot is one ball's full state.
type BallSnapshot struct {
	ID       int     `json:"id"`
	BallType int     `json:"ball_type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsDead   bool    `json:"is_dead"`
}

// HoopSnapshot is one hoop's static placement.
type HoopSnapshot struct {
	ID        int     `json:"id"`
	Team      int     `json:"team"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Thickness float64 `json:"thickness"`
}

func buildInitialState(roomID string, playerID uuid.UUID, s *state.GameState) InitialStateMessage {
	playersOrder := make([]string, 0, len(s.Players))
	players := make([]PlayerSnapshot, 0, len(s.Players))
	for _, p := range s.Players {
		playersOrder = append(playersOrder, p.ID.String())
		players = append(players, PlayerSnapshot{
			ID:           p.ID.String(),
			Name:         p.Name,
			Team:         int(p.Team),
			Role:         int(p.Role),
			X:            p.Position.X,
			Y:            p.Position.Y,
			IsKnockedOut: p.IsKnockedOut,
		})
	}

	ballsOrder := make([]int, 0, len(s.Balls))
	balls := make([]BallSnapshot, 0, len(s.Balls))
	for _, b := range s.Balls {
		ballsOrder = append(ballsOrder, b.ID)
		balls = append(balls, BallSnapshot{
			ID:       b.ID,
			BallType: int(b.BallType),
			X:        b.Position.X,
			Y:        b.Position.Y,
			IsDead:   b.IsDead,
		})
	}

	hoops := make([]HoopSnapshot, 0, len(s.Hoops))
	for _, h := range s.Hoops {
		hoops = append(hoops, HoopSnapshot{
			ID:        h.ID,
			Team:      int(h.Team),
			X:         h.Position.X,
			Y:         h.Position.Y,
			Radius:    h.Radius,
			Thickness: h.Thickness,
		})
	}

	return InitialStateMessage{
		Type:         "initial_state",
		RoomID:       roomID,
		PlayerID:     playerID.String(),
		PlayersOrder: playersOrder,
		BallsOrder:   ballsOrder,
		Config: ConfigSummary{
			PitchLength:      config.PitchLength,
			PitchWidth:       config.PitchWidth,
			KeeperZoneX:      config.KeeperZoneX,
			HoopOffset:       config.HoopOffset,
			HoopRadius:       config.HoopRadius,
			HoopThickness:    config.HoopThickness,
			PlayerRadius:     config.PlayerRadius,
			VolleyballRadius: config.VolleyballRadius,
			DodgeballRadius:  config.DodgeballRadius,
			TickHz:           config.TickHz,
		},
		State: StateSnapshot{
			Players:        players,
			Balls:          balls,
			Hoops:          hoops,
			Score:          s.Score,
			GameTime:       s.GameTime,
			DelayBin:       s.DelayBin,
			PossessionCode: s.PossessionCode(),
		},
	}
}
