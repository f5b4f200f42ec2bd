// Package room implements the per-match lifecycle (spec §4.2, §5): one
// goroutine per running room ticking the simulation at a fixed
// cadence, with every other goroutine (game sockets) talking to it
// exclusively through channels. This replaces the teacher's
// mutex-guarded Room (internal/game/room.go, RWMutex on players map)
// with the channel-based "tick task is sole writer" design spec §5
// requires instead of just imitating the teacher's locking.
package room

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/gamelogic"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/logging"
	"github.com/fenixdev/quadball-server/internal/state"
	"github.com/fenixdev/quadball-server/internal/wire"
)

// Socket is what the tick loop needs from a connected game client: a
// non-blocking binary send for state broadcasts, a non-blocking JSON
// send for the out-of-band tick_meta message (spec §9 open question
// (a): version 3's binary packet carries per-ball possession_code but
// not delay_bin, so delay_bin rides alongside in JSON instead), and a
// close on room teardown. internal/room never imports
// gorilla/websocket directly; cmd/quadballserver supplies the concrete
// implementation.
type Socket interface {
	SendBinary(data []byte) error
	SendJSON(v any) error
	Close() error
}

// TickMeta is the JSON companion message sent alongside every binary
// version-3 broadcast, carrying the fields version 3 doesn't encode
// in-band.
type TickMeta struct {
	Type       string `json:"type"`
	DelayBin   int    `json:"delay_bin"`
	Possession int    `json:"possession_code"`
}

// RosterPlayer is the minimal shape room needs from a lobby roster
// entry to seed a GameState.
type RosterPlayer struct {
	ID   uuid.UUID
	Name string
	Team entities.Team
	Role entities.Role
}

type moveMsg struct {
	PlayerID uuid.UUID
	Dir      geometry.Vector2
}

type attachMsg struct {
	PlayerID uuid.UUID
	Socket   Socket
}

type snapshotReq struct {
	PlayerID uuid.UUID
	Resp     chan InitialStateMessage
}

// Room runs one match: a fixed roster of players, ticking at
// config.TickHz, broadcasting version-3 binary snapshots to whichever
// sockets are currently attached.
type Room struct {
	ID    string
	state *state.GameState
	logic *gamelogic.GameLogic

	sockets map[uuid.UUID]Socket

	moveCh     chan moveMsg
	throwCh    chan uuid.UUID
	attachCh   chan attachMsg
	detachCh   chan uuid.UUID
	snapshotCh chan snapshotReq
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// New builds a Room with players and balls placed at kickoff (spec
// §4.5) and starts its tick goroutine.
func New(id string, roster []RosterPlayer) *Room {
	s := state.New()
	for _, rp := range roster {
		s.AddPlayer(entities.NewPlayer(rp.ID, rp.Name, rp.Team, rp.Role))
	}
	s.AddBall(entities.NewBall(0, entities.BallVolleyball))
	s.AddBall(entities.NewBall(1, entities.BallDodgeball))
	s.AddBall(entities.NewBall(2, entities.BallDodgeball))
	s.AddHoop(entities.NewHoop(0, entities.TeamA,
		geometry.Vector2{X: config.HoopOffset, Y: config.PitchWidth / 2}, config.HoopRadius, config.HoopThickness))
	s.AddHoop(entities.NewHoop(1, entities.TeamB,
		geometry.Vector2{X: config.PitchLength - config.HoopOffset, Y: config.PitchWidth / 2}, config.HoopRadius, config.HoopThickness))

	gamelogic.Kickoff(s)

	r := &Room{
		ID:         id,
		state:      s,
		logic:      gamelogic.New(),
		sockets:    make(map[uuid.UUID]Socket),
		moveCh:     make(chan moveMsg, 256),
		throwCh:    make(chan uuid.UUID, 64),
		attachCh:   make(chan attachMsg, 16),
		detachCh:   make(chan uuid.UUID, 16),
		snapshotCh: make(chan snapshotReq, 16),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	go r.run()
	return r
}

// BuildInitialState returns the JSON initial_state message sent once
// to a freshly-attached game socket (spec §6): the full GameState,
// players_order/balls_order arrays a client needs to resolve the
// binary broadcast's positional records, and the config block. Routed
// through snapshotCh rather than reading r.state directly, so the tick
// goroutine stays the sole reader/writer of GameState (spec §5).
func (r *Room) BuildInitialState(playerID uuid.UUID) InitialStateMessage {
	resp := make(chan InitialStateMessage, 1)
	select {
	case r.snapshotCh <- snapshotReq{PlayerID: playerID, Resp: resp}:
	case <-r.doneCh:
		return InitialStateMessage{}
	}
	select {
	case msg := <-resp:
		return msg
	case <-r.doneCh:
		return InitialStateMessage{}
	}
}

// Attach connects a socket to an already-rostered player (initial join
// or reconnect). It blocks until the tick goroutine takes the socket,
// and returns without attaching once the room has stopped. Attaching
// lifts the pause that Detach put on the player.
func (r *Room) Attach(playerID uuid.UUID, sock Socket) {
	select {
	case r.attachCh <- attachMsg{PlayerID: playerID, Socket: sock}:
	case <-r.doneCh:
	}
}

// Detach marks a player's socket gone; per spec §5 this knocks the
// player out (paused) rather than removing them, so reconnection with
// the same player_id can resume control.
func (r *Room) Detach(playerID uuid.UUID) {
	select {
	case r.detachCh <- playerID:
	case <-r.doneCh:
	}
}

// QueueMove posts a movement intent. Only the most recent per player
// survives to the next tick (spec §5 coalescing); a full channel means
// the tick loop is behind, and this new intent is dropped rather than
// blocking the read goroutine.
func (r *Room) QueueMove(playerID uuid.UUID, dir geometry.Vector2) {
	select {
	case r.moveCh <- moveMsg{PlayerID: playerID, Dir: dir}:
	default:
	}
}

// QueueThrow posts a throw intent. Unlike movement these are never
// coalesced or dropped for backpressure reasons (spec §5): the
// channel is sized generously and a full buffer here means something
// else is already badly wrong.
func (r *Room) QueueThrow(playerID uuid.UUID) {
	select {
	case r.throwCh <- playerID:
	case <-r.doneCh:
	}
}

// Stop cancels the tick goroutine and closes every attached socket
// (spec §5 cancellation).
func (r *Room) Stop() {
	select {
	case <-r.doneCh:
	default:
		close(r.stopCh)
	}
}

// Done reports when the room's tick goroutine has exited.
func (r *Room) Done() <-chan struct{} { return r.doneCh }

func (r *Room) run() {
	defer close(r.doneCh)
	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	in := gamelogic.NewInput()

	for {
		select {
		case <-r.stopCh:
			for _, sock := range r.sockets {
				sock.Close()
			}
			return

		case msg := <-r.attachCh:
			r.sockets[msg.PlayerID] = msg.Socket
			if p := r.state.PlayerByID(msg.PlayerID); p != nil && math.IsInf(p.KnockoutTimer, 1) {
				p.IsKnockedOut = false
				p.KnockoutTimer = 0
			}

		case playerID := <-r.detachCh:
			delete(r.sockets, playerID)
			if p := r.state.PlayerByID(playerID); p != nil {
				// An infinite timer keeps the pause until the player
				// reattaches.
				p.KnockOut(math.Inf(1))
			}

		case req := <-r.snapshotCh:
			req.Resp <- buildInitialState(r.ID, req.PlayerID, r.state)

		case msg := <-r.moveCh:
			in.Move[msg.PlayerID] = msg.Dir

		case playerID := <-r.throwCh:
			in.Throws = append(in.Throws, playerID)

		case <-ticker.C:
			r.logic.Step(r.state, config.DT, in)
			r.broadcast()
			in = gamelogic.NewInput()
		}
	}
}

func (r *Room) broadcast() {
	packet := wire.EncodeV3(r.state)
	meta := TickMeta{Type: "tick_meta", DelayBin: r.state.DelayBin, Possession: r.state.PossessionCode()}
	for playerID, sock := range r.sockets {
		if err := sock.SendBinary(packet); err != nil {
			logging.Debug("room %s: dropping frame for player %s: %v", r.ID, playerID, err)
		}
		if err := sock.SendJSON(meta); err != nil {
			logging.Debug("room %s: dropping tick_meta for player %s: %v", r.ID, playerID, err)
		}
	}
}
