package lobby

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/apperrors"
	"github.com/fenixdev/quadball-server/internal/entities"
)

// Entry is a room's lobby-side bookkeeping: its roster and whether it
// has moved past the lobby into a running game. The authoritative
// simulation state for a started room lives in internal/room, not here.
type Entry struct {
	RoomID    string
	CreatorID uuid.UUID
	Players   []RosterEntry
	Started   bool
}

// Registry tracks every room's lobby roster for the life of the
// process. A single mutex guards it (spec §5: "the Room registry is
// protected by a single mutex"); per-room simulation state, once a
// room starts, lives behind that room's own tick goroutine instead.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Entry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Entry)}
}

// CreateRoom creates a new room with the given player as its first
// member and creator, auto-balanced onto team 0.
func (r *Registry) CreateRoom(playerName string) (*Entry, uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID := r.generateRoomID()
	playerID := newPlayerID()
	team, role := nextSlot(nil)

	entry := &Entry{
		RoomID:    roomID,
		CreatorID: playerID,
		Players:   []RosterEntry{{PlayerID: playerID.String(), Name: playerName, Team: team, Role: role}},
	}
	r.rooms[roomID] = entry
	return entry, playerID, nil
}

// JoinRoom adds a new player to an existing, not-yet-started room.
func (r *Registry) JoinRoom(roomID, playerName string) (*Entry, uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rooms[roomID]
	if !ok {
		return nil, uuid.Nil, apperrors.NotFound("no such room: " + roomID)
	}
	if entry.Started {
		return nil, uuid.Nil, apperrors.Protocol("room already started")
	}
	if len(entry.Players) >= config.MaxPlayersPerRoom {
		return nil, uuid.Nil, apperrors.Protocol("room is full")
	}

	playerID := newPlayerID()
	team, role := nextSlot(entry.Players)
	entry.Players = append(entry.Players, RosterEntry{PlayerID: playerID.String(), Name: playerName, Team: team, Role: role})
	return entry, playerID, nil
}

// UpdatePlayer overrides a player's team/role assignment, used when a
// client wants a different slot than the round-robin default.
func (r *Registry) UpdatePlayer(roomID, playerID string, team, role int) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rooms[roomID]
	if !ok {
		return nil, apperrors.NotFound("no such room: " + roomID)
	}
	for i := range entry.Players {
		if entry.Players[i].PlayerID == playerID {
			entry.Players[i].Team = team
			entry.Players[i].Role = role
			return entry, nil
		}
	}
	return nil, apperrors.Authorization("player not in room: " + playerID)
}

// StartGame marks a room started; only the creator may call it. It
// returns the final roster for the caller to hand off to internal/room.
func (r *Registry) StartGame(roomID, playerID string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rooms[roomID]
	if !ok {
		return nil, apperrors.NotFound("no such room: " + roomID)
	}
	if entry.CreatorID.String() != playerID {
		return nil, apperrors.Authorization("only the room creator can start the game")
	}
	entry.Started = true
	return entry, nil
}

// ListRooms summarizes every non-started room (started rooms are no
// longer joinable through the lobby).
func (r *Registry) ListRooms() []RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RoomSummary, 0, len(r.rooms))
	for _, e := range r.rooms {
		if e.Started {
			continue
		}
		out = append(out, RoomSummary{
			RoomID:      e.RoomID,
			PlayerCount: len(e.Players),
			MaxPlayers:  config.MaxPlayersPerRoom,
			Started:     e.Started,
		})
	}
	return out
}

// Get returns a copy of a room's lobby entry, used by the transport
// layer to seed internal/room.Room the first time a game socket
// attaches to a started room.
func (r *Registry) Get(roomID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rooms[roomID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// RemoveRoom drops a room from the registry once its game has ended.
func (r *Registry) RemoveRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomID)
}

// nextSlot round-robin balances a joining player across teams and,
// within a team, cycles through roles in a fixed order. This is a
// supplemental convenience the lobby protocol itself doesn't mandate:
// without it there's no well-defined way to seed a legal kickoff
// formation from an unordered join sequence.
var roleOrder = []entities.Role{entities.RoleKeeper, entities.RoleChaser, entities.RoleChaser, entities.RoleBeater, entities.RoleBeater, entities.RoleChaser, entities.RoleSeeker, entities.RoleChaser}

func nextSlot(existing []RosterEntry) (team, role int) {
	teamCounts := map[int]int{}
	for _, p := range existing {
		teamCounts[p.Team]++
	}
	team = int(entities.TeamA)
	if teamCounts[int(entities.TeamA)] > teamCounts[int(entities.TeamB)] {
		team = int(entities.TeamB)
	}
	role = int(roleOrder[teamCounts[team]%len(roleOrder)])
	return team, role
}

// generateRoomID mints a short, human-typeable room code, adapted from
// the teacher's crypto/rand-based generateRoomID (there hex-encoded;
// here base32 so the code reads as letters+digits without hyphens).
func (r *Registry) generateRoomID() string {
	for {
		buf := make([]byte, 5)
		_, _ = rand.Read(buf)
		id := strings.ToUpper(strings.TrimRight(base32.StdEncoding.EncodeToString(buf), "="))
		if _, exists := r.rooms[id]; !exists {
			return id
		}
	}
}
