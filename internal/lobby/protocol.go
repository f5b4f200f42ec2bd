// Package lobby implements the pre-game WebSocket protocol and room
// registry (spec §6, §4.2): creating and listing rooms, assigning
// players to teams/roles, and starting a game. Adapted from the
// teacher's internal/matchmaker, trading its uint16 auto-increment
// player IDs for reconnect-stable UUIDs and its room-capacity-only
// FindRoom for an explicit create/join/list/update/start surface.
package lobby

import "github.com/google/uuid"

// ClientMessage is the union of messages a lobby socket can receive.
// Fields unused by a given Type are left zero.
type ClientMessage struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name,omitempty"`
	RoomID     string `json:"room_id,omitempty"`
	PlayerID   string `json:"player_id,omitempty"`
	Team       int    `json:"team,omitempty"`
	Role       int    `json:"role,omitempty"`
}

// Client message type strings (spec §6).
const (
	MsgCreateRoom   = "create_room"
	MsgJoinRoom     = "join_room"
	MsgListRooms    = "list_rooms"
	MsgUpdatePlayer = "update_player"
	MsgStartGame    = "start_game"
)

// Server message type strings (spec §6).
const (
	MsgRoomCreated     = "room_created"
	MsgJoinSuccessful  = "join_successful"
	MsgJoinFailed      = "join_failed"
	MsgRoomsList       = "rooms_list"
	MsgPlayersUpdated  = "players_updated"
	MsgStartSuccessful = "start_successful"
)

// RosterEntry describes one player in a room's lobby roster, the
// shape sent in `players` arrays throughout the lobby protocol.
type RosterEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Team     int    `json:"team"`
	Role     int    `json:"role"`
}

// ServerMessage is the union of messages the lobby sends back. json
// tags omit empty fields so a single struct can serve every message
// type without spurious zero values in the payload.
type ServerMessage struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"room_id,omitempty"`
	PlayerID string        `json:"player_id,omitempty"`
	Players  []RosterEntry `json:"players,omitempty"`
	Error    string        `json:"error,omitempty"`
	Rooms    []RoomSummary `json:"rooms,omitempty"`
}

// RoomSummary is one entry of a `rooms_list` reply.
type RoomSummary struct {
	RoomID      string `json:"room_id"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Started     bool   `json:"started"`
}

func newPlayerID() uuid.UUID { return uuid.New() }
