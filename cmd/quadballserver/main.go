// Package main implements the quadball multiplayer game server.
//
// Architecture overview:
//   - Two WebSocket surfaces: /ws/lobby (JSON create/join/list/update/start
//     protocol) and /ws/game/{room_id}/{player_id} (JSON initial_state once,
//     then a binary state broadcast every tick plus binary movement frames
//     and JSON throw frames from the client).
//   - Each started room runs its own fixed-rate simulation tick
//     (internal/room.Room); the lobby registry (internal/lobby.Registry)
//     tracks rosters for rooms that haven't started yet.
//   - Movement/throw input from a client is delivered to its room over
//     channels; no gameplay state is shared across goroutines by pointer.
//
// Connection flow:
//  1. Client connects to /ws/lobby, sends create_room or join_room.
//  2. Creator sends start_game; the server builds the room's GameState
//     at kickoff formation and starts its tick goroutine.
//  3. Each client then connects to /ws/game/{room_id}/{player_id}, receives
//     one JSON initial_state message, and from then on exchanges binary
//     frames with the room.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/lobby"
	"github.com/fenixdev/quadball-server/internal/logging"
	"github.com/fenixdev/quadball-server/internal/room"
)

// Server is the process-wide state: the lobby registry and whichever
// rooms have moved past the lobby into a running game.
type Server struct {
	config   *config.ServerConfig
	registry *lobby.Registry
	upgrader websocket.Upgrader

	roomsMu sync.Mutex
	rooms   map[string]*room.Room
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := loadConfig()
	srv := NewServer(cfg)

	logging.Info("=================================")
	logging.Info("  Quadball Game Server")
	logging.Info("=================================")
	logging.Info("  Host: %s", cfg.Host)
	logging.Info("  Port: %d", cfg.Port)
	logging.Info("  Tick Rate: %d Hz", config.TickHz)
	logging.Info("  Max Players/Room: %d", config.MaxPlayersPerRoom)
	logging.Info("  Max Rooms: %d", config.MaxRoomsPerServer)
	logging.Info("=================================")

	if err := srv.Start(); err != nil {
		logging.Fatal("server error: %v", err)
	}
}

// loadConfig reads HOST/PORT/ENABLE_CORS environment variables,
// following the teacher's convention. This differs from a
// command-line-flags-only config surface; the decision to keep env
// vars instead is recorded in DESIGN.md.
func loadConfig() *config.ServerConfig {
	cfg := config.DefaultServerConfig()
	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if cors := os.Getenv("ENABLE_CORS"); cors == "false" {
		cfg.EnableCORS = false
	}
	return cfg
}

// NewServer builds a Server ready to accept connections.
func NewServer(cfg *config.ServerConfig) *Server {
	return &Server{
		config:   cfg,
		registry: lobby.NewRegistry(),
		rooms:    make(map[string]*room.Room),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return cfg.EnableCORS
			},
		},
	}
}

// Start registers HTTP routes and blocks serving traffic.
func (s *Server) Start() error {
	http.HandleFunc("/ws/lobby", s.handleLobbyWS)
	http.HandleFunc("/ws/game/", s.handleGameWS)
	http.HandleFunc("/healthz", s.handleHealthz)
	http.HandleFunc("/stats", s.handleStats)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logging.Info("listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealthz is a liveness probe for load balancers / orchestrators
// (spec §6 expansion, grounded on the teacher's handleHealth).
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleStats reports room/player counts for rooms still in the lobby
// (ListRooms omits started rooms), grounded on the teacher's handleStats, generalized from vector-racer
// rooms to quadball rooms.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rooms := s.registry.ListRooms()
	players := 0
	for _, rm := range rooms {
		players += rm.PlayerCount
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"rooms":%d,"players":%d}`, len(rooms), players)
}

// ---- /ws/lobby ----

func (s *Server) handleLobbyWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("lobby upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	var writeMu sync.Mutex
	writeJSON := func(msg lobby.ServerMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		_ = ws.WriteJSON(msg)
	}

	done := make(chan struct{})
	go lobbyPinger(ws, &writeMu, done)
	defer close(done)

	ws.SetReadLimit(4096)
	ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg lobby.ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		s.handleLobbyMessage(ws.RemoteAddr().String(), msg, writeJSON)
	}
}

func lobbyPinger(ws *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			writeMu.Lock()
			ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := ws.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *Server) handleLobbyMessage(remote string, msg lobby.ClientMessage, reply func(lobby.ServerMessage)) {
	switch msg.Type {
	case lobby.MsgCreateRoom:
		entry, playerID, err := s.registry.CreateRoom(sanitizeName(msg.PlayerName))
		if err != nil {
			reply(lobby.ServerMessage{Type: lobby.MsgJoinFailed, Error: err.Error()})
			return
		}
		logging.Info("room %s created by %s (%s)", entry.RoomID, playerID, remote)
		reply(lobby.ServerMessage{Type: lobby.MsgRoomCreated, RoomID: entry.RoomID, PlayerID: playerID.String(), Players: entry.Players})

	case lobby.MsgJoinRoom:
		entry, playerID, err := s.registry.JoinRoom(msg.RoomID, sanitizeName(msg.PlayerName))
		if err != nil {
			reply(lobby.ServerMessage{Type: lobby.MsgJoinFailed, Error: err.Error()})
			return
		}
		reply(lobby.ServerMessage{Type: lobby.MsgJoinSuccessful, RoomID: entry.RoomID, PlayerID: playerID.String(), Players: entry.Players})

	case lobby.MsgListRooms:
		reply(lobby.ServerMessage{Type: lobby.MsgRoomsList, Rooms: s.registry.ListRooms()})

	case lobby.MsgUpdatePlayer:
		entry, err := s.registry.UpdatePlayer(msg.RoomID, msg.PlayerID, msg.Team, msg.Role)
		if err != nil {
			reply(lobby.ServerMessage{Type: lobby.MsgJoinFailed, Error: err.Error()})
			return
		}
		reply(lobby.ServerMessage{Type: lobby.MsgPlayersUpdated, RoomID: entry.RoomID, Players: entry.Players})

	case lobby.MsgStartGame:
		entry, err := s.registry.StartGame(msg.RoomID, msg.PlayerID)
		if err != nil {
			reply(lobby.ServerMessage{Type: lobby.MsgJoinFailed, Error: err.Error()})
			return
		}
		s.getOrCreateRoom(*entry)
		reply(lobby.ServerMessage{Type: lobby.MsgStartSuccessful, RoomID: entry.RoomID, Players: entry.Players})

	default:
		reply(lobby.ServerMessage{Type: lobby.MsgJoinFailed, Error: "unknown message type: " + msg.Type})
	}
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	return name
}

// getOrCreateRoom builds the internal/room.Room for a just-started
// lobby entry, caching it so every subsequent /ws/game attach for that
// room_id reuses the same tick goroutine.
func (s *Server) getOrCreateRoom(entry lobby.Entry) *room.Room {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	if rm, ok := s.rooms[entry.RoomID]; ok {
		return rm
	}

	roster := make([]room.RosterPlayer, 0, len(entry.Players))
	for _, p := range entry.Players {
		id, err := uuid.Parse(p.PlayerID)
		if err != nil {
			logging.Error("room %s: skipping roster entry with bad player_id %q: %v", entry.RoomID, p.PlayerID, err)
			continue
		}
		roster = append(roster, room.RosterPlayer{
			ID:   id,
			Name: p.Name,
			Team: entities.Team(p.Team),
			Role: entities.Role(p.Role),
		})
	}

	rm := room.New(entry.RoomID, roster)
	s.rooms[entry.RoomID] = rm
	go func() {
		<-rm.Done()
		s.roomsMu.Lock()
		delete(s.rooms, entry.RoomID)
		s.roomsMu.Unlock()
		s.registry.RemoveRoom(entry.RoomID)
	}()
	return rm
}

// ---- /ws/game/{room_id}/{player_id} ----

func (s *Server) handleGameWS(w http.ResponseWriter, r *http.Request) {
	roomID, playerIDStr, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.Error(w, "expected /ws/game/{room_id}/{player_id}", http.StatusBadRequest)
		return
	}
	playerID, err := uuid.Parse(playerIDStr)
	if err != nil {
		http.Error(w, "malformed player_id", http.StatusBadRequest)
		return
	}

	entry, ok := s.registry.Get(roomID)
	if !ok {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}
	if !entry.Started {
		http.Error(w, "room has not started", http.StatusConflict)
		return
	}
	inRoster := false
	for _, p := range entry.Players {
		if p.PlayerID == playerID.String() {
			inRoster = true
			break
		}
	}
	if !inRoster {
		http.Error(w, "player not in room", http.StatusForbidden)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("game upgrade failed: %v", err)
		return
	}

	rm := s.getOrCreateRoom(entry)

	gs := &gameSocket{
		ws:       ws,
		sendChan: make(chan []byte, 256),
		jsonChan: make(chan []byte, 32),
		done:     make(chan struct{}),
	}

	initial, err := json.Marshal(rm.BuildInitialState(playerID))
	if err == nil {
		ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		_ = ws.WriteMessage(websocket.TextMessage, initial)
	} else {
		logging.Error("room %s: failed to marshal initial_state for player %s: %v", roomID, playerID, err)
	}

	rm.Attach(playerID, gs)
	go gs.writePump()
	gs.readPump(rm, playerID)

	rm.Detach(playerID)
}

func parseGamePath(path string) (roomID, playerID string, ok bool) {
	const prefix = "/ws/game/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// gameSocket adapts a websocket.Conn to room.Socket, using the
// teacher's buffered-sendChan-plus-done-channel pattern
// (cmd/gameserver's ClientConnection) so a slow client can never block
// the room's tick goroutine.
type gameSocket struct {
	ws       *websocket.Conn
	sendChan chan []byte
	jsonChan chan []byte
	done     chan struct{}
}

func (g *gameSocket) SendBinary(data []byte) error {
	select {
	case g.sendChan <- data:
		return nil
	case <-g.done:
		return fmt.Errorf("game socket closed")
	default:
		return fmt.Errorf("game socket backpressured, frame dropped")
	}
}

func (g *gameSocket) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case g.jsonChan <- data:
		return nil
	case <-g.done:
		return fmt.Errorf("game socket closed")
	default:
		return fmt.Errorf("game socket backpressured, tick_meta dropped")
	}
}

func (g *gameSocket) Close() error {
	select {
	case <-g.done:
		return nil
	default:
		close(g.done)
	}
	return g.ws.Close()
}

func (g *gameSocket) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer g.Close()

	for {
		select {
		case <-g.done:
			return
		case data := <-g.sendChan:
			g.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := g.ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case data := <-g.jsonChan:
			g.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := g.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			g.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := g.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *gameSocket) readPump(rm *room.Room, playerID uuid.UUID) {
	defer g.Close()

	g.ws.SetReadLimit(512)
	g.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	g.ws.SetPongHandler(func(string) error {
		g.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		msgType, data, err := g.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Debug("game socket read error for player %s: %v", playerID, err)
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			dir, err := room.DecodeMoveFrame(data)
			if err != nil {
				logging.Debug("bad move frame from %s: %v", playerID, err)
				_ = g.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInvalidFramePayloadData, "malformed move frame"),
					time.Now().Add(time.Second))
				return
			}
			rm.QueueMove(playerID, dir)

		case websocket.TextMessage:
			var frame room.ThrowFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				logging.Debug("bad JSON frame from %s: %v", playerID, err)
				_ = g.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInvalidFramePayloadData, "malformed JSON frame"),
					time.Now().Add(time.Second))
				return
			}
			if frame.Type != "throw" {
				continue
			}
			rm.QueueThrow(playerID)
		}
	}
}
