package room

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
)

type fakeSocket struct {
	frames chan []byte
	closed chan struct{}
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{frames: make(chan []byte, 32), closed: make(chan struct{})}
}

func (f *fakeSocket) SendBinary(data []byte) error {
	select {
	case f.frames <- data:
	default:
	}
	return nil
}

func (f *fakeSocket) SendJSON(v any) error { return nil }

func (f *fakeSocket) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func newTestRoster() []RosterPlayer {
	return []RosterPlayer{
		{ID: uuid.New(), Name: "alice", Team: entities.TeamA, Role: entities.RoleChaser},
		{ID: uuid.New(), Name: "bob", Team: entities.TeamB, Role: entities.RoleKeeper},
	}
}

func waitFrame(t *testing.T, sock *fakeSocket) []byte {
	t.Helper()
	select {
	case data := <-sock.frames:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a broadcast frame")
		return nil
	}
}

func TestRoomBroadcastsToAttachedSockets(t *testing.T) {
	roster := newTestRoster()
	r := New("ROOM1", roster)
	defer r.Stop()

	sock := newFakeSocket()
	r.Attach(roster[0].ID, sock)

	data := waitFrame(t, sock)
	assert.NotEmpty(t, data)
	assert.Equal(t, byte(3), data[0], "room broadcasts version-3 packets")
}

func TestRoomDetachStopsBroadcastAndKnocksOutPlayer(t *testing.T) {
	roster := newTestRoster()
	r := New("ROOM2", roster)
	defer r.Stop()

	sock := newFakeSocket()
	r.Attach(roster[0].ID, sock)
	waitFrame(t, sock)

	r.Detach(roster[0].ID)

	// Drain whatever had already queued, then confirm nothing new arrives.
	time.Sleep(100 * time.Millisecond)
	for len(sock.frames) > 0 {
		<-sock.frames
	}
	select {
	case <-sock.frames:
		t.Fatal("expected no further frames after detach")
	case <-time.After(150 * time.Millisecond):
	}

	p := r.state.PlayerByID(roster[0].ID)
	require.NotNil(t, p)
	assert.True(t, p.IsKnockedOut)
}

func TestRoomCoalescesMoveAndStopsOnStop(t *testing.T) {
	roster := newTestRoster()
	r := New("ROOM3", roster)

	r.QueueMove(roster[0].ID, geometry.Vector2{X: 1, Y: 0})
	r.QueueMove(roster[0].ID, geometry.Vector2{X: 0, Y: 1})

	time.Sleep(3 * time.Duration(1e9/20)) // a few ticks
	p := r.state.PlayerByID(roster[0].ID)
	require.NotNil(t, p)
	// Only the most recent intent (0,1) should have been latched onto
	// DesiredDirection; the first (1,0) is overwritten before any tick
	// drains it.
	assert.InDelta(t, 0.0, p.DesiredDirection.X, 1e-6)
	assert.InDelta(t, 1.0, p.DesiredDirection.Y, 1e-6)

	r.Stop()
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("room did not stop")
	}
}
