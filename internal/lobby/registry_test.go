package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndJoinRoom(t *testing.T) {
	r := NewRegistry()
	entry, creatorID, err := r.CreateRoom("alice")
	require.NoError(t, err)
	require.Len(t, entry.Players, 1)
	assert.Equal(t, creatorID.String(), entry.Players[0].PlayerID)

	entry2, _, err := r.JoinRoom(entry.RoomID, "bob")
	require.NoError(t, err)
	assert.Len(t, entry2.Players, 2)
	assert.NotEqual(t, entry2.Players[0].Team, entry2.Players[1].Team, "round-robin should alternate teams")
}

func TestJoinUnknownRoomFails(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.JoinRoom("NOPE", "alice")
	assert.Error(t, err)
}

func TestJoinFullRoomFails(t *testing.T) {
	r := NewRegistry()
	entry, _, err := r.CreateRoom("p0")
	require.NoError(t, err)
	for i := 1; i < 14; i++ {
		_, _, err := r.JoinRoom(entry.RoomID, "p")
		require.NoError(t, err)
	}
	_, _, err = r.JoinRoom(entry.RoomID, "overflow")
	assert.Error(t, err)
}

func TestOnlyCreatorCanStart(t *testing.T) {
	r := NewRegistry()
	entry, creatorID, err := r.CreateRoom("alice")
	require.NoError(t, err)
	_, _, err = r.JoinRoom(entry.RoomID, "bob")
	require.NoError(t, err)

	_, err = r.StartGame(entry.RoomID, entry.Players[1].PlayerID)
	assert.Error(t, err)

	started, err := r.StartGame(entry.RoomID, creatorID.String())
	require.NoError(t, err)
	assert.True(t, started.Started)
}

func TestUpdatePlayerOverridesRoundRobinAssignment(t *testing.T) {
	r := NewRegistry()
	entry, creatorID, err := r.CreateRoom("alice")
	require.NoError(t, err)

	updated, err := r.UpdatePlayer(entry.RoomID, creatorID.String(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Players[0].Team)
	assert.Equal(t, 2, updated.Players[0].Role)
}

func TestListRoomsOmitsStartedRooms(t *testing.T) {
	r := NewRegistry()
	entry, creatorID, err := r.CreateRoom("alice")
	require.NoError(t, err)

	rooms := r.ListRooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, entry.RoomID, rooms[0].RoomID)
	assert.False(t, rooms[0].Started)

	_, err = r.StartGame(entry.RoomID, creatorID.String())
	require.NoError(t, err)
	rooms = r.ListRooms()
	assert.Empty(t, rooms)
}
