package wire

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

func buildSnapshotState() *state.GameState {
	s := state.New()

	p1 := entities.NewPlayer(uuid.New(), "a", entities.TeamA, entities.RoleChaser)
	p1.Position = geometry.Vector2{X: 30.125, Y: 16.5}
	p1.Velocity = geometry.Vector2{X: 1.5, Y: -2}
	s.AddPlayer(p1)

	p2 := entities.NewPlayer(uuid.New(), "b", entities.TeamB, entities.RoleKeeper)
	p2.Position = geometry.Vector2{X: 55, Y: 10}
	p2.IsKnockedOut = true
	s.AddPlayer(p2)

	vb := entities.NewBall(0, entities.BallVolleyball)
	vb.Position = geometry.Vector2{X: 30, Y: 16.5}
	vb.SetHolder(p1.ID)
	s.AddBall(vb)
	s.SetPossession(entities.TeamA)

	db := entities.NewBall(1, entities.BallDodgeball)
	db.Position = geometry.Vector2{X: 12, Y: 8}
	db.Velocity = geometry.Vector2{X: 3, Y: 0}
	s.AddBall(db)

	s.Score = [2]int{2, 1}
	s.GameTime = 42.5

	return s
}

func TestEncodeDecodeV3RoundTrip(t *testing.T) {
	s := buildSnapshotState()
	packet := EncodeV3(s)

	snap, err := Decode(packet)
	require.NoError(t, err)

	assert.Equal(t, Version3, snap.Version)
	assert.InDelta(t, 42.5, snap.GameTime, 0.1)
	assert.Equal(t, uint8(2), snap.Score[0])
	assert.Equal(t, uint8(1), snap.Score[1])
	require.Len(t, snap.Players, 2)
	require.Len(t, snap.Balls, 2)

	assert.InDelta(t, 30.125, snap.Players[0].X, 0.05)
	assert.InDelta(t, 16.5, snap.Players[0].Y, 0.05)
	assert.False(t, snap.Players[0].IsKnockedOut())
	assert.True(t, snap.Players[0].HasBall())

	assert.True(t, snap.Players[1].IsKnockedOut())
	assert.False(t, snap.Players[1].HasBall())

	assert.True(t, snap.Balls[0].Held)
	assert.Equal(t, uint8(1), snap.Balls[0].PossessionCode)
	assert.False(t, snap.Balls[1].Held)
}

func TestDecodeV1IgnoresPossessionButKeepsPositions(t *testing.T) {
	s := buildSnapshotState()
	v3 := EncodeV3(s)

	// Re-label the version byte and drop each ball's trailing
	// possession_code byte to build a version-1 packet by hand,
	// mirroring what a version-1 encoder would have produced.
	v1 := append([]byte{Version1}, v3[1:]...)
	v1Packet := stripPossessionBytes(v1, len(s.Players), len(s.Balls))

	snap, err := Decode(v1Packet)
	require.NoError(t, err)
	assert.Equal(t, Version1, snap.Version)
	require.Len(t, snap.Balls, 2)
	assert.InDelta(t, 30.0, snap.Balls[0].X, 0.05)
	assert.InDelta(t, 16.5, snap.Balls[0].Y, 0.05)
	assert.Equal(t, uint8(0), snap.Balls[0].PossessionCode)
}

// stripPossessionBytes rebuilds a version-1/2 style packet from a
// version-3 one by removing the trailing possession_code byte of each
// ball record (the only structural difference for this test's purpose).
func stripPossessionBytes(v3Packet []byte, playerCount, ballCount int) []byte {
	headerLen := 7
	playersLen := 9 * playerCount
	out := make([]byte, 0, len(v3Packet)-ballCount)
	out = append(out, v3Packet[:headerLen+playersLen]...)

	off := headerLen + playersLen
	for i := 0; i < ballCount; i++ {
		out = append(out, v3Packet[off:off+10]...) // x,y,vx,vy,held,dead
		off += 11
	}
	return out
}
