package wire

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a broadcast packet of any of the three supported
// versions (spec §4.4), dispatching on the first byte.
func Decode(data []byte) (Snapshot, error) {
	if len(data) < 1 {
		return Snapshot{}, fmt.Errorf("wire: empty packet")
	}
	switch data[0] {
	case Version1:
		return decodeV1(data)
	case Version2:
		return decodeV2(data)
	case Version3:
		return decodeV3(data)
	default:
		return Snapshot{}, fmt.Errorf("wire: unsupported version %d", data[0])
	}
}

func readHalf(data []byte, off int) (float32, int) {
	return FromHalf(binary.LittleEndian.Uint16(data[off:])), off + 2
}

func decodeHeader(data []byte) (playerCount, ballCount int, gameTime float32, score [2]uint8, off int, err error) {
	if len(data) < 7 {
		err = fmt.Errorf("wire: packet too short for header")
		return
	}
	playerCount = int(data[1])
	ballCount = int(data[2])
	gameTime, _ = readHalf(data, 3)
	score[0] = data[5]
	score[1] = data[6]
	off = 7
	return
}

func decodePlayers(data []byte, off, count int) ([]PlayerState, int, error) {
	players := make([]PlayerState, 0, count)
	for i := 0; i < count; i++ {
		if off+9 > len(data) {
			return nil, off, fmt.Errorf("wire: packet truncated in player %d", i)
		}
		var p PlayerState
		p.X, off = readHalf(data, off)
		p.Y, off = readHalf(data, off)
		p.VX, off = readHalf(data, off)
		p.VY, off = readHalf(data, off)
		p.Flags = data[off]
		off++
		players = append(players, p)
	}
	return players, off, nil
}

func decodeV1(data []byte) (Snapshot, error) {
	playerCount, ballCount, gameTime, score, off, err := decodeHeader(data)
	if err != nil {
		return Snapshot{}, err
	}
	players, off, err := decodePlayers(data, off, playerCount)
	if err != nil {
		return Snapshot{}, err
	}
	balls := make([]BallState, 0, ballCount)
	for i := 0; i < ballCount; i++ {
		if off+10 > len(data) {
			return Snapshot{}, fmt.Errorf("wire: packet truncated in ball %d", i)
		}
		var b BallState
		b.X, off = readHalf(data, off)
		b.Y, off = readHalf(data, off)
		b.VX, off = readHalf(data, off)
		b.VY, off = readHalf(data, off)
		b.Held = data[off] != 0
		off++
		b.IsDead = data[off] != 0
		off++
		balls = append(balls, b)
	}
	return Snapshot{Version: Version1, GameTime: gameTime, Score: score, Players: players, Balls: balls}, nil
}

func decodeV2(data []byte) (Snapshot, error) {
	snap, err := decodeV1(data)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Version = Version2
	// Trailing u8 delay_bin, u8 possession_code after the last ball.
	// decodeV1 does not track how many bytes it consumed beyond the
	// last ball record, so recompute the offset here.
	_, ballCount, _, _, off, _ := decodeHeader(data)
	_, off, _ = decodePlayers(data, off, len(snap.Players))
	off += 10 * ballCount
	if off+2 <= len(data) {
		snap.DelayBin = data[off]
		snap.Possess = data[off+1]
	}
	return snap, nil
}

func decodeV3(data []byte) (Snapshot, error) {
	playerCount, ballCount, gameTime, score, off, err := decodeHeader(data)
	if err != nil {
		return Snapshot{}, err
	}
	players, off, err := decodePlayers(data, off, playerCount)
	if err != nil {
		return Snapshot{}, err
	}
	balls := make([]BallState, 0, ballCount)
	for i := 0; i < ballCount; i++ {
		if off+11 > len(data) {
			return Snapshot{}, fmt.Errorf("wire: packet truncated in ball %d", i)
		}
		var b BallState
		b.X, off = readHalf(data, off)
		b.Y, off = readHalf(data, off)
		b.VX, off = readHalf(data, off)
		b.VY, off = readHalf(data, off)
		b.Held = data[off] != 0
		off++
		b.IsDead = data[off] != 0
		off++
		b.PossessionCode = data[off]
		off++
		balls = append(balls, b)
	}
	return Snapshot{Version: Version3, GameTime: gameTime, Score: score, Players: players, Balls: balls}, nil
}
