package wire

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/state"
)

// EncodeV3 serializes a GameState into the version-3 broadcast packet
// (spec §4.4): a contiguous little-endian byte sequence with a fixed
// 7-byte header, then one 9-byte record per player, then one 11-byte
// record per ball (the field list in spec §4.4 takes precedence over
// its byte-count label for ball records; see DESIGN.md).
func EncodeV3(s *state.GameState) []byte {
	buf := make([]byte, 0, 7+9*len(s.Players)+11*len(s.Balls))
	buf = append(buf, byte(Version3))
	buf = append(buf, byte(len(s.Players)))
	buf = append(buf, byte(len(s.Balls)))
	buf = appendHalf(buf, float32(s.GameTime))
	buf = append(buf, byte(clampByte(s.Score[0])), byte(clampByte(s.Score[1])))

	holding := make(map[uuid.UUID]bool)
	for _, b := range s.Balls {
		if b.HolderID != nil {
			holding[*b.HolderID] = true
		}
	}

	for _, p := range s.Players {
		buf = appendPlayer(buf, p, holding[p.ID])
	}
	for _, b := range s.Balls {
		buf = appendBallV3(buf, b)
	}
	return buf
}

func appendHalf(buf []byte, v float32) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], ToHalf(v))
	return append(buf, tmp[:]...)
}

func appendPlayer(buf []byte, p *entities.Player, hasBall bool) []byte {
	buf = appendHalf(buf, float32(p.Position.X))
	buf = appendHalf(buf, float32(p.Position.Y))
	buf = appendHalf(buf, float32(p.Velocity.X))
	buf = appendHalf(buf, float32(p.Velocity.Y))

	var flags uint8
	if p.IsKnockedOut {
		flags |= FlagKnockedOut
	}
	if hasBall {
		flags |= FlagHasBall
	}
	buf = append(buf, flags)
	return buf
}

func appendBallV3(buf []byte, b *entities.Ball) []byte {
	buf = appendHalf(buf, float32(b.Position.X))
	buf = appendHalf(buf, float32(b.Position.Y))
	buf = appendHalf(buf, float32(b.Velocity.X))
	buf = appendHalf(buf, float32(b.Velocity.Y))

	holderFlag := byte(0)
	if b.HolderID != nil {
		holderFlag = 1
	}
	deadFlag := byte(0)
	if b.IsDead {
		deadFlag = 1
	}
	possession := byte(0)
	if b.PossessionTeam != nil {
		if *b.PossessionTeam == entities.TeamA {
			possession = 1
		} else {
			possession = 2
		}
	}
	return append(buf, holderFlag, deadFlag, possession)
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
