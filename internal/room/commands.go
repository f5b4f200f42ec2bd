package room

import (
	"encoding/binary"
	"fmt"

	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/wire"
)

// DecodeMoveFrame parses a 4-byte movement intent frame (spec §6): two
// little-endian binary16 values, dx then dy, reusing internal/wire's
// half-float codec for the same symmetry the state broadcast uses.
func DecodeMoveFrame(data []byte) (geometry.Vector2, error) {
	if len(data) != 4 {
		return geometry.Vector2{}, fmt.Errorf("room: move frame must be 4 bytes, got %d", len(data))
	}
	x := wire.FromHalf(binary.LittleEndian.Uint16(data[0:2]))
	y := wire.FromHalf(binary.LittleEndian.Uint16(data[2:4]))
	return geometry.Vector2{X: float64(x), Y: float64(y)}, nil
}

// ThrowFrame is the JSON payload for a throw intent (spec §6).
type ThrowFrame struct {
	Type string `json:"type"` // always "throw"
}
