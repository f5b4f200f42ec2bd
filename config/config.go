// Package config holds server and gameplay constants for the quadball
// realtime server. Values here must match any client implementation
// exactly: the wire format and the simulation are only meaningful if
// both sides agree on pitch dimensions, speeds, and tick rate.
package config

// ServerConfig is the process-level configuration: bind address and
// transport toggles. Launch-time only, no hot reload.
type ServerConfig struct {
	Host       string
	Port       int
	EnableCORS bool
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:       "0.0.0.0",
		Port:       8080,
		EnableCORS: true,
	}
}

// Room / registry limits.
const (
	MaxPlayersPerRoom = 14 // two full quadball rosters (7-a-side) plus slack
	MaxRoomsPerServer = 200
)
