package config

import "time"

// Pitch dimensions, in meters. See spec §6 Configuration.
const (
	PitchLength  = 60.0
	PitchWidth   = 33.0
	KeeperZoneX  = 12.0
	HoopRadius   = 2.0
	HoopThickness = 0.3
	HoopOffset   = 3.0 // distance of hoop center from the short end
)

// Entity radii, in meters.
const (
	PlayerRadius    = 0.5
	VolleyballRadius = 0.3
	DodgeballRadius  = 0.25
)

// Simulation cadence. The tick task is both the physics step and the
// broadcast step (spec §4.1/§5: "the tick runs at a fixed rate, default
// 20 Hz"), unlike a split physics/broadcast rate.
const (
	TickHz          = 20
	TickInterval    = time.Second / TickHz
	DT              = 1.0 / float64(TickHz)
)

// Role max speeds, in meters/second. Open Question (b) in spec §9:
// role-speed ratios are not in the source and are made explicit here.
const (
	MaxSpeedChaser = 6.0
	MaxSpeedKeeper = 5.0
	MaxSpeedBeater = 6.0
	MaxSpeedSeeker = 7.0
)

// MaxSpeedForRole returns the configured speed cap for a role.
func MaxSpeedForRole(role int) float64 {
	switch role {
	case RoleKeeper:
		return MaxSpeedKeeper
	case RoleBeater:
		return MaxSpeedBeater
	case RoleSeeker:
		return MaxSpeedSeeker
	default:
		return MaxSpeedChaser
	}
}

// Role identifiers. Kept as small ints (rather than a string enum) to
// match the compactness the wire format and config lookups want.
const (
	RoleKeeper = iota
	RoleChaser
	RoleBeater
	RoleSeeker
)

// Team identifiers.
const (
	TeamA = 0
	TeamB = 1
)

// Ball types.
const (
	BallVolleyball = iota
	BallDodgeball
)

// Throw speeds, in meters/second, per ball type (spec §9 open question b).
const (
	ThrowSpeedVolleyball = 12.0
	ThrowSpeedDodgeball  = 16.0
)

// Kinematics tuning (spec §4.1 Phase B).
const (
	AccelFactor = 8.0 // velocity lerp rate toward target_velocity
)

// Free-ball kinematics (spec §4.1 Phase E).
const (
	FreeBallDrag        = 0.6
	WallRestitution     = 0.8
)

// Beats / knockout (spec §4.1 Phase G).
const (
	KnockoutDuration = 5.0 // seconds
)

// Delay-of-game (spec §4.1 Phase J, §3).
const (
	DelayBinCap        = 8
	DelaySecondsPerBin = 1.0
)

// Goaltending (spec §4.1 Phase K).
const (
	GoaltendingRadius = 4.0
)

// Self-own protection window for goal voiding (spec §4.1 Phase H).
const (
	SelfOwnWindow = 0.2 // seconds
)

// Inbounding (spec §4.3).
const (
	InboundingFreeForAllAfter = 5.0 // seconds
)

// Player-player collision (spec §4.1 Phase I).
const (
	PlayerCollisionDiameter = PlayerRadius * 2
)

// Epsilon used for zero-vector / near-zero comparisons throughout the
// simulation (spec §3: "normalize returns zero vector if magnitude < ε").
const Epsilon = 1e-6
