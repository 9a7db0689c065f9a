package server

import "time"

// Demo arena constants. The arena is a grid of square nav areas running
// west (red spawn) to east (blue spawn), with control points on the middle row.

const (
	// Arena layout
	ArenaColumns  = 11    // Areas from red spawn to blue spawn
	ArenaRows     = 3     // Lanes
	ArenaAreaSize = 400.0 // Width of one nav area
	HighLaneZ     = 48.0  // The north lane sits on a ledge that needs a jump
	HazardCost    = 350.0 // Function cost of the pit area in the south lane

	// Movement and senses
	RunSpeed     = 300.0  // Units per second along a route
	WaypointSnap = 24.0   // Distance at which a route waypoint counts as reached
	VisionRange  = 2500.0 // Bots never see further than this
	TouchRadius  = 48.0   // Players closer than this touch each other
	FlagGrabDist = 64.0   // Distance at which a flag is picked up or captured
	WallHeight   = 200.0

	// Combat
	MaxHealth       = 150
	LowHealth       = 50 // Bots below this retreat home
	FireInterval    = 500 * time.Millisecond
	RespawnDelay    = 5 * time.Second
	CombatPerDeath  = 1.0    // Combat intensity added to an area per kill
	CombatDecay     = 0.9    // Per second combat intensity fade
	ProjectileSpeed = 1100.0 // Rockets, grenades and syringes; bots lead moving targets

	// Objectives
	CaptureTime   = 5 * time.Second
	RoundDuration = 10 * time.Minute
	RoundRestart  = 5 * time.Second
	CartSpeed     = 50.0 // Payload cart units per second while pushed
	CartPushRange = 150.0

	// Scheduling
	RouteReplanInterval = time.Second // How often every bot's route is recomputed
	SnapshotEvery       = 6           // Ticks between inspector feed snapshots
	SquadSize           = 3
	MaxBots             = 32
)
