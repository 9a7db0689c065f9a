package bot

import (
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

//go:generate go tool mockgen -source=collaborators.go -destination=mocks/collaborators.go -package=mocks

// Locomotion reports the movement limits of a bot's body
type Locomotion interface {
	IsAreaTraversable(area *nav.Area) bool
	StepHeight() float64
	MaxJumpHeight() float64
	DeathDropHeight() float64
}

// Tracer traces lines through world geometry, ignoring players
type Tracer interface {
	TraceLine(from, to game.Vector) game.Trace
}

// Speaker voices speech concepts for a player
type Speaker interface {
	Speak(who game.Handle, concept game.Concept)
}

// Clock reports the current simulation time
type Clock interface {
	Now() time.Duration
}
