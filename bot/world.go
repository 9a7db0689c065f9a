package bot

import (
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// Entity is anything in the world a bot can perceive
type Entity interface {
	Handle() game.Handle
	Position() game.Vector
	Team() game.Team
	IsAlive() bool
}

// Character is a player, human or bot
type Character interface {
	Entity
	Class() game.Class
	EyePosition() game.Vector
	EyeForward() game.Vector
	IsCloaked() bool
	IsDisguised() bool
	ActiveWeapon() *game.Weapon
	LastKnownArea() *nav.Area

	// AsBot returns the bot driving this character, if any
	AsBot() (*Bot, bool)
}

// Body is the character a Bot drives
type Body interface {
	Character
	Weapons() []*game.Weapon
	SwitchWeapon(w *game.Weapon) bool
	Metal() int
	ModelScale() float64
	IsAiming() bool
	AimHeadTowards(target game.Vector, reason string)
	Disguise(team game.Team, class game.Class)
}

// Sentry is an engineer's sentry gun
type Sentry interface {
	Entity
	LastKnownArea() *nav.Area
	TurretForward() game.Vector

	// IsOperational is false while the gun is placed, built, hauled or sapped
	IsOperational() bool
}

// ControlPoint is a capturable point. Team reports the owner.
type ControlPoint interface {
	Entity
	Index() int
	HasBeenContested() bool

	// LastContestedAt is negative when the point was never contested
	LastContestedAt() time.Duration
}

// Flag is a capture flag. Team reports the team the flag belongs to.
type Flag interface {
	Entity
	Type() game.FlagType
	IsDisabled() bool
	IsStolen() bool
	Carrier() game.Handle
}

// CaptureZone is where a flag is brought to score
type CaptureZone interface {
	Entity
}

// GameRules is the active ruleset. Point lists are per team.
type GameRules interface {
	GameType() game.GameType
	IsFreeRoam() bool
	IsKoth() bool
	IsMutator(m game.Mutator) bool
	HasMutators() bool

	ControlPoints() []ControlPoint
	CapturePoints(team game.Team) []ControlPoint
	DefendPoints(team game.Team) []ControlPoint

	PayloadToPush(team game.Team) Entity
	PayloadToBlock(team game.Team) Entity

	KothTimeLeft(team game.Team) (time.Duration, bool)
	RoundTimeLeft() (time.Duration, bool)
}

// World is the read-only registry a bot queries. Rules and Mesh may be nil
// while a map is loading; every decision degrades to a no-op in that case.
type World interface {
	Clock
	Rules() GameRules
	Mesh() *nav.Mesh

	// Players returns the players on team, or everyone for game.TeamAny
	Players(team game.Team) []Character
	Entity(h game.Handle) Entity
	Sentries() []Sentry
	Flags() []Flag
	CaptureZones() []CaptureZone
}

// Env bundles the collaborators a bot is constructed with
type Env struct {
	World      World
	Locomotion Locomotion
	Tracer     Tracer
	Speaker    Speaker
}

// Intention receives the bot's reactions to game events. The behavior layer
// that implements it lives outside this package.
type Intention interface {
	OnTerritoryContested(cp int)
	OnTerritoryCaptured(cp int)
	OnTerritoryLost(cp int)
	OnPickUp()
	OnWin()
	OnLose()
}

type nopIntention struct{}

func (nopIntention) OnTerritoryContested(int) {}
func (nopIntention) OnTerritoryCaptured(int)  {}
func (nopIntention) OnTerritoryLost(int)      {}
func (nopIntention) OnPickUp()                {}
func (nopIntention) OnWin()                   {}
func (nopIntention) OnLose()                  {}
