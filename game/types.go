package game

import (
	"strconv"
	"strings"
	"time"
)

// Simulation constants
const (
	MaxPlayers = 33

	// TickRate is the server simulation rate (ticks per second)
	TickRate       = 66
	UpdateInterval = time.Second / TickRate

	// HumanHeight is the standing eye-to-feet height used for look-around aim points
	HumanHeight = 72.0

	// SentryBaseRange is the range at which a sentry gun engages
	SentryBaseRange = 1100.0
)

// Handle is a weak reference to an engine entity by entity index.
// The zero value refers to nothing; entities may disappear while a handle is held.
type Handle int

// NoHandle is the empty entity reference
const NoHandle Handle = 0

// Valid reports whether the handle refers to some entity slot
func (h Handle) Valid() bool {
	return h > NoHandle
}

// Team identifies a team. TeamAny is used by queries that do not filter by team.
type Team int

const (
	TeamAny Team = iota - 1
	TeamUnassigned
	TeamSpectator
	TeamRed
	TeamBlue
	TeamMercenary // free-roam deathmatch team

	TeamCount = 5
)

var teamNames = map[Team]string{
	TeamAny:        "any",
	TeamUnassigned: "unassigned",
	TeamSpectator:  "spectator",
	TeamRed:        "red",
	TeamBlue:       "blue",
	TeamMercenary:  "mercenary",
}

func (t Team) String() string {
	if name, ok := teamNames[t]; ok {
		return name
	}
	return "team(" + strconv.Itoa(int(t)) + ")"
}

// Index returns the team as an array index, or -1 for TeamAny and unknown teams
func (t Team) Index() int {
	if t < TeamUnassigned || int(t) >= TeamCount {
		return -1
	}
	return int(t)
}

// EnemyTeam returns the opposing team of a two-team match.
// Free-roam and non-playing teams have no single enemy and return TeamUnassigned.
func EnemyTeam(t Team) Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamUnassigned
	}
}

// ParseTeam accepts the team names used by the admin surface
func ParseTeam(s string) (Team, bool) {
	for t, name := range teamNames {
		if strings.EqualFold(s, name) {
			return t, true
		}
	}
	return TeamUnassigned, false
}

// Class is a player class
type Class int

const (
	ClassUndefined Class = iota
	ClassScout
	ClassSniper
	ClassSoldier
	ClassDemoman
	ClassMedic
	ClassHeavy
	ClassPyro
	ClassSpy
	ClassEngineer
	ClassMercenary
	ClassCivilian

	ClassCount
)

var classNames = [ClassCount]string{
	"undefined", "scout", "sniper", "soldier", "demoman", "medic",
	"heavyweapons", "pyro", "spy", "engineer", "mercenary", "civilian",
}

func (c Class) String() string {
	if c < 0 || c >= ClassCount {
		return "class(" + strconv.Itoa(int(c)) + ")"
	}
	return classNames[c]
}

// ParseClass resolves a class name. "heavy" is accepted as an alias.
func ParseClass(s string) (Class, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "heavy" {
		return ClassHeavy, true
	}
	for i, name := range classNames {
		if i == int(ClassUndefined) {
			continue
		}
		if s == name {
			return Class(i), true
		}
	}
	return ClassUndefined, false
}

// Difficulty is the ordered bot skill tier
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExpert
)

var difficultyNames = [...]string{"easy", "normal", "hard", "expert"}

func (d Difficulty) String() string {
	if !d.Valid() {
		return "difficulty(" + strconv.Itoa(int(d)) + ")"
	}
	return difficultyNames[d]
}

// Valid reports whether d is one of the four defined tiers
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyExpert
}

// ParseDifficulty accepts a tier name or its number (0=easy .. 3=expert)
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Difficulty(n).Valid() {
		return Difficulty(n), true
	}
	return DifficultyEasy, false
}

// Attribute is the bot behavior attribute bitmask
type Attribute uint32

const (
	AttrNone           Attribute = 0
	AttrRemoveOnDeath  Attribute = 1 << 0
	AttrAggressive     Attribute = 1 << 1
	AttrSuppressFire   Attribute = 1 << 3
	AttrDisableDodge   Attribute = 1 << 4
	AttrBecomeSpectate Attribute = 1 << 5
	AttrRetainBuilds   Attribute = 1 << 7
	AttrDontLookAround Attribute = 1 << 9
)

// Has reports whether every bit of want is set
func (a Attribute) Has(want Attribute) bool {
	return a&want == want
}

// GameType is the active objective ruleset
type GameType int

const (
	GameTypeUndefined GameType = iota
	GameTypeCTF
	GameTypeCP
	GameTypePayload
	GameTypeArena
	GameTypeDM
)

var gameTypeNames = [...]string{"undefined", "ctf", "cp", "payload", "arena", "dm"}

func (g GameType) String() string {
	if g < 0 || int(g) >= len(gameTypeNames) {
		return "gametype(" + strconv.Itoa(int(g)) + ")"
	}
	return gameTypeNames[g]
}

// FlagType identifies capture flag variants
type FlagType int

const (
	FlagTypeCTF FlagType = iota
	FlagTypeAttackDefend
	FlagTypeTerritoryControl
	FlagTypeInvade
	FlagTypeSpecialDelivery
)

// Concept is a speech concept a bot can voice
type Concept int

const (
	ConceptCloakedSpy Concept = iota
	ConceptHelpMe
	ConceptIncoming
)

// Mutator is a server-wide rule modifier. Several can be active at once.
type Mutator int

const (
	MutatorNone Mutator = iota
	MutatorInstagib
	MutatorInstagibNoMelee
	MutatorClanArena
	MutatorUnholyTrinity
	MutatorRocketArena
	MutatorGunGame
	MutatorArsenal
)

// Trace is the result of a line trace through world geometry.
// Entity is the entity that stopped the trace, if any.
type Trace struct {
	Hit    bool
	End    Vector
	Entity Handle
}
