package bot

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/lab1702/ofbot/config"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// Bot is the decision state of one computer-controlled player.
// All methods run on the simulation goroutine; PathCost values built from a
// bot may be used concurrently.
type Bot struct {
	body      Body
	world     World
	loco      Locomotion
	tracer    Tracer
	speaker   Speaker
	tuning    config.Tuning
	rng       *rand.Rand
	intention Intention

	skill     game.Difficulty
	attrs     game.Attribute
	squad     *Squad
	homeArea  *nav.Area
	nextClass string

	vision *VisionMemory

	suspected  []*suspectedSpy
	knownSpies map[game.Handle]struct{}
	notices    []delayedNotice

	// Weapons forced by the behavior layer, top of stack last
	equipStack []*game.Weapon

	myCP        ControlPoint
	cpValid     countdown
	cpChanged   countdown
	captureZone CaptureZone

	lookingAround bool
	lookTimer     countdown

	sniper sniperState
}

// New creates a bot driving body. seed makes the bot's own random choices
// reproducible; the time-bucketed choices do not depend on it.
func New(body Body, env Env, tuning config.Tuning, seed int64) *Bot {
	b := &Bot{
		body:          body,
		world:         env.World,
		loco:          env.Locomotion,
		tracer:        env.Tracer,
		speaker:       env.Speaker,
		tuning:        tuning,
		rng:           rand.New(rand.NewSource(seed)),
		intention:     nopIntention{},
		skill:         tuning.Skill(),
		knownSpies:    make(map[game.Handle]struct{}),
		lookingAround: true,
	}
	b.vision = newVisionMemory(b)
	return b
}

func (b *Bot) Body() Body                 { return b.body }
func (b *Bot) Handle() game.Handle        { return b.body.Handle() }
func (b *Bot) Team() game.Team            { return b.body.Team() }
func (b *Bot) Class() game.Class          { return b.body.Class() }
func (b *Bot) Skill() game.Difficulty     { return b.skill }
func (b *Bot) Vision() *VisionMemory      { return b.vision }
func (b *Bot) HomeArea() *nav.Area        { return b.homeArea }
func (b *Bot) Attributes() game.Attribute { return b.attrs }

// SetIntention routes event reactions to the behavior layer
func (b *Bot) SetIntention(i Intention) {
	if i == nil {
		i = nopIntention{}
	}
	b.intention = i
}

// SetDifficulty applies a new skill tier. Out of range tiers are ignored.
func (b *Bot) SetDifficulty(d game.Difficulty) bool {
	if !d.Valid() {
		log.Printf("[BOT] difficulty value out of range [0,3]: %d", d)
		return false
	}
	b.skill = d
	return true
}

// SetTuning replaces the tunables. A changed difficulty takes effect at the
// next spawn.
func (b *Bot) SetTuning(t config.Tuning) {
	b.tuning = t
}

func (b *Bot) SetAttribute(a game.Attribute)   { b.attrs |= a }
func (b *Bot) ClearAttribute(a game.Attribute) { b.attrs &^= a }

func (b *Bot) HasAttribute(a game.Attribute) bool {
	return b.attrs.Has(a)
}

// SetLookingAroundForEnemies turns the idle look-around behavior on or off
func (b *Bot) SetLookingAroundForEnemies(on bool) {
	b.lookingAround = on
}

func (b *Bot) now() time.Duration {
	return b.world.Now()
}

func (b *Bot) rules() GameRules {
	if b.world == nil {
		return nil
	}
	return b.world.Rules()
}

func (b *Bot) mesh() *nav.Mesh {
	if b.world == nil {
		return nil
	}
	return b.world.Mesh()
}

func (b *Bot) isFreeRoam() bool {
	r := b.rules()
	return r != nil && r.IsFreeRoam()
}

func (b *Bot) inGameType(t game.GameType) bool {
	r := b.rules()
	return r != nil && r.GameType() == t
}

// EnemyTeam returns the team this bot fights
func (b *Bot) EnemyTeam() game.Team {
	return game.EnemyTeam(b.Team())
}

// IsEnemy reports whether e fights against this bot. In free-roam every
// other player is an enemy.
func (b *Bot) IsEnemy(e Entity) bool {
	if e == nil || e.Handle() == b.Handle() {
		return false
	}
	mine, theirs := b.Team(), e.Team()
	if mine == game.TeamMercenary && theirs == game.TeamMercenary {
		return true
	}
	return theirs != mine && (theirs == game.TeamRed || theirs == game.TeamBlue || theirs == game.TeamMercenary)
}

func (b *Bot) randomDuration(min, max time.Duration) time.Duration {
	return min + time.Duration(b.rng.Int63n(int64(max-min)+1))
}

// TransientlyConsistentRandomValue returns a value in [0,1] that stays the
// same for this bot, in its current area, for period-long buckets of time.
// Without a known area it returns 0.
func (b *Bot) TransientlyConsistentRandomValue(period time.Duration, seed int) float64 {
	area := b.body.LastKnownArea()
	if area == nil {
		return 0
	}
	timeSeed := int(b.now()/period) + 1
	seed += area.ID * timeSeed * int(b.Handle())
	return math.Abs(math.Cos(float64(seed)))
}

// Spawn resets the per-life state
func (b *Bot) Spawn() {
	b.skill = b.tuning.Skill()
	b.attrs = game.AttrNone
	b.lookingAround = true

	b.suspected = nil
	b.knownSpies = make(map[game.Handle]struct{})
	b.notices = nil
	b.cpChanged.Invalidate()
	b.equipStack = nil
	b.myCP = nil
	b.cpValid.Invalidate()
	b.captureZone = nil

	b.vision.ForgetAllKnownEntities()
	b.ClearSniperSpots()
}

// Killed leaves any squad and picks the class to respawn as
func (b *Bot) Killed() {
	b.LeaveSquad()

	if !b.tuning.KeepClassAfterDeath {
		b.nextClass = b.NextSpawnClassname()
	}
}

// Remove is called when the bot leaves the match
func (b *Bot) Remove() {
	b.LeaveSquad()
}

// NextSpawnClassname returns the forced class, or "random"
func (b *Bot) NextSpawnClassname() string {
	if c, ok := b.tuning.ForcedClass(); ok {
		return c.String()
	}
	return "random"
}

// DesiredClass returns the class chosen at death, empty to keep the current one
func (b *Bot) DesiredClass() string {
	return b.nextClass
}

// PhysicsSimulate runs once per physics step
func (b *Bot) PhysicsSimulate() {
	if b.homeArea == nil {
		b.homeArea = b.body.LastKnownArea()
	}

	if b.squad != nil && (b.squad.Size() <= 1 || b.squad.Leader() == nil) {
		b.LeaveSquad()
	}
}

// Touch reacts to bumping into another entity. Bumping a cloaked or
// disguised enemy gives the spy away.
func (b *Bot) Touch(other Entity) {
	c, ok := other.(Character)
	if !ok || !b.IsEnemy(c) {
		return
	}
	if c.IsCloaked() || c.IsDisguised() {
		b.RealizeSpy(c)
	}
}

// OnGameEvent reacts to a game event
func (b *Bot) OnGameEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventPointStartCapture:
		b.intention.OnTerritoryContested(ev.ControlPoint)

	case game.EventPointCaptured:
		b.ClearMyControlPoint()
		if ev.Team == b.Team() {
			b.intention.OnTerritoryCaptured(ev.ControlPoint)
		} else {
			b.intention.OnTerritoryLost(ev.ControlPoint)
			b.cpChanged.Start(b.now(), b.randomDuration(10*time.Second, 20*time.Second))
		}

	case game.EventFlagEvent:
		if ev.FlagEvent == game.FlagEventPickUp && ev.Player == b.Handle() {
			b.intention.OnPickUp()
		}

	case game.EventRoundWin:
		if ev.FullRound {
			if ev.Team == b.Team() {
				b.intention.OnWin()
			} else {
				b.intention.OnLose()
			}
		}
	}
}

// DisguiseAsEnemy disguises as the class of a dead enemy, or a random class
func (b *Bot) DisguiseAsEnemy() {
	class := game.ClassUndefined
	for _, e := range b.world.Players(b.EnemyTeam()) {
		if !e.IsAlive() {
			class = e.Class()
		}
	}
	if class == game.ClassUndefined {
		class = game.ClassScout + game.Class(b.rng.Intn(int(game.ClassEngineer)))
	}
	b.body.Disguise(b.EnemyTeam(), class)
}

// GetDesiredPathLookAheadRange scales the lookahead with the body's model
func (b *Bot) GetDesiredPathLookAheadRange() float64 {
	return b.tuning.PathLookaheadRange * b.body.ModelScale()
}

// Update runs the per-tick bookkeeping for the bot. visible lists the
// entities the engine reports in view this tick.
func (b *Bot) Update(visible []Entity) {
	b.vision.Update(visible)
	b.UpdateDelayedThreatNotices()
	b.UpdateSuspicions()
	b.PhysicsSimulate()
	b.UpdateLookingAroundForEnemies()

	if threat := b.vision.GetPrimaryKnownThreat(false); threat != nil {
		b.EquipBestWeaponForThreat(threat)
	}

	if w := b.body.ActiveWeapon(); w != nil && game.IsSniperRifle(w.ID) {
		b.AccumulateSniperSpots()
	}
}
