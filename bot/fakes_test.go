package bot

import (
	"testing"
	"time"

	"github.com/lab1702/ofbot/config"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

type fakeEntity struct {
	handle game.Handle
	pos    game.Vector
	team   game.Team
	dead   bool
}

func (e *fakeEntity) Handle() game.Handle   { return e.handle }
func (e *fakeEntity) Position() game.Vector { return e.pos }
func (e *fakeEntity) Team() game.Team       { return e.team }
func (e *fakeEntity) IsAlive() bool         { return !e.dead }

// fakePlayer implements Body, and so Character
type fakePlayer struct {
	fakeEntity
	class     game.Class
	forward   game.Vector
	cloaked   bool
	disguised bool
	area      *nav.Area
	bot       *Bot

	weapons  []*game.Weapon
	active   *game.Weapon
	metal    int
	aiming   bool
	switches int
	aims     []game.Vector
}

func (p *fakePlayer) Class() game.Class              { return p.class }
func (p *fakePlayer) EyePosition() game.Vector       { return p.pos.Add(game.Vec(0, 0, 64)) }
func (p *fakePlayer) EyeForward() game.Vector        { return p.forward }
func (p *fakePlayer) IsCloaked() bool                { return p.cloaked }
func (p *fakePlayer) IsDisguised() bool              { return p.disguised }
func (p *fakePlayer) ActiveWeapon() *game.Weapon     { return p.active }
func (p *fakePlayer) LastKnownArea() *nav.Area       { return p.area }
func (p *fakePlayer) AsBot() (*Bot, bool)            { return p.bot, p.bot != nil }
func (p *fakePlayer) Weapons() []*game.Weapon        { return p.weapons }
func (p *fakePlayer) Metal() int                     { return p.metal }
func (p *fakePlayer) ModelScale() float64            { return 1 }
func (p *fakePlayer) IsAiming() bool                 { return p.aiming }
func (p *fakePlayer) Disguise(game.Team, game.Class) { p.disguised = true }

func (p *fakePlayer) SwitchWeapon(w *game.Weapon) bool {
	if w == p.active {
		return false
	}
	p.active = w
	p.switches++
	return true
}

func (p *fakePlayer) AimHeadTowards(target game.Vector, _ string) {
	p.aims = append(p.aims, target)
}

// arm gives p the weapons and makes the first one active
func (p *fakePlayer) arm(ws ...*game.Weapon) {
	p.weapons = ws
	if len(ws) > 0 {
		p.active = ws[0]
	}
}

type fakeCP struct {
	fakeEntity
	index         int
	contested     bool
	lastContested time.Duration
}

func newFakeCP(index int, owner game.Team) *fakeCP {
	return &fakeCP{
		fakeEntity:    fakeEntity{handle: game.Handle(100 + index), team: owner},
		index:         index,
		lastContested: -1,
	}
}

func (c *fakeCP) Index() int                     { return c.index }
func (c *fakeCP) HasBeenContested() bool         { return c.contested }
func (c *fakeCP) LastContestedAt() time.Duration { return c.lastContested }

type fakeSentry struct {
	fakeEntity
	area        *nav.Area
	forward     game.Vector
	operational bool
}

func (s *fakeSentry) LastKnownArea() *nav.Area   { return s.area }
func (s *fakeSentry) TurretForward() game.Vector { return s.forward }
func (s *fakeSentry) IsOperational() bool        { return s.operational }

type fakeFlag struct {
	fakeEntity
	kind     game.FlagType
	disabled bool
	stolen   bool
	carrier  game.Handle
}

func (f *fakeFlag) Type() game.FlagType  { return f.kind }
func (f *fakeFlag) IsDisabled() bool     { return f.disabled }
func (f *fakeFlag) IsStolen() bool       { return f.stolen }
func (f *fakeFlag) Carrier() game.Handle { return f.carrier }

type fakeRules struct {
	gameType game.GameType
	freeRoam bool
	koth     bool
	mutators map[game.Mutator]bool
	points   []ControlPoint
	capture  map[game.Team][]ControlPoint
	defend   map[game.Team][]ControlPoint
	push     Entity
	block    Entity
	kothLeft map[game.Team]time.Duration
	round    time.Duration
}

func (r *fakeRules) GameType() game.GameType              { return r.gameType }
func (r *fakeRules) IsFreeRoam() bool                     { return r.freeRoam }
func (r *fakeRules) IsKoth() bool                         { return r.koth }
func (r *fakeRules) IsMutator(m game.Mutator) bool        { return r.mutators[m] }
func (r *fakeRules) HasMutators() bool                    { return len(r.mutators) > 0 }
func (r *fakeRules) ControlPoints() []ControlPoint        { return r.points }
func (r *fakeRules) PayloadToPush(game.Team) Entity       { return r.push }
func (r *fakeRules) PayloadToBlock(game.Team) Entity      { return r.block }
func (r *fakeRules) RoundTimeLeft() (time.Duration, bool) { return r.round, r.round > 0 }

func (r *fakeRules) CapturePoints(team game.Team) []ControlPoint {
	return r.capture[team]
}

func (r *fakeRules) DefendPoints(team game.Team) []ControlPoint {
	return r.defend[team]
}

func (r *fakeRules) KothTimeLeft(team game.Team) (time.Duration, bool) {
	d, ok := r.kothLeft[team]
	return d, ok
}

type fakeWorld struct {
	now      time.Duration
	rules    GameRules
	mesh     *nav.Mesh
	players  []Character
	sentries []Sentry
	flags    []Flag
	zones    []CaptureZone
}

func (w *fakeWorld) Now() time.Duration          { return w.now }
func (w *fakeWorld) Rules() GameRules            { return w.rules }
func (w *fakeWorld) Mesh() *nav.Mesh             { return w.mesh }
func (w *fakeWorld) Sentries() []Sentry          { return w.sentries }
func (w *fakeWorld) Flags() []Flag               { return w.flags }
func (w *fakeWorld) CaptureZones() []CaptureZone { return w.zones }

func (w *fakeWorld) Players(team game.Team) []Character {
	var out []Character
	for _, p := range w.players {
		if team == game.TeamAny || p.Team() == team {
			out = append(out, p)
		}
	}
	return out
}

func (w *fakeWorld) Entity(h game.Handle) Entity {
	for _, p := range w.players {
		if p.Handle() == h {
			return p
		}
	}
	return nil
}

// fakeLoco is a human-sized body with no untraversable areas
type fakeLoco struct {
	blocked map[*nav.Area]bool
}

func (l fakeLoco) IsAreaTraversable(a *nav.Area) bool { return !l.blocked[a] }
func (l fakeLoco) StepHeight() float64                { return 18 }
func (l fakeLoco) MaxJumpHeight() float64             { return 72 }
func (l fakeLoco) DeathDropHeight() float64           { return 200 }

// clearTracer never hits anything
type clearTracer struct{}

func (clearTracer) TraceLine(_, to game.Vector) game.Trace { return game.Trace{End: to} }

type quietSpeaker struct{ spoken int }

func (s *quietSpeaker) Speak(game.Handle, game.Concept) { s.spoken++ }

// newTestBot builds a bot for body in world with permissive collaborators.
// The bot is registered in the world as a player.
func newTestBot(world *fakeWorld, body *fakePlayer) *Bot {
	return newTestBotWith(world, body, Env{Locomotion: fakeLoco{}, Tracer: clearTracer{}, Speaker: &quietSpeaker{}})
}

func newTestBotWith(world *fakeWorld, body *fakePlayer, env Env) *Bot {
	env.World = world
	b := New(body, env, config.Default(), 1)
	body.bot = b
	world.players = append(world.players, body)
	return b
}

func newPlayer(h game.Handle, team game.Team, class game.Class, pos game.Vector) *fakePlayer {
	return &fakePlayer{
		fakeEntity: fakeEntity{handle: h, pos: pos, team: team},
		class:      class,
		forward:    game.Vec(1, 0, 0),
	}
}

// corridorMesh lays n areas 100 units apart along X with IDs 1..n
func corridorMesh(t *testing.T, n int) (*nav.Mesh, []*nav.Area) {
	t.Helper()
	mesh := nav.NewMesh()
	areas := make([]*nav.Area, n)
	for i := range areas {
		areas[i] = nav.NewArea(i+1, game.Vec(float64(i)*100, 0, 0), 50, 50)
		if err := mesh.Add(areas[i]); err != nil {
			t.Fatalf("Add(%d): %v", i+1, err)
		}
		if i > 0 {
			mesh.Connect(areas[i-1], areas[i], 0)
		}
	}
	return mesh, areas
}
