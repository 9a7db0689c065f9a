package server

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// Entity handle ranges. Player handles are their slot number plus one.
const (
	pointHandleBase  game.Handle = 100
	sentryHandleBase game.Handle = 200
	flagHandleBase   game.Handle = 300
	zoneHandleBase   game.Handle = 400
	cartHandle       game.Handle = 500
)

// wall is an axis-aligned box that blocks traces
type wall struct {
	min, max game.Vector
}

// Arena is the demo world the bots play in. It implements the registry,
// ruleset and tracer the bots query. It is not safe for concurrent use;
// the server serializes access.
type Arena struct {
	now      time.Duration
	gameType game.GameType
	mutators map[game.Mutator]bool
	rng      *rand.Rand

	mesh   *nav.Mesh
	walls  []wall
	grid   *SpatialGrid
	spawns map[game.Team][]*nav.Area

	players  [game.MaxPlayers]*Player
	points   []*ControlPoint
	sentries []*Sentry
	flags    []*Flag
	zones    []*CaptureZone
	cart     *Cart

	captures  [game.TeamCount]int
	roundEnd  time.Duration
	restartAt time.Duration
	winner    game.Team
	events    []game.Event
}

// NewArena builds the demo map for the given ruleset
func NewArena(gameType game.GameType, mutators []game.Mutator, seed int64) (*Arena, error) {
	a := &Arena{
		gameType: gameType,
		mutators: make(map[game.Mutator]bool),
		rng:      rand.New(rand.NewSource(seed)),
		spawns:   make(map[game.Team][]*nav.Area),
		roundEnd: RoundDuration,
		winner:   game.TeamUnassigned,
	}
	for _, m := range mutators {
		if m != game.MutatorNone {
			a.mutators[m] = true
		}
	}
	if err := a.buildMesh(); err != nil {
		return nil, fmt.Errorf("build arena mesh: %w", err)
	}
	a.placeObjectives()

	half := ArenaAreaSize / 2
	a.grid = NewSpatialGrid(
		game.Vec(-half, -half-ArenaAreaSize, 0),
		game.Vec(ArenaColumns*ArenaAreaSize, half+ArenaAreaSize, 0),
	)
	return a, nil
}

func areaID(col, row int) int {
	return row*ArenaColumns + col + 1
}

// areaAt returns the area in the given column and lane, or nil off the grid
func (a *Arena) areaAt(col, row int) *nav.Area {
	if col < 0 || col >= ArenaColumns || row < 0 || row >= ArenaRows {
		return nil
	}
	return a.mesh.Area(areaID(col, row))
}

func (a *Arena) buildMesh() error {
	a.mesh = nav.NewMesh()
	half := ArenaAreaSize / 2

	for row := 0; row < ArenaRows; row++ {
		for col := 0; col < ArenaColumns; col++ {
			z := 0.0
			if row == ArenaRows-1 {
				z = HighLaneZ
			}
			center := game.Vec(float64(col)*ArenaAreaSize, float64(row-1)*ArenaAreaSize, z)
			area := nav.NewArea(areaID(col, row), center, half, half)
			if err := a.mesh.Add(area); err != nil {
				return err
			}
		}
	}

	for row := 0; row < ArenaRows; row++ {
		for col := 0; col < ArenaColumns; col++ {
			here := a.areaAt(col, row)
			if east := a.areaAt(col+1, row); east != nil {
				a.mesh.Connect(here, east, 0)
			}
			if north := a.areaAt(col, row+1); north != nil {
				a.mesh.Connect(here, north, 0)
			}
		}
	}

	// Pit in the south lane
	a.areaAt(ArenaColumns/2, 0).FuncCost = HazardCost

	for row := 0; row < ArenaRows; row++ {
		red, blue := a.areaAt(0, row), a.areaAt(ArenaColumns-1, row)
		if a.gameType != game.GameTypeDM {
			red.RespawnRoom = true
			blue.RespawnRoom = true
			red.SetBlocked(game.TeamBlue, true)
			blue.SetBlocked(game.TeamRed, true)
		}
		a.spawns[game.TeamRed] = append(a.spawns[game.TeamRed], red)
		a.spawns[game.TeamBlue] = append(a.spawns[game.TeamBlue], blue)
	}
	for _, area := range a.mesh.Areas() {
		if !area.RespawnRoom {
			a.spawns[game.TeamMercenary] = append(a.spawns[game.TeamMercenary], area)
		}
	}

	a.mesh.ComputeIncursionDistances(game.TeamRed, a.spawns[game.TeamRed]...)
	a.mesh.ComputeIncursionDistances(game.TeamBlue, a.spawns[game.TeamBlue]...)

	a.buildWalls()
	a.linkVisibility()
	a.linkInvasionAreas()
	return nil
}

// buildWalls puts cover between the lanes at the quarter marks and a pillar
// against the north edge of the middle of the north lane
func (a *Arena) buildWalls() {
	laneEdge := -ArenaAreaSize / 2
	for _, col := range []int{3, ArenaColumns - 4} {
		x := float64(col) * ArenaAreaSize
		a.walls = append(a.walls, wall{
			min: game.Vec(x-120, laneEdge-20, -10),
			max: game.Vec(x+120, laneEdge+20, WallHeight),
		})
	}
	pillar := a.areaAt(ArenaColumns/2, ArenaRows-1).Center
	a.walls = append(a.walls, wall{
		min: game.Vec(pillar.X-40, pillar.Y+80, pillar.Z-10),
		max: game.Vec(pillar.X+40, pillar.Y+160, pillar.Z+WallHeight),
	})
}

// linkVisibility marks every pair of areas whose centers see each other
func (a *Arena) linkVisibility() {
	eye := game.Vec(0, 0, game.HumanHeight)
	areas := a.mesh.Areas()
	for _, from := range areas {
		for _, to := range areas {
			if from == to || from.Center.DistTo(to.Center) > VisionRange {
				continue
			}
			if !a.TraceLine(from.Center.Add(eye), to.Center.Add(eye)).Hit {
				from.AddPotentiallyVisible(to)
			}
		}
	}
}

// linkInvasionAreas records, per team, the neighbors that team's enemies
// arrive from
func (a *Arena) linkInvasionAreas() {
	for _, area := range a.mesh.Areas() {
		for _, team := range []game.Team{game.TeamRed, game.TeamBlue} {
			enemy := game.EnemyTeam(team)
			here := area.IncursionDistance(enemy)
			var from []*nav.Area
			for _, c := range area.Connections() {
				if d := c.To.IncursionDistance(enemy); d >= 0 && d < here {
					from = append(from, c.To)
				}
			}
			area.SetInvasionAreas(team, from)
		}
	}
}

func (a *Arena) placeObjectives() {
	mid := 1
	switch a.gameType {
	case game.GameTypeCP:
		owners := []game.Team{game.TeamRed, game.TeamUnassigned, game.TeamBlue}
		cols := []int{2, ArenaColumns / 2, ArenaColumns - 3}
		for i, col := range cols {
			area := a.areaAt(col, mid)
			area.SetCapturePoint(i)
			a.mesh.SetControlPointArea(i, area)
			cp := &ControlPoint{
				handle:     pointHandleBase + game.Handle(i),
				index:      i,
				pos:        area.Center,
				area:       area,
				startOwner: owners[i],
			}
			cp.reset()
			a.points = append(a.points, cp)
		}

	case game.GameTypeCTF:
		for i, team := range []game.Team{game.TeamRed, game.TeamBlue} {
			col := 0
			if team == game.TeamBlue {
				col = ArenaColumns - 1
			}
			home := a.areaAt(col, mid).Center
			a.flags = append(a.flags, &Flag{
				handle: flagHandleBase + game.Handle(i),
				team:   team,
				home:   home,
				pos:    home,
			})
			a.zones = append(a.zones, &CaptureZone{
				handle: zoneHandleBase + game.Handle(i),
				team:   team,
				pos:    home,
			})
		}

	case game.GameTypePayload:
		start := a.areaAt(1, mid).Center
		a.cart = &Cart{
			handle: cartHandle,
			start:  start,
			pos:    start,
			goalX:  a.areaAt(ArenaColumns-2, mid).Center.X,
		}
	}

	if a.gameType == game.GameTypeDM {
		return
	}
	for i, team := range []game.Team{game.TeamRed, game.TeamBlue} {
		col, facing := 1, 1.0
		if team == game.TeamBlue {
			col, facing = ArenaColumns-2, -1
		}
		area := a.areaAt(col, mid)
		a.sentries = append(a.sentries, &Sentry{
			handle:  sentryHandleBase + game.Handle(i),
			team:    team,
			pos:     area.Center,
			area:    area,
			forward: game.Vec(facing, 0, 0),
		})
	}
}

// spawnPoint picks a random spot in one of team's spawn areas
func (a *Arena) spawnPoint(team game.Team) (game.Vector, *nav.Area) {
	areas := a.spawns[team]
	if len(areas) == 0 {
		areas = a.mesh.Areas()
	}
	area := areas[a.rng.Intn(len(areas))]
	return area.RandomPoint(a.rng), area
}

func (a *Arena) emit(ev game.Event) {
	a.events = append(a.events, ev)
}

// drainEvents returns and clears the events raised since the last call
func (a *Arena) drainEvents() []game.Event {
	evs := a.events
	a.events = nil
	return evs
}

// activePlayers returns every occupied slot
func (a *Arena) activePlayers() []*Player {
	var out []*Player
	for _, p := range a.players {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (a *Arena) player(h game.Handle) *Player {
	i := int(h) - 1
	if i < 0 || i >= len(a.players) {
		return nil
	}
	return a.players[i]
}

// World

func (a *Arena) Now() time.Duration   { return a.now }
func (a *Arena) Rules() bot.GameRules { return a }
func (a *Arena) Mesh() *nav.Mesh      { return a.mesh }

func (a *Arena) Players(team game.Team) []bot.Character {
	var out []bot.Character
	for _, p := range a.players {
		if p != nil && (team == game.TeamAny || p.team == team) {
			out = append(out, p)
		}
	}
	return out
}

func (a *Arena) Entity(h game.Handle) bot.Entity {
	if p := a.player(h); p != nil {
		return p
	}
	for _, cp := range a.points {
		if cp.handle == h {
			return cp
		}
	}
	for _, s := range a.sentries {
		if s.handle == h {
			return s
		}
	}
	for _, f := range a.flags {
		if f.handle == h {
			return f
		}
	}
	for _, z := range a.zones {
		if z.handle == h {
			return z
		}
	}
	if a.cart != nil && a.cart.handle == h {
		return a.cart
	}
	return nil
}

func (a *Arena) Sentries() []bot.Sentry {
	out := make([]bot.Sentry, len(a.sentries))
	for i, s := range a.sentries {
		out[i] = s
	}
	return out
}

func (a *Arena) Flags() []bot.Flag {
	out := make([]bot.Flag, len(a.flags))
	for i, f := range a.flags {
		out[i] = f
	}
	return out
}

func (a *Arena) CaptureZones() []bot.CaptureZone {
	out := make([]bot.CaptureZone, len(a.zones))
	for i, z := range a.zones {
		out[i] = z
	}
	return out
}

// GameRules

func (a *Arena) GameType() game.GameType       { return a.gameType }
func (a *Arena) IsFreeRoam() bool              { return a.gameType == game.GameTypeDM }
func (a *Arena) IsKoth() bool                  { return false }
func (a *Arena) IsMutator(m game.Mutator) bool { return a.mutators[m] }
func (a *Arena) HasMutators() bool             { return len(a.mutators) > 0 }

// KothTimeLeft is always unknown; the arena has no king of the hill mode
func (a *Arena) KothTimeLeft(game.Team) (time.Duration, bool) {
	return 0, false
}

func (a *Arena) ControlPoints() []bot.ControlPoint {
	out := make([]bot.ControlPoint, len(a.points))
	for i, cp := range a.points {
		out[i] = cp
	}
	return out
}

// CapturePoints lists the points team does not own
func (a *Arena) CapturePoints(team game.Team) []bot.ControlPoint {
	var out []bot.ControlPoint
	for _, cp := range a.points {
		if cp.owner != team {
			out = append(out, cp)
		}
	}
	return out
}

// DefendPoints lists the points team owns
func (a *Arena) DefendPoints(team game.Team) []bot.ControlPoint {
	var out []bot.ControlPoint
	for _, cp := range a.points {
		if cp.owner == team {
			out = append(out, cp)
		}
	}
	return out
}

func (a *Arena) PayloadToPush(team game.Team) bot.Entity {
	if a.cart == nil || team != game.TeamRed {
		return nil
	}
	return a.cart
}

func (a *Arena) PayloadToBlock(team game.Team) bot.Entity {
	if a.cart == nil || team != game.TeamBlue {
		return nil
	}
	return a.cart
}

func (a *Arena) RoundTimeLeft() (time.Duration, bool) {
	if a.winner != game.TeamUnassigned {
		return 0, false
	}
	return max(a.roundEnd-a.now, 0), true
}

// TraceLine stops at the first wall between from and to
func (a *Arena) TraceLine(from, to game.Vector) game.Trace {
	best := math.Inf(1)
	for _, w := range a.walls {
		if t, ok := segmentHitsBox(from, to, w.min, w.max); ok && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return game.Trace{End: to}
	}
	return game.Trace{Hit: true, End: from.Add(to.Sub(from).Scale(best))}
}

// segmentHitsBox returns the fraction along from->to where the segment
// enters the box, using the slab method
func segmentHitsBox(from, to, lo, hi game.Vector) (float64, bool) {
	d := to.Sub(from)
	tMin, tMax := 0.0, 1.0

	axes := [3][4]float64{
		{from.X, d.X, lo.X, hi.X},
		{from.Y, d.Y, lo.Y, hi.Y},
		{from.Z, d.Z, lo.Z, hi.Z},
	}
	for _, ax := range axes {
		o, dir, l, h := ax[0], ax[1], ax[2], ax[3]
		if dir == 0 {
			if o < l || o > h {
				return 0, false
			}
			continue
		}
		t1, t2 := (l-o)/dir, (h-o)/dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// arenaLoco is the movement model every arena body shares, per team
type arenaLoco struct {
	team game.Team
}

func (l arenaLoco) IsAreaTraversable(area *nav.Area) bool {
	return area != nil && !area.IsBlocked(l.team)
}

func (arenaLoco) StepHeight() float64      { return 18 }
func (arenaLoco) MaxJumpHeight() float64   { return 72 }
func (arenaLoco) DeathDropHeight() float64 { return 250 }
