package bot

import (
	"math"
	"testing"
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

type pointFixture struct {
	world *fakeWorld
	rules *fakeRules
	body  *fakePlayer
	bot   *Bot
	areas []*nav.Area
	cps   []*fakeCP
}

// newPointFixture puts a red bot at the start of a five-area corridor with
// three points in areas 3, 4 and 5
func newPointFixture(t *testing.T, class game.Class) *pointFixture {
	t.Helper()
	mesh, areas := corridorMesh(t, 5)

	f := &pointFixture{areas: areas}
	f.rules = &fakeRules{
		gameType: game.GameTypeCP,
		capture:  map[game.Team][]ControlPoint{},
		defend:   map[game.Team][]ControlPoint{},
	}
	for i := 0; i < 3; i++ {
		cp := newFakeCP(i, game.TeamBlue)
		cp.pos = areas[i+2].Center
		mesh.SetControlPointArea(i, areas[i+2])
		f.cps = append(f.cps, cp)
		f.rules.points = append(f.rules.points, cp)
	}

	f.world = &fakeWorld{rules: f.rules, mesh: mesh}
	f.body = newPlayer(7, game.TeamRed, class, areas[0].Center)
	f.body.area = areas[0]
	f.bot = newTestBot(f.world, f.body)
	return f
}

func (f *pointFixture) candidates() []ControlPoint {
	out := make([]ControlPoint, len(f.cps))
	for i, cp := range f.cps {
		out[i] = cp
	}
	return out
}

// expectedPick mirrors the time-bucketed choice for a bot in area 1
func expectedPick(handle game.Handle, now time.Duration, n int) int {
	seed := 1 * (int(now/time.Minute) + 1) * int(handle)
	pick := int(float64(n) * math.Abs(math.Cos(float64(seed))))
	return min(pick, n-1)
}

func TestSelectPointToCaptureIsStableWithinBucket(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)
	candidates := f.candidates()

	first := f.bot.SelectPointToCapture(candidates)
	if first == nil {
		t.Fatal("no point selected")
	}
	for _, now := range []time.Duration{0, 10 * time.Second, 59 * time.Second} {
		f.world.now = now
		if got := f.bot.SelectPointToCapture(candidates); got != first {
			t.Errorf("at %v picked point %d, want %d", now, got.Index(), first.Index())
		}
	}

	for _, now := range []time.Duration{0, 2 * time.Minute, 7 * time.Minute} {
		f.world.now = now
		want := candidates[expectedPick(7, now, len(candidates))]
		if got := f.bot.SelectPointToCapture(candidates); got != want {
			t.Errorf("at %v picked point %d, want %d", now, got.Index(), want.Index())
		}
	}
}

func TestSelectPointToCapturePriorities(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *pointFixture)
		want  int // point index, -1 for nil
	}{
		{
			name:  "standing on a point",
			setup: func(f *pointFixture) { f.areas[0].SetCapturePoint(1) },
			want:  1,
		},
		{
			name: "closest point contested",
			setup: func(f *pointFixture) {
				f.world.now = 10 * time.Second
				f.cps[0].lastContested = 9 * time.Second
			},
			want: 0,
		},
		{
			name: "any point contested",
			setup: func(f *pointFixture) {
				f.world.now = 10 * time.Second
				f.cps[2].lastContested = 8 * time.Second
			},
			want: 2,
		},
		{
			name:  "fighting at the last point",
			setup: func(f *pointFixture) { f.areas[4].CombatIntensity = 0.5 },
			want:  2,
		},
		{
			name: "fighting only at the most dangerous of several",
			setup: func(f *pointFixture) {
				f.areas[3].CombatIntensity = 0.3
				f.areas[4].CombatIntensity = 0.2
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPointFixture(t, game.ClassSoldier)
			tt.setup(f)
			got := f.bot.SelectPointToCapture(f.candidates())
			if got == nil || got.Index() != tt.want {
				t.Errorf("SelectPointToCapture() = %v, want point %d", got, tt.want)
			}
		})
	}
}

func TestSelectPointToCaptureSmallSets(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)

	if got := f.bot.SelectPointToCapture(nil); got != nil {
		t.Errorf("empty candidates returned %v", got)
	}
	only := []ControlPoint{f.cps[2]}
	if got := f.bot.SelectPointToCapture(only); got != f.cps[2] {
		t.Errorf("single candidate not returned")
	}
}

func TestSelectPointToDefend(t *testing.T) {
	f := newPointFixture(t, game.ClassEngineer)
	candidates := f.candidates()

	f.bot.SetAttribute(game.AttrDisableDodge)
	for i := 0; i < 5; i++ {
		if got := f.bot.SelectPointToDefend(candidates); got != f.cps[0] {
			t.Fatalf("disable-dodge bot should defend the closest point, got %d", got.Index())
		}
	}

	f.bot.ClearAttribute(game.AttrDisableDodge)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[f.bot.SelectPointToDefend(candidates).Index()] = true
	}
	if len(seen) != len(candidates) {
		t.Errorf("random defend choice covered %d of %d points", len(seen), len(candidates))
	}

	if got := f.bot.SelectPointToDefend(nil); got != nil {
		t.Errorf("empty candidates returned %v", got)
	}
}

func TestGetMyControlPoint(t *testing.T) {
	tests := []struct {
		name    string
		class   game.Class
		rifle   bool
		capture []int
		defend  []int
		want    int
	}{
		{"attacker captures", game.ClassSoldier, false, []int{0}, []int{1}, 0},
		{"engineer defends", game.ClassEngineer, false, []int{0}, []int{1}, 1},
		{"sniper rifle defends", game.ClassMercenary, true, []int{0}, []int{2}, 2},
		{"attacker falls back to defending", game.ClassSoldier, false, nil, []int{2}, 2},
		{"engineer without defend points captures", game.ClassEngineer, false, []int{0}, nil, 0},
		{"nothing to do", game.ClassSoldier, false, nil, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPointFixture(t, tt.class)
			if tt.rifle {
				f.body.arm(game.NewWeapon(game.WeaponSniperRifle, 1, 25))
			}
			for _, i := range tt.capture {
				f.rules.capture[game.TeamRed] = append(f.rules.capture[game.TeamRed], f.cps[i])
			}
			for _, i := range tt.defend {
				f.rules.defend[game.TeamRed] = append(f.rules.defend[game.TeamRed], f.cps[i])
			}

			got := f.bot.GetMyControlPoint()
			switch {
			case tt.want < 0 && got != nil:
				t.Errorf("GetMyControlPoint() = %d, want nil", got.Index())
			case tt.want >= 0 && (got == nil || got.Index() != tt.want):
				t.Errorf("GetMyControlPoint() = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestGetMyControlPointIsCached(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)
	f.rules.capture[game.TeamRed] = []ControlPoint{f.cps[0]}

	if got := f.bot.GetMyControlPoint(); got != f.cps[0] {
		t.Fatal("expected point 0")
	}

	f.rules.capture[game.TeamRed] = []ControlPoint{f.cps[1]}
	f.world.now = 500 * time.Millisecond
	if got := f.bot.GetMyControlPoint(); got != f.cps[0] {
		t.Error("choice should be cached for at least a second")
	}

	f.world.now = 3 * time.Second
	if got := f.bot.GetMyControlPoint(); got != f.cps[1] {
		t.Error("choice should be revalidated after two seconds")
	}

	f.rules.capture[game.TeamRed] = []ControlPoint{f.cps[2]}
	f.bot.ClearMyControlPoint()
	if got := f.bot.GetMyControlPoint(); got != f.cps[2] {
		t.Error("ClearMyControlPoint should force a new choice")
	}
}

func TestIsPointBeingContested(t *testing.T) {
	tests := []struct {
		name string
		last time.Duration
		want bool
	}{
		{"never contested", -1, false},
		{"just contested", 10 * time.Second, true},
		{"inside window", 6 * time.Second, true},
		{"window expired", 5 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPointFixture(t, game.ClassSoldier)
			f.world.now = 10 * time.Second
			f.cps[0].lastContested = tt.last
			if got := f.bot.IsPointBeingContested(f.cps[0]); got != tt.want {
				t.Errorf("IsPointBeingContested() = %v, want %v", got, tt.want)
			}
			if got := f.bot.IsAnyPointBeingCaptured(); got != tt.want {
				t.Errorf("IsAnyPointBeingCaptured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointHelpers(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)

	if !f.bot.AreAllPointsUncontestedSoFar() {
		t.Error("fresh round should be uncontested")
	}
	f.cps[1].contested = true
	if f.bot.AreAllPointsUncontestedSoFar() {
		t.Error("a contested point should be noticed")
	}

	f.areas[0].SetIncursionDistance(game.TeamRed, 100)
	f.areas[2].SetIncursionDistance(game.TeamRed, 600)
	f.areas[4].SetIncursionDistance(game.TeamRed, 1200)
	if !f.bot.IsNearPoint(f.cps[0]) {
		t.Error("point 500 units ahead should be near")
	}
	if f.bot.IsNearPoint(f.cps[2]) {
		t.Error("point 1100 units ahead should not be near")
	}

	if f.bot.IsCapturingPoint() {
		t.Error("bot is not on a point")
	}
	f.areas[0].SetCapturePoint(0)
	if !f.bot.IsCapturingPoint() {
		t.Error("bot stands on point 0")
	}
}

func TestGetTimeLeftToCapture(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)

	f.rules.round = 3 * time.Minute
	if got := f.bot.GetTimeLeftToCapture(); got != 3*time.Minute {
		t.Errorf("round timer: got %v", got)
	}

	f.rules.koth = true
	f.rules.kothLeft = map[game.Team]time.Duration{game.TeamRed: 90 * time.Second, game.TeamBlue: 10 * time.Second}
	if got := f.bot.GetTimeLeftToCapture(); got != 90*time.Second {
		t.Errorf("koth timer: got %v", got)
	}

	f.world.rules = nil
	if got := f.bot.GetTimeLeftToCapture(); got != 0 {
		t.Errorf("without rules: got %v", got)
	}
}

func TestGetFlagToFetch(t *testing.T) {
	flag := func(h game.Handle, team game.Team, x float64) *fakeFlag {
		return &fakeFlag{fakeEntity: fakeEntity{handle: h, team: team, pos: game.Vec(x, 0, 0)}, kind: game.FlagTypeCTF}
	}

	t.Run("carried flag wins", func(t *testing.T) {
		world := &fakeWorld{}
		b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassScout, game.Vec(0, 0, 0)))
		near := flag(30, game.TeamBlue, 100)
		carried := flag(31, game.TeamRed, 900)
		carried.carrier = 1
		world.flags = []Flag{near, carried}
		if got := b.GetFlagToFetch(); got != carried {
			t.Errorf("got %v, want carried flag", got)
		}
	})

	t.Run("nearest enemy flag not stolen", func(t *testing.T) {
		world := &fakeWorld{}
		b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassScout, game.Vec(0, 0, 0)))
		stolen := flag(30, game.TeamBlue, 100)
		stolen.stolen = true
		far := flag(31, game.TeamBlue, 800)
		mid := flag(32, game.TeamBlue, 400)
		own := flag(33, game.TeamRed, 50)
		disabled := flag(34, game.TeamBlue, 10)
		disabled.disabled = true
		world.flags = []Flag{stolen, far, mid, own, disabled}
		if got := b.GetFlagToFetch(); got != mid {
			t.Errorf("got %v, want flag 32", got)
		}
	})

	t.Run("every enemy flag stolen", func(t *testing.T) {
		world := &fakeWorld{}
		b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassScout, game.Vec(0, 0, 0)))
		a := flag(30, game.TeamBlue, 100)
		a.stolen = true
		world.flags = []Flag{a}
		if got := b.GetFlagToFetch(); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestGetFlagCaptureZone(t *testing.T) {
	world := &fakeWorld{rules: &fakeRules{gameType: game.GameTypeCP}}
	b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassScout, game.Vec(0, 0, 0)))
	red := &fakeEntity{handle: 40, team: game.TeamRed}
	blue := &fakeEntity{handle: 41, team: game.TeamBlue}
	world.zones = []CaptureZone{red, blue}

	if got := b.GetFlagCaptureZone(); got != nil {
		t.Error("capture zones only apply to CTF")
	}

	world.rules = &fakeRules{gameType: game.GameTypeCTF}
	if got := b.GetFlagCaptureZone(); got != red {
		t.Errorf("got %v, want red zone", got)
	}
}

type recordingIntention struct {
	events []string
}

func (r *recordingIntention) OnTerritoryContested(int) { r.events = append(r.events, "contested") }
func (r *recordingIntention) OnTerritoryCaptured(int)  { r.events = append(r.events, "captured") }
func (r *recordingIntention) OnTerritoryLost(int)      { r.events = append(r.events, "lost") }
func (r *recordingIntention) OnPickUp()                { r.events = append(r.events, "pickup") }
func (r *recordingIntention) OnWin()                   { r.events = append(r.events, "win") }
func (r *recordingIntention) OnLose()                  { r.events = append(r.events, "lose") }

func TestOnGameEvent(t *testing.T) {
	f := newPointFixture(t, game.ClassSoldier)
	rec := &recordingIntention{}
	f.bot.SetIntention(rec)

	f.rules.capture[game.TeamRed] = []ControlPoint{f.cps[0]}
	f.bot.GetMyControlPoint()

	events := []game.Event{
		{Kind: game.EventPointStartCapture, ControlPoint: 0},
		{Kind: game.EventPointCaptured, ControlPoint: 0, Team: game.TeamRed},
		{Kind: game.EventPointCaptured, ControlPoint: 1, Team: game.TeamBlue},
		{Kind: game.EventFlagEvent, FlagEvent: game.FlagEventPickUp, Player: 99},
		{Kind: game.EventFlagEvent, FlagEvent: game.FlagEventPickUp, Player: 7},
		{Kind: game.EventRoundWin, Team: game.TeamRed, FullRound: false},
		{Kind: game.EventRoundWin, Team: game.TeamRed, FullRound: true},
		{Kind: game.EventRoundWin, Team: game.TeamBlue, FullRound: true},
	}
	for _, ev := range events {
		f.bot.OnGameEvent(ev)
	}

	want := []string{"contested", "captured", "lost", "pickup", "win", "lose"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, rec.events[i], want[i])
		}
	}

	if !f.bot.HasPointRecentlyChanged() {
		t.Error("losing a point should start the recently-changed window")
	}
	f.world.now = 21 * time.Second
	if f.bot.HasPointRecentlyChanged() {
		t.Error("recently-changed window should expire")
	}
}
