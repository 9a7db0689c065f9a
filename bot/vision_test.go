package bot

import (
	"testing"
	"time"

	"github.com/lab1702/ofbot/bot/mocks"
	"github.com/lab1702/ofbot/game"
	"go.uber.org/mock/gomock"
)

func TestGetPrimaryKnownThreat(t *testing.T) {
	world := &fakeWorld{}
	b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassSoldier, game.Vec(0, 0, 0)))

	if b.Vision().GetPrimaryKnownThreat(false) != nil {
		t.Fatal("empty memory should have no threat")
	}

	far := newPlayer(10, game.TeamBlue, game.ClassHeavy, game.Vec(900, 0, 0))
	near := newPlayer(11, game.TeamBlue, game.ClassScout, game.Vec(200, 0, 0))
	friend := newPlayer(12, game.TeamRed, game.ClassMedic, game.Vec(10, 0, 0))
	spy := newSpy(13, game.Vec(50, 0, 0))
	remembered := newPlayer(14, game.TeamBlue, game.ClassPyro, game.Vec(100, 0, 0))

	b.Vision().AddKnownEntity(remembered)
	b.Vision().Update([]Entity{far, near, friend, spy, b.Body()})

	if got := len(b.Vision().CollectKnownEntities()); got != 5 {
		t.Errorf("known entities = %d, want 5 (self excluded)", got)
	}

	threat := b.Vision().GetPrimaryKnownThreat(false)
	if threat == nil || threat.Handle() != near.Handle() {
		t.Fatalf("primary threat = %v, want the nearest visible enemy", threat)
	}

	// Disguised spies only count once known
	b.RealizeSpy(spy)
	if got := b.Vision().GetPrimaryKnownThreat(false); got.Handle() != spy.Handle() {
		t.Errorf("known spy should become the primary threat, got %d", got.Handle())
	}

	// Nobody visible: the remembered pyro is the closest threat
	world.now = time.Second
	b.ForgetSpy(spy)
	b.Vision().Update(nil)
	if got := b.Vision().GetPrimaryKnownThreat(true); got != nil {
		t.Errorf("onlyVisible should ignore remembered threats, got %d", got.Handle())
	}
	if got := b.Vision().GetPrimaryKnownThreat(false); got == nil || got.Handle() != remembered.Handle() {
		t.Errorf("primary remembered threat = %v, want the pyro", got)
	}
}

func TestKnownEntitiesExpire(t *testing.T) {
	world := &fakeWorld{}
	b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassSoldier, game.Vec(0, 0, 0)))
	enemy := newPlayer(10, game.TeamBlue, game.ClassHeavy, game.Vec(500, 0, 0))

	b.Vision().Update([]Entity{enemy})
	k := b.Vision().GetKnown(enemy.Handle())
	if k == nil || !k.WasEverVisible() || !k.IsVisibleNow() {
		t.Fatal("enemy should be seen")
	}

	world.now = 4 * time.Second
	b.Vision().Update(nil)
	if k.IsVisibleNow() {
		t.Error("enemy is no longer in view")
	}
	if got := k.TimeSinceLastSeen(world.now); got != 4*time.Second {
		t.Errorf("TimeSinceLastSeen() = %v, want 4s", got)
	}

	world.now = 11 * time.Second
	b.Vision().Update(nil)
	if b.Vision().GetKnown(enemy.Handle()) != nil {
		t.Error("enemy should be forgotten after 10s")
	}

	b.Vision().Update([]Entity{enemy})
	enemy.dead = true
	b.Vision().Update(nil)
	if b.Vision().GetKnown(enemy.Handle()) != nil {
		t.Error("dead enemies should be dropped")
	}

	reported := newPlayer(11, game.TeamBlue, game.ClassSpy, game.Vec(100, 0, 0))
	b.Vision().AddKnownEntity(reported)
	if got := b.Vision().GetKnown(reported.Handle()).TimeSinceLastSeen(world.now); got != time.Duration(1<<63-1) {
		t.Errorf("never-seen entity TimeSinceLastSeen() = %v", got)
	}
}

func TestLineOfSight(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)

	world := &fakeWorld{}
	body := newPlayer(1, game.TeamRed, game.ClassSoldier, game.Vec(0, 0, 0))
	b := newTestBotWith(world, body, Env{Locomotion: fakeLoco{}, Tracer: tracer, Speaker: &quietSpeaker{}})

	target := newPlayer(10, game.TeamBlue, game.ClassHeavy, game.Vec(500, 0, 0))
	eye := body.EyePosition()

	gomock.InOrder(
		tracer.EXPECT().TraceLine(eye, game.Vec(100, 0, 0)).Return(game.Trace{}),
		tracer.EXPECT().TraceLine(eye, game.Vec(200, 0, 0)).Return(game.Trace{Hit: true}),
		tracer.EXPECT().TraceLine(eye, target.Position()).Return(game.Trace{Hit: true, Entity: target.Handle()}),
		tracer.EXPECT().TraceLine(eye, target.Position()).Return(game.Trace{Hit: true, Entity: 99}),
	)

	if !b.Vision().IsLineOfSightClear(game.Vec(100, 0, 0)) {
		t.Error("unobstructed trace should be clear")
	}
	if b.Vision().IsLineOfSightClear(game.Vec(200, 0, 0)) {
		t.Error("obstructed trace should not be clear")
	}
	if !b.Vision().IsLineOfSightClearToEntity(target) {
		t.Error("hitting the target itself counts as clear")
	}
	if b.Vision().IsLineOfSightClearToEntity(target) {
		t.Error("hitting something else is blocked")
	}
}
