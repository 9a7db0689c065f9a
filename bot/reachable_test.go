package bot

import (
	"testing"

	"github.com/lab1702/ofbot/game"
)

func TestSelectReachableObjects(t *testing.T) {
	mesh, areas := corridorMesh(t, 6)
	world := &fakeWorld{mesh: mesh}
	body := newPlayer(1, game.TeamRed, game.ClassSoldier, areas[0].Center)
	body.area = areas[0]
	b := newTestBot(world, body)

	near := &fakeEntity{handle: 10, pos: areas[1].Center}
	mid := &fakeEntity{handle: 11, pos: areas[3].Center}
	far := &fakeEntity{handle: 12, pos: areas[5].Center}
	used := &fakeEntity{handle: 13, pos: areas[2].Center, dead: true}

	alive := func(e Entity) bool { return e.IsAlive() }
	got := b.SelectReachableObjects([]Entity{far, used, mid, near}, alive, areas[0], 350)

	if len(got) != 2 || got[0] != near || got[1] != mid {
		t.Errorf("got %d objects, want the near and mid ones in travel order", len(got))
	}

	// Blocked areas cannot be walked through
	areas[2].SetBlocked(game.TeamRed, true)
	if got := b.SelectReachableObjects([]Entity{mid}, nil, areas[0], -1); len(got) != 0 {
		t.Error("object behind a blocked area should not be reachable")
	}

	if got := b.SelectReachableObjects([]Entity{near}, nil, nil, -1); got != nil {
		t.Error("no start area should select nothing")
	}
}

func TestSelectRandomReachableEnemy(t *testing.T) {
	mesh, areas := corridorMesh(t, 3)
	areas[2].RespawnRoom = true
	world := &fakeWorld{mesh: mesh}
	b := newTestBot(world, newPlayer(1, game.TeamRed, game.ClassScout, areas[0].Center))

	if b.SelectRandomReachableEnemy() != nil {
		t.Fatal("no enemies yet")
	}

	valid := newPlayer(2, game.TeamBlue, game.ClassHeavy, areas[1].Center)
	dead := newPlayer(3, game.TeamBlue, game.ClassHeavy, areas[1].Center)
	dead.dead = true
	spawned := newPlayer(4, game.TeamBlue, game.ClassHeavy, areas[2].Center)
	cloaked := newPlayer(5, game.TeamBlue, game.ClassSpy, areas[1].Center)
	cloaked.cloaked = true
	world.players = append(world.players, valid, dead, spawned, cloaked)

	for i := 0; i < 20; i++ {
		if got := b.SelectRandomReachableEnemy(); got != valid {
			t.Fatalf("picked %v, want the only valid enemy", got)
		}
	}
}
