package nav

import (
	"testing"

	"github.com/lab1702/ofbot/game"
)

func TestEdgeDistancePriority(t *testing.T) {
	a := NewArea(1, game.Vec(0, 0, 0), 10, 10)
	b := NewArea(2, game.Vec(300, 400, 0), 10, 10)

	tests := []struct {
		name string
		edge Edge
		want float64
	}{
		{"ladder wins", Edge{Area: b, From: a, Ladder: &Ladder{Length: 128}, Length: 50}, 128},
		{"explicit length", Edge{Area: b, From: a, Length: 50}, 50},
		{"center distance", Edge{Area: b, From: a}, 500},
		{"first area", Edge{Area: b}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Distance(); got != tt.want {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPathPrefersCheaperRoute(t *testing.T) {
	m := NewMesh()
	start := NewArea(1, game.Vec(0, 0, 0), 10, 10)
	short := NewArea(2, game.Vec(100, 0, 0), 10, 10)
	long := NewArea(3, game.Vec(0, 500, 0), 10, 10)
	goal := NewArea(4, game.Vec(200, 0, 0), 10, 10)
	for _, a := range []*Area{start, short, long, goal} {
		m.Add(a)
	}
	m.Connect(start, short, 0)
	m.Connect(short, goal, 0)
	m.Connect(start, long, 0)
	m.Connect(long, goal, 0)

	path, cost, ok := FindPath(start, goal, DistanceCost)
	if !ok {
		t.Fatal("expected a path")
	}
	if len(path) != 3 || path[1] != short {
		t.Errorf("path went through %v, want the short middle area", ids(path))
	}
	if cost != 200 {
		t.Errorf("cost = %v, want 200", cost)
	}

	// Blocking the short way forces the detour
	avoid := CostFunction(func(e Edge) float64 {
		if e.Area == short {
			return Impassable
		}
		return DistanceCost.Cost(e)
	})
	path, _, ok = FindPath(start, goal, avoid)
	if !ok || path[1] != long {
		t.Errorf("path with short area blocked = %v", ids(path))
	}
}

func TestTravelDistance(t *testing.T) {
	_, areas := corridor(t, 5)
	if got := TravelDistance(areas[0], areas[4]); got != 400 {
		t.Errorf("TravelDistance = %v, want 400", got)
	}
	if got := TravelDistance(areas[2], areas[2]); got != 0 {
		t.Errorf("TravelDistance to self = %v, want 0", got)
	}
	island := NewArea(99, game.Vec(5000, 0, 0), 10, 10)
	if got := TravelDistance(areas[0], island); got != -1 {
		t.Errorf("TravelDistance to island = %v, want -1", got)
	}
}

func TestPathCostAlong(t *testing.T) {
	_, areas := corridor(t, 4)

	if got := PathCostAlong(areas, DistanceCost); got != 300 {
		t.Errorf("PathCostAlong = %v, want 300", got)
	}

	skip := []*Area{areas[0], areas[2]}
	if got := PathCostAlong(skip, DistanceCost); got != Impassable {
		t.Errorf("PathCostAlong over unconnected areas = %v, want %v", got, Impassable)
	}

	wall := CostFunction(func(e Edge) float64 {
		if e.Area == areas[2] {
			return Impassable
		}
		return DistanceCost.Cost(e)
	})
	if got := PathCostAlong(areas, wall); got != Impassable {
		t.Errorf("PathCostAlong through impassable edge = %v, want %v", got, Impassable)
	}
}

func TestSearchSurroundingAreasRespectsRange(t *testing.T) {
	_, areas := corridor(t, 6)

	var seen []int
	SearchSurroundingAreas(areas[0], 250, game.TeamAny, func(a *Area, travel float64) bool {
		seen = append(seen, a.ID)
		return true
	})
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("visited %v, want [1 2 3]", seen)
	}

	count := 0
	SearchSurroundingAreas(areas[0], -1, game.TeamAny, func(a *Area, travel float64) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("search kept going after visit returned false, count = %d", count)
	}
}

func ids(areas []*Area) []int {
	out := make([]int, len(areas))
	for i, a := range areas {
		out[i] = a.ID
	}
	return out
}

func TestSearchSurroundingAreasSkipsBlocked(t *testing.T) {
	_, areas := corridor(t, 4)
	areas[2].SetBlocked(game.TeamRed, true)

	count := 0
	SearchSurroundingAreas(areas[0], -1, game.TeamRed, func(a *Area, travel float64) bool {
		count++
		return true
	})
	if count != 2 {
		t.Errorf("red search visited %d areas, want 2", count)
	}

	count = 0
	SearchSurroundingAreas(areas[0], -1, game.TeamBlue, func(a *Area, travel float64) bool {
		count++
		return true
	})
	if count != 4 {
		t.Errorf("blue search visited %d areas, want 4", count)
	}
}
