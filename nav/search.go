package nav

import (
	"container/heap"

	"github.com/lab1702/ofbot/game"
)

// Impassable is the cost a CostFunc returns for an edge that cannot be used
const Impassable = -1.0

// Edge is one candidate step of a search, from From into Area.
// From is nil for the first area of a path.
type Edge struct {
	Area          *Area
	From          *Area
	Ladder        *Ladder
	Elevator      *Elevator
	Length        float64
	FromCostSoFar float64
}

// Distance returns the edge length: the ladder length, then the explicit
// connection length, then the center-to-center distance
func (e Edge) Distance() float64 {
	switch {
	case e.Ladder != nil:
		return e.Ladder.Length
	case e.Length > 0:
		return e.Length
	case e.From != nil:
		return e.Area.Center.DistTo(e.From.Center)
	}
	return 0
}

// CostFunc scores entering e.Area. It returns the accumulated cost including
// e.FromCostSoFar, or a negative value when the edge is impassable.
// Implementations must not mutate areas; searches may run concurrently.
type CostFunc interface {
	Cost(e Edge) float64
}

// CostFunction adapts a plain function to CostFunc
type CostFunction func(Edge) float64

func (f CostFunction) Cost(e Edge) float64 {
	return f(e)
}

// DistanceCost scores edges by travel distance only
var DistanceCost CostFunc = CostFunction(func(e Edge) float64 {
	if e.From == nil {
		return 0
	}
	return e.FromCostSoFar + e.Distance()
})

type queued struct {
	area  *Area
	cost  float64
	index int
}

type areaQueue []*queued

func (q areaQueue) Len() int           { return len(q) }
func (q areaQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q areaQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *areaQueue) Push(x any) {
	n := x.(*queued)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *areaQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// expand runs a shortest-path search from start, calling visit for each
// area as it is settled. The search stops when visit returns false.
func expand(start *Area, cost CostFunc, visit func(a *Area, costSoFar float64, parent map[*Area]*Area) bool) {
	best := map[*Area]float64{start: 0}
	parent := make(map[*Area]*Area)
	settled := make(map[*Area]bool)
	pq := &areaQueue{}
	heap.Push(pq, &queued{area: start})

	for pq.Len() > 0 {
		n := heap.Pop(pq).(*queued)
		if settled[n.area] {
			continue
		}
		settled[n.area] = true
		if !visit(n.area, n.cost, parent) {
			return
		}

		for _, c := range n.area.connections {
			if settled[c.To] {
				continue
			}
			next := cost.Cost(Edge{
				Area:          c.To,
				From:          n.area,
				Ladder:        c.Ladder,
				Length:        c.Length,
				FromCostSoFar: n.cost,
			})
			if next < 0 {
				continue
			}
			if old, seen := best[c.To]; seen && next >= old {
				continue
			}
			best[c.To] = next
			parent[c.To] = n.area
			heap.Push(pq, &queued{area: c.To, cost: next})
		}
	}
}

// FindPath returns the cheapest route from start to goal under cost,
// including both ends, and its total cost. ok is false when goal is unreachable.
func FindPath(start, goal *Area, cost CostFunc) (path []*Area, total float64, ok bool) {
	if start == nil || goal == nil {
		return nil, Impassable, false
	}
	total = Impassable
	expand(start, cost, func(a *Area, costSoFar float64, parent map[*Area]*Area) bool {
		if a != goal {
			return true
		}
		for at := goal; at != nil; at = parent[at] {
			path = append(path, at)
		}
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		total = costSoFar
		ok = true
		return false
	})
	return path, total, ok
}

// TravelDistance returns the shortest walking distance between two areas,
// or -1 when there is no route
func TravelDistance(from, to *Area) float64 {
	if from == nil || to == nil {
		return -1
	}
	if from == to {
		return 0
	}
	_, d, ok := FindPath(from, to, DistanceCost)
	if !ok {
		return -1
	}
	return d
}

// PathCostAlong scores a fixed sequence of areas. Consecutive areas must be
// connected. Any impassable edge makes the whole path Impassable.
func PathCostAlong(areas []*Area, cost CostFunc) float64 {
	if len(areas) == 0 {
		return Impassable
	}
	total := cost.Cost(Edge{Area: areas[0]})
	if total < 0 {
		return Impassable
	}
	for i := 1; i < len(areas); i++ {
		conn, ok := areas[i-1].ConnectionTo(areas[i])
		if !ok {
			return Impassable
		}
		total = cost.Cost(Edge{
			Area:          areas[i],
			From:          areas[i-1],
			Ladder:        conn.Ladder,
			Length:        conn.Length,
			FromCostSoFar: total,
		})
		if total < 0 {
			return Impassable
		}
	}
	return total
}

// SearchSurroundingAreas visits every area reachable from start within
// maxRange travel distance, nearest first. A negative maxRange is unbounded.
// Areas blocked for team are not entered unless team is game.TeamAny.
// The search stops early when visit returns false.
func SearchSurroundingAreas(start *Area, maxRange float64, team game.Team, visit func(a *Area, travel float64) bool) {
	if start == nil {
		return
	}
	bounded := CostFunction(func(e Edge) float64 {
		if team != game.TeamAny && e.Area.IsBlocked(team) {
			return Impassable
		}
		d := DistanceCost.Cost(e)
		if maxRange >= 0 && d > maxRange {
			return Impassable
		}
		return d
	})
	expand(start, bounded, func(a *Area, travel float64, _ map[*Area]*Area) bool {
		return visit(a, travel)
	})
}
