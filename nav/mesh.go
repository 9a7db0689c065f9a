package nav

import (
	"fmt"
	"sort"

	"github.com/lab1702/ofbot/game"
)

// Mesh is the navigation mesh. It is built once and then read by every bot;
// only per-tick occupancy and combat bookkeeping change after setup.
type Mesh struct {
	areas   map[int]*Area
	ordered []*Area
	cpAreas map[int]*Area
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		areas:   make(map[int]*Area),
		cpAreas: make(map[int]*Area),
	}
}

// Add inserts an area. Ids must be unique.
func (m *Mesh) Add(a *Area) error {
	if _, exists := m.areas[a.ID]; exists {
		return fmt.Errorf("nav area %d already exists", a.ID)
	}
	m.areas[a.ID] = a
	m.ordered = append(m.ordered, a)
	sort.Slice(m.ordered, func(i, j int) bool { return m.ordered[i].ID < m.ordered[j].ID })
	return nil
}

// Connect links a and b in both directions. A length of zero uses the
// center-to-center distance.
func (m *Mesh) Connect(a, b *Area, length float64) {
	a.connections = append(a.connections, Connection{To: b, Length: length})
	b.connections = append(b.connections, Connection{To: a, Length: length})
}

// ConnectOneWay links a to b only, e.g. a drop that cannot be climbed back
func (m *Mesh) ConnectOneWay(a, b *Area, length float64) {
	a.connections = append(a.connections, Connection{To: b, Length: length})
}

// ConnectLadder links the ladder's bottom and top areas through it
func (m *Mesh) ConnectLadder(l *Ladder) {
	l.Bottom.connections = append(l.Bottom.connections, Connection{To: l.Top, Ladder: l})
	l.Top.connections = append(l.Top.connections, Connection{To: l.Bottom, Ladder: l})
}

// Area returns the area with the given id, or nil
func (m *Mesh) Area(id int) *Area {
	return m.areas[id]
}

// Areas returns every area ordered by id
func (m *Mesh) Areas() []*Area {
	return m.ordered
}

func (m *Mesh) SetControlPointArea(cp int, a *Area) {
	m.cpAreas[cp] = a
}

// ControlPointArea returns the center area of a control point, or nil
func (m *Mesh) ControlPointArea(cp int) *Area {
	return m.cpAreas[cp]
}

// NearestArea returns the area under pos, falling back to the area with
// the closest center. Returns nil for an empty mesh.
func (m *Mesh) NearestArea(pos game.Vector) *Area {
	var best *Area
	bestDist := -1.0
	for _, a := range m.ordered {
		if a.Contains(pos) && pos.Z >= a.Center.Z-game.HumanHeight && pos.Z <= a.Center.Z+game.HumanHeight {
			return a
		}
		d := a.Center.DistToSqr(pos)
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// ResetOccupancy clears every area's per-team player counts
func (m *Mesh) ResetOccupancy() {
	for _, a := range m.ordered {
		a.ClearPlayerCounts()
	}
}

// DecayCombat fades every area's combat intensity by factor (0..1)
func (m *Mesh) DecayCombat(factor float64) {
	for _, a := range m.ordered {
		a.CombatIntensity *= factor
		if a.CombatIntensity < 0.001 {
			a.CombatIntensity = 0
		}
	}
}

// ComputeIncursionDistances floods out from each team's spawn areas and
// stores the shortest travel distance in every reachable area
func (m *Mesh) ComputeIncursionDistances(team game.Team, spawns ...*Area) {
	for _, a := range m.ordered {
		a.SetIncursionDistance(team, -1)
	}
	for _, spawn := range spawns {
		SearchSurroundingAreas(spawn, -1, game.TeamAny, func(a *Area, travel float64) bool {
			if cur := a.IncursionDistance(team); cur < 0 || travel < cur {
				a.SetIncursionDistance(team, travel)
			}
			return true
		})
	}
}
