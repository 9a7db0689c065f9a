package nav

import (
	"math"
	"math/rand"

	"github.com/lab1702/ofbot/game"
)

// Ladder joins two areas vertically
type Ladder struct {
	Length float64
	Bottom *Area
	Top    *Area
}

// Elevator is a moving platform between areas. Costs treat it like any other edge.
type Elevator struct {
	ID int
}

// Connection is a directed edge to an adjacent area.
// Length is optional; zero means the center-to-center distance is used.
type Connection struct {
	To     *Area
	Ladder *Ladder
	Length float64
}

// Area is one convex walkable region of the mesh
type Area struct {
	ID     int
	Center game.Vector

	// Half extents on the ground plane
	HalfX, HalfY float64

	// FuncCost multiplies every edge entering this area. Zero means no hazard.
	FuncCost float64

	// CombatIntensity is the recent amount of fighting seen in the area, 0..1
	CombatIntensity float64

	// RespawnRoom marks spawn rooms that enemies cannot enter
	RespawnRoom bool

	incursion    [game.TeamCount]float64
	playerCount  [game.TeamCount]int
	blocked      [game.TeamCount]bool
	invasion     [game.TeamCount][]*Area
	visible      []*Area
	connections  []Connection
	capturePoint int
}

// NewArea creates an area with unknown incursion distances
func NewArea(id int, center game.Vector, halfX, halfY float64) *Area {
	a := &Area{
		ID:           id,
		Center:       center,
		HalfX:        halfX,
		HalfY:        halfY,
		capturePoint: -1,
	}
	for i := range a.incursion {
		a.incursion[i] = -1
	}
	return a
}

// IncursionDistance returns how far team has to travel from its spawn to reach
// the area, or -1 when unknown
func (a *Area) IncursionDistance(team game.Team) float64 {
	i := team.Index()
	if i < 0 {
		return -1
	}
	return a.incursion[i]
}

func (a *Area) SetIncursionDistance(team game.Team, d float64) {
	if i := team.Index(); i >= 0 {
		a.incursion[i] = d
	}
}

// PlayerCount returns how many players of team stand in the area
func (a *Area) PlayerCount(team game.Team) int {
	i := team.Index()
	if i < 0 {
		total := 0
		for _, n := range a.playerCount {
			total += n
		}
		return total
	}
	return a.playerCount[i]
}

func (a *Area) SetPlayerCount(team game.Team, n int) {
	if i := team.Index(); i >= 0 {
		a.playerCount[i] = n
	}
}

// ClearPlayerCounts zeroes every team's occupancy
func (a *Area) ClearPlayerCounts() {
	a.playerCount = [game.TeamCount]int{}
}

// IsBlocked reports whether team cannot pass through the area
func (a *Area) IsBlocked(team game.Team) bool {
	i := team.Index()
	if i < 0 {
		for _, b := range a.blocked {
			if b {
				return true
			}
		}
		return false
	}
	return a.blocked[i]
}

func (a *Area) SetBlocked(team game.Team, blocked bool) {
	if i := team.Index(); i >= 0 {
		a.blocked[i] = blocked
	}
}

// InvasionAreas returns the areas team's enemies are likely to come from
func (a *Area) InvasionAreas(team game.Team) []*Area {
	i := team.Index()
	if i < 0 {
		return nil
	}
	return a.invasion[i]
}

func (a *Area) SetInvasionAreas(team game.Team, areas []*Area) {
	if i := team.Index(); i >= 0 {
		a.invasion[i] = areas
	}
}

// PotentiallyVisible returns the areas that may be seen from this one
func (a *Area) PotentiallyVisible() []*Area {
	return a.visible
}

func (a *Area) AddPotentiallyVisible(areas ...*Area) {
	a.visible = append(a.visible, areas...)
}

// CapturePoint returns the control point whose capture volume covers the area
func (a *Area) CapturePoint() (int, bool) {
	return a.capturePoint, a.capturePoint >= 0
}

func (a *Area) SetCapturePoint(cp int) {
	a.capturePoint = cp
}

// Connections returns the outgoing edges
func (a *Area) Connections() []Connection {
	return a.connections
}

// ConnectionTo returns the edge leading to b
func (a *Area) ConnectionTo(b *Area) (Connection, bool) {
	for _, c := range a.connections {
		if c.To == b {
			return c, true
		}
	}
	return Connection{}, false
}

// HeightChangeTo returns the vertical distance from a up to b
func (a *Area) HeightChangeTo(b *Area) float64 {
	return b.Center.Z - a.Center.Z
}

// Contains reports whether pos lies over the area on the ground plane
func (a *Area) Contains(pos game.Vector) bool {
	return math.Abs(pos.X-a.Center.X) <= a.HalfX && math.Abs(pos.Y-a.Center.Y) <= a.HalfY
}

// ClosestPoint clamps pos onto the area's footprint at the area's height
func (a *Area) ClosestPoint(pos game.Vector) game.Vector {
	return game.Vector{
		X: clamp(pos.X, a.Center.X-a.HalfX, a.Center.X+a.HalfX),
		Y: clamp(pos.Y, a.Center.Y-a.HalfY, a.Center.Y+a.HalfY),
		Z: a.Center.Z,
	}
}

// RandomPoint returns a uniformly chosen point on the area
func (a *Area) RandomPoint(r *rand.Rand) game.Vector {
	return game.Vector{
		X: a.Center.X + (r.Float64()*2-1)*a.HalfX,
		Y: a.Center.Y + (r.Float64()*2-1)*a.HalfY,
		Z: a.Center.Z,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
