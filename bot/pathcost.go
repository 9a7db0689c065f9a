package bot

import (
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// RouteType selects how a path trades length against danger
type RouteType int

const (
	DefaultRoute RouteType = iota
	FastestRoute
	SafestRoute
	RetreatRoute
)

func (r RouteType) String() string {
	switch r {
	case DefaultRoute:
		return "default"
	case FastestRoute:
		return "fastest"
	case SafestRoute:
		return "safest"
	case RetreatRoute:
		return "retreat"
	}
	return "unknown"
}

// Path cost weights
const (
	routeJitterPeriod      = 10 * time.Second
	routeJitterScale       = 50.0
	safestSentryPenalty    = 5.0
	stealthSentryPenalty   = 10.0
	stealthCrowdPenalty    = 10.0
	jumpDistanceMultiplier = 2.0
)

// PathCost scores area-to-area edges for one bot's route search. Everything
// that depends on the bot or the world is captured at construction, so a
// PathCost is safe to use from several goroutines as long as the mesh is
// not being modified.
type PathCost struct {
	route      RouteType
	loco       Locomotion
	stepHeight float64
	maxJump    float64
	deathDrop  float64
	multiplier float64
	stealthy   bool
	crowdTeam  game.Team
	freeRoam   bool
	sentries   map[*nav.Area]struct{}
}

// NewPathCost snapshots b for a search of the given route type
func NewPathCost(b *Bot, route RouteType) *PathCost {
	c := &PathCost{
		route:      route,
		loco:       b.loco,
		stepHeight: b.loco.StepHeight(),
		maxJump:    b.loco.MaxJumpHeight(),
		deathDrop:  b.loco.DeathDropHeight(),
		multiplier: 1,
		stealthy:   b.Class() == game.ClassSpy,
		crowdTeam:  b.Team(),
		freeRoam:   b.isFreeRoam(),
		sentries:   make(map[*nav.Area]struct{}),
	}

	// Consistently random per bot and time bucket, so bots spread over corridors
	if route == DefaultRoute {
		c.multiplier += (b.TransientlyConsistentRandomValue(routeJitterPeriod, 0) + 1) * routeJitterScale
	}

	enemy := b.EnemyTeam()
	for _, s := range b.world.Sentries() {
		if s.Team() != enemy {
			continue
		}
		if area := s.LastKnownArea(); area != nil {
			c.sentries[area] = struct{}{}
		}
	}
	return c
}

// Cost implements nav.CostFunc
func (c *PathCost) Cost(e nav.Edge) float64 {
	if e.From == nil {
		return 0
	}
	if !c.loco.IsAreaTraversable(e.Area) {
		return nav.Impassable
	}

	dist := e.Distance()

	dz := e.From.HeightChangeTo(e.Area)
	if dz >= c.stepHeight {
		if dz >= c.maxJump {
			return nav.Impassable
		}
		dist *= jumpDistanceMultiplier
	} else if dz < -c.deathDrop {
		return nav.Impassable
	}

	if _, ok := c.sentries[e.Area]; ok {
		if c.route == SafestRoute {
			dist *= safestSentryPenalty
		} else if c.stealthy {
			dist *= stealthSentryPenalty
		}
	}

	// Sneak around teammates rather than travel in a crowd
	if c.stealthy && !c.freeRoam {
		dist += dist * stealthCrowdPenalty * float64(e.Area.PlayerCount(c.crowdTeam))
	}

	cost := dist * c.multiplier
	if e.Area.FuncCost > 0 {
		cost *= e.Area.FuncCost
	}
	return e.FromCostSoFar + cost
}

// ComputePath finds this bot's route to goal. ok is false when there is no
// known start area or goal is unreachable.
func (b *Bot) ComputePath(goal *nav.Area, route RouteType) (path []*nav.Area, cost float64, ok bool) {
	start := b.body.LastKnownArea()
	if start == nil || goal == nil || b.loco == nil {
		return nil, nav.Impassable, false
	}
	return nav.FindPath(start, goal, NewPathCost(b, route))
}
