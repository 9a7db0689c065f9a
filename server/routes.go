package server

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// routeRequest is one bot's route search for this planning round
type routeRequest struct {
	player *Player
	goal   *nav.Area
	route  bot.RouteType
}

type routeResult struct {
	path []*nav.Area
	cost float64
	ok   bool
}

// planRoutes picks every living bot's goal on the simulation goroutine,
// then searches all routes in parallel. The mesh and bots are not modified
// until every search has finished.
func (s *Server) planRoutes(ctx context.Context) error {
	var reqs []routeRequest
	for _, p := range s.arena.players {
		if p == nil || !p.alive {
			continue
		}
		goal, route := s.chooseGoal(p)
		if goal == nil || goal == p.area {
			p.route = nil
			p.goal = goal
			continue
		}
		reqs = append(reqs, routeRequest{player: p, goal: goal, route: route})
	}

	results := make([]routeResult, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, cost, ok := req.player.bot.ComputePath(req.goal, req.route)
			results[i] = routeResult{path: path, cost: cost, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("plan routes: %w", err)
	}

	for i, req := range reqs {
		p, res := req.player, results[i]
		if !res.ok {
			logBot("%s has no %s route to area %d", p.name, req.route, req.goal.ID)
			p.route = nil
			continue
		}
		p.goal = req.goal
		p.routeType = req.route
		p.route = res.path
		if len(p.route) > 0 && p.route[0] == p.area {
			p.route = p.route[1:]
		}
		logRoute(p.name, req.route, req.goal.ID, len(res.path), res.cost)
	}
	return nil
}

// chooseGoal decides where p's bot wants to go and how carefully
func (s *Server) chooseGoal(p *Player) (*nav.Area, bot.RouteType) {
	b := p.bot
	a := s.arena
	p.objective = -1

	if p.health < LowHealth {
		if home := b.HomeArea(); home != nil {
			return home, bot.RetreatRoute
		}
	}

	route := bot.DefaultRoute
	if b.IsAnyEnemySentryAbleToAttackMe() {
		route = bot.SafestRoute
	}

	if sq := b.Squad(); sq != nil && !sq.IsLeader(b) && sq.Leader() != nil {
		leader := sq.Leader().Body()
		if leader.IsAlive() && leader.LastKnownArea() != nil {
			return leader.LastKnownArea(), route
		}
	}

	if w := p.active; w != nil && game.IsSniperRifle(w.ID) {
		if spots := b.SniperSpots(); len(spots) > 0 {
			return spots[0].HomeArea, bot.SafestRoute
		}
	}

	switch a.gameType {
	case game.GameTypeCP:
		cp := b.GetMyControlPoint()
		if cp == nil {
			return nil, route
		}
		p.objective = cp.Index()
		if b.IsPointBeingContested(cp) && route == bot.DefaultRoute {
			route = bot.FastestRoute
		}
		return a.mesh.ControlPointArea(cp.Index()), route

	case game.GameTypeCTF:
		if p.carrying != nil {
			if zone := b.GetFlagCaptureZone(); zone != nil {
				return a.mesh.NearestArea(zone.Position()), bot.FastestRoute
			}
		}
		if flag := b.GetFlagToFetch(); flag != nil {
			return a.mesh.NearestArea(flag.Position()), route
		}

	case game.GameTypePayload:
		cart := a.PayloadToPush(p.team)
		if cart == nil {
			cart = a.PayloadToBlock(p.team)
		}
		if cart != nil {
			return a.mesh.NearestArea(cart.Position()), route
		}

	case game.GameTypeDM:
		if enemy := b.SelectRandomReachableEnemy(); enemy != nil {
			return enemy.LastKnownArea(), route
		}
		// Free-roam has no enemy team to pick from, so hunt the nearest
		// reachable opponent instead
		var everyone []bot.Entity
		for _, c := range a.Players(game.TeamAny) {
			everyone = append(everyone, c)
		}
		alive := func(e bot.Entity) bool { return e.IsAlive() && b.IsEnemy(e) }
		if near := b.SelectReachableObjects(everyone, alive, p.area, VisionRange); len(near) > 0 {
			return a.mesh.NearestArea(near[0].Position()), route
		}
	}

	// Nothing to do: wander
	areas := a.mesh.Areas()
	return areas[a.rng.Intn(len(areas))], route
}
