package bot

import (
	"sort"
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// sniperEyeOffset lifts line-of-fire checks from floor points to eye level
const sniperEyeOffset = 60.0

// SniperSpot is a candidate vantage: stand at Home and watch Forward.
// IncursionDiff is the enemy incursion distance of HomeArea minus that of
// ForwardArea; larger is better.
type SniperSpot struct {
	HomeArea      *nav.Area
	ForwardArea   *nav.Area
	Home          game.Vector
	Forward       game.Vector
	Range         float64
	IncursionDiff float64
}

type sniperState struct {
	spots      []SniperSpot
	standAreas []*nav.Area
	lookAreas  []*nav.Area
	goalEnt    game.Handle
	goal       game.Vector
	timer      countdown
}

// SniperSpots returns the retained vantages, best first
func (b *Bot) SniperSpots() []SniperSpot {
	return b.sniper.spots
}

// ClearSniperSpots drops every candidate and forgets the tracked objective
func (b *Bot) ClearSniperSpots() {
	b.sniper.spots = nil
	b.sniper.standAreas = nil
	b.sniper.lookAreas = nil
	b.sniper.goalEnt = game.NoHandle
	b.sniper.goal = game.Vector{}
	b.sniper.timer.Start(b.now(), b.randomDuration(5*time.Second, 10*time.Second))
}

// sniperObjective returns the entity sniping is organized around: the cart
// in payload, this bot's control point in control point maps.
func (b *Bot) sniperObjective() (Entity, bool) {
	r := b.rules()
	if r == nil {
		return nil, false
	}
	switch r.GameType() {
	case game.GameTypePayload:
		if cart := r.PayloadToPush(b.Team()); cart != nil {
			return cart, true
		}
		if cart := r.PayloadToBlock(b.Team()); cart != nil {
			return cart, true
		}
	case game.GameTypeCP:
		if cp := b.GetMyControlPoint(); cp != nil {
			return cp, true
		}
	}
	return nil, false
}

// SetupSniperSpotAccumulation rebuilds the stand and look candidate areas
// when the objective changes or moves beyond the tolerance.
func (b *Bot) SetupSniperSpotAccumulation() {
	objective, ok := b.sniperObjective()
	if !ok {
		b.ClearSniperSpots()
		return
	}

	tol := b.tuning.SniperGoalEntityMoveTolerance
	if objective.Handle() == b.sniper.goalEnt && objective.Position().DistToSqr(b.sniper.goal) < tol*tol {
		return
	}

	b.ClearSniperSpots()

	mesh := b.mesh()
	if mesh == nil {
		return
	}

	myTeam, enemyTeam := b.Team(), b.EnemyTeam()

	var objectiveArea *nav.Area
	var checkForward bool
	if cp, isCP := objective.(ControlPoint); isCP && !b.inGameType(game.GameTypePayload) {
		objectiveArea = mesh.ControlPointArea(cp.Index())
		checkForward = cp.Team() == myTeam
	} else {
		objectiveArea = mesh.NearestArea(objective.Position())
		checkForward = objective.Team() != enemyTeam
	}
	if objectiveArea == nil {
		return
	}

	objMine := objectiveArea.IncursionDistance(myTeam)
	objEnemy := objectiveArea.IncursionDistance(enemyTeam)
	pointTol := b.tuning.SniperSpotPointTolerance

	for _, area := range mesh.Areas() {
		mine := area.IncursionDistance(myTeam)
		if mine < 0 {
			continue
		}
		enemy := area.IncursionDistance(enemyTeam)
		if enemy < 0 {
			continue
		}

		if enemy <= objEnemy {
			b.sniper.lookAreas = append(b.sniper.lookAreas, area)
		}

		// Holding the point lets us stand a little past it; otherwise stay behind it
		if checkForward {
			if objMine+pointTol >= mine {
				b.sniper.standAreas = append(b.sniper.standAreas, area)
			}
		} else if objMine-pointTol >= mine {
			b.sniper.standAreas = append(b.sniper.standAreas, area)
		}
	}

	b.sniper.goalEnt = objective.Handle()
	b.sniper.goal = objective.Position()

	logSniper("bot %d: %d stand areas, %d look areas", b.Handle(), len(b.sniper.standAreas), len(b.sniper.lookAreas))
}

// AccumulateSniperSpots samples random stand/look pairs and keeps the best
// few. Pairs closer than the minimum range or without a clear line of fire
// are never kept.
func (b *Bot) AccumulateSniperSpots() {
	b.SetupSniperSpotAccumulation()

	if len(b.sniper.standAreas) == 0 || len(b.sniper.lookAreas) == 0 {
		if b.sniper.timer.IsElapsed(b.now()) {
			b.ClearSniperSpots()
		}
		return
	}

	enemy := b.EnemyTeam()
	lift := game.Vec(0, 0, sniperEyeOffset)

	for i := 0; i < b.tuning.SniperSpotSearchCount; i++ {
		spot := SniperSpot{
			HomeArea:    b.sniper.standAreas[b.rng.Intn(len(b.sniper.standAreas))],
			ForwardArea: b.sniper.lookAreas[b.rng.Intn(len(b.sniper.lookAreas))],
		}
		spot.Home = spot.HomeArea.RandomPoint(b.rng)
		spot.Forward = spot.ForwardArea.RandomPoint(b.rng)
		spot.Range = spot.Home.DistTo(spot.Forward)

		if spot.Range < b.tuning.SniperSpotMinRange {
			continue
		}
		if !b.IsLineOfFireClear(spot.Home.Add(lift), spot.Forward.Add(lift)) {
			continue
		}

		spot.IncursionDiff = spot.HomeArea.IncursionDistance(enemy) - spot.ForwardArea.IncursionDistance(enemy)
		b.keepSniperSpot(spot)
	}
}

// keepSniperSpot inserts spot into the ranked list, trimmed to the max count.
// A spot within epsilon of an existing one at both ends is a duplicate.
func (b *Bot) keepSniperSpot(spot SniperSpot) {
	eps := b.tuning.SniperSpotEpsilon
	for _, s := range b.sniper.spots {
		if s.Home.DistToSqr(spot.Home) < eps*eps && s.Forward.DistToSqr(spot.Forward) < eps*eps {
			return
		}
	}

	limit := b.tuning.SniperSpotMaxCount
	if len(b.sniper.spots) >= limit {
		if limit <= 0 || spot.IncursionDiff <= b.sniper.spots[len(b.sniper.spots)-1].IncursionDiff {
			return
		}
		b.sniper.spots = b.sniper.spots[:len(b.sniper.spots)-1]
	}

	i := sort.Search(len(b.sniper.spots), func(i int) bool {
		return b.sniper.spots[i].IncursionDiff < spot.IncursionDiff
	})
	b.sniper.spots = append(b.sniper.spots, SniperSpot{})
	copy(b.sniper.spots[i+1:], b.sniper.spots[i:])
	b.sniper.spots[i] = spot
}
