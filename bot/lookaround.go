package bot

import (
	"math"
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// Look-around tuning
const (
	lookMinRange       = 150.0
	lookAimingMinRange = 750.0
	lookInvasionTries  = 20
	lookHiddenTries    = 10
	lookMinInterval    = 300 * time.Millisecond
	lookMaxInterval    = time.Second
)

// turnAroundSpread is sin(30deg): the random offset applied when turning
// toward a threat behind us, relative to its distance
var turnAroundSpread = math.Sin(math.Pi / 6)

// UpdateLookingAroundForEnemies points the head somewhere useful and
// returns where, or false when the bot did not move its head.
func (b *Bot) UpdateLookingAroundForEnemies() (game.Vector, bool) {
	if !b.lookingAround || b.HasAttribute(game.AttrDontLookAround) {
		return game.Vector{}, false
	}

	threat := b.vision.GetPrimaryKnownThreat(false)
	if threat == nil || threat.Entity() == nil {
		return b.UpdateLookingForIncomingEnemies(true)
	}
	ent := threat.Entity()

	if threat.IsVisibleNow() {
		// A disguised spy keeps up the act instead of staring at the enemy
		if b.Class() == game.ClassSpy && b.body.IsDisguised() && !b.body.IsCloaked() {
			return b.UpdateLookingForIncomingEnemies(false)
		}
		b.body.AimHeadTowards(ent.Position(), "Aiming at a visible threat")
		return ent.Position(), true
	}

	if b.vision.IsLineOfSightClearToEntity(ent) {
		me := b.body.Position()
		spread := ent.Position().DistTo(me) * turnAroundSpread
		target := ent.Position().Add(game.Vec(
			(b.rng.Float64()*2-1)*spread,
			(b.rng.Float64()*2-1)*spread,
			0,
		))
		b.body.AimHeadTowards(target, "Turning around to find threat out of our FOV")
		return target, true
	}

	if w := b.body.ActiveWeapon(); w != nil && game.IsSniperRifle(w.ID) {
		return b.UpdateLookingForIncomingEnemies(true)
	}

	area := b.body.LastKnownArea()
	if area == nil {
		return game.Vector{}, false
	}
	near := closestPotentiallyVisible(area, threat.LastKnownPosition())
	if near == nil {
		return game.Vector{}, false
	}
	lift := game.Vec(0, 0, game.HumanHeight*0.75)
	for i := 0; i < lookHiddenTries; i++ {
		spot := near.RandomPoint(b.rng).Add(lift)
		if b.vision.IsLineOfSightClear(spot) {
			b.body.AimHeadTowards(spot, "Looking toward potentially visible area near known but hidden threat")
			return spot, true
		}
	}
	return game.Vector{}, false
}

func closestPotentiallyVisible(from *nav.Area, pos game.Vector) *nav.Area {
	var best *nav.Area
	bestDist := math.MaxFloat64
	for _, a := range from.PotentiallyVisible() {
		if d := a.Center.DistToSqr(pos); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// UpdateLookingForIncomingEnemies glances toward areas the other side
// arrives from. With enemy false it watches the areas our own team invades,
// which is where a disguised spy would expect to be looked at from.
func (b *Bot) UpdateLookingForIncomingEnemies(enemy bool) (game.Vector, bool) {
	now := b.now()
	if b.lookTimer.HasStarted() && !b.lookTimer.IsElapsed(now) {
		return game.Vector{}, false
	}
	b.lookTimer.Start(now, b.randomDuration(lookMinInterval, lookMaxInterval))

	area := b.body.LastKnownArea()
	if area == nil {
		return game.Vector{}, false
	}

	team := b.Team()
	if !enemy {
		team = b.EnemyTeam()
	}

	minRange := lookMinRange
	if b.body.IsAiming() {
		minRange = lookAimingMinRange
	}

	areas := area.InvasionAreas(team)
	if len(areas) == 0 {
		return game.Vector{}, false
	}
	me := b.body.Position()
	for i := 0; i < lookInvasionTries; i++ {
		spot := areas[b.rng.Intn(len(areas))].RandomPoint(b.rng)
		if spot.DistToSqr(me) <= minRange*minRange {
			continue
		}
		if b.vision.IsLineOfSightClear(spot) {
			b.body.AimHeadTowards(spot, "Looking toward enemy invasion areas")
			return spot, true
		}
	}
	return game.Vector{}, false
}
