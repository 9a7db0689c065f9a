package bot

import (
	"math"
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// contestedWindow is how long after the last contest a point counts as contested
const contestedWindow = 5 * time.Second

// GetMyControlPoint returns the point this bot wants to capture or defend.
// The choice is cached and revalidated every 1-2 seconds. Returns nil when
// there is nothing to do.
func (b *Bot) GetMyControlPoint() ControlPoint {
	now := b.now()
	if b.myCP != nil && !b.cpValid.IsElapsed(now) {
		return b.myCP
	}

	rules := b.rules()
	if rules == nil {
		return nil
	}

	b.cpValid.Start(now, b.randomDuration(time.Second, 2*time.Second))

	defend := rules.DefendPoints(b.Team())
	capture := rules.CapturePoints(b.Team())

	w := b.body.ActiveWeapon()
	defensive := (w != nil && game.IsSniperRifle(w.ID)) || b.Class() == game.ClassEngineer

	if defensive && len(defend) > 0 {
		if cp := b.SelectPointToDefend(defend); cp != nil {
			b.myCP = cp
			return cp
		}
	} else {
		if cp := b.SelectPointToCapture(capture); cp != nil {
			b.myCP = cp
			return cp
		}
		b.cpValid.Invalidate()
		if cp := b.SelectPointToDefend(defend); cp != nil {
			b.myCP = cp
			return cp
		}
	}

	b.cpValid.Invalidate()
	return nil
}

// ClearMyControlPoint forgets the cached point so the next query reselects
func (b *Bot) ClearMyControlPoint() {
	b.myCP = nil
	b.cpValid.Invalidate()
}

// HasPointRecentlyChanged reports whether a point was lost within the last 10-20 seconds
func (b *Bot) HasPointRecentlyChanged() bool {
	return b.cpChanged.HasStarted() && !b.cpChanged.IsElapsed(b.now())
}

// SelectPointToCapture picks a point to attack. Standing on a point, a
// contested nearby point, and active fighting all take precedence over the
// time-bucketed pseudo-random pick.
func (b *Bot) SelectPointToCapture(candidates []ControlPoint) ControlPoint {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	if cp := b.controlPointStandingOn(); cp != nil {
		return cp
	}

	if closest := b.SelectClosestPointByTravelDistance(candidates); closest != nil && b.IsPointBeingContested(closest) {
		return closest
	}

	maxDanger := math.SmallestNonzeroFloat64
	inCombat := false
	var dangerous ControlPoint
	mesh := b.mesh()

	for _, cp := range candidates {
		if b.IsPointBeingContested(cp) {
			return cp
		}
		if mesh == nil {
			continue
		}
		area := mesh.ControlPointArea(cp.Index())
		if area == nil {
			continue
		}

		// Only the last evaluated area decides whether there is fighting
		danger := area.CombatIntensity
		inCombat = danger > 0.1

		if maxDanger < danger {
			maxDanger = danger
			dangerous = cp
		}
	}

	if inCombat && dangerous != nil {
		return dangerous
	}

	pick := int(float64(len(candidates)) * b.TransientlyConsistentRandomValue(time.Minute, 0))
	if pick < 0 {
		return candidates[0]
	}
	if pick > len(candidates)-1 {
		pick = len(candidates) - 1
	}
	return candidates[pick]
}

// SelectPointToDefend picks a random point, or the closest one for bots
// that must not dodge around
func (b *Bot) SelectPointToDefend(candidates []ControlPoint) ControlPoint {
	if len(candidates) == 0 {
		return nil
	}
	if b.HasAttribute(game.AttrDisableDodge) {
		return b.SelectClosestPointByTravelDistance(candidates)
	}
	return candidates[b.rng.Intn(len(candidates))]
}

// SelectClosestPointByTravelDistance returns the candidate with the
// shortest walk from the bot's area, or nil when none is reachable
func (b *Bot) SelectClosestPointByTravelDistance(candidates []ControlPoint) ControlPoint {
	mesh := b.mesh()
	from := b.body.LastKnownArea()
	if mesh == nil || from == nil {
		return nil
	}

	var closest ControlPoint
	minDist := math.MaxFloat64
	for _, cp := range candidates {
		d := nav.TravelDistance(from, mesh.ControlPointArea(cp.Index()))
		if d >= 0 && d < minDist {
			minDist = d
			closest = cp
		}
	}
	return closest
}

// controlPointStandingOn returns the point whose capture volume covers the bot
func (b *Bot) controlPointStandingOn() ControlPoint {
	area := b.body.LastKnownArea()
	rules := b.rules()
	if area == nil || rules == nil {
		return nil
	}
	idx, ok := area.CapturePoint()
	if !ok {
		return nil
	}
	for _, cp := range rules.ControlPoints() {
		if cp.Index() == idx {
			return cp
		}
	}
	return nil
}

// IsCapturingPoint reports whether the bot stands inside a capture volume
func (b *Bot) IsCapturingPoint() bool {
	return b.controlPointStandingOn() != nil
}

// IsPointBeingContested reports whether cp was contested within the last 5 seconds
func (b *Bot) IsPointBeingContested(cp ControlPoint) bool {
	if cp == nil {
		return false
	}
	last := cp.LastContestedAt()
	return last >= 0 && last+contestedWindow > b.now()
}

// IsAnyPointBeingCaptured reports whether any point is currently contested
func (b *Bot) IsAnyPointBeingCaptured() bool {
	rules := b.rules()
	if rules == nil {
		return false
	}
	for _, cp := range rules.ControlPoints() {
		if b.IsPointBeingContested(cp) {
			return true
		}
	}
	return false
}

// AreAllPointsUncontestedSoFar reports whether no point has been contested this round
func (b *Bot) AreAllPointsUncontestedSoFar() bool {
	rules := b.rules()
	if rules == nil {
		return true
	}
	for _, cp := range rules.ControlPoints() {
		if cp.HasBeenContested() {
			return false
		}
	}
	return true
}

// IsNearPoint compares incursion distances of the bot's area and the point's area
func (b *Bot) IsNearPoint(cp ControlPoint) bool {
	mine := b.body.LastKnownArea()
	mesh := b.mesh()
	if cp == nil || mine == nil || mesh == nil {
		return false
	}
	cpArea := mesh.ControlPointArea(cp.Index())
	if cpArea == nil {
		return false
	}
	diff := math.Abs(mine.IncursionDistance(b.Team()) - cpArea.IncursionDistance(b.Team()))
	return diff < b.tuning.NearPointTravelDistance
}

// GetTimeLeftToCapture returns the time left on the relevant round timer
func (b *Bot) GetTimeLeftToCapture() time.Duration {
	rules := b.rules()
	if rules == nil {
		return 0
	}

	if rules.IsKoth() {
		team := b.Team()
		if team != game.TeamRed && team != game.TeamBlue {
			return 0
		}
		if left, ok := rules.KothTimeLeft(team); ok {
			return left
		}
		return 0
	}

	if left, ok := rules.RoundTimeLeft(); ok {
		return left
	}
	return 0
}

// GetFlagCaptureZone returns this team's capture zone in CTF. The choice is cached.
func (b *Bot) GetFlagCaptureZone() CaptureZone {
	if b.captureZone == nil && b.inGameType(game.GameTypeCTF) {
		for _, zone := range b.world.CaptureZones() {
			if zone.Team() == b.Team() {
				b.captureZone = zone
			}
		}
	}
	return b.captureZone
}

// GetFlagToFetch returns the flag the bot should go after: the one it
// carries, else the nearest enemy flag that is not stolen.
//
// The stolen-flag fallback compares with > against a max-float start, so it
// never selects anything; when every enemy flag is stolen this returns nil.
// Kept as is until the intended rule is settled.
func (b *Bot) GetFlagToFetch() Flag {
	var flags []Flag
	me := b.Handle()
	enemy := b.EnemyTeam()

	for _, f := range b.world.Flags() {
		if f == nil || f.IsDisabled() {
			continue
		}
		if f.Carrier() == me {
			return f
		}
		if f.Type() >= game.FlagTypeCTF && f.Type() <= game.FlagTypeInvade && f.Team() == enemy {
			flags = append(flags, f)
		}
	}

	minDist := math.MaxFloat64
	minStolenDist := math.MaxFloat64
	var closest, closestStolen Flag
	origin := b.body.Position()

	for _, f := range flags {
		d := f.Position().DistToSqr(origin)
		if d > minStolenDist {
			minStolenDist = d
			closestStolen = f
		}

		if f.IsStolen() || minDist <= d {
			continue
		}
		minDist = d
		closest = f
	}

	if closest != nil {
		return closest
	}
	return closestStolen
}
