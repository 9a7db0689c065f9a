package bot

import "github.com/lab1702/ofbot/game"

// Threat geometry tolerances
const (
	sentryAimTolerance = 0.95
	betweenTolerance   = 0.7071 // cos 45
)

// IsLineOfFireClear reports whether a shot from from would reach to
// without hitting world geometry
func (b *Bot) IsLineOfFireClear(from, to game.Vector) bool {
	if b.tracer == nil {
		return false
	}
	return !b.tracer.TraceLine(from, to).Hit
}

// IsLineOfFireClearFromEyes traces from the bot's eyes to to
func (b *Bot) IsLineOfFireClearFromEyes(to game.Vector) bool {
	return b.IsLineOfFireClear(b.body.EyePosition(), to)
}

// IsLineOfFireClearTo reports whether a shot from the bot's eyes reaches e.
// Hitting e itself counts as clear.
func (b *Bot) IsLineOfFireClearTo(e Entity) bool {
	if b.tracer == nil || e == nil {
		return false
	}
	tr := b.tracer.TraceLine(b.body.EyePosition(), e.Position())
	return !tr.Hit || tr.Entity == e.Handle()
}

// IsThreatAimingTowardsMe reports whether threat faces this bot within
// the given dot product tolerance. Only players and sentries can aim.
func (b *Bot) IsThreatAimingTowardsMe(threat Entity, tolerance float64) bool {
	if threat == nil {
		return false
	}
	toMe, _ := b.body.Position().Sub(threat.Position()).Normalized()

	var fwd game.Vector
	switch t := threat.(type) {
	case Character:
		fwd = t.EyeForward()
	case Sentry:
		fwd = t.TurretForward()
	default:
		return false
	}
	return toMe.Dot(fwd) > tolerance
}

// IsEntityBetweenTargetAndSelf reports whether blocker is nearer than target
// and within 45 degrees of the direction to it
func (b *Bot) IsEntityBetweenTargetAndSelf(blocker, target Entity) bool {
	if blocker == nil || target == nil {
		return false
	}
	me := b.body.Position()
	toTarget, targetDist := target.Position().Sub(me).Normalized()
	toBlocker, blockerDist := blocker.Position().Sub(me).Normalized()
	return blockerDist < targetDist && toTarget.Dot(toBlocker) > betweenTolerance
}

// IsAnyEnemySentryAbleToAttackMe reports whether a working enemy sentry is in
// range, turned toward us and has a clear view
func (b *Bot) IsAnyEnemySentryAbleToAttackMe() bool {
	me := b.body.Position()
	for _, s := range b.world.Sentries() {
		if !s.IsOperational() || !b.IsEnemy(s) {
			continue
		}
		if me.DistToSqr(s.Position()) >= game.SentryBaseRange*game.SentryBaseRange {
			continue
		}
		if b.IsThreatAimingTowardsMe(s, sentryAimTolerance) && b.vision.IsLineOfSightClearToEntity(s) {
			return true
		}
	}
	return false
}
