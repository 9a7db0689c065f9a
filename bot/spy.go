package bot

import (
	"slices"
	"time"

	"github.com/lab1702/ofbot/game"
)

// suspectedSpy is one enemy under suspicion, with the times it was touched
type suspectedSpy struct {
	spy     Character
	touches []time.Duration
}

func (s *suspectedSpy) suspect(now time.Duration) {
	s.touches = append(s.touches, now)
}

// isCurrentlySuspected reports whether the latest touch is still fresh
func (s *suspectedSpy) isCurrentlySuspected(now, cooldown time.Duration) bool {
	if len(s.touches) == 0 {
		return false
	}
	return now-s.touches[len(s.touches)-1] < cooldown
}

// testForRealizing drops touches older than interval and reports whether
// enough recent ones remain
func (s *suspectedSpy) testForRealizing(now, interval time.Duration, need int) bool {
	kept := s.touches[:0]
	for _, t := range s.touches {
		if now-t <= interval {
			kept = append(kept, t)
		}
	}
	s.touches = kept
	return len(s.touches) >= need
}

func (b *Bot) findSuspected(h game.Handle) (int, *suspectedSpy) {
	for i, s := range b.suspected {
		if s.spy.Handle() == h {
			return i, s
		}
	}
	return -1, nil
}

// IsSuspectedSpy reports whether a suspicion record exists for spy
func (b *Bot) IsSuspectedSpy(spy Character) bool {
	_, s := b.findSuspected(spy.Handle())
	return s != nil
}

// IsKnownSpy reports whether spy has been realized
func (b *Bot) IsKnownSpy(spy Character) bool {
	_, ok := b.knownSpies[spy.Handle()]
	return ok
}

// KnownSpyCount returns the size of the known-spy set
func (b *Bot) KnownSpyCount() int {
	return len(b.knownSpies)
}

// SuspectSpy records a suspicious touch and realizes the spy once enough
// recent touches pile up
func (b *Bot) SuspectSpy(spy Character) {
	b.suspect(spy, true)
}

func (b *Bot) suspect(spy Character, propagate bool) {
	if spy == nil {
		return
	}
	_, s := b.findSuspected(spy.Handle())
	if s == nil {
		s = &suspectedSpy{spy: spy}
		b.suspected = append([]*suspectedSpy{s}, b.suspected...)
	}

	now := b.now()
	s.suspect(now)
	logSpy("bot %d suspects %d (%d touches)", b.Handle(), spy.Handle(), len(s.touches))

	if s.testForRealizing(now, b.tuning.TouchInterval(), b.tuning.SuspectSpyRealizeTouches) {
		b.realize(spy, propagate)
	}
}

// StopSuspectingSpy drops the suspicion record. A realized spy stays known.
func (b *Bot) StopSuspectingSpy(spy Character) {
	if i, _ := b.findSuspected(spy.Handle()); i >= 0 {
		b.suspected = append(b.suspected[:i], b.suspected[i+1:]...)
	}
}

// RealizeSpy marks spy as known and calls it out. If the spy was under
// active suspicion, nearby teammate bots that do not know it yet are told.
// Calling it again for a known spy does nothing.
func (b *Bot) RealizeSpy(spy Character) {
	b.realize(spy, true)
}

func (b *Bot) realize(spy Character, propagate bool) {
	if spy == nil || b.IsKnownSpy(spy) {
		return
	}

	b.knownSpies[spy.Handle()] = struct{}{}
	if b.speaker != nil {
		b.speaker.Speak(b.Handle(), game.ConceptCloakedSpy)
	}
	logSpy("bot %d realized spy %d", b.Handle(), spy.Handle())

	if !propagate {
		return
	}
	_, s := b.findSuspected(spy.Handle())
	if s == nil || !s.isCurrentlySuspected(b.now(), b.tuning.ForgetCooldown()) {
		return
	}

	radiusSqr := b.tuning.SpyAlertRadius * b.tuning.SpyAlertRadius
	eye := b.body.EyePosition()
	for _, mate := range b.world.Players(b.Team()) {
		if !mate.IsAlive() {
			continue
		}
		teammate, ok := mate.AsBot()
		if !ok || teammate == b || teammate.IsKnownSpy(spy) {
			continue
		}
		if eye.DistToSqr(mate.EyePosition()) >= radiusSqr {
			continue
		}
		logSpy("bot %d tips off teammate %d about %d", b.Handle(), teammate.Handle(), spy.Handle())
		teammate.suspect(spy, false)
		teammate.realize(spy, false)
	}
}

// ForgetSpy drops both the suspicion record and the known-spy entry
func (b *Bot) ForgetSpy(spy Character) {
	b.StopSuspectingSpy(spy)
	delete(b.knownSpies, spy.Handle())
}

// ForgetPlayer drops everything the bot knows about a player that left the
// match, so a newcomer reusing the handle starts with a clean slate
func (b *Bot) ForgetPlayer(h game.Handle) {
	if i, _ := b.findSuspected(h); i >= 0 {
		b.suspected = append(b.suspected[:i], b.suspected[i+1:]...)
	}
	delete(b.knownSpies, h)
	b.notices = slices.DeleteFunc(b.notices, func(n delayedNotice) bool {
		return n.entity.Handle() == h
	})
	b.vision.ForgetEntity(h)
}

// UpdateSuspicions drops records whose last touch is older than the forget cooldown
func (b *Bot) UpdateSuspicions() {
	now := b.now()
	cooldown := b.tuning.ForgetCooldown()

	kept := b.suspected[:0]
	for _, s := range b.suspected {
		if s.isCurrentlySuspected(now, cooldown) {
			kept = append(kept, s)
		}
	}
	b.suspected = kept
}

type delayedNotice struct {
	entity Entity
	when   time.Duration
}

// DelayedThreatNotice makes the bot notice ent after delay. An earlier
// pending notice for the same entity wins.
func (b *Bot) DelayedThreatNotice(ent Entity, delay time.Duration) {
	if ent == nil {
		return
	}
	when := b.now() + delay
	for i := range b.notices {
		if b.notices[i].entity.Handle() == ent.Handle() {
			if when < b.notices[i].when {
				b.notices[i].when = when
			}
			return
		}
	}
	b.notices = append(b.notices, delayedNotice{entity: ent, when: when})
}

// UpdateDelayedThreatNotices delivers due notices. A noticed spy is realized.
func (b *Bot) UpdateDelayedThreatNotices() {
	now := b.now()

	pending := b.notices[:0]
	for _, n := range b.notices {
		if now < n.when {
			pending = append(pending, n)
			continue
		}
		if !n.entity.IsAlive() {
			continue
		}
		if c, ok := n.entity.(Character); ok && c.Class() == game.ClassSpy {
			b.RealizeSpy(c)
		}
		b.vision.AddKnownEntity(n.entity)
	}
	b.notices = pending
}

// PendingThreatNotices returns how many notices are waiting
func (b *Bot) PendingThreatNotices() int {
	return len(b.notices)
}
