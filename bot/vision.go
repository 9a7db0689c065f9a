package bot

import (
	"math"
	"time"

	"github.com/lab1702/ofbot/game"
)

// knownEntityMemory is how long an entity stays known after it was last
// seen or reported
const knownEntityMemory = 10 * time.Second

// KnownEntity is a bot's memory of one perceived entity
type KnownEntity struct {
	entity       Entity
	lastKnownPos game.Vector
	lastKnownAt  time.Duration
	lastSeenAt   time.Duration
	everVisible  bool
	visibleNow   bool
}

func (k *KnownEntity) Entity() Entity                 { return k.entity }
func (k *KnownEntity) Handle() game.Handle            { return k.entity.Handle() }
func (k *KnownEntity) LastKnownPosition() game.Vector { return k.lastKnownPos }
func (k *KnownEntity) IsVisibleNow() bool             { return k.visibleNow }
func (k *KnownEntity) WasEverVisible() bool           { return k.everVisible }
func (k *KnownEntity) LastSeenAt() time.Duration      { return k.lastSeenAt }

// TimeSinceLastSeen is unbounded for entities never seen
func (k *KnownEntity) TimeSinceLastSeen(now time.Duration) time.Duration {
	if !k.everVisible {
		return time.Duration(math.MaxInt64)
	}
	return now - k.lastSeenAt
}

// IsObsolete reports whether the record should be dropped
func (k *KnownEntity) IsObsolete(now time.Duration) bool {
	return k.entity == nil || !k.entity.IsAlive() || now-k.lastKnownAt > knownEntityMemory
}

// VisionMemory tracks the entities a bot currently sees or recently saw
type VisionMemory struct {
	owner *Bot
	known []*KnownEntity
}

func newVisionMemory(owner *Bot) *VisionMemory {
	return &VisionMemory{owner: owner}
}

func (v *VisionMemory) find(h game.Handle) *KnownEntity {
	for _, k := range v.known {
		if k.entity.Handle() == h {
			return k
		}
	}
	return nil
}

// Update refreshes the memory with the entities in view this tick and
// drops obsolete records
func (v *VisionMemory) Update(visible []Entity) {
	now := v.owner.now()

	for _, k := range v.known {
		k.visibleNow = false
	}
	for _, e := range visible {
		if e == nil || e.Handle() == v.owner.Handle() {
			continue
		}
		k := v.find(e.Handle())
		if k == nil {
			k = &KnownEntity{entity: e}
			v.known = append(v.known, k)
		}
		k.entity = e
		k.lastKnownPos = e.Position()
		k.lastKnownAt = now
		k.lastSeenAt = now
		k.everVisible = true
		k.visibleNow = true
	}

	kept := v.known[:0]
	for _, k := range v.known {
		if !k.IsObsolete(now) {
			kept = append(kept, k)
		}
	}
	for i := len(kept); i < len(v.known); i++ {
		v.known[i] = nil
	}
	v.known = kept
}

// AddKnownEntity makes the bot aware of e without having seen it
func (v *VisionMemory) AddKnownEntity(e Entity) {
	if e == nil {
		return
	}
	now := v.owner.now()
	k := v.find(e.Handle())
	if k == nil {
		k = &KnownEntity{entity: e}
		v.known = append(v.known, k)
	}
	k.lastKnownPos = e.Position()
	k.lastKnownAt = now
}

// ForgetEntity drops the record for h
func (v *VisionMemory) ForgetEntity(h game.Handle) {
	for i, k := range v.known {
		if k.entity.Handle() == h {
			v.known = append(v.known[:i], v.known[i+1:]...)
			return
		}
	}
}

func (v *VisionMemory) ForgetAllKnownEntities() {
	v.known = nil
}

// GetKnown returns the record for h, or nil
func (v *VisionMemory) GetKnown(h game.Handle) *KnownEntity {
	return v.find(h)
}

// CollectKnownEntities returns a snapshot of every record
func (v *VisionMemory) CollectKnownEntities() []*KnownEntity {
	out := make([]*KnownEntity, len(v.known))
	copy(out, v.known)
	return out
}

// GetPrimaryKnownThreat returns the most pressing known threat: visible
// threats beat remembered ones, then the closest wins. Returns nil when no
// threat is known.
func (v *VisionMemory) GetPrimaryKnownThreat(onlyVisible bool) *KnownEntity {
	me := v.owner.body.Position()

	var best *KnownEntity
	bestDist := 0.0
	for _, k := range v.known {
		if !v.owner.isThreat(k.entity) {
			continue
		}
		if onlyVisible && !k.visibleNow {
			continue
		}
		d := k.lastKnownPos.DistToSqr(me)
		switch {
		case best == nil:
		case k.visibleNow && !best.visibleNow:
		case k.visibleNow == best.visibleNow && d < bestDist:
		default:
			continue
		}
		best, bestDist = k, d
	}
	return best
}

// IsLineOfSightClear reports whether nothing solid lies between the bot's
// eyes and point
func (v *VisionMemory) IsLineOfSightClear(point game.Vector) bool {
	if v.owner.tracer == nil {
		return false
	}
	return !v.owner.tracer.TraceLine(v.owner.body.EyePosition(), point).Hit
}

// IsLineOfSightClearToEntity treats hitting e itself as clear
func (v *VisionMemory) IsLineOfSightClearToEntity(e Entity) bool {
	if v.owner.tracer == nil || e == nil {
		return false
	}
	tr := v.owner.tracer.TraceLine(v.owner.body.EyePosition(), e.Position())
	return !tr.Hit || tr.Entity == e.Handle()
}

// isThreat reports whether e is an enemy worth fighting. Cloaked or
// disguised players only count once they are known spies.
func (b *Bot) isThreat(e Entity) bool {
	if e == nil || !e.IsAlive() || !b.IsEnemy(e) {
		return false
	}
	if c, ok := e.(Character); ok && (c.IsCloaked() || c.IsDisguised()) {
		return b.IsKnownSpy(c)
	}
	return true
}
