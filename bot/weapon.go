package bot

import (
	"time"

	"github.com/lab1702/ofbot/game"
)

// Class tie-break distances for weapon selection
const (
	sniperSwapRange  = 750.0
	soldierSwapRange = 500.0
	pyroSwapRange    = 750.0

	// A threat seen within this long still drives class tie-breaks
	recentThreatWindow = 5 * time.Second
)

func (b *Bot) weaponOrActive(w *game.Weapon) *game.Weapon {
	if w != nil {
		return w
	}
	return b.body.ActiveWeapon()
}

// IsCombatWeapon reports whether w (or the active weapon when nil) can hurt
// anything. A bot holding nothing counts as armed.
func (b *Bot) IsCombatWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return true
	}
	return game.IsCombatWeapon(w.ID)
}

func (b *Bot) IsQuietWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return false
	}
	return game.IsQuietWeapon(w.ID)
}

func (b *Bot) IsHitScanWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return false
	}
	return game.IsHitScanWeapon(w.ID)
}

func (b *Bot) IsExplosiveProjectileWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return false
	}
	return game.IsExplosiveProjectileWeapon(w.ID)
}

func (b *Bot) IsContinuousFireWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return false
	}
	return game.IsContinuousFireWeapon(w.ID)
}

func (b *Bot) IsBarrageAndReloadWeapon(w *game.Weapon) bool {
	if w = b.weaponOrActive(w); w == nil {
		return false
	}
	return game.IsBarrageAndReloadWeapon(w.ID)
}

// WeaponInSlot returns the weapon at slot and position, or nil
func (b *Bot) WeaponInSlot(slot, position int) *game.Weapon {
	for _, w := range b.body.Weapons() {
		if w != nil && w.Slot == slot && w.Position == position {
			return w
		}
	}
	return nil
}

func (b *Bot) weaponBySlot(slot int) *game.Weapon {
	for _, w := range b.body.Weapons() {
		if w != nil && w.Slot == slot {
			return w
		}
	}
	return nil
}

// PushRequiredWeapon forces w to be equipped until it is popped
func (b *Bot) PushRequiredWeapon(w *game.Weapon) {
	b.equipStack = append(b.equipStack, w)
}

func (b *Bot) PopRequiredWeapon() {
	if n := len(b.equipStack); n > 0 {
		b.equipStack = b.equipStack[:n-1]
	}
}

// EquipRequiredWeapon switches to the top of the equip stack.
// Returns false when the stack is empty or the switch did not happen.
func (b *Bot) EquipRequiredWeapon() bool {
	n := len(b.equipStack)
	if n == 0 {
		return false
	}
	w := b.equipStack[n-1]
	if w == nil {
		return false
	}
	return b.body.SwitchWeapon(w)
}

func combatOnly(w *game.Weapon) *game.Weapon {
	if w != nil && !game.IsCombatWeapon(w.ID) {
		return nil
	}
	return w
}

func firstWeapon(ws ...*game.Weapon) *game.Weapon {
	for _, w := range ws {
		if w != nil {
			return w
		}
	}
	return nil
}

// EquipBestWeaponForThreat picks a weapon for fighting threat and switches
// to it. A non-empty equip stack always wins. Returns whether a switch happened.
func (b *Bot) EquipBestWeaponForThreat(threat *KnownEntity) bool {
	if threat == nil {
		return false
	}
	if len(b.equipStack) > 0 {
		return b.EquipRequiredWeapon()
	}

	primary := combatOnly(b.WeaponInSlot(game.SlotPrimary, 0))
	secondary := combatOnly(b.WeaponInSlot(game.SlotSecondary, 0))
	melee := combatOnly(b.WeaponInSlot(game.SlotMelee, 0))

	weapon := firstWeapon(primary, secondary, melee)

	if b.skill != game.DifficultyEasy && threat.WasEverVisible() && threat.TimeSinceLastSeen(b.now()) <= recentThreatWindow {
		if primary != nil && primary.Reserve <= 0 {
			primary = nil
		}
		if secondary != nil && secondary.Reserve <= 0 {
			secondary = nil
		}
		weapon = firstWeapon(primary, secondary, melee)

		dist := threat.LastKnownPosition().DistTo(b.body.Position())

		switch b.Class() {
		case game.ClassSniper:
			if secondary != nil && dist < sniperSwapRange {
				weapon = secondary
			}
		case game.ClassSoldier:
			if weapon != nil && weapon.Clip <= 0 && secondary != nil && secondary.Clip != 0 && dist < soldierSwapRange {
				weapon = secondary
			}
		case game.ClassPyro:
			if secondary != nil && dist > pyroSwapRange {
				weapon = secondary
			} else if primary != nil {
				weapon = primary
			}
			fallthrough
		case game.ClassScout:
			if weapon != nil && weapon.Clip <= 0 {
				weapon = secondary
			}
		}
	}

	if weapon != nil {
		return b.body.SwitchWeapon(weapon)
	}

	rules := b.rules()
	if rules == nil || !rules.HasMutators() {
		return false
	}

	// Nothing in the usual slots: take the first non-melee weapon, then melee
	skipRailgun := rules.IsMutator(game.MutatorUnholyTrinity) || rules.IsMutator(game.MutatorClanArena)
	var fallback *game.Weapon
	for _, w := range b.body.Weapons() {
		if w == nil || (skipRailgun && w.ID == game.WeaponRailgun) {
			continue
		}
		if w.IsMelee() {
			fallback = w
			continue
		}
		return b.body.SwitchWeapon(w)
	}
	if fallback != nil {
		return b.body.SwitchWeapon(fallback)
	}
	return false
}

// EquipLongRangeWeapon switches to a weapon with ammo that works at range
func (b *Bot) EquipLongRangeWeapon() bool {
	switch {
	case b.isFreeRoam(), b.Class() == game.ClassSoldier, b.Class() == game.ClassDemoman,
		b.Class() == game.ClassSniper, b.Class() == game.ClassHeavy:
		if w := b.weaponBySlot(game.SlotPrimary); w != nil && w.Reserve > 0 {
			b.body.SwitchWeapon(w)
			return true
		}
	}

	if w := b.weaponBySlot(game.SlotSecondary); w != nil && w.Reserve > 0 {
		b.body.SwitchWeapon(w)
		return true
	}
	return false
}

// IsAmmoLow looks at the active weapon only. Wrenches track metal instead.
func (b *Bot) IsAmmoLow() bool {
	w := b.body.ActiveWeapon()
	if w == nil {
		return false
	}
	if w.ID == game.WeaponWrench || w.ID == game.WeaponTFCWrench {
		return b.body.Metal() < 50
	}
	if w.IsMelee() || w.MaxReserve <= 0 {
		return false
	}
	return float64(w.Reserve)/float64(w.MaxReserve) < 0.2
}

// IsAmmoFull reports whether primary and secondary reserves are full.
// Engineers outside free-roam need full metal instead.
func (b *Bot) IsAmmoFull() bool {
	if b.body.ActiveWeapon() == nil {
		return false
	}

	if !b.isFreeRoam() && b.Class() == game.ClassEngineer {
		return b.body.Metal() >= 200
	}

	primary := b.WeaponInSlot(game.SlotPrimary, 0)
	secondary := b.WeaponInSlot(game.SlotSecondary, 0)
	primaryFull := primary != nil && primary.Reserve >= primary.MaxReserve
	secondaryFull := secondary != nil && secondary.Reserve >= secondary.MaxReserve
	return primaryFull && secondaryFull
}

// GetMaxAttackRange returns the farthest range worth firing the active weapon at
func (b *Bot) GetMaxAttackRange() float64 {
	w := b.body.ActiveWeapon()
	if w == nil {
		return 0
	}
	return game.MaxAttackRange(w.ID)
}

// GetDesiredAttackRange returns the range the bot tries to hold with the active weapon
func (b *Bot) GetDesiredAttackRange() float64 {
	w := b.body.ActiveWeapon()
	if w == nil {
		return 0
	}
	return game.DesiredAttackRange(w.ID)
}
