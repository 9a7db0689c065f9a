package game

import (
	"math"
	"testing"
)

func TestWeaponTableCoversEveryID(t *testing.T) {
	for id := WeaponNone; id < WeaponCount; id++ {
		if _, ok := WeaponData[id]; !ok {
			t.Errorf("weapon %d has no descriptor", id)
		}
	}
	if got := len(WeaponIDs()); got != int(WeaponCount) {
		t.Errorf("WeaponIDs returned %d ids, want %d", got, WeaponCount)
	}
}

func TestWeaponPredicatesAreTotal(t *testing.T) {
	predicates := map[string]func(WeaponID) bool{
		"combat":     IsCombatWeapon,
		"quiet":      IsQuietWeapon,
		"hitscan":    IsHitScanWeapon,
		"explosive":  IsExplosiveProjectileWeapon,
		"continuous": IsContinuousFireWeapon,
		"barrage":    IsBarrageAndReloadWeapon,
		"sniper":     IsSniperRifle,
		"melee":      IsMeleeWeapon,
	}

	// Ids outside the table fall back to the safe default
	ids := append(WeaponIDs(), WeaponCount, WeaponCount+100, -1)
	for name, pred := range predicates {
		for _, id := range ids {
			first := pred(id)
			if second := pred(id); first != second {
				t.Errorf("%s(%d) is not stable: %v then %v", name, id, first, second)
			}
		}
	}

	unknown := WeaponCount + 7
	if !IsCombatWeapon(unknown) {
		t.Error("unknown weapons should count as combat weapons")
	}
	if IsMeleeWeapon(unknown) || IsExplosiveProjectileWeapon(unknown) {
		t.Error("unknown weapons should have no special traits")
	}
}

func TestWeaponClassification(t *testing.T) {
	tests := []struct {
		id         WeaponID
		combat     bool
		hitscan    bool
		explosive  bool
		continuous bool
		barrage    bool
		quiet      bool
	}{
		{WeaponKnife, true, false, false, false, false, true},
		{WeaponMinigun, true, true, false, true, false, false},
		{WeaponRocketLauncher, true, false, true, false, true, false},
		{WeaponFlamethrower, true, false, false, true, false, false},
		{WeaponSniperRifle, true, true, false, false, false, false},
		{WeaponMedigun, false, false, false, false, false, true},
		{WeaponPDAEngineerBuild, false, false, false, false, false, true},
		{WeaponScattergun, true, true, false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if got := IsCombatWeapon(tt.id); got != tt.combat {
				t.Errorf("IsCombatWeapon = %v, want %v", got, tt.combat)
			}
			if got := IsHitScanWeapon(tt.id); got != tt.hitscan {
				t.Errorf("IsHitScanWeapon = %v, want %v", got, tt.hitscan)
			}
			if got := IsExplosiveProjectileWeapon(tt.id); got != tt.explosive {
				t.Errorf("IsExplosiveProjectileWeapon = %v, want %v", got, tt.explosive)
			}
			if got := IsContinuousFireWeapon(tt.id); got != tt.continuous {
				t.Errorf("IsContinuousFireWeapon = %v, want %v", got, tt.continuous)
			}
			if got := IsBarrageAndReloadWeapon(tt.id); got != tt.barrage {
				t.Errorf("IsBarrageAndReloadWeapon = %v, want %v", got, tt.barrage)
			}
			if got := IsQuietWeapon(tt.id); got != tt.quiet {
				t.Errorf("IsQuietWeapon = %v, want %v", got, tt.quiet)
			}
		})
	}
}

func TestAttackRangeBands(t *testing.T) {
	tests := []struct {
		id      WeaponID
		max     float64
		desired float64
	}{
		{WeaponBat, MeleeAttackRange, MeleeDesiredRange},
		{WeaponKnife, MeleeAttackRange, KnifeAttackRange},
		{WeaponPistolMercenary, MercPistolAttackRange, DefaultDesiredRange},
		{WeaponPistolAkimbo, MercPistolAttackRange, DefaultDesiredRange},
		{WeaponFlamethrower, FlameAttackRange, MeleeDesiredRange},
		{WeaponLightningGun, FlameAttackRange, MeleeDesiredRange},
		{WeaponRocketLauncher, ExplosiveAttackRange, RocketDesiredRange},
		{WeaponGrenadeLauncher, ExplosiveAttackRange, DefaultDesiredRange},
		{WeaponSniperRifle, UnboundedAttackRange, UnboundedAttackRange},
		{WeaponShotgun, DefaultMaxAttackRange, DefaultDesiredRange},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if got := MaxAttackRange(tt.id); got != tt.max {
				t.Errorf("MaxAttackRange = %v, want %v", got, tt.max)
			}
			if got := DesiredAttackRange(tt.id); got != tt.desired {
				t.Errorf("DesiredAttackRange = %v, want %v", got, tt.desired)
			}
		})
	}
}

func TestNewWeaponUsesTableSlot(t *testing.T) {
	w := NewWeapon(WeaponShotgun, 6, 32)
	if w.Slot != SlotSecondary {
		t.Errorf("shotgun slot = %d, want %d", w.Slot, SlotSecondary)
	}
	if w.MaxReserve != 32 {
		t.Errorf("MaxReserve = %d, want 32", w.MaxReserve)
	}
	if !NewWeapon(WeaponShovel, 0, 0).IsMelee() {
		t.Error("shovel should be melee")
	}
}

func TestParseHelpers(t *testing.T) {
	if d, ok := ParseDifficulty("3"); !ok || d != DifficultyExpert {
		t.Errorf("ParseDifficulty(\"3\") = %v, %v", d, ok)
	}
	if d, ok := ParseDifficulty("Normal"); !ok || d != DifficultyNormal {
		t.Errorf("ParseDifficulty(\"Normal\") = %v, %v", d, ok)
	}
	if _, ok := ParseDifficulty("7"); ok {
		t.Error("difficulty 7 should be rejected")
	}
	if c, ok := ParseClass("heavy"); !ok || c != ClassHeavy {
		t.Errorf("ParseClass(\"heavy\") = %v, %v", c, ok)
	}
	if team, ok := ParseTeam("BLUE"); !ok || team != TeamBlue {
		t.Errorf("ParseTeam(\"BLUE\") = %v, %v", team, ok)
	}
	if EnemyTeam(TeamRed) != TeamBlue || EnemyTeam(TeamMercenary) != TeamUnassigned {
		t.Error("EnemyTeam mapping is wrong")
	}
}

func TestVectorHelpers(t *testing.T) {
	a := Vec(3, 4, 0)
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	n, l := a.Normalized()
	if l != 5 || math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Normalized = %v, %v", n, l)
	}
	if z, l := (Vector{}).Normalized(); !z.IsZero() || l != 0 {
		t.Error("zero vector should normalize to zero")
	}
	if got := Vec(0, 0, 0).DistTo(a); got != 5 {
		t.Errorf("DistTo = %v, want 5", got)
	}
}
