package game

import (
	"math"
	"sort"
)

// WeaponID identifies a weapon type
type WeaponID int

const (
	WeaponNone WeaponID = iota

	// Melee
	WeaponBat
	WeaponBottle
	WeaponFireAxe
	WeaponClub
	WeaponCrowbar
	WeaponKnife
	WeaponFists
	WeaponShovel
	WeaponWrench
	WeaponBonesaw
	WeaponChainsaw
	WeaponClaymore

	// Primary / secondary
	WeaponShotgun
	WeaponScattergun
	WeaponSniperRifle
	WeaponMinigun
	WeaponSMG
	WeaponSyringeGun
	WeaponRocketLauncher
	WeaponGrenadeLauncher
	WeaponPipebombLauncher
	WeaponFlamethrower
	WeaponPistol
	WeaponPistolScout
	WeaponRevolver
	WeaponGrapple

	// Tools
	WeaponPDA
	WeaponPDAEngineerBuild
	WeaponPDAEngineerDestroy
	WeaponPDASpy
	WeaponBuilder
	WeaponMedigun
	WeaponInvis
	WeaponDispenser

	// Building weapons
	WeaponSentryBullet
	WeaponSentryRocket

	// Open Fortress
	WeaponRailgun
	WeaponSuperShotgun
	WeaponEternalShotgun
	WeaponPistolMercenary
	WeaponRevolverMercenary
	WeaponGatlingGun
	WeaponPistolAkimbo
	WeaponSMGMercenary
	WeaponTommyGun
	WeaponAssaultRifle
	WeaponPhyscannon
	WeaponLightningGun
	WeaponGrenadeLauncherMercenary
	WeaponRocketLauncherDM
	WeaponSuperRocketLauncher
	WeaponDynamiteBundle
	WeaponGib

	// Classic
	WeaponTFCKnife
	WeaponTFCWrench
	WeaponTFCCrowbar
	WeaponTFCShotgunSB
	WeaponTFCShotgunDB
	WeaponTFCRailPistol
	WeaponTFCAssaultCannon
	WeaponTFCSniperRifle
	WeaponTFCAssaultRifle
	WeaponTFCIncendiaryCannon
	WeaponTFCPipebombLauncher
	WeaponTFCGrenadeLauncher
	WeaponTFCRPG

	WeaponCount
)

// Weapon slots
const (
	SlotPrimary   = 0
	SlotSecondary = 1
	SlotMelee     = 2
	SlotPDA       = 3
	SlotBuilding  = 4
)

// Attack range bands
const (
	MeleeAttackRange      = 100.0
	KnifeAttackRange      = 70.0
	FlameAttackRange      = 256.0
	MercPistolAttackRange = 1024.0
	ExplosiveAttackRange  = 3000.0
	DefaultMaxAttackRange = 2048.0
	DefaultDesiredRange   = 500.0
	RocketDesiredRange    = 1250.0
	UnboundedAttackRange  = math.MaxFloat64
	MeleeDesiredRange     = 100.0
)

// WeaponInfo is the data-driven descriptor of a weapon type.
// Classification predicates and range bands are read from this table.
type WeaponInfo struct {
	Name        string
	Slot        int
	Melee       bool
	NonCombat   bool // tools that cannot hurt anyone
	Quiet       bool
	HitScan     bool
	Explosive   bool
	Continuous  bool
	Barrage     bool // fire the clip, then reload
	SniperRifle bool
	Damage      int

	// MaxRange and DesiredRange override the category default when non-zero
	MaxRange     float64
	DesiredRange float64
}

// unknownWeapon is the safe category for IDs missing from the table:
// a non-melee combat weapon with no special traits.
var unknownWeapon = WeaponInfo{Name: "unknown", Slot: SlotPrimary}

var WeaponData = map[WeaponID]WeaponInfo{
	WeaponNone: {Name: "none", Slot: SlotPrimary},

	WeaponBat:      {Name: "bat", Slot: SlotMelee, Melee: true, Damage: 35},
	WeaponBottle:   {Name: "bottle", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponFireAxe:  {Name: "fireaxe", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponClub:     {Name: "club", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponCrowbar:  {Name: "crowbar", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponKnife:    {Name: "knife", Slot: SlotMelee, Melee: true, Quiet: true, Damage: 40, DesiredRange: KnifeAttackRange},
	WeaponFists:    {Name: "fists", Slot: SlotMelee, Melee: true, Quiet: true, Damage: 65},
	WeaponShovel:   {Name: "shovel", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponWrench:   {Name: "wrench", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponBonesaw:  {Name: "bonesaw", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponChainsaw: {Name: "chainsaw", Slot: SlotMelee, Melee: true, Continuous: true, Damage: 20},
	WeaponClaymore: {Name: "claymore", Slot: SlotMelee, Melee: true, Damage: 110},

	WeaponShotgun:          {Name: "shotgun", Slot: SlotSecondary, HitScan: true, Damage: 60},
	WeaponScattergun:       {Name: "scattergun", Slot: SlotPrimary, HitScan: true, Barrage: true, Damage: 60},
	WeaponSniperRifle:      {Name: "sniperrifle", Slot: SlotPrimary, HitScan: true, SniperRifle: true, Damage: 150},
	WeaponMinigun:          {Name: "minigun", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 9},
	WeaponSMG:              {Name: "smg", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 8},
	WeaponSyringeGun:       {Name: "syringegun", Slot: SlotPrimary, Damage: 10},
	WeaponRocketLauncher:   {Name: "rocketlauncher", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 90, DesiredRange: RocketDesiredRange},
	WeaponGrenadeLauncher:  {Name: "grenadelauncher", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 100},
	WeaponPipebombLauncher: {Name: "pipebomblauncher", Slot: SlotSecondary, Explosive: true, Barrage: true, Damage: 120},
	WeaponFlamethrower:     {Name: "flamethrower", Slot: SlotPrimary, Continuous: true, Damage: 7, MaxRange: FlameAttackRange, DesiredRange: MeleeDesiredRange},
	WeaponPistol:           {Name: "pistol", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 15},
	WeaponPistolScout:      {Name: "pistol_scout", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 15},
	WeaponRevolver:         {Name: "revolver", Slot: SlotPrimary, HitScan: true, Damage: 40},
	WeaponGrapple:          {Name: "grapple", Slot: SlotPDA, NonCombat: true},

	WeaponPDA:                {Name: "pda", Slot: SlotPDA, NonCombat: true, Quiet: true},
	WeaponPDAEngineerBuild:   {Name: "pda_engineer_build", Slot: SlotPDA, NonCombat: true, Quiet: true},
	WeaponPDAEngineerDestroy: {Name: "pda_engineer_destroy", Slot: SlotPDA, NonCombat: true, Quiet: true},
	WeaponPDASpy:             {Name: "pda_spy", Slot: SlotPDA, NonCombat: true, Quiet: true},
	WeaponBuilder:            {Name: "builder", Slot: SlotBuilding, NonCombat: true, Quiet: true},
	WeaponMedigun:            {Name: "medigun", Slot: SlotSecondary, NonCombat: true, Quiet: true},
	WeaponInvis:              {Name: "invis", Slot: SlotBuilding, NonCombat: true, Quiet: true},
	WeaponDispenser:          {Name: "dispenser", Slot: SlotBuilding, NonCombat: true, Quiet: true},

	WeaponSentryBullet: {Name: "sentry_bullet", Slot: SlotBuilding, HitScan: true, Damage: 16},
	WeaponSentryRocket: {Name: "sentry_rocket", Slot: SlotBuilding, Explosive: true, Damage: 100},

	WeaponRailgun:                  {Name: "railgun", Slot: SlotPrimary, HitScan: true, Damage: 80},
	WeaponSuperShotgun:             {Name: "supershotgun", Slot: SlotPrimary, HitScan: true, Damage: 90},
	WeaponEternalShotgun:           {Name: "eternalshotgun", Slot: SlotPrimary, HitScan: true, Damage: 70},
	WeaponPistolMercenary:          {Name: "pistol_mercenary", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 15, MaxRange: MercPistolAttackRange},
	WeaponRevolverMercenary:        {Name: "revolver_mercenary", Slot: SlotSecondary, HitScan: true, Damage: 40},
	WeaponGatlingGun:               {Name: "gatlinggun", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 9},
	WeaponPistolAkimbo:             {Name: "pistol_akimbo", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 15, MaxRange: MercPistolAttackRange},
	WeaponSMGMercenary:             {Name: "smg_mercenary", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 8},
	WeaponTommyGun:                 {Name: "tommygun", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 10},
	WeaponAssaultRifle:             {Name: "assaultrifle", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 10},
	WeaponPhyscannon:               {Name: "physcannon", Slot: SlotPrimary, HitScan: true, Damage: 50},
	WeaponLightningGun:             {Name: "lightning_gun", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 6, MaxRange: FlameAttackRange, DesiredRange: MeleeDesiredRange},
	WeaponGrenadeLauncherMercenary: {Name: "grenadelauncher_mercenary", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 100},
	WeaponRocketLauncherDM:         {Name: "rocketlauncher_dm", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 90, DesiredRange: RocketDesiredRange},
	WeaponSuperRocketLauncher:      {Name: "super_rocketlauncher", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 150},
	WeaponDynamiteBundle:           {Name: "dynamite_bundle", Slot: SlotSecondary, Explosive: true, Barrage: true, Damage: 120},
	WeaponGib:                      {Name: "gib", Slot: SlotSecondary, Explosive: true, Damage: 60},

	WeaponTFCKnife:            {Name: "tfc_knife", Slot: SlotMelee, Melee: true, Quiet: true, Damage: 40, DesiredRange: KnifeAttackRange},
	WeaponTFCWrench:           {Name: "tfc_wrench", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponTFCCrowbar:          {Name: "tfc_crowbar", Slot: SlotMelee, Melee: true, Damage: 65},
	WeaponTFCShotgunSB:        {Name: "tfc_shotgun_sb", Slot: SlotSecondary, HitScan: true, Barrage: true, Damage: 50},
	WeaponTFCShotgunDB:        {Name: "tfc_shotgun_db", Slot: SlotPrimary, HitScan: true, Barrage: true, Damage: 80},
	WeaponTFCRailPistol:       {Name: "tfc_railpistol", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 20},
	WeaponTFCAssaultCannon:    {Name: "tfc_assaultcannon", Slot: SlotPrimary, HitScan: true, Continuous: true, Damage: 9},
	WeaponTFCSniperRifle:      {Name: "tfc_sniper_rifle", Slot: SlotPrimary, HitScan: true, SniperRifle: true, Damage: 150},
	WeaponTFCAssaultRifle:     {Name: "tfc_assault_rifle", Slot: SlotSecondary, HitScan: true, Continuous: true, Damage: 8},
	WeaponTFCIncendiaryCannon: {Name: "tfc_incendiarycannon", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 90},
	WeaponTFCPipebombLauncher: {Name: "tfc_pipebomblauncher", Slot: SlotSecondary, Explosive: true, Barrage: true, Damage: 100},
	WeaponTFCGrenadeLauncher:  {Name: "tfc_grenadelauncher", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 100},
	WeaponTFCRPG:              {Name: "tfc_rpg", Slot: SlotPrimary, Explosive: true, Barrage: true, Damage: 90, DesiredRange: RocketDesiredRange},
}

// LookupWeapon returns the descriptor for id, or the safe default
// category when the id is not in the table.
func LookupWeapon(id WeaponID) WeaponInfo {
	if info, ok := WeaponData[id]; ok {
		return info
	}
	return unknownWeapon
}

// WeaponIDs returns every id present in WeaponData in ascending order
func WeaponIDs() []WeaponID {
	ids := make([]WeaponID, 0, len(WeaponData))
	for id := range WeaponData {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (id WeaponID) String() string {
	return LookupWeapon(id).Name
}

// IsCombatWeapon reports whether the weapon can hurt anything
func IsCombatWeapon(id WeaponID) bool {
	return !LookupWeapon(id).NonCombat
}

// IsQuietWeapon reports whether using the weapon makes no noticeable noise
func IsQuietWeapon(id WeaponID) bool {
	return LookupWeapon(id).Quiet
}

// IsHitScanWeapon reports whether the weapon hits instantly along a trace
func IsHitScanWeapon(id WeaponID) bool {
	info := LookupWeapon(id)
	return !info.NonCombat && info.HitScan
}

// IsExplosiveProjectileWeapon reports whether the weapon fires explosive projectiles
func IsExplosiveProjectileWeapon(id WeaponID) bool {
	return LookupWeapon(id).Explosive
}

// IsContinuousFireWeapon reports whether the weapon wants the trigger held down
func IsContinuousFireWeapon(id WeaponID) bool {
	info := LookupWeapon(id)
	return !info.NonCombat && info.Continuous
}

// IsBarrageAndReloadWeapon reports whether the weapon empties its clip then reloads
func IsBarrageAndReloadWeapon(id WeaponID) bool {
	return LookupWeapon(id).Barrage
}

// IsSniperRifle reports whether the weapon is a scoped long-range rifle
func IsSniperRifle(id WeaponID) bool {
	return LookupWeapon(id).SniperRifle
}

// IsMeleeWeapon reports whether the weapon is a melee weapon
func IsMeleeWeapon(id WeaponID) bool {
	return LookupWeapon(id).Melee
}

// MaxAttackRange returns the farthest distance the weapon is worth firing at
func MaxAttackRange(id WeaponID) float64 {
	info := LookupWeapon(id)
	switch {
	case info.Melee:
		return MeleeAttackRange
	case info.MaxRange > 0:
		return info.MaxRange
	case info.Explosive:
		return ExplosiveAttackRange
	case info.SniperRifle:
		return UnboundedAttackRange
	}
	return DefaultMaxAttackRange
}

// DesiredAttackRange returns the distance a bot tries to keep from its target
func DesiredAttackRange(id WeaponID) float64 {
	info := LookupWeapon(id)
	switch {
	case info.DesiredRange > 0:
		return info.DesiredRange
	case info.Melee:
		return MeleeDesiredRange
	case info.SniperRifle:
		return UnboundedAttackRange
	}
	return DefaultDesiredRange
}

// Weapon is one weapon instance carried by a player
type Weapon struct {
	ID         WeaponID `json:"id"`
	Slot       int      `json:"slot"`
	Position   int      `json:"position"`
	Clip       int      `json:"clip"`
	Reserve    int      `json:"reserve"`
	MaxReserve int      `json:"maxReserve"`
}

// NewWeapon creates a weapon in its table slot with the given ammo
func NewWeapon(id WeaponID, clip, reserve int) *Weapon {
	return &Weapon{
		ID:         id,
		Slot:       LookupWeapon(id).Slot,
		Clip:       clip,
		Reserve:    reserve,
		MaxReserve: reserve,
	}
}

// Info returns the weapon's descriptor
func (w *Weapon) Info() WeaponInfo {
	return LookupWeapon(w.ID)
}

// IsMelee reports whether the weapon is a melee weapon
func (w *Weapon) IsMelee() bool {
	return w.Info().Melee
}
