package server

import (
	"time"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// Player is one body in the demo arena. Every player is driven by a bot.
type Player struct {
	handle game.Handle
	name   string
	team   game.Team
	class  game.Class

	pos     game.Vector
	vel     game.Vector
	forward game.Vector
	area    *nav.Area
	health  int
	alive   bool

	cloaked       bool
	disguised     bool
	disguiseTeam  game.Team
	disguiseClass game.Class

	weapons []*game.Weapon
	active  *game.Weapon
	metal   int
	aiming  bool
	aimAt   game.Vector

	bot       *bot.Bot
	route     []*nav.Area
	routeType bot.RouteType
	goal      *nav.Area
	objective int
	nextShot  time.Duration
	respawnAt time.Duration
	carrying  *Flag
}

func (p *Player) Handle() game.Handle        { return p.handle }
func (p *Player) Position() game.Vector      { return p.pos }
func (p *Player) Team() game.Team            { return p.team }
func (p *Player) IsAlive() bool              { return p.alive }
func (p *Player) Class() game.Class          { return p.class }
func (p *Player) EyeForward() game.Vector    { return p.forward }
func (p *Player) IsCloaked() bool            { return p.cloaked }
func (p *Player) IsDisguised() bool          { return p.disguised }
func (p *Player) ActiveWeapon() *game.Weapon { return p.active }
func (p *Player) LastKnownArea() *nav.Area   { return p.area }
func (p *Player) Weapons() []*game.Weapon    { return p.weapons }
func (p *Player) Metal() int                 { return p.metal }
func (p *Player) ModelScale() float64        { return 1 }
func (p *Player) IsAiming() bool             { return p.aiming }
func (p *Player) Name() string               { return p.name }

func (p *Player) EyePosition() game.Vector {
	return p.pos.Add(game.Vec(0, 0, game.HumanHeight-8))
}

func (p *Player) AsBot() (*bot.Bot, bool) {
	return p.bot, p.bot != nil
}

// SwitchWeapon makes w active if the player carries it
func (p *Player) SwitchWeapon(w *game.Weapon) bool {
	if w == nil || w == p.active {
		return false
	}
	for _, have := range p.weapons {
		if have == w {
			p.active = w
			p.aiming = false
			return true
		}
	}
	return false
}

// AimHeadTowards turns the player's view toward target
func (p *Player) AimHeadTowards(target game.Vector, reason string) {
	dir, length := target.Sub(p.EyePosition()).Normalized()
	if length == 0 {
		return
	}
	p.forward = dir
	p.aimAt = target
}

// Disguise makes the player look like a member of team
func (p *Player) Disguise(team game.Team, class game.Class) {
	p.disguised = true
	p.disguiseTeam = team
	p.disguiseClass = class
}

func (p *Player) dropDisguise() {
	p.disguised = false
	p.disguiseTeam = game.TeamUnassigned
	p.disguiseClass = game.ClassUndefined
}

// loadouts lists the weapons each class spawns with, primary first
var loadouts = map[game.Class][]game.WeaponID{
	game.ClassScout:     {game.WeaponScattergun, game.WeaponPistolScout, game.WeaponBat},
	game.ClassSniper:    {game.WeaponSniperRifle, game.WeaponSMG, game.WeaponClub},
	game.ClassSoldier:   {game.WeaponRocketLauncher, game.WeaponShotgun, game.WeaponShovel},
	game.ClassDemoman:   {game.WeaponGrenadeLauncher, game.WeaponPipebombLauncher, game.WeaponBottle},
	game.ClassMedic:     {game.WeaponSyringeGun, game.WeaponMedigun, game.WeaponBonesaw},
	game.ClassHeavy:     {game.WeaponMinigun, game.WeaponShotgun, game.WeaponFists},
	game.ClassPyro:      {game.WeaponFlamethrower, game.WeaponShotgun, game.WeaponFireAxe},
	game.ClassSpy:       {game.WeaponRevolver, game.WeaponKnife, game.WeaponPDASpy},
	game.ClassEngineer:  {game.WeaponShotgun, game.WeaponPistol, game.WeaponWrench, game.WeaponPDAEngineerBuild},
	game.ClassMercenary: {game.WeaponSuperShotgun, game.WeaponPistolMercenary, game.WeaponCrowbar},
}

// equip hands out the class loadout with full ammo and arms the first weapon
func (p *Player) equip() {
	p.weapons = p.weapons[:0]
	for _, id := range loadouts[p.class] {
		info := game.LookupWeapon(id)
		clip, reserve := 0, 0
		if !info.Melee && !info.NonCombat {
			clip, reserve = 8, 32
		}
		w := game.NewWeapon(id, clip, reserve)
		for _, have := range p.weapons {
			if have.Slot == w.Slot {
				w.Position++
			}
		}
		p.weapons = append(p.weapons, w)
	}
	p.active = nil
	if len(p.weapons) > 0 {
		p.active = p.weapons[0]
	}
	p.metal = 0
	if p.class == game.ClassEngineer {
		p.metal = 200
	}
}

// fire spends one round of the active weapon. Empty clips reload from the
// reserve. Returns false when there was nothing to shoot.
func (p *Player) fire() bool {
	w := p.active
	if w == nil {
		return false
	}
	info := w.Info()
	if info.NonCombat || info.Damage <= 0 {
		return false
	}
	if info.Melee {
		return true
	}
	if w.Clip == 0 {
		if w.Reserve == 0 {
			return false
		}
		n := min(8, w.Reserve)
		w.Clip, w.Reserve = n, w.Reserve-n
	}
	w.Clip--
	return true
}
