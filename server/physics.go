package server

import (
	"time"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/game"
)

// movePlayers walks every living player along its route
func (a *Arena) movePlayers(dt time.Duration) {
	step := RunSpeed * dt.Seconds()
	for _, p := range a.players {
		if p == nil || !p.alive {
			continue
		}
		if len(p.route) == 0 {
			p.vel = game.Vector{}
			continue
		}

		from := p.pos
		target := p.route[0].Center
		delta := target.Sub(p.pos)
		dir, dist := delta.Normalized()
		if dist <= step || dist <= WaypointSnap {
			p.pos = target
			p.route = p.route[1:]
		} else {
			p.pos = p.pos.Add(dir.Scale(step))
		}
		if dt > 0 {
			p.vel = p.pos.Sub(from).Scale(1 / dt.Seconds())
		}

		if area := a.mesh.NearestArea(p.pos); area != nil {
			p.area = area
		}
		if p.carrying != nil {
			p.carrying.pos = p.pos
		}
	}
}

// updateOccupancy recounts players per area and reindexes the spatial grid
func (a *Arena) updateOccupancy() {
	a.mesh.ResetOccupancy()
	active := a.activePlayers()
	for _, p := range active {
		if p.alive && p.area != nil {
			p.area.SetPlayerCount(p.team, p.area.PlayerCount(p.team)+1)
		}
	}
	a.grid.IndexPlayers(active)
}

// touching returns the living players bumping into p
func (a *Arena) touching(p *Player) []*Player {
	var out []*Player
	for _, h := range a.grid.GetNearby(p.pos) {
		other := a.player(h)
		if other == nil || other == p || !other.alive {
			continue
		}
		if other.pos.DistToSqr(p.pos) <= TouchRadius*TouchRadius {
			out = append(out, other)
		}
	}
	return out
}

// visibleTo lists what p can see this tick: uncloaked players and sentries
// in range with nothing in between
func (a *Arena) visibleTo(p *Player) []bot.Entity {
	eye := p.EyePosition()
	var out []bot.Entity
	for _, h := range a.grid.GetWithin(p.pos, VisionRange) {
		other := a.player(h)
		if other == nil || other == p || !other.alive || other.cloaked {
			continue
		}
		if other.pos.DistToSqr(p.pos) > VisionRange*VisionRange {
			continue
		}
		if !a.TraceLine(eye, other.EyePosition()).Hit {
			out = append(out, other)
		}
	}
	for _, s := range a.sentries {
		if s.pos.DistToSqr(p.pos) > VisionRange*VisionRange {
			continue
		}
		if !a.TraceLine(eye, s.pos.Add(game.Vec(0, 0, 32))).Hit {
			out = append(out, s)
		}
	}
	return out
}

// damage hurts victim and reports whether it died
func (a *Arena) damage(victim *Player, amount int) bool {
	if !victim.alive {
		return false
	}
	victim.health -= amount
	if victim.area != nil {
		victim.area.CombatIntensity += CombatPerDeath / 10
	}
	if victim.health > 0 {
		return false
	}
	a.kill(victim)
	return true
}

// kill takes p out of play until its respawn time
func (a *Arena) kill(p *Player) {
	p.alive = false
	p.health = 0
	p.vel = game.Vector{}
	p.route = nil
	p.goal = nil
	p.respawnAt = a.now + RespawnDelay
	if p.area != nil {
		p.area.CombatIntensity += CombatPerDeath
	}
	if p.carrying != nil {
		p.carrying.returnHome()
		a.emit(game.Event{Kind: game.EventFlagEvent, FlagEvent: game.FlagEventReturned, Team: p.carrying.team})
		p.carrying = nil
	}
}

// respawn puts p back at its team's spawn as class
func (a *Arena) respawn(p *Player, class game.Class) {
	p.pos, p.area = a.spawnPoint(p.team)
	p.class = class
	p.health = MaxHealth
	p.alive = true
	p.cloaked = false
	p.dropDisguise()
	p.route = nil
	p.goal = nil
	p.objective = -1
	p.forward = game.Vec(1, 0, 0)
	if p.team == game.TeamBlue {
		p.forward = game.Vec(-1, 0, 0)
	}
	p.equip()
}
