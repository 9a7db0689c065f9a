package server

import (
	"math"
	"math/rand"

	"github.com/lab1702/ofbot/game"
)

// aimSpreadDeg is the largest random deviation, per skill tier, a bot adds
// to its aim
var aimSpreadDeg = [...]float64{6, 4, 2, 0}

// leadTarget returns where a projectile fired from shooter at speed meets a
// target at pos moving with vel. Speeds are in world units per second.
// ok is false when the target outruns the projectile; the returned point is
// then pos itself.
func leadTarget(shooter, pos, vel game.Vector, speed float64) (game.Vector, bool) {
	if speed <= 0 {
		return pos, false
	}

	rel := pos.Sub(shooter)
	distSq := rel.LengthSqr()
	if distSq < 1e-9 {
		return pos, true
	}
	velSq := vel.LengthSqr()
	if velSq < 1e-9 {
		return pos, true
	}

	// |rel + vel*t| = speed*t  =>  a*t² + b*t + c = 0
	a := velSq - speed*speed
	b := 2 * rel.Dot(vel)
	c := distSq

	var t float64
	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return pos, false
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return pos, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b + sq) / (2 * a)
		t2 := (-b - sq) / (2 * a)
		switch {
		case t1 > 0 && t2 > 0:
			t = math.Min(t1, t2)
		case t1 > 0:
			t = t1
		default:
			t = t2
		}
	}
	if t <= 0 {
		return pos, false
	}
	return pos.Add(vel.Scale(t)), true
}

// spreadAim turns the aim point around the shooter's vertical axis by a
// random angle within the tier's spread
func spreadAim(rng *rand.Rand, skill game.Difficulty, shooter, point game.Vector) game.Vector {
	if !skill.Valid() || aimSpreadDeg[skill] == 0 {
		return point
	}
	deg := (rng.Float64()*2 - 1) * aimSpreadDeg[skill]
	rad := deg * math.Pi / 180

	sin, cos := math.Sincos(rad)
	rel := point.Sub(shooter)
	return shooter.Add(game.Vec(rel.X*cos-rel.Y*sin, rel.X*sin+rel.Y*cos, rel.Z))
}

// aimPoint is where p shoots to hit target with its active weapon
func (s *Server) aimPoint(p, target *Player) game.Vector {
	eye := p.EyePosition()
	point := target.EyePosition()
	if w := p.active; w != nil && !w.Info().HitScan && !w.Info().Melee {
		if lead, ok := leadTarget(eye, point, target.vel, ProjectileSpeed); ok {
			point = lead
		}
	}
	return spreadAim(s.rng, p.bot.Skill(), eye, point)
}
