package server

import (
	"time"

	"github.com/lab1702/ofbot/game"
)

// capturesToWin is how many flag captures end a capture the flag round
const capturesToWin = 3

// updateObjectives advances the active game mode and ends or restarts rounds
func (a *Arena) updateObjectives(dt time.Duration) {
	if a.winner != game.TeamUnassigned {
		if a.now >= a.restartAt {
			a.resetRound()
		}
		return
	}

	switch a.gameType {
	case game.GameTypeCP:
		a.updatePoints(dt)
	case game.GameTypeCTF:
		a.updateFlags()
	case game.GameTypePayload:
		a.updateCart(dt)
	}

	if a.winner == game.TeamUnassigned && a.now >= a.roundEnd {
		a.endRound(a.timeoutWinner())
	}
}

func (a *Arena) updatePoints(dt time.Duration) {
	for _, cp := range a.points {
		red := cp.area.PlayerCount(game.TeamRed)
		blue := cp.area.PlayerCount(game.TeamBlue)

		var team game.Team
		var count int
		switch {
		case red > 0 && blue > 0:
			cp.lastContested = a.now
			continue
		case red > 0:
			team, count = game.TeamRed, red
		case blue > 0:
			team, count = game.TeamBlue, blue
		}

		if count == 0 || team == cp.owner {
			cp.progress = max(cp.progress-dt, 0)
			if cp.progress == 0 {
				cp.capturer = game.TeamUnassigned
			}
			continue
		}

		if cp.capturer != team {
			cp.capturer = team
			cp.progress = 0
			a.emit(game.Event{Kind: game.EventPointStartCapture, ControlPoint: cp.index, Team: team})
		}
		cp.lastContested = a.now
		cp.progress += time.Duration(count) * dt
		if cp.progress >= CaptureTime {
			cp.owner = team
			cp.capturer = game.TeamUnassigned
			cp.progress = 0
			a.emit(game.Event{Kind: game.EventPointCaptured, ControlPoint: cp.index, Team: team})
		}
	}

	if len(a.points) == 0 {
		return
	}
	owner := a.points[0].owner
	for _, cp := range a.points[1:] {
		if cp.owner != owner {
			return
		}
	}
	if owner == game.TeamRed || owner == game.TeamBlue {
		a.endRound(owner)
	}
}

func (a *Arena) updateFlags() {
	for _, p := range a.players {
		if p == nil || !p.alive {
			continue
		}

		if p.carrying != nil {
			zone := a.zoneOf(p.team)
			if zone != nil && zone.pos.DistToSqr(p.pos) <= FlagGrabDist*FlagGrabDist {
				p.carrying.returnHome()
				p.carrying = nil
				a.captures[p.team.Index()]++
				a.emit(game.Event{Kind: game.EventFlagEvent, FlagEvent: game.FlagEventCaptured, Team: p.team, Player: p.handle})
				if a.captures[p.team.Index()] >= capturesToWin {
					a.endRound(p.team)
					return
				}
			}
			continue
		}

		for _, f := range a.flags {
			if f.team == p.team || f.IsStolen() {
				continue
			}
			if f.pos.DistToSqr(p.pos) <= FlagGrabDist*FlagGrabDist {
				f.carrier = p.handle
				p.carrying = f
				p.dropDisguise()
				a.emit(game.Event{Kind: game.EventFlagEvent, FlagEvent: game.FlagEventPickUp, Team: p.team, Player: p.handle})
				break
			}
		}
	}
}

func (a *Arena) zoneOf(team game.Team) *CaptureZone {
	for _, z := range a.zones {
		if z.team == team {
			return z
		}
	}
	return nil
}

// updateCart moves the payload while red pushes it and blue is not blocking
func (a *Arena) updateCart(dt time.Duration) {
	pushers, blockers := 0, 0
	for _, p := range a.players {
		if p == nil || !p.alive || p.pos.DistToSqr(a.cart.pos) > CartPushRange*CartPushRange {
			continue
		}
		switch p.team {
		case game.TeamRed:
			pushers++
		case game.TeamBlue:
			blockers++
		}
	}
	if pushers == 0 || blockers > 0 {
		return
	}
	a.cart.pos.X = min(a.cart.pos.X+CartSpeed*dt.Seconds(), a.cart.goalX)
	if a.cart.pos.X >= a.cart.goalX {
		a.endRound(game.TeamRed)
	}
}

// timeoutWinner decides a round that ran out of time
func (a *Arena) timeoutWinner() game.Team {
	switch a.gameType {
	case game.GameTypePayload:
		return game.TeamBlue
	case game.GameTypeCP:
		red, blue := 0, 0
		for _, cp := range a.points {
			switch cp.owner {
			case game.TeamRed:
				red++
			case game.TeamBlue:
				blue++
			}
		}
		if red > blue {
			return game.TeamRed
		} else if blue > red {
			return game.TeamBlue
		}
	case game.GameTypeCTF:
		red, blue := a.captures[game.TeamRed.Index()], a.captures[game.TeamBlue.Index()]
		if red > blue {
			return game.TeamRed
		} else if blue > red {
			return game.TeamBlue
		}
	}
	return game.TeamSpectator
}

// endRound declares team the winner. A stalemate is reported as the
// spectator team so no bot treats it as a win.
func (a *Arena) endRound(team game.Team) {
	a.winner = team
	a.restartAt = a.now + RoundRestart
	a.emit(game.Event{Kind: game.EventRoundWin, Team: team, FullRound: true})
}

// resetRound restores every objective and sends everyone back to spawn
func (a *Arena) resetRound() {
	for _, cp := range a.points {
		cp.reset()
	}
	for _, f := range a.flags {
		f.returnHome()
	}
	if a.cart != nil {
		a.cart.pos = a.cart.start
	}
	a.captures = [game.TeamCount]int{}
	a.winner = game.TeamUnassigned
	a.roundEnd = a.now + RoundDuration

	for _, p := range a.players {
		if p == nil {
			continue
		}
		if p.alive {
			p.carrying = nil
			a.kill(p)
		}
		p.respawnAt = a.now
	}
}
