package server

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/game"
)

// BotNames for generating random bot names
var BotNames = []string{
	"Chell", "Wheatley", "Atlas", "P-Body", "Barney", "Alyx",
	"Gordon", "Kleiner", "Mossman", "Breen", "Vortigaunt", "Odessa",
	"Griggs", "Sheckley", "Cubbage", "Magnusson", "Grigori", "Lamarr",
}

// Population errors
var (
	ErrArenaFull  = errors.New("arena is full")
	ErrNoSuchBot  = errors.New("no such bot")
	ErrWrongTeam  = errors.New("team cannot play this game type")
	ErrWrongClass = errors.New("class cannot play this game type")
)

// teamClasses are the classes a random pick chooses from in team modes
var teamClasses = []game.Class{
	game.ClassScout, game.ClassSniper, game.ClassSoldier, game.ClassDemoman, game.ClassMedic,
	game.ClassHeavy, game.ClassPyro, game.ClassSpy, game.ClassEngineer,
}

// populate adds the configured number of bots to each side
func (s *Server) populate() {
	teams := []game.Team{game.TeamRed, game.TeamBlue}
	if s.arena.IsFreeRoam() {
		teams = []game.Team{game.TeamMercenary, game.TeamMercenary}
	}

	s.simMu.Lock()
	defer s.simMu.Unlock()
	for i := 0; i < s.tuning.Match.BotsPerTeam; i++ {
		for _, team := range teams {
			if _, err := s.addBotLocked(team, game.ClassUndefined); err != nil {
				log.Printf("Could not add bot to %s: %v", team, err)
				return
			}
		}
	}
}

// AddBot adds a new bot to team. ClassUndefined picks the forced class from
// the tuning file, or a random one.
func (s *Server) AddBot(team game.Team, class game.Class) (game.Handle, error) {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.addBotLocked(team, class)
}

func (s *Server) addBotLocked(team game.Team, class game.Class) (game.Handle, error) {
	a := s.arena
	if a.IsFreeRoam() != (team == game.TeamMercenary) || (team != game.TeamMercenary && team != game.TeamRed && team != game.TeamBlue) {
		return game.NoHandle, fmt.Errorf("%w: %s in %s", ErrWrongTeam, team, a.gameType)
	}
	if class == game.ClassUndefined {
		class = s.pickClass(team)
	}
	if _, ok := loadouts[class]; !ok || (class == game.ClassMercenary) != a.IsFreeRoam() {
		return game.NoHandle, fmt.Errorf("%w: %s in %s", ErrWrongClass, class, a.gameType)
	}

	// Find a free player slot
	slot := -1
	for i, p := range a.players {
		if p == nil {
			slot = i
			break
		}
	}
	if slot == -1 || len(a.activePlayers()) >= MaxBots {
		return game.NoHandle, ErrArenaFull
	}

	name := BotNames[s.rng.Intn(len(BotNames))]
	if s.tuning.PrefixNameWithDifficulty {
		name = fmt.Sprintf("%s %s", s.tuning.Skill(), name)
	}

	p := &Player{
		handle: game.Handle(slot + 1),
		name:   name,
		team:   team,
	}
	env := bot.Env{
		World:      a,
		Locomotion: arenaLoco{team: team},
		Tracer:     a,
		Speaker:    s,
	}
	p.bot = bot.New(p, env, s.tuning, s.rng.Int63())
	p.bot.SetIntention(&botIntention{server: s, player: p})
	a.players[slot] = p

	s.spawn(p, class)

	log.Printf("Bot %s joined %s as %s", p.name, team, class)
	s.publish(ServerMessage{
		Type: MsgTypeMessage,
		Data: map[string]any{
			"text": fmt.Sprintf("%s has joined the game", p.name),
			"type": "info",
			"from": p.handle,
		},
	})
	return p.handle, nil
}

// KickBot removes a bot from the arena
func (s *Server) KickBot(h game.Handle) error {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.kickBotLocked(h)
}

func (s *Server) kickBotLocked(h game.Handle) error {
	a := s.arena
	p := a.player(h)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchBot, h)
	}

	p.bot.Remove()
	if p.carrying != nil {
		p.carrying.returnHome()
		p.carrying = nil
	}
	a.players[int(h)-1] = nil

	// The slot, and so the handle, is reused by the next bot to join
	for _, other := range a.activePlayers() {
		other.bot.ForgetPlayer(h)
	}

	log.Printf("Bot %s left the game", p.name)
	s.publish(ServerMessage{
		Type: MsgTypeMessage,
		Data: map[string]any{
			"text": fmt.Sprintf("%s has left the game", p.name),
			"type": "info",
			"from": h,
		},
	})
	return nil
}

// SetDifficulty changes every bot's skill tier. Out of range tiers are
// rejected and the previous tier stays in force.
func (s *Server) SetDifficulty(d game.Difficulty) bool {
	if !d.Valid() {
		log.Printf("Ignoring bot difficulty change: value out of range [0,3]: %d", d)
		return false
	}

	s.simMu.Lock()
	defer s.simMu.Unlock()

	s.tuning.Difficulty = d.String()
	for _, p := range s.arena.activePlayers() {
		p.bot.SetTuning(s.tuning)
		p.bot.SetDifficulty(d)
	}
	log.Printf("Bot difficulty set to %s", d)
	return true
}

// pickClass returns the forced class, or a random one for the team
func (s *Server) pickClass(team game.Team) game.Class {
	if team == game.TeamMercenary {
		return game.ClassMercenary
	}
	if c, ok := s.tuning.ForcedClass(); ok && c != game.ClassMercenary {
		return c
	}
	return teamClasses[s.rng.Intn(len(teamClasses))]
}

// spawn respawns p as class and resets its bot for the new life
func (s *Server) spawn(p *Player, class game.Class) {
	s.arena.respawn(p, class)
	p.bot.Spawn()
	if class == game.ClassSpy && !s.arena.IsFreeRoam() {
		p.bot.DisguiseAsEnemy()
	}
	logBot("%s spawned as %s", p.name, class)
}

// respawnPlayers brings back every dead player whose timer ran out
func (s *Server) respawnPlayers() {
	for _, p := range s.arena.players {
		if p == nil || p.alive || s.arena.now < p.respawnAt {
			continue
		}

		class := p.class
		switch want := p.bot.DesiredClass(); want {
		case "":
		case "random":
			class = s.pickClass(p.team)
		default:
			if c, ok := game.ParseClass(want); ok {
				class = c
			}
		}
		s.spawn(p, class)
	}
}

// updateGame advances the simulation by one tick
func (s *Server) updateGame() {
	s.simMu.Lock()
	defer s.simMu.Unlock()

	a := s.arena
	dt := game.UpdateInterval
	a.now += dt
	s.ticks++

	s.respawnPlayers()
	a.movePlayers(dt)
	a.updateOccupancy()
	if a.now%time.Second < dt {
		a.mesh.DecayCombat(CombatDecay)
	}

	s.updateBots()
	s.resolveCombat()
	a.updateObjectives(dt)
	s.dispatchEvents()

	if a.now >= s.nextReplan {
		s.nextReplan = a.now + RouteReplanInterval
		s.formSquads()
		if err := s.planRoutes(s.ctx); err != nil {
			logBot("route planning stopped: %v", err)
		}
	}
}

// updateBots feeds every living bot what it sees and touches this tick
func (s *Server) updateBots() {
	a := s.arena
	for _, p := range a.players {
		if p == nil || !p.alive {
			continue
		}
		p.bot.Update(a.visibleTo(p))
		for _, other := range a.touching(p) {
			p.bot.Touch(other)
		}
	}
}

// resolveCombat lets each bot shoot at its visible primary threat
func (s *Server) resolveCombat() {
	a := s.arena
	for _, p := range a.players {
		if p == nil || !p.alive || a.now < p.nextShot {
			continue
		}
		p.aiming = false

		known := p.bot.Vision().GetPrimaryKnownThreat(true)
		if known == nil {
			continue
		}
		target, ok := known.Entity().(*Player)
		if !ok || !target.alive {
			continue
		}
		if p.pos.DistTo(target.pos) > p.bot.GetMaxAttackRange() || !p.bot.IsLineOfFireClearTo(target) {
			continue
		}

		p.AimHeadTowards(s.aimPoint(p, target), "Shooting")
		if !p.fire() {
			continue
		}
		p.aiming = true
		p.nextShot = a.now + FireInterval
		if p.disguised {
			p.dropDisguise()
		}

		if a.damage(target, p.active.Info().Damage) {
			s.onKilled(target, p)
		}
	}
}

func (s *Server) onKilled(victim, killer *Player) {
	victim.bot.Killed()
	logBot("%s killed %s", killer.name, victim.name)
	s.publish(ServerMessage{
		Type: MsgTypeMessage,
		Data: map[string]any{
			"text": fmt.Sprintf("%s killed %s", killer.name, victim.name),
			"type": "kill",
			"from": killer.handle,
		},
	})

	if victim.bot.HasAttribute(game.AttrRemoveOnDeath) {
		if err := s.kickBotLocked(victim.handle); err != nil {
			log.Printf("Could not remove %s: %v", victim.name, err)
		}
	}
}

// dispatchEvents delivers this tick's game events to every bot and client
func (s *Server) dispatchEvents() {
	for _, ev := range s.arena.drainEvents() {
		logBot("event %s cp=%d team=%s", ev.Kind, ev.ControlPoint, ev.Team)
		for _, p := range s.arena.activePlayers() {
			p.bot.OnGameEvent(ev)
		}
		s.publish(ServerMessage{Type: MsgTypeEvent, Data: ev})
	}
}

// Speak implements bot.Speaker by relaying the concept to the feed
func (s *Server) Speak(who game.Handle, concept game.Concept) {
	name := fmt.Sprintf("player %d", who)
	if p := s.arena.player(who); p != nil {
		name = p.name
	}
	logBot("%s speaks concept %d", name, concept)
	s.publish(ServerMessage{
		Type: MsgTypeSpeech,
		Data: map[string]any{"from": who, "concept": int(concept)},
	})
}

// formSquads groups the loose fighters of each team into squads
func (s *Server) formSquads() {
	if s.arena.IsFreeRoam() {
		return
	}
	for _, team := range []game.Team{game.TeamRed, game.TeamBlue} {
		var loose []*bot.Bot
		for _, p := range s.arena.players {
			if p == nil || !p.alive || p.team != team || p.bot.Squad() != nil {
				continue
			}
			switch p.class {
			case game.ClassSniper, game.ClassSpy, game.ClassEngineer:
				continue
			}
			loose = append(loose, p.bot)
		}

		for len(loose) >= 2 {
			n := min(SquadSize, len(loose))
			squad := bot.NewSquad()
			for _, b := range loose[:n] {
				b.JoinSquad(squad)
			}
			logBot("%s formed squad %s with %d members", team, squad.ID, n)
			loose = loose[n:]
		}
	}
}

// botIntention replans a bot's route when the objective changes under it
type botIntention struct {
	server *Server
	player *Player
}

func (i *botIntention) replan() {
	i.player.route = nil
	i.server.nextReplan = i.server.arena.now
}

func (i *botIntention) OnTerritoryContested(cp int) {
	logBot("%s: point %d is contested", i.player.name, cp)
}

func (i *botIntention) OnTerritoryCaptured(cp int) {
	logBot("%s: we captured point %d", i.player.name, cp)
	i.replan()
}

func (i *botIntention) OnTerritoryLost(cp int) {
	logBot("%s: we lost point %d", i.player.name, cp)
	i.replan()
}

func (i *botIntention) OnPickUp() {
	logBot("%s picked up the flag", i.player.name)
	i.replan()
}

func (i *botIntention) OnWin()  { logBot("%s won the round", i.player.name) }
func (i *botIntention) OnLose() { logBot("%s lost the round", i.player.name) }
