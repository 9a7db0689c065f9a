package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/lab1702/ofbot/game"
)

// BotSnapshot is what the inspector shows for one bot
type BotSnapshot struct {
	Handle      game.Handle `json:"handle"`
	Name        string      `json:"name"`
	Team        string      `json:"team"`
	Class       string      `json:"class"`
	Alive       bool        `json:"alive"`
	Health      int         `json:"health"`
	Position    game.Vector `json:"pos"`
	Area        int         `json:"area"`
	Skill       string      `json:"skill"`
	Weapon      string      `json:"weapon,omitempty"`
	Threat      game.Handle `json:"threat,omitempty"`
	Objective   int         `json:"objective"`
	Route       string      `json:"route,omitempty"`
	RouteLength int         `json:"routeLength"`
	Squad       string      `json:"squad,omitempty"`
	SquadLeader bool        `json:"squadLeader,omitempty"`
	Disguised   bool        `json:"disguised,omitempty"`
	KnownSpies  int         `json:"knownSpies,omitempty"`
	SniperSpots int         `json:"sniperSpots,omitempty"`
}

// PointSnapshot is the state of one control point
type PointSnapshot struct {
	Index    int     `json:"index"`
	Owner    string  `json:"owner"`
	Capturer string  `json:"capturer,omitempty"`
	Progress float64 `json:"progress"`
}

// ArenaSnapshot is one frame of the inspector feed
type ArenaSnapshot struct {
	Time     float64         `json:"time"`
	GameType string          `json:"gameType"`
	Winner   string          `json:"winner,omitempty"`
	Points   []PointSnapshot `json:"points,omitempty"`
	Bots     []BotSnapshot   `json:"bots"`
}

// snapshot captures the arena. The caller holds simMu.
func (s *Server) snapshot() ArenaSnapshot {
	a := s.arena
	snap := ArenaSnapshot{
		Time:     a.now.Seconds(),
		GameType: a.gameType.String(),
		Bots:     []BotSnapshot{},
	}
	if a.winner != game.TeamUnassigned {
		snap.Winner = a.winner.String()
	}

	for _, cp := range a.points {
		ps := PointSnapshot{
			Index:    cp.index,
			Owner:    cp.owner.String(),
			Progress: cp.progress.Seconds() / CaptureTime.Seconds(),
		}
		if cp.capturer != game.TeamUnassigned {
			ps.Capturer = cp.capturer.String()
		}
		snap.Points = append(snap.Points, ps)
	}

	for _, p := range a.activePlayers() {
		b := p.bot
		bs := BotSnapshot{
			Handle:      p.handle,
			Name:        p.name,
			Team:        p.team.String(),
			Class:       p.class.String(),
			Alive:       p.alive,
			Health:      p.health,
			Position:    p.pos,
			Skill:       b.Skill().String(),
			Objective:   p.objective,
			RouteLength: len(p.route),
			Disguised:   p.disguised,
			KnownSpies:  b.KnownSpyCount(),
			SniperSpots: len(b.SniperSpots()),
		}
		if p.area != nil {
			bs.Area = p.area.ID
		}
		if p.active != nil {
			bs.Weapon = p.active.ID.String()
		}
		if threat := b.Vision().GetPrimaryKnownThreat(false); threat != nil {
			bs.Threat = threat.Handle()
		}
		if p.goal != nil {
			bs.Route = p.routeType.String()
		}
		if sq := b.Squad(); sq != nil {
			bs.Squad = sq.ID
			bs.SquadLeader = sq.IsLeader(b)
		}
		snap.Bots = append(snap.Bots, bs)
	}
	return snap
}

// HandleBotStats returns the bot population and each bot's current decisions
func (s *Server) HandleBotStats(w http.ResponseWriter, r *http.Request) {
	// Enable CORS for cross-origin requests
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.simMu.Lock()
	snap := s.snapshot()
	difficulty := s.tuning.Skill().String()
	s.simMu.Unlock()

	teamCounts := map[string]int{}
	for _, b := range snap.Bots {
		teamCounts[b.Team]++
	}

	response := map[string]any{
		"total":      len(snap.Bots),
		"teams":      teamCounts,
		"difficulty": difficulty,
		"arena":      snap,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Could not encode bot stats: %v", err)
	}
}
