package bot

import (
	"slices"

	"github.com/google/uuid"
)

// Squad is a small group of bots following one leader. The first bot to
// join leads. A squad whose leader left is headless and its remaining
// members drop out on their next physics step.
// Squads are only touched from the simulation goroutine.
type Squad struct {
	ID      string
	members []*Bot
	leader  *Bot
}

// NewSquad creates an empty squad
func NewSquad() *Squad {
	return &Squad{ID: uuid.NewString()}
}

// Join adds b to the member list. Bots should call Bot.JoinSquad instead so
// both sides of the link stay in step.
func (s *Squad) Join(b *Bot) {
	if slices.Contains(s.members, b) {
		return
	}
	if s.leader == nil && len(s.members) == 0 {
		s.leader = b
	}
	s.members = append(s.members, b)
}

// Leave removes b from the member list
func (s *Squad) Leave(b *Bot) {
	i := slices.Index(s.members, b)
	if i < 0 {
		return
	}
	s.members = slices.Delete(s.members, i, i+1)

	if s.leader == b {
		s.leader = nil
	}
}

func (s *Squad) Size() int            { return len(s.members) }
func (s *Squad) Leader() *Bot         { return s.leader }
func (s *Squad) IsLeader(b *Bot) bool { return b != nil && s.leader == b }

// Members returns a copy of the member list in join order
func (s *Squad) Members() []*Bot {
	return slices.Clone(s.members)
}

// JoinSquad links this bot and s in both directions, leaving any previous squad
func (b *Bot) JoinSquad(s *Squad) {
	if s == nil || b.squad == s {
		return
	}
	b.LeaveSquad()

	s.Join(b)
	b.squad = s
	logSquad("bot %d joined squad %s (%d members)", b.Handle(), s.ID, s.Size())
}

// LeaveSquad undoes JoinSquad. It is a no-op outside a squad.
func (b *Bot) LeaveSquad() {
	if b.squad == nil {
		return
	}
	s := b.squad
	s.Leave(b)
	b.squad = nil
	logSquad("bot %d left squad %s (%d members)", b.Handle(), s.ID, s.Size())
}

// Squad returns the bot's squad, or nil
func (b *Bot) Squad() *Squad {
	return b.squad
}

// IsSquadmate reports whether c is a bot sharing this bot's squad
func (b *Bot) IsSquadmate(c Character) bool {
	if b.squad == nil || c == nil {
		return false
	}
	other, ok := c.AsBot()
	return ok && other.squad == b.squad
}
