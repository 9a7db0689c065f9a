package game

// EventKind names a game event delivered to bots
type EventKind string

const (
	EventPointStartCapture EventKind = "teamplay_point_startcapture"
	EventPointCaptured     EventKind = "teamplay_point_captured"
	EventRoundWin          EventKind = "teamplay_round_win"
	EventFlagEvent         EventKind = "teamplay_flag_event"
)

// FlagEventType is the kind of flag interaction carried by EventFlagEvent
type FlagEventType int

const (
	FlagEventPickUp FlagEventType = iota + 1
	FlagEventCaptured
	FlagEventDefended
	FlagEventDropped
	FlagEventReturned
)

// Event is one game event. Fields that do not apply to Kind are zero.
type Event struct {
	Kind EventKind `json:"kind"`

	// ControlPoint is the point index for capture events
	ControlPoint int `json:"cp,omitempty"`

	// Team is the capturing team or the round winner
	Team Team `json:"team,omitempty"`

	FullRound bool          `json:"fullRound,omitempty"`
	FlagEvent FlagEventType `json:"flagEvent,omitempty"`
	Player    Handle        `json:"player,omitempty"`
}
