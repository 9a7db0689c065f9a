package server

import (
	"time"

	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/nav"
)

// ControlPoint is a capturable point standing on one nav area
type ControlPoint struct {
	handle        game.Handle
	index         int
	pos           game.Vector
	area          *nav.Area
	owner         game.Team
	startOwner    game.Team
	capturer      game.Team
	progress      time.Duration
	lastContested time.Duration
}

func (c *ControlPoint) Handle() game.Handle   { return c.handle }
func (c *ControlPoint) Position() game.Vector { return c.pos }
func (c *ControlPoint) Team() game.Team       { return c.owner }
func (c *ControlPoint) IsAlive() bool         { return true }
func (c *ControlPoint) Index() int            { return c.index }

func (c *ControlPoint) HasBeenContested() bool {
	return c.lastContested >= 0
}

func (c *ControlPoint) LastContestedAt() time.Duration {
	return c.lastContested
}

func (c *ControlPoint) reset() {
	c.owner = c.startOwner
	c.capturer = game.TeamUnassigned
	c.progress = 0
	c.lastContested = -1
}

// Sentry is a fixed sentry gun guarding a team's spawn exit
type Sentry struct {
	handle  game.Handle
	team    game.Team
	pos     game.Vector
	area    *nav.Area
	forward game.Vector
	sapped  bool
}

func (s *Sentry) Handle() game.Handle        { return s.handle }
func (s *Sentry) Position() game.Vector      { return s.pos }
func (s *Sentry) Team() game.Team            { return s.team }
func (s *Sentry) IsAlive() bool              { return true }
func (s *Sentry) LastKnownArea() *nav.Area   { return s.area }
func (s *Sentry) TurretForward() game.Vector { return s.forward }
func (s *Sentry) IsOperational() bool        { return !s.sapped }

// Flag is a capture-the-flag intelligence. It returns home when dropped.
type Flag struct {
	handle  game.Handle
	team    game.Team
	home    game.Vector
	pos     game.Vector
	carrier game.Handle
}

func (f *Flag) Handle() game.Handle   { return f.handle }
func (f *Flag) Position() game.Vector { return f.pos }
func (f *Flag) Team() game.Team       { return f.team }
func (f *Flag) IsAlive() bool         { return true }
func (f *Flag) Type() game.FlagType   { return game.FlagTypeCTF }
func (f *Flag) IsDisabled() bool      { return false }
func (f *Flag) IsStolen() bool        { return f.carrier.Valid() }
func (f *Flag) Carrier() game.Handle  { return f.carrier }

func (f *Flag) returnHome() {
	f.pos = f.home
	f.carrier = game.NoHandle
}

// CaptureZone is where a team scores an enemy flag
type CaptureZone struct {
	handle game.Handle
	team   game.Team
	pos    game.Vector
}

func (z *CaptureZone) Handle() game.Handle   { return z.handle }
func (z *CaptureZone) Position() game.Vector { return z.pos }
func (z *CaptureZone) Team() game.Team       { return z.team }
func (z *CaptureZone) IsAlive() bool         { return true }

// Cart is the payload red pushes east along the middle lane
type Cart struct {
	handle game.Handle
	start  game.Vector
	pos    game.Vector
	goalX  float64
}

func (c *Cart) Handle() game.Handle   { return c.handle }
func (c *Cart) Position() game.Vector { return c.pos }
func (c *Cart) Team() game.Team       { return game.TeamRed }
func (c *Cart) IsAlive() bool         { return true }
