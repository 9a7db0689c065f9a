package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lab1702/ofbot/game"
	"gopkg.in/yaml.v3"
)

// Tuning holds the bot tunables. Distances are in world units and times in seconds.
type Tuning struct {
	Difficulty               string `yaml:"difficulty" json:"difficulty" jsonschema:"enum=easy,enum=normal,enum=hard,enum=expert,enum=0,enum=1,enum=2,enum=3,default=hard"`
	ForceClass               string `yaml:"force_class" json:"force_class,omitempty" jsonschema:"description=If set to a class name all bots respawn as that class"`
	KeepClassAfterDeath      bool   `yaml:"keep_class_after_death" json:"keep_class_after_death,omitempty"`
	PrefixNameWithDifficulty bool   `yaml:"prefix_name_with_difficulty" json:"prefix_name_with_difficulty,omitempty"`

	PathLookaheadRange      float64 `yaml:"path_lookahead_range" json:"path_lookahead_range" jsonschema:"minimum=0,default=300"`
	NearPointTravelDistance float64 `yaml:"near_point_travel_distance" json:"near_point_travel_distance" jsonschema:"minimum=0,default=750"`

	SniperSpotMinRange            float64 `yaml:"sniper_spot_min_range" json:"sniper_spot_min_range" jsonschema:"minimum=0,default=1000"`
	SniperSpotMaxCount            int     `yaml:"sniper_spot_max_count" json:"sniper_spot_max_count" jsonschema:"minimum=1,default=10"`
	SniperSpotSearchCount         int     `yaml:"sniper_spot_search_count" json:"sniper_spot_search_count" jsonschema:"minimum=1,default=10"`
	SniperSpotPointTolerance      float64 `yaml:"sniper_spot_point_tolerance" json:"sniper_spot_point_tolerance" jsonschema:"minimum=0,default=750"`
	SniperSpotEpsilon             float64 `yaml:"sniper_spot_epsilon" json:"sniper_spot_epsilon" jsonschema:"minimum=0,default=100"`
	SniperGoalEntityMoveTolerance float64 `yaml:"sniper_goal_entity_move_tolerance" json:"sniper_goal_entity_move_tolerance" jsonschema:"minimum=0,default=500"`

	SuspectSpyTouchInterval  float64 `yaml:"suspect_spy_touch_interval" json:"suspect_spy_touch_interval" jsonschema:"minimum=0,default=5"`
	SuspectSpyForgetCooldown float64 `yaml:"suspect_spy_forget_cooldown" json:"suspect_spy_forget_cooldown" jsonschema:"minimum=0,default=5"`
	SuspectSpyRealizeTouches int     `yaml:"suspect_spy_realize_touches" json:"suspect_spy_realize_touches" jsonschema:"minimum=1,default=2"`
	SpyAlertRadius           float64 `yaml:"spy_alert_radius" json:"spy_alert_radius" jsonschema:"minimum=0,default=512"`

	Match Match `yaml:"match" json:"match"`
	Debug Debug `yaml:"debug" json:"debug"`
}

// Match describes the demo match the server hosts
type Match struct {
	GameType    string `yaml:"game_type" json:"game_type" jsonschema:"enum=cp,enum=ctf,enum=payload,enum=dm,default=cp"`
	Mutators    []int  `yaml:"mutators" json:"mutators,omitempty"`
	BotsPerTeam int    `yaml:"bots_per_team" json:"bots_per_team" jsonschema:"minimum=0,maximum=16,default=6"`
	Seed        int64  `yaml:"seed" json:"seed,omitempty" jsonschema:"description=Random seed for the demo arena; zero picks one from the clock"`
}

// Debug toggles the bracketed debug log streams
type Debug struct {
	Bots   bool `yaml:"bots" json:"bots,omitempty"`
	Spies  bool `yaml:"spies" json:"spies,omitempty"`
	Squads bool `yaml:"squads" json:"squads,omitempty"`
	Routes bool `yaml:"routes" json:"routes,omitempty"`
	Sniper bool `yaml:"sniper" json:"sniper,omitempty"`
}

// Default returns the stock tunables
func Default() Tuning {
	return Tuning{
		Difficulty:                    "hard",
		PathLookaheadRange:            300,
		NearPointTravelDistance:       750,
		SniperSpotMinRange:            1000,
		SniperSpotMaxCount:            10,
		SniperSpotSearchCount:         10,
		SniperSpotPointTolerance:      750,
		SniperSpotEpsilon:             100,
		SniperGoalEntityMoveTolerance: 500,
		SuspectSpyTouchInterval:       5,
		SuspectSpyForgetCooldown:      5,
		SuspectSpyRealizeTouches:      2,
		SpyAlertRadius:                512,
		Match: Match{
			GameType:    "cp",
			BotsPerTeam: 6,
		},
	}
}

// Load reads a YAML tuning file on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid tuning")

// Validate checks every field's range
func (t Tuning) Validate() error {
	if _, ok := game.ParseDifficulty(t.Difficulty); !ok {
		return fmt.Errorf("%w: difficulty %q out of range [0,3]", ErrInvalid, t.Difficulty)
	}
	if t.ForceClass != "" {
		if _, ok := game.ParseClass(t.ForceClass); !ok {
			return fmt.Errorf("%w: force_class %q is not a class", ErrInvalid, t.ForceClass)
		}
	}

	nonNegative := map[string]float64{
		"path_lookahead_range":              t.PathLookaheadRange,
		"near_point_travel_distance":        t.NearPointTravelDistance,
		"sniper_spot_min_range":             t.SniperSpotMinRange,
		"sniper_spot_point_tolerance":       t.SniperSpotPointTolerance,
		"sniper_spot_epsilon":               t.SniperSpotEpsilon,
		"sniper_goal_entity_move_tolerance": t.SniperGoalEntityMoveTolerance,
		"suspect_spy_touch_interval":        t.SuspectSpyTouchInterval,
		"suspect_spy_forget_cooldown":       t.SuspectSpyForgetCooldown,
		"spy_alert_radius":                  t.SpyAlertRadius,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, name, v)
		}
	}

	positive := map[string]int{
		"sniper_spot_max_count":       t.SniperSpotMaxCount,
		"sniper_spot_search_count":    t.SniperSpotSearchCount,
		"suspect_spy_realize_touches": t.SuspectSpyRealizeTouches,
	}
	for name, v := range positive {
		if v < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalid, name, v)
		}
	}

	if _, ok := ParseGameType(t.Match.GameType); !ok {
		return fmt.Errorf("%w: match.game_type %q is not supported", ErrInvalid, t.Match.GameType)
	}
	if t.Match.BotsPerTeam < 0 || t.Match.BotsPerTeam > 16 {
		return fmt.Errorf("%w: match.bots_per_team must be in [0,16], got %d", ErrInvalid, t.Match.BotsPerTeam)
	}
	return nil
}

// Skill returns the configured difficulty tier. Invalid values read as hard.
func (t Tuning) Skill() game.Difficulty {
	if d, ok := game.ParseDifficulty(t.Difficulty); ok {
		return d
	}
	return game.DifficultyHard
}

// ForcedClass returns the class every bot should respawn as, if any
func (t Tuning) ForcedClass() (game.Class, bool) {
	if t.ForceClass == "" {
		return game.ClassUndefined, false
	}
	return game.ParseClass(t.ForceClass)
}

func (t Tuning) TouchInterval() time.Duration {
	return seconds(t.SuspectSpyTouchInterval)
}

func (t Tuning) ForgetCooldown() time.Duration {
	return seconds(t.SuspectSpyForgetCooldown)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ParseGameType maps a match game type name to its ruleset
func ParseGameType(s string) (game.GameType, bool) {
	switch s {
	case "cp":
		return game.GameTypeCP, true
	case "ctf":
		return game.GameTypeCTF, true
	case "payload":
		return game.GameTypePayload, true
	case "dm":
		return game.GameTypeDM, true
	}
	return game.GameTypeUndefined, false
}
