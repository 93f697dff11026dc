package models

// ActivityType identifies the kind of nautical activity
type ActivityType string

const (
	ActivitySailboat  ActivityType = "sailboat"
	ActivityWindsurf  ActivityType = "windsurf"
	ActivityWingfoil  ActivityType = "wingfoil"
	ActivitySpeedsail ActivityType = "speedsail"
	ActivitySUP       ActivityType = "sup"
)

// SkillLevel is an ordered proficiency scale
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

var skillOrder = map[SkillLevel]int{
	SkillBeginner:     0,
	SkillIntermediate: 1,
	SkillAdvanced:     2,
	SkillExpert:       3,
}

// Rank returns the position of the level on the beginner..expert scale,
// or -1 for an unknown level.
func (s SkillLevel) Rank() int {
	if r, ok := skillOrder[s]; ok {
		return r
	}
	return -1
}

// IdealConditions declares the conditions under which an activity is
// worthwhile. All threshold fields are optional; a nil pointer means the
// check is skipped. WindRange and WindMin/WindMax may both be present and
// are checked independently.
type IdealConditions struct {
	WindRange          []float64 `json:"wind_range,omitempty"` // [min, max] knots
	WindMin            *float64  `json:"wind_min,omitempty"`
	WindMax            *float64  `json:"wind_max,omitempty"`
	TideMin            *float64  `json:"tide_min,omitempty"` // meters
	TideMax            *float64  `json:"tide_max,omitempty"`
	WaveHeightMax      *float64  `json:"wave_height_max,omitempty"` // meters
	WindDirection      []string  `json:"wind_direction,omitempty"`  // preferred cardinal directions
	WindDirectionIdeal []string  `json:"wind_direction_ideal,omitempty"`
	DaylightOnly       bool      `json:"daylight_only,omitempty"`
	TimeSlots          []string  `json:"time_slots,omitempty"` // "weekend", "after_18h"
	NoStorm            bool      `json:"no_storm,omitempty"`
	NoRain             bool      `json:"no_rain,omitempty"`
	TidePhase          TidePhase `json:"tide_phase,omitempty"` // preferred phase, soft constraint
	VisibilityMin      *float64  `json:"visibility_min,omitempty"`  // km
	TemperatureMin     *float64  `json:"temperature_min,omitempty"` // °C
}

// Activity is one entry of the activity catalog. Loaded once from
// configuration and treated as read-only by the evaluation engine.
type Activity struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Type               ActivityType    `json:"type"`
	IdealConditions    IdealConditions `json:"ideal_conditions"`
	RequiredGear       []string        `json:"required_gear,omitempty"` // gear-type tags or equipment IDs
	SuitableFor        []string        `json:"suitable_for,omitempty"`  // profile IDs or "all"
	SkillLevelRequired SkillLevel      `json:"skill_level_required,omitempty"`
}

// ActivityWithEvaluation pairs an activity with its evaluation for one
// conditions snapshot.
type ActivityWithEvaluation struct {
	Activity
	Evaluation  Evaluation     `json:"evaluation"`
	GearMatches *GearSelection `json:"gearMatches,omitempty"`
}
