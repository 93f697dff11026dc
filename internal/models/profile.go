package models

// AvailabilityState marks whether a profile can sail on a given kind of day
const (
	Available   = "available"
	Unavailable = "unavailable"
)

// NonWorkingHours describes when a profile is free for activities.
// Weekdays is an "HH:MM-HH:MM" window during which activities are possible
// on ordinary working days; the remaining fields apply to special days.
type NonWorkingHours struct {
	Weekdays            string `json:"weekdays,omitempty"`
	Weekends            string `json:"weekends,omitempty"`
	Holidays            string `json:"holidays,omitempty"`
	SchoolHolidaysZoneB string `json:"school_holidays_zone_b,omitempty"`
}

// Availability wraps a profile's schedule constraints
type Availability struct {
	NonWorkingHours *NonWorkingHours `json:"non_working_hours,omitempty"`
}

// Profile describes a sailor: identity, skill and schedule. Loaded once
// from configuration, read-only afterwards.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	SkillLevel   SkillLevel    `json:"skill_level"`
	FavoriteGear []string      `json:"favorite_gear,omitempty"` // equipment IDs
	Availability *Availability `json:"availability,omitempty"`
}

// HolidayPeriod is a named date range, bounds inclusive, ISO dates
type HolidayPeriod struct {
	Name  string `json:"name,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Calendar carries the holiday data used by availability checks
type Calendar struct {
	FrenchHolidays      []string                   `json:"french_holidays,omitempty"`       // ISO dates
	SchoolHolidaysZoneB map[string][]HolidayPeriod `json:"school_holidays_zone_b,omitempty"` // keyed by school year, e.g. "2024_2025"
}

// GearType identifies a category of equipment
type GearType string

const (
	GearWindsurfBoard GearType = "windsurf_board"
	GearWindsurfSail  GearType = "windsurf_sail"
	GearWing          GearType = "wing"
	GearWingBoard     GearType = "wing_board"
	GearFoil          GearType = "foil"
	GearSailboat      GearType = "sailboat"
	GearSpeedsail     GearType = "speedsail"
	GearSUPBoard      GearType = "sup_board"
)

// Equipment is one item of the gear catalog
type Equipment struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       GearType   `json:"type"`
	WindRange  []float64  `json:"wind_range,omitempty"` // [min, max] knots
	SkillLevel SkillLevel `json:"skill_level,omitempty"`
	Users      []string   `json:"users,omitempty"` // profile IDs or "all"
}

// GearInfo is an equipment item annotated for one profile
type GearInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	WindRange  []float64  `json:"wind_range,omitempty"`
	SkillLevel SkillLevel `json:"skill_level,omitempty"`
	IsFavorite bool       `json:"is_favorite"`
}

// GearSelection groups recommended gear by category, favorites first
type GearSelection struct {
	Boards     []GearInfo `json:"boards"`
	Sails      []GearInfo `json:"sails"`
	Wings      []GearInfo `json:"wings"`
	Foils      []GearInfo `json:"foils"`
	Boats      []GearInfo `json:"boats"`
	Speedsails []GearInfo `json:"speedsails"`
}

// IsEmpty reports whether no gear matched in any category
func (g *GearSelection) IsEmpty() bool {
	return len(g.Boards)+len(g.Sails)+len(g.Wings)+len(g.Foils)+len(g.Boats)+len(g.Speedsails) == 0
}

// Location identifies the coastal spot recommendations are computed for
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// PlanningConfig carries planner settings from the catalog file
type PlanningConfig struct {
	Location     Location `json:"location"`
	ForecastDays int      `json:"forecast_days,omitempty"`
}

// Catalog is the full configuration structure: profiles, activities,
// equipment, calendar and planning settings. Loaded once per process and
// cached; the engine only ever reads it.
type Catalog struct {
	Profiles       []Profile      `json:"profiles"`
	Activities     []Activity     `json:"activities"`
	Equipment      []Equipment    `json:"equipment"`
	Calendar       Calendar       `json:"calendar"`
	PlanningConfig PlanningConfig `json:"planning_config"`
}
