package models

import "time"

// SlotConditions is the condensed conditions summary stored with each
// planned hour, used for display and range statistics.
type SlotConditions struct {
	WindKnots         float64  `json:"windKnots"`
	WindDirection     string   `json:"windDirection,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	PrecipProbability *float64 `json:"precipProbability,omitempty"`
	TideHeight        float64  `json:"tideHeight"`
	TideRising        bool     `json:"tideRising"`
}

// Slot holds every activity evaluation for one hour of a planned day
type Slot struct {
	Hour       int                      `json:"hour"`
	Time       time.Time                `json:"time"`
	Conditions SlotConditions           `json:"conditions"`
	Valid      []ActivityWithEvaluation `json:"activities"`
	All        []ActivityWithEvaluation `json:"allActivities"`
}

// TimeRange is a contiguous block of hours in which an activity stays
// valid. End is exclusive, capped at 24 and at sunset for daylight-only
// activities.
type TimeRange struct {
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Display   string  `json:"display"` // e.g. "14h-19h"
	TideStart float64 `json:"tideStart"` // meters at Start
	TideEnd   float64 `json:"tideEnd"`   // meters at the last valid hour
	AvgWind   float64 `json:"avgWind"`   // knots, mean over the valid hours
}

// MergedActivity summarizes an activity's opportunity windows over a day
type MergedActivity struct {
	Activity
	TimeRanges []TimeRange `json:"timeRanges"`
	AvgWind    float64     `json:"avgWind"`
}

// DaySummary carries the day-level forecast figures shown next to a plan
type DaySummary struct {
	TemperatureMin       *float64   `json:"temperatureMin,omitempty"`
	TemperatureMax       *float64   `json:"temperatureMax,omitempty"`
	WindSpeedMaxKnots    *float64   `json:"windSpeedMaxKnots,omitempty"`
	PrecipProbabilityMax *float64   `json:"precipProbabilityMax,omitempty"`
	Sunrise              *time.Time `json:"sunrise,omitempty"`
	Sunset               *time.Time `json:"sunset,omitempty"`
}

// DayPlan is the full result of planning one calendar day: 24 hourly
// slots plus the per-activity merged time ranges.
type DayPlan struct {
	Date    string           `json:"date"`
	Summary DaySummary       `json:"summary"`
	Slots   []Slot           `json:"slots"`
	Merged  []MergedActivity `json:"mergedActivities"`
}

// RecommendationPeriod tags whether an activity is feasible right now or
// only later in the day.
type RecommendationPeriod string

const (
	PeriodCurrent RecommendationPeriod = "current"
	PeriodRest    RecommendationPeriod = "rest"
)

// RecommendedActivity is the reconciled view of "valid now" evaluations
// and full-day planning windows.
type RecommendedActivity struct {
	MergedActivity
	Evaluation  *Evaluation          `json:"evaluation,omitempty"` // the "right now" evaluation for current activities
	GearMatches *GearSelection       `json:"gearMatches,omitempty"`
	Period      RecommendationPeriod `json:"period"`
}
