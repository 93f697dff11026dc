package models

// TidePhase describes the direction of the tide at a point in time
type TidePhase string

const (
	TideRising  TidePhase = "rising"
	TideFalling TidePhase = "falling"
	TideUnknown TidePhase = "unknown"
)

// Conditions is a point-in-time environmental snapshot used for activity
// evaluation. It is built fresh for each evaluation and never mutated after
// construction.
type Conditions struct {
	WindKnots     float64   `json:"windKnots"`
	WindDirection string    `json:"windDirection,omitempty"` // cardinal ("NW") or numeric degrees ("315"); empty when unknown
	TideHeight    float64   `json:"tideHeight"` // meters
	TidePhase     TidePhase `json:"tidePhase"`
	SwellHeight   *float64  `json:"swellHeight,omitempty"` // meters, nil when no swell data
	IsRaining     bool      `json:"isRaining"`
	IsStorm       bool      `json:"isStorm"`
	Visibility    *float64  `json:"visibility,omitempty"`  // km, nil when unknown
	Temperature   *float64  `json:"temperature,omitempty"` // °C, nil when unknown
	IsDaylight    *bool     `json:"isDaylight,omitempty"`  // overrides the time-of-day heuristic when set
}

// Evaluation is the result of scoring one activity against one Conditions
// snapshot. Reasons explain hard failures, warnings explain soft penalties.
type Evaluation struct {
	IsValid  bool     `json:"isValid"`
	Score    int      `json:"score"` // clamped to [0, 100]
	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings"`
}
