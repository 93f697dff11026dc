package models

import (
	"sort"
	"strconv"
	"strings"
)

// TideType represents whether a tide event is a high or low water
type TideType string

const (
	TideHigh TideType = "tide.high"
	TideLow  TideType = "tide.low"
)

// TideEvent is a single tabulated high or low water for a calendar day.
// Heights are meters above chart datum, times are local "HH:MM".
type TideEvent struct {
	Type        TideType `json:"type"`
	Time        string   `json:"time"`
	Height      float64  `json:"height"`
	Coefficient *int     `json:"coefficient,omitempty"`
}

// Minutes returns the event time as minutes after midnight.
// ok is false when the time string is not H:MM or HH:MM.
func (e TideEvent) Minutes() (int, bool) {
	return ParseClockMinutes(e.Time)
}

// ParseClockMinutes converts an "H:MM" or "HH:MM" string to minutes after
// midnight.
func ParseClockMinutes(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// SortTideEvents drops events with malformed times and returns the
// remainder ordered by time of day.
func SortTideEvents(events []TideEvent) []TideEvent {
	sorted := make([]TideEvent, 0, len(events))
	for _, e := range events {
		if _, ok := e.Minutes(); ok {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		mi, _ := sorted[i].Minutes()
		mj, _ := sorted[j].Minutes()
		return mi < mj
	})
	return sorted
}
