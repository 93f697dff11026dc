// Package activity scores activities against observed conditions, a
// sailor profile and the calendar. Evaluation never fails for
// unfavorable conditions; that is the normal isValid=false outcome.
package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/units"
)

// directionTolerance is the half-width of a compass sector: a direction
// matches a preferred one when they differ by at most 22.5°.
const directionTolerance = 22.5

// directionPreferred reports whether the current wind direction matches
// the ideal direction or any of the preferred directions, with 360°
// wraparound. An empty preferred list means no restriction. Unrecognized
// direction strings are treated as not preferred.
func directionPreferred(current string, preferred []string, ideal string) bool {
	currentDeg, ok := units.NormalizeDirection(current)
	if !ok {
		return false
	}

	if matchesIdealDirection(current, ideal) {
		return true
	}

	if len(preferred) == 0 {
		return true
	}

	for _, p := range preferred {
		preferredDeg, ok := units.NormalizeDirection(p)
		if !ok {
			continue
		}
		diff := abs(currentDeg - preferredDeg)
		if diff <= directionTolerance || diff >= 360-directionTolerance {
			return true
		}
	}
	return false
}

// matchesIdealDirection reports whether current falls inside the ideal
// direction's sector.
func matchesIdealDirection(current, ideal string) bool {
	if ideal == "" {
		return false
	}
	currentDeg, okCurrent := units.NormalizeDirection(current)
	idealDeg, okIdeal := units.NormalizeDirection(ideal)
	if !okCurrent || !okIdeal {
		return false
	}
	diff := abs(currentDeg - idealDeg)
	return diff <= directionTolerance || diff >= 360-directionTolerance
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// matchesTimeSlots checks the activity's declared time slot constraints
func matchesTimeSlots(slots []string, t time.Time) bool {
	if len(slots) == 0 {
		return true
	}
	for _, slot := range slots {
		switch slot {
		case "weekend":
			if !units.IsWeekend(t) {
				return false
			}
		case "after_18h":
			if t.Hour() < 18 {
				return false
			}
		}
	}
	return true
}

// profileAvailable checks the profile's schedule for the given time.
// The weekday window only applies to ordinary working days; weekends,
// public holidays and school holidays each have their own flag.
func profileAvailable(profile *models.Profile, t time.Time, calendar models.Calendar) bool {
	if profile == nil || profile.Availability == nil || profile.Availability.NonWorkingHours == nil {
		return true
	}

	nwh := profile.Availability.NonWorkingHours
	weekend := units.IsWeekend(t)
	holiday := units.IsFrenchHoliday(t, calendar.FrenchHolidays)
	schoolHoliday := units.IsSchoolHoliday(t, calendar.SchoolHolidaysZoneB)

	if !weekend && !holiday && !schoolHoliday && nwh.Weekdays != "" {
		start, end, ok := parseHourWindow(nwh.Weekdays)
		if ok {
			hour := t.Hour()
			if hour < start || hour >= end {
				return false
			}
		}
	}

	if weekend && nwh.Weekends == models.Unavailable {
		return false
	}
	if holiday && nwh.Holidays == models.Unavailable {
		return false
	}
	if schoolHoliday && nwh.SchoolHolidaysZoneB == models.Unavailable {
		return false
	}
	return true
}

// parseHourWindow splits an "HH:MM-HH:MM" window into its hour bounds
func parseHourWindow(window string) (start, end int, ok bool) {
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	startMinutes, okStart := models.ParseClockMinutes(strings.TrimSpace(parts[0]))
	endMinutes, okEnd := models.ParseClockMinutes(strings.TrimSpace(parts[1]))
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return startMinutes / 60, endMinutes / 60, true
}

// Evaluate scores one activity against one conditions snapshot. The
// score starts at 100; hard failures invalidate the result and subtract
// their penalty, soft checks only adjust the score. The final score is
// clamped to [0, 100].
func Evaluate(act models.Activity, conditions models.Conditions, t time.Time, profile *models.Profile, calendar models.Calendar) models.Evaluation {
	ideal := act.IdealConditions

	result := models.Evaluation{
		IsValid:  true,
		Score:    100,
		Reasons:  []string{},
		Warnings: []string{},
	}

	fail := func(penalty int, reason string) {
		result.IsValid = false
		result.Score -= penalty
		result.Reasons = append(result.Reasons, reason)
	}

	if profile != nil && !profileAvailable(profile, t, calendar) {
		fail(100, "Profile not available at this time")
	}

	if ideal.DaylightOnly {
		daylight := units.DefaultDaylight(t)
		if conditions.IsDaylight != nil {
			daylight = *conditions.IsDaylight
		}
		if !daylight {
			fail(100, "Activity requires daylight")
		}
	}

	if !matchesTimeSlots(ideal.TimeSlots, t) {
		fail(50, "Time slot requirements not met")
	}

	if ideal.TideMin != nil && conditions.TideHeight < *ideal.TideMin {
		fail(50, fmt.Sprintf("Tide too low (%.2fm < %gm)", conditions.TideHeight, *ideal.TideMin))
	}
	if ideal.TideMax != nil && conditions.TideHeight > *ideal.TideMax {
		fail(50, fmt.Sprintf("Tide too high (%.2fm > %gm)", conditions.TideHeight, *ideal.TideMax))
	}

	wind := conditions.WindKnots
	if len(ideal.WindRange) == 2 {
		if wind < ideal.WindRange[0] {
			fail(40, fmt.Sprintf("Wind too low (%.1f knots < %g knots)", wind, ideal.WindRange[0]))
		}
		if wind > ideal.WindRange[1] {
			fail(40, fmt.Sprintf("Wind too high (%.1f knots > %g knots)", wind, ideal.WindRange[1]))
		}
	}
	// wind_min/wind_max are checked independently of wind_range; both
	// forms may be present on the same activity.
	if ideal.WindMin != nil && wind < *ideal.WindMin {
		fail(40, fmt.Sprintf("Wind too low (%.1f knots < %g knots)", wind, *ideal.WindMin))
	}
	if ideal.WindMax != nil && wind > *ideal.WindMax {
		fail(40, fmt.Sprintf("Wind too high (%.1f knots > %g knots)", wind, *ideal.WindMax))
	}

	if ideal.WaveHeightMax != nil && conditions.SwellHeight != nil && *conditions.SwellHeight > *ideal.WaveHeightMax {
		fail(30, fmt.Sprintf("Waves too high (%gm > %gm)", *conditions.SwellHeight, *ideal.WaveHeightMax))
	}

	if ideal.NoStorm && conditions.IsStorm {
		fail(100, "Storm conditions - activity not safe")
	}
	if ideal.NoRain && conditions.IsRaining {
		fail(20, "Rain is not suitable for this activity")
	}

	if len(ideal.WindDirection) > 0 && conditions.WindDirection != "" {
		ideal1 := ""
		if len(ideal.WindDirectionIdeal) > 0 {
			ideal1 = ideal.WindDirectionIdeal[0]
		}
		if !directionPreferred(conditions.WindDirection, ideal.WindDirection, ideal1) {
			result.Score -= 15
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Wind direction not ideal (current: %s)", conditions.WindDirection))
		} else if matchesIdealDirection(conditions.WindDirection, ideal1) {
			// Bonus for hitting the ideal sector
			result.Score += 10
		}
	}

	if ideal.TidePhase == models.TideRising && conditions.TidePhase != models.TideRising {
		result.Score -= 5
		result.Warnings = append(result.Warnings, "Tide phase not optimal (prefer rising tide)")
	}

	if ideal.VisibilityMin != nil && conditions.Visibility != nil && *conditions.Visibility < *ideal.VisibilityMin {
		fail(40, fmt.Sprintf("Visibility too low (%gkm < %gkm)", *conditions.Visibility, *ideal.VisibilityMin))
	}

	if ideal.TemperatureMin != nil && conditions.Temperature != nil && *conditions.Temperature < *ideal.TemperatureMin {
		fail(20, fmt.Sprintf("Temperature too cold (%g°C < %g°C)", *conditions.Temperature, *ideal.TemperatureMin))
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result
}

// CanProfileDo reports whether the profile is allowed to attempt the
// activity: it must appear in suitable_for (or "all") and meet the
// required skill level.
func CanProfileDo(profile *models.Profile, act models.Activity) bool {
	if profile == nil {
		return false
	}

	if len(act.SuitableFor) > 0 {
		allowed := false
		for _, id := range act.SuitableFor {
			if id == profile.ID || id == "all" {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if act.SkillLevelRequired == "" {
		return true
	}
	return profile.SkillLevel.Rank() >= act.SkillLevelRequired.Rank()
}

// evaluateEach pairs every activity with its evaluation, sorted by score
// descending.
func evaluateEach(activities []models.Activity, conditions models.Conditions, t time.Time, profile *models.Profile, calendar models.Calendar) []models.ActivityWithEvaluation {
	evaluated := make([]models.ActivityWithEvaluation, 0, len(activities))
	for _, act := range activities {
		evaluated = append(evaluated, models.ActivityWithEvaluation{
			Activity:   act,
			Evaluation: Evaluate(act, conditions, t, profile, calendar),
		})
	}
	sort.SliceStable(evaluated, func(i, j int) bool {
		return evaluated[i].Evaluation.Score > evaluated[j].Evaluation.Score
	})
	return evaluated
}

// Filter returns only the activities valid under the given conditions,
// best score first.
func Filter(activities []models.Activity, conditions models.Conditions, t time.Time, profile *models.Profile, calendar models.Calendar) []models.ActivityWithEvaluation {
	evaluated := evaluateEach(activities, conditions, t, profile, calendar)
	valid := evaluated[:0:0]
	for _, a := range evaluated {
		if a.Evaluation.IsValid {
			valid = append(valid, a)
		}
	}
	return valid
}

// EvaluateAll returns every activity with its evaluation, valid or not,
// best score first.
func EvaluateAll(activities []models.Activity, conditions models.Conditions, t time.Time, profile *models.Profile, calendar models.Calendar) []models.ActivityWithEvaluation {
	return evaluateEach(activities, conditions, t, profile, calendar)
}
