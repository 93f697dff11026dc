// Package planner turns forecasts, tide tables and the activity catalog
// into hourly day plans and recommendations.
package planner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mlebrun/sailcast/internal/activity"
	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/tide"
)

// ErrNoForecastData is returned when a day has no hourly periods to plan
// from.
var ErrNoForecastData = errors.New("no forecast data for day")

// Thresholds deriving boolean conditions from forecast figures
const (
	stormWindKnots  = 35.0 // above this, every hour counts as storm
	rainProbability = 50.0 // percent, above this an hour counts as raining
	mergeGapHours   = 3    // larger gaps split an activity's day into ranges
	rangeExtraHours = 3    // a range extends past its last valid hour
	fallbackSunrise = 7
	fallbackSunset  = 21
)

// PlanDay evaluates every activity for each of the day's 24 hours and
// merges the valid hours into per-activity time ranges. The tide table
// for the day must be available; planning does not fabricate tide
// heights when it is not.
func PlanDay(date time.Time, day models.DayForecast, tideEvents []models.TideEvent, activities []models.Activity, profile *models.Profile, calendar models.Calendar) (*models.DayPlan, error) {
	if len(day.Periods) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoForecastData, day.Date)
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	slots := make([]models.Slot, 0, 24)
	for hour := 0; hour < 24; hour++ {
		hourTime := midnight.Add(time.Duration(hour) * time.Hour)

		daylight := true
		if day.Sunrise != nil && day.Sunset != nil {
			daylight = !hourTime.Before(*day.Sunrise) && hourTime.Before(*day.Sunset)
		}

		period := periodForHour(day.Periods, hour)

		reading, err := tide.EstimateAt(hourTime, tideEvents)
		if err != nil {
			return nil, fmt.Errorf("tide estimate for %s %02dh: %w", day.Date, hour, err)
		}

		windKnots := 0.0
		if period.WindSpeedKnots != nil {
			windKnots = *period.WindSpeedKnots
		}
		precipProb := 0.0
		if period.PrecipProbability != nil {
			precipProb = *period.PrecipProbability
		}

		conditions := models.Conditions{
			WindKnots:     windKnots,
			WindDirection: period.WindDirection,
			TideHeight:    reading.Height,
			TidePhase:     reading.Phase(),
			IsRaining:     precipProb > rainProbability,
			IsStorm:       windKnots > stormWindKnots,
			Temperature:   period.Temperature,
			IsDaylight:    &daylight,
		}

		all := activity.EvaluateAll(activities, conditions, hourTime, profile, calendar)
		valid := make([]models.ActivityWithEvaluation, 0, len(all))
		for _, a := range all {
			if a.Evaluation.IsValid {
				valid = append(valid, a)
			}
		}

		slots = append(slots, models.Slot{
			Hour: hour,
			Time: hourTime,
			Conditions: models.SlotConditions{
				WindKnots:         windKnots,
				WindDirection:     period.WindDirection,
				Temperature:       period.Temperature,
				PrecipProbability: period.PrecipProbability,
				TideHeight:        reading.Height,
				TideRising:        reading.Rising,
			},
			Valid: valid,
			All:   all,
		})
	}

	return &models.DayPlan{
		Date: day.Date,
		Summary: models.DaySummary{
			TemperatureMin:       day.TemperatureMin,
			TemperatureMax:       day.TemperatureMax,
			WindSpeedMaxKnots:    day.WindSpeedMaxKnots,
			PrecipProbabilityMax: day.PrecipProbabilityMax,
			Sunrise:              day.Sunrise,
			Sunset:               day.Sunset,
		},
		Slots:  slots,
		Merged: mergeTimeRanges(slots, day.Sunrise, day.Sunset),
	}, nil
}

// periodForHour picks the 3-hour forecast bucket covering the hour,
// falling back to the first period when none matches.
func periodForHour(periods []models.ForecastPeriod, hour int) models.ForecastPeriod {
	for _, p := range periods {
		if hour >= p.Hour && hour < p.Hour+3 {
			return p
		}
	}
	return periods[0]
}

// mergeTimeRanges groups each activity's valid hours into contiguous
// ranges. Hours separated by more than the merge gap open a new range;
// the displayed end extends past the last valid hour, clamped to sunset
// for daylight-only activities and to 24.
func mergeTimeRanges(slots []models.Slot, sunrise, sunset *time.Time) []models.MergedActivity {
	if len(slots) == 0 {
		return []models.MergedActivity{}
	}

	sunriseHour := fallbackSunrise
	sunsetHour := fallbackSunset
	if sunrise != nil {
		sunriseHour = sunrise.Hour()
	}
	if sunset != nil {
		sunsetHour = sunset.Hour()
	}

	type slotSample struct {
		hour       int
		windKnots  float64
		tideHeight float64
	}
	type activitySlots struct {
		activity models.Activity
		samples  []slotSample
	}

	order := []string{}
	byID := map[string]*activitySlots{}
	for _, slot := range slots {
		for _, a := range slot.Valid {
			entry, ok := byID[a.ID]
			if !ok {
				entry = &activitySlots{activity: a.Activity}
				byID[a.ID] = entry
				order = append(order, a.ID)
			}
			entry.samples = append(entry.samples, slotSample{
				hour:       slot.Hour,
				windKnots:  slot.Conditions.WindKnots,
				tideHeight: slot.Conditions.TideHeight,
			})
		}
	}

	merged := []models.MergedActivity{}
	for _, id := range order {
		entry := byID[id]

		hours := make([]int, 0, len(entry.samples))
		sampleByHour := map[int]slotSample{}
		for _, s := range entry.samples {
			if _, seen := sampleByHour[s.hour]; !seen {
				hours = append(hours, s.hour)
				sampleByHour[s.hour] = s
			}
		}

		if entry.activity.IdealConditions.DaylightOnly {
			kept := hours[:0]
			for _, h := range hours {
				if h >= sunriseHour && h < sunsetHour {
					kept = append(kept, h)
				}
			}
			hours = kept
		}
		if len(hours) == 0 {
			continue
		}

		type span struct{ start, end int }
		spans := []span{}
		current := span{hours[0], hours[0]}
		for _, h := range hours[1:] {
			if h-current.end > mergeGapHours {
				spans = append(spans, current)
				current = span{h, h}
			} else {
				current.end = h
			}
		}
		spans = append(spans, current)

		ranges := make([]models.TimeRange, 0, len(spans))
		for _, sp := range spans {
			endHour := sp.end + rangeExtraHours
			if entry.activity.IdealConditions.DaylightOnly && endHour > sunsetHour {
				endHour = sunsetHour
			}
			if endHour > 24 {
				endHour = 24
			}

			windSum := 0.0
			count := 0
			for h := sp.start; h <= sp.end; h++ {
				if s, ok := sampleByHour[h]; ok {
					windSum += s.windKnots
					count++
				}
			}
			avgWind := 0.0
			if count > 0 {
				avgWind = roundTenth(windSum / float64(count))
			}

			ranges = append(ranges, models.TimeRange{
				Start:     sp.start,
				End:       endHour,
				Display:   fmt.Sprintf("%dh-%dh", sp.start, endHour),
				TideStart: sampleByHour[sp.start].tideHeight,
				TideEnd:   sampleByHour[sp.end].tideHeight,
				AvgWind:   avgWind,
			})
		}

		windSum := 0.0
		for _, h := range hours {
			windSum += sampleByHour[h].windKnots
		}

		merged = append(merged, models.MergedActivity{
			Activity:   entry.activity,
			TimeRanges: ranges,
			AvgWind:    roundTenth(windSum / float64(len(hours))),
		})
	}
	return merged
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
