package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/tide"
)

func fp(v float64) *float64 { return &v }

// alternating low/high pairs covering the whole day
func testTideEvents() []models.TideEvent {
	return []models.TideEvent{
		{Type: models.TideLow, Time: "02:00", Height: 1.0},
		{Type: models.TideHigh, Time: "08:10", Height: 5.0},
		{Type: models.TideLow, Time: "14:30", Height: 1.1},
		{Type: models.TideHigh, Time: "20:45", Height: 5.2},
	}
}

// three-hourly periods; windKnots maps bucket start hour to wind speed
func testPeriods(date time.Time, windKnots map[int]float64) []models.ForecastPeriod {
	periods := make([]models.ForecastPeriod, 0, 8)
	for hour := 0; hour < 24; hour += 3 {
		wind := 5.0
		if w, ok := windKnots[hour]; ok {
			wind = w
		}
		periods = append(periods, models.ForecastPeriod{
			Time:           date.Add(time.Duration(hour) * time.Hour),
			Hour:           hour,
			WindSpeedKnots: fp(wind),
			WindDirection:  "W",
		})
	}
	return periods
}

func testDayForecast(date time.Time, windKnots map[int]float64) models.DayForecast {
	sunrise := date.Add(8 * time.Hour)
	sunset := date.Add(17 * time.Hour)
	return models.DayForecast{
		Date:    date.Format("2006-01-02"),
		Sunrise: &sunrise,
		Sunset:  &sunset,
		Periods: testPeriods(date, windKnots),
	}
}

// Monday, so nil profile dodges availability rules entirely
var planDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func TestPlanDayBuilds24Slots(t *testing.T) {
	day := testDayForecast(planDate, nil)
	activities := []models.Activity{{ID: "windsurf", IdealConditions: models.IdealConditions{WindRange: []float64{10, 20}}}}

	plan, err := PlanDay(planDate, day, testTideEvents(), activities, nil, models.Calendar{})
	if err != nil {
		t.Fatalf("PlanDay() error: %v", err)
	}

	if len(plan.Slots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(plan.Slots))
	}
	for i, slot := range plan.Slots {
		if slot.Hour != i {
			t.Errorf("slot %d has hour %d", i, slot.Hour)
		}
		if len(slot.All) != 1 {
			t.Errorf("slot %d missing evaluations", i)
		}
		if slot.Conditions.TideHeight < 1.0 || slot.Conditions.TideHeight > 5.2 {
			t.Errorf("slot %d tide height %g outside tabulated bounds", i, slot.Conditions.TideHeight)
		}
	}

	// 5 knots everywhere keeps a 10-20 knot activity invalid all day
	if len(plan.Merged) != 0 {
		t.Errorf("expected no merged activities in calm wind, got %d", len(plan.Merged))
	}
}

func TestPlanDayMergesRangesAcrossGaps(t *testing.T) {
	// Wind in range only in the 9h and 15h buckets; the 4-hour gap
	// between 11h and 15h must split the day into two ranges.
	day := testDayForecast(planDate, map[int]float64{9: 15, 15: 15})
	act := models.Activity{
		ID:   "windsurf",
		Name: "Windsurf",
		IdealConditions: models.IdealConditions{
			WindRange:    []float64{10, 20},
			DaylightOnly: true,
		},
	}

	plan, err := PlanDay(planDate, day, testTideEvents(), []models.Activity{act}, nil, models.Calendar{})
	if err != nil {
		t.Fatalf("PlanDay() error: %v", err)
	}

	if len(plan.Merged) != 1 {
		t.Fatalf("expected 1 merged activity, got %d", len(plan.Merged))
	}
	merged := plan.Merged[0]
	if len(merged.TimeRanges) != 2 {
		t.Fatalf("expected 2 time ranges, got %d: %+v", len(merged.TimeRanges), merged.TimeRanges)
	}

	first := merged.TimeRanges[0]
	if first.Start != 9 || first.End != 14 {
		t.Errorf("first range %d-%d, want 9-14", first.Start, first.End)
	}
	if first.Display != "9h-14h" {
		t.Errorf("first range display %q", first.Display)
	}

	// 16h is the last valid daylight hour; end extends to 19 then clamps
	// at the 17h sunset.
	second := merged.TimeRanges[1]
	if second.Start != 15 || second.End != 17 {
		t.Errorf("second range %d-%d, want 15-17", second.Start, second.End)
	}
	if second.Display != "15h-17h" {
		t.Errorf("second range display %q", second.Display)
	}

	if merged.AvgWind != 15.0 {
		t.Errorf("expected avg wind 15.0, got %g", merged.AvgWind)
	}
	if first.TideStart == 0 || second.TideEnd == 0 {
		t.Errorf("range tide boundaries missing: %+v", merged.TimeRanges)
	}
}

func TestPlanDayEndClampedAtMidnight(t *testing.T) {
	// Calm-wind activity valid late into the evening; its last range end
	// must clamp at 24, not 26.
	day := testDayForecast(planDate, map[int]float64{9: 15, 15: 15})
	act := models.Activity{
		ID:              "sup",
		IdealConditions: models.IdealConditions{WindRange: []float64{3, 8}},
	}

	plan, err := PlanDay(planDate, day, testTideEvents(), []models.Activity{act}, nil, models.Calendar{})
	if err != nil {
		t.Fatalf("PlanDay() error: %v", err)
	}
	if len(plan.Merged) != 1 {
		t.Fatalf("expected 1 merged activity, got %d", len(plan.Merged))
	}

	ranges := merged0Ranges(plan)
	last := ranges[len(ranges)-1]
	if last.End != 24 {
		t.Errorf("expected last range clamped at 24, got %d (%s)", last.End, last.Display)
	}
	first := ranges[0]
	if first.Start != 0 {
		t.Errorf("expected first range to start at midnight, got %d", first.Start)
	}
}

func TestPlanDayStormAndRainFlags(t *testing.T) {
	day := testDayForecast(planDate, map[int]float64{9: 40})
	day.Periods[3].PrecipProbability = fp(60) // the 9h bucket

	act := models.Activity{
		ID: "wingfoil",
		IdealConditions: models.IdealConditions{
			WindRange: []float64{30, 50},
			NoStorm:   true,
		},
	}

	plan, err := PlanDay(planDate, day, testTideEvents(), []models.Activity{act}, nil, models.Calendar{})
	if err != nil {
		t.Fatalf("PlanDay() error: %v", err)
	}

	slot := plan.Slots[10]
	if slot.Conditions.WindKnots != 40 {
		t.Fatalf("expected 40 knots at 10h, got %g", slot.Conditions.WindKnots)
	}
	if len(slot.Valid) != 0 {
		t.Error("40 knots is storm conditions, activity must be invalid despite matching wind range")
	}
	if slot.All[0].Evaluation.IsValid {
		t.Errorf("unexpected evaluation: %+v", slot.All[0].Evaluation)
	}
}

func TestPlanDayNoForecast(t *testing.T) {
	day := models.DayForecast{Date: "2025-06-16"}
	_, err := PlanDay(planDate, day, testTideEvents(), nil, nil, models.Calendar{})
	if !errors.Is(err, ErrNoForecastData) {
		t.Fatalf("expected ErrNoForecastData, got %v", err)
	}
}

func TestPlanDayNoTideData(t *testing.T) {
	day := testDayForecast(planDate, nil)
	_, err := PlanDay(planDate, day, nil, nil, nil, models.Calendar{})
	if !errors.Is(err, tide.ErrNoTideData) {
		t.Fatalf("expected ErrNoTideData, got %v", err)
	}
}

func merged0Ranges(plan *models.DayPlan) []models.TimeRange {
	return plan.Merged[0].TimeRanges
}
