package activity

import (
	"strings"
	"testing"
	"time"

	"github.com/mlebrun/sailcast/internal/models"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

// Saturday afternoon, well inside daylight
var saturdayAfternoon = time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC)

func windsurfActivity() models.Activity {
	return models.Activity{
		ID:   "windsurf_chatel",
		Name: "Windsurf",
		Type: models.ActivityWindsurf,
		IdealConditions: models.IdealConditions{
			WindRange:     []float64{12, 20},
			TideMin:       fp(2.5),
			WindDirection: []string{"NW", "N"},
			DaylightOnly:  true,
			NoStorm:       true,
		},
	}
}

func goodConditions() models.Conditions {
	return models.Conditions{
		WindKnots:     15,
		WindDirection: "NW",
		TideHeight:    3.0,
		TidePhase:     models.TideRising,
	}
}

func TestEvaluatePerfectConditions(t *testing.T) {
	eval := Evaluate(windsurfActivity(), goodConditions(), saturdayAfternoon, nil, models.Calendar{})

	if !eval.IsValid {
		t.Fatalf("expected valid evaluation, got reasons %v", eval.Reasons)
	}
	if eval.Score != 100 {
		t.Errorf("expected score 100, got %d", eval.Score)
	}
	if len(eval.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", eval.Reasons)
	}
}

func TestEvaluateWindRange(t *testing.T) {
	tests := []struct {
		name      string
		windKnots float64
		wantValid bool
		wantWord  string
	}{
		{"below range", 8, false, "too low"},
		{"at lower bound", 12, true, ""},
		{"at upper bound", 20, true, ""},
		{"above range", 25, false, "too high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions := goodConditions()
			conditions.WindKnots = tt.windKnots

			eval := Evaluate(windsurfActivity(), conditions, saturdayAfternoon, nil, models.Calendar{})
			if eval.IsValid != tt.wantValid {
				t.Fatalf("windKnots=%g: valid=%v, want %v (reasons %v)", tt.windKnots, eval.IsValid, tt.wantValid, eval.Reasons)
			}
			if !tt.wantValid {
				if eval.Score > 60 {
					t.Errorf("windKnots=%g: expected score <= 60 after wind penalty, got %d", tt.windKnots, eval.Score)
				}
				if !reasonsContain(eval.Reasons, tt.wantWord) {
					t.Errorf("windKnots=%g: reasons %v missing %q", tt.windKnots, eval.Reasons, tt.wantWord)
				}
			}
		})
	}
}

func TestEvaluateWindMinMaxIndependentOfRange(t *testing.T) {
	act := models.Activity{
		ID: "speedsail",
		IdealConditions: models.IdealConditions{
			WindRange: []float64{10, 30},
			WindMin:   fp(15),
		},
	}
	conditions := models.Conditions{WindKnots: 12, WindDirection: "W", TideHeight: 3}

	// 12 knots passes the range but fails the separate minimum
	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.IsValid {
		t.Fatal("expected wind_min to fail independently of wind_range")
	}
	if !reasonsContain(eval.Reasons, "too low") {
		t.Errorf("reasons %v missing wind reason", eval.Reasons)
	}
}

func TestEvaluateTideBounds(t *testing.T) {
	act := models.Activity{
		ID: "sailboat",
		IdealConditions: models.IdealConditions{
			TideMin: fp(2.0),
			TideMax: fp(5.0),
		},
	}

	tests := []struct {
		name      string
		height    float64
		wantValid bool
	}{
		{"below min", 1.5, false},
		{"inside", 3.2, true},
		{"above max", 5.8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions := models.Conditions{WindKnots: 10, TideHeight: tt.height}
			eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
			if eval.IsValid != tt.wantValid {
				t.Errorf("height=%g: valid=%v, want %v (reasons %v)", tt.height, eval.IsValid, tt.wantValid, eval.Reasons)
			}
		})
	}
}

func TestEvaluateDirectionWarning(t *testing.T) {
	conditions := goodConditions()
	conditions.WindDirection = "SE"

	eval := Evaluate(windsurfActivity(), conditions, saturdayAfternoon, nil, models.Calendar{})
	if !eval.IsValid {
		t.Fatalf("direction is a soft constraint, got invalid: %v", eval.Reasons)
	}
	if eval.Score != 85 {
		t.Errorf("expected 15-point direction penalty, got score %d", eval.Score)
	}
	if len(eval.Warnings) == 0 {
		t.Error("expected a direction warning")
	}
}

func TestEvaluateDirectionWraparound(t *testing.T) {
	act := windsurfActivity()
	act.IdealConditions.WindDirection = []string{"N"}

	// 350 degrees is within 22.5 of north across the 0/360 seam
	conditions := goodConditions()
	conditions.WindDirection = "350"

	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.Score != 100 {
		t.Errorf("350 degrees should match preferred N, got score %d with warnings %v", eval.Score, eval.Warnings)
	}

	// 337.5 degrees sits exactly on the tolerance boundary and still matches
	conditions.WindDirection = "337.5"
	eval = Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.Score != 100 || len(eval.Warnings) != 0 {
		t.Errorf("337.5 degrees should match preferred N, got score %d with warnings %v", eval.Score, eval.Warnings)
	}
}

func TestEvaluateIdealDirectionBonus(t *testing.T) {
	act := windsurfActivity()
	act.IdealConditions.WindDirectionIdeal = []string{"NW"}

	// Direction warning elsewhere keeps the score below the clamp so the
	// bonus is observable.
	act.IdealConditions.TidePhase = models.TideRising
	conditions := goodConditions()
	conditions.TidePhase = models.TideFalling

	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	// 100 - 5 (tide phase) + 10 (ideal direction) clamps back to 100
	if eval.Score != 100 {
		t.Errorf("expected ideal-direction bonus to offset phase penalty, got %d", eval.Score)
	}
}

func TestEvaluateTidePhasePreference(t *testing.T) {
	act := windsurfActivity()
	act.IdealConditions.TidePhase = models.TideRising

	conditions := goodConditions()
	conditions.TidePhase = models.TideFalling

	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if !eval.IsValid {
		t.Fatalf("tide phase is a soft constraint, got invalid: %v", eval.Reasons)
	}
	if eval.Score != 95 {
		t.Errorf("expected 5-point phase penalty, got %d", eval.Score)
	}
}

func TestEvaluateDaylight(t *testing.T) {
	night := time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)

	eval := Evaluate(windsurfActivity(), goodConditions(), night, nil, models.Calendar{})
	if eval.IsValid {
		t.Fatal("expected daylight_only activity to fail at 23:00")
	}
	if eval.Score != 0 {
		t.Errorf("expected score 0 after daylight penalty, got %d", eval.Score)
	}
}

func TestEvaluateDaylightOverride(t *testing.T) {
	night := time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)

	// Explicit isDaylight wins over the hour heuristic
	conditions := goodConditions()
	conditions.IsDaylight = bp(true)
	eval := Evaluate(windsurfActivity(), conditions, night, nil, models.Calendar{})
	if !eval.IsValid {
		t.Errorf("explicit daylight override ignored: %v", eval.Reasons)
	}

	noon := saturdayAfternoon
	conditions = goodConditions()
	conditions.IsDaylight = bp(false)
	eval = Evaluate(windsurfActivity(), conditions, noon, nil, models.Calendar{})
	if eval.IsValid {
		t.Error("explicit isDaylight=false should fail daylight_only at noon")
	}
}

func TestEvaluateStormAndRain(t *testing.T) {
	act := windsurfActivity()
	act.IdealConditions.NoRain = true

	conditions := goodConditions()
	conditions.IsStorm = true
	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.IsValid || eval.Score != 0 {
		t.Errorf("storm: valid=%v score=%d, want invalid score 0", eval.IsValid, eval.Score)
	}

	conditions = goodConditions()
	conditions.IsRaining = true
	eval = Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.IsValid {
		t.Error("expected rain to invalidate a no_rain activity")
	}
	if eval.Score != 80 {
		t.Errorf("expected 20-point rain penalty, got %d", eval.Score)
	}
}

func TestEvaluateVisibilityAndTemperature(t *testing.T) {
	act := models.Activity{
		ID: "sailboat",
		IdealConditions: models.IdealConditions{
			VisibilityMin:  fp(2.0),
			TemperatureMin: fp(10.0),
		},
	}

	conditions := models.Conditions{WindKnots: 10, Visibility: fp(0.5), Temperature: fp(5.0)}
	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.IsValid {
		t.Fatal("expected visibility and temperature failures")
	}
	if eval.Score != 40 {
		t.Errorf("expected 100-40-20=40, got %d", eval.Score)
	}
	if len(eval.Reasons) != 2 {
		t.Errorf("expected two reasons, got %v", eval.Reasons)
	}

	// Nil observations skip the checks entirely
	conditions = models.Conditions{WindKnots: 10}
	eval = Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if !eval.IsValid {
		t.Errorf("missing observations must not fail thresholds: %v", eval.Reasons)
	}
}

func TestEvaluateWaveHeight(t *testing.T) {
	act := models.Activity{
		ID:              "sup",
		IdealConditions: models.IdealConditions{WaveHeightMax: fp(0.5)},
	}
	conditions := models.Conditions{WindKnots: 5, SwellHeight: fp(1.2)}

	eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if eval.IsValid {
		t.Fatal("expected wave height failure")
	}
	if eval.Score != 70 {
		t.Errorf("expected 30-point wave penalty, got %d", eval.Score)
	}
}

func TestEvaluateScoreClampedAtZero(t *testing.T) {
	act := windsurfActivity()
	act.IdealConditions.NoRain = true
	act.IdealConditions.TideMax = fp(4.0)

	conditions := models.Conditions{
		WindKnots:  45,
		TideHeight: 1.0,
		IsStorm:    true,
		IsRaining:  true,
	}
	night := time.Date(2025, 6, 14, 2, 0, 0, 0, time.UTC)

	eval := Evaluate(act, conditions, night, nil, models.Calendar{})
	if eval.Score != 0 {
		t.Errorf("expected clamp at 0, got %d", eval.Score)
	}
	if eval.IsValid {
		t.Error("expected invalid")
	}
}

func TestEvaluateTimeSlots(t *testing.T) {
	act := models.Activity{
		ID:              "speedsail",
		IdealConditions: models.IdealConditions{TimeSlots: []string{"weekend"}},
	}
	conditions := models.Conditions{WindKnots: 20}

	tuesday := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	eval := Evaluate(act, conditions, tuesday, nil, models.Calendar{})
	if eval.IsValid {
		t.Error("weekend-only activity should fail on Tuesday")
	}
	if eval.Score != 50 {
		t.Errorf("expected 50-point slot penalty, got %d", eval.Score)
	}

	eval = Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{})
	if !eval.IsValid {
		t.Errorf("weekend-only activity should pass on Saturday: %v", eval.Reasons)
	}

	act.IdealConditions.TimeSlots = []string{"after_18h"}
	evening := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)
	if eval := Evaluate(act, conditions, saturdayAfternoon, nil, models.Calendar{}); eval.IsValid {
		t.Error("after_18h activity should fail at 14:00")
	}
	if eval := Evaluate(act, conditions, evening, nil, models.Calendar{}); !eval.IsValid {
		t.Errorf("after_18h activity should pass at 19:00: %v", eval.Reasons)
	}
}

func TestEvaluateProfileAvailability(t *testing.T) {
	profile := &models.Profile{
		ID:         "marc",
		SkillLevel: models.SkillAdvanced,
		Availability: &models.Availability{
			NonWorkingHours: &models.NonWorkingHours{
				Weekdays:            "18:00-22:00",
				Weekends:            models.Available,
				Holidays:            models.Available,
				SchoolHolidaysZoneB: models.Unavailable,
			},
		},
	}
	calendar := models.Calendar{
		FrenchHolidays: []string{"2025-07-14"},
		SchoolHolidaysZoneB: map[string][]models.HolidayPeriod{
			"2024_2025": {{Name: "spring", Start: "2025-04-12", End: "2025-04-28"}},
		},
	}
	act := models.Activity{ID: "windsurf"}
	conditions := models.Conditions{WindKnots: 15}

	tests := []struct {
		name      string
		when      time.Time
		wantValid bool
	}{
		{"weekday during work", time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), false},
		{"weekday evening window", time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC), true},
		{"weekday at window end", time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC), false},
		{"weekend afternoon", saturdayAfternoon, true},
		{"public holiday afternoon", time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC), true},
		{"school holiday", time.Date(2025, 4, 15, 19, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(act, conditions, tt.when, profile, calendar)
			if eval.IsValid != tt.wantValid {
				t.Errorf("valid=%v, want %v (reasons %v)", eval.IsValid, tt.wantValid, eval.Reasons)
			}
		})
	}
}

func TestEvaluateNilProfileSkipsAvailability(t *testing.T) {
	act := models.Activity{ID: "windsurf"}
	conditions := models.Conditions{WindKnots: 15}
	midWorkday := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	eval := Evaluate(act, conditions, midWorkday, nil, models.Calendar{})
	if !eval.IsValid {
		t.Errorf("nil profile must skip availability: %v", eval.Reasons)
	}
}

func TestFilterAndEvaluateAll(t *testing.T) {
	good := windsurfActivity()
	bad := models.Activity{
		ID:              "wingfoil",
		IdealConditions: models.IdealConditions{WindRange: []float64{25, 35}},
	}
	soft := windsurfActivity()
	soft.ID = "windsurf_soft"
	soft.IdealConditions.TidePhase = models.TideRising

	conditions := goodConditions()
	conditions.TidePhase = models.TideFalling
	activities := []models.Activity{bad, soft, good}

	all := EvaluateAll(activities, conditions, saturdayAfternoon, nil, models.Calendar{})
	if len(all) != 3 {
		t.Fatalf("expected 3 evaluated activities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Evaluation.Score < all[i].Evaluation.Score {
			t.Errorf("results not sorted by score: %d before %d", all[i-1].Evaluation.Score, all[i].Evaluation.Score)
		}
	}

	valid := Filter(activities, conditions, saturdayAfternoon, nil, models.Calendar{})
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid activities, got %d", len(valid))
	}
	if valid[0].ID != "windsurf_chatel" {
		t.Errorf("expected best activity first, got %s", valid[0].ID)
	}
}

func TestCanProfileDo(t *testing.T) {
	marc := &models.Profile{ID: "marc", SkillLevel: models.SkillAdvanced}
	lea := &models.Profile{ID: "lea", SkillLevel: models.SkillBeginner}

	tests := []struct {
		name    string
		profile *models.Profile
		act     models.Activity
		want    bool
	}{
		{"listed and skilled", marc, models.Activity{SuitableFor: []string{"marc"}, SkillLevelRequired: models.SkillIntermediate}, true},
		{"not listed", lea, models.Activity{SuitableFor: []string{"marc"}}, false},
		{"all with skill gate", lea, models.Activity{SuitableFor: []string{"all"}, SkillLevelRequired: models.SkillAdvanced}, false},
		{"all without skill gate", lea, models.Activity{SuitableFor: []string{"all"}}, true},
		{"empty suitable_for open to anyone", lea, models.Activity{}, true},
		{"nil profile", nil, models.Activity{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanProfileDo(tt.profile, tt.act); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func reasonsContain(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}
