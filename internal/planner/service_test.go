package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlebrun/sailcast/internal/catalog"
	"github.com/mlebrun/sailcast/internal/models"
)

type fakeProvider struct {
	current  *models.CurrentWeather
	forecast *models.Forecast
	err      error
}

func (f *fakeProvider) Current(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	return f.current, f.err
}

func (f *fakeProvider) Forecast(ctx context.Context, lat, lon float64, days int) (*models.Forecast, error) {
	return f.forecast, f.err
}

type fakeTides struct {
	byDay map[string][]models.TideEvent
}

func (f *fakeTides) EventsForDay(date time.Time) ([]models.TideEvent, error) {
	events, ok := f.byDay[date.Format("2006-01-02")]
	if !ok {
		return nil, errors.New("no tide file for day")
	}
	return events, nil
}

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Profiles: []models.Profile{
			{ID: "marc", Name: "Marc", SkillLevel: models.SkillAdvanced},
		},
		Activities: []models.Activity{
			{
				ID:   "windsurf",
				Name: "Windsurf",
				IdealConditions: models.IdealConditions{
					WindRange: []float64{10, 20},
				},
				SuitableFor: []string{"all"},
			},
			{
				ID:          "expert_only",
				SuitableFor: []string{"all"},
				IdealConditions: models.IdealConditions{
					WindRange: []float64{10, 20},
				},
				SkillLevelRequired: models.SkillExpert,
			},
		},
		Equipment: []models.Equipment{
			{ID: "board", Name: "Board", Type: models.GearWindsurfBoard, WindRange: []float64{8, 25}, Users: []string{"all"}},
		},
		PlanningConfig: models.PlanningConfig{
			Location:     models.Location{Name: "Châtelaillon-Plage", Latitude: 46.0747, Longitude: -1.0881},
			ForecastDays: 2,
		},
	}
}

func newTestService(provider *fakeProvider, tides *fakeTides) *Service {
	cache := catalog.NewCache(func(ctx context.Context) (*models.Catalog, error) {
		return testCatalog(), nil
	})
	svc := NewService(cache, provider, tides, nil)
	// Saturday noon, no availability rules in play
	svc.now = func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestNowRecommendsValidActivities(t *testing.T) {
	provider := &fakeProvider{
		current: &models.CurrentWeather{
			WindSpeedKnots: fp(15),
			WindDirection:  "NW",
			Temperature:    fp(22),
		},
	}
	tides := &fakeTides{byDay: map[string][]models.TideEvent{
		"2025-06-14": testTideEvents(),
	}}

	svc := newTestService(provider, tides)
	result, err := svc.Now(context.Background(), "marc")
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}

	if result.Message != "" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if len(result.Activities) != 1 || result.Activities[0].ID != "windsurf" {
		t.Fatalf("expected only the windsurf activity, got %+v", result.Activities)
	}
	// The expert-only activity was excluded before evaluation
	for _, a := range result.Activities {
		if a.ID == "expert_only" {
			t.Error("profile skill gate not applied")
		}
	}
	if result.Gear == nil || len(result.Gear.Boards) != 1 {
		t.Errorf("expected gear recommendation, got %+v", result.Gear)
	}
	if result.Snapshot == nil || result.Snapshot.Tide == nil {
		t.Fatal("expected a tide reading in the snapshot")
	}
}

func TestNowInsufficientTideData(t *testing.T) {
	provider := &fakeProvider{
		current: &models.CurrentWeather{WindSpeedKnots: fp(15), WindDirection: "NW"},
	}
	tides := &fakeTides{byDay: map[string][]models.TideEvent{}}

	svc := newTestService(provider, tides)
	result, err := svc.Now(context.Background(), "marc")
	if err != nil {
		t.Fatalf("missing tide data is a degraded state, not an error: %v", err)
	}

	if result.Message == "" {
		t.Error("expected an insufficient-data message")
	}
	if len(result.Activities) != 0 {
		t.Errorf("expected no recommendations without tide data, got %d", len(result.Activities))
	}
}

func TestNowInsufficientWeatherData(t *testing.T) {
	provider := &fakeProvider{current: &models.CurrentWeather{}}
	tides := &fakeTides{byDay: map[string][]models.TideEvent{
		"2025-06-14": testTideEvents(),
	}}

	svc := newTestService(provider, tides)
	result, err := svc.Now(context.Background(), "marc")
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	if result.Message == "" {
		t.Error("expected an insufficient-data message when wind is missing")
	}
}

func TestNowUnknownProfile(t *testing.T) {
	svc := newTestService(&fakeProvider{}, &fakeTides{})
	if _, err := svc.Now(context.Background(), "nobody"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeekSkipsDaysWithoutTideData(t *testing.T) {
	day1 := testDayForecast(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), map[int]float64{9: 15})
	day2 := testDayForecast(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), map[int]float64{9: 15})

	provider := &fakeProvider{
		forecast: &models.Forecast{Days: []models.DayForecast{day1, day2}},
	}
	tides := &fakeTides{byDay: map[string][]models.TideEvent{
		"2025-06-14": testTideEvents(),
	}}

	svc := newTestService(provider, tides)
	week, err := svc.Week(context.Background(), "marc")
	if err != nil {
		t.Fatalf("Week() error: %v", err)
	}

	if len(week.Days) != 1 || week.Days[0].Date != "2025-06-14" {
		t.Fatalf("expected only the 14th planned, got %+v", week.Days)
	}
	if reason, ok := week.Skipped["2025-06-15"]; !ok || reason == "" {
		t.Errorf("expected the 15th marked as skipped, got %+v", week.Skipped)
	}
}

func TestFullCombinesNowAndToday(t *testing.T) {
	today := testDayForecast(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), map[int]float64{9: 15, 12: 15})

	provider := &fakeProvider{
		current: &models.CurrentWeather{
			WindSpeedKnots: fp(15),
			WindDirection:  "NW",
		},
		forecast: &models.Forecast{Days: []models.DayForecast{today}},
	}
	tides := &fakeTides{byDay: map[string][]models.TideEvent{
		"2025-06-14": testTideEvents(),
	}}

	svc := newTestService(provider, tides)
	full, err := svc.Full(context.Background(), "marc")
	if err != nil {
		t.Fatalf("Full() error: %v", err)
	}

	if len(full.Recommended) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	top := full.Recommended[0]
	if top.ID != "windsurf" || top.Period != models.PeriodCurrent {
		t.Errorf("expected windsurf current on top, got %s/%s", top.ID, top.Period)
	}
	if len(top.TimeRanges) == 0 {
		t.Error("expected the current activity to carry today's planned ranges")
	}
	if full.Week == nil || len(full.Week.Days) != 1 {
		t.Errorf("expected the week planning attached")
	}
}
