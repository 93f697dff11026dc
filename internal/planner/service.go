package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlebrun/sailcast/internal/activity"
	"github.com/mlebrun/sailcast/internal/catalog"
	"github.com/mlebrun/sailcast/internal/meteo"
	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/tide"
	"github.com/mlebrun/sailcast/internal/units"
)

// TideSource supplies the tide table for a calendar day
type TideSource interface {
	EventsForDay(date time.Time) ([]models.TideEvent, error)
}

// Service wires the catalog, weather provider and tide source into the
// recommendation and planning operations.
type Service struct {
	catalog *catalog.Cache
	weather meteo.Provider
	tides   TideSource
	log     *log.Logger
	now     func() time.Time
}

// NewService creates a planning service
func NewService(cache *catalog.Cache, weather meteo.Provider, tides TideSource, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		catalog: cache,
		weather: weather,
		tides:   tides,
		log:     logger,
		now:     time.Now,
	}
}

// Snapshot bundles the current observation with the tide reading
type Snapshot struct {
	Weather *models.CurrentWeather `json:"weather"`
	Tide    *tide.Reading          `json:"tide,omitempty"`
	Time    time.Time              `json:"time"`
}

// NowRecommendations is the "what can I do right now" result. When
// weather or tide data is missing, Activities is empty and Message
// explains why; that state is distinct from valid data with no feasible
// activity.
type NowRecommendations struct {
	Profile     *models.Profile                 `json:"profile"`
	Snapshot    *Snapshot                       `json:"snapshot"`
	Activities  []models.ActivityWithEvaluation `json:"activities"`
	Gear        *models.GearSelection           `json:"recommendedGear,omitempty"`
	Message     string                          `json:"message,omitempty"`
	GeneratedAt time.Time                       `json:"timestamp"`
}

// WeekPlanning holds one DayPlan per forecast day. Days whose tide
// table is unavailable are listed in Skipped with the reason instead of
// being planned with fabricated heights.
type WeekPlanning struct {
	Profile     *models.Profile   `json:"profile"`
	Days        []models.DayPlan  `json:"planning"`
	Skipped     map[string]string `json:"skippedDays,omitempty"`
	GeneratedAt time.Time         `json:"timestamp"`
}

// FullPlanning combines the now view with today's plan into one sorted
// recommendation list plus the remaining days.
type FullPlanning struct {
	Profile     *models.Profile              `json:"profile"`
	Snapshot    *Snapshot                    `json:"snapshot"`
	Recommended []models.RecommendedActivity `json:"recommended"`
	Week        *WeekPlanning                `json:"week"`
	GeneratedAt time.Time                    `json:"timestamp"`
}

// CurrentSnapshot fetches the current weather and today's tide reading
// concurrently. A missing tide table leaves Snapshot.Tide nil rather
// than failing the whole snapshot.
func (s *Service) CurrentSnapshot(ctx context.Context) (*Snapshot, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	loc := cat.PlanningConfig.Location

	type weatherResult struct {
		current *models.CurrentWeather
		err     error
	}
	type tideResult struct {
		reading *tide.Reading
		err     error
	}

	weatherCh := make(chan weatherResult, 1)
	tideCh := make(chan tideResult, 1)

	go func() {
		current, err := s.weather.Current(ctx, loc.Latitude, loc.Longitude)
		weatherCh <- weatherResult{current, err}
	}()
	go func() {
		now := s.now()
		events, err := s.tides.EventsForDay(now)
		if err != nil {
			tideCh <- tideResult{nil, err}
			return
		}
		reading, err := tide.EstimateAt(now, events)
		tideCh <- tideResult{reading, err}
	}()

	wr := <-weatherCh
	tr := <-tideCh

	if wr.err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", wr.err)
	}
	if tr.err != nil {
		s.log.Warn("tide reading unavailable", "err", tr.err)
	}

	return &Snapshot{Weather: wr.current, Tide: tr.reading, Time: s.now()}, nil
}

// Now evaluates the profile's activities against the current snapshot
func (s *Service) Now(ctx context.Context, profileID string) (*NowRecommendations, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	profile, err := catalog.ProfileByID(cat, profileID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.CurrentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &NowRecommendations{
		Profile:     profile,
		Snapshot:    snapshot,
		Activities:  []models.ActivityWithEvaluation{},
		GeneratedAt: s.now(),
	}

	if snapshot.Weather == nil || snapshot.Weather.WindSpeedKnots == nil {
		result.Message = "Insufficient weather data for recommendations"
		return result, nil
	}
	if snapshot.Tide == nil {
		result.Message = "Insufficient tide data for recommendations"
		return result, nil
	}

	conditions := snapshotConditions(snapshot)
	profileActivities := suitableActivities(cat.Activities, profile)

	result.Activities = activity.Filter(profileActivities, conditions, s.now(), profile, cat.Calendar)
	gear := activity.RecommendedGear(profile, cat.Equipment, conditions.WindKnots)
	result.Gear = &gear
	return result, nil
}

// Week plans every forecast day for the profile. A day without tide
// data is recorded in Skipped; other failures abort.
func (s *Service) Week(ctx context.Context, profileID string) (*WeekPlanning, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	profile, err := catalog.ProfileByID(cat, profileID)
	if err != nil {
		return nil, err
	}

	loc := cat.PlanningConfig.Location
	forecast, err := s.weather.Forecast(ctx, loc.Latitude, loc.Longitude, cat.PlanningConfig.ForecastDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	profileActivities := suitableActivities(cat.Activities, profile)

	planning := &WeekPlanning{
		Profile:     profile,
		Days:        []models.DayPlan{},
		Skipped:     map[string]string{},
		GeneratedAt: s.now(),
	}

	for _, day := range forecast.Days {
		date, err := time.ParseInLocation("2006-01-02", day.Date, s.now().Location())
		if err != nil {
			s.log.Warn("skipping malformed forecast date", "date", day.Date)
			continue
		}

		if day.Sunrise == nil || day.Sunset == nil {
			sunrise, sunset := units.SunTimes(date, loc.Latitude, loc.Longitude)
			day.Sunrise, day.Sunset = &sunrise, &sunset
		}

		events, err := s.tides.EventsForDay(date)
		if err != nil || len(events) == 0 {
			planning.Skipped[day.Date] = "tide data unavailable"
			s.log.Warn("no tide table for day, skipping", "date", day.Date)
			continue
		}

		plan, err := PlanDay(date, day, events, profileActivities, profile, cat.Calendar)
		if err != nil {
			if errors.Is(err, tide.ErrNoTideData) || errors.Is(err, tide.ErrIncompleteTideData) {
				planning.Skipped[day.Date] = "tide data unavailable"
				continue
			}
			return nil, fmt.Errorf("failed to plan %s: %w", day.Date, err)
		}
		planning.Days = append(planning.Days, *plan)
	}
	return planning, nil
}

// Full produces the combined dashboard payload: now recommendations
// reconciled with today's plan, plus the full week.
func (s *Service) Full(ctx context.Context, profileID string) (*FullPlanning, error) {
	now, err := s.Now(ctx, profileID)
	if err != nil {
		return nil, err
	}
	week, err := s.Week(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var todayMerged []models.MergedActivity
	today := s.now().Format("2006-01-02")
	for _, day := range week.Days {
		if day.Date == today {
			todayMerged = day.Merged
			break
		}
	}

	return &FullPlanning{
		Profile:     now.Profile,
		Snapshot:    now.Snapshot,
		Recommended: MergeCurrent(now.Activities, todayMerged, now.Gear),
		Week:        week,
		GeneratedAt: s.now(),
	}, nil
}

// snapshotConditions converts an observation into the evaluator's input
func snapshotConditions(snapshot *Snapshot) models.Conditions {
	weather := snapshot.Weather

	windKnots := 0.0
	if weather.WindSpeedKnots != nil {
		windKnots = *weather.WindSpeedKnots
	}
	raining := weather.Rain != nil && *weather.Rain > 0

	return models.Conditions{
		WindKnots:     windKnots,
		WindDirection: weather.WindDirection,
		TideHeight:    snapshot.Tide.Height,
		TidePhase:     snapshot.Tide.Phase(),
		IsRaining:     raining,
		IsStorm:       windKnots > stormWindKnots,
		Temperature:   weather.Temperature,
	}
}

func suitableActivities(activities []models.Activity, profile *models.Profile) []models.Activity {
	suitable := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if activity.CanProfileDo(profile, a) {
			suitable = append(suitable, a)
		}
	}
	return suitable
}
