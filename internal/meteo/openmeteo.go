package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/units"
)

// hourlyTimeLayout is the partial ISO format Open-Meteo uses for hourly
// and daily timestamps, expressed in the requested timezone.
const hourlyTimeLayout = "2006-01-02T15:04"

var currentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"precipitation",
	"rain",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
}

var hourlyFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"precipitation",
	"precipitation_probability",
	"weather_code",
	"surface_pressure",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
}

// OpenMeteoClient implements Provider against the Open-Meteo Météo
// France model. No API key is required.
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	timezone   string
}

// NewOpenMeteoClient creates a client for the Météo France endpoint
func NewOpenMeteoClient() *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: "https://api.open-meteo.com/v1/meteofrance",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "sailcast/1.0 (github.com/mlebrun/sailcast)",
		timezone:  "Europe/Paris",
	}
}

// Current retrieves the latest observation for a location
func (c *OpenMeteoClient) Current(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", joinFields(currentFields))
	params.Set("wind_speed_unit", "kmh")
	params.Set("timezone", c.timezone)

	var payload currentResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	if payload.Current == nil {
		return nil, fmt.Errorf("current weather missing from response")
	}

	cur := payload.Current
	observed := models.CurrentWeather{
		WindSpeedKmh:        cur.WindSpeed,
		WindGustKmh:         cur.WindGusts,
		WindDirectionDeg:    cur.WindDirection,
		Temperature:         cur.Temperature,
		ApparentTemperature: cur.ApparentTemperature,
		Humidity:            cur.Humidity,
		Precipitation:       cur.Precipitation,
		Rain:                cur.Rain,
	}
	if t, err := c.parseLocalTime(cur.Time, payload.Timezone); err == nil {
		observed.Time = t
	} else {
		observed.Time = time.Now()
	}
	if cur.WindSpeed != nil {
		knots := units.KmhToKnots(*cur.WindSpeed)
		observed.WindSpeedKnots = &knots
		bft := units.Beaufort(*cur.WindSpeed)
		observed.Beaufort = &bft
	}
	if cur.WindDirection != nil {
		observed.WindDirection = units.DegreesToCompass(*cur.WindDirection)
	}
	return &observed, nil
}

// Forecast retrieves the hourly forecast grouped by day
func (c *OpenMeteoClient) Forecast(ctx context.Context, lat, lon float64, days int) (*models.Forecast, error) {
	if days <= 0 {
		days = 7
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("hourly", joinFields(hourlyFields))
	params.Set("daily", "sunrise,sunset")
	params.Set("wind_speed_unit", "kmh")
	params.Set("timezone", c.timezone)
	params.Set("forecast_days", strconv.Itoa(days))

	var payload forecastResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	if len(payload.Hourly.Time) == 0 {
		return nil, fmt.Errorf("hourly forecast missing from response")
	}

	dayMap := c.groupByDay(payload.Hourly, payload.Timezone)
	c.attachSunTimes(dayMap, payload.Daily, payload.Timezone)

	forecast := &models.Forecast{
		Location: models.Location{
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
			Timezone:  payload.Timezone,
		},
	}
	for _, day := range dayMap {
		forecast.Days = append(forecast.Days, *day)
	}
	sort.Slice(forecast.Days, func(i, j int) bool {
		return forecast.Days[i].Date < forecast.Days[j].Date
	})
	return forecast, nil
}

func (c *OpenMeteoClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseLocalTime parses a partial ISO timestamp in the response timezone
func (c *OpenMeteoClient) parseLocalTime(value, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return time.ParseInLocation(hourlyTimeLayout, value, loc)
}

func (c *OpenMeteoClient) groupByDay(hourly hourlyBlock, tz string) map[string]*models.DayForecast {
	type dayAgg struct {
		humidityTotal float64
		humidityCount int
	}

	dayMap := make(map[string]*models.DayForecast)
	aggs := make(map[string]*dayAgg)

	for i, ts := range hourly.Time {
		t, err := c.parseLocalTime(ts, tz)
		if err != nil {
			continue
		}
		dateKey := ts[:10]

		period := models.ForecastPeriod{
			Time:              t,
			Hour:              t.Hour(),
			Temperature:       at(hourly.Temperature, i),
			FeelsLike:         at(hourly.ApparentTemperature, i),
			Humidity:          at(hourly.Humidity, i),
			Pressure:          at(hourly.SurfacePressure, i),
			WindSpeedKmh:      at(hourly.WindSpeed, i),
			WindGustKmh:       at(hourly.WindGusts, i),
			WindDirectionDeg:  at(hourly.WindDirection, i),
			Precipitation:     at(hourly.Precipitation, i),
			PrecipProbability: at(hourly.PrecipProbability, i),
			WeatherCode:       at(hourly.WeatherCode, i),
		}
		if period.WindSpeedKmh != nil {
			knots := units.KmhToKnots(*period.WindSpeedKmh)
			period.WindSpeedKnots = &knots
		}
		if period.WindDirectionDeg != nil {
			period.WindDirection = units.DegreesToCompass(*period.WindDirectionDeg)
		}

		day, ok := dayMap[dateKey]
		if !ok {
			day = &models.DayForecast{Date: dateKey}
			dayMap[dateKey] = day
			aggs[dateKey] = &dayAgg{}
		}
		day.Periods = append(day.Periods, period)

		if period.Temperature != nil {
			if day.TemperatureMin == nil || *period.Temperature < *day.TemperatureMin {
				day.TemperatureMin = period.Temperature
			}
			if day.TemperatureMax == nil || *period.Temperature > *day.TemperatureMax {
				day.TemperatureMax = period.Temperature
			}
		}
		if period.WindSpeedKmh != nil {
			if day.WindSpeedMaxKmh == nil || *period.WindSpeedKmh > *day.WindSpeedMaxKmh {
				day.WindSpeedMaxKmh = period.WindSpeedKmh
				day.WindSpeedMaxKnots = period.WindSpeedKnots
			}
		}
		if period.PrecipProbability != nil {
			if day.PrecipProbabilityMax == nil || *period.PrecipProbability > *day.PrecipProbabilityMax {
				day.PrecipProbabilityMax = period.PrecipProbability
			}
		}
		if period.Humidity != nil {
			aggs[dateKey].humidityTotal += *period.Humidity
			aggs[dateKey].humidityCount++
		}
	}

	for dateKey, agg := range aggs {
		if agg.humidityCount > 0 {
			avg := agg.humidityTotal / float64(agg.humidityCount)
			dayMap[dateKey].HumidityAvg = &avg
		}
	}
	return dayMap
}

func (c *OpenMeteoClient) attachSunTimes(dayMap map[string]*models.DayForecast, daily dailyBlock, tz string) {
	for i, dateKey := range daily.Time {
		day, ok := dayMap[dateKey]
		if !ok {
			continue
		}
		if i < len(daily.Sunrise) {
			if t, err := c.parseLocalTime(daily.Sunrise[i], tz); err == nil {
				day.Sunrise = &t
			}
		}
		if i < len(daily.Sunset) {
			if t, err := c.parseLocalTime(daily.Sunset[i], tz); err == nil {
				day.Sunset = &t
			}
		}
	}
}

// at returns a pointer to the i-th element, nil past the end or when the
// value itself is null in the payload.
func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

// Internal types for Open-Meteo API responses

type currentResponse struct {
	Timezone string        `json:"timezone"`
	Current  *currentBlock `json:"current"`
}

type currentBlock struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	Humidity            *float64 `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	Precipitation       *float64 `json:"precipitation"`
	Rain                *float64 `json:"rain"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WindDirection       *float64 `json:"wind_direction_10m"`
	WindGusts           *float64 `json:"wind_gusts_10m"`
}

type forecastResponse struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  string      `json:"timezone"`
	Hourly    hourlyBlock `json:"hourly"`
	Daily     dailyBlock  `json:"daily"`
}

type hourlyBlock struct {
	Time                []string   `json:"time"`
	Temperature         []*float64 `json:"temperature_2m"`
	Humidity            []*float64 `json:"relative_humidity_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	Precipitation       []*float64 `json:"precipitation"`
	PrecipProbability   []*float64 `json:"precipitation_probability"`
	WeatherCode         []*int     `json:"weather_code"`
	SurfacePressure     []*float64 `json:"surface_pressure"`
	WindSpeed           []*float64 `json:"wind_speed_10m"`
	WindDirection       []*float64 `json:"wind_direction_10m"`
	WindGusts           []*float64 `json:"wind_gusts_10m"`
}

type dailyBlock struct {
	Time    []string `json:"time"`
	Sunrise []string `json:"sunrise"`
	Sunset  []string `json:"sunset"`
}
