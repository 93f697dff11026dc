package models

import "time"

// CurrentWeather is an instantaneous observation from the weather provider
type CurrentWeather struct {
	Time                time.Time `json:"time"`
	WindSpeedKmh        *float64  `json:"windSpeedKmh,omitempty"`
	WindSpeedKnots      *float64  `json:"windSpeedKnots,omitempty"`
	WindGustKmh         *float64  `json:"windGustKmh,omitempty"`
	WindDirectionDeg    *float64  `json:"windDirectionDeg,omitempty"`
	WindDirection       string    `json:"windDirection,omitempty"` // cardinal
	Beaufort            *int      `json:"beaufort,omitempty"`
	Temperature         *float64  `json:"temperature,omitempty"` // °C
	ApparentTemperature *float64  `json:"apparentTemperature,omitempty"`
	Humidity            *float64  `json:"humidity,omitempty"`      // percent
	Precipitation       *float64  `json:"precipitation,omitempty"` // mm
	Rain                *float64  `json:"rain,omitempty"`
}

// ForecastPeriod is one hourly entry of the forecast
type ForecastPeriod struct {
	Time              time.Time `json:"time"`
	Hour              int       `json:"hour"` // local hour of day
	Temperature       *float64  `json:"temperature,omitempty"`
	FeelsLike         *float64  `json:"feelsLike,omitempty"`
	Humidity          *float64  `json:"humidity,omitempty"`
	Pressure          *float64  `json:"pressure,omitempty"`
	WindSpeedKmh      *float64  `json:"windSpeedKmh,omitempty"`
	WindSpeedKnots    *float64  `json:"windSpeedKnots,omitempty"`
	WindGustKmh       *float64  `json:"windGustKmh,omitempty"`
	WindDirectionDeg  *float64  `json:"windDirectionDeg,omitempty"`
	WindDirection     string    `json:"windDirection,omitempty"` // cardinal
	Precipitation     *float64  `json:"precipitation,omitempty"`
	PrecipProbability *float64  `json:"precipProbability,omitempty"` // percent
	WeatherCode       *int      `json:"weatherCode,omitempty"`
}

// DayForecast groups one day's periods with daily aggregates and sun times
type DayForecast struct {
	Date                 string           `json:"date"` // ISO date
	TemperatureMin       *float64         `json:"temperatureMin,omitempty"`
	TemperatureMax       *float64         `json:"temperatureMax,omitempty"`
	WindSpeedMaxKmh      *float64         `json:"windSpeedMaxKmh,omitempty"`
	WindSpeedMaxKnots    *float64         `json:"windSpeedMaxKnots,omitempty"`
	PrecipProbabilityMax *float64         `json:"precipProbabilityMax,omitempty"`
	HumidityAvg          *float64         `json:"humidityAvg,omitempty"`
	Sunrise              *time.Time       `json:"sunrise,omitempty"`
	Sunset               *time.Time       `json:"sunset,omitempty"`
	Periods              []ForecastPeriod `json:"periods"`
}

// Forecast is the multi-day hourly forecast for one location
type Forecast struct {
	Location Location      `json:"location"`
	Days     []DayForecast `json:"days"`
}
