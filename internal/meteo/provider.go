// Package meteo fetches current weather and hourly forecasts from the
// Open-Meteo Météo France endpoint.
package meteo

import (
	"context"

	"github.com/mlebrun/sailcast/internal/models"
)

// Provider supplies weather observations for a coastal spot
type Provider interface {
	// Current returns the latest instantaneous observation
	Current(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error)

	// Forecast returns the hourly forecast grouped by day, including
	// sunrise and sunset for each day.
	Forecast(ctx context.Context, lat, lon float64, days int) (*models.Forecast, error)
}
