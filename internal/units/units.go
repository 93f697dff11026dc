// Package units provides the pure numeric conversions and calendar
// predicates shared by the evaluation engine: speed units, the 16-point
// compass rose, the Beaufort scale and holiday checks.
package units

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mlebrun/sailcast/internal/models"
)

// Conversion factors between wind speed units
const (
	KmhPerKnot = 1 / 0.539957
	MsPerKnot  = 1 / 1.94384
)

// compassRose maps the 16-point rose to degrees
var compassRose = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// KmhToKnots converts km/h to knots
func KmhToKnots(kmh float64) float64 {
	return kmh / KmhPerKnot
}

// MsToKnots converts m/s to knots
func MsToKnots(ms float64) float64 {
	return ms / MsPerKnot
}

// Beaufort returns the Beaufort force (0-12) for a wind speed in km/h
func Beaufort(kmh float64) int {
	thresholds := []float64{1, 6, 12, 20, 29, 39, 50, 62, 75, 89, 103, 118}
	for force, limit := range thresholds {
		if kmh < limit {
			return force
		}
	}
	return 12
}

// DegreesToCompass converts a bearing in degrees to the nearest point of
// the 16-point rose.
func DegreesToCompass(degrees float64) string {
	index := int(math.Round(degrees/22.5)) % 16
	if index < 0 {
		index += 16
	}
	return compassPoints[index]
}

// NormalizeDirection resolves a direction given as either a compass point
// ("NW") or raw degrees ("315") to degrees. ok is false for unrecognized
// input.
func NormalizeDirection(direction string) (float64, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(direction))
	if trimmed == "" {
		return 0, false
	}
	if deg, ok := compassRose[trimmed]; ok {
		return deg, true
	}
	if deg, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return deg, true
	}
	return 0, false
}

// IsWeekend reports whether t falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsFrenchHoliday reports whether t's date appears in the holiday list
func IsFrenchHoliday(t time.Time, holidays []string) bool {
	date := t.Format("2006-01-02")
	for _, h := range holidays {
		if h == date {
			return true
		}
	}
	return false
}

// IsSchoolHoliday reports whether t falls inside any school holiday
// period, whichever school year it belongs to. Bounds are inclusive.
func IsSchoolHoliday(t time.Time, periods map[string][]models.HolidayPeriod) bool {
	date := t.Format("2006-01-02")
	for _, year := range periods {
		for _, p := range year {
			if date >= p.Start && date <= p.End {
				return true
			}
		}
	}
	return false
}

// DefaultDaylight is the fallback daylight heuristic used when no
// sunrise/sunset data is available: 7h to 21h inclusive.
func DefaultDaylight(t time.Time) bool {
	h := t.Hour()
	return h >= 7 && h <= 21
}
