package units

import (
	"math"
	"time"
)

// SunTimes computes approximate sunrise and sunset for a date and
// position using the standard solar transit equations. Accuracy is a few
// minutes, which is enough for daylight gating; the forecast provider's
// own sunrise/sunset values take precedence when present.
func SunTimes(date time.Time, latitude, longitude float64) (sunrise, sunset time.Time) {
	const rad = math.Pi / 180
	const deg = 180 / math.Pi

	// Julian day number
	jd := float64(date.UnixMilli())/86400000 + 2440587.5
	n := jd - 2451545.0

	// Mean solar noon
	j := n - longitude/360

	// Solar mean anomaly
	m := math.Mod(357.5291+0.98560028*j, 360)

	// Equation of center
	c := 1.9148*math.Sin(m*rad) + 0.02*math.Sin(2*m*rad) + 0.0003*math.Sin(3*m*rad)

	// Ecliptic longitude
	lambda := math.Mod(m+c+180+102.9372, 360)

	// Solar transit
	jTransit := 2451545.0 + j + 0.0053*math.Sin(m*rad) - 0.0069*math.Sin(2*lambda*rad)

	// Declination of the sun
	delta := math.Asin(math.Sin(lambda*rad)*math.Sin(23.44*rad)) * deg

	// Hour angle for sunrise/sunset (sun center at -0.83°)
	omega := math.Acos((math.Sin(-0.83*rad)-math.Sin(latitude*rad)*math.Sin(delta*rad))/
		(math.Cos(latitude*rad)*math.Cos(delta*rad))) * deg

	jRise := jTransit - omega/360
	jSet := jTransit + omega/360

	sunrise = time.UnixMilli(int64((jRise - 2440587.5) * 86400000)).In(date.Location())
	sunset = time.UnixMilli(int64((jSet - 2440587.5) * 86400000)).In(date.Location())
	return sunrise, sunset
}
