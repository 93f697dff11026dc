package ui

import (
	"fmt"
	"strings"
)

// renderConditionsPane renders the current observation pane
func (m Model) renderConditionsPane(width int) string {
	var content strings.Builder

	snapshot := m.full.Snapshot
	if snapshot == nil || snapshot.Weather == nil {
		content.WriteString(mutedStyle.Render("No current observation available"))
		return paneStyle.Width(width).Render(content.String())
	}

	weather := snapshot.Weather

	if weather.WindSpeedKnots != nil {
		content.WriteString(labelStyle.Render("Wind: "))
		wind := fmt.Sprintf("%.1f kt", *weather.WindSpeedKnots)
		if weather.WindDirection != "" {
			wind += " " + weather.WindDirection
		}
		if weather.Beaufort != nil {
			wind += fmt.Sprintf(" (Beaufort %d)", *weather.Beaufort)
		}
		content.WriteString(valueStyle.Render(wind))
		content.WriteString("\n")
	}
	if weather.WindGustKmh != nil {
		content.WriteString(labelStyle.Render("Gusts: "))
		content.WriteString(valueStyle.Render(fmt.Sprintf("%.0f km/h", *weather.WindGustKmh)))
		content.WriteString("\n")
	}
	if weather.Temperature != nil {
		content.WriteString(labelStyle.Render("Temperature: "))
		content.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°C", *weather.Temperature)))
		content.WriteString("\n")
	}

	if snapshot.Tide != nil {
		content.WriteString(labelStyle.Render("Tide: "))
		trend := "falling ↓"
		if snapshot.Tide.Rising {
			trend = "rising ↑"
		}
		tideStr := fmt.Sprintf("%.2f m, %s", snapshot.Tide.Height, trend)
		if snapshot.Tide.Coefficient != nil {
			tideStr += fmt.Sprintf(" (coeff %d)", *snapshot.Tide.Coefficient)
		}
		content.WriteString(valueStyle.Render(tideStr))
		content.WriteString("\n")

		content.WriteString(labelStyle.Render("Waters: "))
		content.WriteString(mutedStyle.Render(fmt.Sprintf("low %s %.1fm • high %s %.1fm",
			snapshot.Tide.Low.Time, snapshot.Tide.Low.Height,
			snapshot.Tide.High.Time, snapshot.Tide.High.Height)))
		content.WriteString("\n")
	} else {
		content.WriteString(mutedStyle.Render("No tide data for today"))
		content.WriteString("\n")
	}

	// Wind trend over today's forecast
	if chart := m.renderWindChart(width - 8); chart != "" {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("Wind today (kt)"))
		content.WriteString("\n")
		content.WriteString(chart)
	}

	return paneStyle.Width(width).Render(content.String())
}
