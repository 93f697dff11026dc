package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderPlanningPane renders the selected day's merged activity windows
func (m Model) renderPlanningPane(width int) string {
	var content strings.Builder

	week := m.full.Week
	if week == nil || (len(week.Days) == 0 && len(week.Skipped) == 0) {
		content.WriteString(mutedStyle.Render("No planning available"))
		return m.pickPaneStyle(PanePlanning).Width(width).Render(content.String())
	}

	if m.dayIdx >= len(week.Days) {
		m.dayIdx = 0
	}
	if len(week.Days) == 0 {
		content.WriteString(mutedStyle.Render("Tide tables missing for every forecast day"))
		return m.pickPaneStyle(PanePlanning).Width(width).Render(content.String())
	}

	day := week.Days[m.dayIdx]
	content.WriteString(labelStyle.Render(dayLabel(day.Date)))
	content.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d/%d)", m.dayIdx+1, len(week.Days))))
	content.WriteString("\n")

	if day.Summary.TemperatureMin != nil && day.Summary.TemperatureMax != nil {
		content.WriteString(mutedStyle.Render(fmt.Sprintf("%.0f–%.0f°C", *day.Summary.TemperatureMin, *day.Summary.TemperatureMax)))
	}
	if day.Summary.WindSpeedMaxKnots != nil {
		content.WriteString(mutedStyle.Render(fmt.Sprintf("  wind up to %.0f kt", *day.Summary.WindSpeedMaxKnots)))
	}
	if day.Summary.Sunrise != nil && day.Summary.Sunset != nil {
		content.WriteString(mutedStyle.Render(fmt.Sprintf("  ☀ %s–%s",
			day.Summary.Sunrise.Format("15:04"), day.Summary.Sunset.Format("15:04"))))
	}
	content.WriteString("\n\n")

	if len(day.Merged) == 0 {
		content.WriteString(mutedStyle.Render("No feasible activity this day"))
		content.WriteString("\n")
	}
	for _, merged := range day.Merged {
		icon := activityIcons[merged.Type]
		if icon == "" {
			icon = "•"
		}
		content.WriteString(valueStyle.Render(fmt.Sprintf("%s %s", icon, merged.Name)))
		content.WriteString(mutedStyle.Render(fmt.Sprintf("  avg %.1f kt", merged.AvgWind)))
		content.WriteString("\n")
		for _, tr := range merged.TimeRanges {
			content.WriteString(mutedStyle.Render(fmt.Sprintf("   %s  tide %.1f→%.1fm",
				tr.Display, tr.TideStart, tr.TideEnd)))
			content.WriteString("\n")
		}
	}

	if len(week.Skipped) > 0 {
		content.WriteString("\n")
		for date, reason := range week.Skipped {
			content.WriteString(scoreWarnStyle.Render(fmt.Sprintf("⚠ %s: %s", date, reason)))
			content.WriteString("\n")
		}
	}

	return m.pickPaneStyle(PanePlanning).Width(width).Render(content.String())
}

// dayLabel turns an ISO date into Today/Tomorrow/weekday
func dayLabel(date string) string {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	today := time.Now()
	switch {
	case sameDay(d, today):
		return "Today"
	case sameDay(d, today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format("Monday Jan 2")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
