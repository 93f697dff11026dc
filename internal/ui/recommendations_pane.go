package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlebrun/sailcast/internal/models"
)

var activityIcons = map[models.ActivityType]string{
	models.ActivitySailboat:  "⛵",
	models.ActivityWindsurf:  "🏄",
	models.ActivityWingfoil:  "🪁",
	models.ActivitySpeedsail: "🏎",
	models.ActivitySUP:       "🛶",
}

// renderRecommendationsPane renders the reconciled now + later list
func (m Model) renderRecommendationsPane(width int) string {
	var content strings.Builder

	recommended := m.full.Recommended
	if len(recommended) == 0 {
		content.WriteString(mutedStyle.Render("Nothing to recommend today"))
		return m.pickPaneStyle(PaneRecommendations).Width(width).Render(content.String())
	}

	for i, rec := range recommended {
		icon := activityIcons[rec.Type]
		if icon == "" {
			icon = "•"
		}

		name := fmt.Sprintf("%s %s", icon, rec.Name)
		if rec.Period == models.PeriodCurrent {
			content.WriteString(valueStyle.Render(name))
			if rec.Evaluation != nil {
				content.WriteString("  ")
				content.WriteString(scoreStyle(rec.Evaluation.Score).Render(fmt.Sprintf("%d/100", rec.Evaluation.Score)))
			}
			content.WriteString("  ")
			content.WriteString(scoreGoodStyle.Render("now"))
		} else {
			content.WriteString(mutedStyle.Render(name))
			content.WriteString("  ")
			content.WriteString(mutedStyle.Render("later"))
		}
		content.WriteString("\n")

		for _, tr := range rec.TimeRanges {
			content.WriteString(mutedStyle.Render(fmt.Sprintf("   %s  tide %.1f→%.1fm  wind %.1f kt",
				tr.Display, tr.TideStart, tr.TideEnd, tr.AvgWind)))
			content.WriteString("\n")
		}

		if rec.Evaluation != nil && len(rec.Evaluation.Warnings) > 0 {
			for _, w := range rec.Evaluation.Warnings {
				content.WriteString(scoreWarnStyle.Render("   ⚠ " + w))
				content.WriteString("\n")
			}
		}

		if i < len(recommended)-1 {
			content.WriteString("\n")
		}
	}

	// Gear suggestions for the best current activity
	if gear := m.renderGearLine(); gear != "" {
		content.WriteString("\n")
		content.WriteString(gear)
	}

	return m.pickPaneStyle(PaneRecommendations).Width(width).Render(content.String())
}

func (m Model) renderGearLine() string {
	for _, rec := range m.full.Recommended {
		if rec.Period != models.PeriodCurrent || rec.GearMatches == nil || rec.GearMatches.IsEmpty() {
			continue
		}

		names := []string{}
		appendNames := func(items []models.GearInfo) {
			for _, g := range items {
				label := g.Name
				if g.IsFavorite {
					label = "⭐ " + label
				}
				names = append(names, label)
			}
		}
		appendNames(rec.GearMatches.Boards)
		appendNames(rec.GearMatches.Sails)
		appendNames(rec.GearMatches.Wings)
		appendNames(rec.GearMatches.Foils)
		appendNames(rec.GearMatches.Boats)
		appendNames(rec.GearMatches.Speedsails)

		if len(names) == 0 {
			return ""
		}
		return labelStyle.Render("Gear: ") + mutedStyle.Render(strings.Join(names, ", "))
	}
	return ""
}

func (m Model) pickPaneStyle(pane ActivePane) lipgloss.Style {
	if m.activePane == pane {
		return activePaneStyle
	}
	return paneStyle
}
