package ui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
)

// renderWindChart draws today's hourly wind speed as a braille line
// chart. Returns "" when there is nothing to plot.
func (m Model) renderWindChart(width int) string {
	if m.full == nil || m.full.Week == nil || len(m.full.Week.Days) == 0 {
		return ""
	}

	today := m.full.Week.Days[0]
	times := make([]time.Time, 0, len(today.Slots))
	values := make([]float64, 0, len(today.Slots))
	for _, slot := range today.Slots {
		times = append(times, slot.Time)
		values = append(values, slot.Conditions.WindKnots)
	}
	if len(values) == 0 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if minV == maxV {
		maxV += 0.5
		minV -= 0.5
	}

	if width < 24 {
		width = 24
	}
	height := 8

	lc := timeserieslinechart.New(width, height)
	lc.SetTimeRange(times[0], times[len(times)-1])
	lc.SetViewTimeAndYRange(times[0], times[len(times)-1], minV, maxV)

	hours := int(times[len(times)-1].Sub(times[0]).Hours())
	if hours <= 0 {
		hours = 1
	}
	xStep := 1
	if hours < lc.GraphWidth() {
		xStep = lc.GraphWidth() / hours
		if xStep < 1 {
			xStep = 1
		}
	}
	lc.SetXStep(xStep)
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		return time.Unix(int64(v), 0).In(time.Local).Format("15h")
	}

	for i, tm := range times {
		lc.Push(timeserieslinechart.TimePoint{Time: tm, Value: values[i]})
	}
	lc.DrawBraille()
	return lc.View()
}
