// Package tide estimates tide height between tabulated high and low
// waters using the rule of twelfths, and resolves which events bracket an
// arbitrary instant of a day.
package tide

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlebrun/sailcast/internal/models"
)

const minutesPerDay = 24 * 60

// twelfthsPattern apportions a half-cycle's total rise or fall across six
// equal time segments. The weights sum to 12.
var twelfthsPattern = [6]float64{1, 2, 3, 3, 2, 1}

var (
	// ErrNoTideData means no tide events are tabulated for the requested day
	ErrNoTideData = errors.New("no tide data available for this day")
	// ErrIncompleteTideData means the day's events do not contain the
	// high/low pair needed to bracket the requested time
	ErrIncompleteTideData = errors.New("tide data for this day is incomplete")
)

// Reading is the interpolated tide state at one instant
type Reading struct {
	Time        string           `json:"time"`   // "HH:MM" queried
	Height      float64          `json:"height"` // meters
	Rising      bool             `json:"rising"`
	High        models.TideEvent `json:"high"` // bracketing high water
	Low         models.TideEvent `json:"low"`  // bracketing low water
	Coefficient *int             `json:"coefficient,omitempty"`
}

// Phase returns the reading's trend as a tide phase
func (r *Reading) Phase() models.TidePhase {
	if r == nil {
		return models.TideUnknown
	}
	if r.Rising {
		return models.TideRising
	}
	return models.TideFalling
}

// heightChangeForElapsed accumulates the twelfths weights proportionally
// to the elapsed fraction of each of the six segments.
func heightChangeForElapsed(elapsedMinutes, windowMinutes, tideChange float64) float64 {
	if windowMinutes <= 0 {
		return tideChange / 2
	}

	segmentMinutes := windowMinutes / float64(len(twelfthsPattern))
	twelfthHeight := tideChange / 12

	remaining := elapsedMinutes
	if remaining < 0 {
		remaining = 0
	}
	if remaining > windowMinutes {
		remaining = windowMinutes
	}

	var accumulated float64
	for _, weight := range twelfthsPattern {
		if remaining <= 0 {
			break
		}
		segment := remaining
		if segment > segmentMinutes {
			segment = segmentMinutes
		}
		accumulated += weight * segment / segmentMinutes
		remaining -= segment
	}

	return twelfthHeight * accumulated
}

// normalizeCycleEnd pushes a cycle end past midnight when it precedes the
// cycle start.
func normalizeCycleEnd(startMinutes, endMinutes int) int {
	if endMinutes >= startMinutes {
		return endMinutes
	}
	return endMinutes + minutesPerDay
}

// EstimateHeight interpolates the tide height at atTime between a
// tabulated high and low water using the rule of twelfths. Times are
// "H:MM" or "HH:MM" clock strings; a malformed time degrades to the mean
// of the two heights rather than failing the pipeline.
func EstimateHeight(highHeight, lowHeight float64, atTime, highTime, lowTime string) float64 {
	currentMinutes, okCurrent := models.ParseClockMinutes(atTime)
	highMinutes, okHigh := models.ParseClockMinutes(highTime)
	lowMinutes, okLow := models.ParseClockMinutes(lowTime)
	if !okCurrent || !okHigh || !okLow {
		log.Warn("malformed tide time, falling back to mean height",
			"at", atTime, "high", highTime, "low", lowTime)
		return (highHeight + lowHeight) / 2
	}

	risingCycle := lowMinutes <= highMinutes
	var withinRising bool
	if risingCycle {
		withinRising = lowMinutes <= currentMinutes && currentMinutes <= highMinutes
	} else {
		withinRising = currentMinutes <= highMinutes || currentMinutes >= lowMinutes
	}

	var (
		rising      bool
		startHeight float64
		endHeight   float64
		cycleStart  int
		cycleEnd    int
	)
	if withinRising {
		rising = true
		startHeight = lowHeight
		endHeight = highHeight
		cycleStart = lowMinutes
		cycleEnd = normalizeCycleEnd(lowMinutes, highMinutes)
	} else {
		rising = false
		startHeight = highHeight
		endHeight = lowHeight
		cycleStart = highMinutes
		cycleEnd = normalizeCycleEnd(highMinutes, lowMinutes)
	}

	windowMinutes := cycleEnd - cycleStart
	elapsedMinutes := currentMinutes - cycleStart
	if elapsedMinutes < 0 {
		elapsedMinutes += minutesPerDay
	}

	tideChange := endHeight - startHeight
	if tideChange < 0 {
		tideChange = -tideChange
	}
	if windowMinutes <= 0 {
		return (highHeight + lowHeight) / 2
	}

	change := heightChangeForElapsed(float64(elapsedMinutes), float64(windowMinutes), tideChange)
	if rising {
		return startHeight + change
	}
	return startHeight - change
}

// EstimateAt resolves which two of the day's tabulated events bracket t
// (nearest past and nearest future, wrapping to the day's last and first
// event at the edges), derives the trend from their types and
// interpolates the height at t.
func EstimateAt(t time.Time, events []models.TideEvent) (*Reading, error) {
	sorted := models.SortTideEvents(events)
	if len(sorted) == 0 {
		return nil, ErrNoTideData
	}

	currentMinutes := t.Hour()*60 + t.Minute()

	var last, next *models.TideEvent
	for i := range sorted {
		minutes, _ := sorted[i].Minutes()
		if minutes <= currentMinutes {
			last = &sorted[i]
		} else {
			next = &sorted[i]
			break
		}
	}
	if last == nil {
		last = &sorted[len(sorted)-1]
	}
	if next == nil {
		next = &sorted[0]
	}

	rising := last.Type == models.TideLow && next.Type == models.TideHigh

	var high, low *models.TideEvent
	if rising {
		if next.Type == models.TideHigh {
			high = next
		}
		if last.Type == models.TideLow {
			low = last
		}
	} else {
		if last.Type == models.TideHigh {
			high = last
		}
		if next.Type == models.TideLow {
			low = next
		}
	}
	if high == nil || low == nil {
		return nil, fmt.Errorf("bracketing %s: %w", t.Format("15:04"), ErrIncompleteTideData)
	}

	clock := t.Format("15:04")
	height := EstimateHeight(high.Height, low.Height, clock, high.Time, low.Time)

	return &Reading{
		Time:        clock,
		Height:      height,
		Rising:      rising,
		High:        *high,
		Low:         *low,
		Coefficient: high.Coefficient,
	}, nil
}
