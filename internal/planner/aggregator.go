package planner

import (
	"sort"

	"github.com/mlebrun/sailcast/internal/activity"
	"github.com/mlebrun/sailcast/internal/models"
)

// MergeCurrent reconciles the "valid right now" evaluations with the
// day's merged planning windows. Activities valid now carry their full
// day ranges, the current evaluation and the slice of the recommended
// gear their required_gear names; activities only feasible later keep
// their planning data and no current evaluation. The result is sorted
// by score, best first, with no duplicates.
func MergeCurrent(current []models.ActivityWithEvaluation, dayMerged []models.MergedActivity, gear *models.GearSelection) []models.RecommendedActivity {
	dayByID := make(map[string]models.MergedActivity, len(dayMerged))
	for _, m := range dayMerged {
		dayByID[m.ID] = m
	}
	currentIDs := make(map[string]bool, len(current))

	recommended := make([]models.RecommendedActivity, 0, len(current)+len(dayMerged))

	for _, c := range current {
		currentIDs[c.ID] = true
		eval := c.Evaluation

		rec := models.RecommendedActivity{
			Evaluation:  &eval,
			GearMatches: activity.MatchGearForActivity(c.Activity, gear),
			Period:      models.PeriodCurrent,
		}
		if full, ok := dayByID[c.ID]; ok {
			rec.MergedActivity = full
		} else {
			// Valid now but absent from the day plan: no ranges to show
			rec.MergedActivity = models.MergedActivity{Activity: c.Activity}
		}
		recommended = append(recommended, rec)
	}

	for _, m := range dayMerged {
		if currentIDs[m.ID] {
			continue
		}
		recommended = append(recommended, models.RecommendedActivity{
			MergedActivity: m,
			Period:         models.PeriodRest,
		})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recScore(recommended[i]) > recScore(recommended[j])
	})
	return recommended
}

// recScore treats a missing evaluation as zero so "later today" entries
// sort below anything scored now.
func recScore(r models.RecommendedActivity) int {
	if r.Evaluation == nil {
		return 0
	}
	return r.Evaluation.Score
}
