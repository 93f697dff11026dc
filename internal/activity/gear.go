package activity

import (
	"sort"

	"github.com/mlebrun/sailcast/internal/models"
)

// defaultGearWindRange is assumed for equipment with no declared range
var defaultGearWindRange = []float64{0, 100}

// RecommendedGear selects, for one profile and wind speed, the equipment
// the profile may use whose wind range covers the current wind, grouped
// by category with favorites first. Equipment types without a category
// slot are skipped.
func RecommendedGear(profile *models.Profile, equipment []models.Equipment, windKnots float64) models.GearSelection {
	selection := models.GearSelection{
		Boards:     []models.GearInfo{},
		Sails:      []models.GearInfo{},
		Wings:      []models.GearInfo{},
		Foils:      []models.GearInfo{},
		Boats:      []models.GearInfo{},
		Speedsails: []models.GearInfo{},
	}
	if profile == nil {
		return selection
	}

	favorites := make(map[string]bool, len(profile.FavoriteGear))
	for _, id := range profile.FavoriteGear {
		favorites[id] = true
	}

	for _, item := range equipment {
		if !gearAvailableTo(item, profile.ID) {
			continue
		}
		windRange := item.WindRange
		if len(windRange) != 2 {
			windRange = defaultGearWindRange
		}
		if windKnots < windRange[0] || windKnots > windRange[1] {
			continue
		}

		info := models.GearInfo{
			ID:         item.ID,
			Name:       item.Name,
			WindRange:  item.WindRange,
			SkillLevel: item.SkillLevel,
			IsFavorite: favorites[item.ID],
		}

		switch item.Type {
		case models.GearWindsurfBoard:
			selection.Boards = append(selection.Boards, info)
		case models.GearWindsurfSail:
			selection.Sails = append(selection.Sails, info)
		case models.GearWing:
			selection.Wings = append(selection.Wings, info)
		case models.GearFoil:
			selection.Foils = append(selection.Foils, info)
		case models.GearSailboat:
			selection.Boats = append(selection.Boats, info)
		case models.GearSpeedsail:
			selection.Speedsails = append(selection.Speedsails, info)
		}
	}

	for _, category := range []*[]models.GearInfo{
		&selection.Boards, &selection.Sails, &selection.Wings,
		&selection.Foils, &selection.Boats, &selection.Speedsails,
	} {
		sortFavoritesFirst(*category)
	}
	return selection
}

// MatchGearForActivity filters a gear selection down to one activity's
// required gear. Each required_gear entry names either a whole category
// ("wing", "board", "sail", "foil", "boat", "speedsail") or a specific
// equipment ID, which keeps the category it was recommended under.
// Returns nil when the activity requires no gear or nothing matches.
func MatchGearForActivity(act models.Activity, selection *models.GearSelection) *models.GearSelection {
	if selection == nil || len(act.RequiredGear) == 0 {
		return nil
	}

	matched := models.GearSelection{
		Boards:     []models.GearInfo{},
		Sails:      []models.GearInfo{},
		Wings:      []models.GearInfo{},
		Foils:      []models.GearInfo{},
		Boats:      []models.GearInfo{},
		Speedsails: []models.GearInfo{},
	}

	for _, tag := range act.RequiredGear {
		switch tag {
		case "wing":
			matched.Wings = append(matched.Wings, selection.Wings...)
		case "board", "windsurf_board":
			matched.Boards = append(matched.Boards, selection.Boards...)
		case "sail", "windsurf_sail":
			matched.Sails = append(matched.Sails, selection.Sails...)
		case "foil":
			matched.Foils = append(matched.Foils, selection.Foils...)
		case "boat":
			matched.Boats = append(matched.Boats, selection.Boats...)
		case "speedsail":
			matched.Speedsails = append(matched.Speedsails, selection.Speedsails...)
		default:
			appendGearByID(&matched, selection, tag)
		}
	}

	if matched.IsEmpty() {
		return nil
	}
	return &matched
}

// appendGearByID looks up a specific equipment ID across the selection's
// categories and keeps the match in the category it came from.
func appendGearByID(matched, selection *models.GearSelection, id string) {
	pairs := []struct {
		from []models.GearInfo
		to   *[]models.GearInfo
	}{
		{selection.Boards, &matched.Boards},
		{selection.Sails, &matched.Sails},
		{selection.Wings, &matched.Wings},
		{selection.Foils, &matched.Foils},
		{selection.Boats, &matched.Boats},
		{selection.Speedsails, &matched.Speedsails},
	}
	for _, pair := range pairs {
		for _, g := range pair.from {
			if g.ID == id {
				*pair.to = append(*pair.to, g)
				return
			}
		}
	}
}

func gearAvailableTo(item models.Equipment, profileID string) bool {
	for _, user := range item.Users {
		if user == profileID || user == "all" {
			return true
		}
	}
	return false
}

func sortFavoritesFirst(gear []models.GearInfo) {
	sort.SliceStable(gear, func(i, j int) bool {
		return gear[i].IsFavorite && !gear[j].IsFavorite
	})
}
