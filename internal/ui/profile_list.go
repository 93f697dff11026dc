package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/mlebrun/sailcast/internal/models"
)

// profileItem wraps a profile for the selection list
type profileItem struct {
	profile models.Profile
}

func (i profileItem) Title() string { return i.profile.Name }

func (i profileItem) Description() string {
	return fmt.Sprintf("skill: %s", i.profile.SkillLevel)
}

func (i profileItem) FilterValue() string { return i.profile.Name }

// createProfileList builds the profile selection list
func createProfileList(profiles []models.Profile, width, height int) list.Model {
	items := make([]list.Item, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, profileItem{profile: p})
	}

	if width < 20 {
		width = 60
	}
	if height < 5 {
		height = 14
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Profiles"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
