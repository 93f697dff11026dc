package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 45 * time.Second

// loadCatalog fetches the configuration catalog in the background
func loadCatalog(m Model) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		catalog, err := m.catalog.Load(ctx)
		return catalogLoadedMsg{catalog: catalog, err: err}
	}
}

// fetchPlanning fetches the combined now + week payload for a profile
func fetchPlanning(m Model, profileID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		full, err := m.planner.Full(ctx, profileID)
		return planningFetchedMsg{full: full, err: err}
	}
}
