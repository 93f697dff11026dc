package ui

import (
	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/planner"
)

// Message types for async operations

// catalogLoadedMsg is sent when the configuration catalog has loaded
type catalogLoadedMsg struct {
	catalog *models.Catalog
	err     error
}

// planningFetchedMsg is sent when the full planning payload is ready
type planningFetchedMsg struct {
	full *planner.FullPlanning
	err  error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}
