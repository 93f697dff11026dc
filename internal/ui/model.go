package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlebrun/sailcast/internal/catalog"
	"github.com/mlebrun/sailcast/internal/models"
	"github.com/mlebrun/sailcast/internal/planner"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoadingCatalog AppState = iota // Loading profile catalog
	StateProfiles                       // Profile selection list
	StateLoading                        // Fetching weather, tide and planning data
	StateDashboard                      // Display recommendations and planning
	StateError                          // Error state
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneRecommendations ActivePane = iota
	PanePlanning
)

// Planner is the planning backend the dashboard renders from
type Planner interface {
	Full(ctx context.Context, profileID string) (*planner.FullPlanning, error)
}

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error

	// Collaborators
	catalog *catalog.Cache
	planner Planner

	// Profile selection
	profileList     list.Model
	profiles        []models.Profile
	selectedProfile *models.Profile

	// Dashboard data
	full   *planner.FullPlanning
	dayIdx int // selected day in the planning pane

	spinner spinner.Model
}

// NewModel creates the application model
func NewModel(cache *catalog.Cache, p Planner) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		state:      StateLoadingCatalog,
		activePane: PaneRecommendations,
		catalog:    cache,
		planner:    p,
		spinner:    s,
	}
}

// Init starts the catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCatalog(m))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateProfiles {
			m.profileList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading catalog failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.profiles = msg.catalog.Profiles
		if len(m.profiles) == 0 {
			m.err = fmt.Errorf("no profiles configured")
			m.state = StateError
			return m, nil
		}
		m.profileList = createProfileList(m.profiles, m.width-4, m.height-8)
		m.state = StateProfiles
		return m, nil

	case planningFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("fetching planning failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.full = msg.full
		m.dayIdx = 0
		m.state = StateDashboard
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" || keyMsg.String() == "q" {
			return m, tea.Quit
		}

		switch m.state {
		case StateProfiles:
			return m.handleProfileList(msg)

		case StateDashboard:
			return m.handleDashboard(keyMsg)

		case StateError:
			// Any key returns to the profile list when one is loaded
			if len(m.profiles) > 0 {
				m.state = StateProfiles
				m.err = nil
			}
			return m, nil
		}
	}

	switch m.state {
	case StateLoadingCatalog, StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateProfiles:
		m.profileList, cmd = m.profileList.Update(msg)
	}
	return m, cmd
}

// handleProfileList handles input on the profile selection screen
func (m Model) handleProfileList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if item, ok := m.profileList.SelectedItem().(profileItem); ok {
			profile := item.profile
			m.selectedProfile = &profile
			m.state = StateLoading
			m.full = nil
			return m, tea.Batch(m.spinner.Tick, fetchPlanning(m, profile.ID))
		}
	}

	m.profileList, cmd = m.profileList.Update(msg)
	return m, cmd
}

// handleDashboard handles input on the dashboard
func (m Model) handleDashboard(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "p", "esc":
		m.state = StateProfiles
		m.full = nil
		m.selectedProfile = nil
		return m, nil

	case "r":
		if m.selectedProfile != nil {
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, fetchPlanning(m, m.selectedProfile.ID))
		}
		return m, nil

	case "tab":
		if m.activePane == PaneRecommendations {
			m.activePane = PanePlanning
		} else {
			m.activePane = PaneRecommendations
		}
		return m, nil

	case "left", "h":
		if m.dayIdx > 0 {
			m.dayIdx--
		}
		return m, nil

	case "right", "l":
		if m.full != nil && m.full.Week != nil && m.dayIdx < len(m.full.Week.Days)-1 {
			m.dayIdx++
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoadingCatalog:
		return m.viewSpinner("Loading configuration...")
	case StateProfiles:
		return m.viewProfiles()
	case StateLoading:
		name := ""
		if m.selectedProfile != nil {
			name = " for " + m.selectedProfile.Name
		}
		return m.viewSpinner("Fetching conditions and planning" + name + "...")
	case StateDashboard:
		return m.viewDashboard()
	case StateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewSpinner(status string) string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		titleStyle.Render("⛵ Sailcast"),
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render(status)),
	)
}

func (m Model) viewProfiles() string {
	title := titleStyle.Render("⛵ Sailcast")
	subtitle := mutedStyle.Render("Who is sailing today?")
	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, subtitle)
	sections = append(sections, "")
	sections = append(sections, m.profileList.View())
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewError() string {
	title := lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true).
		Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to go back • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewDashboard renders the main display
func (m Model) viewDashboard() string {
	if m.full == nil {
		return "No data"
	}

	var sections []string

	headerStyle := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		MarginBottom(1)
	header := headerStyle.Render(fmt.Sprintf("⛵ Sailcast - %s", m.full.Profile.Name))
	sections = append(sections, header)

	sections = append(sections,
		sectionHeaderStyle.Render("🌤  CONDITIONS"),
		m.renderConditionsPane(m.paneWidth()),
	)

	sections = append(sections,
		sectionHeaderStyle.Render("🏄 RECOMMENDATIONS"),
		m.renderRecommendationsPane(m.paneWidth()),
	)

	sections = append(sections,
		sectionHeaderStyle.Render("📅 PLANNING"),
		m.renderPlanningPane(m.paneWidth()),
	)

	help := helpStyle.Render("←/→: Day • Tab: Switch panes • R: Refresh • P: Profiles • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) paneWidth() int {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}
	return width
}
