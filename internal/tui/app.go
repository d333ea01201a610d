// Package tui provides the interactive directory browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/dirlist/internal/listing"
	"github.com/joe/dirlist/pkg/filesystem"
)

// AppModel is the top-level model. It tracks the terminal size and delegates
// to the current screen.
type AppModel struct {
	currentScreen tea.Model
	width         int
	height        int
}

// NewAppModel creates an app model browsing dir on fsys.
func NewAppModel(fsys filesystem.FileSystem, filter listing.Filter, dir string) *AppModel {
	return &AppModel{
		currentScreen: *NewBrowserScreen(fsys, filter, dir),
	}
}

// CurrentScreen returns the current screen (for testing)
func (a AppModel) CurrentScreen() tea.Model {
	return a.currentScreen
}

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	return a.currentScreen.Init()
}

// Size returns the last reported terminal size.
func (a AppModel) Size() (width, height int) {
	return a.width, a.height
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if windowMsg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = windowMsg.Width
		a.height = windowMsg.Height
	}

	var cmd tea.Cmd
	a.currentScreen, cmd = a.currentScreen.Update(msg)

	return a, cmd
}

// View implements tea.Model
func (a AppModel) View() string {
	return a.currentScreen.View()
}
