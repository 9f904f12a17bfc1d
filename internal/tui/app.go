// Package tui is the interactive terminal browser over the annotation store.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/sidenote/internal/editor"
	"github.com/aretw0/sidenote/internal/tui/views"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewEdit
	ViewDelete
)

// App is the main TUI application model
type App struct {
	service views.Service
	editor  *editor.Opener

	state   ViewState
	browser *views.BrowserModel
	edit    *views.EditModel
	delete  *views.DeleteModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(service views.Service, ed *editor.Opener) *App {
	return &App{
		service: service,
		editor:  ed,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(service),
		edit:    views.NewEditModel(service),
		delete:  views.NewDeleteModel(service),
	}
}

// Run starts the TUI and blocks until it exits.
func Run(service views.Service) error {
	program := tea.NewProgram(NewApp(service, editor.NewOpener()), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToEditMsg:
		a.state = ViewEdit
		a.edit.SetTarget(msg.Target)
		return a, a.edit.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Target)
		return a, a.delete.Init()

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Edit view messages
	case views.EditSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.EditErrMsg:
		a.edit.SetMessage(msg.Err.Error(), true)
		return a, nil

	// Delete view messages
	case views.DeleteSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.DeleteErrMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path, msg.Line)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string, line int) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path, line)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewEdit:
		return a.edit.View()
	case ViewDelete:
		return a.delete.View()
	default:
		return a.browser.View()
	}
}
