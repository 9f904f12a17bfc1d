package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/sidenote/internal/tui/styles"
	"github.com/aretw0/sidenote/pkg/core"
)

// ConfirmKeyMap defines key bindings for the delete confirmation
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ViewState
	service Service
	target  core.Annotation
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(service Service) *DeleteModel {
	return &DeleteModel{service: service}
}

// SetTarget sets the annotation to delete
func (m *DeleteModel) SetTarget(ann core.Annotation) {
	m.target = ann
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ConfirmKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, ConfirmKeys.Confirm):
			return m, m.doDelete
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if err := m.service.Remove(context.Background(), m.target.FilePath, m.target.Line); err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{
		Message: fmt.Sprintf("annotation deleted at %s:%d", m.target.FilePath, m.target.Line+1),
	}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Annotation"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("%s:%d", m.target.FilePath, m.target.Line+1)))
	b.WriteString("\n")
	b.WriteString("  " + firstLine(m.target.Text))
	b.WriteString("\n\n")

	b.WriteString("Are you sure? ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))

	return styles.App.Render(b.String())
}
