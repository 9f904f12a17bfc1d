package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/sidenote/internal/tui/styles"
	"github.com/aretw0/sidenote/pkg/core"
)

// EditKeyMap defines key bindings for the edit form
type EditKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var EditKeys = EditKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// EditModel is the model for the single-field annotation edit form
type EditModel struct {
	ViewState
	service Service
	target  core.Annotation
	input   textinput.Model
}

// NewEditModel creates a new edit view model
func NewEditModel(service Service) *EditModel {
	input := textinput.New()
	input.Placeholder = "annotation text"
	input.CharLimit = core.MaxTextLen

	return &EditModel{
		service: service,
		input:   input,
	}
}

// SetTarget loads the annotation being edited into the form.
func (m *EditModel) SetTarget(ann core.Annotation) {
	m.target = ann
	m.input.SetValue(ann.Text)
	m.input.CursorEnd()
	m.ClearMessage()
}

// Init initializes the edit view
func (m *EditModel) Init() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, EditKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, EditKeys.Submit):
			return m, m.save
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditModel) save() tea.Msg {
	text := strings.TrimSpace(m.input.Value())

	err := m.service.Put(context.Background(), m.target.FilePath, m.target.Line, text)
	if err != nil {
		return EditErrMsg{Err: err}
	}
	return EditSuccessMsg{
		Message: fmt.Sprintf("annotation saved at %s:%d", m.target.FilePath, m.target.Line+1),
	}
}

// EditSuccessMsg indicates the annotation was saved
type EditSuccessMsg struct {
	Message string
}

// EditErrMsg indicates the annotation could not be saved
type EditErrMsg struct {
	Err error
}

// View renders the edit form
func (m *EditModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit Annotation"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("%s:%d", m.target.FilePath, m.target.Line+1)))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if m.Message != "" && m.MessageErr {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	submit := EditKeys.Submit.Help()
	cancel := EditKeys.Cancel.Help()
	b.WriteString(styles.HelpKey.Render(submit.Key) + " " + styles.HelpDesc.Render(submit.Desc))
	b.WriteString("  ")
	b.WriteString(styles.HelpKey.Render(cancel.Key) + " " + styles.HelpDesc.Render(cancel.Desc))

	return styles.App.Render(b.String())
}
