package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/sidenote/internal/tui/styles"
	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/render"
)

// BrowserKeyMap defines key bindings for the annotation list view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Yank   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open file"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank text"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the annotation list view
type BrowserModel struct {
	ViewState
	service     Service
	annotations []core.Annotation
	cursor      int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(service Service) *BrowserModel {
	return &BrowserModel{service: service}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.load
}

// Reload reloads the annotation list
func (m *BrowserModel) Reload() tea.Cmd {
	return m.load
}

func (m *BrowserModel) load() tea.Msg {
	annotations, err := m.service.List(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return annotationsLoadedMsg{annotations}
}

type annotationsLoadedMsg struct {
	annotations []core.Annotation
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case annotationsLoadedMsg:
		m.annotations = msg.annotations
		if m.cursor >= len(m.annotations) {
			m.cursor = len(m.annotations) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.annotations)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.Open):
			if ann, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return OpenEditorMsg{Path: ann.FilePath, Line: ann.Line}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			if ann, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return SwitchToEditMsg{Target: ann}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Delete):
			if ann, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return SwitchToDeleteMsg{Target: ann}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Yank):
			if ann, ok := m.selected(); ok {
				return m, m.yank(ann)
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *BrowserModel) selected() (core.Annotation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.annotations) {
		return core.Annotation{}, false
	}
	return m.annotations[m.cursor], true
}

func (m *BrowserModel) yank(ann core.Annotation) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(ann.Text); err != nil {
			return errMsg{fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return successMsg{message: "annotation text copied"}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Annotations (%d)", len(m.annotations))))
	b.WriteString("\n")

	if len(m.annotations) == 0 {
		b.WriteString(styles.MutedText.Render("No annotations yet."))
		b.WriteString("\n")
	}

	for i, ann := range m.annotations {
		b.WriteString(m.renderRow(i, ann))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderRow(i int, ann core.Annotation) string {
	anchor := fmt.Sprintf("%s:%d", ann.FilePath, ann.Line+1)
	text := firstLine(ann.Text)

	row := fmt.Sprintf("%s %s  %s  %s",
		styles.Marker.Render(render.Symbol),
		styles.RowAnchor.Render(anchor),
		text,
		styles.RowTime.Render(render.HumanTime(ann.Timestamp)),
	)

	if i == m.cursor {
		return styles.RowSelected.Render("> ") + row
	}
	return "  " + row
}

func (m *BrowserModel) renderHelp() string {
	bindings := []key.Binding{
		BrowserKeys.Open, BrowserKeys.Edit, BrowserKeys.Delete,
		BrowserKeys.Yank, BrowserKeys.Reload, BrowserKeys.Quit,
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// firstLine truncates multi-line annotation text for list display.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + "…"
	}
	return text
}
