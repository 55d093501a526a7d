package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/as6mig/internal/tui"
)

// Confirm is a Yes/No dialog.
type Confirm struct {
	message   string
	note      string
	value     bool
	width     int
	keyMap    tui.KeyMap
	submitted bool
	cancelled bool
}

// NewConfirm creates a dialog with the default answer preselected.
func NewConfirm(message, note string, defaultValue bool) Confirm {
	return Confirm{
		message: message,
		note:    note,
		value:   defaultValue,
		width:   72,
		keyMap:  tui.DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (c Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keyMap.Left):
			c.value = true
		case key.Matches(msg, c.keyMap.Right):
			c.value = false
		case key.Matches(msg, c.keyMap.Yes):
			c.value = true
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.No):
			c.value = false
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.Select):
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.Quit):
			c.cancelled = true
			return c, tea.Quit
		}
	case tea.WindowSizeMsg:
		c.width = msg.Width
	}
	return c, nil
}

// View implements tea.Model.
func (c Confirm) View() string {
	if c.submitted || c.cancelled {
		return ""
	}

	var b strings.Builder
	if c.note != "" {
		b.WriteString(tui.NoteStyle.Render(c.note))
		b.WriteString("\n\n")
	}
	b.WriteString(tui.TitleStyle.Render(c.message))
	b.WriteString("\n")

	yes, no := tui.ButtonStyle, tui.ActiveButtonStyle
	if c.value {
		yes, no = tui.ActiveButtonStyle, tui.ButtonStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No")))
	b.WriteString("\n")
	b.WriteString(tui.HelpStyle.Render(c.keyMap.HelpText()))

	width := c.width - 4
	if width < 20 {
		width = 20
	}
	return tui.BoxStyle.Width(width).Render(b.String())
}

// Value returns the highlighted answer.
func (c Confirm) Value() bool {
	return c.value
}

// Submitted returns true if the user confirmed an answer.
func (c Confirm) Submitted() bool {
	return c.submitted
}

// Cancelled returns true if the user closed the dialog without answering.
func (c Confirm) Cancelled() bool {
	return c.cancelled
}
