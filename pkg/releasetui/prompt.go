package releasetui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel asks for a single line of input. Enter submits the answer,
// Esc or Ctrl+C cancels.
type PromptModel struct {
	input     textinput.Model
	title     string
	value     string
	width     int
	submitted bool
	cancelled bool
}

func NewPromptModel(title, placeholder string) *PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.PromptStyle = defaultStyles.prompt
	ti.CharLimit = 64
	ti.Focus()

	return &PromptModel{
		input: ti,
		title: title,
	}
}

func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

//nolint:ireturn // Third-party.
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(0, msg.Width-len(m.input.Prompt)-1)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			m.submitted = true

			return m, tea.Quit

		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true

			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *PromptModel) View() string {
	switch {
	case m.submitted:
		return m.title + " " + defaultStyles.answer.Render(m.value) + "\n"
	case m.cancelled:
		return m.title + "\n"
	}

	return m.title + "\n" + m.input.View() + "\n"
}

// Value returns the submitted answer, trimmed of surrounding whitespace.
func (m *PromptModel) Value() string {
	return m.value
}

// Cancelled reports whether the prompt was dismissed without an answer.
func (m *PromptModel) Cancelled() bool {
	return m.cancelled
}
