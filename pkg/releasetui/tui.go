package releasetui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"

	tea "github.com/charmbracelet/bubbletea"
)

type styles struct {
	spinner  lipgloss.Style
	prompt   lipgloss.Style
	answer   lipgloss.Style
	done     lipgloss.Style
	err      lipgloss.Style
	progress lipgloss.Style
	document lipgloss.Style
	check    lipgloss.Style
	cross    lipgloss.Style
}

var defaultStyles = styles{
	spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	answer:   lipgloss.NewStyle().Bold(true),
	done:     lipgloss.NewStyle().Margin(1, 2),
	err:      lipgloss.NewStyle().Margin(1, 2),
	progress: lipgloss.NewStyle().Margin(1, 2),
	document: lipgloss.NewStyle().Foreground(lipgloss.Color("211")),
	check:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓"),
	cross:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗"),
}

// preQuitDelay lets messages sent before the final event render first.
const preQuitDelay = 100 * time.Millisecond

type (
	// Sent to write a log message.
	teaMsgWriteLog string

	// Sent once preQuitDelay has passed after the run finished.
	completedMsg struct {
		err error
	}
)

type modelState int

const (
	stateWorking modelState = iota
	stateDone
	stateError
)

func teaQuit() tea.Cmd {
	return tea.Sequence(
		tea.Tick(time.Millisecond*500, func(_ time.Time) tea.Msg {
			return nil
		}),
		tea.Quit,
	)
}

func keyExits(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return true
	}

	return false
}

func writeLog(msg teaMsgWriteLog, width int) tea.Cmd {
	logMsg := strings.Trim(string(msg), "\r\n")
	logMsg = lipgloss.NewStyle().Width(max(0, width-2)).Render(logMsg)

	return tea.Println(logMsg)
}

// getErrorMessage renders err. Aggregated document failures are listed one
// per line, followed by a count against total.
func getErrorMessage(err error, width, total int) string {
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) <= 1 {
		errMsg := strings.Trim(fmt.Sprintf("%v", err), "\r\n")

		return defaultStyles.err.Width(max(0, width-2)).Render(errMsg + "\n")
	}

	maxWidth := max(0, width-2)
	lines := make([]string, 0, len(merr.Errors)+1)

	for _, e := range merr.Errors {
		line := fmt.Sprintf("%s %s", defaultStyles.cross, e)
		lines = append(lines, lipgloss.NewStyle().MaxWidth(maxWidth).Render(line))
	}

	lines = append(lines, fmt.Sprintf("%d of %d documents failed", len(merr.Errors), max(total, len(merr.Errors))))

	return defaultStyles.err.Render(strings.Join(lines, "\n") + "\n")
}
