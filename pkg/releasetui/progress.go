package releasetui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maxpilot/sitetools/pkg/propagate"
)

// ProgressModel renders the document rewrite of a version change. It quits
// on [propagate.EventDone].
type ProgressModel struct {
	err       error
	from      string
	to        string
	current   string
	updated   []string
	failed    []string
	spinner   spinner.Model
	progress  progress.Model
	total     int
	processed int
	width     int
	state     modelState
}

func NewProgressModel(from, to string) *ProgressModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = defaultStyles.spinner

	return &ProgressModel{
		from:     from,
		to:       to,
		updated:  []string{},
		failed:   []string{},
		spinner:  s,
		progress: p,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if keyExits(msg) {
			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case propagate.EventDetected:
		return m, tea.Printf("Current version in documents: %s (%s)", defaultStyles.answer.Render(msg.Version), msg.Path)

	case propagate.EventSetDocumentTotal:
		m.total = int(msg)

	case propagate.EventRewritingDocument:
		m.current = string(msg)

	case propagate.EventRewroteDocument:
		return m, m.documentDone(msg)

	case propagate.EventRecordSaved:
		return m, tea.Printf("%s %s: %s -> %s", defaultStyles.check, filepath.Base(msg.Path), msg.Previous, msg.Version)

	case propagate.EventDone:
		return m, tea.Sequence(
			tea.Tick(preQuitDelay, func(_ time.Time) tea.Msg {
				return completedMsg{err: msg.Err}
			}),
			teaQuit(),
		)

	case completedMsg:
		m.err = msg.err
		m.state = stateDone

		if msg.err != nil {
			m.state = stateError
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd
	}

	return m, nil
}

func (m *ProgressModel) documentDone(evt propagate.EventRewroteDocument) tea.Cmd {
	m.processed++
	m.current = ""
	progressCmd := m.progress.SetPercent(float64(m.processed) / float64(max(1, m.total)))

	switch {
	case evt.Err != nil:
		m.failed = append(m.failed, evt.Path)

		return tea.Batch(progressCmd, tea.Printf("%s %s", defaultStyles.cross, evt.Path))

	case evt.Updated:
		m.updated = append(m.updated, evt.Path)

		return tea.Batch(progressCmd, tea.Printf("%s %s", defaultStyles.check, evt.Path))
	}

	return progressCmd
}

func (m *ProgressModel) View() string {
	switch m.state {
	case stateError:
		return getErrorMessage(m.err, m.width, m.total)

	case stateDone:
		if len(m.updated) == 0 {
			return defaultStyles.done.Render(propagate.OutcomeUpToDate.String() + "\n")
		}

		return defaultStyles.done.Render(fmt.Sprintf("Done! Updated %d documents to %s.\n", len(m.updated), m.to))

	case stateWorking:
	}

	w := lipgloss.Width(strconv.Itoa(m.total))
	count := fmt.Sprintf(" %*d/%*d", w, m.processed, w, m.total)

	progRendered := defaultStyles.progress.Render(m.progress.View() + count)
	progOut := progRendered + strings.Repeat(" ", max(0, m.width-lipgloss.Width(progRendered))) + "\n"

	spin := m.spinner.View() + " "
	cellsAvail := max(0, m.width-lipgloss.Width(spin))

	text := fmt.Sprintf("Updating %s to %s", m.from, m.to)
	if m.current != "" {
		text += " in " + defaultStyles.document.Render(m.current)
	}

	info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render(text)
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(spin+info)))

	return spin + info + gap + "\n" + progOut
}

// Updated returns the documents reported as rewritten.
func (m *ProgressModel) Updated() []string {
	return m.updated
}

// Failed returns the documents reported as failed.
func (m *ProgressModel) Failed() []string {
	return m.failed
}

// Err returns the error the run finished with.
func (m *ProgressModel) Err() error {
	return m.err
}
