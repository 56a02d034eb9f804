package releasetui

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maxpilot/sitetools/pkg/heading"
	"github.com/maxpilot/sitetools/pkg/log"
	"github.com/maxpilot/sitetools/pkg/propagate"
)

var _ propagate.Prompter = (*ReleaseTUI)(nil)

// ReleaseCommander runs the two halves of a release.
type ReleaseCommander interface {
	Prepare(pr propagate.Prompter) (*propagate.Request, propagate.Outcome, error)
	Apply(req *propagate.Request) (*propagate.Report, error)
	Subscribe(f func(any))
}

// ReleaseTUI runs a release with terminal prompts and a progress view.
type ReleaseTUI struct {
	cmd       ReleaseCommander
	p         *tea.Program
	r         io.Reader
	w         io.Writer
	version   string
	mu        sync.RWMutex
	assumeYes bool
}

// Option configures a [ReleaseTUI].
type Option func(*ReleaseTUI)

// WithVersion skips the version prompt.
func WithVersion(version string) Option {
	return func(c *ReleaseTUI) {
		c.version = version
	}
}

// WithAssumeYes skips the confirmation prompt.
func WithAssumeYes(assumeYes bool) Option {
	return func(c *ReleaseTUI) {
		c.assumeYes = assumeYes
	}
}

// NewReleaseTUI creates a [ReleaseTUI] reading keys from r and drawing to w.
// It installs a default [slog] logger that prints into the running program.
func NewReleaseTUI(r io.Reader, w io.Writer, logLevel string, cmd ReleaseCommander, opts ...Option) (*ReleaseTUI, error) {
	c := &ReleaseTUI{
		cmd: cmd,
		r:   r,
		w:   w,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cmd.Subscribe(c.broadcastEvent)

	handler, err := log.CreateHandlerWithStrings(c, logLevel, string(log.FormatText))
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(handler))

	return c, nil
}

func (c *ReleaseTUI) broadcastEvent(evt any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.p != nil {
		c.p.Send(evt)
	}
}

func (c *ReleaseTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

func (c *ReleaseTUI) newProgram(m tea.Model) *tea.Program {
	p := tea.NewProgram(m, tea.WithInput(c.r), tea.WithOutput(c.w))

	c.mu.Lock()
	c.p = p
	c.mu.Unlock()

	return p
}

func (c *ReleaseTUI) PromptVersion(current string) (string, error) {
	if c.version != "" {
		return c.version, nil
	}

	m := NewPromptModel(fmt.Sprintf("Enter new version (current: %s):", current), current)
	if _, err := c.newProgram(m).Run(); err != nil {
		return "", fmt.Errorf("failed to launch tui: %w", err)
	}

	return m.Value(), nil
}

func (c *ReleaseTUI) Confirm(current, requested string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}

	m := NewPromptModel(fmt.Sprintf("Update from '%s' to '%s'? (y/N):", current, requested), "N")
	if _, err := c.newProgram(m).Run(); err != nil {
		return false, fmt.Errorf("failed to launch tui: %w", err)
	}

	return !m.Cancelled() && propagate.IsAffirmative(m.Value()), nil
}

// Run prompts for the release and applies it behind a [ProgressModel].
func (c *ReleaseTUI) Run() (*propagate.Report, error) {
	req, outcome, err := c.cmd.Prepare(c)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if req == nil {
		if _, err := fmt.Fprintln(c.w, outcome.String()); err != nil {
			return nil, fmt.Errorf("failed to write to output: %w", err)
		}

		return &propagate.Report{Documents: &heading.Report{}, Outcome: outcome}, nil
	}

	type result struct {
		err    error
		report *propagate.Report
	}

	p := c.newProgram(NewProgressModel(req.Record.Version, req.Version))
	done := make(chan result, 1)

	go func() {
		report, err := c.cmd.Apply(req)
		c.broadcastEvent(propagate.EventDone{Err: err})
		done <- result{report: report, err: err}
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	res := <-done

	return res.report, res.err
}
