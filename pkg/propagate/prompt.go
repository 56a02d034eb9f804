package propagate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
)

// Prompter asks the operator for the new version and for confirmation.
type Prompter interface {
	// PromptVersion returns the requested version. An empty string aborts.
	PromptVersion(current string) (string, error)
	// Confirm reports whether the change from current to requested should
	// go ahead.
	Confirm(current, requested string) (bool, error)
}

// IsAffirmative reports whether a confirmation answer means yes.
func IsAffirmative(answer string) bool {
	switch cases.Fold().String(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}

	return false
}

// LinePrompter reads answers line by line, e.g. from a terminal in quiet
// mode or from a pipe.
type LinePrompter struct {
	r         *bufio.Reader
	w         io.Writer
	version   string
	assumeYes bool
}

// LinePrompterOption configures a [LinePrompter].
type LinePrompterOption func(*LinePrompter)

// WithVersion answers the version prompt without reading input.
func WithVersion(version string) LinePrompterOption {
	return func(p *LinePrompter) {
		p.version = version
	}
}

// WithAssumeYes answers the confirmation prompt without reading input.
func WithAssumeYes(assumeYes bool) LinePrompterOption {
	return func(p *LinePrompter) {
		p.assumeYes = assumeYes
	}
}

// NewLinePrompter creates a [LinePrompter] reading from r and writing
// prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer, opts ...LinePrompterOption) *LinePrompter {
	p := &LinePrompter{
		r: bufio.NewReader(r),
		w: w,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *LinePrompter) PromptVersion(current string) (string, error) {
	if p.version != "" {
		return p.version, nil
	}

	return p.ask(fmt.Sprintf("Enter new version (current: %s): ", current))
}

func (p *LinePrompter) Confirm(current, requested string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}

	answer, err := p.ask(fmt.Sprintf("Update from '%s' to '%s'? (y/N): ", current, requested))
	if err != nil {
		return false, err
	}

	return IsAffirmative(answer), nil
}

// ask prints a prompt and reads one line. End of input counts as an empty
// answer.
func (p *LinePrompter) ask(prompt string) (string, error) {
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}
