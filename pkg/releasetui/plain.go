package releasetui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/maxpilot/sitetools/pkg/propagate"
)

// NewPlainReporter returns an event subscriber that prints progress as plain
// lines to w.
func NewPlainReporter(w io.Writer) func(any) {
	return func(evt any) {
		switch evt := evt.(type) {
		case propagate.EventRecordLoaded:
			fmt.Fprintf(w, "Current version in config: %s\n", evt.Version)

		case propagate.EventDetected:
			fmt.Fprintf(w, "Current version in documents: %s (%s)\n", evt.Version, evt.Path)

		case propagate.EventRewroteDocument:
			if evt.Err != nil {
				fmt.Fprintf(w, "Failed to update %s: %v\n", evt.Path, evt.Err)
			}
		}
	}
}

// WriteReport prints the result of a run: the rewritten documents, the
// saved record and the outcome. Documents are listed also when the run
// failed after rewriting them.
func WriteReport(w io.Writer, report *propagate.Report) error {
	if updated := report.Documents.Updated(); len(updated) > 0 {
		if _, err := fmt.Fprintf(w, "Updated %d files:\n", len(updated)); err != nil {
			return fmt.Errorf("failed to write to output: %w", err)
		}

		for _, path := range updated {
			if _, err := fmt.Fprintf(w, "  - %s\n", path); err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}
		}
	}

	if report.RecordPath != "" {
		_, err := fmt.Fprintf(w, "Updated %s: %s -> %s\n", filepath.Base(report.RecordPath), report.Previous, report.Requested)
		if err != nil {
			return fmt.Errorf("failed to write to output: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, report.Outcome.String()); err != nil {
		return fmt.Errorf("failed to write to output: %w", err)
	}

	return nil
}
