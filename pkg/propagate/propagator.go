// Package propagate implements the version update workflow.
//
// A [Propagator] loads the version record, asks a [Prompter] for the new
// version, detects the version currently shown in the site's documents,
// rewrites it everywhere, and finally stores the new version in the record.
// The record is only written when at least one document changed, so it
// always agrees with what the documents show.
//
// Progress is published as events (see events.go) to subscribers registered
// with [Propagator.Subscribe].
package propagate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/maxpilot/sitetools/pkg/config"
	"github.com/maxpilot/sitetools/pkg/docset"
	"github.com/maxpilot/sitetools/pkg/heading"
	"github.com/maxpilot/sitetools/pkg/siteerrors"
	"github.com/maxpilot/sitetools/pkg/tracing"
	"github.com/maxpilot/sitetools/pkg/versionrecord"
)

// Outcome describes how a run ended when it did not fail.
type Outcome int

const (
	OutcomeFailed       Outcome = iota // The run ended with an error.
	OutcomeUpdated                     // Documents and record were updated.
	OutcomeUpToDate                    // Documents already show the requested version.
	OutcomeNoInput                     // No version was entered.
	OutcomeSameAsRecord                // The record already holds the requested version.
	OutcomeCancelled                   // The operator declined the confirmation.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailed:
		return "Version update failed."
	case OutcomeUpdated:
		return "Version update completed successfully!"
	case OutcomeUpToDate:
		return "Version is already up to date!"
	case OutcomeNoInput:
		return "No version entered. Exiting."
	case OutcomeSameAsRecord:
		return "Same version entered. No changes needed."
	case OutcomeCancelled:
		return "Update cancelled."
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Request is a confirmed version change awaiting [Propagator.Apply].
type Request struct {
	Record  *versionrecord.Record
	Version string
}

// Report summarizes a run.
type Report struct {
	// Documents holds one result per processed document.
	Documents *heading.Report
	// Detected is the version found in the documents, if any.
	Detected heading.Match
	// Replaced is the part of the detected version that was rewritten.
	Replaced    string
	Previous    string
	Requested   string
	ReleaseDate string
	// RecordPath is the record written by the run, empty when it was not
	// saved.
	RecordPath string
	Outcome    Outcome
}

// Propagator runs the version update workflow against a site.
type Propagator struct {
	fs          afero.Fs
	cfg         *config.Config
	now         func() time.Time
	tracer      tracing.Tracer
	subscribers []func(any)
}

// Option configures a [Propagator].
type Option func(*Propagator)

// WithClock sets the clock used for the default release date.
func WithClock(now func() time.Time) Option {
	return func(p *Propagator) {
		p.now = now
	}
}

// WithTracer sets the tracer used to time each step.
func WithTracer(t tracing.Tracer) Option {
	return func(p *Propagator) {
		p.tracer = t
	}
}

// New creates a [Propagator] for the site described by cfg.
func New(fsys afero.Fs, cfg *config.Config, opts ...Option) *Propagator {
	p := &Propagator{
		fs:     fsys,
		cfg:    cfg,
		now:    time.Now,
		tracer: tracing.NopTracer{},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Subscribe registers f to receive progress events.
func (p *Propagator) Subscribe(f func(any)) {
	p.subscribers = append(p.subscribers, f)
}

func (p *Propagator) broadcast(evt any) {
	for _, f := range p.subscribers {
		f(evt)
	}
}

// LoadRecord loads the version record.
func (p *Propagator) LoadRecord() (*versionrecord.Record, error) {
	span := p.tracer.StartSpan("load_record")
	defer span.Finish()

	r, err := versionrecord.Load(p.fs, p.cfg.RecordPath())
	if err != nil {
		return nil, fmt.Errorf("load version record: %w", err)
	}

	return r, nil
}

// Documents returns the document set in discovery order.
func (p *Propagator) Documents() ([]string, error) {
	span := p.tracer.StartSpan("discover")
	defer span.Finish()

	paths, err := docset.Discover(p.fs, p.cfg.Root,
		docset.WithDirs(p.cfg.Dirs...),
		docset.WithInclude(p.cfg.Include...),
	)
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}

	span.SetBaggageItem("documents", len(paths))

	return paths, nil
}

// Detect returns the version currently shown in the documents.
func (p *Propagator) Detect() (heading.Match, bool, error) {
	paths, err := p.Documents()
	if err != nil {
		return heading.Match{}, false, err
	}

	m, ok := p.detect(paths)

	return m, ok, nil
}

func (p *Propagator) detect(paths []string) (heading.Match, bool) {
	span := p.tracer.StartSpan("detect")
	defer span.Finish()

	return heading.NewDetector(p.fs, p.cfg.Heading).Detect(paths)
}

// Prepare loads the record and asks for the new version and confirmation.
// It returns a nil [Request] when the run should stop without changes; the
// [Outcome] then says why.
func (p *Propagator) Prepare(pr Prompter) (*Request, Outcome, error) {
	record, err := p.LoadRecord()
	if err != nil {
		return nil, OutcomeFailed, err
	}

	p.broadcast(EventRecordLoaded{Version: record.Version, ReleaseDate: record.ReleaseDate})

	requested, err := pr.PromptVersion(record.Version)
	if err != nil {
		return nil, OutcomeFailed, fmt.Errorf("prompt for version: %w", err)
	}

	requested = strings.TrimSpace(requested)

	switch requested {
	case "":
		return nil, OutcomeNoInput, nil
	case record.Version:
		return nil, OutcomeSameAsRecord, nil
	}

	ok, err := pr.Confirm(record.Version, requested)
	if err != nil {
		return nil, OutcomeFailed, fmt.Errorf("prompt for confirmation: %w", err)
	}

	if !ok {
		return nil, OutcomeCancelled, nil
	}

	return &Request{Record: record, Version: requested}, OutcomeUpdated, nil
}

// Apply propagates a confirmed request: it detects the current version in
// the documents, rewrites it, and saves the record if any document changed.
// The returned [Report] is never nil, also when an error is returned.
func (p *Propagator) Apply(req *Request) (*Report, error) {
	report := &Report{
		Documents: &heading.Report{},
		Previous:  req.Record.Version,
		Requested: req.Version,
	}

	paths, err := p.Documents()
	if err != nil {
		return report, err
	}

	match, ok := p.detect(paths)
	if !ok {
		return report, siteerrors.ErrNoVersionDetected
	}

	report.Detected = match
	p.broadcast(EventDetected{Version: match.Version, Path: match.Path})

	report.Replaced = replaceTarget(match.Version, req.Record.Version)

	if report.Replaced == req.Version {
		report.Outcome = OutcomeUpToDate

		return report, nil
	}

	p.rewrite(report, paths, report.Replaced, req.Version)

	if len(report.Documents.Updated()) == 0 {
		if derr := report.Documents.Err(); derr != nil {
			return report, fmt.Errorf("%w: %w", siteerrors.ErrNoDocumentsUpdated, derr)
		}

		return report, siteerrors.ErrNoDocumentsUpdated
	}

	if err := p.saveRecord(report, req); err != nil {
		return report, err
	}

	report.Outcome = OutcomeUpdated

	return report, nil
}

// Run performs [Propagator.Prepare] followed by [Propagator.Apply].
func (p *Propagator) Run(pr Prompter) (*Report, error) {
	req, outcome, err := p.Prepare(pr)
	if err != nil {
		return nil, err
	}

	if req == nil {
		return &Report{Documents: &heading.Report{}, Outcome: outcome}, nil
	}

	return p.Apply(req)
}

// replaceTarget returns the text to substitute in the documents. When the
// detected version is the recorded one followed by a suffix such as "Beta",
// only the recorded part is replaced and the suffix stays in place.
func replaceTarget(detected, recorded string) string {
	rest, ok := strings.CutPrefix(detected, recorded)
	if !ok || recorded == "" || rest == "" {
		return detected
	}

	if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
		return recorded
	}

	return detected
}

func (p *Propagator) rewrite(report *Report, paths []string, oldVersion, newVersion string) {
	span := p.tracer.StartSpan("rewrite")
	defer span.Finish()

	rw := heading.NewRewriter(p.fs, p.cfg.Heading)

	p.broadcast(EventSetDocumentTotal(len(paths)))

	for _, path := range paths {
		p.broadcast(EventRewritingDocument(path))

		res := rw.RewriteFile(path, oldVersion, newVersion)
		report.Documents.Add(res)

		p.broadcast(EventRewroteDocument{Path: res.Path, Updated: res.Updated, Err: res.Err})
	}

	span.SetBaggageItem("updated", len(report.Documents.Updated()))
}

func (p *Propagator) saveRecord(report *Report, req *Request) error {
	span := p.tracer.StartSpan("save_record")
	defer span.Finish()

	previous := req.Record.Version
	report.ReleaseDate = p.releaseDate()

	req.Record.Version = req.Version
	req.Record.ReleaseDate = report.ReleaseDate

	if err := req.Record.Save(p.fs); err != nil {
		return fmt.Errorf("update version record: %w", err)
	}

	report.RecordPath = req.Record.Path()

	slog.Debug("version record updated", "path", req.Record.Path(), "from", previous, "to", req.Version)
	p.broadcast(EventRecordSaved{
		Path:        req.Record.Path(),
		Previous:    previous,
		Version:     req.Version,
		ReleaseDate: report.ReleaseDate,
	})

	return nil
}

func (p *Propagator) releaseDate() string {
	if p.cfg.ReleaseDate != "" {
		return p.cfg.ReleaseDate
	}

	return p.now().Format(time.DateOnly)
}
