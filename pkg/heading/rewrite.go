package heading

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/maxpilot/sitetools/pkg/siteerrors"
)

// Result is the outcome of rewriting a single document.
type Result struct {
	// Err is set when the document could not be read or written.
	Err     error
	Path    string
	Updated bool
}

// Report aggregates per-document results in processing order.
type Report struct {
	Results []Result
}

// Add appends a result.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Updated returns the paths of the documents that were rewritten.
func (r *Report) Updated() []string {
	paths := []string{}

	for _, res := range r.Results {
		if res.Updated {
			paths = append(paths, res.Path)
		}
	}

	return paths
}

// Failed returns the results of the documents that could not be processed.
func (r *Report) Failed() []Result {
	failed := []Result{}

	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}

	return failed
}

// Err combines all per-document errors, or returns nil.
func (r *Report) Err() error {
	var merr *multierror.Error

	for _, res := range r.Failed() {
		merr = multierror.Append(merr, res.Err)
	}

	return merr.ErrorOrNil()
}

// Rewriter replaces a version string inside heading elements.
type Rewriter struct {
	fs  afero.Fs
	tag string
}

// NewRewriter creates a [Rewriter] for the given heading element.
func NewRewriter(fsys afero.Fs, tag string) *Rewriter {
	return &Rewriter{
		fs:  fsys,
		tag: normalizeTag(tag),
	}
}

// Rewrite replaces oldVersion with newVersion in every document. A failure on
// one document does not stop the others.
func (rw *Rewriter) Rewrite(paths []string, oldVersion, newVersion string) *Report {
	report := &Report{}
	rp := newReplacer(rw.tag, oldVersion, newVersion)

	for _, path := range paths {
		report.Add(rw.rewriteFile(rp, path))
	}

	return report
}

// RewriteFile replaces oldVersion with newVersion in one document. The file
// is only written when its content changes.
func (rw *Rewriter) RewriteFile(path, oldVersion, newVersion string) Result {
	return rw.rewriteFile(newReplacer(rw.tag, oldVersion, newVersion), path)
}

func (rw *Rewriter) rewriteFile(rp *replacer, path string) Result {
	res := Result{Path: path}

	content, err := afero.ReadFile(rw.fs, path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", siteerrors.ErrReadDocument, path, err)
		slog.Error("error updating document", "path", path, "err", res.Err)

		return res
	}

	updated := rp.replace(content)
	if bytes.Equal(updated, content) {
		return res
	}

	perm := os.FileMode(0o644)
	if fi, err := rw.fs.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	if err := afero.WriteFile(rw.fs, path, updated, perm); err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", siteerrors.ErrWriteDocument, path, err)
		slog.Error("error updating document", "path", path, "err", res.Err)

		return res
	}

	res.Updated = true

	return res
}

// Replace returns content with every heading occurrence of oldVersion
// replaced by newVersion. oldVersion is matched literally.
func Replace(content, tag, oldVersion, newVersion string) string {
	return string(newReplacer(normalizeTag(tag), oldVersion, newVersion).replace([]byte(content)))
}

type replacer struct {
	re   *regexp.Regexp
	repl []byte
}

func newReplacer(tag, oldVersion, newVersion string) *replacer {
	if oldVersion == "" {
		return &replacer{}
	}

	t := regexp.QuoteMeta(tag)
	pattern := `(<(?i:` + t + `)(?:\s[^>]*)?>[^<]*?)(` +
		regexp.QuoteMeta(oldVersion) +
		`)((?s:.*?)</(?i:` + t + `)\s*>)`

	return &replacer{
		re:   regexp.MustCompile(pattern),
		repl: []byte("${1}" + strings.ReplaceAll(newVersion, "$", "$$") + "${3}"),
	}
}

func (rp *replacer) replace(content []byte) []byte {
	if rp.re == nil {
		return content
	}

	return rp.re.ReplaceAll(content, rp.repl)
}
