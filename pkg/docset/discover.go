// Package docset discovers the documents eligible for version rewriting.
//
// Discovery order is stable: matching files directly under the root come
// first, followed by each configured subdirectory in the order given, walked
// recursively in lexical order. Subdirectories that do not exist are skipped.
package docset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/maxpilot/sitetools/pkg/siteerrors"
)

// Finder enumerates documents below a root directory.
type Finder struct {
	fs       afero.Fs
	root     string
	dirs     []string
	patterns []glob.Glob
}

// Option configures a [Finder].
type Option func(*finderOptions)

type finderOptions struct {
	dirs    []string
	include []string
}

// WithDirs sets the subdirectories scanned recursively after the root.
func WithDirs(dirs ...string) Option {
	return func(o *finderOptions) {
		o.dirs = dirs
	}
}

// WithInclude sets the glob patterns matched against file base names.
func WithInclude(patterns ...string) Option {
	return func(o *finderOptions) {
		o.include = patterns
	}
}

// NewFinder creates a [Finder] for root. Without [WithInclude], only "*.html"
// files are matched.
func NewFinder(fsys afero.Fs, root string, opts ...Option) (*Finder, error) {
	o := &finderOptions{
		include: []string{"*.html"},
	}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.include) == 0 {
		return nil, fmt.Errorf("%w: no include patterns", siteerrors.ErrInvalidArguments)
	}

	patterns := make([]glob.Glob, 0, len(o.include))

	for _, p := range o.include {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: include pattern %q: %w", siteerrors.ErrInvalidArguments, p, err)
		}

		patterns = append(patterns, g)
	}

	return &Finder{
		fs:       fsys,
		root:     root,
		dirs:     o.dirs,
		patterns: patterns,
	}, nil
}

// Discover is a shorthand for [NewFinder] followed by [Finder.Find].
func Discover(fsys afero.Fs, root string, opts ...Option) ([]string, error) {
	f, err := NewFinder(fsys, root, opts...)
	if err != nil {
		return nil, err
	}

	return f.Find()
}

// Find returns the matching document paths in discovery order. An empty
// result is not an error.
func (f *Finder) Find() ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.root)
	if err != nil {
		return nil, fmt.Errorf("read root %s: %w", f.root, err)
	}

	paths := []string{}

	for _, e := range entries {
		if e.IsDir() || !f.Match(e.Name()) {
			continue
		}

		paths = append(paths, filepath.Join(f.root, e.Name()))
	}

	for _, dir := range f.dirs {
		paths = append(paths, f.walk(filepath.Join(f.root, dir))...)
	}

	return paths, nil
}

// Match reports whether a file base name matches an include pattern.
func (f *Finder) Match(name string) bool {
	for _, g := range f.patterns {
		if g.Match(name) {
			return true
		}
	}

	return false
}

func (f *Finder) walk(dir string) []string {
	fi, err := f.fs.Stat(dir)
	if err != nil || !fi.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("skipping directory", "dir", dir, "err", err)
		}

		return nil
	}

	paths := []string{}

	err = afero.Walk(f.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "err", err)

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() || !f.Match(info.Name()) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		slog.Warn("walk failed", "dir", dir, "err", err)
	}

	return paths
}
