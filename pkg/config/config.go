// Package config holds the settings shared by the sitetools commands.
//
// A [Config] starts from [Default], may be overlaid with a YAML file via
// [Load], and is finally adjusted by command line flags. Paths other than the
// root are interpreted relative to [Config.Root].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/maxpilot/sitetools/pkg/siteerrors"
)

const (
	// DefaultFile is the configuration file looked up under the root.
	DefaultFile = ".sitetools.yaml"

	// DefaultRecord is the version record file name.
	DefaultRecord = "version.json"

	// DefaultHeading is the heading element that carries the version.
	DefaultHeading = "h1"
)

// DefaultDirs are the locale and section directories scanned after the root.
var DefaultDirs = []string{"ar", "de", "es", "ja", "pl", "pt", "ru", "zh", "compare", "how_use"}

// DefaultInclude matches the documents eligible for rewriting.
var DefaultInclude = []string{"*.html"}

// Config is the sitetools configuration.
type Config struct {
	// Root is the site directory.
	Root string `yaml:"root"`
	// Record is the version record path.
	Record string `yaml:"record"`
	// Heading is the element name searched for the version, e.g. "h1".
	Heading string `yaml:"heading"`
	// ReleaseDate is written to the record on success. Empty means today.
	ReleaseDate string `yaml:"releaseDate,omitempty"`
	// Dirs are scanned recursively, in order, after the root's own files.
	Dirs []string `yaml:"dirs"`
	// Include holds glob patterns matched against file base names.
	Include []string `yaml:"include"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:    ".",
		Record:  DefaultRecord,
		Heading: DefaultHeading,
		Dirs:    append([]string(nil), DefaultDirs...),
		Include: append([]string(nil), DefaultInclude...),
	}
}

// Load reads a YAML file over [Default]. Keys absent from the file keep their
// default values. When optional is true a missing file is not an error.
func Load(fsys afero.Fs, path string, optional bool) (*Config, error) {
	c := Default()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", siteerrors.ErrInvalidFormat, path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	switch {
	case c.Root == "":
		return fmt.Errorf("%w: root must not be empty", siteerrors.ErrInvalidArguments)
	case c.Record == "":
		return fmt.Errorf("%w: record must not be empty", siteerrors.ErrInvalidArguments)
	case len(c.Include) == 0:
		return fmt.Errorf("%w: at least one include pattern is required", siteerrors.ErrInvalidArguments)
	case !validHeading(c.Heading):
		return fmt.Errorf("%w: invalid heading element %q", siteerrors.ErrInvalidArguments, c.Heading)
	}

	return nil
}

// RecordPath returns the record location, resolved against the root.
func (c *Config) RecordPath() string {
	if filepath.IsAbs(c.Record) {
		return c.Record
	}

	return filepath.Join(c.Root, c.Record)
}

func validHeading(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range strings.ToLower(name) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}
