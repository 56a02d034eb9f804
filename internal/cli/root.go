package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/maxpilot/sitetools/pkg/config"
	"github.com/maxpilot/sitetools/pkg/log"
)

var ErrInvalidArgument = errors.New("invalid argument")

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	pf := cmd.PersistentFlags()
	pf.String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	pf.String("log_format", "text", "Set the log format (text, logfmt, json)")
	pf.String("config", "", "Configuration file (default <root>/"+config.DefaultFile+" if present)")
	pf.String("root", ".", "Site root directory")
	pf.String("record", config.DefaultRecord, "Version record path, relative to the root")
	pf.StringSlice("dirs", config.DefaultDirs, "Subdirectories scanned recursively after the root")
	pf.StringSlice("include", config.DefaultInclude, "Glob patterns selecting the documents")
	pf.String("heading", config.DefaultHeading, "Heading element carrying the version")
	pf.String("release_date", "", "Release date written to the record (default today)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}

		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewReleaseCmd())
	cmd.AddCommand(NewFixturesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadConfig builds the configuration from the config file and the
// persistent flags. Flags that were set explicitly override the file.
func loadConfig(cc *cobra.Command, fsys afero.Fs) (*config.Config, error) {
	flags := cc.Flags()

	var merr error

	path, err := flags.GetString("config")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	root, err := flags.GetString("root")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	record, err := flags.GetString("record")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	dirs, err := flags.GetStringSlice("dirs")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	include, err := flags.GetStringSlice("include")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	heading, err := flags.GetString("heading")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	releaseDate, err := flags.GetString("release_date")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	optional := path == ""
	if optional {
		path = filepath.Join(root, config.DefaultFile)
	}

	cfg, err := config.Load(fsys, path, optional)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("root") {
		cfg.Root = root
	}

	if flags.Changed("record") {
		cfg.Record = record
	}

	if flags.Changed("dirs") {
		cfg.Dirs = dirs
	}

	if flags.Changed("include") {
		cfg.Include = include
	}

	if flags.Changed("heading") {
		cfg.Heading = heading
	}

	if flags.Changed("release_date") {
		cfg.ReleaseDate = releaseDate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	slog.Debug("loaded config", "root", cfg.Root, "record", cfg.RecordPath(), "dirs", cfg.Dirs)

	return cfg, nil
}
