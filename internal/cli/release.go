package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/maxpilot/sitetools/pkg/propagate"
	"github.com/maxpilot/sitetools/pkg/releasetui"
	"github.com/maxpilot/sitetools/pkg/siteerrors"
	"github.com/maxpilot/sitetools/pkg/tracing"
)

const (
	releaseDesc = `This command manages the version shown on the site
`
	releaseExample = `  # Update the version interactively
  sitetools release bump

  # Update to a given version without confirmation
  sitetools release bump "v 4.1" --yes

  # Show the recorded version
  sitetools release show

  # Show the version the documents currently display
  sitetools release detect --root ./site
`
)

// NewReleaseCmd returns the release command.
func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "release",
		Short:        "Site version management",
		Long:         releaseDesc,
		Example:      releaseExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolP("quiet", "q", false, "Run in quiet mode")

	cmd.AddCommand(NewReleaseBumpCmd())
	cmd.AddCommand(NewReleaseShowCmd())
	cmd.AddCommand(NewReleaseDetectCmd())

	return cmd
}

func NewReleaseBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump [VERSION]",
		Short: "Propagate a new version to the documents and the version record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()

			logLevel, err := flags.GetString("log_level")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			quiet, err := flags.GetBool("quiet")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			assumeYes, err := flags.GetBool("yes")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			version := ""
			if len(args) > 0 {
				version = args[0]
			}

			p, err := newPropagator(cc)
			if err != nil {
				return err
			}

			if quiet || !isatty.IsTerminal(os.Stdout.Fd()) {
				p.Subscribe(releasetui.NewPlainReporter(cc.OutOrStdout()))

				pr := propagate.NewLinePrompter(cc.InOrStdin(), cc.OutOrStdout(),
					propagate.WithVersion(version),
					propagate.WithAssumeYes(assumeYes),
				)

				report, err := p.Run(pr)
				if report != nil {
					if werr := releasetui.WriteReport(cc.OutOrStdout(), report); werr != nil && err == nil {
						err = werr
					}
				}

				if err != nil {
					return fmt.Errorf("update failed: %w", err)
				}

				return nil
			}

			rt, err := releasetui.NewReleaseTUI(cc.InOrStdin(), cc.OutOrStdout(), logLevel, p,
				releasetui.WithVersion(version),
				releasetui.WithAssumeYes(assumeYes),
			)
			if err != nil {
				return fmt.Errorf("failed to create tui: %w", err)
			}

			if _, err := rt.Run(); err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func NewReleaseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the version record",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			p, err := newPropagator(cc)
			if err != nil {
				return err
			}

			r, err := p.LoadRecord()
			if err != nil {
				return err //nolint:wrapcheck
			}

			fmt.Fprintf(cc.OutOrStdout(), "Current version in config: %s\nRelease date: %s\n", r.Version, r.ReleaseDate)

			return nil
		},
		SilenceUsage: true,
	}
}

func NewReleaseDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Show the version the documents currently display",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			p, err := newPropagator(cc)
			if err != nil {
				return err
			}

			m, ok, err := p.Detect()
			if err != nil {
				return err //nolint:wrapcheck
			}

			if !ok {
				return siteerrors.ErrNoVersionDetected
			}

			fmt.Fprintf(cc.OutOrStdout(), "Current version in documents: %s (%s)\n", m.Version, m.Path)

			return nil
		},
		SilenceUsage: true,
	}
}

func newPropagator(cc *cobra.Command) (*propagate.Propagator, error) {
	fsys := afero.NewOsFs()

	cfg, err := loadConfig(cc, fsys)
	if err != nil {
		return nil, err
	}

	return propagate.New(fsys, cfg, propagate.WithTracer(tracing.NewLoggingTracer(nil))), nil
}
