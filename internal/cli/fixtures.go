package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/maxpilot/sitetools/pkg/fixtures"
)

// NewFixturesCmd returns the fixtures command.
func NewFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Write the sample workbooks used by the comparison page",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			dir, err := cc.Flags().GetString("out")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			fsys := afero.NewOsFs()

			for _, wb := range fixtures.All() {
				path, err := fixtures.Write(fsys, dir, wb)
				if err != nil {
					return fmt.Errorf("failed to write fixtures: %w", err)
				}

				fmt.Fprintf(cc.OutOrStdout(), "Created %s\n", path)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("out", "o", fixtures.DefaultDir, "Output directory")
	if err := cmd.MarkFlagDirname("out"); err != nil {
		panic(err)
	}

	return cmd
}
