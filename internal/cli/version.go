package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxpilot/sitetools/internal/version"
)

func GetVersionString() string {
	return version.String()
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the sitetools CLI",
		Run: func(cc *cobra.Command, _ []string) {
			fmt.Fprintln(cc.OutOrStdout(), GetVersionString())
		},
		SilenceUsage: true,
	}
}
