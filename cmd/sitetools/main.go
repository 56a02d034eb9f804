package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/maxpilot/sitetools/internal/cli"
)

const (
	cmdName   = "sitetools"
	shortDesc = "Maintenance tools for the MaxPilot website."
	longDesc  = `Maintenance tools for the MaxPilot website.

sitetools keeps the version shown in the site's headings in sync with the
version record, and writes the sample workbooks used by the comparison page.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
