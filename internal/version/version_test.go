package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxpilot/sitetools/internal/version"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, version.Revision)
	require.Regexp(t, `^\d+\.\d+\.\d+\+`, version.String())
}
