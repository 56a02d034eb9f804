package docset_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpilot/sitetools/pkg/docset"
	"github.com/maxpilot/sitetools/pkg/siteerrors"
)

func newSite(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/site", f), []byte("<h1>x</h1>"), 0o644))
	}

	return fs
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	fs := newSite(t,
		"index.html",
		"about.html",
		"style.css",
		"de/index.html",
		"de/guide/start.html",
		"de/guide/notes.txt",
		"compare/index.html",
		"ar/index.html",
		"fr/index.html",
		"assets/logo.html",
	)

	tcs := map[string]struct {
		opts []docset.Option
		want []string
	}{
		"root only": {
			want: []string{"/site/about.html", "/site/index.html"},
		},
		"dirs in listed order": {
			opts: []docset.Option{docset.WithDirs("de", "ar", "compare")},
			want: []string{
				"/site/about.html",
				"/site/index.html",
				"/site/de/guide/start.html",
				"/site/de/index.html",
				"/site/ar/index.html",
				"/site/compare/index.html",
			},
		},
		"missing dirs are skipped": {
			opts: []docset.Option{docset.WithDirs("ja", "ar", "how_use")},
			want: []string{"/site/about.html", "/site/index.html", "/site/ar/index.html"},
		},
		"unlisted dirs are ignored": {
			opts: []docset.Option{docset.WithDirs("de")},
			want: []string{
				"/site/about.html",
				"/site/index.html",
				"/site/de/guide/start.html",
				"/site/de/index.html",
			},
		},
		"custom include": {
			opts: []docset.Option{docset.WithDirs("de"), docset.WithInclude("*.txt", "*.css")},
			want: []string{"/site/style.css", "/site/de/guide/notes.txt"},
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := docset.Discover(fs, "/site", tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDiscoverEmpty(t *testing.T) {
	t.Parallel()

	fs := newSite(t, "readme.md")

	got, err := docset.Discover(fs, "/site", docset.WithDirs("de"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverFileNamedLikeDir(t *testing.T) {
	t.Parallel()

	fs := newSite(t, "index.html")
	require.NoError(t, afero.WriteFile(fs, "/site/de", []byte("not a dir"), 0o644))

	got, err := docset.Discover(fs, "/site", docset.WithDirs("de"))
	require.NoError(t, err)
	assert.Equal(t, []string{"/site/index.html"}, got)
}

func TestDiscoverMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := docset.Discover(afero.NewMemMapFs(), "/nowhere")
	require.Error(t, err)
}

func TestNewFinderInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := docset.NewFinder(afero.NewMemMapFs(), "/site", docset.WithInclude("[html"))
	require.ErrorIs(t, err, siteerrors.ErrInvalidArguments)

	_, err = docset.NewFinder(afero.NewMemMapFs(), "/site", docset.WithInclude())
	require.ErrorIs(t, err, siteerrors.ErrInvalidArguments)
}

func TestFinderMatch(t *testing.T) {
	t.Parallel()

	f, err := docset.NewFinder(afero.NewMemMapFs(), "/site", docset.WithInclude("*.html", "*.{htm,xhtml}"))
	require.NoError(t, err)

	assert.True(t, f.Match("index.html"))
	assert.True(t, f.Match("index.htm"))
	assert.True(t, f.Match("page.xhtml"))
	assert.False(t, f.Match("index.html.bak"))
	assert.False(t, f.Match("style.css"))
}
