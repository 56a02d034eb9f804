package heading_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpilot/sitetools/pkg/heading"
)

func TestFindVersion(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		tag     string
		want    string
		found   bool
	}{
		"beta suffix": {
			content: `<html><body><h1>MyApp v 1.0 Beta</h1></body></html>`,
			want:    "v 1.0 Beta",
			found:   true,
		},
		"release candidate suffix": {
			content: `<h1>MyApp v 1.0-rc.2 preview</h1>`,
			want:    "v 1.0-rc.2 preview",
			found:   true,
		},
		"no space after v": {
			content: `<h1>MaxPilot v4.12</h1>`,
			want:    "v4.12",
			found:   true,
		},
		"patch and whitespace": {
			content: "<h1>\n  MaxPilot v 2.3.1 \n</h1>",
			want:    "v 2.3.1",
			found:   true,
		},
		"attributes and upper case tag": {
			content: `<H1 class="title" id="top">MaxPilot v 4.0 Beta</H1>`,
			want:    "v 4.0 Beta",
			found:   true,
		},
		"entities kept raw": {
			content: `<h1>MaxPilot v4.0&amp;more</h1>`,
			want:    "v4.0&amp;more",
			found:   true,
		},
		"multi-line suffix": {
			content: "<h1>\n  MaxPilot v 4.0\n  Beta\n</h1>",
			want:    "v 4.0\n  Beta",
			found:   true,
		},
		"first qualifying heading wins": {
			content: `<h1>Welcome</h1><h1>Tool v 1.0</h1><h1>Tool v 2.0</h1>`,
			want:    "v 1.0",
			found:   true,
		},
		"nested tag disqualifies": {
			content: `<h1>MaxPilot <span>v 1.0</span></h1>`,
		},
		"nested tag skipped for later heading": {
			content: `<h1>MaxPilot <em>v 1.0</em></h1><h1>MaxPilot v 1.1</h1>`,
			want:    "v 1.1",
			found:   true,
		},
		"comment disqualifies": {
			content: `<h1>MaxPilot <!-- x --> v 1.0</h1>`,
		},
		"other heading level ignored": {
			content: `<h2>MaxPilot v 1.0</h2>`,
		},
		"configured heading level": {
			content: `<h1>MaxPilot</h1><h2>Release v 3.1</h2>`,
			tag:     "h2",
			want:    "v 3.1",
			found:   true,
		},
		"version outside heading": {
			content: `<p>MaxPilot v 1.0</p>`,
		},
		"not version shaped": {
			content: `<h1>Server v1 is out</h1>`,
		},
		"unclosed heading": {
			content: `<h1>MaxPilot v 1.0`,
		},
		"empty": {
			content: ``,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := heading.FindVersion([]byte(tc.content), tc.tag)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	files := map[string]string{
		"/site/about.html":    `<h1>About us</h1>`,
		"/site/index.html":    `<h1>MaxPilot v 4.0 Beta</h1>`,
		"/site/de/index.html": `<h1>MaxPilot v 3.9</h1>`,
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(base, path, []byte(content), 0o644))
	}

	d := heading.NewDetector(base, "")

	t.Run("first document in order", func(t *testing.T) {
		t.Parallel()

		m, ok := d.Detect([]string{"/site/about.html", "/site/de/index.html", "/site/index.html"})
		require.True(t, ok)
		assert.Equal(t, heading.Match{Version: "v 3.9", Path: "/site/de/index.html"}, m)
	})

	t.Run("unreadable documents are skipped", func(t *testing.T) {
		t.Parallel()

		m, ok := d.Detect([]string{"/site/missing.html", "/site/index.html"})
		require.True(t, ok)
		assert.Equal(t, "v 4.0 Beta", m.Version)
	})

	t.Run("no version", func(t *testing.T) {
		t.Parallel()

		m, ok := d.Detect([]string{"/site/about.html"})
		assert.False(t, ok)
		assert.Empty(t, m)
	})

	t.Run("no documents", func(t *testing.T) {
		t.Parallel()

		_, ok := d.Detect(nil)
		assert.False(t, ok)
	})
}
