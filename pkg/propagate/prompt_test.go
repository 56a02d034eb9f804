package propagate_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpilot/sitetools/pkg/propagate"
)

func TestIsAffirmative(t *testing.T) {
	t.Parallel()

	tcs := map[string]bool{
		"y":     true,
		"Y":     true,
		"yes":   true,
		" YES ": true,
		"":      false,
		"n":     false,
		"no":    false,
		"yep":   false,
		"y es":  false,
	}

	for answer, want := range tcs {
		answer, want := answer, want
		t.Run(answer, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, want, propagate.IsAffirmative(answer))
		})
	}
}

func TestLinePrompter(t *testing.T) {
	t.Parallel()

	t.Run("reads both answers", func(t *testing.T) {
		t.Parallel()

		out := &bytes.Buffer{}
		p := propagate.NewLinePrompter(strings.NewReader(" v 1.1 \ny\n"), out)

		v, err := p.PromptVersion("v 1.0")
		require.NoError(t, err)
		assert.Equal(t, "v 1.1", v)

		ok, err := p.Confirm("v 1.0", v)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, "Enter new version (current: v 1.0): Update from 'v 1.0' to 'v 1.1'? (y/N): ", out.String())
	})

	t.Run("end of input is empty", func(t *testing.T) {
		t.Parallel()

		p := propagate.NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})

		v, err := p.PromptVersion("v 1.0")
		require.NoError(t, err)
		assert.Empty(t, v)

		ok, err := p.Confirm("v 1.0", "v 1.1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("last line without newline", func(t *testing.T) {
		t.Parallel()

		p := propagate.NewLinePrompter(strings.NewReader("v 2.0"), &bytes.Buffer{})

		v, err := p.PromptVersion("v 1.0")
		require.NoError(t, err)
		assert.Equal(t, "v 2.0", v)
	})

	t.Run("presets skip input", func(t *testing.T) {
		t.Parallel()

		out := &bytes.Buffer{}
		p := propagate.NewLinePrompter(strings.NewReader(""), out,
			propagate.WithVersion("v 3.0"),
			propagate.WithAssumeYes(true),
		)

		v, err := p.PromptVersion("v 1.0")
		require.NoError(t, err)
		assert.Equal(t, "v 3.0", v)

		ok, err := p.Confirm("v 1.0", v)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, out.String())
	})

	t.Run("write error", func(t *testing.T) {
		t.Parallel()

		p := propagate.NewLinePrompter(strings.NewReader("v 1.1\n"), failingWriter{})

		_, err := p.PromptVersion("v 1.0")
		require.ErrorIs(t, err, errBrokenPipe)
	})
}

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}
