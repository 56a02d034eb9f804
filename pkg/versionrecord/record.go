// Package versionrecord loads and saves the site's version record.
//
// The record is a JSON object holding at least "version" and "releaseDate".
// Saving edits those two values inside the original document, so any other
// fields survive untouched and in their original order.
package versionrecord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/buger/jsonparser"
	"github.com/spf13/afero"

	"github.com/maxpilot/sitetools/pkg/siteerrors"
)

const (
	keyVersion     = "version"
	keyReleaseDate = "releaseDate"

	indent = "  "
)

// Record is an in-memory version record.
type Record struct {
	Version     string `json:"version"`
	ReleaseDate string `json:"releaseDate"`

	path string
	raw  []byte
}

// Load reads the record at path.
func Load(fsys afero.Fs, path string) (*Record, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", siteerrors.ErrConfigMissing, path)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r.path = path

	return r, nil
}

// Parse decodes a record from JSON. The document must be an object.
func Parse(data []byte) (*Record, error) {
	if _, dataType, _, err := jsonparser.Get(data); err != nil || dataType != jsonparser.Object {
		return nil, fmt.Errorf("%w: not a JSON object", siteerrors.ErrConfigInvalid)
	}

	r := &Record{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("%w: %w", siteerrors.ErrConfigInvalid, err)
	}

	r.raw = bytes.Clone(data)

	return r, nil
}

// Path returns the location the record was loaded from.
func (r *Record) Path() string {
	return r.path
}

// Marshal renders the record with two-space indentation. Non-ASCII and
// HTML characters are not escaped, and \u escapes in the loaded document are
// written back as the characters they stand for.
func (r *Record) Marshal() ([]byte, error) {
	data := bytes.TrimSpace(r.raw)
	if len(data) == 0 {
		data = []byte("{}")
	}

	for _, kv := range [][2]string{
		{keyVersion, r.Version},
		{keyReleaseDate, r.ReleaseDate},
	} {
		value, err := encodeString(kv[1])
		if err != nil {
			return nil, err
		}

		// Set may append into spare capacity of its input.
		data, err = jsonparser.Set(slices.Clip(data), value, kv[0])
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", kv[0], err)
		}
	}

	out := &bytes.Buffer{}
	if err := json.Indent(out, data, "", indent); err != nil {
		return nil, fmt.Errorf("%w: %w", siteerrors.ErrInvalidFormat, err)
	}

	return unescapeUnicode(out.Bytes())
}

// Save writes the record back to the path it was loaded from, replacing the
// file contents.
func (r *Record) Save(fsys afero.Fs) error {
	return r.SaveAs(fsys, r.path)
}

// SaveAs writes the record to path.
func (r *Record) SaveAs(fsys afero.Fs, path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", siteerrors.ErrConfigWrite, path, err)
	}

	perm := os.FileMode(0o644)
	if fi, err := fsys.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	if err := afero.WriteFile(fsys, path, data, perm); err != nil {
		return fmt.Errorf("%w: %s: %w", siteerrors.ErrConfigWrite, path, err)
	}

	r.raw = data
	r.path = path

	return nil
}

func encodeString(s string) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("%w: %w", siteerrors.ErrInvalidFormat, err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unescapeUnicode re-encodes every string literal of data that holds a \u
// escape. data must be valid JSON.
func unescapeUnicode(data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte(`\u`)) {
		return data, nil
	}

	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		if data[i] != '"' {
			out = append(out, data[i])
			i++

			continue
		}

		end := stringEnd(data, i+1)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated string", siteerrors.ErrInvalidFormat)
		}

		lit := data[i : end+1]
		if bytes.Contains(lit, []byte(`\u`)) {
			s, err := jsonparser.ParseString(lit[1 : len(lit)-1])
			if err != nil {
				return nil, fmt.Errorf("%w: %w", siteerrors.ErrInvalidFormat, err)
			}

			if lit, err = encodeString(s); err != nil {
				return nil, err
			}
		}

		out = append(out, lit...)
		i = end + 1
	}

	return out, nil
}

// stringEnd returns the index of the quote closing the string literal whose
// contents start at from, or -1.
func stringEnd(data []byte, from int) int {
	for j := from; j < len(data); j++ {
		switch data[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}

	return -1
}
