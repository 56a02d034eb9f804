package heading

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/net/html"
)

// DefaultTag is the heading element used when none is configured.
const DefaultTag = "h1"

// The token runs to the end of the heading text, so suffixes such as "Beta"
// are part of it.
var versionPattern = regexp.MustCompile(`v\s?\d+\.\d+[^<]*`)

// Match is a detected version and the document it was found in.
type Match struct {
	Version string
	Path    string
}

// Detector finds the current version in a set of documents.
type Detector struct {
	fs  afero.Fs
	tag string
}

// NewDetector creates a [Detector] searching the given heading element.
func NewDetector(fsys afero.Fs, tag string) *Detector {
	return &Detector{
		fs:  fsys,
		tag: normalizeTag(tag),
	}
}

// Detect scans paths in order and returns the version found in the first
// document that has one. Documents that cannot be read are skipped.
func (d *Detector) Detect(paths []string) (Match, bool) {
	for _, path := range paths {
		content, err := afero.ReadFile(d.fs, path)
		if err != nil {
			slog.Debug("skipping unreadable document", "path", path, "err", err)

			continue
		}

		if v, ok := FindVersion(content, d.tag); ok {
			slog.Debug("detected version", "path", path, "version", v)

			return Match{Version: v, Path: path}, true
		}
	}

	return Match{}, false
}

// FindVersion returns the version shown in the first qualifying heading of
// content, trimmed of surrounding whitespace. A heading qualifies when its
// content is plain text; headings with nested tags or comments are ignored.
func FindVersion(content []byte, tag string) (string, bool) {
	tag = normalizeTag(tag)
	z := html.NewTokenizer(bytes.NewReader(content))

	var (
		text      []byte
		inHeading bool
		plain     bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false

		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == tag {
				inHeading, plain = true, true
				text = text[:0]

				continue
			}

			plain = false

		case html.EndTagToken:
			name, _ := z.TagName()
			if inHeading && string(name) == tag {
				inHeading = false

				if !plain {
					continue
				}

				if v, ok := matchVersion(text); ok {
					return v, true
				}

				continue
			}

			plain = false

		case html.TextToken:
			if inHeading {
				text = append(text, z.Raw()...)
			}

		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			plain = false
		}
	}
}

func matchVersion(text []byte) (string, bool) {
	if bytes.IndexByte(text, '<') >= 0 {
		return "", false
	}

	m := versionPattern.Find(text)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(string(m)), true
}

func normalizeTag(tag string) string {
	if tag == "" {
		return DefaultTag
	}

	return strings.ToLower(tag)
}
