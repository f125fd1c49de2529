// Package tags reads the embedded tag fields the metadata engine cares about.
//
// Readers distinguish two failure classes: I/O errors (the file could not be
// opened or read) which callers treat as fatal, and everything else (no tag
// container, unsupported or corrupt format) which is reported as ErrNoTags so
// callers can fall back to filename-only metadata.
package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// ErrNoTags marks a non-I/O failure: the file is readable but carries no
// usable tag container.
var ErrNoTags = errors.New("no usable tags")

// Tags holds the raw fields read from a file. Empty strings and a zero
// TrackNumber mean the field is absent. Multi-valued fields are joined with
// a NUL byte.
type Tags struct {
	Artist      string
	Album       string
	AlbumArtist string
	TrackNumber int
	Title       string
}

// IsEmpty reports whether no field is set.
func (t Tags) IsEmpty() bool {
	return t == Tags{}
}

// Source is implemented by tag readers.
type Source interface {
	Name() string
	Read(path string) (Tags, error)
}

// IsIOError reports whether err came from the filesystem rather than from
// tag parsing.
func IsIOError(err error) bool {
	if err == nil || errors.Is(err, ErrNoTags) {
		return false
	}
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}

func noTags(reader, path string, err error) error {
	return fmt.Errorf("%s: %s: %w: %v", reader, path, ErrNoTags, err)
}

// parseTrackNumber accepts "5", "05" and "5/12".
func parseTrackNumber(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func joinValues(vals []string) string {
	var kept []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, "\x00")
}
