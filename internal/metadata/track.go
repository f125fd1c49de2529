package metadata

import (
	"fmt"
	"slices"
	"strings"

	"catty/pkg/utils"
)

// UnknownArtist is recorded when no source names an artist.
const UnknownArtist = "unknown"

// Artist values that stand in for a missing name, compared case-insensitively.
// "id" comes from downloads whose only uploader field was a channel id.
var placeholderArtists = []string{UnknownArtist, "unknown artist", "id"}

// TrackMetadata is the merged metadata of a single file. Empty strings and a
// zero TrackNumber mean the field is unknown.
type TrackMetadata struct {
	Artists     []string
	Features    []string
	Album       string
	AlbumAuthor string
	TrackNumber int
	Title       string
}

// Number returns the track number zero-padded to two digits, or "" if unknown.
func (m TrackMetadata) Number() string {
	if m.TrackNumber <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d", m.TrackNumber)
}

// Author picks the name a track is filed under: the album author, else the
// lead artist unless it is a placeholder. Returns "" when nobody qualifies.
func (m TrackMetadata) Author() string {
	if m.AlbumAuthor != "" {
		return m.AlbumAuthor
	}
	switch {
	case len(m.Artists) > 1:
		return m.Artists[0]
	case len(m.Artists) == 1 && !IsPlaceholderArtist(m.Artists[0]):
		return m.Artists[0]
	}
	return ""
}

// IsPlaceholderArtist reports whether name only stands in for a missing artist.
func IsPlaceholderArtist(name string) bool {
	return slices.ContainsFunc(placeholderArtists, func(p string) bool {
		return utils.EqualFold(p, name)
	})
}

// Aggregator merges metadata contributions for one file. Scalar fields keep
// the first non-empty value they receive; artists and features accumulate
// without case-insensitive duplicates. Use a fresh Aggregator per file.
type Aggregator struct {
	patterns    *Patterns
	names       *registry
	album       string
	albumAuthor string
	trackNumber int
	title       string
}

// NewAggregator creates an empty aggregator.
func NewAggregator(p *Patterns) *Aggregator {
	return &Aggregator{
		patterns: p,
		names:    newRegistry(),
	}
}

// setIfAbsent stores v in *dst unless v is the zero value or *dst is already
// set. It reports whether the value was stored.
func setIfAbsent[T comparable](dst *T, v T) bool {
	var zero T
	if v == zero || *dst != zero {
		return false
	}
	*dst = v
	return true
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ", "))
}

func (a *Aggregator) FromAlbum(album string) bool {
	return setIfAbsent(&a.album, clean(album))
}

func (a *Aggregator) FromAlbumAuthor(author string) bool {
	return setIfAbsent(&a.albumAuthor, clean(author))
}

func (a *Aggregator) FromTrackNumber(n int) bool {
	if n < 0 {
		return false
	}
	return setIfAbsent(&a.trackNumber, n)
}

// FromTitle registers the title's featured artists and then offers the
// cleaned title. Features are kept even when an earlier title already won.
func (a *Aggregator) FromTitle(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return setIfAbsent(&a.title, resolve(a.patterns, a.names, "", title))
}

// FromArtist registers primary and inline featured artists.
func (a *Aggregator) FromArtist(artist string) {
	if strings.TrimSpace(artist) == "" {
		return
	}
	resolve(a.patterns, a.names, artist, "")
}

// Finish returns the merged metadata. The aggregator must not be used
// afterwards.
func (a *Aggregator) Finish() TrackMetadata {
	artists := slices.Clone(a.names.artists)
	if len(artists) == 0 {
		artists = []string{UnknownArtist}
	}
	return TrackMetadata{
		Artists:     artists,
		Features:    slices.Clone(a.names.features),
		Album:       a.album,
		AlbumAuthor: a.albumAuthor,
		TrackNumber: a.trackNumber,
		Title:       a.title,
	}
}
