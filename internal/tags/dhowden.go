package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// Dhowden reads tags with github.com/dhowden/tag. It is pure Go and covers
// ID3v1/v2, MP4, FLAC and OGG, so it serves as a fallback when taglib
// rejects a file.
type Dhowden struct{}

// NewDhowden creates a dhowden/tag-backed Source.
func NewDhowden() *Dhowden {
	return &Dhowden{}
}

func (d *Dhowden) Name() string { return "dhowden/tag" }

func (d *Dhowden) Read(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, noTags(d.Name(), path, err)
	}

	track, _ := m.Track()
	if track < 0 {
		track = 0
	}
	return Tags{
		Artist:      m.Artist(),
		Album:       m.Album(),
		AlbumArtist: m.AlbumArtist(),
		TrackNumber: track,
		Title:       m.Title(),
	}, nil
}
