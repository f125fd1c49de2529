package tags

import (
	"os"
	"syscall"

	"go.senan.xyz/taglib"
)

// Taglib reads tags through go.senan.xyz/taglib.
type Taglib struct{}

// NewTaglib creates a taglib-backed Source.
func NewTaglib() *Taglib {
	return &Taglib{}
}

func (t *Taglib) Name() string { return "taglib" }

// Read stats the file first so filesystem failures surface as I/O errors;
// taglib itself does not distinguish them from parse failures.
func (t *Taglib) Read(path string) (Tags, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Tags{}, err
	}
	if info.IsDir() {
		return Tags{}, &os.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}

	raw, err := taglib.ReadTags(path)
	if err != nil {
		return Tags{}, noTags(t.Name(), path, err)
	}

	return Tags{
		Artist:      joinValues(raw[taglib.Artist]),
		Album:       firstTag(raw, taglib.Album),
		AlbumArtist: firstTag(raw, taglib.AlbumArtist),
		TrackNumber: parseTrackNumber(firstTag(raw, taglib.TrackNumber)),
		Title:       firstTag(raw, taglib.Title),
	}, nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
