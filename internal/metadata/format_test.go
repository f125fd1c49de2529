package metadata

import (
	"path/filepath"
	"testing"
)

func TestFormatName(t *testing.T) {
	meta := TrackMetadata{
		Artists:     []string{"A", "B"},
		Features:    []string{"C"},
		Album:       "Album",
		TrackNumber: 5,
		Title:       "Title",
	}
	defaults := FormatOptions{Format: "aAnt", Artist: true, Title: true}

	tests := []struct {
		name string
		meta TrackMetadata
		opts FormatOptions
		want string
	}{
		{
			name: "defaults",
			meta: meta,
			opts: defaults,
			want: "A, B - Title [feat. C]",
		},
		{
			name: "every component",
			meta: meta,
			opts: FormatOptions{Format: "aAnt", Artist: true, Album: true, Number: true, Title: true},
			want: "A, B - Album - 05 - Title [feat. C]",
		},
		{
			name: "number first",
			meta: meta,
			opts: FormatOptions{Format: "nat", Artist: true, Number: true, Title: true},
			want: "05 - A, B - Title [feat. C]",
		},
		{
			name: "no artist",
			meta: meta,
			opts: FormatOptions{Format: "aAnt", Title: true},
			want: "Title [feat. C]",
		},
		{
			name: "letter missing from format",
			meta: meta,
			opts: FormatOptions{Format: "t", Artist: true, Title: true},
			want: "Title [feat. C]",
		},
		{
			name: "unknown artist and album are skipped",
			meta: TrackMetadata{Artists: []string{UnknownArtist}, Title: "Song"},
			opts: FormatOptions{Format: "aAnt", Artist: true, Album: true, Number: true, Title: true},
			want: "Song",
		},
		{
			name: "nothing to render",
			meta: TrackMetadata{Artists: []string{UnknownArtist}},
			opts: defaults,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatName(tt.meta, tt.opts); got != tt.want {
				t.Errorf("FormatName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNameParsesBack(t *testing.T) {
	original := TrackMetadata{
		Artists:     []string{"100 gecs", "Fall Out Boy"},
		Features:    []string{"Craig Owens"},
		Album:       "10,000 gecs",
		TrackNumber: 5,
		Title:       "hand crushed by a mallet (Remix)",
	}
	all := FormatOptions{Format: "aAnt", Artist: true, Album: true, Number: true, Title: true}

	tests := []struct {
		name string
		opts FormatOptions
		want TrackMetadata
	}{
		{
			name: "everything",
			opts: all,
			want: original,
		},
		{
			name: "number without album",
			opts: FormatOptions{Format: "aAnt", Artist: true, Number: true, Title: true},
			want: TrackMetadata{Artists: original.Artists, Features: original.Features, TrackNumber: 5, Title: original.Title},
		},
		{
			name: "album without number",
			opts: FormatOptions{Format: "aAnt", Artist: true, Album: true, Title: true},
			want: TrackMetadata{Artists: original.Artists, Features: original.Features, Album: original.Album, Title: original.Title},
		},
		{
			name: "number first",
			opts: FormatOptions{Format: "nat", Artist: true, Number: true, Title: true},
			want: TrackMetadata{Artists: original.Artists, Features: original.Features, TrackNumber: 5, Title: original.Title},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := FormatName(original, tt.opts) + ".mp3"
			got, err := newTestParser(&fakeSource{}).Parse(filepath.Join(t.TempDir(), "inbox", name))
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", name, err)
			}
			assertMetadata(t, got, tt.want)
		})
	}
}
