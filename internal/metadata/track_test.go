package metadata

import (
	"slices"
	"testing"
)

func TestSetIfAbsent(t *testing.T) {
	var s string
	if setIfAbsent(&s, "") {
		t.Error("zero value must not be stored")
	}
	if !setIfAbsent(&s, "first") {
		t.Error("expected first value to be stored")
	}
	if setIfAbsent(&s, "second") {
		t.Error("second value must be ignored")
	}
	if s != "first" {
		t.Errorf("s = %q, want first", s)
	}

	var n int
	setIfAbsent(&n, 0)
	setIfAbsent(&n, 4)
	setIfAbsent(&n, 9)
	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}
}

func TestAggregatorFirstWins(t *testing.T) {
	agg := NewAggregator(NewPatterns())

	if !agg.FromAlbum("Tag Album") {
		t.Error("FromAlbum(tag) should be accepted")
	}
	if agg.FromAlbum("Stem Album") {
		t.Error("FromAlbum(stem) should be ignored once an album is set")
	}
	agg.FromTitle("Tag Title")
	agg.FromTitle("Stem Title")
	agg.FromAlbumAuthor("Author")
	agg.FromAlbumAuthor("Other Author")

	m := agg.Finish()
	if m.Album != "Tag Album" {
		t.Errorf("Album = %q, want Tag Album", m.Album)
	}
	if m.Title != "Tag Title" {
		t.Errorf("Title = %q, want Tag Title", m.Title)
	}
	if m.AlbumAuthor != "Author" {
		t.Errorf("AlbumAuthor = %q, want Author", m.AlbumAuthor)
	}
}

func TestAggregatorIgnoresBlankInput(t *testing.T) {
	agg := NewAggregator(NewPatterns())

	if agg.FromAlbum("   ") {
		t.Error("whitespace-only album should be ignored")
	}
	if agg.FromTitle("\t") {
		t.Error("whitespace-only title should be ignored")
	}
	agg.FromArtist("  ")
	agg.FromAlbum("  Real Album ")

	m := agg.Finish()
	if m.Album != "Real Album" {
		t.Errorf("Album = %q, want trimmed Real Album", m.Album)
	}
	if !slices.Equal(m.Artists, []string{UnknownArtist}) {
		t.Errorf("Artists = %q, want [%s]", m.Artists, UnknownArtist)
	}
}

func TestAggregatorArtistIdempotence(t *testing.T) {
	agg := NewAggregator(NewPatterns())
	agg.FromArtist("Artist")
	agg.FromArtist("ARTIST")
	agg.FromArtist("artist, Other")

	m := agg.Finish()
	if !slices.Equal(m.Artists, []string{"Artist", "Other"}) {
		t.Errorf("Artists = %q, want [Artist Other]", m.Artists)
	}
}

func TestAggregatorTrackNumber(t *testing.T) {
	agg := NewAggregator(NewPatterns())
	if agg.FromTrackNumber(0) {
		t.Error("zero track number should be ignored")
	}
	agg.FromTrackNumber(5)
	agg.FromTrackNumber(7)

	m := agg.Finish()
	if m.TrackNumber != 5 || m.Number() != "05" {
		t.Errorf("TrackNumber = %d (%q), want 5 (05)", m.TrackNumber, m.Number())
	}
}

func TestAggregatorKeepsFeaturesFromLosingTitle(t *testing.T) {
	agg := NewAggregator(NewPatterns())
	agg.FromTitle("Tag Title")
	agg.FromTitle("Stem Title (feat. Guest)")
	agg.FromArtist("Lead")

	m := agg.Finish()
	if m.Title != "Tag Title" {
		t.Errorf("Title = %q, want Tag Title", m.Title)
	}
	if !slices.Equal(m.Features, []string{"Guest"}) {
		t.Errorf("Features = %q, want [Guest]", m.Features)
	}
}

func TestAggregatorMultiValuedAlbum(t *testing.T) {
	agg := NewAggregator(NewPatterns())
	agg.FromAlbumAuthor("A\x00B")

	if got := agg.Finish().AlbumAuthor; got != "A, B" {
		t.Errorf("AlbumAuthor = %q, want %q", got, "A, B")
	}
}

func TestNumber(t *testing.T) {
	tests := map[int]string{0: "", 1: "01", 9: "09", 12: "12", 105: "105"}
	for n, want := range tests {
		if got := (TrackMetadata{TrackNumber: n}).Number(); got != want {
			t.Errorf("Number(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestAuthor(t *testing.T) {
	tests := []struct {
		name string
		meta TrackMetadata
		want string
	}{
		{
			name: "album author wins",
			meta: TrackMetadata{AlbumAuthor: "Band", Artists: []string{"Singer"}},
			want: "Band",
		},
		{
			name: "first of several artists",
			meta: TrackMetadata{Artists: []string{"A", "B"}},
			want: "A",
		},
		{
			name: "several artists even if the first is a placeholder",
			meta: TrackMetadata{Artists: []string{"Unknown", "B"}},
			want: "Unknown",
		},
		{
			name: "single artist",
			meta: TrackMetadata{Artists: []string{"Solo"}},
			want: "Solo",
		},
		{
			name: "unknown placeholder",
			meta: TrackMetadata{Artists: []string{"Unknown"}},
		},
		{
			name: "channel id placeholder",
			meta: TrackMetadata{Artists: []string{"ID"}},
		},
		{
			name: "no artists",
			meta: TrackMetadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.Author(); got != tt.want {
				t.Errorf("Author() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPlaceholderArtist(t *testing.T) {
	tests := map[string]bool{
		"unknown":        true,
		"Unknown":        true,
		"UNKNOWN ARTIST": true,
		"id":             true,
		" Id ":           true,
		"Idles":          false,
		"The Unknowns":   false,
		"":               false,
	}
	for name, want := range tests {
		if got := IsPlaceholderArtist(name); got != want {
			t.Errorf("IsPlaceholderArtist(%q) = %v, want %v", name, got, want)
		}
	}
}
