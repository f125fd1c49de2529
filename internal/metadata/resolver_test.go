package metadata

import (
	"slices"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	p := NewPatterns()

	tests := []struct {
		name         string
		artist       string
		title        string
		wantArtists  []string
		wantFeatures []string
		wantTitle    string
	}{
		{
			name:         "inline feat in artist",
			artist:       "X, Y feat. Z",
			wantArtists:  []string{"X", "Y"},
			wantFeatures: []string{"Z"},
		},
		{
			name:         "inline feat preceded by comma",
			artist:       "X, Y, ft. Z & W",
			wantArtists:  []string{"X", "Y"},
			wantFeatures: []string{"Z", "W"},
		},
		{
			name:         "bracketed feature clause in title",
			artist:       "Kendrick Lamar",
			title:        "HUMBLE. (feat. Jay Rock)",
			wantArtists:  []string{"Kendrick Lamar"},
			wantFeatures: []string{"Jay Rock"},
			wantTitle:    "HUMBLE.",
		},
		{
			name:         "square brackets and ft",
			title:        "Song [ft Alice & Bob]",
			wantFeatures: []string{"Alice", "Bob"},
			wantTitle:    "Song",
		},
		{
			name:         "featuring spelled out",
			title:        "Song (Featuring Alice)",
			wantFeatures: []string{"Alice"},
			wantTitle:    "Song",
		},
		{
			name:         "text after the clause is kept",
			title:        "Song (feat. Alice) [Live]",
			wantFeatures: []string{"Alice"},
			wantTitle:    "Song [Live]",
		},
		{
			name:      "brackets without a feature marker",
			title:     "Song (Remix)",
			wantTitle: "Song (Remix)",
		},
		{
			name:      "feat must be followed by a space",
			title:     "Song (featherweight mix)",
			wantTitle: "Song (featherweight mix)",
		},
		{
			name:        "case-insensitive duplicates collapse",
			artist:      "Artist, ARTIST; artist",
			wantArtists: []string{"Artist"},
		},
		{
			name:        "all artist separators",
			artist:      "A & B and C + D x E X F; G\x00H",
			wantArtists: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
		},
		{
			name:         "primary credit wins over feature",
			artist:       "A, B",
			title:        "T (feat. b, C)",
			wantArtists:  []string{"A", "B"},
			wantFeatures: []string{"C"},
			wantTitle:    "T",
		},
		{
			name:         "feature listed twice keeps first spelling",
			artist:       "A feat. B",
			title:        "T (feat. b)",
			wantArtists:  []string{"A"},
			wantFeatures: []string{"b"},
			wantTitle:    "T",
		},
		{
			name:        "no title given",
			artist:      "Solo",
			wantArtists: []string{"Solo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(p, tt.artist, tt.title)
			if !slices.Equal(got.Artists, tt.wantArtists) {
				t.Errorf("Artists = %q, want %q", got.Artists, tt.wantArtists)
			}
			if !slices.Equal(got.Features, tt.wantFeatures) {
				t.Errorf("Features = %q, want %q", got.Features, tt.wantFeatures)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestResolveArtistsAndFeaturesDisjoint(t *testing.T) {
	p := NewPatterns()
	inputs := []struct{ artist, title string }{
		{"X, Y feat. Z", "Song (feat. z, Y)"},
		{"a & b", "Song [ft. A, B, C]"},
		{"Lead feat. Guest", "Song (feat. GUEST)"},
		{"One; Two", "Three (featuring one)"},
	}

	for _, in := range inputs {
		got := Resolve(p, in.artist, in.title)
		for _, a := range got.Artists {
			for _, f := range got.Features {
				if strings.EqualFold(a, f) {
					t.Errorf("Resolve(%q, %q): %q is both artist and feature", in.artist, in.title, a)
				}
			}
		}
	}
}

func TestFirstArtist(t *testing.T) {
	p := NewPatterns()
	tests := map[string]string{
		"Solo":            "Solo",
		"A, B":            "A",
		"A feat. B":       "A",
		"A & B feat. C":   "A",
		"  Padded  , B  ": "Padded",
	}
	for in, want := range tests {
		if got := firstArtist(p, in); got != want {
			t.Errorf("firstArtist(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAggregatorAgreesWithResolve(t *testing.T) {
	p := NewPatterns()
	artist := "X, Y feat. Z"
	title := "Song (ft. Y, W) [Live]"

	want := Resolve(p, artist, title)

	agg := NewAggregator(p)
	agg.FromTitle(title)
	agg.FromArtist(artist)
	got := agg.Finish()

	if !slices.Equal(got.Artists, want.Artists) || !slices.Equal(got.Features, want.Features) || got.Title != want.Title {
		t.Errorf("aggregator = (%q, %q, %q), Resolve = (%q, %q, %q)",
			got.Artists, got.Features, got.Title, want.Artists, want.Features, want.Title)
	}
}
