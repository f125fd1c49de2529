package metadata

import "testing"

func TestSplit(t *testing.T) {
	p := NewPatterns()

	tests := []struct {
		name     string
		stem     string
		wantLead string
		wantRest string
		wantOK   bool
	}{
		{
			name:     "artist dash title",
			stem:     "Artist - Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "en dash",
			stem:     "Artist – Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "only the first separator splits",
			stem:     "Artist - Album - Title",
			wantLead: "Artist",
			wantRest: "Album - Title",
			wantOK:   true,
		},
		{
			name:     "hyphenated word before separator",
			stem:     "Spider-Man - Main Theme",
			wantLead: "Spider-Man",
			wantRest: "Main Theme",
			wantOK:   true,
		},
		{
			name:     "fallback dash missing trailing space",
			stem:     "Artist -Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "fallback dash missing leading space",
			stem:     "Artist- Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "fallback em dash",
			stem:     "Artist — Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "fallback double colon",
			stem:     "Artist :: Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "fallback tilde",
			stem:     "Artist ~ Title",
			wantLead: "Artist",
			wantRest: "Title",
			wantOK:   true,
		},
		{
			name:     "hyphen inside a word does not split",
			stem:     "Jay-Z",
			wantRest: "Jay-Z",
		},
		{
			name:     "double colon without whitespace",
			stem:     "Artist::Title",
			wantRest: "Artist::Title",
		},
		{
			name:     "no separator",
			stem:     "Just A Title",
			wantRest: "Just A Title",
		},
		{
			name:     "empty leading segment",
			stem:     " - Title",
			wantRest: " - Title",
		},
		{
			name:     "empty remainder",
			stem:     "Artist -",
			wantRest: "Artist -",
		},
		{
			name:     "empty stem",
			stem:     "",
			wantRest: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead, rest, ok := Split(p, tt.stem)
			if lead != tt.wantLead || rest != tt.wantRest || ok != tt.wantOK {
				t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.stem, lead, rest, ok, tt.wantLead, tt.wantRest, tt.wantOK)
			}
		})
	}
}
