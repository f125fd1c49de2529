package library

import "testing"

func TestBucket(t *testing.T) {
	tests := map[string]string{
		"ABBA":         "A-F",
		"fall out boy": "A-F",
		"Gorillaz":     "G-K",
		"kendrick":     "G-K",
		"Lorde":        "L-P",
		"Portishead":   "L-P",
		"Queen":        "Q-U",
		"underworld":   "Q-U",
		"Vampire":      "V-Z",
		"ZZ Top":       "V-Z",
		"  Muse":       "L-P",
		"Édith Piaf":   "A-F",
		"Øystein":      OtherBucket,
		"100 gecs":     OtherBucket,
		"$uicideboy$":  OtherBucket,
		"坂本龍一":         OtherBucket,
		"":             OtherBucket,
	}
	for author, want := range tests {
		if got := Bucket(author); got != want {
			t.Errorf("Bucket(%q) = %q, want %q", author, got, want)
		}
	}
}
