package library

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"catty/pkg/utils"
)

const (
	// OtherBucket holds authors whose name does not start with a letter.
	OtherBucket = ".other"
	// UnknownDir holds files nobody could be credited for.
	UnknownDir = ".unknown"
)

var buckets = []struct {
	first, last rune
	name        string
}{
	{'a', 'f', "A-F"},
	{'g', 'k', "G-K"},
	{'l', 'p', "L-P"},
	{'q', 'u', "Q-U"},
	{'v', 'z', "V-Z"},
}

// Bucket returns the top-level folder an author is filed under. Accents are
// ignored, so "Édith Piaf" lands in A-F.
func Bucket(author string) string {
	key := utils.FoldKey(author)
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), key)
	if err == nil {
		key = stripped
	}

	r, _ := utf8.DecodeRuneInString(key)
	for _, b := range buckets {
		if r >= b.first && r <= b.last {
			return b.name
		}
	}
	return OtherBucket
}
