package metadata

import "regexp"

// Patterns holds the compiled separator and marker expressions shared by the
// splitter, the resolver and the parser. Build it once per run with
// NewPatterns and pass it by reference; it is never mutated afterwards.
type Patterns struct {
	// "Artist - Title": a dash or en-dash with whitespace on both sides.
	primarySep *regexp.Regexp
	// Looser conventions: a dash with whitespace on one side only, em-dash,
	// "::" and "~" bordered by whitespace.
	fallbackSep *regexp.Regexp
	// "(feat. " / "[ft " opening a bracketed feature clause in a title.
	featBoundary *regexp.Regexp
	// " feat. " / ", ft " inside an artist string.
	inlineFeat *regexp.Regexp
	// Separators between several artist names.
	artistSep *regexp.Regexp
	// "05 - " style prefix at the start of a stem.
	trackPrefix *regexp.Regexp
	// What may follow a known track number at the start of a stem.
	numberSep *regexp.Regexp
}

// NewPatterns compiles the expression set.
func NewPatterns() *Patterns {
	return &Patterns{
		primarySep:   regexp.MustCompile(`\s+[-–]\s+`),
		fallbackSep:  regexp.MustCompile(`\s+[-–—]\s*|\s*[-–—]\s+|\s+(?:::|~)\s+`),
		featBoundary: regexp.MustCompile(`(?i)\s*[\(\[]\s*(?:featuring|feat\.?|ft\.?) `),
		inlineFeat:   regexp.MustCompile(`(?i),?\s+(?:featuring|feat|ft)\.?\s+`),
		artistSep:    regexp.MustCompile(`\s*[,;]\s+| and | & | \+ | [xX] |\x00`),
		trackPrefix:  regexp.MustCompile(`^(\d{2})\s*[-–._)]\s*`),
		numberSep:    regexp.MustCompile(`^(?:\s*[-–._)]\s*|\s+)`),
	}
}
