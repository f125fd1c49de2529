package metadata

import "strings"

// FormatOptions controls which components FormatName emits and in which
// order. Format is a sequence of the letters a (artists), A (album),
// n (track number) and t (title).
type FormatOptions struct {
	Format string
	Artist bool
	Album  bool
	Number bool
	Title  bool
}

// FormatName renders m as a filename stem, joining the selected components
// with " - ". Featured artists are appended to the title as "[feat. ...]" so
// the result parses back to the same metadata. Unknown components are left
// out; "" means nothing could be rendered.
func FormatName(m TrackMetadata, opts FormatOptions) string {
	var parts []string
	for _, letter := range opts.Format {
		var part string
		switch letter {
		case 'a':
			if opts.Artist && !(len(m.Artists) == 1 && IsPlaceholderArtist(m.Artists[0])) {
				part = strings.Join(m.Artists, ", ")
			}
		case 'A':
			if opts.Album {
				part = m.Album
			}
		case 'n':
			if opts.Number {
				part = m.Number()
			}
		case 't':
			if opts.Title && m.Title != "" {
				part = m.Title
				if len(m.Features) > 0 {
					part += " [feat. " + strings.Join(m.Features, ", ") + "]"
				}
			}
		}
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " - ")
}
