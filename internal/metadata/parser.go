package metadata

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"catty/internal/logger"
	"catty/internal/tags"
	"catty/pkg/utils"
)

// Parser infers TrackMetadata from a file's tags, its filename and the names
// of its enclosing directories.
type Parser struct {
	source   tags.Source
	patterns *Patterns
	logger   *logger.Logger
}

// NewParser creates a Parser reading tags from source.
func NewParser(source tags.Source, p *Patterns, log *logger.Logger) *Parser {
	return &Parser{source: source, patterns: p, logger: log}
}

// stemInfo is what the filename contributes.
type stemInfo struct {
	number int
	artist string
	album  string
	title  string
}

// Parse builds the metadata for path. Only I/O failures while reading tags
// are returned; unreadable tag containers degrade to filename-only metadata.
func (p *Parser) Parse(path string) (TrackMetadata, error) {
	t, err := p.source.Read(path)
	if err != nil {
		if tags.IsIOError(err) {
			return TrackMetadata{}, fmt.Errorf("failed to read tags: %w", err)
		}
		p.logger.Warn("%v, using filename only", err)
		t = tags.Tags{}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	dir := filepath.Dir(path)
	parentName := filepath.Base(dir)
	grandparentName := filepath.Base(filepath.Dir(dir))

	stem := p.parseStem(path, t.TrackNumber)

	// No album tag: look for one in the filename or the directory layout.
	var inferredAuthor string
	if strings.TrimSpace(t.Album) == "" && stem.album == "" {
		if album, title, ok := Split(p.patterns, stem.title); ok && utils.EqualFold(album, parentName) {
			stem.album = album
			stem.title = title
		} else if author := p.matchArtist(grandparentName, t.AlbumArtist, stem.artist, t.Artist); author != "" {
			p.logger.Debug("  %s: album %q inferred from directory of %q", filepath.Base(path), parentName, author)
			stem.album = parentName
			inferredAuthor = author
		} else if ok && stem.artist != "" {
			// "Artist - Album - Title"
			stem.album = album
			stem.title = title
		}
	}

	// Streaming services sometimes title tracks "Artist - Title".
	tagTitle := t.Title
	if lead, rest, ok := Split(p.patterns, tagTitle); ok && p.matchArtist(lead, t.Artist, stem.artist) != "" {
		tagTitle = rest
	}

	agg := NewAggregator(p.patterns)
	agg.FromAlbum(t.Album)
	agg.FromAlbum(stem.album)
	agg.FromAlbumAuthor(t.AlbumArtist)
	agg.FromAlbumAuthor(inferredAuthor)
	agg.FromTrackNumber(t.TrackNumber)
	agg.FromTrackNumber(stem.number)
	agg.FromTitle(tagTitle)
	agg.FromTitle(stem.title)
	// Artists go last so feature clauses are already claimed.
	agg.FromArtist(stem.artist)
	agg.FromArtist(t.Artist)
	return agg.Finish(), nil
}

func (p *Parser) parseStem(path string, tagNumber int) stemInfo {
	base := filepath.Base(path)
	raw := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(raw) == "" {
		p.logger.Warn("no usable filename stem in %s, using tags only", path)
		return stemInfo{}
	}

	var info stemInfo
	raw, info.number = p.stripTrackPrefix(raw, tagNumber)
	if lead, rest, ok := Split(p.patterns, raw); ok {
		info.artist = lead
		info.title = rest
		p.splitNumbered(&info, tagNumber)
	} else {
		info.title = strings.TrimSpace(raw)
	}
	return info
}

// splitNumbered takes the track number out of the remainder of
// "Artist - 05 - Title" and "Artist - Album - 05 - Title". A number found at
// the start of the stem is kept.
func (p *Parser) splitNumbered(info *stemInfo, tagNumber int) {
	if rest, n := p.stripTrackPrefix(info.title, tagNumber); rest != info.title {
		info.title = strings.TrimSpace(rest)
		setIfAbsent(&info.number, n)
		return
	}
	album, tail, ok := Split(p.patterns, info.title)
	if !ok {
		return
	}
	if rest, n := p.stripTrackPrefix(tail, tagNumber); rest != tail {
		info.album = album
		info.title = strings.TrimSpace(rest)
		setIfAbsent(&info.number, n)
	}
}

// stripTrackPrefix removes a leading two-digit track number. A number known
// from the tags may be followed by plain whitespace; otherwise an explicit
// separator is required so names like "50 Cent" survive.
func (p *Parser) stripTrackPrefix(stem string, tagNumber int) (string, int) {
	if tagNumber > 0 {
		if rest, ok := strings.CutPrefix(stem, fmt.Sprintf("%02d", tagNumber)); ok {
			if loc := p.patterns.numberSep.FindStringIndex(rest); loc != nil && strings.TrimSpace(rest[loc[1]:]) != "" {
				return rest[loc[1]:], 0
			}
		}
	}
	m := p.patterns.trackPrefix.FindStringSubmatch(stem)
	if m == nil || strings.TrimSpace(stem[len(m[0]):]) == "" {
		return stem, 0
	}
	n, _ := strconv.Atoi(m[1])
	return stem[len(m[0]):], n
}

// matchArtist returns the first candidate (or its lead name) that equals
// name case-insensitively, or "" when none does.
func (p *Parser) matchArtist(name string, candidates ...string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	for _, c := range candidates {
		c = clean(c)
		if c == "" {
			continue
		}
		if utils.EqualFold(c, name) {
			return c
		}
		if first := firstArtist(p.patterns, c); first != "" && utils.EqualFold(first, name) {
			return first
		}
	}
	return ""
}
