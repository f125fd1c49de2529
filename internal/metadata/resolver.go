package metadata

import (
	"slices"
	"strings"

	"catty/pkg/utils"
)

// Resolution is the outcome of resolving raw artist and title text.
type Resolution struct {
	Artists  []string
	Features []string
	Title    string
}

// Resolve extracts primary and featured artists from raw artist and title
// text and returns the title with its feature clause removed. It is the
// standalone form of what an Aggregator does across several sources.
func Resolve(p *Patterns, artist, title string) Resolution {
	reg := newRegistry()
	title = resolve(p, reg, artist, title)
	return Resolution{
		Artists:  slices.Clone(reg.artists),
		Features: slices.Clone(reg.features),
		Title:    title,
	}
}

// resolve registers the names found in title and artist into reg, title
// first, and returns the cleaned title.
func resolve(p *Patterns, reg *registry, artist, title string) string {
	if title != "" {
		title = stripFeatures(p, reg, title)
	}
	if artist != "" {
		registerArtists(p, reg, artist)
	}
	return title
}

// stripFeatures removes the first bracketed feature clause from title,
// registering the names it lists. Text after the clause's closing bracket is
// kept: "Song (feat. X) [Live]" becomes "Song [Live]".
func stripFeatures(p *Patterns, reg *registry, title string) string {
	loc := p.featBoundary.FindStringIndex(title)
	if loc == nil {
		return strings.TrimSpace(title)
	}

	head := strings.TrimSpace(title[:loc[0]])
	clause := title[loc[1]:]
	tail := ""
	if i := strings.IndexAny(clause, ")]"); i >= 0 {
		clause, tail = clause[:i], strings.TrimSpace(clause[i+1:])
	}

	for _, name := range p.artistSep.Split(clause, -1) {
		reg.addFeature(name)
	}

	if tail == "" {
		return head
	}
	if head == "" {
		return tail
	}
	return head + " " + tail
}

// registerArtists splits "X, Y feat. Z" into primary artists X, Y and the
// featured artist Z.
func registerArtists(p *Patterns, reg *registry, artist string) {
	primary := artist
	if parts := p.inlineFeat.Split(artist, 2); len(parts) == 2 {
		primary = parts[0]
		for _, name := range p.artistSep.Split(parts[1], -1) {
			reg.addFeature(name)
		}
	}
	for _, name := range p.artistSep.Split(primary, -1) {
		reg.addArtist(name)
	}
}

// firstArtist returns the first name in a multi-artist string.
func firstArtist(p *Patterns, artist string) string {
	if parts := p.inlineFeat.Split(artist, 2); len(parts) == 2 {
		artist = parts[0]
	}
	return strings.TrimSpace(p.artistSep.Split(artist, 2)[0])
}

type role int

const (
	roleArtist role = iota + 1
	roleFeature
)

// registry keeps artists and features unique under case folding and
// disjoint from each other. A name credited as a primary artist wins over
// the feature role: registering it moves it out of the features.
type registry struct {
	roles    map[string]role
	artists  []string
	features []string
}

func newRegistry() *registry {
	return &registry{roles: make(map[string]role)}
}

func (r *registry) addArtist(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	key := utils.FoldKey(name)
	switch r.roles[key] {
	case roleArtist:
		return false
	case roleFeature:
		r.features = slices.DeleteFunc(r.features, func(f string) bool {
			return utils.FoldKey(f) == key
		})
	}
	r.roles[key] = roleArtist
	r.artists = append(r.artists, name)
	return true
}

func (r *registry) addFeature(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	key := utils.FoldKey(name)
	if _, ok := r.roles[key]; ok {
		return false
	}
	r.roles[key] = roleFeature
	r.features = append(r.features, name)
	return true
}
