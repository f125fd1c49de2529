package metadata

import "strings"

// Split separates a filename stem into a leading segment and the remainder.
// The primary separator is tried first; the fallback separators only when it
// does not split. Without a usable split the stem is returned unchanged with
// ok == false.
func Split(p *Patterns, stem string) (lead, rest string, ok bool) {
	if lead, rest, ok := splitOnce(p.primarySep.Split(stem, 2)); ok {
		return lead, rest, true
	}
	if lead, rest, ok := splitOnce(p.fallbackSep.Split(stem, 2)); ok {
		return lead, rest, true
	}
	return "", stem, false
}

func splitOnce(parts []string) (string, string, bool) {
	if len(parts) != 2 {
		return "", "", false
	}
	lead := strings.TrimSpace(parts[0])
	rest := strings.TrimSpace(parts[1])
	if lead == "" || rest == "" {
		return "", "", false
	}
	return lead, rest, true
}
