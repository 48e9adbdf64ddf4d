package domain

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxSuggestions caps how many autocomplete candidates are presented.
const MaxSuggestions = 10

// NormalizeDescription prepares a description for exact matching: line
// endings stripped, surrounding whitespace trimmed, case folded. The master
// list data contains entries with stray trailing newlines, so matching on the
// raw text misses them.
func NormalizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ToLower(strings.TrimSpace(s))
}

// Search returns up to limit master entries whose description contains the
// query, case-insensitively. Prefix matches come first; within each bucket
// candidates are ordered by edit distance to the query so the closest match
// lands on top and can be pre-selected. An empty query yields nothing.
func Search(master []CatalogEntry, query string, limit int) []CatalogEntry {
	if limit <= 0 {
		limit = MaxSuggestions
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type candidate struct {
		entry    CatalogEntry
		isPrefix bool
		distance int
	}
	matches := make([]candidate, 0, 32)
	for _, entry := range master {
		desc := strings.ToLower(strings.TrimSpace(entry.Description))
		if !strings.Contains(desc, q) {
			continue
		}
		matches = append(matches, candidate{
			entry:    entry,
			isPrefix: strings.HasPrefix(desc, q),
			distance: fuzzy.LevenshteinDistance(q, desc),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].entry.Description < matches[j].entry.Description
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]CatalogEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.entry)
	}
	return out
}

// Resolve maps free text back to the master entry whose normalized
// description matches it exactly. This is the only path that may produce a
// line-item identifier.
func Resolve(master []CatalogEntry, text string) (CatalogEntry, bool) {
	want := NormalizeDescription(text)
	if want == "" {
		return CatalogEntry{}, false
	}
	for _, entry := range master {
		if NormalizeDescription(entry.Description) == want {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
