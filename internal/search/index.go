package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"holidaze/internal/holidazeapi"
)

// editTolerance is the fixed misspelling budget for the edit-distance
// fallback. Queries within this many edits of a key token still match.
const editTolerance = 2

// Index is a fuzzy-match index over venue name, city, and country. Build once
// per venue list, query many times.
type Index struct {
	entries []string // lowercased keys, flattened across venues
	owners  []int    // entries[i] belongs to venue owners[i]
	count   int
}

// NewIndex builds the index. Venues with no usable keys are still present in
// the venue list but can never match a location query.
func NewIndex(venues []holidazeapi.Venue) *Index {
	ix := &Index{count: len(venues)}
	for i, v := range venues {
		for _, key := range []string{v.Name, v.Location.City, v.Location.Country} {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			ix.entries = append(ix.entries, key)
			ix.owners = append(ix.owners, i)
		}
	}
	return ix
}

// Match pairs a venue position with its match score. Higher is better.
type Match struct {
	Venue int
	Score int
}

// Search returns the venues matching query, best score first. Subsequence
// matches rank by their fuzzy score; venues reached only through the
// edit-distance fallback rank below all of them, nearest first.
func (ix *Index) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	best := make(map[int]int, ix.count)

	for _, m := range fuzzy.Find(query, ix.entries) {
		owner := ix.owners[m.Index]
		if score, ok := best[owner]; !ok || m.Score > score {
			best[owner] = m.Score
		}
	}

	// Edit-distance fallback catches transpositions and near-misses that
	// subsequence matching rejects ("osol" -> "oslo").
	fallback := make(map[int]int)
	for i, entry := range ix.entries {
		owner := ix.owners[i]
		if _, ok := best[owner]; ok {
			continue
		}
		if d := keyDistance(query, entry); d <= editTolerance {
			score := fallbackScore(d)
			if cur, ok := fallback[owner]; !ok || score > cur {
				fallback[owner] = score
			}
		}
	}
	for owner, score := range fallback {
		best[owner] = score
	}

	matches := make([]Match, 0, len(best))
	for venue, score := range best {
		matches = append(matches, Match{Venue: venue, Score: score})
	}
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].Venue < matches[b].Venue
	})
	return matches
}

// keyDistance is the smallest edit distance between the query and any
// whitespace-separated token of the key (or the whole key).
func keyDistance(query, key string) int {
	d := levenshtein.ComputeDistance(query, key)
	for _, token := range strings.Fields(key) {
		if td := levenshtein.ComputeDistance(query, token); td < d {
			d = td
		}
	}
	return d
}

// fallbackScore ranks edit-distance matches strictly below fuzzy subsequence
// scores, which are never this negative for short keys.
func fallbackScore(distance int) int {
	return -1000 - distance
}
