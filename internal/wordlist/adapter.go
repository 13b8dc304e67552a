// File: internal/wordlist/adapter.go

package wordlist

import "github.com/salman3757/passgauge/internal/analysis"

var _ analysis.WordSet = (*Set)(nil)

// AsWordSets converts loaded sets to the analysis engine's view of them.
func AsWordSets(sets []*Set) []analysis.WordSet {
	out := make([]analysis.WordSet, len(sets))
	for i, s := range sets {
		out[i] = s
	}
	return out
}
