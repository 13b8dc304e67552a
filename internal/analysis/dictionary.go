// File: internal/analysis/dictionary.go
package analysis

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Dictionary scoring constants.
const (
	// minDictionaryWindow is the shortest substring probed against word sets.
	minDictionaryWindow = 4
	// maxDictionaryWindow bounds the probe length; no common wordlist entry
	// is longer.
	maxDictionaryWindow = 24
	// compromisedFloorBits is the residual credit left after an exact list
	// hit: the password is in the attacker's list, position is all that is
	// left to guess.
	compromisedFloorBits = 4.0
)

var (
	// dictionaryWordBits approximates log2 of an attacker's word inventory;
	// matching one word is worth about this much guessing work.
	dictionaryWordBits = math.Log2(50000)
	// letterBits is the per-rune entropy credit of a lowercase-only token.
	letterBits = math.Log2(26)
)

// leetFold maps common digit substitutions back to the letters they stand
// for before the second dictionary pass.
var leetFold = map[rune]rune{
	'4': 'a',
	'3': 'e',
	'0': 'o',
	'1': 'l',
	'5': 's',
	'7': 't',
}

// DictionaryDetector checks membership against every supplied word set:
// first the whole password, then sliding windows, then both again after leet
// decoding. All lookups are O(1) set probes; sets are never iterated.
type DictionaryDetector struct {
	baseDetector
}

func NewDictionaryDetector(logger *zap.Logger) *DictionaryDetector {
	return &DictionaryDetector{baseDetector: newBaseDetector("dictionary", logger)}
}

// Detect emits one finding per distinct match, grouped per set in caller
// order, windows ordered by start position with the longest token claiming
// each region first.
func (d *DictionaryDetector) Detect(password string, sets []WordSet) []schemas.Finding {
	if len(sets) == 0 {
		return nil
	}
	runes := []rune(strings.ToLower(password))
	if len(runes) == 0 {
		return nil
	}
	leet := leetDecode(runes)

	var findings []schemas.Finding
	for _, set := range sets {
		if set == nil || set.Len() == 0 {
			continue
		}
		findings = append(findings, d.scanSet(password, runes, leet, set)...)
	}
	return findings
}

func (d *DictionaryDetector) scanSet(password string, runes, leet []rune, set WordSet) []schemas.Finding {
	n := len(runes)

	// An exact whole-password hit outweighs any window match: everything but
	// the floor is forfeit, and window scanning for this set would only
	// restate the same fact.
	if set.Contains(string(runes)) {
		return []schemas.Finding{exactMatchFinding(password, n, set,
			fmt.Sprintf("entire password appears in word set %q", set.Label()))}
	}
	if leet != nil && set.Contains(string(leet)) {
		return []schemas.Finding{exactMatchFinding(password, n, set,
			fmt.Sprintf("entire password appears in word set %q after leet decoding", set.Label()))}
	}

	var found []schemas.Finding
	var claimed []span

	scan := func(text []rune, viaLeet bool) {
		for start := 0; start+minDictionaryWindow <= n; start++ {
			maxLen := n - start
			if maxLen > maxDictionaryWindow {
				maxLen = maxDictionaryWindow
			}
			for length := maxLen; length >= minDictionaryWindow; length-- {
				if containedIn(claimed, start, start+length) {
					continue
				}
				if !set.Contains(string(text[start : start+length])) {
					continue
				}

				severity := float64(length)*letterBits - dictionaryWordBits
				if severity < 0 {
					severity = 0
				}
				severity *= float64(length) / float64(n)

				desc := fmt.Sprintf("%d-character token appears in word set %q", length, set.Label())
				if viaLeet {
					desc = fmt.Sprintf("%d-character token appears in word set %q after leet decoding", length, set.Label())
				}
				found = append(found, schemas.Finding{
					Kind:         schemas.KindDictionaryMatch,
					Start:        start,
					End:          start + length,
					SeverityBits: severity,
					Description:  desc,
					Source:       set.Label(),
				})
				claimed = append(claimed, span{start: start, end: start + length})
				break
			}
		}
	}

	scan(runes, false)
	if leet != nil {
		scan(leet, true)
	}
	return found
}

func exactMatchFinding(password string, n int, set WordSet, desc string) schemas.Finding {
	severity := naiveEntropyBits(password) - compromisedFloorBits
	if severity < 0 {
		severity = 0
	}
	return schemas.Finding{
		Kind:         schemas.KindDictionaryMatch,
		Start:        0,
		End:          n,
		SeverityBits: severity,
		Description:  desc,
		Source:       set.Label(),
	}
}

// containedIn reports whether [start, end) sits inside an already claimed
// region. Longer tokens that extend past a claimed region still match.
func containedIn(claimed []span, start, end int) bool {
	for _, c := range claimed {
		if start >= c.start && end <= c.end {
			return true
		}
	}
	return false
}

// leetDecode maps substitutions back to letters, returning nil when the
// input contains none so callers can skip the second pass.
func leetDecode(runes []rune) []rune {
	changed := false
	out := make([]rune, len(runes))
	for i, r := range runes {
		if folded, ok := leetFold[r]; ok {
			out[i] = folded
			changed = true
		} else {
			out[i] = r
		}
	}
	if !changed {
		return nil
	}
	return out
}
