// File: internal/analysis/repetition.go
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Repetition scoring constants.
const (
	// minRepeatRun is the shortest same-rune run that counts.
	minRepeatRun = 3
	// minUnitRepeats is how often a multi-rune unit must appear back to back.
	minUnitRepeats = 3
	// maxRepeatUnitLen bounds the repeated unit length the scan considers.
	maxRepeatUnitLen = 4
	// repeatBitsPerRune scales both penalty variants; longer runs and longer
	// units penalize more.
	repeatBitsPerRune = 2.0
)

// RepetitionDetector flags literal repetition: a rune repeated minRepeatRun+
// times ("aaa"), or a 2-4 rune unit repeated minUnitRepeats+ times
// ("abcabcabc"). Comparison is case-sensitive; "AaAa" is not a repeat.
type RepetitionDetector struct {
	baseDetector
}

func NewRepetitionDetector(logger *zap.Logger) *RepetitionDetector {
	return &RepetitionDetector{baseDetector: newBaseDetector("repetition", logger)}
}

func (d *RepetitionDetector) Detect(password string, _ []WordSet) []schemas.Finding {
	runes := []rune(password)

	var findings []schemas.Finding
	i := 0
	for i < len(runes) {
		// Same-rune runs win over unit runs so "aaaaaa" is one finding, not
		// an "aa" unit repeated three times.
		n := 1
		for i+n < len(runes) && runes[i+n] == runes[i] {
			n++
		}
		if n >= minRepeatRun {
			findings = append(findings, schemas.Finding{
				Kind:         schemas.KindRepetition,
				Start:        i,
				End:          i + n,
				SeverityBits: repeatBitsPerRune * float64(n-2),
				Description:  fmt.Sprintf("character repeated %d times", n),
			})
			i += n
			continue
		}

		if unitLen, count := longestUnitRun(runes, i); unitLen > 0 {
			total := unitLen * count
			findings = append(findings, schemas.Finding{
				Kind:         schemas.KindRepetition,
				Start:        i,
				End:          i + total,
				SeverityBits: repeatBitsPerRune * float64(unitLen) * float64(count-2),
				Description:  fmt.Sprintf("%d-character unit repeated %d times", unitLen, count),
			})
			i += total
			continue
		}
		i++
	}
	return findings
}

// longestUnitRun looks for a unit of length 2..maxRepeatUnitLen that repeats
// at least minUnitRepeats times starting at i, preferring the longest total
// span. Returns (0, 0) when nothing qualifies.
func longestUnitRun(runes []rune, i int) (unitLen, count int) {
	bestTotal := 0
	for u := 2; u <= maxRepeatUnitLen && i+u*minUnitRepeats <= len(runes); u++ {
		c := 1
		for {
			next := i + c*u
			if next+u > len(runes) || !runesEqual(runes[i:i+u], runes[next:next+u]) {
				break
			}
			c++
		}
		if c >= minUnitRepeats && u*c > bestTotal {
			bestTotal = u * c
			unitLen = u
			count = c
		}
	}
	return unitLen, count
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
