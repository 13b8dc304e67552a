// File: internal/analysis/sequence.go
package analysis

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Alphabetical run scoring constants.
const (
	// minAlphaRun is the shortest strictly ascending or descending letter run
	// that counts.
	minAlphaRun = 3
	// alphaBitsPerRune is the penalty per rune inside a run.
	alphaBitsPerRune = 1.5
)

// AlphaSequenceDetector flags case-insensitive runs like "abcd" and "dcba".
type AlphaSequenceDetector struct {
	baseDetector
}

func NewAlphaSequenceDetector(logger *zap.Logger) *AlphaSequenceDetector {
	return &AlphaSequenceDetector{baseDetector: newBaseDetector("alpha_sequence", logger)}
}

func (d *AlphaSequenceDetector) Detect(password string, _ []WordSet) []schemas.Finding {
	runes := []rune(strings.ToLower(password))

	var findings []schemas.Finding
	i := 0
	for i < len(runes)-1 {
		if !isASCIILetter(runes[i]) {
			i++
			continue
		}
		step := runeStep(runes[i], runes[i+1], isASCIILetter)
		if step == 0 {
			i++
			continue
		}

		n := 2
		for i+n < len(runes) && isASCIILetter(runes[i+n]) && runes[i+n] == runes[i+n-1]+rune(step) {
			n++
		}
		if n < minAlphaRun {
			i++
			continue
		}

		dir := "ascending"
		if step < 0 {
			dir = "descending"
		}
		findings = append(findings, schemas.Finding{
			Kind:         schemas.KindAlphaSequence,
			Start:        i,
			End:          i + n,
			SeverityBits: alphaBitsPerRune * float64(n),
			Description:  fmt.Sprintf("%d-character %s alphabetical run", n, dir),
		})
		i += n
	}
	return findings
}

// runeStep reports +1 or -1 when b is exactly one step from a and both pass
// the class check; 0 otherwise.
func runeStep(a, b rune, inClass func(rune) bool) int {
	if !inClass(a) || !inClass(b) {
		return 0
	}
	switch b {
	case a + 1:
		return 1
	case a - 1:
		return -1
	}
	return 0
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
