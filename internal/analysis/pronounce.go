// File: internal/analysis/pronounce.go
package analysis

import (
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Pronounceability scoring constants. High pronounceability is the weakness:
// a speakable password is reachable by phonetic generators.
const (
	// pronounceMinLength: shorter passwords are never flagged.
	pronounceMinLength = 6
	// pronounceMinLetters: the ratio needs at least this many letters to
	// mean anything.
	pronounceMinLetters = 3
	// pronounceRatioThreshold: findings fire strictly above this
	// vowel-consonant alternation ratio.
	pronounceRatioThreshold = 0.6
	// pronounceBitsPerLetter is the penalty per letter once flagged.
	pronounceBitsPerLetter = 0.5
)

// pronounceVowels includes 'y', which behaves as a vowel in most of the
// syllables phonetic generators produce.
var pronounceVowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true,
}

// PronounceabilityDetector measures the vowel-consonant alternation ratio
// over the password's letters (other runes are skipped entirely).
type PronounceabilityDetector struct {
	baseDetector
}

func NewPronounceabilityDetector(logger *zap.Logger) *PronounceabilityDetector {
	return &PronounceabilityDetector{baseDetector: newBaseDetector("pronounceability", logger)}
}

func (d *PronounceabilityDetector) Detect(password string, _ []WordSet) []schemas.Finding {
	runes := []rune(password)
	if len(runes) < pronounceMinLength {
		return nil
	}

	letters := make([]rune, 0, len(runes))
	for _, r := range runes {
		lower := unicode.ToLower(r)
		if lower >= 'a' && lower <= 'z' {
			letters = append(letters, lower)
		}
	}
	if len(letters) < pronounceMinLetters {
		return nil
	}

	alternations := 0
	for i := 1; i < len(letters); i++ {
		if pronounceVowels[letters[i]] != pronounceVowels[letters[i-1]] {
			alternations++
		}
	}
	ratio := float64(alternations) / float64(len(letters)-1)
	if ratio <= pronounceRatioThreshold {
		return nil
	}

	return []schemas.Finding{{
		Kind:         schemas.KindLowPronounceability,
		Start:        0,
		End:          len(runes),
		SeverityBits: pronounceBitsPerLetter * float64(len(letters)),
		Description:  fmt.Sprintf("phonetically regular: vowel-consonant alternation ratio %.2f", ratio),
	}}
}
