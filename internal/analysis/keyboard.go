// File: internal/analysis/keyboard.go
package analysis

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Keyboard walk scoring constants.
const (
	// minKeyboardRun is the shortest adjacent-key span that counts as a walk.
	minKeyboardRun = 3
	// keyboardBitsPerRune is the penalty per rune inside a walk.
	keyboardBitsPerRune = 2.0
)

// keyboardRows are the physical rows scanned for walks: the three QWERTY
// letter rows, the digit row, and the AZERTY top row. Each row is also
// matched right-to-left.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
	"azertyuiop",
}

// KeyboardDetector flags spans of adjacent keys pressed in order, the
// classic "qwerty" and "asdf" walks.
type KeyboardDetector struct {
	baseDetector
	rows [][]rune
}

func NewKeyboardDetector(logger *zap.Logger) *KeyboardDetector {
	rows := make([][]rune, 0, len(keyboardRows)*2)
	for _, row := range keyboardRows {
		r := []rune(row)
		rows = append(rows, r, reverseRunes(r))
	}
	return &KeyboardDetector{
		baseDetector: newBaseDetector("keyboard", logger),
		rows:         rows,
	}
}

// Detect emits one finding per maximal walk. Overlapping row table entries
// (QWERTY and AZERTY share a tail) resolve to the longest span.
func (d *KeyboardDetector) Detect(password string, _ []WordSet) []schemas.Finding {
	runes := []rune(strings.ToLower(password))

	var findings []schemas.Finding
	i := 0
	for i < len(runes) {
		run := d.longestWalkAt(runes, i)
		if run < minKeyboardRun {
			i++
			continue
		}
		findings = append(findings, schemas.Finding{
			Kind:         schemas.KindKeyboardPattern,
			Start:        i,
			End:          i + run,
			SeverityBits: keyboardBitsPerRune * float64(run),
			Description:  fmt.Sprintf("%d-character walk along a keyboard row", run),
		})
		i += run
	}
	return findings
}

// longestWalkAt returns the longest adjacent-key span starting at position i
// across every row and direction. Returns 1 when the rune sits on no row.
func (d *KeyboardDetector) longestWalkAt(runes []rune, i int) int {
	best := 1
	for _, row := range d.rows {
		j := runeIndex(row, runes[i])
		if j < 0 {
			continue
		}
		n := 1
		for i+n < len(runes) && j+n < len(row) && runes[i+n] == row[j+n] {
			n++
		}
		if n > best {
			best = n
		}
	}
	return best
}

func runeIndex(haystack []rune, r rune) int {
	for i, h := range haystack {
		if h == r {
			return i
		}
	}
	return -1
}

func reverseRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
