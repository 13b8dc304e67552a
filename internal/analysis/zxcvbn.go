// File: internal/analysis/zxcvbn.go
package analysis

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// crossCheckMaxRunes caps the input handed to the cross-checker. Its
// matching is quadratic and password dumps contain pathological lines.
const crossCheckMaxRunes = 50

// CrossCheckScore returns zxcvbn's advisory 0-4 score for password. The
// input is truncated to crossCheckMaxRunes runes before scoring; the score
// sits next to the engine's own estimate for display, it never feeds the
// entropy math.
func CrossCheckScore(password string) int {
	runes := []rune(password)
	if len(runes) > crossCheckMaxRunes {
		runes = runes[:crossCheckMaxRunes]
	}
	return zxcvbn.PasswordStrength(string(runes), nil).Score
}
