// File: internal/audit/gate.go

package audit

import (
	"fmt"

	"github.com/salman3757/passgauge/api/schemas"
)

// bandRank orders strength bands weakest to strongest.
var bandRank = map[schemas.Strength]int{
	schemas.StrengthVeryWeak:   0,
	schemas.StrengthWeak:       1,
	schemas.StrengthFair:       2,
	schemas.StrengthStrong:     3,
	schemas.StrengthVeryStrong: 4,
}

// ParseBand validates a strength band name from config or a flag.
func ParseBand(name string) (schemas.Strength, error) {
	band := schemas.Strength(name)
	if _, ok := bandRank[band]; !ok {
		return "", fmt.Errorf("audit: unknown strength band %q (want very-weak, weak, fair, strong or very-strong)", name)
	}
	return band, nil
}

// GateFailures counts the candidates that landed strictly below the
// failBelow band. An empty failBelow disables the gate and reports zero.
func GateFailures(summary *schemas.AuditSummary, failBelow string) (int, error) {
	if failBelow == "" {
		return 0, nil
	}
	threshold, err := ParseBand(failBelow)
	if err != nil {
		return 0, err
	}

	failures := 0
	for band, count := range summary.ByStrength {
		if rank, ok := bandRank[band]; ok && rank < bandRank[threshold] {
			failures += count
		}
	}
	return failures, nil
}

// GateZxcvbnFailures counts records whose advisory zxcvbn score fell below
// minScore. Records carrying the disabled marker (-1) never count.
func GateZxcvbnFailures(records []schemas.AuditRecord, minScore int) int {
	failures := 0
	for i := range records {
		score := records[i].ZxcvbnScore
		if score >= 0 && score < minScore {
			failures++
		}
	}
	return failures
}
