// File: internal/analysis/digits.go
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Digit pattern scoring constants.
const (
	// minDigitRun is the shortest monotonic digit run that counts.
	minDigitRun = 3
	// digitBitsPerRune is the penalty per rune in a monotonic run.
	digitBitsPerRune = 1.5

	// Date shapes carry flat penalties: a date is one fact about its owner,
	// not length-proportional randomness.
	dateFullYearBits  = 10.0 // ddmmyyyy, yyyymmdd, mmddyyyy
	dateShortYearBits = 8.0  // ddmmyy, yymmdd, mmddyy
	bareYearBits      = 6.0  // standalone 19xx / 20xx

	yearMin = 1900
	yearMax = 2099
)

// DigitPatternDetector covers both digit weaknesses: monotonic runs like
// "1234"/"9876" (numeric_sequence) and date-shaped substrings (date_like).
// Date shapes only need digit-range plausibility (day 1-31, month 1-12),
// not calendar validity.
type DigitPatternDetector struct {
	baseDetector
}

func NewDigitPatternDetector(logger *zap.Logger) *DigitPatternDetector {
	return &DigitPatternDetector{baseDetector: newBaseDetector("digit_patterns", logger)}
}

// Detect returns monotonic-run findings first, then date findings, each in
// position order.
func (d *DigitPatternDetector) Detect(password string, _ []WordSet) []schemas.Finding {
	runes := []rune(password)
	findings := d.monotonicRuns(runes)

	for _, sp := range digitSpans(runes) {
		if f := dateInSpan(runes, sp.start, sp.end); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

func (d *DigitPatternDetector) monotonicRuns(runes []rune) []schemas.Finding {
	var findings []schemas.Finding
	i := 0
	for i < len(runes)-1 {
		if !isASCIIDigit(runes[i]) {
			i++
			continue
		}
		step := runeStep(runes[i], runes[i+1], isASCIIDigit)
		if step == 0 {
			i++
			continue
		}

		n := 2
		for i+n < len(runes) && isASCIIDigit(runes[i+n]) && runes[i+n] == runes[i+n-1]+rune(step) {
			n++
		}
		if n < minDigitRun {
			i++
			continue
		}

		dir := "ascending"
		if step < 0 {
			dir = "descending"
		}
		findings = append(findings, schemas.Finding{
			Kind:         schemas.KindNumericSequence,
			Start:        i,
			End:          i + n,
			SeverityBits: digitBitsPerRune * float64(n),
			Description:  fmt.Sprintf("%d-digit %s run", n, dir),
		})
		i += n
	}
	return findings
}

type span struct {
	start, end int
}

// digitSpans returns the maximal all-digit intervals of the input.
func digitSpans(runes []rune) []span {
	var spans []span
	i := 0
	for i < len(runes) {
		if !isASCIIDigit(runes[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && isASCIIDigit(runes[j]) {
			j++
		}
		spans = append(spans, span{start: i, end: j})
		i = j
	}
	return spans
}

// dateInSpan finds at most one date shape per digit span, longest shape
// first: 8-digit full-year forms, then 6-digit two-digit-year forms, then a
// standalone 4-digit year.
func dateInSpan(runes []rune, start, end int) *schemas.Finding {
	length := end - start
	if length >= 8 {
		for i := start; i+8 <= end; i++ {
			if shape, ok := fullYearShape(runes[i : i+8]); ok {
				return &schemas.Finding{
					Kind:         schemas.KindDateLike,
					Start:        i,
					End:          i + 8,
					SeverityBits: dateFullYearBits,
					Description:  fmt.Sprintf("8-digit %s date shape", shape),
				}
			}
		}
	}
	if length >= 6 {
		for i := start; i+6 <= end; i++ {
			if shape, ok := shortYearShape(runes[i : i+6]); ok {
				return &schemas.Finding{
					Kind:         schemas.KindDateLike,
					Start:        i,
					End:          i + 6,
					SeverityBits: dateShortYearBits,
					Description:  fmt.Sprintf("6-digit %s date shape", shape),
				}
			}
		}
	}
	if length == 4 && validYear(twoDigits(runes, start)*100+twoDigits(runes, start+2)) {
		return &schemas.Finding{
			Kind:         schemas.KindDateLike,
			Start:        start,
			End:          end,
			SeverityBits: bareYearBits,
			Description:  "4-digit run shaped like a calendar year",
		}
	}
	return nil
}

// fullYearShape tests the three 8-digit orderings; first match names the
// shape.
func fullYearShape(w []rune) (string, bool) {
	switch {
	case validYear(twoDigits(w, 0)*100+twoDigits(w, 2)) && validMonth(twoDigits(w, 4)) && validDay(twoDigits(w, 6)):
		return "yyyymmdd", true
	case validDay(twoDigits(w, 0)) && validMonth(twoDigits(w, 2)) && validYear(twoDigits(w, 4)*100+twoDigits(w, 6)):
		return "ddmmyyyy", true
	case validMonth(twoDigits(w, 0)) && validDay(twoDigits(w, 2)) && validYear(twoDigits(w, 4)*100+twoDigits(w, 6)):
		return "mmddyyyy", true
	}
	return "", false
}

// shortYearShape tests the three 6-digit orderings; the two-digit year field
// accepts any value.
func shortYearShape(w []rune) (string, bool) {
	switch {
	case validDay(twoDigits(w, 0)) && validMonth(twoDigits(w, 2)):
		return "ddmmyy", true
	case validMonth(twoDigits(w, 2)) && validDay(twoDigits(w, 4)):
		return "yymmdd", true
	case validMonth(twoDigits(w, 0)) && validDay(twoDigits(w, 2)):
		return "mmddyy", true
	}
	return "", false
}

func twoDigits(w []rune, i int) int {
	return int(w[i]-'0')*10 + int(w[i+1]-'0')
}

func validDay(d int) bool   { return d >= 1 && d <= 31 }
func validMonth(m int) bool { return m >= 1 && m <= 12 }
func validYear(y int) bool  { return y >= yearMin && y <= yearMax }
