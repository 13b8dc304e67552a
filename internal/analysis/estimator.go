// File: internal/analysis/estimator.go
package analysis

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/salman3757/passgauge/api/schemas"
)

// symbolBucketSize is the alphabet credit given for any rune outside the
// lower/upper/digit classes when inferring the observed pool. It matches the
// common printable-ASCII punctuation count so analysis of exotic input stays
// comparable across tools.
const symbolBucketSize = 32

// Estimator computes naive and adjusted entropy for arbitrary passwords. It
// is stateless across calls and safe for concurrent use once constructed.
type Estimator struct {
	detectors []Detector
	parallel  bool
	log       *zap.Logger
}

// NewEstimator wires the default detector pipeline. With parallel set the
// detectors run concurrently; findings are re-sequenced into the documented
// detector order either way, so reports stay deterministic.
func NewEstimator(logger *zap.Logger, parallel bool) *Estimator {
	return &Estimator{
		detectors: DefaultDetectors(logger),
		parallel:  parallel,
		log:       logger.Named("estimator"),
	}
}

// Analyze produces a fresh report for one password. It never fails: empty,
// unicode, and pathological inputs all yield a well-formed report.
func (e *Estimator) Analyze(password string, sets []WordSet) *schemas.AnalysisReport {
	length := runeLen(password)
	poolSize := observedPoolSize(password)

	var naive float64
	if length > 0 && poolSize > 0 {
		naive = float64(length) * math.Log2(float64(poolSize))
	}

	findings := make([]schemas.Finding, 0)
	if length > 0 {
		findings = append(findings, e.runDetectors(password, sets)...)
	}

	var penalty float64
	for _, f := range findings {
		penalty += f.SeverityBits
	}
	adjusted := naive - penalty
	if adjusted < 0 {
		adjusted = 0
	}

	e.log.Debug("Analysis complete",
		zap.Int("length", length),
		zap.Int("pool_size", poolSize),
		zap.Float64("naive_bits", naive),
		zap.Float64("adjusted_bits", adjusted),
		zap.Int("findings", len(findings)),
	)

	return &schemas.AnalysisReport{
		Length:              length,
		PoolSize:            poolSize,
		NaiveEntropyBits:    naive,
		AdjustedEntropyBits: adjusted,
		Strength:            schemas.StrengthFromBits(adjusted),
		Findings:            findings,
	}
}

// runDetectors executes the pipeline and flattens results in detector order.
func (e *Estimator) runDetectors(password string, sets []WordSet) []schemas.Finding {
	results := make([][]schemas.Finding, len(e.detectors))

	if e.parallel {
		var g errgroup.Group
		for i, d := range e.detectors {
			g.Go(func() error {
				results[i] = d.Detect(password, sets)
				return nil
			})
		}
		// Detectors never return errors; Wait only joins the goroutines.
		_ = g.Wait()
	} else {
		for i, d := range e.detectors {
			results[i] = d.Detect(password, sets)
		}
	}

	var findings []schemas.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	return findings
}

// observedPoolSize infers the effective alphabet from the character classes
// actually present: 26 for lowercase, 26 for uppercase, 10 for digits, and a
// fixed 32-rune bucket once anything else (symbols, unicode) appears.
func observedPoolSize(password string) int {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	size := 0
	if lower {
		size += 26
	}
	if upper {
		size += 26
	}
	if digit {
		size += 10
	}
	if other {
		size += symbolBucketSize
	}
	return size
}

// naiveEntropyBits is the detector-side view of the naive estimate, used by
// the dictionary detector to size its exact-match penalty without assuming
// the estimator ran first.
func naiveEntropyBits(password string) float64 {
	length := runeLen(password)
	pool := observedPoolSize(password)
	if length == 0 || pool == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
