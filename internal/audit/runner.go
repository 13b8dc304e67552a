// File: internal/audit/runner.go

// Package audit analyzes batches of candidate passwords, one per input
// line, and aggregates the results into a persistable, reportable run.
package audit

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
)

const (
	// defaultWeakestCount bounds how many low scorers the summary names.
	defaultWeakestCount = 10

	// maxCandidateBytes bounds one input line.
	maxCandidateBytes = 1 << 20
)

// RunnerConfig wires a Runner. Estimator is required; everything else has a
// usable zero value.
type RunnerConfig struct {
	Estimator *analysis.Estimator
	WordSets  []analysis.WordSet
	Logger    *zap.Logger

	// Concurrency is the number of candidates analyzed in parallel.
	Concurrency int

	// WeakestCount is how many of the lowest scoring lines the summary keeps.
	WeakestCount int

	// ZxcvbnCrossCheck attaches an advisory zxcvbn score to every record.
	ZxcvbnCrossCheck bool
}

// Runner executes audit runs. Safe for concurrent use; each Run is
// independent.
type Runner struct {
	estimator    *analysis.Estimator
	sets         []analysis.WordSet
	logger       *zap.Logger
	concurrency  int
	weakestCount int
	zxcvbnCheck  bool
}

// NewRunner builds a Runner from config.
func NewRunner(cfg *RunnerConfig) (*Runner, error) {
	if cfg == nil || cfg.Estimator == nil {
		return nil, fmt.Errorf("audit: runner needs an estimator")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	weakestCount := cfg.WeakestCount
	if weakestCount <= 0 {
		weakestCount = defaultWeakestCount
	}
	return &Runner{
		estimator:    cfg.Estimator,
		sets:         cfg.WordSets,
		logger:       logger.Named("audit"),
		concurrency:  concurrency,
		weakestCount: weakestCount,
		zxcvbnCheck:  cfg.ZxcvbnCrossCheck,
	}, nil
}

// candidate is one non-blank input line awaiting analysis.
type candidate struct {
	line     int
	password string
}

// Run analyzes every non-blank line of input and returns the completed run
// envelope. Line numbers count physical lines, so they stay meaningful next
// to the original file even when blank lines are skipped. Records come back
// ordered by line number regardless of analysis concurrency.
func (r *Runner) Run(ctx context.Context, input io.Reader) (*schemas.ReportEnvelope, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()

	candidates, err := readCandidates(input)
	if err != nil {
		return nil, err
	}

	records := make([]schemas.AuditRecord, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = r.analyzeCandidate(runID, cand)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit: run %s aborted: %w", runID, err)
	}

	summary := r.summarize(runID, records, startedAt)
	r.logger.Info("audit run complete",
		zap.String("run_id", runID),
		zap.Int("candidates", summary.Total),
		zap.Float64("mean_adjusted_bits", summary.MeanAdjustedBits),
		zap.Duration("duration", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	return &schemas.ReportEnvelope{
		RunID:   runID,
		Records: records,
		Summary: summary,
	}, nil
}

func readCandidates(input io.Reader) ([]candidate, error) {
	var candidates []candidate
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxCandidateBytes)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		candidates = append(candidates, candidate{line: lineNumber, password: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: reading candidates: %w", err)
	}
	return candidates, nil
}

func (r *Runner) analyzeCandidate(runID string, cand candidate) schemas.AuditRecord {
	report := r.estimator.Analyze(cand.password, r.sets)

	digest := sha256.Sum256([]byte(cand.password))

	score := -1
	if r.zxcvbnCheck {
		score = analysis.CrossCheckScore(cand.password)
	}

	return schemas.AuditRecord{
		RunID:          runID,
		LineNumber:     cand.line,
		PasswordSHA256: hex.EncodeToString(digest[:]),
		Report:         *report,
		ZxcvbnScore:    score,
		AnalyzedAt:     time.Now().UTC(),
	}
}

func (r *Runner) summarize(runID string, records []schemas.AuditRecord, startedAt time.Time) *schemas.AuditSummary {
	byStrength := map[schemas.Strength]int{
		schemas.StrengthVeryWeak:   0,
		schemas.StrengthWeak:       0,
		schemas.StrengthFair:       0,
		schemas.StrengthStrong:     0,
		schemas.StrengthVeryStrong: 0,
	}

	var totalBits float64
	for i := range records {
		byStrength[records[i].Report.Strength]++
		totalBits += records[i].Report.AdjustedEntropyBits
	}

	mean := 0.0
	if len(records) > 0 {
		mean = totalBits / float64(len(records))
	}

	return &schemas.AuditSummary{
		RunID:            runID,
		Total:            len(records),
		ByStrength:       byStrength,
		MeanAdjustedBits: mean,
		WeakestLines:     weakestLines(records, r.weakestCount),
		StartedAt:        startedAt,
		FinishedAt:       time.Now().UTC(),
	}
}

// weakestLines returns the line numbers of the count lowest scoring records,
// ascending by adjusted bits, line number breaking ties.
func weakestLines(records []schemas.AuditRecord, count int) []int {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ra, rb := &records[idx[a]], &records[idx[b]]
		if ra.Report.AdjustedEntropyBits != rb.Report.AdjustedEntropyBits {
			return ra.Report.AdjustedEntropyBits < rb.Report.AdjustedEntropyBits
		}
		return ra.LineNumber < rb.LineNumber
	})

	if count > len(idx) {
		count = len(idx)
	}
	lines := make([]int, 0, count)
	for _, i := range idx[:count] {
		lines = append(lines, records[i].LineNumber)
	}
	return lines
}
