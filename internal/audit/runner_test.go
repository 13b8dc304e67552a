package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/analysis"
)

// testWordSet is a tiny in-memory analysis.WordSet.
type testWordSet struct {
	label string
	words map[string]struct{}
}

func newTestWordSet(label string, words ...string) *testWordSet {
	set := &testWordSet{label: label, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		set.words[w] = struct{}{}
	}
	return set
}

func (s *testWordSet) Label() string { return s.label }
func (s *testWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}
func (s *testWordSet) Len() int { return len(s.words) }

func newTestRunner(t *testing.T, cfg RunnerConfig) *Runner {
	t.Helper()
	if cfg.Estimator == nil {
		cfg.Estimator = analysis.NewEstimator(zap.NewNop(), true)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r, err := NewRunner(&cfg)
	require.NoError(t, err)
	return r
}

func TestNewRunner(t *testing.T) {
	t.Parallel()

	t.Run("requires an estimator", func(t *testing.T) {
		t.Parallel()
		_, err := NewRunner(nil)
		assert.Error(t, err)

		_, err = NewRunner(&RunnerConfig{})
		assert.Error(t, err)
	})
}

func TestRunner_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := "password\n\nxK7!qP2@9rT4\nqwerty123\n"
	runner := newTestRunner(t, RunnerConfig{Concurrency: 2, WeakestCount: 2})

	envelope, err := runner.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.NotNil(t, envelope)
	assert.NotEmpty(t, envelope.RunID)

	// The blank line is skipped but physical line numbers are kept.
	require.Len(t, envelope.Records, 3)
	assert.Equal(t, 1, envelope.Records[0].LineNumber)
	assert.Equal(t, 3, envelope.Records[1].LineNumber)
	assert.Equal(t, 4, envelope.Records[2].LineNumber)

	first := envelope.Records[0]
	assert.Equal(t, envelope.RunID, first.RunID)
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		first.PasswordSHA256)
	assert.InDelta(t, 37.60, first.Report.AdjustedEntropyBits, 0.01)
	assert.Equal(t, schemas.StrengthWeak, first.Report.Strength)
	assert.Equal(t, -1, first.ZxcvbnScore)
	assert.False(t, first.AnalyzedAt.IsZero())

	second := envelope.Records[1]
	assert.Equal(t,
		"29d654377f1c11c8e2b4ff0a5b6f7e210504a45f72b584aae795739a15a89524",
		second.PasswordSHA256)
	assert.Empty(t, second.Report.Findings)
	assert.InDelta(t, 78.66, second.Report.AdjustedEntropyBits, 0.01)
	assert.Equal(t, schemas.StrengthStrong, second.Report.Strength)

	third := envelope.Records[2]
	assert.Equal(t, schemas.StrengthVeryWeak, third.Report.Strength)
	assert.InDelta(t, 24.03, third.Report.AdjustedEntropyBits, 0.01)
	require.Len(t, third.Report.Findings, 3)
	assert.Equal(t, schemas.KindKeyboardPattern, third.Report.Findings[0].Kind)
	assert.Equal(t, schemas.KindKeyboardPattern, third.Report.Findings[1].Kind)
	assert.Equal(t, schemas.KindNumericSequence, third.Report.Findings[2].Kind)

	summary := envelope.Summary
	require.NotNil(t, summary)
	assert.Equal(t, envelope.RunID, summary.RunID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.ByStrength[schemas.StrengthVeryWeak])
	assert.Equal(t, 1, summary.ByStrength[schemas.StrengthWeak])
	assert.Equal(t, 0, summary.ByStrength[schemas.StrengthFair])
	assert.Equal(t, 1, summary.ByStrength[schemas.StrengthStrong])
	assert.Equal(t, 0, summary.ByStrength[schemas.StrengthVeryStrong])
	assert.InDelta(t, 46.76, summary.MeanAdjustedBits, 0.01)
	assert.Equal(t, []int{4, 1}, summary.WeakestLines)
	assert.False(t, summary.StartedAt.IsZero())
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))
}

func TestRunner_WordSets(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newTestRunner(t, RunnerConfig{
		WordSets: []analysis.WordSet{newTestWordSet("breach", "password")},
	})

	envelope, err := runner.Run(context.Background(), strings.NewReader("password\n"))
	require.NoError(t, err)
	require.Len(t, envelope.Records, 1)

	report := envelope.Records[0].Report
	require.Len(t, report.Findings, 1)
	assert.Equal(t, schemas.KindDictionaryMatch, report.Findings[0].Kind)
	assert.Equal(t, "breach", report.Findings[0].Source)
	assert.InDelta(t, 4.0, report.AdjustedEntropyBits, 0.001)
	assert.Equal(t, schemas.StrengthVeryWeak, report.Strength)
}

func TestRunner_ZxcvbnCrossCheck(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newTestRunner(t, RunnerConfig{ZxcvbnCrossCheck: true})

	// The 70-rune line exercises the length cap on the cross-checker.
	input := "password\nxK7!qP2@9rT4\n" + strings.Repeat("a", 70) + "\n"
	envelope, err := runner.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, envelope.Records, 3)

	for _, rec := range envelope.Records {
		assert.GreaterOrEqual(t, rec.ZxcvbnScore, 0)
		assert.LessOrEqual(t, rec.ZxcvbnScore, 4)
	}
	assert.Equal(t, 0, envelope.Records[0].ZxcvbnScore, "a top-listed password scores 0")
	assert.GreaterOrEqual(t, envelope.Records[1].ZxcvbnScore, 3, "random mixed-class material scores high")
}

func TestRunner_OrderedUnderConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "candidate-%02d-material\n", i)
	}

	runner := newTestRunner(t, RunnerConfig{Concurrency: 5})
	envelope, err := runner.Run(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, envelope.Records, 40)

	for i, rec := range envelope.Records {
		assert.Equal(t, i+1, rec.LineNumber)

		want := sha256.Sum256([]byte(fmt.Sprintf("candidate-%02d-material", i)))
		assert.Equal(t, hex.EncodeToString(want[:]), rec.PasswordSHA256)
	}
}

func TestRunner_EmptyInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newTestRunner(t, RunnerConfig{})
	envelope, err := runner.Run(context.Background(), strings.NewReader("\n\n\n"))
	require.NoError(t, err)

	assert.NotNil(t, envelope.Records)
	assert.Empty(t, envelope.Records)
	assert.Equal(t, 0, envelope.Summary.Total)
	assert.Zero(t, envelope.Summary.MeanAdjustedBits)
	assert.Empty(t, envelope.Summary.WeakestLines)
}

func TestRunner_CanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := newTestRunner(t, RunnerConfig{})
	_, err := runner.Run(ctx, strings.NewReader("password\nqwerty123\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGateFailures(t *testing.T) {
	t.Parallel()

	summary := &schemas.AuditSummary{
		ByStrength: map[schemas.Strength]int{
			schemas.StrengthVeryWeak:   2,
			schemas.StrengthWeak:       3,
			schemas.StrengthFair:       5,
			schemas.StrengthStrong:     1,
			schemas.StrengthVeryStrong: 1,
		},
	}

	testCases := []struct {
		name      string
		failBelow string
		want      int
		wantErr   bool
	}{
		{name: "disabled when empty", failBelow: "", want: 0},
		{name: "nothing below the floor band", failBelow: "very-weak", want: 0},
		{name: "below weak", failBelow: "weak", want: 2},
		{name: "below fair", failBelow: "fair", want: 5},
		{name: "below very-strong", failBelow: "very-strong", want: 11},
		{name: "unknown band", failBelow: "mega", wantErr: true},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := GateFailures(summary, tt.failBelow)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateZxcvbnFailures(t *testing.T) {
	t.Parallel()

	records := []schemas.AuditRecord{
		{ZxcvbnScore: -1}, // cross-check disabled; never counts
		{ZxcvbnScore: 0},
		{ZxcvbnScore: 2},
		{ZxcvbnScore: 4},
	}

	assert.Equal(t, 0, GateZxcvbnFailures(records, 0))
	assert.Equal(t, 1, GateZxcvbnFailures(records, 1))
	assert.Equal(t, 2, GateZxcvbnFailures(records, 3))
	assert.Equal(t, 3, GateZxcvbnFailures(records, 5))
}

func TestParseBand(t *testing.T) {
	t.Parallel()

	band, err := ParseBand("fair")
	require.NoError(t, err)
	assert.Equal(t, schemas.StrengthFair, band)

	_, err = ParseBand("FAIR")
	assert.Error(t, err)
	_, err = ParseBand("")
	assert.Error(t, err)
}
