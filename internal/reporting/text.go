// -- internal/reporting/text.go --
package reporting

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/observability"
)

// strengthBarCells is the width of the console strength gauge. Each cell
// represents 5 bits of adjusted entropy, saturating at 100.
const strengthBarCells = 20

// TextReporter renders envelopes as human-readable console output. Records
// stream out as they are written; Close only releases the writer. It is
// thread safe.
type TextReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
	mu     sync.Mutex
}

// NewTextReporter creates a reporter producing console output.
func NewTextReporter(writer io.WriteCloser) *TextReporter {
	return &TextReporter{
		writer: writer,
		logger: observability.GetLogger().Named("text_reporter"),
	}
}

// Write renders every record in the envelope, then the summary when present.
func (r *TextReporter) Write(envelope *schemas.ReportEnvelope) error {
	if envelope == nil {
		return fmt.Errorf("text reporter: nil envelope")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	for i := range envelope.Records {
		writeRecord(&b, &envelope.Records[i])
	}
	if envelope.Summary != nil {
		writeSummary(&b, envelope.Summary)
	}

	if _, err := io.WriteString(r.writer, b.String()); err != nil {
		return fmt.Errorf("text reporter: %w", err)
	}
	return nil
}

// Close releases the underlying writer.
func (r *TextReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("text reporter: closing writer: %w", err)
	}
	return nil
}

func writeRecord(b *strings.Builder, rec *schemas.AuditRecord) {
	report := &rec.Report

	if rec.LineNumber > 0 {
		fmt.Fprintf(b, "line %d  ", rec.LineNumber)
	}
	if rec.PasswordSHA256 != "" {
		fmt.Fprintf(b, "sha256:%s  ", shortDigest(rec.PasswordSHA256))
	}

	fmt.Fprintf(b, "%s %-11s %.1f bits (naive %.1f, penalty %.1f)",
		strengthBar(report.AdjustedEntropyBits),
		report.Strength,
		report.AdjustedEntropyBits,
		report.NaiveEntropyBits,
		report.PenaltyBits(),
	)
	if rec.ZxcvbnScore >= 0 {
		fmt.Fprintf(b, "  zxcvbn %d/4", rec.ZxcvbnScore)
	}
	b.WriteByte('\n')

	for _, f := range report.Findings {
		fmt.Fprintf(b, "    - %s [%d,%d): %s (-%.1f bits)",
			f.Kind, f.Start, f.End, f.Description, f.SeverityBits)
		if f.Source != "" {
			fmt.Fprintf(b, " [%s]", f.Source)
		}
		b.WriteByte('\n')
	}
}

func writeSummary(b *strings.Builder, s *schemas.AuditSummary) {
	fmt.Fprintf(b, "\nsummary: %d candidates, mean %.1f bits", s.Total, s.MeanAdjustedBits)
	if !s.FinishedAt.IsZero() && !s.StartedAt.IsZero() {
		fmt.Fprintf(b, ", %.2fs", s.FinishedAt.Sub(s.StartedAt).Seconds())
	}
	b.WriteByte('\n')

	bands := []schemas.Strength{
		schemas.StrengthVeryWeak,
		schemas.StrengthWeak,
		schemas.StrengthFair,
		schemas.StrengthStrong,
		schemas.StrengthVeryStrong,
	}
	b.WriteString(" ")
	for _, band := range bands {
		fmt.Fprintf(b, " %s: %d", band, s.ByStrength[band])
	}
	b.WriteByte('\n')

	if len(s.WeakestLines) > 0 {
		b.WriteString("  weakest lines:")
		for _, line := range s.WeakestLines {
			fmt.Fprintf(b, " %d", line)
		}
		b.WriteByte('\n')
	}
}

// strengthBar draws a fixed-width gauge of adjusted entropy, one cell per
// 5 bits, full at 100.
func strengthBar(bits float64) string {
	filled := int(bits / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > strengthBarCells {
		filled = strengthBarCells
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", strengthBarCells-filled) + "]"
}

// shortDigest trims a hex digest for display. Full digests live in the json
// and database outputs.
func shortDigest(hexDigest string) string {
	if len(hexDigest) <= 12 {
		return hexDigest
	}
	return hexDigest[:12]
}
