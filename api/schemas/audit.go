package schemas

import "time"

// -- Audit Schemas --

// AuditRecord pairs one audited candidate (identified by its position in the
// input, never by the plaintext) with the engine's analysis. PasswordSHA256
// is the lowercase hex digest of the candidate; it is the only durable
// identifier the toolkit ever persists.
type AuditRecord struct {
	RunID          string         `json:"run_id"`
	LineNumber     int            `json:"line_number"`
	PasswordSHA256 string         `json:"password_sha256"`
	Report         AnalysisReport `json:"report"`

	// ZxcvbnScore is the advisory cross-check score (0-4). It is -1 when the
	// cross-check is disabled and never feeds the engine's own arithmetic.
	ZxcvbnScore int `json:"zxcvbn_score"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AuditSummary aggregates one complete audit run.
type AuditSummary struct {
	RunID            string           `json:"run_id"`
	Total            int              `json:"total"`
	ByStrength       map[Strength]int `json:"by_strength"`
	MeanAdjustedBits float64          `json:"mean_adjusted_bits"`

	// WeakestLines lists the line numbers of the lowest scoring candidates,
	// ascending by adjusted bits, capped by the runner's configuration.
	WeakestLines []int `json:"weakest_lines"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ReportEnvelope bundles everything a reporter needs to render one run. A
// single `analyze` invocation produces an envelope with exactly one record
// and no summary.
type ReportEnvelope struct {
	RunID   string        `json:"run_id"`
	Records []AuditRecord `json:"records"`
	Summary *AuditSummary `json:"summary,omitempty"`
}
