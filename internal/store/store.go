package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// DBPool abstracts pgxpool.Pool so the store can run against a mock in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store persists audit runs to PostgreSQL. Candidates are stored exclusively
// as SHA-256 digests; plaintext never reaches the database.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a store and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// schemaSQL creates the audit tables. Statements are idempotent so the
// bootstrap can run on every start.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS audit_runs (
    run_id             TEXT PRIMARY KEY,
    total              INTEGER NOT NULL,
    mean_adjusted_bits DOUBLE PRECISION NOT NULL,
    by_strength        JSONB NOT NULL DEFAULT '{}',
    weakest_lines      INTEGER[] NOT NULL DEFAULT '{}',
    started_at         TIMESTAMPTZ NOT NULL,
    finished_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_records (
    run_id          TEXT NOT NULL REFERENCES audit_runs(run_id) ON DELETE CASCADE,
    line_number     INTEGER NOT NULL,
    password_sha256 TEXT NOT NULL,
    length          INTEGER NOT NULL,
    pool_size       INTEGER NOT NULL,
    naive_bits      DOUBLE PRECISION NOT NULL,
    adjusted_bits   DOUBLE PRECISION NOT NULL,
    strength        TEXT NOT NULL,
    zxcvbn_score    INTEGER NOT NULL,
    analyzed_at     TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (run_id, line_number)
);

CREATE TABLE IF NOT EXISTS audit_findings (
    run_id        TEXT NOT NULL,
    line_number   INTEGER NOT NULL,
    ord           INTEGER NOT NULL,
    kind          TEXT NOT NULL,
    start_pos     INTEGER NOT NULL,
    end_pos       INTEGER NOT NULL,
    severity_bits DOUBLE PRECISION NOT NULL,
    description   TEXT NOT NULL,
    source        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, line_number, ord),
    FOREIGN KEY (run_id, line_number) REFERENCES audit_records(run_id, line_number) ON DELETE CASCADE
);
`

// EnsureSchema creates the audit tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure audit schema: %w", err)
	}
	return nil
}

const sqlInsertRun = `
INSERT INTO audit_runs (run_id, total, mean_adjusted_bits, by_strength, weakest_lines, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// PersistRun writes one completed audit run in a single transaction: the
// summary row, then the per-line records and their findings via COPY.
func (s *Store) PersistRun(ctx context.Context, envelope *schemas.ReportEnvelope) error {
	if envelope == nil || envelope.Summary == nil {
		return fmt.Errorf("envelope has no summary to persist")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit reports ErrTxClosed; that is
		// the expected shape, not a failure worth logging.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if err := s.persistSummary(ctx, tx, envelope.RunID, envelope.Summary); err != nil {
		return err
	}
	if len(envelope.Records) > 0 {
		if err := s.persistRecords(ctx, tx, envelope.RunID, envelope.Records); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) persistSummary(ctx context.Context, tx pgx.Tx, runID string, summary *schemas.AuditSummary) error {
	byStrength, err := json.Marshal(summary.ByStrength)
	if err != nil {
		return fmt.Errorf("failed to encode strength histogram: %w", err)
	}

	weakest := make([]int32, len(summary.WeakestLines))
	for i, line := range summary.WeakestLines {
		weakest[i] = int32(line)
	}

	_, err = tx.Exec(ctx, sqlInsertRun,
		runID,
		summary.Total,
		summary.MeanAdjustedBits,
		json.RawMessage(byStrength),
		weakest,
		summary.StartedAt.UTC(),
		summary.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit run %s: %w", runID, err)
	}
	return nil
}

func (s *Store) persistRecords(ctx context.Context, tx pgx.Tx, runID string, records []schemas.AuditRecord) error {
	recordRows := make([][]interface{}, len(records))
	var findingRows [][]interface{}

	for i := range records {
		rec := &records[i]
		report := &rec.Report

		recordRows[i] = []interface{}{
			runID, rec.LineNumber, rec.PasswordSHA256,
			report.Length, report.PoolSize,
			report.NaiveEntropyBits, report.AdjustedEntropyBits,
			string(report.Strength), rec.ZxcvbnScore,
			rec.AnalyzedAt.UTC(),
		}

		for ord, f := range report.Findings {
			findingRows = append(findingRows, []interface{}{
				runID, rec.LineNumber, ord,
				string(f.Kind), f.Start, f.End,
				f.SeverityBits, f.Description, f.Source,
			})
		}
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"audit_records"},
		[]string{"run_id", "line_number", "password_sha256", "length", "pool_size", "naive_bits", "adjusted_bits", "strength", "zxcvbn_score", "analyzed_at"},
		pgx.CopyFromRows(recordRows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy audit records: %w", err)
	}
	if int(copyCount) != len(records) {
		return fmt.Errorf("mismatch in copied record count: expected %d, got %d", len(records), copyCount)
	}

	if len(findingRows) == 0 {
		return nil
	}

	copyCount, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"audit_findings"},
		[]string{"run_id", "line_number", "ord", "kind", "start_pos", "end_pos", "severity_bits", "description", "source"},
		pgx.CopyFromRows(findingRows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy audit findings: %w", err)
	}
	if int(copyCount) != len(findingRows) {
		return fmt.Errorf("mismatch in copied finding count: expected %d, got %d", len(findingRows), copyCount)
	}

	return nil
}

// GetRunRecords loads every record of a persisted run, findings attached in
// their original detector order.
func (s *Store) GetRunRecords(ctx context.Context, runID string) ([]schemas.AuditRecord, error) {
	recordsQuery := `
        SELECT line_number, password_sha256, length, pool_size, naive_bits, adjusted_bits, strength, zxcvbn_score, analyzed_at
        FROM audit_records
        WHERE run_id = $1
        ORDER BY line_number ASC;
    `
	rows, err := s.pool.Query(ctx, recordsQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []schemas.AuditRecord
	byLine := make(map[int]int)

	for rows.Next() {
		var rec schemas.AuditRecord
		var strengthStr string

		err := rows.Scan(
			&rec.LineNumber, &rec.PasswordSHA256,
			&rec.Report.Length, &rec.Report.PoolSize,
			&rec.Report.NaiveEntropyBits, &rec.Report.AdjustedEntropyBits,
			&strengthStr, &rec.ZxcvbnScore, &rec.AnalyzedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}

		rec.RunID = runID
		rec.Report.Strength = schemas.Strength(strengthStr)
		rec.Report.Findings = make([]schemas.Finding, 0)

		byLine[rec.LineNumber] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during record row iteration: %w", err)
	}

	if len(records) == 0 {
		return records, nil
	}

	findingsQuery := `
        SELECT line_number, kind, start_pos, end_pos, severity_bits, description, source
        FROM audit_findings
        WHERE run_id = $1
        ORDER BY line_number ASC, ord ASC;
    `
	findingRows, err := s.pool.Query(ctx, findingsQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit findings: %w", err)
	}
	defer findingRows.Close()

	for findingRows.Next() {
		var lineNumber int
		var f schemas.Finding
		var kindStr string

		err := findingRows.Scan(&lineNumber, &kindStr, &f.Start, &f.End, &f.SeverityBits, &f.Description, &f.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit finding row: %w", err)
		}

		f.Kind = schemas.FindingKind(kindStr)
		idx, ok := byLine[lineNumber]
		if !ok {
			return nil, fmt.Errorf("finding references unknown line %d in run %s", lineNumber, runID)
		}
		records[idx].Report.Findings = append(records[idx].Report.Findings, f)
	}
	if err := findingRows.Err(); err != nil {
		return nil, fmt.Errorf("error during finding row iteration: %w", err)
	}

	return records, nil
}
