// -- internal/reporting/junit.go --
package reporting

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/observability"
)

// JUnitReporter renders runs as JUnit XML so CI systems can surface weak
// candidates as test failures. A record fails its testcase when the engine
// scores it below fair. It is thread safe.
type JUnitReporter struct {
	writer    io.WriteCloser
	logger    *zap.Logger
	mu        sync.Mutex
	envelopes []*schemas.ReportEnvelope
}

// NewJUnitReporter creates a reporter producing JUnit XML.
func NewJUnitReporter(writer io.WriteCloser) *JUnitReporter {
	return &JUnitReporter{
		writer: writer,
		logger: observability.GetLogger().Named("junit_reporter"),
	}
}

// Write buffers the envelope until Close.
func (r *JUnitReporter) Write(envelope *schemas.ReportEnvelope) error {
	if envelope == nil {
		return fmt.Errorf("junit reporter: nil envelope")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, envelope)
	return nil
}

// Close builds the XML document, writes it, and releases the writer.
func (r *JUnitReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", "passgauge")

	var totalTests, totalFailures int
	for _, envelope := range r.envelopes {
		tests, failures := appendSuite(root, envelope)
		totalTests += tests
		totalFailures += failures
	}
	root.CreateAttr("tests", strconv.Itoa(totalTests))
	root.CreateAttr("failures", strconv.Itoa(totalFailures))

	r.logger.Info("Finalizing JUnit report",
		zap.Int("tests", totalTests),
		zap.Int("failures", totalFailures),
	)

	doc.Indent(2)
	_, encodeErr := doc.WriteTo(r.writer)
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to write JUnit report", zap.Error(encodeErr))
		return fmt.Errorf("junit reporter: %w", encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("junit reporter: closing writer: %w", closeErr)
	}
	return nil
}

func appendSuite(root *etree.Element, envelope *schemas.ReportEnvelope) (tests, failures int) {
	suite := root.CreateElement("testsuite")
	suiteName := "passgauge"
	if envelope.RunID != "" {
		suiteName = "passgauge run " + envelope.RunID
	}
	suite.CreateAttr("name", suiteName)

	if s := envelope.Summary; s != nil {
		if !s.FinishedAt.IsZero() && !s.StartedAt.IsZero() {
			suite.CreateAttr("time", fmt.Sprintf("%.3f", s.FinishedAt.Sub(s.StartedAt).Seconds()))
		}
		props := suite.CreateElement("properties")
		addProperty(props, "mean_adjusted_bits", fmt.Sprintf("%.2f", s.MeanAdjustedBits))
		addProperty(props, "total", strconv.Itoa(s.Total))
	}

	for i := range envelope.Records {
		rec := &envelope.Records[i]
		tests++

		tc := suite.CreateElement("testcase")
		tc.CreateAttr("name", caseName(rec))
		tc.CreateAttr("classname", "passgauge.strength")

		if isFailing(rec.Report.Strength) {
			failures++
			failure := tc.CreateElement("failure")
			failure.CreateAttr("message",
				fmt.Sprintf("strength %s (%.1f bits adjusted)", rec.Report.Strength, rec.Report.AdjustedEntropyBits))
			failure.SetText(failureDetail(&rec.Report))
		}
	}

	suite.CreateAttr("tests", strconv.Itoa(tests))
	suite.CreateAttr("failures", strconv.Itoa(failures))
	return tests, failures
}

func addProperty(props *etree.Element, name, value string) {
	p := props.CreateElement("property")
	p.CreateAttr("name", name)
	p.CreateAttr("value", value)
}

// caseName identifies a record without ever exposing the plaintext.
func caseName(rec *schemas.AuditRecord) string {
	switch {
	case rec.LineNumber > 0 && rec.PasswordSHA256 != "":
		return fmt.Sprintf("line %d (sha256:%s)", rec.LineNumber, shortDigest(rec.PasswordSHA256))
	case rec.LineNumber > 0:
		return fmt.Sprintf("line %d", rec.LineNumber)
	case rec.PasswordSHA256 != "":
		return "candidate sha256:" + shortDigest(rec.PasswordSHA256)
	default:
		return "candidate"
	}
}

// isFailing reports whether a strength band should break a CI run.
func isFailing(s schemas.Strength) bool {
	return s == schemas.StrengthVeryWeak || s == schemas.StrengthWeak
}

func failureDetail(report *schemas.AnalysisReport) string {
	if len(report.Findings) == 0 {
		return fmt.Sprintf("adjusted entropy %.1f bits from a %d rune password over a %d character pool",
			report.AdjustedEntropyBits, report.Length, report.PoolSize)
	}

	var b strings.Builder
	for _, f := range report.Findings {
		fmt.Fprintf(&b, "%s [%d,%d): %s (-%.1f bits)\n",
			f.Kind, f.Start, f.End, f.Description, f.SeverityBits)
	}
	return strings.TrimRight(b.String(), "\n")
}
