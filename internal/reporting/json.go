// -- internal/reporting/json.go --
package reporting

import (
	"fmt"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
	"github.com/salman3757/passgauge/internal/observability"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReporter buffers envelopes and emits them as one pretty-printed JSON
// document on Close: a bare object when the run produced a single envelope,
// an array otherwise. It is thread safe.
type JSONReporter struct {
	writer    io.WriteCloser
	logger    *zap.Logger
	mu        sync.Mutex
	envelopes []*schemas.ReportEnvelope
}

// NewJSONReporter creates a reporter producing machine-readable output.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		logger: observability.GetLogger().Named("json_reporter"),
	}
}

// Write buffers the envelope until Close.
func (r *JSONReporter) Write(envelope *schemas.ReportEnvelope) error {
	if envelope == nil {
		return fmt.Errorf("json reporter: nil envelope")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, envelope)
	return nil
}

// Close encodes the buffered envelopes and releases the writer. An encoding
// error wins over a close error; it means the output is unusable.
func (r *JSONReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var doc any
	switch len(r.envelopes) {
	case 0:
		doc = []*schemas.ReportEnvelope{}
	case 1:
		doc = r.envelopes[0]
	default:
		doc = r.envelopes
	}

	data, encodeErr := jsonAPI.MarshalIndent(doc, "", "  ")
	if encodeErr == nil {
		data = append(data, '\n')
		_, encodeErr = r.writer.Write(data)
	}
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to encode JSON report", zap.Error(encodeErr))
		return fmt.Errorf("json reporter: %w", encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("json reporter: closing writer: %w", closeErr)
	}
	return nil
}
