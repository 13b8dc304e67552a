// -- internal/reporting/reporter.go --

// Package reporting renders analysis and audit runs for humans (text), for
// machines (json), and for CI systems (junit).
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/salman3757/passgauge/api/schemas"
)

// Reporter writes result envelopes to an output.
type Reporter interface {
	// Write processes a single result envelope.
	Write(envelope *schemas.ReportEnvelope) error
	// Close finalizes the report and releases the underlying writer.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format. An empty or "stdout" path
// writes to standard output; anything else creates (or truncates) a file.
// The returned reporter owns the writer and closes it in Close.
func New(format, outputPath string) (Reporter, error) {
	var writer io.WriteCloser
	isStdout := outputPath == "" || outputPath == "stdout"

	if isStdout {
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "text":
		return NewTextReporter(writer), nil
	case "json":
		return NewJSONReporter(writer), nil
	case "junit":
		return NewJUnitReporter(writer), nil
	default:
		if !isStdout {
			writer.Close()
		}
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
