package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonMunkholm/alumni/internal/logging"
)

// Exporter writes the alumni table to CSV.
type Exporter struct {
	store AlumniStore
}

// NewExporter creates an Exporter over store.
func NewExporter(store AlumniStore) *Exporter {
	return &Exporter{store: store}
}

// Export writes every stored record to path: a header of the live column
// names, then one line per row in scan order. A failure part-way leaves a
// partial file in place.
func (ex *Exporter) Export(ctx context.Context, path string) (ExportResult, error) {
	start := time.Now()
	result := ExportResult{File: path}
	logger := logging.WithFields(ctx, "file", path)

	f, err := os.Create(path)
	if err != nil {
		logger.Error("export aborted", "error", err)
		return result, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	sink := newCSVSink(f)
	if err := ex.store.ScanAll(ctx, sink); err != nil {
		_ = sink.flush()
		logger.Error("export aborted", "error", err, "rows_written", sink.rows)
		return result, fmt.Errorf("export %s: %w", path, err)
	}
	if err := sink.flush(); err != nil {
		logger.Error("export aborted", "error", err)
		return result, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return result, fmt.Errorf("close %s: %w", path, err)
	}

	result.Columns = sink.columns
	result.Rows = sink.rows
	result.Duration = time.Since(start)
	logger.Info("export completed", "rows", result.Rows, "duration", result.Duration)
	return result, nil
}

// csvSink adapts a csv.Writer to RecordSink.
type csvSink struct {
	w       *csv.Writer
	columns []string
	rows    int
}

func newCSVSink(w io.Writer) *csvSink {
	return &csvSink{w: csv.NewWriter(w)}
}

func (s *csvSink) Header(columns []string) error {
	s.columns = columns
	return s.w.Write(columns)
}

func (s *csvSink) Row(values []any) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = FormatValue(v)
	}
	if err := s.w.Write(record); err != nil {
		return err
	}
	s.rows++
	return nil
}

func (s *csvSink) flush() error {
	s.w.Flush()
	return s.w.Error()
}

// FormatValue stringifies a driver value for export. NULL becomes "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
