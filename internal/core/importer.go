package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/alumni/internal/logging"
)

// ImportOptions configures an Importer.
type ImportOptions struct {
	// FailedRowsDir receives "<name> - failed.csv" when rows are skipped.
	// Empty disables the file.
	FailedRowsDir string

	// MaxFileSize rejects larger files before any database work. Zero disables the check.
	MaxFileSize int64
}

// Importer loads alumni CSV files into an AlumniStore.
type Importer struct {
	store AlumniStore
	opts  ImportOptions
}

// NewImporter creates an Importer over store.
func NewImporter(store AlumniStore, opts ImportOptions) *Importer {
	return &Importer{store: store, opts: opts}
}

// Import reads the CSV file at path and inserts every row whose email and
// graduation year are valid and whose email is not already stored.
//
// Invalid and duplicate rows are skipped and reported in the result. All
// inserts happen in one transaction: a database or parse failure aborts
// the run and nothing from the file is committed.
func (im *Importer) Import(ctx context.Context, path string) (ImportResult, error) {
	start := time.Now()
	result := ImportResult{File: path}
	logger := logging.WithFields(ctx, "file", path)

	/* ---- 1. Open file (before any database work) ---- */

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errors.Join(ErrFileNotFound, err)
		}
		logger.Error("import aborted", "error", err)
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if im.opts.MaxFileSize > 0 {
		if info, err := f.Stat(); err == nil && info.Size() > im.opts.MaxFileSize {
			err := fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, info.Size(), im.opts.MaxFileSize)
			logger.Error("import aborted", "error", err)
			return result, err
		}
	}

	reader := NewCSVReader(f)

	/* ---- 2. Header ---- */

	header, err := reader.Read()
	if err == io.EOF {
		logger.Info("import completed", "inserted", 0, "skipped", 0, "reason", "empty file")
		result.Duration = time.Since(start)
		return result, nil
	}
	if err != nil {
		logger.Error("import aborted", "error", err)
		return result, fmt.Errorf("read header: %w", err)
	}

	headerIdx := MakeHeaderIndex(header)
	if missing := headerIdx.Missing(ColEmail, ColGraduationYear); len(missing) > 0 {
		err := fmt.Errorf("%w: %s", ErrMissingHeader, strings.Join(missing, ", "))
		logger.Error("import aborted", "error", err)
		return result, err
	}
	if absent := headerIdx.Missing(ImportColumns...); len(absent) > 0 {
		logger.Warn("header lacks optional columns, stored empty", "columns", absent)
	}

	/* ---- 3. Rows, one transaction for the whole file ---- */

	var inserted int
	var skipped []SkippedRow

	err = im.store.WithTx(ctx, func(tx AlumniTx) error {
		line := 1
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			line++
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			row := headerIdx.Row(record)
			email := row[ColEmail]

			skip := func(reason string) {
				logger.Warn("row skipped", "line", line, "email", email, "reason", reason)
				skipped = append(skipped, SkippedRow{Line: line, Email: email, Reason: reason, Data: record})
			}

			rec, verr := rowToRecord(row)
			if verr != nil {
				skip(verr.Error())
				continue
			}

			exists, err := tx.Exists(ctx, rec.Email)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if exists {
				skip("email already exists")
				continue
			}

			if _, err := tx.Insert(ctx, rec); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			inserted++
		}
	})
	if err != nil {
		logger.Error("import aborted, nothing committed", "error", err)
		return result, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}

	result.Inserted = inserted
	result.Skipped = skipped

	/* ---- 4. Failed rows file ---- */

	if len(skipped) > 0 && im.opts.FailedRowsDir != "" {
		out, err := writeFailedRows(im.opts.FailedRowsDir, path, header, skipped)
		if err != nil {
			logger.Warn("could not write failed rows file", "error", err)
		} else {
			result.FailedRowsCSV = out
		}
	}

	result.Duration = time.Since(start)
	logger.Info("import completed",
		"inserted", result.Inserted,
		"skipped", result.SkippedCount(),
		"duration", result.Duration,
	)
	return result, nil
}

// rowToRecord validates the columns the importer checks and builds the
// record to insert. A missing or empty email or year is a validation
// failure, not a file-level error.
func rowToRecord(row ImportRow) (AlumniRecord, error) {
	email, ok := row[ColEmail]
	if !ok {
		return AlumniRecord{}, ValidationError{Field: ColEmail, Message: "missing value"}
	}
	if err := CheckEmail(email); err != nil {
		return AlumniRecord{}, err
	}

	year, ok := row[ColGraduationYear]
	if !ok {
		return AlumniRecord{}, ValidationError{Field: ColGraduationYear, Message: "missing value"}
	}
	n, ok := ParseGraduationYear(year)
	if !ok {
		return AlumniRecord{}, CheckGraduationYear(year)
	}

	return AlumniRecord{
		Email:          email,
		FirstName:      row[ColFirstName],
		LastName:       row[ColLastName],
		GraduationYear: n,
		CurrentJob:     row[ColCurrentJob],
	}, nil
}

func rowFailed(reason string, row []string) []string {
	return append([]string{reason}, row...)
}

// writeFailedRows writes the skipped rows, each prefixed with its reason,
// to "<dir>/<name> - failed.csv" and returns the path.
func writeFailedRows(dir, source string, header []string, skipped []SkippedRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	out := filepath.Join(dir, fmt.Sprintf("%s - failed.csv", base))

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rowFailed("reason", header)); err != nil {
		return "", err
	}
	for _, s := range skipped {
		if err := w.Write(rowFailed(s.Reason, s.Data)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return out, f.Close()
}
