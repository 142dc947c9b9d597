package core

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup or targeted update matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write would repeat a unique key.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidInput is matched by every ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileNotFound wraps fs.ErrNotExist for import files.
	ErrFileNotFound = &fileNotFoundError{}

	// ErrMissingHeader is returned when an import header lacks a required column.
	ErrMissingHeader = errors.New("missing required column")

	// ErrFileTooLarge is returned when an import file exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoEmailConfig is returned when no SMTP configuration has been saved.
	ErrNoEmailConfig = errors.New("email not configured")
)

type fileNotFoundError struct{}

func (*fileNotFoundError) Error() string { return "file not found" }
func (*fileNotFoundError) Unwrap() error { return fs.ErrNotExist }

// PostgreSQL SQLSTATE codes the store classifies.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classifyPgError maps driver errors onto the package sentinels while
// keeping the original error in the chain.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Join(ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

// isConnectionError reports whether err is a connection-class failure
// (SQLSTATE class 08, or a failure to connect at all).
func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08")
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
