package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlumniTx is the alumni table as seen from inside one open transaction.
// Writes made through it are visible to later calls in the same transaction.
type AlumniTx interface {
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, rec AlumniRecord) (int, error)
}

// RecordSink receives the result of a full table scan: the live column
// names once, then one call per row.
type RecordSink interface {
	Header(columns []string) error
	Row(values []any) error
}

// AlumniStore is the persistence boundary used by the batch pipeline.
type AlumniStore interface {
	// WithTx runs fn inside one transaction. The transaction commits only
	// if fn returns nil; on any error it is rolled back.
	WithTx(ctx context.Context, fn func(AlumniTx) error) error

	// ScanAll streams every alumni row to sink in the order the database
	// returns them.
	ScanAll(ctx context.Context, sink RecordSink) error
}

// PgStore implements AlumniStore and the single-row services on PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore wraps an open pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// InTx acquires a connection, runs fn inside a transaction on it and
// releases the connection on every path. fn's error aborts the
// transaction; a nil return commits it.
func (s *PgStore) InTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return s.inTx(ctx, pgx.TxOptions{}, fn)
}

func (s *PgStore) inTx(ctx context.Context, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after Commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// WithTx implements AlumniStore.
func (s *PgStore) WithTx(ctx context.Context, fn func(AlumniTx) error) error {
	return s.InTx(ctx, func(tx pgx.Tx) error {
		return fn(alumniTx{db: tx})
	})
}

// ScanAll implements AlumniStore using a read-only transaction.
func (s *PgStore) ScanAll(ctx context.Context, sink RecordSink) error {
	return s.inTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT * FROM alumni`)
		if err != nil {
			return fmt.Errorf("scan alumni: %w", err)
		}
		defer rows.Close()

		fields := rows.FieldDescriptions()
		columns := make([]string, len(fields))
		for i, f := range fields {
			columns[i] = f.Name
		}
		if err := sink.Header(columns); err != nil {
			return err
		}

		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return fmt.Errorf("read alumni row: %w", err)
			}
			if err := sink.Row(values); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

/* ---- Transaction-scoped alumni access ---- */

type alumniTx struct {
	db DBTX
}

const existsAlumniSQL = `SELECT EXISTS (SELECT 1 FROM alumni WHERE email = $1)`

func (t alumniTx) Exists(ctx context.Context, email string) (bool, error) {
	var found bool
	if err := t.db.QueryRow(ctx, existsAlumniSQL, email).Scan(&found); err != nil {
		return false, fmt.Errorf("check alumni %s: %w", email, err)
	}
	return found, nil
}

const insertAlumniSQL = `
INSERT INTO alumni (first_name, last_name, email, graduation_year, current_job)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (t alumniTx) Insert(ctx context.Context, rec AlumniRecord) (int, error) {
	var id int
	err := t.db.QueryRow(ctx, insertAlumniSQL,
		rec.FirstName, rec.LastName, rec.Email, rec.GraduationYear, nullIfEmpty(rec.CurrentJob),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert alumni %s: %w", rec.Email, classifyPgError(err))
	}
	return id, nil
}

// nullIfEmpty maps "" to SQL NULL for optional text columns.
func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
