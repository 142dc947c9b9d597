package core

import (
	"context"
	"errors"
	"fmt"
)

// memStore is an in-memory AlumniStore. Transactions work on a copy of
// the committed rows that replaces them only when fn succeeds.
type memStore struct {
	rows   []AlumniRecord
	nextID int

	// failInsertAt makes the nth Insert call (1-based, across all
	// transactions) fail with errInsert. Zero disables it.
	failInsertAt int
	insertCalls  int
	commits      int
	txCount      int

	scanErr error
}

var errInsert = errors.New("connection reset by peer")

var alumniColumns = []string{"id", "first_name", "last_name", "email", "graduation_year", "current_job"}

func newMemStore(seed ...AlumniRecord) *memStore {
	m := &memStore{nextID: 1}
	for _, r := range seed {
		r.ID = m.nextID
		m.nextID++
		m.rows = append(m.rows, r)
	}
	return m
}

func (m *memStore) WithTx(ctx context.Context, fn func(AlumniTx) error) error {
	m.txCount++
	tx := &memTx{store: m, rows: append([]AlumniRecord(nil), m.rows...), nextID: m.nextID}
	if err := fn(tx); err != nil {
		return err
	}
	m.rows = tx.rows
	m.nextID = tx.nextID
	m.commits++
	return nil
}

func (m *memStore) ScanAll(ctx context.Context, sink RecordSink) error {
	if err := sink.Header(alumniColumns); err != nil {
		return err
	}
	for i, r := range m.rows {
		if m.scanErr != nil && i == 1 {
			return m.scanErr
		}
		var job any
		if r.CurrentJob != "" {
			job = r.CurrentJob
		}
		if err := sink.Row([]any{int32(r.ID), r.FirstName, r.LastName, r.Email, int32(r.GraduationYear), job}); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) emails() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Email
	}
	return out
}

type memTx struct {
	store  *memStore
	rows   []AlumniRecord
	nextID int
}

func (t *memTx) Exists(ctx context.Context, email string) (bool, error) {
	for _, r := range t.rows {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) Insert(ctx context.Context, rec AlumniRecord) (int, error) {
	t.store.insertCalls++
	if t.store.failInsertAt > 0 && t.store.insertCalls == t.store.failInsertAt {
		return 0, fmt.Errorf("insert alumni %s: %w", rec.Email, errInsert)
	}
	for _, r := range t.rows {
		if r.Email == rec.Email {
			return 0, fmt.Errorf("insert alumni %s: %w", rec.Email, ErrDuplicate)
		}
	}
	rec.ID = t.nextID
	t.nextID++
	t.rows = append(t.rows, rec)
	return rec.ID, nil
}
