// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/alumni/internal/core"
)

// ResetTimeout is the maximum duration for database reset operations.
const ResetTimeout = 30 * time.Second

// ResetConfirmation is the phrase an operator must type before a reset.
const ResetConfirmation = "RESET"

// resetSQL empties every data table. email_config is kept so mail keeps
// working after a reset.
const resetSQL = `
TRUNCATE TABLE
	alumni_achievements,
	alumni_connections,
	alumni_messages,
	job_history,
	job_postings,
	event_rsvps,
	event_invitations,
	event_attendance,
	events,
	alumni_skills,
	skills,
	alumni
RESTART IDENTITY`

// TxRunner runs fn inside one transaction. *core.PgStore satisfies it.
type TxRunner interface {
	InTx(ctx context.Context, fn func(pgx.Tx) error) error
}

// ResetDbs handles database reset operations.
type ResetDbs struct {
	Store TxRunner
}

var _ TxRunner = (*core.PgStore)(nil)

// ResetAll truncates all alumni data tables in one transaction.
// This is a destructive operation - use with caution.
func (r *ResetDbs) ResetAll(ctx context.Context, confirmation string) error {
	if confirmation != ResetConfirmation {
		return core.ValidationError{Field: "confirmation", Message: fmt.Sprintf("type %s to confirm", ResetConfirmation)}
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	err := r.Store.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, resetSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	slog.Warn("all alumni data reset")
	return nil
}
