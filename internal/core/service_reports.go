package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/alumni/internal/logging"
)

// AlumniReport returns the total alumni count and the count per
// graduation year, ordered by year.
func (s *Service) AlumniReport(ctx context.Context) (AlumniReport, error) {
	var report AlumniReport
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM alumni`).Scan(&report.Total); err != nil {
			return err
		}
		rows, err := tx.Query(ctx, `
SELECT graduation_year, COUNT(*) FROM alumni
GROUP BY graduation_year ORDER BY graduation_year`)
		if err != nil {
			return err
		}
		report.ByYear, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (YearCount, error) {
			var yc YearCount
			err := row.Scan(&yc.Year, &yc.Count)
			return yc, err
		})
		return err
	})
	if err != nil {
		return AlumniReport{}, fmt.Errorf("alumni report: %w", err)
	}
	return report, nil
}

// EventParticipationReport returns the attendee count of every event
// with at least one attendee.
func (s *Service) EventParticipationReport(ctx context.Context) ([]EventParticipation, error) {
	var out []EventParticipation
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT e.event_name, COUNT(a.alumnus_id)
FROM events e
JOIN event_attendance a ON a.event_id = e.event_id
GROUP BY e.event_id, e.event_name
ORDER BY e.event_name`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (EventParticipation, error) {
			var ep EventParticipation
			err := row.Scan(&ep.EventName, &ep.Attended)
			return ep, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("event participation report: %w", err)
	}
	return out, nil
}

/* ---- Email configuration ---- */

// EmailConfig returns the most recently saved SMTP configuration, or
// ErrNoEmailConfig.
func (s *PgStore) EmailConfig(ctx context.Context) (EmailConfig, error) {
	var cfg EmailConfig
	err := s.inTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
SELECT id, host, port, email_address, email_password, created_at
FROM email_config ORDER BY created_at DESC, id DESC LIMIT 1`,
		).Scan(&cfg.ID, &cfg.SMTPServer, &cfg.SMTPPort, &cfg.SenderEmail, &cfg.SenderPassword, &cfg.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return EmailConfig{}, ErrNoEmailConfig
	}
	if err != nil {
		return EmailConfig{}, fmt.Errorf("load email config: %w", err)
	}
	return cfg, nil
}

// EmailConfig returns the active SMTP configuration.
func (s *Service) EmailConfig(ctx context.Context) (EmailConfig, error) {
	return s.store.EmailConfig(ctx)
}

// SaveEmailConfig stores a new SMTP configuration, which becomes active.
func (s *Service) SaveEmailConfig(ctx context.Context, cfg EmailConfig) error {
	if strings.TrimSpace(cfg.SMTPServer) == "" {
		return ValidationError{Field: "host", Message: "is required"}
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return ValidationError{Field: "port", Value: fmt.Sprint(cfg.SMTPPort), Message: "must be 1-65535"}
	}
	if err := CheckEmail(cfg.SenderEmail); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO email_config (host, port, email_address, email_password)
VALUES ($1, $2, $3, $4)`,
			strings.TrimSpace(cfg.SMTPServer), cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)
		return err
	})
	if err != nil {
		return fmt.Errorf("save email config: %w", err)
	}

	logging.FromContext(ctx).Info("email configuration saved", "host", cfg.SMTPServer, "port", cfg.SMTPPort)
	return nil
}
