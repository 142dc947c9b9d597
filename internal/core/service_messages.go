package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// SendMessage stores a message between two registered alumni.
func (s *Service) SendMessage(ctx context.Context, from, to, content string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationError{Field: "message", Message: "is required"}
	}

	return s.store.InTx(ctx, func(tx pgx.Tx) error {
		for _, email := range []string{from, to} {
			if _, err := alumnusID(ctx, tx, email); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO alumni_messages (sender_email, receiver_email, message) VALUES ($1, $2, $3)`,
			from, to, content)
		return err
	})
}

// Inbox returns messages received by email, newest first.
func (s *Service) Inbox(ctx context.Context, email string) ([]Message, error) {
	var out []Message
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT message_id, sender_email, receiver_email, message, sent_at
FROM alumni_messages WHERE receiver_email = $1
ORDER BY sent_at DESC, message_id DESC`, email)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Message, error) {
			var m Message
			err := row.Scan(&m.ID, &m.From, &m.To, &m.Content, &m.SentAt)
			return m, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inbox %s: %w", email, err)
	}
	return out, nil
}

// Connect records a connection from requester to target. Both must be
// registered and distinct; connecting twice returns ErrDuplicate.
func (s *Service) Connect(ctx context.Context, requester, target string) error {
	if strings.EqualFold(requester, target) {
		return ValidationError{Field: "target_email", Value: target, Message: "cannot connect to yourself"}
	}

	return s.store.InTx(ctx, func(tx pgx.Tx) error {
		for _, email := range []string{requester, target} {
			if _, err := alumnusID(ctx, tx, email); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO alumni_connections (requester_email, target_email) VALUES ($1, $2)`,
			requester, target)
		return classifyPgError(err)
	})
}

// AddAchievement posts an achievement for the alumnus with email.
func (s *Service) AddAchievement(ctx context.Context, email, title, description string) (int, error) {
	if strings.TrimSpace(title) == "" {
		return 0, ValidationError{Field: "title", Message: "is required"}
	}

	var id int
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
INSERT INTO alumni_achievements (alumnus_id, title, description)
VALUES ($1, $2, $3)
RETURNING achievement_id`,
			aid, strings.TrimSpace(title), nullIfEmpty(description),
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("add achievement: %w", err)
	}
	return id, nil
}

// ListAchievements returns all achievements, newest first.
func (s *Service) ListAchievements(ctx context.Context) ([]Achievement, error) {
	var out []Achievement
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT ac.achievement_id, a.first_name || ' ' || a.last_name, ac.title, COALESCE(ac.description, ''), ac.date_posted
FROM alumni_achievements ac
JOIN alumni a ON a.id = ac.alumnus_id
ORDER BY ac.date_posted DESC, ac.achievement_id DESC`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Achievement, error) {
			var a Achievement
			err := row.Scan(&a.ID, &a.AlumniName, &a.Title, &a.Description, &a.DatePosted)
			return a, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return out, nil
}
